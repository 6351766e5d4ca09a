package forecast

import (
	"errors"
	"fmt"
)

// InsufficientFundsError reports a charge that could not be covered by the
// available accounts. It is the only recoverable error class in the engine:
// the simulation catches it around bill and debt charges to attempt a forced
// asset liquidation, and re-raises it when liquidation cannot cover the
// shortfall, ending the run as insolvent.
//
// Charges never partially apply: when this error is returned, no balance and
// no counterparty ledger entry has been mutated.
type InsufficientFundsError struct {
	Needed Money // the full unmet amount
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: %s needed", e.Needed)
}

// AsInsufficientFunds unwraps err as an InsufficientFundsError, if it is one.
func AsInsufficientFunds(err error) (*InsufficientFundsError, bool) {
	var ife *InsufficientFundsError
	ok := errors.As(err, &ife)
	return ife, ok
}
