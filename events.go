package forecast

import "github.com/etnz/forecast/date"

// EventKind classifies advisory events emitted while simulating.
type EventKind int

const (
	// EarlyWithdrawal is emitted when a retirement or HSA account is debited
	// before the penalty-free age.
	EarlyWithdrawal EventKind = iota
	// ForcedSale is emitted when an asset is liquidated to cover a charge
	// that the accounts alone could not pay.
	ForcedSale
	// ScheduledSale is emitted when an asset is sold on its configured sell date.
	ScheduledSale
)

func (k EventKind) String() string {
	switch k {
	case EarlyWithdrawal:
		return "early-withdrawal"
	case ForcedSale:
		return "forced-sale"
	case ScheduledSale:
		return "scheduled-sale"
	default:
		return "unknown"
	}
}

// Event is an advisory notification: something legal but noteworthy happened.
// Events never block or alter the simulation.
type Event struct {
	Kind   EventKind
	Date   date.Date
	Name   string // entity concerned (account or asset name)
	Amount Money
}

// Notify receives advisory events. A nil Notify drops them.
type Notify func(Event)

func (n Notify) send(e Event) {
	if n != nil {
		n(e)
	}
}
