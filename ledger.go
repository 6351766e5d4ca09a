package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Counterparty identifies an external balance: somebody money leaves to or
// arrives from. Keeping a symmetric counter-entry for every dollar crossing
// the boundary of the simulated person's accounts is what makes total
// circulation checkable.
type Counterparty int

const (
	Bank Counterparty = iota
	Biller
	Buyer
	CityGovernment
	Debtor
	SocialSecurity
	Employer
	IRS
	HealthcareProvider
	StateGovernment
	StockMarket
	Treasury

	numCounterparties
)

func (c Counterparty) String() string {
	switch c {
	case Bank:
		return "bank"
	case Biller:
		return "biller"
	case Buyer:
		return "buyer"
	case CityGovernment:
		return "city government"
	case Debtor:
		return "debtor"
	case SocialSecurity:
		return "social security"
	case Employer:
		return "employer"
	case IRS:
		return "irs"
	case HealthcareProvider:
		return "healthcare provider"
	case StateGovernment:
		return "state government"
	case StockMarket:
		return "stock market"
	case Treasury:
		return "us treasury"
	default:
		panic(fmt.Sprintf("unknown counterparty %d", c))
	}
}

// Each counterparty starts deep enough in the black that no realistic run
// drives it negative.
const openingBalance = 1_000_000_000

// Ledger holds one balance per counterparty. It is owned by a single
// Simulation: independent runs get independent ledgers.
type Ledger struct {
	balances [numCounterparties]decimal.Decimal
}

// NewLedger returns a ledger with every counterparty at its opening balance.
func NewLedger() *Ledger {
	l := &Ledger{}
	for i := range l.balances {
		l.balances[i] = decimal.NewFromInt(openingBalance)
	}
	return l
}

// Take debits the counterparty and returns the amount, ready to be credited
// to an account.
func (l *Ledger) Take(c Counterparty, amount Money) Money {
	l.balances[c] = l.balances[c].Sub(amount.value)
	return amount
}

// Give credits the counterparty.
func (l *Ledger) Give(c Counterparty, amount Money) {
	l.balances[c] = l.balances[c].Add(amount.value)
}

// Balance returns the counterparty's current balance.
func (l *Ledger) Balance(c Counterparty) Money {
	return Money{value: l.balances[c]}
}

// Circulation returns the sum of all counterparty balances plus the given
// user total (the sum of all account balances). This quantity is conserved
// for the whole run.
func (l *Ledger) Circulation(user Money) Money {
	total := user.value
	for _, b := range l.balances {
		total = total.Add(b)
	}
	return Money{value: total}
}

// Snapshot returns a copy of the ledger, for tests and what-if comparisons.
func (l *Ledger) Snapshot() *Ledger {
	cp := *l
	return &cp
}

// Restore resets the ledger to a previously taken snapshot.
func (l *Ledger) Restore(snap *Ledger) { l.balances = snap.balances }
