package forecast

import (
	"fmt"

	"github.com/etnz/forecast/date"
)

// Debt is a named liability amortizing between its start and end dates,
// optionally secured by a collateral asset.
type Debt struct {
	name      string
	principal Money // original amount, fixed
	balance   Money // amortizes down to zero
	start     date.Date
	end       date.Date

	interestRate float64
	interest     date.Recurrence
	lastInterest date.Date

	charge     date.Recurrence
	lastCharge date.Date

	collateral AssetID // NoAsset when unsecured
}

// NewDebt builds a debt from its configuration. Interest and charge schedules
// are anchored at the start date, clamped to at most one period before today.
func NewDebt(today date.Date, cfg DebtConfig) *Debt {
	interest := date.Recurrence{Every: cfg.InterestPeriodValue, Unit: cfg.InterestPeriodType}
	charge := date.Recurrence{Every: cfg.ChargePeriodValue, Unit: cfg.ChargePeriodType}
	return &Debt{
		name:         cfg.Name,
		principal:    M(cfg.Principal),
		balance:      M(cfg.Balance),
		start:        cfg.StartDate,
		end:          cfg.EndDate,
		interestRate: cfg.InterestRate,
		interest:     interest,
		lastInterest: interest.ClampStart(cfg.StartDate, today),
		charge:       charge,
		lastCharge:   charge.ClampStart(cfg.StartDate, today),
	}
}

func (d *Debt) Name() string         { return d.name }
func (d *Debt) StartDate() date.Date { return d.start }
func (d *Debt) EndDate() date.Date   { return d.end }
func (d *Debt) Collateral() AssetID  { return d.collateral }

// Balance returns the remaining balance, zero before the debt starts.
func (d *Debt) Balance(today date.Date) Money {
	if today.Before(d.start) {
		return Zero
	}
	return d.balance
}

// InterestRate returns the annual rate, zero before the debt starts.
func (d *Debt) InterestRate(today date.Date) float64 {
	if today.Before(d.start) {
		return 0
	}
	return d.interestRate
}

// InterestDue reports whether interest capitalizes today. A zero balance
// restarts the schedule: the check deliberately advances lastInterest so
// accrual cannot back-date to before the balance reappears.
func (d *Debt) InterestDue(today date.Date) bool {
	if d.balance.IsZero() {
		d.lastInterest = today
		return false
	}
	if today == d.start {
		return true
	}
	return d.interest.IsDue(d.lastInterest, today)
}

// ChargeDue reports whether a payment is due today. A zero balance restarts
// the schedule: the check deliberately advances lastCharge so a payment is
// never due the day the balance reappears.
func (d *Debt) ChargeDue(today date.Date) bool {
	if d.balance.IsZero() {
		d.lastCharge = today
		return false
	}
	if today == d.start {
		return true
	}
	return d.charge.IsDue(d.lastCharge, today)
}

// ApplyInterest capitalizes daily-compounded interest onto the balance when
// due. Debt interest is self-generated: no counterparty moves.
func (d *Debt) ApplyInterest(today date.Date) (Money, error) {
	if !d.InterestDue(today) {
		return Zero, nil
	}
	gained := CompoundInterest(d.balance, d.interestRate, d.lastInterest, today)
	if gained.IsZero() {
		return Zero, nil
	}
	if gained.IsNegative() {
		return Zero, fmt.Errorf("debt %q accrued negative interest %s", d.name, gained)
	}
	d.lastInterest = today
	d.balance = d.balance.Add(gained)
	return gained, nil
}

// Pay reduces the balance by the given amount, which must not exceed it.
func (d *Debt) Pay(amount Money) error {
	if amount.GreaterThan(d.balance) {
		return fmt.Errorf("debt %q: payment %s exceeds balance %s", d.name, amount, d.balance)
	}
	d.balance = d.balance.Sub(amount)
	return nil
}

// isLastCharge decides whether the next payment should clear the whole
// balance: either the next scheduled charge would fall after the end date, or
// the amortized minimum already covers what remains.
func (d *Debt) isLastCharge() bool {
	if d.charge.Next(d.lastCharge).After(d.end) {
		return true
	}
	return MinimumPayment(d.interestRate, d.principal, d.start, d.end).GreaterThanOrEqual(d.balance)
}

// Charge issues today's payment, if due: the full remaining balance on the
// final charge, otherwise the amortized minimum. The charge is drawn across
// the accounts in order and remitted to the debtor; when the balance reaches
// zero the collateral asset (if any) becomes paid off.
//
// If the accounts' post-tax total cannot cover the charge it returns an
// InsufficientFundsError before mutating anything.
func (d *Debt) Charge(today date.Date, age Age, accounts []*Account, assets *Assets, l *Ledger, notify Notify) (Money, error) {
	if !d.ChargeDue(today) {
		return Zero, nil
	}
	var amount Money
	if d.isLastCharge() {
		amount = d.balance
	} else {
		amount = MinimumPayment(d.interestRate, d.principal, d.start, d.end)
	}
	withdrawn, err := drainAccounts(amount, age, accounts, l, Debtor, notify)
	if err != nil {
		return Zero, err
	}
	if err := d.Pay(withdrawn); err != nil {
		return Zero, err
	}
	d.lastCharge = today
	if d.balance.IsZero() && d.collateral != NoAsset {
		if a := assets.Get(d.collateral); a != nil {
			a.SetPaidOff(true)
		}
	}
	return amount, nil
}
