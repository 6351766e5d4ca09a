package forecast

import "github.com/etnz/forecast/date"

// Bill is a named recurring expense, optionally escalating with inflation.
type Bill struct {
	name   string
	charge Money // escalates over time
	rec    date.Recurrence

	escalation Escalation

	start      date.Date
	end        *date.Date // nil means the bill never ends
	lastCharge date.Date
}

// NewBill builds a bill from its configuration, anchoring the charge schedule
// at the start date clamped to at most one period before today.
func NewBill(today date.Date, cfg BillConfig) *Bill {
	rec := date.Recurrence{Every: cfg.ChargePeriodValue, Unit: cfg.ChargePeriodType}
	inflation := date.Recurrence{Every: cfg.AnnualInflationPeriodValue, Unit: cfg.AnnualInflationPeriodType}
	return &Bill{
		name:       cfg.Name,
		charge:     M(cfg.Charge),
		rec:        rec,
		escalation: newEscalation(today, cfg.StartDate, cfg.AnnualInflationFlat, cfg.AnnualInflationPercentage, inflation),
		start:      cfg.StartDate,
		end:        cfg.EndDate,
		lastCharge: rec.ClampStart(cfg.StartDate, today),
	}
}

func (b *Bill) Name() string        { return b.name }
func (b *Bill) Charge() Money       { return b.charge }
func (b *Bill) EndDate() *date.Date { return b.end }

// ChargeDue reports whether the bill charges today.
func (b *Bill) ChargeDue(today date.Date) bool {
	if b.charge.IsZero() {
		return false
	}
	if today == b.start {
		return true
	}
	return b.rec.IsDue(b.lastCharge, today)
}

// ApplyEscalation increases the charge by the prorated inflation amount when
// an increase is scheduled today, returning the increase.
func (b *Bill) ApplyEscalation(today date.Date) Money {
	if !b.escalation.Due(today) {
		return Zero
	}
	increase := b.escalation.Increase(b.charge, today)
	b.charge = b.charge.Add(increase)
	return increase
}

// ApplyCharge draws today's charge across the accounts in order, remitting to
// the biller. If the accounts' post-tax total cannot cover it, an
// InsufficientFundsError is returned before anything is mutated.
func (b *Bill) ApplyCharge(today date.Date, age Age, accounts []*Account, l *Ledger, notify Notify) (Money, error) {
	if !b.ChargeDue(today) {
		return Zero, nil
	}
	if _, err := drainAccounts(b.charge, age, accounts, l, Biller, notify); err != nil {
		return Zero, err
	}
	b.lastCharge = today
	return b.charge, nil
}
