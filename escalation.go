package forecast

import "github.com/etnz/forecast/date"

// Escalation grows an amount over time by a flat or percentage annual
// inflation, prorated by elapsed days and applied on its own schedule.
// Bills use it for charge increases, income streams for raises.
type Escalation struct {
	flatAnnual Money   // annual flat increase; zero when percentage-based
	percent    float64 // annual percentage increase
	rec        date.Recurrence
	last       date.Date
	enabled    bool
}

// newEscalation builds an escalation starting at the entity's start date,
// clamped so the first increase is at most one period out. A config with
// neither a flat nor a percentage rate, or without a schedule, is disabled.
func newEscalation(today, start date.Date, flat, percent float64, rec date.Recurrence) Escalation {
	if (flat == 0 && percent == 0) || rec.IsZero() {
		return Escalation{}
	}
	return Escalation{
		flatAnnual: M(flat),
		percent:    percent,
		rec:        rec,
		last:       rec.ClampStart(start, today),
		enabled:    true,
	}
}

// Due reports whether an increase is scheduled for today.
func (e *Escalation) Due(today date.Date) bool {
	return e.enabled && e.rec.IsDue(e.last, today)
}

// Increase returns the prorated increase for the period ending today and
// advances the schedule. The increase for a percentage escalation is
// base × rate/365 × elapsed days; for a flat escalation flat/365 × elapsed
// days.
func (e *Escalation) Increase(base Money, today date.Date) Money {
	days := e.rec.DaysIn(today)
	e.last = today
	if e.percent != 0 {
		return base.MulFloat(e.percent / 100 / 365 * float64(days))
	}
	return e.flatAnnual.MulFloat(float64(days) / 365)
}
