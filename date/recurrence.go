package date

import (
	"fmt"
	"strings"
)

// Unit is the calendar unit of a Recurrence.
type Unit int

const (
	Days Unit = iota
	Weeks
	Months
	Years
)

func (u Unit) String() string {
	switch u {
	case Days:
		return "days"
	case Weeks:
		return "weeks"
	case Months:
		return "months"
	case Years:
		return "years"
	default:
		panic(fmt.Sprintf("unknown unit %d", u))
	}
}

// ParseUnit parses a string into a Unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(s) {
	case "days", "day":
		return Days, nil
	case "weeks", "week":
		return Weeks, nil
	case "months", "month":
		return Months, nil
	case "years", "year":
		return Years, nil
	default:
		return Days, fmt.Errorf("unknown time unit %q", s)
	}
}

// UnmarshalText lets units decode straight from config files.
func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// Recurrence describes an event repeating every Every units.
//
// Month and year recurrences use calendar-correct arithmetic: the day of month
// is clamped when the target month is shorter, never normalized forward.
type Recurrence struct {
	Every int
	Unit  Unit
}

// IsZero reports whether the recurrence is unset.
func (r Recurrence) IsZero() bool { return r.Every == 0 }

func (r Recurrence) String() string { return fmt.Sprintf("every %d %s", r.Every, r.Unit) }

// Next returns the occurrence following last.
func (r Recurrence) Next(last Date) Date {
	switch r.Unit {
	case Days:
		return last.Add(r.Every)
	case Weeks:
		return last.Add(7 * r.Every)
	case Months:
		return last.AddMonths(r.Every)
	case Years:
		return last.AddYears(r.Every)
	default:
		panic(fmt.Sprintf("unknown unit %d", r.Unit))
	}
}

// Previous returns the occurrence preceding d.
func (r Recurrence) Previous(d Date) Date {
	switch r.Unit {
	case Days:
		return d.Add(-r.Every)
	case Weeks:
		return d.Add(-7 * r.Every)
	case Months:
		return d.AddMonths(-r.Every)
	case Years:
		return d.AddYears(-r.Every)
	default:
		panic(fmt.Sprintf("unknown unit %d", r.Unit))
	}
}

// IsDue reports whether today is exactly the next occurrence after last.
func (r Recurrence) IsDue(last, today Date) bool { return today == r.Next(last) }

// DaysIn converts one period ending today into a whole number of days, for
// prorating annual amounts. Months use the exact calendar span ending today;
// years count 365 days each.
func (r Recurrence) DaysIn(today Date) int {
	switch r.Unit {
	case Days:
		return r.Every
	case Weeks:
		return 7 * r.Every
	case Months:
		return today.Sub(today.AddMonths(-r.Every))
	case Years:
		return 365 * r.Every
	default:
		panic(fmt.Sprintf("unknown unit %d", r.Unit))
	}
}

// ClampStart bounds a configured last-occurrence date so the first due check
// never schedules an event more than one full period in the past: if the
// configured date is older than today minus one period, today minus one period
// is used instead.
func (r Recurrence) ClampStart(configured, today Date) Date {
	oldest := r.Previous(today)
	if configured.Before(oldest) {
		return oldest
	}
	return configured
}
