package date

import (
	"fmt"
	"strings"
)

// Period is a reporting cadence.
type Period int

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	case Decennial:
		return "decennial"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

const (
	Daily Period = iota
	Weekly
	Monthly
	Yearly
	Decennial
)

func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(p)
	switch p {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "yearly", "year":
		return Yearly, nil
	case "decennial", "decade":
		return Decennial, nil
	default:
		return Daily, fmt.Errorf("unknown period %s", p)
	}
}

// UnmarshalText lets periods decode straight from config files.
func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Elapsed reports whether at least one full period has passed from last to today.
// Weeks and days count whole days; months, years and decades use calendar differences.
func (p Period) Elapsed(last, today Date) bool {
	switch p {
	case Daily:
		return today.After(last)
	case Weekly:
		return today.Sub(last) >= 7
	case Monthly:
		y, m := Diff(last, today)
		return y >= 1 || m >= 1
	case Yearly:
		y, _ := Diff(last, today)
		return y >= 1
	case Decennial:
		y, _ := Diff(last, today)
		return y >= 10
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}
