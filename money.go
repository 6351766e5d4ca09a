package forecast

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in the simulation's single implied
// currency (USD). Arithmetic is exact decimal arithmetic: a credit computed
// once can be debited elsewhere with no drift, which is what makes the daily
// conservation check meaningful.
type Money struct {
	value decimal.Decimal
}

// M returns the Money worth the given amount of dollars.
func M(v float64) Money { return Money{value: decimal.NewFromFloat(v)} }

// Zero is the zero monetary value.
var Zero = Money{}

func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value)} }
func (m Money) Neg() Money        { return Money{value: m.value.Neg()} }
func (m Money) Abs() Money        { return Money{value: m.value.Abs()} }

// MulFloat scales the value by a float factor (rates, growth factors).
func (m Money) MulFloat(x float64) Money {
	return Money{value: m.value.Mul(decimal.NewFromFloat(x))}
}

func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }

// Min returns the smaller of a and b.
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Float returns the value as a float64, for rate math and reporting ratios.
// Ledger mutations must stay in Money.
func (m Money) Float() float64 { return m.value.InexactFloat64() }

// String formats the value as dollars and cents, e.g. "$1,234.56".
func (m Money) String() string {
	cents := m.value.Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// SignedString is like String but prefixes positive values with "+"
// and renders zero as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
