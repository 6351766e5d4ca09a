package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/etnz/forecast/date"
)

func TestCompoundInterest(t *testing.T) {
	jan1 := date.New(2026, 1, 1)

	t.Run("zero rate earns nothing", func(t *testing.T) {
		got := CompoundInterest(M(10000), 0, jan1, jan1.Add(365))
		assert.True(t, got.IsZero())
	})

	t.Run("no elapsed time earns nothing", func(t *testing.T) {
		got := CompoundInterest(M(10000), 5, jan1, jan1)
		assert.True(t, got.IsZero())
		got = CompoundInterest(M(10000), 5, jan1, jan1.Add(-10))
		assert.True(t, got.IsZero())
	})

	t.Run("one day at 3.65 percent", func(t *testing.T) {
		// daily rate is exactly 0.0001
		got := CompoundInterest(M(1000), 3.65, jan1, jan1.Add(1))
		assert.InDelta(t, 0.10, got.Float(), 1e-9)
	})

	t.Run("one year compounds daily", func(t *testing.T) {
		// (1 + 0.10/365)^365 - 1 = 10.5156% effective
		got := CompoundInterest(M(10000), 10, jan1, jan1.Add(365))
		assert.InDelta(t, 1051.56, got.Float(), 0.01)
	})

	t.Run("negative rate depreciates", func(t *testing.T) {
		got := CompoundInterest(M(10000), -10, jan1, jan1.Add(365))
		assert.True(t, got.IsNegative())
		assert.InDelta(t, -951.63, got.Float(), 0.01)
	})

	t.Run("non-negative rate never earns negative", func(t *testing.T) {
		for _, days := range []int{1, 30, 365, 3650} {
			got := CompoundInterest(M(0.01), 0.01, jan1, jan1.Add(days))
			assert.False(t, got.IsNegative(), "after %d days", days)
		}
	})
}

func TestFederalTax(t *testing.T) {
	tests := []struct {
		name    string
		married bool
		gross   float64
		want    float64
	}{
		{"below single deduction", false, 14600, 0},
		{"below married deduction", true, 29200, 0},
		{"single first bracket", false, 20000, 540},       // (20000-14600) * 10%
		{"single 50k", false, 50000, 4016},                // 1160 + (35400-11600)*12%
		{"married stays in first bracket", true, 50000, 2080}, // (50000-29200) * 10%
		{"single 120k", false, 120000, 18338.5},           // 1160 + 4266 + 11742.5 + (105400-100525)*24%
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FederalTax(tc.married, M(tc.gross))
			assert.InDelta(t, tc.want, got.Float(), 0.5)
		})
	}

	t.Run("married pays less than single on equal income", func(t *testing.T) {
		single := FederalTax(false, M(100000))
		married := FederalTax(true, M(100000))
		assert.True(t, married.LessThan(single))
	})
}

func TestMinimumPayment(t *testing.T) {
	start := date.New(2026, 1, 1)

	t.Run("zero rate is straight-line", func(t *testing.T) {
		got := MinimumPayment(0, M(12000), start, start.AddYears(1))
		assert.InDelta(t, 1000, got.Float(), 0.01)
	})

	t.Run("thirty year mortgage", func(t *testing.T) {
		got := MinimumPayment(6, M(300000), start, start.AddYears(30))
		assert.InDelta(t, 1798.65, got.Float(), 1.5)
	})

	t.Run("ended loan charges the full principal", func(t *testing.T) {
		got := MinimumPayment(5, M(4000), start, start)
		assert.InDelta(t, 4000, got.Float(), 0.01)
	})
}
