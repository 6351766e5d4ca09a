package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etnz/forecast/date"
)

func TestBillChargesOnSchedule(t *testing.T) {
	start := date.New(2026, 1, 1)
	b := NewBill(start, BillConfig{
		Name: "rent", Charge: 1500,
		ChargePeriodType: date.Months, ChargePeriodValue: 1,
		StartDate: start,
	})

	assert.True(t, b.ChargeDue(start))

	checking := cashAccount(t, "checking", 5000)
	l := NewLedger()
	charged, err := b.ApplyCharge(start, young, []*Account{checking}, l, nil)
	require.NoError(t, err)
	assert.True(t, charged.Equal(M(1500)))
	assert.True(t, checking.Balance().Equal(M(3500)))

	assert.False(t, b.ChargeDue(start.Add(15)))
	assert.True(t, b.ChargeDue(start.AddMonths(1)))
}

func TestBillZeroChargeNeverDue(t *testing.T) {
	start := date.New(2026, 1, 1)
	b := NewBill(start, BillConfig{
		Name: "placeholder", Charge: 0,
		ChargePeriodType: date.Months, ChargePeriodValue: 1,
		StartDate: start,
	})
	assert.False(t, b.ChargeDue(start))
}

func TestBillFlatEscalation(t *testing.T) {
	start := date.New(2026, 1, 1)
	b := NewBill(start, BillConfig{
		Name: "insurance", Charge: 100,
		ChargePeriodType: date.Months, ChargePeriodValue: 1,
		AnnualInflationFlat:       60,
		AnnualInflationPeriodType: date.Months, AnnualInflationPeriodValue: 1,
		StartDate: start,
	})

	// One 31-day month of a 60/year flat increase: 60 * 31/365.
	raise := b.ApplyEscalation(start.AddMonths(1))
	assert.InDelta(t, 60*31.0/365, raise.Float(), 0.001)
	assert.InDelta(t, 100+60*31.0/365, b.Charge().Float(), 0.001)
}
