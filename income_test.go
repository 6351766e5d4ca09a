package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etnz/forecast/date"
)

func TestPayoutWithholdsEverything(t *testing.T) {
	created := date.New(2025, 12, 1)
	payday := date.New(2026, 1, 1)
	s := NewIncomeStream(created, IncomeConfig{
		Name: "salary", Gross: 36500,
		PaymentPeriodType: date.Months, PaymentPeriodValue: 1,
		StartDate: created, EndDate: created.AddYears(30),
	})
	l := NewLedger()
	taxes := &TaxRecord{}
	employerBefore := l.Balance(Employer)

	net, paid := s.Payout(payday, false, taxes, nil, l)
	require.True(t, paid)

	// 31 days of a 36500 annual gross is exactly 3100.
	assert.InDelta(t, 3100, taxes.Income().Float(), 0.001)
	assert.InDelta(t, 3100, employerBefore.Sub(l.Balance(Employer)).Float(), 0.001)

	prorate := 31.0 / 365
	federal := 2396.0 * prorate        // FederalTax(single, 36500)
	ss := 36500 * 0.062 * prorate      // under the wage base cap
	medicare := 36500 * 0.0145 * prorate
	assert.InDelta(t, federal, taxes.Withheld().Float(), 0.01)
	assert.InDelta(t, 3100-federal-ss-medicare, net.Float(), 0.01)
}

func TestPayoutSocialSecurityIsCapped(t *testing.T) {
	created := date.New(2025, 12, 1)
	payday := date.New(2026, 1, 1)
	s := NewIncomeStream(created, IncomeConfig{
		Name: "salary", Gross: 500000,
		PaymentPeriodType: date.Months, PaymentPeriodValue: 1,
		StartDate: created, EndDate: created.AddYears(30),
	})
	l := NewLedger()
	ssBefore := l.Balance(SocialSecurity)

	_, paid := s.Payout(payday, false, &TaxRecord{}, nil, l)
	require.True(t, paid)

	prorate := 31.0 / 365
	assert.InDelta(t, 10453.20*prorate, l.Balance(SocialSecurity).Sub(ssBefore).Float(), 0.01)
}

func TestPayoutMedicareSurtax(t *testing.T) {
	created := date.New(2025, 12, 1)
	payday := date.New(2026, 1, 1)
	s := NewIncomeStream(created, IncomeConfig{
		Name: "salary", Gross: 300000,
		PaymentPeriodType: date.Months, PaymentPeriodValue: 1,
		StartDate: created, EndDate: created.AddYears(30),
	})
	l := NewLedger()
	treasuryBefore := l.Balance(Treasury)

	_, paid := s.Payout(payday, false, &TaxRecord{}, nil, l)
	require.True(t, paid)

	// 1.45% of the full gross plus 0.9% of the 100k over the surtax floor.
	prorate := 31.0 / 365
	want := (300000*0.0145 + 100000*0.009) * prorate
	assert.InDelta(t, want, l.Balance(Treasury).Sub(treasuryBefore).Float(), 0.01)
}

func TestPayoutRoutesContributions(t *testing.T) {
	created := date.New(2025, 12, 1)
	payday := date.New(2026, 1, 1)
	s := NewIncomeStream(created, IncomeConfig{
		Name: "salary", Gross: 73000,
		FourOhOneK:                     7300,
		FourOhOneKEmployerContribution: 3650,
		HSA:                            1825,
		PaymentPeriodType:              date.Months, PaymentPeriodValue: 1,
		StartDate: created, EndDate: created.AddYears(30),
	})
	fourk := NewAccount(created, AccountConfig{Name: "401k", Type: FourOhOneK})
	hsa := NewAccount(created, AccountConfig{Name: "hsa", Type: HSA})
	accounts := []*Account{fourk, hsa}
	l := NewLedger()

	_, paid := s.Payout(payday, false, &TaxRecord{}, accounts, l)
	require.True(t, paid)

	prorate := 31.0 / 365
	// Employee deferral plus the employer match.
	assert.InDelta(t, (7300+3650)*prorate, fourk.Balance().Float(), 0.01)
	assert.InDelta(t, 1825*prorate, hsa.Balance().Float(), 0.01)
}

func TestPayoutSkippedRightAfterCreationAdvancesSchedule(t *testing.T) {
	start := date.New(2026, 1, 1)
	s := NewIncomeStream(start, IncomeConfig{
		Name: "salary", Gross: 60000,
		PaymentPeriodType: date.Months, PaymentPeriodValue: 1,
		StartDate: start, EndDate: start.AddYears(30),
	})
	l := NewLedger()

	// On the start day no full period has elapsed: nothing is paid, but the
	// schedule restarts so the next payday is one full period out.
	net, paid := s.Payout(start, false, &TaxRecord{}, nil, l)
	assert.False(t, paid)
	assert.True(t, net.IsZero())

	net, paid = s.Payout(start.AddMonths(1), false, &TaxRecord{}, nil, l)
	require.True(t, paid)
	assert.True(t, net.IsPositive())
}

func TestPayoutOutsideWindow(t *testing.T) {
	start := date.New(2026, 1, 1)
	s := NewIncomeStream(start, IncomeConfig{
		Name: "salary", Gross: 60000,
		PaymentPeriodType: date.Months, PaymentPeriodValue: 1,
		StartDate: start, EndDate: start.AddYears(1),
	})
	_, paid := s.Payout(start.AddYears(2), false, &TaxRecord{}, nil, NewLedger())
	assert.False(t, paid)
}

func TestEscalationRaisesGross(t *testing.T) {
	start := date.New(2026, 1, 1)
	s := NewIncomeStream(start, IncomeConfig{
		Name: "salary", Gross: 100000,
		AnnualInflationPercentage:  3,
		AnnualInflationPeriodType:  date.Years,
		AnnualInflationPeriodValue: 1,
		PaymentPeriodType:          date.Months, PaymentPeriodValue: 1,
		StartDate: start, EndDate: start.AddYears(30),
	})

	raise := s.ApplyEscalation(start.AddYears(1))
	// 3% of 100k prorated over a 365-day year.
	assert.InDelta(t, 3000, raise.Float(), 0.01)
	assert.InDelta(t, 103000, s.AnnualGross().Float(), 0.01)

	// Not due again until another full period.
	assert.True(t, s.ApplyEscalation(start.AddYears(1).Add(1)).IsZero())
}
