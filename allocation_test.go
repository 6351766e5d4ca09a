package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etnz/forecast/date"
)

func cashAccount(t *testing.T, name string, balance float64) *Account {
	t.Helper()
	return NewAccount(date.New(2026, 1, 1), AccountConfig{Name: name, Type: Cash, Balance: balance})
}

func savingsAccount(t *testing.T, name string, balance float64) *Account {
	t.Helper()
	return NewAccount(date.New(2026, 1, 1), AccountConfig{Name: name, Type: Savings, Balance: balance})
}

func TestDistributeFillsFirstAccountBelowThreshold(t *testing.T) {
	today := date.New(2026, 1, 1)
	checking := cashAccount(t, "checking", 4000)
	savings := savingsAccount(t, "savings", 0)
	rules := []PaymentRule{
		{Target: "checking", Threshold: M(5000), HasThreshold: true},
		{Target: "savings"},
	}
	l := NewLedger()

	// The first below-threshold account absorbs the whole payout, even past
	// its threshold: thresholds gate entry, they do not cap the deposit.
	require.NoError(t, Distribute(M(2000), today, rules, []*Account{checking, savings}, nil, l))
	assert.True(t, checking.Balance().Equal(M(6000)), "checking is %s", checking.Balance())
	assert.True(t, savings.Balance().IsZero())
}

func TestDistributeSkipsFilledAccounts(t *testing.T) {
	today := date.New(2026, 1, 1)
	checking := cashAccount(t, "checking", 6000)
	savings := savingsAccount(t, "savings", 0)
	rules := []PaymentRule{
		{Target: "checking", Threshold: M(5000), HasThreshold: true},
		{Target: "savings"},
	}
	l := NewLedger()

	require.NoError(t, Distribute(M(2000), today, rules, []*Account{checking, savings}, nil, l))
	assert.True(t, checking.Balance().Equal(M(6000)))
	assert.True(t, savings.Balance().Equal(M(2000)))
}

func TestDistributePaysHighestRateDebtFirst(t *testing.T) {
	today := date.New(2026, 1, 1)
	checking := cashAccount(t, "checking", 0)
	cheap := NewDebt(today, DebtConfig{
		Name: "car loan", Principal: 1000, Balance: 1000,
		StartDate: today, EndDate: today.AddYears(5), InterestRate: 3,
		ChargePeriodType: date.Months, ChargePeriodValue: 1,
	})
	costly := NewDebt(today, DebtConfig{
		Name: "credit card", Principal: 300, Balance: 300,
		StartDate: today, EndDate: today.AddYears(5), InterestRate: 22,
		ChargePeriodType: date.Months, ChargePeriodValue: 1,
	})
	rules := []PaymentRule{
		{Target: DebtTarget, MinRate: 5},
		{Target: "checking"},
	}
	l := NewLedger()
	debtorBefore := l.Balance(Debtor)

	require.NoError(t, Distribute(M(500), today, rules, []*Account{checking}, []*Debt{cheap, costly}, l))

	// Only the 22% debt clears the 5% rate filter; the rest lands in checking.
	assert.True(t, costly.Balance(today).IsZero())
	assert.True(t, cheap.Balance(today).Equal(M(1000)))
	assert.True(t, checking.Balance().Equal(M(200)))
	assert.True(t, l.Balance(Debtor).Sub(debtorBefore).Equal(M(300)))
}

func TestDistributeLeftoverStaysInCash(t *testing.T) {
	today := date.New(2026, 1, 1)
	checking := cashAccount(t, "checking", 9000)
	rules := []PaymentRule{
		{Target: "checking", Threshold: M(5000), HasThreshold: true},
	}
	l := NewLedger()

	// Every rule is satisfied; the remainder must not evaporate.
	require.NoError(t, Distribute(M(700), today, rules, []*Account{checking}, nil, l))
	assert.True(t, checking.Balance().Equal(M(9700)))
}

func TestDistributeUnknownAccountIsFatal(t *testing.T) {
	today := date.New(2026, 1, 1)
	checking := cashAccount(t, "checking", 0)
	rules := []PaymentRule{{Target: "typo"}}

	err := Distribute(M(100), today, rules, []*Account{checking}, nil, NewLedger())
	assert.Error(t, err)
}

func TestDrainAccountsInOrder(t *testing.T) {
	checking := cashAccount(t, "checking", 300)
	savings := savingsAccount(t, "savings", 1000)
	l := NewLedger()
	billerBefore := l.Balance(Biller)

	got, err := drainAccounts(M(500), young, []*Account{checking, savings}, l, Biller, nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(M(500)))
	assert.True(t, checking.Balance().IsZero())
	assert.True(t, savings.Balance().Equal(M(800)))
	assert.True(t, l.Balance(Biller).Sub(billerBefore).Equal(M(500)))
}

func TestDrainAccountsInsufficientTouchesNothing(t *testing.T) {
	checking := cashAccount(t, "checking", 300)
	l := NewLedger()

	_, err := drainAccounts(M(500), young, []*Account{checking}, l, Biller, nil)
	require.Error(t, err)
	ife, ok := AsInsufficientFunds(err)
	require.True(t, ok)
	assert.True(t, ife.Needed.Equal(M(500)))
	assert.True(t, checking.Balance().Equal(M(300)))
}

func TestShuffleMovesExcessTowardThresholds(t *testing.T) {
	checking := cashAccount(t, "checking", 8000)
	savings := savingsAccount(t, "savings", 2000)
	rules := []PaymentRule{
		{Target: "checking", Threshold: M(5000), HasThreshold: true},
		{Target: "savings", Threshold: M(10000), HasThreshold: true},
	}
	l := NewLedger()

	require.NoError(t, Shuffle(young, rules, []*Account{checking, savings}, l, nil))
	assert.True(t, checking.Balance().Equal(M(5000)), "checking is %s", checking.Balance())
	assert.True(t, savings.Balance().Equal(M(5000)), "savings is %s", savings.Balance())
}

func TestShuffleTerminatesWithTaxedDonor(t *testing.T) {
	checking := NewAccount(date.New(2026, 1, 1), AccountConfig{
		Name: "checking", Type: Cash, Balance: 5000, PaysIncomeTax: true,
	})
	savings := savingsAccount(t, "savings", 0)
	rules := []PaymentRule{
		{Target: "checking"},
		{Target: "savings", Threshold: M(10000), HasThreshold: true},
	}
	l := NewLedger()

	// Every withdrawal from the taxed donor leaves a sliver of its balance
	// behind, so it approaches zero without reaching it and savings never
	// gets within slack of its threshold. The pass must still stop once the
	// remaining spare funds are dust.
	require.NoError(t, Shuffle(young, rules, []*Account{checking, savings}, l, nil))
	assert.True(t, savings.Balance().GreaterThan(M(3900)), "savings is %s", savings.Balance())
	assert.True(t, checking.Balance().LessThan(M(1)), "checking is %s", checking.Balance())
}

func TestShuffleLeavesBalancedAccountsAlone(t *testing.T) {
	checking := cashAccount(t, "checking", 5000)
	savings := savingsAccount(t, "savings", 10500)
	rules := []PaymentRule{
		{Target: "checking", Threshold: M(5000), HasThreshold: true},
		{Target: "savings", Threshold: M(10000), HasThreshold: true},
	}
	l := NewLedger()

	// Both accounts sit within the rebalancing slack of their thresholds.
	require.NoError(t, Shuffle(young, rules, []*Account{checking, savings}, l, nil))
	assert.True(t, checking.Balance().Equal(M(5000)))
	assert.True(t, savings.Balance().Equal(M(10500)))
}
