package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etnz/forecast/date"
)

func TestAssetAppreciationCatchesUp(t *testing.T) {
	start := date.New(2026, 1, 1)
	a := NewAsset(true, start, AssetConfig{
		Name: "house", Type: House, Value: 100000,
		AppreciationRate:       5,
		AppreciationPeriodType: date.Years, AppreciationPeriodValue: 1,
	})

	assert.False(t, a.AppreciatesToday(start.AddYears(1).Add(-1)))
	// Appreciation fires on the due day and on any later day: the schedule
	// catches up instead of waiting for the next exact match.
	assert.True(t, a.AppreciatesToday(start.AddYears(1)))
	assert.True(t, a.AppreciatesToday(start.AddYears(1).Add(40)))

	gained := a.ApplyAppreciation(start.AddYears(1))
	assert.InDelta(t, 5127, gained.Float(), 1) // daily compounded 5% over 365 days
	assert.True(t, a.Value().GreaterThan(M(100000)))
}

func TestAssetDepreciates(t *testing.T) {
	start := date.New(2026, 1, 1)
	a := NewAsset(true, start, AssetConfig{
		Name: "car", Type: Car, Value: 30000,
		AppreciationRate:       -15,
		AppreciationPeriodType: date.Months, AppreciationPeriodValue: 1,
		PaysCapitalGainsTax:    true,
	})

	gained := a.ApplyAppreciation(start.AddMonths(1))
	assert.True(t, gained.IsNegative())
	assert.True(t, a.Value().LessThan(M(30000)))
	// Losses never accrue taxable gains.
	assert.True(t, a.PostTaxValue().Equal(a.Value()))
}

func TestAssetSellIsTerminal(t *testing.T) {
	start := date.New(2026, 1, 1)
	a := NewAsset(true, start, AssetConfig{Name: "house", Type: House, Value: 100000})

	got := a.Sell()
	assert.True(t, got.Equal(M(100000)))
	assert.True(t, a.IsSold())
	assert.False(t, a.Sellable())
	assert.Panics(t, func() { a.Value() })
	assert.Panics(t, func() { a.Sell() })
}

func TestAssetFinancedIsNotSellable(t *testing.T) {
	start := date.New(2026, 1, 1)
	a := NewAsset(false, start, AssetConfig{Name: "house", Type: House, Value: 100000})
	assert.False(t, a.Sellable())
	a.SetPaidOff(true)
	assert.True(t, a.Sellable())
}

func TestAssetsSellableByWorstRate(t *testing.T) {
	start := date.New(2026, 1, 1)
	as := NewAssets()
	as.Add(NewAsset(true, start, AssetConfig{Name: "house", Value: 1, AppreciationRate: 5}))
	as.Add(NewAsset(true, start, AssetConfig{Name: "car", Value: 1, AppreciationRate: -15}))
	as.Add(NewAsset(false, start, AssetConfig{Name: "boat", Value: 1, AppreciationRate: -50}))
	as.Add(NewAsset(true, start, AssetConfig{Name: "gold", Value: 1, AppreciationRate: 2}))

	var names []string
	for _, a := range as.SellableByWorstRate() {
		names = append(names, a.Name())
	}
	// The financed boat is excluded; the rest sorted worst rate first.
	assert.Equal(t, []string{"car", "gold", "house"}, names)
}

func TestAssetsCompactDropsSold(t *testing.T) {
	start := date.New(2026, 1, 1)
	as := NewAssets()
	id1 := as.Add(NewAsset(true, start, AssetConfig{Name: "a", Value: 1}))
	id2 := as.Add(NewAsset(true, start, AssetConfig{Name: "b", Value: 1}))
	require.NotEqual(t, id1, id2)

	as.Get(id1).Sell()
	as.Compact()

	assert.False(t, as.Contains(id1))
	assert.True(t, as.Contains(id2))
	require.Len(t, as.All(), 1)
	assert.Equal(t, "b", as.All()[0].Name())
}
