package forecast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/forecast/date"
)

// AssetType classifies an asset.
type AssetType int

const (
	House AssetType = iota
	Car
	Misc
)

func (t AssetType) String() string {
	switch t {
	case House:
		return "house"
	case Car:
		return "car"
	case Misc:
		return "misc"
	default:
		panic(fmt.Sprintf("unknown asset type %d", t))
	}
}

// ParseAssetType parses a config string into an AssetType.
func ParseAssetType(s string) (AssetType, error) {
	switch strings.ToLower(s) {
	case "house":
		return House, nil
	case "car":
		return Car, nil
	case "misc":
		return Misc, nil
	default:
		return Misc, fmt.Errorf("unknown asset type %q", s)
	}
}

// UnmarshalText lets asset types decode straight from config files.
func (t *AssetType) UnmarshalText(text []byte) error {
	parsed, err := ParseAssetType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AssetID identifies an asset in its arena. Debts reference their collateral
// by AssetID so two assets may share a display name without aliasing.
type AssetID int

// NoAsset is the zero AssetID, meaning "no collateral".
const NoAsset AssetID = 0

// Asset is an appreciating (or depreciating) store of value.
type Asset struct {
	id      AssetID
	name    string
	typ     AssetType
	value   Money
	paidOff bool
	sold    bool // terminal: a sold asset must never be touched again

	rate             float64 // annual appreciation percentage, may be negative
	rec              date.Recurrence
	lastAppreciation date.Date

	paysCapitalGainsTax bool
	sellDate            *date.Date
	untaxedGains        Money
}

// NewAsset builds an asset from its configuration. Standalone assets start
// paid off; collateral assets start owned by their debt.
func NewAsset(paidOff bool, today date.Date, cfg AssetConfig) *Asset {
	return &Asset{
		name:                cfg.Name,
		typ:                 cfg.Type,
		value:               M(cfg.Value),
		paidOff:             paidOff,
		rate:                cfg.AppreciationRate,
		rec:                 date.Recurrence{Every: cfg.AppreciationPeriodValue, Unit: cfg.AppreciationPeriodType},
		lastAppreciation:    today,
		paysCapitalGainsTax: cfg.PaysCapitalGainsTax,
		sellDate:            cfg.SellDate,
	}
}

// mustBeHeld panics when the asset was already sold: any access after the
// terminal sale is a programming error.
func (a *Asset) mustBeHeld() {
	if a.sold {
		panic(fmt.Sprintf("asset %q used after being sold", a.name))
	}
}

func (a *Asset) ID() AssetID     { return a.id }
func (a *Asset) Name() string    { return a.name }
func (a *Asset) IsPaidOff() bool { return a.paidOff }
func (a *Asset) IsSold() bool    { return a.sold }

func (a *Asset) Type() AssetType {
	a.mustBeHeld()
	return a.typ
}

func (a *Asset) Value() Money {
	a.mustBeHeld()
	return a.value
}

func (a *Asset) AppreciationRate() float64 {
	a.mustBeHeld()
	return a.rate
}

func (a *Asset) SellDate() *date.Date { return a.sellDate }

// Sellable reports whether the asset can be sold: paid off and not yet sold.
func (a *Asset) Sellable() bool { return a.paidOff && !a.sold }

// SetPaidOff flips the paid-off flag, typically when the owning debt reaches
// zero balance.
func (a *Asset) SetPaidOff(v bool) {
	a.mustBeHeld()
	a.paidOff = v
}

// PostTaxValue returns the value net of capital gains tax on the untaxed
// gains, i.e. what a sale today would deliver.
func (a *Asset) PostTaxValue() Money {
	a.mustBeHeld()
	if !a.paysCapitalGainsTax {
		return a.value
	}
	return a.value.Sub(a.untaxedGains.MulFloat(capitalGainsTaxRate))
}

// Sell returns the post-tax value and marks the asset sold. The transition is
// one-way: all further accessors panic.
func (a *Asset) Sell() Money {
	postTax := a.PostTaxValue()
	a.sold = true
	return postTax
}

// AppreciatesToday reports whether a growth application is due. Unlike the
// strict due-day recurrences, appreciation catches up: it fires on any day on
// or after the next scheduled one, because assets keep growing while the
// simulation is busy elsewhere.
func (a *Asset) AppreciatesToday(today date.Date) bool {
	a.mustBeHeld()
	if a.value.IsZero() {
		return false
	}
	return !today.Before(a.rec.Next(a.lastAppreciation))
}

// ApplyAppreciation applies daily-compounded growth to the value. Negative
// growth is depreciation and is applied identically. Positive growth on a
// taxable asset accrues as untaxed gains.
func (a *Asset) ApplyAppreciation(today date.Date) Money {
	if !a.AppreciatesToday(today) {
		return Zero
	}
	gained := CompoundInterest(a.value, a.rate, a.lastAppreciation, today)
	if gained.IsZero() {
		return Zero
	}
	a.lastAppreciation = today
	a.value = a.value.Add(gained)
	if gained.IsPositive() && a.paysCapitalGainsTax {
		a.untaxedGains = a.untaxedGains.Add(gained)
	}
	return gained
}

// Assets is an arena of assets keyed by generated AssetID, preserving
// insertion order for deterministic iteration.
type Assets struct {
	order  []AssetID
	byID   map[AssetID]*Asset
	nextID AssetID
}

// NewAssets returns an empty arena.
func NewAssets() *Assets {
	return &Assets{byID: make(map[AssetID]*Asset), nextID: 1}
}

// Add registers the asset and returns its generated id.
func (as *Assets) Add(a *Asset) AssetID {
	a.id = as.nextID
	as.nextID++
	as.byID[a.id] = a
	as.order = append(as.order, a.id)
	return a.id
}

// Get returns the asset with the given id, or nil.
func (as *Assets) Get(id AssetID) *Asset { return as.byID[id] }

// Contains reports whether the id is registered.
func (as *Assets) Contains(id AssetID) bool { return as.byID[id] != nil }

// All returns the held (not sold) assets in insertion order.
func (as *Assets) All() []*Asset {
	list := make([]*Asset, 0, len(as.order))
	for _, id := range as.order {
		if a := as.byID[id]; !a.sold {
			list = append(list, a)
		}
	}
	return list
}

// SellableByWorstRate returns the sellable assets sorted by ascending
// appreciation rate, so forced liquidation sheds the worst performers first.
func (as *Assets) SellableByWorstRate() []*Asset {
	var list []*Asset
	for _, a := range as.All() {
		if a.Sellable() {
			list = append(list, a)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].rate < list[j].rate })
	return list
}

// Compact drops sold assets from the arena. Run after iteration completes,
// never during.
func (as *Assets) Compact() {
	kept := as.order[:0]
	for _, id := range as.order {
		if as.byID[id].sold {
			delete(as.byID, id)
			continue
		}
		kept = append(kept, id)
	}
	as.order = kept
}
