package forecast

import "github.com/etnz/forecast/date"

// Report is a read-only snapshot of the simulation state for rendering.
// Building one never mutates the run.
type Report struct {
	Date     date.Date
	AgeYears int

	Accounts      []AccountLine
	TotalAccounts Money

	Debts      []DebtLine
	TotalDebts Money

	Assets              []AssetLine
	TotalSellableAssets Money
	TotalAssets         Money // post-tax, sellable or not

	NetWorth Money // accounts + post-tax assets - debts
}

// AccountLine is one account in a report.
type AccountLine struct {
	Name    string
	Balance Money
}

// DebtLine is one active debt in a report.
type DebtLine struct {
	Name    string
	Balance Money
}

// AssetLine is one held asset in a report.
type AssetLine struct {
	Name         string
	Value        Money
	PostTaxValue Money
	PaidOff      bool
}

// Report snapshots the current state.
func (s *Simulation) Report() *Report {
	r := &Report{
		Date:     s.today,
		AgeYears: s.Age().Years,
	}
	for _, a := range s.accounts {
		r.Accounts = append(r.Accounts, AccountLine{Name: a.Name(), Balance: a.Balance()})
		r.TotalAccounts = r.TotalAccounts.Add(a.Balance())
	}
	for _, d := range s.debts {
		balance := d.Balance(s.today)
		r.TotalDebts = r.TotalDebts.Add(balance)
		if balance.IsPositive() {
			r.Debts = append(r.Debts, DebtLine{Name: d.Name(), Balance: balance})
		}
	}
	for _, a := range s.assets.All() {
		line := AssetLine{
			Name:         a.Name(),
			Value:        a.Value(),
			PostTaxValue: a.PostTaxValue(),
			PaidOff:      a.IsPaidOff(),
		}
		r.Assets = append(r.Assets, line)
		r.TotalAssets = r.TotalAssets.Add(line.PostTaxValue)
		if a.Sellable() {
			r.TotalSellableAssets = r.TotalSellableAssets.Add(line.PostTaxValue)
		}
	}
	r.NetWorth = r.TotalAccounts.Add(r.TotalAssets).Sub(r.TotalDebts)
	return r
}
