package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/forecast/date"
	"github.com/rs/zerolog"
)

// Daily circulation drift beyond a cent means money was created or destroyed.
var conservationTolerance = M(0.01)

// Simulation owns all the state of one forecasting run: the person's
// accounts, debts, bills, income streams and assets, the counterparty ledger,
// and the running tax records. It advances one calendar day at a time.
//
// A Simulation is single-threaded; concurrent runs each need their own.
type Simulation struct {
	cfg   *Config
	today date.Date

	ledger   *Ledger
	accounts []*Account
	bills    []*Bill
	debts    []*Debt
	incomes  []*IncomeStream
	assets   *Assets

	// collateral configs indexed like cfg.Debts, activated with their debt
	collateralIDs map[string]AssetID // debt name -> activated collateral

	rules []PaymentRule

	dob         date.Date
	married     bool
	yearMarried int

	taxYear     *TaxRecord // accumulating for the current calendar year
	taxLastYear *TaxRecord // finalized, reconciled on April 15

	startingCirculation Money

	log zerolog.Logger

	// OnEvent receives advisory events (early withdrawals, forced sales).
	// The default logs them; it never blocks the simulation.
	OnEvent Notify
}

// NewSimulation builds a run from a validated config. The simulated clock
// starts at the config's start date (today when unset).
func NewSimulation(cfg *Config, log zerolog.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	today := date.Today()
	if cfg.StartDate != nil {
		today = *cfg.StartDate
	}
	s := &Simulation{
		cfg:           cfg,
		today:         today,
		ledger:        NewLedger(),
		assets:        NewAssets(),
		collateralIDs: make(map[string]AssetID),
		dob:           cfg.DOB,
		taxYear:       &TaxRecord{},
		taxLastYear:   &TaxRecord{},
		log:           log,
	}
	s.married, s.yearMarried = cfg.maritalStatus(today)

	rules, err := cfg.paymentRules()
	if err != nil {
		return nil, err
	}
	s.rules = rules

	for _, ac := range cfg.Accounts {
		s.accounts = append(s.accounts, NewAccount(today, ac))
	}
	// Entities starting on day one are picked up by the first Step's
	// activation pass; only strictly older ones are built here.
	for _, bc := range cfg.Bills {
		if today.After(bc.StartDate) {
			s.bills = append(s.bills, NewBill(today, bc))
		}
	}
	for _, dc := range cfg.Debts {
		if today.After(dc.StartDate) {
			s.debts = append(s.debts, s.newDebt(today, dc))
		}
	}
	for _, ic := range cfg.Income {
		if today.After(ic.StartDate) {
			s.incomes = append(s.incomes, NewIncomeStream(today, ic))
		}
	}
	for _, ac := range cfg.Assets {
		s.assets.Add(NewAsset(true, today, ac)) // standalone assets start paid off
	}

	s.startingCirculation = s.ledger.Circulation(s.accountsTotal())
	return s, nil
}

// newDebt builds a debt and registers its collateral asset in the arena.
func (s *Simulation) newDebt(today date.Date, cfg DebtConfig) *Debt {
	d := NewDebt(today, cfg)
	if cfg.Asset != nil {
		id, ok := s.collateralIDs[cfg.Name]
		if !ok {
			id = s.assets.Add(NewAsset(false, today, *cfg.Asset))
			s.collateralIDs[cfg.Name] = id
		}
		d.collateral = id
	}
	return d
}

// Today returns the simulated date the next Step will run.
func (s *Simulation) Today() date.Date { return s.today }

// Done reports whether the simulated date has passed the output window.
func (s *Simulation) Done() bool { return s.today.After(s.cfg.Output.EndDate) }

// Age returns the person's age on the current simulated day.
func (s *Simulation) Age() Age { return AgeOn(s.dob, s.today) }

// notify stamps the event with the simulated date and forwards it.
func (s *Simulation) notify(e Event) {
	e.Date = s.today
	s.log.Warn().
		Stringer("kind", e.Kind).
		Stringer("date", e.Date).
		Str("name", e.Name).
		Stringer("amount", e.Amount).
		Msg("simulation event")
	if s.OnEvent != nil {
		s.OnEvent(e)
	}
}

func (s *Simulation) accountsTotal() Money {
	var total Money
	for _, a := range s.accounts {
		total = total.Add(a.Balance())
	}
	return total
}

// totalAvailableFunds is everything the person could raise today: post-tax
// account balances plus post-tax values of sellable assets.
func (s *Simulation) totalAvailableFunds(age Age) Money {
	var total Money
	for _, a := range s.accounts {
		total = total.Add(a.PostTaxBalance(age))
	}
	for _, a := range s.assets.All() {
		if a.Sellable() {
			total = total.Add(a.PostTaxValue())
		}
	}
	return total
}

// liquidate sells sellable assets, worst appreciation rate first, into the
// first investment account until the needed amount is covered. It returns an
// InsufficientFundsError for whatever remains uncovered when assets run out.
func (s *Simulation) liquidate(needed Money) error {
	investment := firstOfType(s.accounts, Investment)
	if investment == nil {
		return &InsufficientFundsError{Needed: needed}
	}
	remaining := needed
	for _, a := range s.assets.SellableByWorstRate() {
		remaining = remaining.Sub(a.PostTaxValue())
		s.notify(Event{Kind: ForcedSale, Name: a.Name(), Amount: a.PostTaxValue()})
		investment.Deposit(s.ledger.Take(Buyer, a.Sell()))
		if !remaining.IsPositive() {
			s.assets.Compact()
			return nil
		}
	}
	s.assets.Compact()
	return &InsufficientFundsError{Needed: remaining}
}

// chargeWithLiquidation runs a charge and, when the accounts alone cannot
// cover it, liquidates assets and retries exactly once. An uncoverable
// shortfall propagates as the insolvency that ends the run.
func (s *Simulation) chargeWithLiquidation(age Age, charge func() error) error {
	err := charge()
	if err == nil {
		return nil
	}
	ife, ok := AsInsufficientFunds(err)
	if !ok {
		return err
	}
	if s.totalAvailableFunds(age).LessThan(ife.Needed) {
		return err
	}
	if err := s.liquidate(ife.Needed); err != nil {
		return err
	}
	return charge()
}

// Step advances the simulation by one calendar day, in the fixed order the
// balances depend on: lifecycle, income, appreciation, interest, capital
// gains, escalation, charges, year and tax-day handling, rebalancing.
// It returns an error carrying an InsufficientFundsError when the person
// goes bankrupt, or a plain error on a broken invariant; both end the run.
func (s *Simulation) Step() error {
	if err := s.checkConservation(); err != nil {
		return err
	}
	age := s.Age()

	s.activateNewEntities()
	s.sellScheduledAssets()
	s.retireEndedEntities()

	// The rebalancing pass runs on days the payment order is exercised;
	// decide before payouts mutate the schedules.
	shuffleDay := false
	for _, in := range s.incomes {
		if in.PaymentDue(s.today) {
			shuffleDay = true
			break
		}
	}

	// Income payouts, distributed through the payment order.
	for _, in := range s.incomes {
		net, paid := in.Payout(s.today, s.married, s.taxYear, s.accounts, s.ledger)
		if !paid {
			continue
		}
		s.log.Debug().Stringer("date", s.today).Str("income", in.Name()).Stringer("net", net).Msg("payout")
		if err := Distribute(net, s.today, s.rules, s.accounts, s.debts, s.ledger); err != nil {
			return err
		}
	}

	// Asset appreciation.
	for _, a := range s.assets.All() {
		if gained := a.ApplyAppreciation(s.today); !gained.IsZero() {
			s.log.Debug().Stringer("date", s.today).Str("asset", a.Name()).Stringer("gained", gained).Msg("appreciation")
		}
	}

	// Account and debt interest.
	for _, a := range s.accounts {
		if _, err := a.ApplyInterest(s.today, s.ledger); err != nil {
			return err
		}
	}
	for _, d := range s.debts {
		if _, err := d.ApplyInterest(s.today); err != nil {
			return err
		}
	}

	// Capital gains.
	for _, a := range s.accounts {
		if _, err := a.ApplyCapitalGains(s.today, s.ledger); err != nil {
			return err
		}
	}

	// Inflation escalation.
	for _, b := range s.bills {
		b.ApplyEscalation(s.today)
	}
	for _, in := range s.incomes {
		in.ApplyEscalation(s.today)
	}

	// Bill then debt charges, each with one liquidation retry.
	for _, b := range s.bills {
		b := b
		err := s.chargeWithLiquidation(age, func() error {
			_, err := b.ApplyCharge(s.today, age, s.accounts, s.ledger, s.notify)
			return err
		})
		if err != nil {
			return fmt.Errorf("bill %q: %w", b.Name(), err)
		}
	}
	for _, d := range s.debts {
		d := d
		err := s.chargeWithLiquidation(age, func() error {
			_, err := d.Charge(s.today, age, s.accounts, s.assets, s.ledger, s.notify)
			return err
		})
		if err != nil {
			return fmt.Errorf("debt %q: %w", d.Name(), err)
		}
	}

	// Year boundary: rotate the tax record, and marriage by year kicks in.
	if s.today.Month() == time.January && s.today.Day() == 1 {
		s.taxLastYear, s.taxYear = s.taxYear, &TaxRecord{}
		if !s.married && s.yearMarried == s.today.Year() {
			s.married = true
		}
	}

	// Tax day reconciles the previous year's record.
	if s.today.Month() == time.April && s.today.Day() == 15 {
		if err := s.reconcileTaxes(age); err != nil {
			return fmt.Errorf("tax day: %w", err)
		}
	}

	if shuffleDay {
		if err := Shuffle(age, s.rules, s.accounts, s.ledger, s.notify); err != nil {
			return err
		}
	}

	s.today = s.today.Add(1)
	return nil
}

// reconcileTaxes settles last year's federal taxes: a refund lands in the
// first cash account; a shortfall is withdrawn from the first account whose
// post-tax balance covers it, or the person is bankrupt.
func (s *Simulation) reconcileTaxes(age Age) error {
	refund := s.taxLastYear.Refund(s.married)
	switch {
	case refund.IsPositive():
		cash := firstOfType(s.accounts, Cash)
		if cash == nil {
			return fmt.Errorf("no cash account for tax refund")
		}
		cash.Deposit(s.ledger.Take(IRS, refund))
	case refund.IsNegative():
		owed := refund.Neg()
		for _, a := range s.accounts {
			if a.PostTaxBalance(age).GreaterThan(owed) {
				got, err := a.Withdraw(owed, age, s.ledger, s.notify)
				if err != nil {
					return err
				}
				s.ledger.Give(IRS, got)
				return nil
			}
		}
		return &InsufficientFundsError{Needed: owed}
	}
	return nil
}

// activateNewEntities creates bills, debts (with their collateral assets) and
// income streams whose start date is today.
func (s *Simulation) activateNewEntities() {
	for _, bc := range s.cfg.Bills {
		if bc.StartDate == s.today {
			s.bills = append(s.bills, NewBill(s.today, bc))
		}
	}
	for _, dc := range s.cfg.Debts {
		if dc.StartDate == s.today {
			s.debts = append(s.debts, s.newDebt(s.today, dc))
		}
	}
	for _, ic := range s.cfg.Income {
		if ic.StartDate == s.today {
			s.incomes = append(s.incomes, NewIncomeStream(s.today, ic))
		}
	}
}

// sellScheduledAssets sells sellable assets whose sell date is today, into
// the first investment account.
func (s *Simulation) sellScheduledAssets() {
	investment := firstOfType(s.accounts, Investment)
	if investment == nil {
		return
	}
	for _, a := range s.assets.All() {
		if d := a.SellDate(); d != nil && *d == s.today && a.Sellable() {
			s.notify(Event{Kind: ScheduledSale, Name: a.Name(), Amount: a.PostTaxValue()})
			investment.Deposit(s.ledger.Take(Buyer, a.Sell()))
		}
	}
	s.assets.Compact()
}

// retireEndedEntities removes bills, debts and income streams whose end date
// has passed, rebuilding the slices rather than mutating them mid-iteration.
func (s *Simulation) retireEndedEntities() {
	bills := s.bills[:0]
	for _, b := range s.bills {
		if b.EndDate() == nil || !s.today.After(*b.EndDate()) {
			bills = append(bills, b)
		}
	}
	s.bills = bills

	debts := s.debts[:0]
	for _, d := range s.debts {
		if !s.today.After(d.EndDate()) {
			debts = append(debts, d)
		}
	}
	s.debts = debts

	incomes := s.incomes[:0]
	for _, in := range s.incomes {
		if !s.today.After(in.EndDate()) {
			incomes = append(incomes, in)
		}
	}
	s.incomes = incomes
}

// checkConservation verifies that no money appeared or vanished since day
// zero: the sum of all counterparty balances plus all account balances must
// stay within a cent of its starting value.
func (s *Simulation) checkConservation() error {
	current := s.ledger.Circulation(s.accountsTotal())
	drift := current.Sub(s.startingCirculation).Abs()
	if drift.GreaterThan(conservationTolerance) {
		return fmt.Errorf("conservation violated on %s: circulation drifted by %s", s.today, drift)
	}
	return nil
}

// Run steps the simulation until the output window closes, the person goes
// bankrupt, or the context is cancelled. A bankruptcy is returned as an error
// wrapping InsufficientFundsError; the caller can render the final state
// either way.
func (s *Simulation) Run(ctx context.Context) error {
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}
