package forecast

import (
	"fmt"
	"strings"

	"github.com/etnz/forecast/date"
)

// AccountType classifies an account for interest, capital gains, tax and
// early-withdrawal-penalty purposes.
type AccountType int

const (
	Cash AccountType = iota
	Savings
	Investment
	RothIRA
	HSA
	FourOhOneK
)

func (t AccountType) String() string {
	switch t {
	case Cash:
		return "cash"
	case Savings:
		return "savings"
	case Investment:
		return "investment"
	case RothIRA:
		return "roth_ira"
	case HSA:
		return "hsa"
	case FourOhOneK:
		return "fourk"
	default:
		panic(fmt.Sprintf("unknown account type %d", t))
	}
}

// ParseAccountType parses a config string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(s) {
	case "cash":
		return Cash, nil
	case "savings":
		return Savings, nil
	case "investment":
		return Investment, nil
	case "roth_ira":
		return RothIRA, nil
	case "hsa":
		return HSA, nil
	case "fourk", "401k":
		return FourOhOneK, nil
	default:
		return Cash, fmt.Errorf("unknown account type %q", s)
	}
}

// UnmarshalText lets account types decode straight from config files.
func (t *AccountType) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// gainsInterest reports whether the account type earns bank interest.
func (t AccountType) gainsInterest() bool { return t == Savings }

// accruesCapitalGains reports whether the account type grows with the market.
func (t AccountType) accruesCapitalGains() bool {
	switch t {
	case FourOhOneK, HSA, Investment, RothIRA:
		return true
	default:
		return false
	}
}

// Age is a person's age in whole calendar years and remaining months.
type Age struct {
	Years, Months int
}

// AgeOn returns the age on a given day for the given date of birth.
func AgeOn(dob, on date.Date) Age {
	y, m := date.Diff(dob, on)
	return Age{Years: y, Months: m}
}

// InMonths returns the age as a total number of months.
func (a Age) InMonths() int { return a.Years*12 + a.Months }

// Penalty-free withdrawal ages, in months.
const (
	retirementPenaltyFreeAge = 59*12 + 6 // 401k and Roth IRA
	hsaPenaltyFreeAge        = 65 * 12
)

// Flat tax and penalty rates applied on withdrawal.
const (
	capitalGainsTaxRate    = 0.15
	incomeTaxRate          = 0.22
	earlyRetirementPenalty = 0.10
	earlyHSAPenalty        = 0.20
)

// Account is a named pool of the simulated person's money.
type Account struct {
	name         string
	typ          AccountType
	balance      Money
	interestRate float64 // annual percentage, also the capital gains rate
	interest     date.Recurrence
	lastInterest date.Date

	paysCapitalGainsTax bool
	paysIncomeTax       bool
	untaxedGains        Money // accrued gains not yet taxed on withdrawal
}

// NewAccount builds an account from its configuration. The configured
// last-interest date is clamped so the first accrual is at most one period
// after today.
func NewAccount(today date.Date, cfg AccountConfig) *Account {
	rec := date.Recurrence{Every: cfg.InterestPeriodValue, Unit: cfg.InterestPeriodType}
	return &Account{
		name:                cfg.Name,
		typ:                 cfg.Type,
		balance:             M(cfg.Balance),
		interestRate:        cfg.InterestRate,
		interest:            rec,
		lastInterest:        rec.ClampStart(cfg.LastInterestDate, today),
		paysCapitalGainsTax: cfg.PaysCapitalGainsTax,
		paysIncomeTax:       cfg.PaysIncomeTax,
	}
}

func (a *Account) Name() string          { return a.name }
func (a *Account) Type() AccountType     { return a.typ }
func (a *Account) Balance() Money        { return a.balance }
func (a *Account) InterestRate() float64 { return a.interestRate }
func (a *Account) UntaxedGains() Money   { return a.untaxedGains }

// growthDue reports whether a growth accrual (interest or capital gains) is
// scheduled for today. A zero balance restarts the schedule instead, and the
// check deliberately advances lastInterest to do so: growth on nothing is
// nothing, and accrual must not back-date to before money arrived.
func (a *Account) growthDue(today date.Date) bool {
	if a.interestRate == 0 || a.interest.IsZero() {
		return false
	}
	if a.balance.IsZero() {
		a.lastInterest = today
		return false
	}
	return a.interest.IsDue(a.lastInterest, today)
}

// InterestDue reports whether bank interest accrues today.
func (a *Account) InterestDue(today date.Date) bool {
	return a.typ.gainsInterest() && a.growthDue(today)
}

// CapitalGainsDue reports whether market growth accrues today.
func (a *Account) CapitalGainsDue(today date.Date) bool {
	return a.typ.accruesCapitalGains() && a.growthDue(today)
}

// ApplyInterest credits today's daily-compounded interest from the bank.
// It returns the amount credited (zero when nothing was due).
func (a *Account) ApplyInterest(today date.Date, l *Ledger) (Money, error) {
	if !a.InterestDue(today) {
		return Zero, nil
	}
	return a.applyGrowth(today, l, Bank, false)
}

// ApplyCapitalGains credits today's daily-compounded growth from the stock
// market and accrues the gain as untaxed.
func (a *Account) ApplyCapitalGains(today date.Date, l *Ledger) (Money, error) {
	if !a.CapitalGainsDue(today) {
		return Zero, nil
	}
	return a.applyGrowth(today, l, StockMarket, true)
}

func (a *Account) applyGrowth(today date.Date, l *Ledger, from Counterparty, taxable bool) (Money, error) {
	gained := CompoundInterest(a.balance, a.interestRate, a.lastInterest, today)
	if gained.IsZero() {
		return Zero, nil
	}
	if gained.IsNegative() {
		return Zero, fmt.Errorf("account %q accrued negative growth %s", a.name, gained)
	}
	a.lastInterest = today
	a.balance = a.balance.Add(l.Take(from, gained))
	if taxable {
		a.untaxedGains = a.untaxedGains.Add(gained)
	}
	return gained, nil
}

// Deposit credits the amount unconditionally.
func (a *Account) Deposit(amount Money) { a.balance = a.balance.Add(amount) }

// withdrawalCosts returns the capital gains tax, income tax and
// early-withdrawal penalty owed on taking the given amount out at the given
// age, along with the portion of untaxed gains being realized.
func (a *Account) withdrawalCosts(amount Money, age Age) (capGains, income, penalty, realizedGains Money) {
	if a.paysCapitalGainsTax {
		realizedGains = Min(amount, a.untaxedGains)
		capGains = realizedGains.MulFloat(capitalGainsTaxRate)
	}
	if a.paysIncomeTax {
		income = amount.MulFloat(incomeTaxRate)
	}
	months := age.InMonths()
	switch a.typ {
	case FourOhOneK, RothIRA:
		if months < retirementPenaltyFreeAge {
			penalty = amount.MulFloat(earlyRetirementPenalty)
		}
	case HSA:
		if months < hsaPenaltyFreeAge {
			penalty = amount.MulFloat(earlyHSAPenalty)
		}
	}
	return capGains, income, penalty, realizedGains
}

// PostTaxBalance returns what the whole balance would deliver if withdrawn
// today: balance minus capital gains tax on all untaxed gains, income tax and
// any early-withdrawal penalty. It never mutates state.
func (a *Account) PostTaxBalance(age Age) Money {
	capGains, income, penalty, _ := a.withdrawalCosts(a.balance, age)
	if a.paysCapitalGainsTax {
		// the full untaxed gains would be realized, not just min(balance, gains)
		capGains = a.untaxedGains.MulFloat(capitalGainsTaxRate)
	}
	return a.balance.Sub(capGains).Sub(income).Sub(penalty)
}

// Withdraw debits amount plus all taxes and penalties, remits those to the
// IRS, and returns the net amount delivered. Insufficient balance is a fatal
// error: charge paths must pre-check with PostTaxBalance.
func (a *Account) Withdraw(amount Money, age Age, l *Ledger, notify Notify) (Money, error) {
	capGains, income, penalty, realizedGains := a.withdrawalCosts(amount, age)
	if penalty.IsPositive() {
		notify.send(Event{Kind: EarlyWithdrawal, Name: a.name, Amount: penalty})
	}
	total := amount.Add(capGains).Add(income).Add(penalty)
	if a.balance.LessThan(total) {
		return Zero, fmt.Errorf("account %q: withdrawing %s (with %s taxes and penalties) exceeds balance %s",
			a.name, amount, total.Sub(amount), a.balance)
	}
	a.untaxedGains = a.untaxedGains.Sub(realizedGains)
	if a.untaxedGains.IsNegative() {
		return Zero, fmt.Errorf("account %q: untaxed gains went negative", a.name)
	}
	a.balance = a.balance.Sub(total)
	l.Give(IRS, capGains)
	l.Give(IRS, income)
	l.Give(IRS, penalty)
	return amount, nil
}
