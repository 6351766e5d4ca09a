package forecast

import (
	"fmt"
	"sort"

	"github.com/etnz/forecast/date"
)

// DebtTarget is the payment-order target that routes money to debt paydown
// instead of an account. Its threshold is a minimum-interest-rate filter.
const DebtTarget = "debt"

// PaymentRule is one entry of the payment order: deposit into a named account
// while it sits below its threshold, or pay down debts at or above a minimum
// rate.
type PaymentRule struct {
	Target       string // account name, or DebtTarget
	Threshold    Money  // account goal; meaningless when !HasThreshold
	HasThreshold bool
	MinRate      float64 // debt rules only
}

// IsDebt reports whether the rule routes to debt paydown.
func (r PaymentRule) IsDebt() bool { return r.Target == DebtTarget }

// An account can never sit more than this far from its threshold before the
// rebalancing pass moves money.
var rebalanceSlack = M(1000)

// drainAccounts withdraws the charge across accounts in their given order,
// draining each fully before moving on, and remits everything withdrawn to
// the given counterparty. It returns the total withdrawn (the full charge on
// success).
//
// If the accounts' combined post-tax balances cannot cover the charge it
// returns an InsufficientFundsError without touching anything.
func drainAccounts(charge Money, age Age, accounts []*Account, l *Ledger, to Counterparty, notify Notify) (Money, error) {
	var total Money
	for _, a := range accounts {
		total = total.Add(a.PostTaxBalance(age))
	}
	if total.LessThan(charge) {
		return Zero, &InsufficientFundsError{Needed: charge}
	}
	remaining := charge
	var withdrawn Money
	for _, a := range accounts {
		available := a.PostTaxBalance(age)
		if available.GreaterThan(remaining) {
			got, err := a.Withdraw(remaining, age, l, notify)
			if err != nil {
				return withdrawn, err
			}
			l.Give(to, got)
			return withdrawn.Add(got), nil
		}
		got, err := a.Withdraw(available, age, l, notify)
		if err != nil {
			return withdrawn, err
		}
		l.Give(to, got)
		withdrawn = withdrawn.Add(got)
		remaining = remaining.Sub(got)
	}
	return withdrawn, nil
}

// Distribute walks the payment order and allocates the payout: debt rules pay
// down the highest-rate eligible debts first (ties broken by original order)
// until the rollover is exhausted; an account rule absorbs the whole rollover
// when the account is below its threshold (or has none). A rule naming an
// unknown account is a fatal configuration error.
func Distribute(payout Money, today date.Date, rules []PaymentRule, accounts []*Account, debts []*Debt, l *Ledger) error {
	rollover := payout
	byRate := make([]*Debt, len(debts))
	copy(byRate, debts)
	sort.SliceStable(byRate, func(i, j int) bool {
		return byRate[i].InterestRate(today) > byRate[j].InterestRate(today)
	})
	for _, rule := range rules {
		if rollover.IsZero() {
			return nil
		}
		if rule.IsDebt() {
			for _, d := range byRate {
				if rollover.IsZero() {
					break
				}
				if d.InterestRate(today) < rule.MinRate {
					continue
				}
				balance := d.Balance(today)
				if !balance.IsPositive() {
					continue
				}
				paid := Min(balance, rollover)
				if err := d.Pay(paid); err != nil {
					return err
				}
				l.Give(Debtor, paid)
				rollover = rollover.Sub(paid)
			}
			continue
		}
		account := findAccount(accounts, rule.Target)
		if account == nil {
			return fmt.Errorf("payment order names unknown account %q", rule.Target)
		}
		if !rule.HasThreshold || account.Balance().LessThan(rule.Threshold) {
			account.Deposit(rollover)
			return nil
		}
	}
	// Nothing in the order wanted the remainder; it stays with the first
	// cash account rather than evaporating.
	if rollover.IsPositive() {
		cash := firstOfType(accounts, Cash)
		if cash == nil {
			return fmt.Errorf("no cash account to absorb undistributed payout %s", rollover)
		}
		cash.Deposit(rollover)
	}
	return nil
}

func findAccount(accounts []*Account, name string) *Account {
	for _, a := range accounts {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

func firstOfType(accounts []*Account, typ AccountType) *Account {
	for _, a := range accounts {
		if a.Type() == typ {
			return a
		}
	}
	return nil
}

// thresholdFor returns the highest threshold the payment order configures for
// the account. An explicit unconditional rule (no threshold) means the
// account has no target at all, reported as ok=false.
func thresholdFor(rules []PaymentRule, a *Account) (threshold Money, ok bool) {
	var highest Money
	for _, rule := range rules {
		if rule.IsDebt() || rule.Target != a.Name() {
			continue
		}
		if !rule.HasThreshold {
			return Zero, false
		}
		if rule.Threshold.GreaterThan(highest) {
			highest = rule.Threshold
		}
	}
	if highest.IsZero() {
		return Zero, false
	}
	return highest, true
}

// overfilledAccount finds an account holding more than the rebalancing slack
// above its threshold, scanning cash, then savings, then investment accounts.
func overfilledAccount(rules []PaymentRule, accounts []*Account) (*Account, Money) {
	for _, typ := range []AccountType{Cash, Savings, Investment} {
		for _, a := range accounts {
			if a.Type() != typ {
				continue
			}
			threshold, ok := thresholdFor(rules, a)
			if !ok {
				continue
			}
			overfill := a.Balance().Sub(threshold)
			if overfill.GreaterThan(rebalanceSlack) {
				return a, overfill
			}
		}
	}
	return nil, Zero
}

// underfilledAccount finds the first account in payment-order sequence
// sitting more than the rebalancing slack below its threshold.
func underfilledAccount(rules []PaymentRule, accounts []*Account) (*Account, Money) {
	for _, rule := range rules {
		if rule.IsDebt() || !rule.HasThreshold {
			continue
		}
		a := findAccount(accounts, rule.Target)
		if a == nil {
			continue
		}
		missing := rule.Threshold.Sub(a.Balance())
		if missing.GreaterThan(rebalanceSlack) {
			return a, missing
		}
	}
	return nil, Zero
}

// spareFunds finds the first account with money to spare, scanning cash then
// savings: spare is the balance above the account's threshold, or the whole
// post-tax balance when no threshold is configured.
func spareFunds(age Age, rules []PaymentRule, accounts []*Account) (*Account, Money) {
	for _, typ := range []AccountType{Cash, Savings} {
		for _, a := range accounts {
			if a.Type() != typ {
				continue
			}
			threshold, ok := thresholdFor(rules, a)
			if !ok {
				return a, a.PostTaxBalance(age)
			}
			overfill := a.Balance().Sub(threshold)
			if overfill.GreaterThan(rebalanceSlack) {
				return a, overfill
			}
		}
	}
	return nil, Zero
}

// Shuffle rebalances accounts against their payment-order thresholds: first
// excess above thresholds flows to underfilled accounts (or the first cash
// account), then underfilled accounts pull from whatever spare funds remain.
// Run once per day the payment order is exercised.
func Shuffle(age Age, rules []PaymentRule, accounts []*Account, l *Ledger, notify Notify) error {
	// Drain overfilled accounts.
	for {
		over, overfill := overfilledAccount(rules, accounts)
		if over == nil {
			break
		}
		under, _ := underfilledAccount(rules, accounts)
		if under == nil {
			under = firstOfType(accounts, Cash)
			if under == nil {
				return fmt.Errorf("rebalancing requires at least one cash account")
			}
		}
		if over == under {
			break
		}
		got, err := over.Withdraw(overfill, age, l, notify)
		if err != nil {
			return err
		}
		under.Deposit(got)
	}
	// Top up underfilled accounts from spare funds.
	for {
		under, missing := underfilledAccount(rules, accounts)
		if under == nil {
			break
		}
		spare, amount := spareFunds(age, rules, accounts)
		if spare == nil || spare == under {
			break
		}
		move := Min(amount, missing)
		// Taxed donors leave a sliver of balance behind on every withdrawal,
		// so their spare funds approach zero without reaching it. Below a
		// cent the pass cannot make progress.
		if move.LessThan(M(0.01)) {
			break
		}
		got, err := spare.Withdraw(move, age, l, notify)
		if err != nil {
			return err
		}
		under.Deposit(got)
	}
	return nil
}
