package forecast

import (
	"github.com/etnz/forecast/date"
)

// Payroll withholding rates and caps (2025).
const (
	socialSecurityRate      = 0.062
	socialSecurityAnnualCap = 10453.20 // 6.2% of the $168,600 wage base
	medicareRate            = 0.0145
	medicareSurtaxRate      = 0.009
	medicareSurtaxFloor     = 200_000
)

// IncomeStream is a named recurring payroll source. Each payout nets the
// prorated gross down through benefits, retirement contributions and taxes,
// and hands the remainder to the payment-order waterfall.
type IncomeStream struct {
	name        string
	annualGross Money // escalates over time

	periodHealthPremium Money
	escalation          Escalation

	annualFourOhOneK         Money
	annualFourOhOneKEmployer Money
	annualHSA                Money
	annualHSAEmployer        Money

	stateTaxPct float64
	cityTaxPct  float64

	payment     date.Recurrence
	start       date.Date
	end         date.Date
	lastPayment date.Date
}

// NewIncomeStream builds an income stream from its configuration.
func NewIncomeStream(today date.Date, cfg IncomeConfig) *IncomeStream {
	payment := date.Recurrence{Every: cfg.PaymentPeriodValue, Unit: cfg.PaymentPeriodType}
	inflation := date.Recurrence{Every: cfg.AnnualInflationPeriodValue, Unit: cfg.AnnualInflationPeriodType}
	return &IncomeStream{
		name:                     cfg.Name,
		annualGross:              M(cfg.Gross),
		periodHealthPremium:      M(cfg.HealthInsurancePremium),
		escalation:               newEscalation(today, cfg.StartDate, cfg.AnnualInflationFlat, cfg.AnnualInflationPercentage, inflation),
		annualFourOhOneK:         M(cfg.FourOhOneK),
		annualFourOhOneKEmployer: M(cfg.FourOhOneKEmployerContribution),
		annualHSA:                M(cfg.HSA),
		annualHSAEmployer:        M(cfg.HSAEmployerContribution),
		stateTaxPct:              cfg.StateTaxPercentage,
		cityTaxPct:               cfg.CityTaxPercentage,
		payment:                  payment,
		start:                    cfg.StartDate,
		end:                      cfg.EndDate,
		lastPayment:              payment.ClampStart(cfg.StartDate, today),
	}
}

func (s *IncomeStream) Name() string       { return s.name }
func (s *IncomeStream) AnnualGross() Money { return s.annualGross }
func (s *IncomeStream) EndDate() date.Date { return s.end }

// PaymentDue reports whether a payout lands today.
func (s *IncomeStream) PaymentDue(today date.Date) bool {
	if s.annualGross.IsZero() {
		return false
	}
	if today == s.start {
		return true
	}
	return s.payment.IsDue(s.lastPayment, today)
}

// ApplyEscalation raises the annual gross by the prorated inflation amount
// when a raise is scheduled today, returning the increase.
func (s *IncomeStream) ApplyEscalation(today date.Date) Money {
	if !s.escalation.Due(today) {
		return Zero
	}
	increase := s.escalation.Increase(s.annualGross, today)
	s.annualGross = s.annualGross.Add(increase)
	return increase
}

// periodDays converts the pay period ending today into days for prorating
// annual figures. Monthly periods use the exact span since the last payment.
func (s *IncomeStream) periodDays(today date.Date) int {
	if s.payment.Unit == date.Months {
		return today.Sub(s.lastPayment)
	}
	return s.payment.DaysIn(today)
}

// Payout runs today's payroll, if due and within the stream's window:
// the prorated gross is taken from the employer, withholdings fan out to
// their counterparties, retirement and HSA contributions land in the first
// matching accounts, federal withholding accrues in the year's tax record,
// and the remaining net is returned for payment-order distribution.
func (s *IncomeStream) Payout(today date.Date, married bool, taxes *TaxRecord, accounts []*Account, l *Ledger) (Money, bool) {
	if today.After(s.end) || today.Before(s.start) || !s.PaymentDue(today) {
		return Zero, false
	}
	days := s.periodDays(today)
	if days == 0 || today.Sub(s.lastPayment) < days {
		// Due but a full period has not elapsed (possible right after creation);
		// skip the payout but restart the schedule from today.
		s.lastPayment = today
		return Zero, false
	}
	prorate := float64(days) / 365

	// Gross.
	gross := s.annualGross.MulFloat(prorate)
	taxes.AddIncome(gross)
	net := l.Take(Employer, gross)

	// Health insurance premium (a flat per-period amount, not prorated).
	net = net.Sub(s.periodHealthPremium)
	l.Give(HealthcareProvider, s.periodHealthPremium)

	// 401k: employee contribution out of the paycheck, employer match on top.
	fourk := s.annualFourOhOneK.MulFloat(prorate)
	net = net.Sub(fourk)
	depositToFirst(accounts, FourOhOneK, fourk)
	fourkMatch := s.annualFourOhOneKEmployer.MulFloat(prorate)
	depositToFirst(accounts, FourOhOneK, l.Take(Employer, fourkMatch))

	// HSA: both contributions come out of the paycheck.
	hsa := s.annualHSA.MulFloat(prorate)
	net = net.Sub(hsa)
	depositToFirst(accounts, HSA, hsa)
	hsaMatch := s.annualHSAEmployer.MulFloat(prorate)
	net = net.Sub(hsaMatch)
	depositToFirst(accounts, HSA, hsaMatch)

	// Federal tax, withheld against the annualized gross.
	federal := FederalTax(married, s.annualGross).MulFloat(prorate)
	net = net.Sub(federal)
	l.Give(IRS, federal)
	taxes.AddWithheld(federal)

	// State and city taxes, flat percentages of the period gross.
	state := gross.MulFloat(s.stateTaxPct / 100)
	net = net.Sub(state)
	l.Give(StateGovernment, state)
	city := gross.MulFloat(s.cityTaxPct / 100)
	net = net.Sub(city)
	l.Give(CityGovernment, city)

	// Social security, capped at the annual wage base.
	annualSS := s.annualGross.MulFloat(socialSecurityRate)
	if annualSS.GreaterThan(M(socialSecurityAnnualCap)) {
		annualSS = M(socialSecurityAnnualCap)
	}
	ss := annualSS.MulFloat(prorate)
	net = net.Sub(ss)
	l.Give(SocialSecurity, ss)

	// Medicare: 1.45% of gross plus the 0.9% surtax on gross over $200k.
	annualMedicare := s.annualGross.MulFloat(medicareRate)
	if excess := s.annualGross.Sub(M(medicareSurtaxFloor)); excess.IsPositive() {
		annualMedicare = annualMedicare.Add(excess.MulFloat(medicareSurtaxRate))
	}
	medicare := annualMedicare.MulFloat(prorate)
	net = net.Sub(medicare)
	l.Give(Treasury, medicare)

	s.lastPayment = today
	return net, true
}

// depositToFirst deposits into the first account of the given type, if any.
func depositToFirst(accounts []*Account, typ AccountType, amount Money) {
	for _, a := range accounts {
		if a.Type() == typ {
			a.Deposit(amount)
			return
		}
	}
}
