package forecast

import (
	"math"

	"github.com/etnz/forecast/date"
)

// CompoundInterest returns the interest earned by principal between last and
// today at the given annual percentage rate, compounded daily:
//
//	principal × ((1 + rate/100/365)^days − 1)
//
// It returns exactly zero for a zero rate or when today is not after last.
// When the daily factor 1+r is not positive (an annual rate at or below
// -36500%) it falls back to simple interest. For a non-negative rate the
// result is never negative; callers treat a negative result as a fatal
// invariant violation.
func CompoundInterest(principal Money, annualRatePct float64, last, today date.Date) Money {
	if annualRatePct == 0 || !today.After(last) {
		return Zero
	}
	days := today.Sub(last)
	daily := annualRatePct / 100 / 365
	if 1+daily <= 0 {
		return principal.MulFloat(daily * float64(days))
	}
	return principal.MulFloat(math.Pow(1+daily, float64(days)) - 1)
}

// 2025 federal income tax brackets.
type bracket struct {
	lower, upper, rate float64
}

const (
	singleStandardDeduction  = 14600.0
	marriedStandardDeduction = 29200.0 // married filing jointly
)

var singleBrackets = []bracket{
	{0, 11600, 0.10},
	{11600, 47150, 0.12},
	{47150, 100525, 0.22},
	{100525, 191950, 0.24},
	{191950, 243725, 0.32},
	{243725, 609350, 0.35},
	{609350, math.Inf(1), 0.37},
}

var marriedBrackets = []bracket{
	{0, 23200, 0.10},
	{23200, 94300, 0.12},
	{94300, 201050, 0.22},
	{201050, 383900, 0.24},
	{383900, 487450, 0.32},
	{487450, 731200, 0.35},
	{731200, math.Inf(1), 0.37},
}

// FederalTax returns the annual federal income tax on the given gross income,
// applying the standard deduction then the progressive brackets. Income below
// the deduction owes zero.
func FederalTax(married bool, gross Money) Money {
	deduction, brackets := singleStandardDeduction, singleBrackets
	if married {
		deduction, brackets = marriedStandardDeduction, marriedBrackets
	}
	taxable := gross.Float() - deduction
	if taxable <= 0 {
		return Zero
	}
	var tax float64
	for _, b := range brackets {
		if taxable <= b.lower {
			break
		}
		tax += (math.Min(taxable, b.upper) - b.lower) * b.rate
	}
	return M(tax)
}

// MinimumPayment returns the standard amortized payment for a loan of the
// given principal at the given annual percentage rate, paid monthly between
// start and end. The result is always non-negative.
func MinimumPayment(annualRatePct float64, principal Money, start, end date.Date) Money {
	years := float64(end.Sub(start)) / 365
	n := years * 12
	if n <= 0 {
		return principal.Abs()
	}
	r := annualRatePct / 100 / 12
	pv := principal.Float()
	var pmt float64
	if r == 0 {
		pmt = pv / n
	} else {
		pmt = r * pv / (1 - math.Pow(1+r, -n))
	}
	return M(math.Abs(pmt))
}
