package forecast

// TaxRecord accumulates one calendar year of gross income and federal tax
// withheld, to be reconciled on the following year's tax day.
type TaxRecord struct {
	income   Money
	withheld Money
}

func (r *TaxRecord) Income() Money   { return r.income }
func (r *TaxRecord) Withheld() Money { return r.withheld }

// AddIncome accumulates gross income.
func (r *TaxRecord) AddIncome(amount Money) { r.income = r.income.Add(amount) }

// AddWithheld accumulates federal tax withheld.
func (r *TaxRecord) AddWithheld(amount Money) { r.withheld = r.withheld.Add(amount) }

// Refund returns withheld minus owed for the recorded year: positive is a
// refund, negative a bill.
func (r *TaxRecord) Refund(married bool) Money {
	return r.withheld.Sub(FederalTax(married, r.income))
}
