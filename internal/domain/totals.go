package domain

import "github.com/shopspring/decimal"

// Totals are derived from an Invoice by Recompute and never stored on their own
type Totals struct {
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
	BalanceDue decimal.Decimal // negative on overpayment
}

// Equal compares totals by value
func (t Totals) Equal(o Totals) bool {
	return t.Subtotal.Equal(o.Subtotal) &&
		t.TaxAmount.Equal(o.TaxAmount) &&
		t.Total.Equal(o.Total) &&
		t.BalanceDue.Equal(o.BalanceDue)
}
