package domain

import (
	"github.com/andy/invoicedesk/internal/money"
	"github.com/shopspring/decimal"
)

// LineItem is one invoice row. Amount is derived from Rate and Quantity
// and is overwritten on every Recompute.
type LineItem struct {
	ID          int
	Description string
	Rate        decimal.Decimal
	Quantity    int
	Amount      decimal.Decimal
}

func newLineItem(id int) *LineItem {
	return &LineItem{
		ID:       id,
		Rate:     decimal.Zero,
		Quantity: 1,
		Amount:   decimal.Zero,
	}
}

// SetDescription updates the row description
func (li *LineItem) SetDescription(s string) {
	li.Description = s
}

// SetRate parses and stores the unit rate, returning the normalized value
func (li *LineItem) SetRate(raw string) decimal.Decimal {
	li.Rate = money.ParseRate(raw)
	li.Recompute()
	return li.Rate
}

// SetQuantity parses and stores the quantity, returning the normalized value
func (li *LineItem) SetQuantity(raw string) int {
	li.Quantity = money.ParseQuantity(raw)
	li.Recompute()
	return li.Quantity
}

// Recompute refreshes Amount from Rate and Quantity
func (li *LineItem) Recompute() decimal.Decimal {
	li.Amount = money.ComputeAmount(li.Rate, li.Quantity)
	return li.Amount
}

func (li *LineItem) clone() *LineItem {
	c := *li
	return &c
}
