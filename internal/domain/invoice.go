package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andy/invoicedesk/internal/money"
	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the form (and record) date format
	DateLayout = "2006-01-02"
	// DisplayDateLayout is how dates are shown on the sheet
	DisplayDateLayout = "02-01-2006"
)

var hundred = decimal.NewFromInt(100)

// Invoice is the full document state. Items are ordered and never empty.
type Invoice struct {
	Number         string
	IssueDate      *time.Time
	DueDate        *time.Time
	Client         Client
	Items          []*LineItem
	TaxEnabled     bool
	TaxRate        decimal.Decimal // percentage, e.g. 18 for 18%
	ReceivedAmount decimal.Decimal
	Signature      *Signature

	// nextID only grows, so removed row IDs are never handed out again
	nextID int
}

// NewInvoice creates an invoice with a single empty row
func NewInvoice(number string, issued time.Time, taxRate decimal.Decimal) *Invoice {
	inv := &Invoice{
		Number:         number,
		TaxRate:        taxRate,
		ReceivedAmount: decimal.Zero,
		nextID:         1,
	}
	if !issued.IsZero() {
		d := truncateDay(issued)
		inv.IssueDate = &d
	}
	inv.AddItem()
	return inv
}

// AddItem appends an empty row and returns it
func (inv *Invoice) AddItem() *LineItem {
	if inv.nextID < 1 {
		inv.nextID = 1
	}
	item := newLineItem(inv.nextID)
	inv.nextID++
	inv.Items = append(inv.Items, item)
	return item
}

// RemoveItem deletes the row with the given ID. The last remaining row
// cannot be removed.
func (inv *Invoice) RemoveItem(id int) error {
	idx := inv.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: row %d", ErrItemNotFound, id)
	}
	if len(inv.Items) == 1 {
		return ErrLastItem
	}

	items := make([]*LineItem, 0, len(inv.Items)-1)
	items = append(items, inv.Items[:idx]...)
	items = append(items, inv.Items[idx+1:]...)
	inv.Items = items
	return nil
}

// Item returns the row with the given ID
func (inv *Invoice) Item(id int) (*LineItem, error) {
	idx := inv.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: row %d", ErrItemNotFound, id)
	}
	return inv.Items[idx], nil
}

func (inv *Invoice) indexOf(id int) int {
	for i, item := range inv.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// ReplaceItems discards every row and rebuilds the list from records.
// New rows get fresh IDs.
func (inv *Invoice) ReplaceItems(records []ItemRecord) {
	inv.Items = make([]*LineItem, 0, len(records))
	for _, rec := range records {
		item := inv.AddItem()
		item.SetDescription(rec.Description)
		item.SetRate(rec.Rate)
		item.SetQuantity(rec.Qty)
	}
	if len(inv.Items) == 0 {
		inv.AddItem()
	}
}

// SetTaxRate parses the tax percentage; invalid input becomes 0
func (inv *Invoice) SetTaxRate(raw string) decimal.Decimal {
	inv.TaxRate = money.ParseAmount(raw)
	return inv.TaxRate
}

// SetReceivedAmount parses the received amount; invalid input becomes 0
func (inv *Invoice) SetReceivedAmount(raw string) decimal.Decimal {
	inv.ReceivedAmount = money.ParseAmount(raw)
	return inv.ReceivedAmount
}

// SetIssueDate sets the issue date. Empty input clears it.
func (inv *Invoice) SetIssueDate(raw string) error {
	d, err := ParseDate(raw)
	if err != nil {
		return err
	}
	inv.IssueDate = d
	return nil
}

// SetDueDate sets the due date. Empty input clears it.
func (inv *Invoice) SetDueDate(raw string) error {
	d, err := ParseDate(raw)
	if err != nil {
		return err
	}
	inv.DueDate = d
	return nil
}

// Recompute refreshes every row amount and derives the totals.
// Nothing from a previous call is reused.
func (inv *Invoice) Recompute() Totals {
	subtotal := decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(item.Recompute())
	}

	taxAmount := decimal.Zero
	if inv.TaxEnabled {
		taxAmount = subtotal.Mul(inv.TaxRate).Div(hundred)
	}

	total := subtotal.Add(taxAmount)
	return Totals{
		Subtotal:   subtotal,
		TaxAmount:  taxAmount,
		Total:      total,
		BalanceDue: total.Sub(inv.ReceivedAmount),
	}
}

// Clone returns a deep copy
func (inv *Invoice) Clone() *Invoice {
	c := *inv
	c.Items = make([]*LineItem, len(inv.Items))
	for i, item := range inv.Items {
		c.Items[i] = item.clone()
	}
	if inv.IssueDate != nil {
		d := *inv.IssueDate
		c.IssueDate = &d
	}
	if inv.DueDate != nil {
		d := *inv.DueDate
		c.DueDate = &d
	}
	if inv.Signature != nil {
		c.Signature = inv.Signature.clone()
	}
	return &c
}

// Validate returns an error if the invoice is invalid
func (inv *Invoice) Validate() error {
	if len(inv.Items) == 0 {
		return errors.New("invoice has no line items")
	}
	if inv.IssueDate != nil && inv.DueDate != nil && inv.DueDate.Before(*inv.IssueDate) {
		return errors.New("due date must not be before issue date")
	}
	if inv.TaxRate.IsNegative() {
		return errors.New("tax rate cannot be negative")
	}
	return nil
}

// ParseDate accepts YYYY-MM-DD or DD-MM-YYYY. Empty input returns nil.
func ParseDate(raw string) (*time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{DateLayout, DisplayDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, s)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
