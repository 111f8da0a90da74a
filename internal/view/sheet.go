// Package view renders an invoice into the read-only display text shown in
// View mode and consumed by the exporters.
package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/money"
)

// Placeholder is shown for empty optional fields
const Placeholder = "-"

// Defaults are fallbacks used when the invoice leaves a field empty
type Defaults struct {
	Number   string
	TaxLabel string // e.g. "GST"
}

// RowView is one formatted line item
type RowView struct {
	Index       int // 1-based position in the document
	ID          int
	Description string
	Rate        string
	Quantity    string
	Amount      string
}

// PageView is one printable page of rows
type PageView struct {
	Number int
	Rows   []RowView
	IsLast bool
}

// IsContinuation reports whether the page follows the first page
func (p PageView) IsContinuation() bool {
	return p.Number > 1
}

// Sheet holds every field of the document as display text
type Sheet struct {
	Number        string
	IssueDate     string
	DueDate       string
	ClientName    string
	ClientAddress []string
	ClientContact string

	Rows  []RowView
	Pages []PageView

	Subtotal   string
	ShowTax    bool
	TaxLabel   string
	TaxAmount  string
	Total      string
	Received   string
	BalanceDue string

	HasSignature bool
}

// PageCount returns the number of pages
func (s Sheet) PageCount() int {
	return len(s.Pages)
}

// Build formats an invoice, its totals and its pages
func Build(inv *domain.Invoice, totals domain.Totals, pages []domain.Page, f money.Formatter, d Defaults) Sheet {
	s := Sheet{
		Number:        orDefault(inv.Number, d.Number),
		IssueDate:     formatDate(inv.IssueDate),
		DueDate:       formatDate(inv.DueDate),
		ClientName:    orDefault(inv.Client.Name, Placeholder),
		ClientAddress: addressLines(inv.Client.Address),
		ClientContact: orDefault(inv.Client.Contact, Placeholder),
		Subtotal:      f.Format(totals.Subtotal),
		ShowTax:       inv.TaxEnabled,
		TaxLabel:      taxLabel(d.TaxLabel, inv),
		TaxAmount:     f.Format(totals.TaxAmount),
		Total:         f.Format(totals.Total),
		Received:      f.Format(inv.ReceivedAmount),
		BalanceDue:    f.Format(totals.BalanceDue),
		HasSignature:  inv.Signature != nil,
	}

	index := make(map[int]int, len(inv.Items))
	s.Rows = make([]RowView, 0, len(inv.Items))
	for i, item := range inv.Items {
		row := formatRow(i+1, item, f)
		index[item.ID] = i
		s.Rows = append(s.Rows, row)
	}

	s.Pages = make([]PageView, 0, len(pages))
	for _, p := range pages {
		pv := PageView{Number: p.Number, IsLast: p.IsLast, Rows: make([]RowView, 0, len(p.Items))}
		for _, item := range p.Items {
			if i, ok := index[item.ID]; ok {
				pv.Rows = append(pv.Rows, s.Rows[i])
			}
		}
		s.Pages = append(s.Pages, pv)
	}

	return s
}

func formatRow(index int, item *domain.LineItem, f money.Formatter) RowView {
	return RowView{
		Index:       index,
		ID:          item.ID,
		Description: orDefault(singleLine(item.Description), Placeholder),
		Rate:        f.Format(item.Rate),
		Quantity:    strconv.Itoa(item.Quantity),
		Amount:      f.Format(item.Amount),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return Placeholder
	}
	return t.Format(domain.DisplayDateLayout)
}

func addressLines(addr string) []string {
	var lines []string
	for _, line := range strings.Split(addr, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return []string{Placeholder}
	}
	return lines
}

func taxLabel(name string, inv *domain.Invoice) string {
	if name == "" {
		name = "Tax"
	}
	return fmt.Sprintf("%s (%s%%)", name, inv.TaxRate.String())
}

// singleLine folds line breaks and runs of whitespace into single spaces so
// a description fits one table row
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
