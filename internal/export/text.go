package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/invoicedesk/internal/view"
)

// TextRenderer writes a fixed-width plain text invoice for printing
type TextRenderer struct{}

// NewTextRenderer creates a new TextRenderer
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Extension returns the file extension
func (r *TextRenderer) Extension() string {
	return "txt"
}

// Render formats every page. Totals and signature follow the last page only.
func (r *TextRenderer) Render(ctx context.Context, doc *Document) ([]byte, error) {
	s := doc.Sheet(doc.Formatter)

	var b strings.Builder
	sep := strings.Repeat("=", 64)
	line := strings.Repeat("-", 64)

	for i, p := range s.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 {
			b.WriteString("\f")
		}

		if p.IsContinuation() {
			b.WriteString(continuationTitle(doc.Company, s.Number) + "\n")
			b.WriteString(sep + "\n")
		} else {
			writeTextHeader(&b, doc.Company, s, sep)
		}

		b.WriteString("\n" + line + "\n")
		b.WriteString(fmt.Sprintf("%-4s %-28s %10s %5s %12s\n", "#", "Description", "Rate", "Qty", "Amount"))
		b.WriteString(line + "\n")
		for _, row := range p.Rows {
			b.WriteString(fmt.Sprintf("%-4d %-28s %10s %5s %12s\n",
				row.Index, truncate(row.Description, 28), row.Rate, row.Quantity, row.Amount))
		}
		b.WriteString(line + "\n")

		if p.IsLast {
			writeTextTotals(&b, s)
			b.WriteString(sep + "\n")
		}
		b.WriteString(fmt.Sprintf("%64s\n", fmt.Sprintf("Page %d of %d", p.Number, s.PageCount())))
	}

	return []byte(b.String()), nil
}

func writeTextHeader(b *strings.Builder, company string, s view.Sheet, sep string) {
	if company != "" {
		b.WriteString(company + "\n")
	}
	b.WriteString("INVOICE\n")
	b.WriteString(sep + "\n")
	b.WriteString(fmt.Sprintf("Invoice #:  %s\n", s.Number))
	b.WriteString(fmt.Sprintf("Date:       %s\n", s.IssueDate))
	b.WriteString(fmt.Sprintf("Due:        %s\n", s.DueDate))

	b.WriteString("\nBill To:\n")
	b.WriteString(fmt.Sprintf("  %s\n", s.ClientName))
	for _, l := range s.ClientAddress {
		b.WriteString(fmt.Sprintf("  %s\n", l))
	}
	b.WriteString(fmt.Sprintf("  %s\n", s.ClientContact))
}

func writeTextTotals(b *strings.Builder, s view.Sheet) {
	b.WriteString(fmt.Sprintf("%51s %12s\n", "Subtotal", s.Subtotal))
	if s.ShowTax {
		b.WriteString(fmt.Sprintf("%51s %12s\n", s.TaxLabel, s.TaxAmount))
	}
	b.WriteString(fmt.Sprintf("%51s %12s\n", "TOTAL", s.Total))
	b.WriteString(fmt.Sprintf("%51s %12s\n", "Received", s.Received))
	b.WriteString(fmt.Sprintf("%51s %12s\n", "Balance Due", s.BalanceDue))

	if s.HasSignature {
		b.WriteString("\nSigned: [signature on file]\n")
	} else {
		b.WriteString("\nAuthorised signature: ______________________\n")
	}
}

// continuationTitle heads every page after the first
func continuationTitle(company, number string) string {
	title := fmt.Sprintf("Invoice %s - Continued", number)
	if company == "" {
		return title
	}
	return company + " / " + title
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
