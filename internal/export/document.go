// Package export renders a snapshot of the invoice to printable files.
package export

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/money"
	"github.com/andy/invoicedesk/internal/view"
)

// Document is a frozen copy of the invoice taken when an export starts.
// Renderers only read from it, so they can run off the UI goroutine.
type Document struct {
	Company      string
	Invoice      *domain.Invoice
	Totals       domain.Totals
	ItemsPerPage int
	Formatter    money.Formatter
	Defaults     view.Defaults
}

// Sheet formats the snapshot with the given formatter
func (d *Document) Sheet(f money.Formatter) view.Sheet {
	pages := domain.Repaginate(d.Invoice.Items, d.ItemsPerPage)
	return view.Build(d.Invoice, d.Totals, pages, f, d.Defaults)
}

// Renderer turns a document into file bytes
type Renderer interface {
	Render(ctx context.Context, doc *Document) ([]byte, error)
	Extension() string
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename returns Invoice_<number>_<YYYY-MM-DD>.<ext>. Characters that are
// not safe in file names are replaced with underscores.
func Filename(number, fallback string, date time.Time, ext string) string {
	n := strings.TrimSpace(number)
	if n == "" {
		n = fallback
	}
	n = strings.Trim(unsafeChars.ReplaceAllString(n, "_"), "_")
	if n == "" {
		n = "draft"
	}
	return fmt.Sprintf("Invoice_%s_%s.%s", n, date.Format(domain.DateLayout), strings.TrimPrefix(ext, "."))
}
