package export

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/view"
)

var (
	colorPrimary = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// PDFRenderer lays the invoice out on A4 pages with maroto
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDFRenderer
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Extension returns the file extension
func (r *PDFRenderer) Extension() string {
	return "pdf"
}

// Render produces one PDF page per invoice page. The core PDF fonts are
// Latin-1 only, so the currency symbol falls back to its code when needed.
func (r *PDFRenderer) Render(ctx context.Context, doc *Document) ([]byte, error) {
	s := doc.Sheet(doc.Formatter.PlainSymbol())

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+s.Number, true).
		WithAuthor(doc.Company, true).
		Build()

	m := maroto.New(cfg)

	for _, p := range s.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var rows []core.Row
		if p.IsContinuation() {
			rows = append(rows, continuationRow(doc.Company, s.Number))
		} else {
			rows = append(rows, headerRows(doc.Company, s)...)
		}
		rows = append(rows, tableHeaderRow())
		for _, item := range p.Rows {
			rows = append(rows, itemRow(item))
		}
		rows = append(rows, line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))

		if p.IsLast {
			rows = append(rows, totalsRows(s)...)
			rows = append(rows, signatureRows(doc.Invoice.Signature)...)
		}
		rows = append(rows, pageNumberRow(p.Number, s.PageCount()))

		m.AddPages(page.New().Add(rows...))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return out.GetBytes(), nil
}

func headerRows(company string, s view.Sheet) []core.Row {
	rows := []core.Row{
		row.New(16).Add(
			col.New(7).Add(
				text.New(company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			),
			col.New(5).Add(
				text.New("INVOICE", props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Right, Top: 1}),
				text.New("# "+s.Number, props.Text{Size: 9, Align: align.Right, Top: 9, Color: colorGray}),
			),
		),
		line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}),
	}

	billTo := []core.Component{
		text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
		text.New(s.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
	}
	top := 11.0
	for _, l := range s.ClientAddress {
		billTo = append(billTo, text.New(l, props.Text{Size: 8, Top: top}))
		top += 4
	}
	billTo = append(billTo, text.New(s.ClientContact, props.Text{Size: 8, Top: top, Color: colorGray}))

	rows = append(rows, row.New(top+6).Add(
		col.New(7).Add(billTo...),
		col.New(5).Add(
			text.New("Invoice date: "+s.IssueDate, props.Text{Size: 9, Align: align.Right, Top: 6}),
			text.New("Due date: "+s.DueDate, props.Text{Size: 9, Align: align.Right, Top: 11}),
		),
	))
	rows = append(rows, row.New(4))
	return rows
}

func continuationRow(company, number string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(text.New(continuationTitle(company, number), props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
		})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Description", 5, align.Left),
		h("Rate", 2, align.Right),
		h("Qty", 1, align.Center),
		h("Amount", 3, align.Right),
	)
}

func itemRow(item view.RowView) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(fmt.Sprint(item.Index), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(5).Add(text.New(item.Description, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(item.Rate, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(item.Quantity, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New(item.Amount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func totalsRows(s view.Sheet) []core.Row {
	type entry struct {
		label, value string
		grand        bool
	}
	entries := []entry{{label: "Subtotal", value: s.Subtotal}}
	if s.ShowTax {
		entries = append(entries, entry{label: s.TaxLabel, value: s.TaxAmount})
	}
	entries = append(entries,
		entry{label: "Total", value: s.Total, grand: true},
		entry{label: "Received", value: s.Received},
		entry{label: "Balance Due", value: s.BalanceDue, grand: true},
	)

	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}
		if e.grand {
			p.Style = fontstyle.Bold
			p.Color = colorPrimary
		}
		rows = append(rows, row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(e.label, p)),
			col.New(3).Add(text.New(e.value, p)),
		))
	}
	return rows
}

func signatureRows(sig *domain.Signature) []core.Row {
	rows := []core.Row{row.New(8)}

	sigCol := col.New(4).Add(line.New(props.Line{Color: colorGray, Thickness: 0.3, OffsetPercent: 95}))
	if ext, ok := imageExtension(sig); ok {
		sigCol = col.New(4).Add(image.NewFromBytes(sig.Data, ext, props.Rect{Percent: 90, Center: true}))
	}
	rows = append(rows, row.New(20).Add(col.New(8), sigCol))
	rows = append(rows, row.New(6).Add(
		col.New(8),
		col.New(4).Add(text.New("Authorised Signature", props.Text{
			Size: 8, Align: align.Center, Top: 1, Color: colorGray,
		})),
	))
	return rows
}

// imageExtension reports whether maroto can embed the signature
func imageExtension(sig *domain.Signature) (extension.Type, bool) {
	if sig == nil {
		return "", false
	}
	switch sig.MIME {
	case "image/png":
		return extension.Png, true
	case "image/jpeg", "image/jpg":
		return extension.Jpg, true
	default:
		return "", false
	}
}

func pageNumberRow(n, total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(fmt.Sprintf("Page %d of %d", n, total), props.Text{
			Size: 7, Align: align.Right, Top: 3, Color: colorGray,
		})),
	)
}
