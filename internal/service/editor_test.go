package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/money"
)

var fixedNow = func() time.Time { return time.Date(2025, 8, 22, 10, 30, 0, 0, time.UTC) }

func newTestEditor(t *testing.T, mode domain.Mode) *Editor {
	t.Helper()
	return NewEditor(EditorConfig{
		ItemsPerPage:   15,
		DefaultNumber:  "INV-001",
		DefaultTaxRate: decimal.NewFromInt(18),
		TaxLabel:       "GST",
		Formatter:      money.Default,
		StartMode:      mode,
		Now:            fixedNow,
	}, nil)
}

func firstRowID(e *Editor) int {
	return e.Invoice().Items[0].ID
}

func TestEditor_ViewModeIsReadOnly(t *testing.T) {
	e := newTestEditor(t, domain.ModeView)

	assert.False(t, e.IsMutable(FieldClientName))
	assert.ErrorIs(t, e.SetClientName("Acme"), ErrReadOnly)
	assert.ErrorIs(t, e.SetItemRate(firstRowID(e), "10"), ErrReadOnly)
	_, err := e.AddRow()
	assert.ErrorIs(t, err, ErrReadOnly)

	assert.Equal(t, "", e.Invoice().Client.Name)
	assert.Len(t, e.Invoice().Items, 1)
}

func TestEditor_EditRecomputesOnEveryChange(t *testing.T) {
	e := newTestEditor(t, domain.ModeEdit)
	id := firstRowID(e)

	require.NoError(t, e.SetItemRate(id, "1000"))
	assert.Equal(t, "1000.00", e.Totals().Total.StringFixed(2))

	require.NoError(t, e.SetTaxEnabled(true))
	assert.Equal(t, "180.00", e.Totals().TaxAmount.StringFixed(2))
	assert.Equal(t, "1180.00", e.Totals().Total.StringFixed(2))

	require.NoError(t, e.SetItemQuantity(id, "2"))
	assert.Equal(t, "2360.00", e.Totals().Total.StringFixed(2))

	require.NoError(t, e.SetReceivedAmount("3000"))
	assert.Equal(t, "-640.00", e.Totals().BalanceDue.StringFixed(2))
}

func TestEditor_ToggleRefreshesSheetOnlyEnteringView(t *testing.T) {
	e := newTestEditor(t, domain.ModeEdit)

	require.NoError(t, e.SetClientName("Acme"))
	assert.Equal(t, "-", e.Sheet().ClientName, "edit mode does not refresh the view text")

	assert.Equal(t, domain.ModeView, e.ToggleMode())
	assert.Equal(t, "Acme", e.Sheet().ClientName)
	assert.Equal(t, "22-08-2025", e.Sheet().IssueDate)

	assert.Equal(t, domain.ModeEdit, e.ToggleMode())
	assert.True(t, e.IsMutable(FieldClientName))
}

func TestEditor_RowsRepaginate(t *testing.T) {
	e := newTestEditor(t, domain.ModeEdit)

	var last int
	for i := 0; i < 15; i++ {
		id, err := e.AddRow()
		require.NoError(t, err)
		last = id
	}
	require.Len(t, e.Pages(), 2)
	assert.Len(t, e.Pages()[1].Items, 1)
	assert.True(t, e.Pages()[1].IsLast)

	require.NoError(t, e.RemoveRow(last))
	require.Len(t, e.Pages(), 1)
	assert.True(t, e.Pages()[0].IsLast)

	id, err := e.AddRow()
	require.NoError(t, err)
	assert.Equal(t, last+1, id, "removed IDs are not reused")
}

func TestEditor_RemoveLastRowIsRejected(t *testing.T) {
	e := newTestEditor(t, domain.ModeEdit)

	err := e.RemoveRow(firstRowID(e))
	assert.ErrorIs(t, err, domain.ErrLastItem)
	assert.Len(t, e.Invoice().Items, 1)

	assert.ErrorIs(t, e.SetItemRate(999, "1"), domain.ErrItemNotFound)
}

func TestEditor_InvalidDateLeavesStateAlone(t *testing.T) {
	e := newTestEditor(t, domain.ModeEdit)

	require.NoError(t, e.SetDueDate("2025-09-21"))
	assert.ErrorIs(t, e.SetDueDate("soon"), domain.ErrInvalidDate)
	assert.Equal(t, "2025-09-21", e.Invoice().DueDate.Format(domain.DateLayout))
}

func TestEditor_InvoiceIsACopy(t *testing.T) {
	e := newTestEditor(t, domain.ModeEdit)

	inv := e.Invoice()
	inv.Items[0].SetRate("500")
	inv.Client.Name = "Mutated"

	assert.True(t, e.Invoice().Items[0].Rate.IsZero())
	assert.Equal(t, "", e.Invoice().Client.Name)
}

func TestEditor_RecordRoundTrip(t *testing.T) {
	src := newTestEditor(t, domain.ModeEdit)
	id := firstRowID(src)
	require.NoError(t, src.SetItemRate(id, "99.99"))
	require.NoError(t, src.SetItemQuantity(id, "3"))
	second, err := src.AddRow()
	require.NoError(t, err)
	require.NoError(t, src.SetItemRate(second, "0.01"))
	require.NoError(t, src.SetTaxEnabled(true))
	require.NoError(t, src.SetSignature(&domain.Signature{MIME: "image/png", Data: []byte{1}}))

	dst := newTestEditor(t, domain.ModeView)
	require.NoError(t, dst.Load(src.Record()))

	assert.True(t, src.Totals().Equal(dst.Totals()))
	assert.Len(t, dst.Invoice().Items, 2)
	assert.True(t, dst.Sheet().HasSignature, "view text refreshed after load in view mode")
	assert.True(t, dst.Sheet().ShowTax)
}

func TestEditor_LoadReportsBadFields(t *testing.T) {
	e := newTestEditor(t, domain.ModeEdit)

	err := e.Load(domain.Record{ClientName: "Acme", InvoiceDate: "bad"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
	assert.Equal(t, "Acme", e.Invoice().Client.Name)
}

func TestEditor_SignatureGate(t *testing.T) {
	e := newTestEditor(t, domain.ModeEdit)

	assert.ErrorIs(t, e.SetSignature(nil), domain.ErrInvalidSignature)
	require.NoError(t, e.SetSignature(&domain.Signature{MIME: "image/png", Data: []byte{1}}))
	require.NoError(t, e.ClearSignature())
	assert.Nil(t, e.Invoice().Signature)
}

func TestEditor_ResizeIsANoOp(t *testing.T) {
	e := newTestEditor(t, domain.ModeView)
	before := e.Pages()

	e.Repaginate()

	assert.Equal(t, len(before), len(e.Pages()))
	assert.Equal(t, before[0].IsLast, e.Pages()[0].IsLast)
}
