package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestInvoice(t *testing.T, rows ...[2]string) *Invoice {
	t.Helper()
	inv := NewInvoice("INV-001", time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC), dec("18"))
	for i, r := range rows {
		item := inv.Items[0]
		if i > 0 {
			item = inv.AddItem()
		}
		item.SetRate(r[0])
		item.SetQuantity(r[1])
	}
	return inv
}

func TestNewInvoice_StartsWithOneRow(t *testing.T) {
	inv := NewInvoice("INV-001", time.Time{}, decimal.Zero)

	require.Len(t, inv.Items, 1)
	assert.Equal(t, 1, inv.Items[0].ID)
	assert.Equal(t, 1, inv.Items[0].Quantity)
	assert.True(t, inv.Items[0].Rate.IsZero())
	assert.Nil(t, inv.IssueDate)
}

func TestRecompute_AmountMatchesRateTimesQuantity(t *testing.T) {
	inv := newTestInvoice(t, [2]string{"12.50", "4"}, [2]string{"3", "3"})

	// stale amounts must be overwritten
	inv.Items[0].Amount = dec("999")
	totals := inv.Recompute()

	assert.Equal(t, "50", inv.Items[0].Amount.String())
	assert.Equal(t, "9", inv.Items[1].Amount.String())
	assert.Equal(t, "59", totals.Subtotal.String())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.Equal(t, "59", totals.Total.String())
}

func TestRecompute_Idempotent(t *testing.T) {
	inv := newTestInvoice(t, [2]string{"10.10", "3"}, [2]string{"0.33", "7"})
	inv.TaxEnabled = true
	inv.SetReceivedAmount("5")

	first := inv.Recompute()
	second := inv.Recompute()

	assert.True(t, first.Equal(second))
}

func TestRecompute_TaxToggle(t *testing.T) {
	inv := newTestInvoice(t, [2]string{"1000", "1"})
	inv.SetTaxRate("18")

	inv.TaxEnabled = true
	totals := inv.Recompute()
	assert.Equal(t, "1000.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "180.00", totals.TaxAmount.StringFixed(2))
	assert.Equal(t, "1180.00", totals.Total.StringFixed(2))

	inv.TaxEnabled = false
	totals = inv.Recompute()
	assert.True(t, totals.TaxAmount.IsZero())
	assert.Equal(t, "1000.00", totals.Total.StringFixed(2))
}

func TestRecompute_NegativeBalanceIsNotClamped(t *testing.T) {
	inv := newTestInvoice(t, [2]string{"100", "1"})
	inv.SetReceivedAmount("150")

	totals := inv.Recompute()

	assert.Equal(t, "-50.00", totals.BalanceDue.StringFixed(2))
}

func TestInvalidInputNormalization(t *testing.T) {
	inv := newTestInvoice(t, [2]string{"abc", "zero"})

	assert.True(t, inv.Items[0].Rate.IsZero())
	assert.Equal(t, 1, inv.Items[0].Quantity)
	assert.True(t, inv.SetTaxRate("lots").IsZero())
	assert.True(t, inv.SetReceivedAmount("-10").IsZero())
}

func TestRemoveItem(t *testing.T) {
	inv := newTestInvoice(t, [2]string{"1", "1"}, [2]string{"2", "1"}, [2]string{"3", "1"})

	require.NoError(t, inv.RemoveItem(2))
	require.Len(t, inv.Items, 2)
	assert.Equal(t, []int{1, 3}, []int{inv.Items[0].ID, inv.Items[1].ID})

	// IDs are never reused after a removal
	added := inv.AddItem()
	assert.Equal(t, 4, added.ID)

	assert.ErrorIs(t, inv.RemoveItem(2), ErrItemNotFound)
}

func TestRemoveItem_LastRowIsKept(t *testing.T) {
	inv := NewInvoice("INV-001", time.Time{}, decimal.Zero)

	err := inv.RemoveItem(inv.Items[0].ID)

	assert.ErrorIs(t, err, ErrLastItem)
	assert.Len(t, inv.Items, 1)
}

func TestSetDates(t *testing.T) {
	inv := NewInvoice("INV-001", time.Time{}, decimal.Zero)

	require.NoError(t, inv.SetIssueDate("2025-08-22"))
	require.NoError(t, inv.SetDueDate("21-09-2025"))
	assert.Equal(t, "2025-08-22", inv.IssueDate.Format(DateLayout))
	assert.Equal(t, "2025-09-21", inv.DueDate.Format(DateLayout))

	err := inv.SetDueDate("next week")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, "2025-09-21", inv.DueDate.Format(DateLayout), "failed parse must not change the date")

	require.NoError(t, inv.SetDueDate(""))
	assert.Nil(t, inv.DueDate)
}

func TestValidate(t *testing.T) {
	inv := NewInvoice("INV-001", time.Time{}, decimal.Zero)
	require.NoError(t, inv.SetIssueDate("2025-08-22"))
	require.NoError(t, inv.SetDueDate("2025-08-01"))

	assert.Error(t, inv.Validate())

	require.NoError(t, inv.SetDueDate("2025-09-01"))
	assert.NoError(t, inv.Validate())
}

func TestClone_IsDeep(t *testing.T) {
	inv := newTestInvoice(t, [2]string{"5", "2"})
	inv.Signature = &Signature{MIME: "image/png", Data: []byte{1, 2, 3}}

	c := inv.Clone()
	c.Items[0].SetRate("7")
	c.Signature.Data[0] = 9
	c.AddItem()

	assert.Equal(t, "5", inv.Items[0].Rate.String())
	assert.Equal(t, byte(1), inv.Signature.Data[0])
	assert.Len(t, inv.Items, 1)
}
