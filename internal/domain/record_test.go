package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_RoundTrip(t *testing.T) {
	inv := newTestInvoice(t, [2]string{"12.75", "2"}, [2]string{"100", "3"}, [2]string{"0.5", "9"})
	inv.Client = Client{Name: "Acme", Address: "1 Main St\nPune", Contact: "acme@example.com"}
	inv.TaxEnabled = true
	inv.SetTaxRate("12.5")
	inv.SetReceivedAmount("40")
	require.NoError(t, inv.SetDueDate("2025-09-21"))
	inv.Signature = &Signature{MIME: "image/png", Data: []byte("png-bytes")}
	want := inv.Recompute()

	data, err := json.Marshal(Serialize(inv))
	require.NoError(t, err)

	var rec Record
	require.NoError(t, json.Unmarshal(data, &rec))

	loaded := NewInvoice("", time.Time{}, decimal.Zero)
	require.NoError(t, loaded.Apply(rec))
	got := loaded.Recompute()

	require.Len(t, loaded.Items, len(inv.Items))
	for i := range inv.Items {
		assert.True(t, inv.Items[i].Rate.Equal(loaded.Items[i].Rate))
		assert.Equal(t, inv.Items[i].Quantity, loaded.Items[i].Quantity)
	}
	assert.True(t, want.Equal(got))
	assert.Equal(t, inv.Client, loaded.Client)
	assert.Equal(t, "2025-08-22", loaded.IssueDate.Format(DateLayout))
	assert.Equal(t, []byte("png-bytes"), loaded.Signature.Data)
}

func TestSerialize_FieldNames(t *testing.T) {
	inv := newTestInvoice(t, [2]string{"10", "1"})

	data, err := json.Marshal(Serialize(inv))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"invoiceNumber", "invoiceDate", "receivedAmount", "gstEnabled", "gstPercentage", "items"} {
		assert.Contains(t, raw, key)
	}
	// tax percentage is a plain JSON number
	assert.Equal(t, float64(18), raw["gstPercentage"])

	items := raw["items"].([]any)
	assert.Equal(t, map[string]any{"description": "", "rate": "10", "qty": "1"}, items[0])
}

func TestApply_AbsentFieldsKeepValues(t *testing.T) {
	inv := newTestInvoice(t, [2]string{"10", "1"}, [2]string{"20", "1"})
	inv.Client.Name = "Existing"
	inv.TaxEnabled = true

	err := inv.Apply(Record{ClientContact: "new@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "INV-001", inv.Number)
	assert.Equal(t, "Existing", inv.Client.Name)
	assert.Equal(t, "new@example.com", inv.Client.Contact)
	assert.True(t, inv.TaxEnabled)
	assert.Len(t, inv.Items, 2, "empty item list in a record leaves rows alone")
}

func TestApply_ReplacesItemsWholesale(t *testing.T) {
	inv := newTestInvoice(t, [2]string{"10", "1"}, [2]string{"20", "1"}, [2]string{"30", "1"})
	disabled := false

	err := inv.Apply(Record{
		TaxEnabled: &disabled,
		Items:      []ItemRecord{{Description: "Design", Rate: "250", Qty: ""}},
	})
	require.NoError(t, err)

	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Design", inv.Items[0].Description)
	assert.Equal(t, 1, inv.Items[0].Quantity)
	assert.Equal(t, 4, inv.Items[0].ID, "loaded rows get fresh IDs")
	assert.False(t, inv.TaxEnabled)
}

func TestApply_ReportsBadFieldsButAppliesTheRest(t *testing.T) {
	inv := newTestInvoice(t, [2]string{"10", "1"})

	err := inv.Apply(Record{
		InvoiceNumber:  "INV-777",
		DueDate:        "someday",
		SignatureImage: "http://example.com/sig.png",
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, "INV-777", inv.Number)
	assert.Nil(t, inv.Signature)
}

func TestParseDataURL(t *testing.T) {
	sig := &Signature{MIME: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}}

	parsed, err := ParseDataURL(sig.DataURL())
	require.NoError(t, err)
	assert.Equal(t, sig, parsed)

	_, err = ParseDataURL("data:text/plain;base64,aGVsbG8=")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = ParseDataURL("data:image/png,raw")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
