package view

import (
	"strconv"
	"testing"
	"time"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Fallbacks(t *testing.T) {
	inv := domain.NewInvoice("", time.Time{}, decimal.NewFromInt(18))
	totals := inv.Recompute()

	s := Build(inv, totals, domain.Repaginate(inv.Items, 15), money.Default, Defaults{Number: "INV-001", TaxLabel: "GST"})

	assert.Equal(t, "INV-001", s.Number)
	assert.Equal(t, Placeholder, s.IssueDate)
	assert.Equal(t, Placeholder, s.DueDate)
	assert.Equal(t, Placeholder, s.ClientName)
	assert.Equal(t, []string{Placeholder}, s.ClientAddress)
	assert.Equal(t, "₹0.00", s.Total)
	assert.False(t, s.ShowTax)
	assert.False(t, s.HasSignature)
	require.Len(t, s.Rows, 1)
	assert.Equal(t, "1", s.Rows[0].Quantity)
}

func TestBuild_FormatsValues(t *testing.T) {
	inv := domain.NewInvoice("INV-042", time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(18))
	inv.Client = domain.Client{Name: "Acme", Address: "1 Main St\n\n Pune ", Contact: "a@b.c"}
	inv.Items[0].SetDescription("Consulting")
	inv.Items[0].SetRate("1000")
	inv.TaxEnabled = true
	inv.SetReceivedAmount("1500")
	totals := inv.Recompute()

	s := Build(inv, totals, domain.Repaginate(inv.Items, 15), money.Default, Defaults{TaxLabel: "GST"})

	assert.Equal(t, "INV-042", s.Number)
	assert.Equal(t, "22-08-2025", s.IssueDate)
	assert.Equal(t, []string{"1 Main St", "Pune"}, s.ClientAddress)
	assert.Equal(t, "₹1000.00", s.Rows[0].Rate)
	assert.True(t, s.ShowTax)
	assert.Equal(t, "GST (18%)", s.TaxLabel)
	assert.Equal(t, "₹180.00", s.TaxAmount)
	assert.Equal(t, "₹1180.00", s.Total)
	assert.Equal(t, "₹-320.00", s.BalanceDue)
}

func TestBuild_DescriptionFitsOneRow(t *testing.T) {
	inv := domain.NewInvoice("INV-001", time.Time{}, decimal.Zero)
	inv.Items[0].SetDescription("Design work\r\n  phase 2\n")
	inv.AddItem().SetDescription(" \n\t ")

	s := Build(inv, inv.Recompute(), domain.Repaginate(inv.Items, 15), money.Default, Defaults{})

	require.Len(t, s.Rows, 2)
	assert.Equal(t, "Design work phase 2", s.Rows[0].Description)
	assert.Equal(t, Placeholder, s.Rows[1].Description)
}

func TestBuild_Pages(t *testing.T) {
	inv := domain.NewInvoice("INV-1", time.Time{}, decimal.Zero)
	for i := 1; i < 16; i++ {
		inv.AddItem().SetDescription("row " + strconv.Itoa(i+1))
	}
	totals := inv.Recompute()

	s := Build(inv, totals, domain.Repaginate(inv.Items, 15), money.Default, Defaults{})

	require.Equal(t, 2, s.PageCount())
	assert.Len(t, s.Pages[0].Rows, 15)
	assert.False(t, s.Pages[0].IsLast)
	assert.False(t, s.Pages[0].IsContinuation())
	require.Len(t, s.Pages[1].Rows, 1)
	assert.True(t, s.Pages[1].IsLast)
	assert.True(t, s.Pages[1].IsContinuation())
	assert.Equal(t, 16, s.Pages[1].Rows[0].Index)
	assert.Equal(t, "row 16", s.Pages[1].Rows[0].Description)
}
