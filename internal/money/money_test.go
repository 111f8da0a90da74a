package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"zero", 0, "₹0.00"},
		{"one decimal", 1234.5, "₹1234.50"},
		{"decimal value", decimal.RequireFromString("99.999"), "₹100.00"},
		{"negative", -50, "₹-50.00"},
		{"nan", math.NaN(), "₹0.00"},
		{"inf", math.Inf(1), "₹0.00"},
		{"numeric string", "12.3", "₹12.30"},
		{"garbage string", "abc", "₹0.00"},
		{"nil", nil, "₹0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.in))
		})
	}
}

func TestFormatter_PlainSymbol(t *testing.T) {
	f := NewFormatter("", "")
	assert.Equal(t, "INR 5.00", f.PlainSymbol().Format(decimal.NewFromInt(5)))

	usd := NewFormatter("$", "USD")
	assert.Equal(t, "$5.00", usd.PlainSymbol().Format(decimal.NewFromInt(5)))
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"12.50", "12.5"},
		{"  7 ", "7"},
		{"", "0"},
		{"abc", "0"},
		{"-3", "0"},
		{"NaN", "0"},
		{"1e2", "100"},
		{"1e20000000", "0"},
		{"1e2000000000", "0"},
		{"2e-20000000", "0"},
		{"1e400", "0"},
		{"1.5e3", "1500"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRate(tt.raw).String())
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{"", 1},
		{"0", 1},
		{"-4", 1},
		{"x", 1},
		{"2.9", 2},
		{"0.5", 1},
		{" 10 ", 10},
		{"+5", 5},
		{"1e3", 1},
		{"12abc", 12},
		{".5", 1},
		{"2147483647", 2147483647},
		{"3000000000", 1},
		{"3000000000.5", 1},
		{"99999999999999999999999", 1},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuantity(tt.raw))
		})
	}
}

func TestComputeAmount(t *testing.T) {
	rates := []string{"0", "0.01", "19.99", "1000"}
	for _, r := range rates {
		rate := decimal.RequireFromString(r)
		for qty := 1; qty <= 5; qty++ {
			want := rate.Mul(decimal.NewFromInt(int64(qty)))
			assert.True(t, want.Equal(ComputeAmount(rate, qty)), "rate=%s qty=%d", r, qty)
		}
	}

	assert.True(t, ComputeAmount(decimal.NewFromInt(5), 0).IsZero())
}
