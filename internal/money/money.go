// Package money normalizes raw form input into amounts and renders amounts
// for display.
//
// Parsing never fails: anything that cannot be read as a valid value
// degrades to a safe default so the form keeps working.
package money

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultSymbol = "₹"
	DefaultCode   = "INR"
)

// Formatter renders amounts with a fixed currency glyph and two decimals.
type Formatter struct {
	Symbol string
	Code   string
}

// Default is the formatter used when no currency is configured
var Default = Formatter{Symbol: DefaultSymbol, Code: DefaultCode}

// NewFormatter returns a formatter, falling back to the defaults for empty values
func NewFormatter(symbol, code string) Formatter {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	if code == "" {
		code = DefaultCode
	}
	return Formatter{Symbol: symbol, Code: code}
}

// Format renders an amount as symbol + fixed two-decimal number.
// Rounding is half away from zero; negatives keep their sign after the symbol.
func (f Formatter) Format(amount decimal.Decimal) string {
	return f.Symbol + amount.StringFixed(2)
}

// PlainSymbol returns a formatter safe for Latin-1 only outputs (PDF core
// fonts). A symbol outside Latin-1 is replaced by the currency code.
func (f Formatter) PlainSymbol() Formatter {
	for _, r := range f.Symbol {
		if r > 0xFF {
			return Formatter{Symbol: f.Code + " ", Code: f.Code}
		}
	}
	return f
}

// FormatCurrency formats any numeric value with the default formatter.
// Non-numeric input is treated as 0.
func FormatCurrency(v any) string {
	return Default.Format(coerce(v))
}

func coerce(v any) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(n)
	case float32:
		return coerce(float64(n))
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case string:
		if d, ok := parseDecimal(n); ok {
			return d
		}
	}
	return decimal.Zero
}

// maxExponent bounds scientific notation to roughly the float64 range
const maxExponent = 330

func parseDecimal(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	// "1e20000000" parses fine but would expand to millions of digits
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	if math.IsInf(d.InexactFloat64(), 0) {
		return decimal.Zero, false
	}
	return d, true
}

// ParseRate reads a unit rate. Unparseable or negative input yields 0.
func ParseRate(raw string) decimal.Decimal {
	return ParseAmount(raw)
}

// ParseAmount reads a non-negative amount (received amount, tax percentage).
// Unparseable or negative input yields 0.
func ParseAmount(raw string) decimal.Decimal {
	d, ok := parseDecimal(raw)
	if !ok || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseQuantity reads an item quantity from the leading decimal integer of
// the input, so "2.9" is 2 and "1e3" is 1. Input without a leading integer,
// values below 1 and values above math.MaxInt32 all yield 1.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || n < 1 || n > math.MaxInt32 {
		return 1
	}
	return int(n)
}

// ComputeAmount returns rate * qty. Inputs are expected to be normalized;
// a quantity below 1 yields 0.
func ComputeAmount(rate decimal.Decimal, qty int) decimal.Decimal {
	if qty < 1 {
		return decimal.Zero
	}
	return rate.Mul(decimal.NewFromInt(int64(qty)))
}
