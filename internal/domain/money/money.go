// Package money holds the numeric conventions shared by every calculator:
// coercion of untrusted values, signed adjustments, rounding and ledger sides.
package money

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are JSON numbers on the wire, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	Credit = "Cr"
	Debit  = "Dr"
)

var (
	Hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)

	// MaxAmount bounds every coerced value; larger magnitudes count as junk.
	MaxAmount = decimal.New(1, 15)
)

// maxExponent keeps parsed values to a sane number of digits either side of
// the decimal point, so "1e900000000" never reaches arithmetic.
const maxExponent = 18

// SafeNumber converts a form or JSON value to a decimal. Values that are not
// finite numbers (junk strings, nil, NaN, Inf, unsupported types) become zero,
// as do parsed values beyond MaxAmount or with an absurd exponent.
func SafeNumber(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return n
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero
		}
		return *n
	case Lenient:
		return n.Decimal()
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero
		}
		return bounded(decimal.NewFromFloat(n))
	case float32:
		return SafeNumber(float64(n))
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case int32:
		return decimal.NewFromInt(int64(n))
	case json.Number:
		return parseNumber(string(n))
	case string:
		return parseNumber(n)
	default:
		return decimal.Zero
	}
}

func parseNumber(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return bounded(d)
}

// bounded zeroes values whose exponent or magnitude is out of range.
func bounded(d decimal.Decimal) decimal.Decimal {
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero
	}
	if d.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero
	}
	return d
}

// Lenient is a decimal that decodes from any JSON value. Numbers and numeric
// strings keep their value; empty strings, null, booleans and junk decode to zero.
type Lenient decimal.Decimal

func (l *Lenient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*l = Lenient(decimal.Zero)
			return nil
		}
		*l = Lenient(parseNumber(s))
		return nil
	}
	*l = Lenient(parseNumber(string(data)))
	return nil
}

func (l Lenient) MarshalJSON() ([]byte, error) {
	return decimal.Decimal(l).MarshalJSON()
}

func (l Lenient) Decimal() decimal.Decimal {
	return decimal.Decimal(l)
}

// L wraps a decimal as a Lenient, mostly for building forms in code.
func L(d decimal.Decimal) Lenient {
	return Lenient(d)
}

// Round follows JavaScript Math.round: halves go towards positive infinity.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// Display rounds to paise. Only presentation code should call it.
func Display(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Side labels a balance: positive is Cr, negative is Dr, zero is blank.
func Side(balance decimal.Decimal) string {
	switch balance.Sign() {
	case 1:
		return Credit
	case -1:
		return Debit
	default:
		return ""
	}
}

func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
