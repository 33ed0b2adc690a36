package balance

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// valueKeys are the keys of a numeric container like {"value": 12.5, "currency": "EUR"}.
var valueKeys = []string{"value", "amount"}

// Coerce converts the numeric encodings found in provider payloads into an
// exact decimal. It returns false when v does not hold a number; it never
// panics.
//
// Strings may use a comma as decimal separator ("1234,56"). Floats are
// converted through their shortest textual form, so 1234.56 is exactly
// 1234.56. An object with a "value" (or "amount") field or a single element
// array is unwrapped once.
func Coerce(v any) (decimal.Decimal, bool) {
	if d, ok := scalarDecimal(v); ok {
		return d, true
	}
	// one level of nesting only.
	switch c := v.(type) {
	case map[string]any:
		for _, k := range valueKeys {
			if inner, exists := c[k]; exists {
				if d, ok := scalarDecimal(inner); ok {
					return d, true
				}
			}
		}
	case []any:
		if len(c) == 1 {
			return scalarDecimal(c[0])
		}
	}
	return decimal.Decimal{}, false
}

// scalarDecimal converts v when it is a string or a number.
func scalarDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case json.Number:
		return parseDecimal(n.String())
	case string:
		return parseDecimal(n)
	case float64:
		return floatDecimal(n)
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return decimal.Decimal{}, false
		}
		return parseDecimal(strconv.FormatFloat(float64(n), 'f', -1, 32))
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return decimal.NewFromUint64(uint64(n)), true
	case uint32:
		return decimal.NewFromUint64(uint64(n)), true
	case uint64:
		return decimal.NewFromUint64(n), true
	}
	return decimal.Decimal{}, false
}

func floatDecimal(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, false
	}
	return parseDecimal(strconv.FormatFloat(f, 'f', -1, 64))
}

// parseDecimal reads localized decimal text: blanks are dropped and the comma
// is read as the decimal separator.
func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
