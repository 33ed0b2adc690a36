package balance

import (
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
)

// CurrencyAliases are the keys a currency code is commonly published under.
var CurrencyAliases = Aliases{"currency", "currencyCode", "ccy", "cur", "currency_code"}

// CurrencyCode normalizes a raw currency value into an upper-case code.
//
// Alphabetic codes are upper-cased. ISO-4217 numeric codes, either as numbers
// (980) or digit strings ("980"), are translated to their alphabetic code.
// Unknown numeric codes and anything else are rejected.
func CurrencyCode(v any) (string, bool) {
	var s string
	switch c := v.(type) {
	case string:
		s = strings.TrimSpace(c)
	default:
		d, ok := scalarDecimal(v)
		if !ok || !d.IsInteger() || d.IsNegative() {
			return "", false
		}
		s = d.String()
	}
	if s == "" {
		return "", false
	}
	if _, err := strconv.Atoi(s); err == nil {
		if len(s) < 3 {
			s = strings.Repeat("0", 3-len(s)) + s
		}
		cur := money.GetCurrencyByNumericCode(s)
		if cur == nil {
			return "", false
		}
		return cur.Code, true
	}
	return strings.ToUpper(s), true
}

// ResolveCurrency resolves a currency code in container, see CurrencyCode.
func ResolveCurrency(container any, keys Aliases) (string, bool) {
	return Resolve(container, keys, CurrencyCode)
}

// KnownCurrency reports whether code is a currency go-money has formatting
// information for.
func KnownCurrency(code string) bool { return money.GetCurrency(code) != nil }

// CurrencyFraction returns the number of minor unit digits of code, 2 when
// the currency is unknown.
func CurrencyFraction(code string) int {
	if cur := money.GetCurrency(code); cur != nil {
		return cur.Fraction
	}
	return 2
}
