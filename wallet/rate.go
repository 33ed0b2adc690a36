package wallet

import (
	"strings"

	"github.com/etnz/balance"
	"github.com/shopspring/decimal"
)

var rateAliases = balance.Aliases{"rate", "value", "mid"}

// DecodeRate reads the rate from source to target in a rate payload like
// [{"rate": 1.0852, "source": "EUR", "target": "USD", "time": "..."}]. It
// reports false when the payload holds no positive rate.
func DecodeRate(data []byte, source, target string) (balance.Rate, bool) {
	v, err := balance.ParseJSON(data)
	if err != nil {
		return balance.Rate{}, false
	}
	var rate decimal.Decimal
	found := false
	if jval, ok := balance.Lookup("$[0].rate", v); ok {
		rate, found = balance.Coerce(jval)
	}
	if !found {
		rate, found = balance.ResolveDecimal(v, rateAliases)
	}
	if !found || !rate.IsPositive() {
		return balance.Rate{}, false
	}
	return balance.Rate{
		Source: strings.ToUpper(source),
		Target: strings.ToUpper(target),
		Rate:   rate,
	}, true
}
