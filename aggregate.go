package balance

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Records is a list of canonical records.
type Records []Record

// NonZero returns the records holding a non zero amount.
func (rs Records) NonZero() Records {
	out := make(Records, 0, len(rs))
	for _, r := range rs {
		if !r.Amount.IsZero() {
			out = append(out, r)
		}
	}
	return out
}

// Currencies returns the sorted distinct currencies of rs.
func (rs Records) Currencies() []string {
	var curs []string
	for _, r := range rs {
		if !slices.Contains(curs, r.Currency) {
			curs = append(curs, r.Currency)
		}
	}
	slices.Sort(curs)
	return curs
}

// Total sums, exactly, the amounts held in currency.
func (rs Records) Total(currency string) decimal.Decimal {
	total := decimal.Zero
	currency = strings.ToUpper(currency)
	for _, r := range rs {
		if r.Currency == currency {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// Convert sums every record into target using rates. A rate is used in
// either direction. Records whose currency cannot be converted are returned
// in skipped.
func (rs Records) Convert(rates []Rate, target string) (total decimal.Decimal, skipped Records) {
	target = strings.ToUpper(target)
	total = decimal.Zero
	for _, r := range rs {
		if r.Currency == target {
			total = total.Add(r.Amount)
			continue
		}
		factor, ok := lookupRate(rates, r.Currency, target)
		if !ok {
			skipped = append(skipped, r)
			continue
		}
		total = total.Add(r.Amount.Mul(factor))
	}
	return total, skipped
}

// lookupRate finds how many target a unit of source is worth.
func lookupRate(rates []Rate, source, target string) (decimal.Decimal, bool) {
	for _, rate := range rates {
		if rate.Source == source && rate.Target == target {
			return rate.Rate, true
		}
	}
	for _, rate := range rates {
		if rate.Source == target && rate.Target == source && !rate.Rate.IsZero() {
			return decimal.NewFromInt(1).DivRound(rate.Rate, 16), true
		}
	}
	return decimal.Decimal{}, false
}
