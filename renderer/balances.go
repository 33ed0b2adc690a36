// Package renderer formats balances and rates as markdown documents.
package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/balance"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// Conversion is the grand total of a list of records in a single currency.
type Conversion struct {
	Currency string
	Total    decimal.Decimal
	Skipped  balance.Records // records without a rate to Currency
}

// BalancesMarkdown renders records as a table, followed by the total per
// currency and, when conv is not nil, the converted grand total.
func BalancesMarkdown(records balance.Records, conv *Conversion) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Balances")
	if len(records) == 0 {
		doc.PlainText("No balance.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Provider", "Account", "Currency", "Amount"},
		Rows:   [][]string{},
	}
	for _, r := range records {
		table.Rows = append(table.Rows, []string{
			string(r.Provider),
			escapeCell(r.Title),
			r.Currency,
			amount(r.Amount, r.Currency),
		})
	}
	doc.Table(table)

	doc.H2("Totals")
	totals := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Currency", "Total"},
		Rows:      [][]string{},
	}
	for _, cur := range records.Currencies() {
		totals.Rows = append(totals.Rows, []string{cur, amount(records.Total(cur), cur)})
	}
	doc.Table(totals)

	if conv != nil {
		doc.PlainText(md.Bold(fmt.Sprintf("Total: %s %s", amount(conv.Total, conv.Currency), conv.Currency)))
		for _, r := range conv.Skipped {
			doc.PlainText(md.Italic(fmt.Sprintf("%s (%s) has no %s rate and is not in the total.", escapeCell(r.Title), r.Currency, conv.Currency)))
		}
	}
	return doc.String()
}

// RatesMarkdown renders rates as a table.
func RatesMarkdown(rates []balance.Rate) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Rates")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Pair", "Rate"},
		Rows:      [][]string{},
	}
	for _, r := range rates {
		table.Rows = append(table.Rows, []string{r.Source + "/" + r.Target, r.Rate.String()})
	}
	doc.Table(table)
	return doc.String()
}

// amount formats d with the number of decimals of currency.
func amount(d decimal.Decimal, currency string) string {
	places := int32(balance.CurrencyFraction(currency))
	if d.Exponent() < -places {
		return d.String()
	}
	return d.StringFixed(places)
}

func escapeCell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
