// Package wallet normalizes the balances of the multi-currency wallet
// provider, and reads its exchange rates.
//
// A wallet balance may carry several amounts (available, total worth,
// reserved), each one a {value, currency} pair.
package wallet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/balance"
	"github.com/shopspring/decimal"
)

// FallbackCurrency is used when neither the balance nor any of its amounts
// publishes a currency.
const FallbackCurrency = "EUR"

// Placeholder is the title of a balance without any naming field.
const Placeholder = "Wallet balance"

var idAliases = balance.Aliases{"id", "balanceId", "balance_id"}

// Money is one {value, currency} amount of a balance.
type Money struct {
	Value    decimal.Decimal
	Currency string // upper-case, may be empty
}

// UnmarshalJSON reads the documented {"value": 1.5, "currency": "EUR"}
// shape. The value must be a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw struct {
		Value    json.Number `json:"value"`
		Currency string      `json:"currency"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw.Value == "" {
		return fmt.Errorf("amount without value: %s", data)
	}
	v, err := decimal.NewFromString(raw.Value.String())
	if err != nil {
		return fmt.Errorf("invalid amount value %q: %w", raw.Value, err)
	}
	m.Value = v
	m.Currency = ""
	if cur, ok := balance.CurrencyCode(raw.Currency); ok {
		m.Currency = cur
	}
	return nil
}

// Balance is one wallet balance as published by the provider.
type Balance struct {
	ID             any    `json:"id"`
	Currency       string `json:"currency"`
	Type           string `json:"type"`
	BalanceType    string `json:"balanceType"`
	Name           string `json:"name"`
	Alias          string `json:"alias"`
	Amount         *Money `json:"amount"`
	TotalWorth     *Money `json:"totalWorth"`
	ReservedAmount *Money `json:"reservedAmount"`
}

// amounts returns the amount candidates in precedence order.
func (b Balance) amounts() []*Money {
	return []*Money{b.Amount, b.TotalWorth, b.ReservedAmount}
}

// empty reports whether b holds none of the fields a balance is recognized by.
func (b Balance) empty() bool {
	if b.ID != nil || b.Currency != "" {
		return false
	}
	for _, m := range b.amounts() {
		if m != nil {
			return false
		}
	}
	return true
}

// Source decodes and projects wallet payloads.
type Source struct {
	FallbackCurrency string // defaults to FallbackCurrency
}

func (Source) Provider() balance.Provider { return balance.Wallet }

func (s Source) fallback() string {
	if s.FallbackCurrency == "" {
		return FallbackCurrency
	}
	return s.FallbackCurrency
}

// Decode implements balance.Source.
func (Source) Decode(data []byte) ([]Balance, error) {
	c := balance.Cascade[Balance]{
		Provider: balance.Wallet,
		Strict:   decodeBalances,
		Element:  element,
	}
	return c.Decode(data)
}

// decodeBalances reads the documented array of balances.
func decodeBalances(data []byte) ([]Balance, bool) {
	list, ok := balance.StrictList[Balance](data, "balances")
	if !ok {
		return nil, false
	}
	for i, b := range list {
		if b.empty() {
			return nil, false
		}
		b.Currency = normalize(b.Currency)
		list[i] = b
	}
	return list, true
}

// element reads one balance from a generic object, tolerating numbers
// encoded as localized strings.
func element(obj map[string]any) (Balance, bool) {
	var b Balance
	if id, ok := balance.ResolveText(obj, idAliases); ok {
		b.ID = id
	}
	if cur, ok := balance.CurrencyCode(obj["currency"]); ok {
		b.Currency = cur
	}
	b.Type, _ = balance.String(obj["type"])
	b.BalanceType, _ = balance.String(obj["balanceType"])
	b.Name, _ = balance.String(obj["name"])
	b.Alias, _ = balance.String(obj["alias"])
	b.Amount = money(obj["amount"])
	b.TotalWorth = money(obj["totalWorth"])
	b.ReservedAmount = money(obj["reservedAmount"])
	if b.empty() {
		return Balance{}, false
	}
	return b, true
}

// money reads a {value, currency} pair, or a bare number.
func money(v any) *Money {
	if v == nil {
		return nil
	}
	value, ok := balance.Coerce(v)
	if !ok {
		return nil
	}
	m := &Money{Value: value}
	if obj, isObject := v.(map[string]any); isObject {
		if cur, ok := balance.CurrencyCode(obj["currency"]); ok {
			m.Currency = cur
		}
	}
	return m
}

func normalize(currency string) string {
	if cur, ok := balance.CurrencyCode(currency); ok {
		return cur
	}
	return ""
}

// Project implements balance.Source.
//
// The first amount among amount, totalWorth and reservedAmount is used with
// its own currency. A balance without any amount is not a balance (metadata
// rows are published alongside) and is dropped, unlike ledger accounts that
// default to zero.
func (s Source) Project(b Balance) (balance.Record, bool) {
	candidates := b.amounts()
	for i, m := range candidates {
		if m == nil {
			continue
		}
		currency := m.Currency
		if currency == "" {
			currency = b.Currency
		}
		for _, next := range candidates[i+1:] {
			if currency != "" {
				break
			}
			if next != nil {
				currency = next.Currency
			}
		}
		if currency == "" {
			currency = s.fallback()
		}

		id, ok := balance.Text(b.ID)
		if !ok {
			id = balance.NewID()
		}
		return balance.Record{
			ID:       id,
			Title:    b.title(),
			Currency: currency,
			Amount:   m.Value,
		}, true
	}
	return balance.Record{}, false
}

// title picks the display name of a balance.
func (b Balance) title() string {
	for _, name := range []string{
		b.Alias,
		b.Name,
		strings.ToUpper(b.Type),
		strings.ToUpper(b.BalanceType),
		strings.ToUpper(b.Currency),
	} {
		if s := strings.TrimSpace(name); s != "" {
			return s
		}
	}
	return Placeholder
}

// Normalize decodes a wallet balances payload into canonical records.
func Normalize(data []byte) ([]balance.Record, error) {
	return balance.Normalize[Balance](Source{}, data)
}
