// Package ledger normalizes the balances published by the ledger-account bank
// provider: cards and current accounts, held mostly in the home currency.
//
// Field names of that API changed across versions and account types, so every
// field is looked up through a list of aliases.
package ledger

import (
	"encoding/json"

	"github.com/etnz/balance"
	"github.com/shopspring/decimal"
)

// HomeCurrency is used for accounts that do not publish a currency.
const HomeCurrency = "UAH"

var (
	IDAliases = balance.Aliases{
		"id", "accountId", "account_id", "acc",
		"accountNumber", "account_number", "number",
		"cardNumber", "card_number",
		"maskedPan", "maskedCardNumber", "pan",
		"iban",
	}
	TitleAliases = balance.Aliases{
		"description", "alias",
		"maskedCardLabel", "cardLabel",
		"name", "nameACC", "title",
		"type",
	}
	AmountAliases = balance.Aliases{
		"balance", "rest", "available", "availableBalance", "available_balance",
		"amount", "funds", "balanceOut", "currentBalance", "current",
		"value", "total",
	}
)

// Account is one account as published by the provider, kept as generic JSON.
type Account map[string]any

// Source decodes and projects ledger payloads. Its zero value uses
// HomeCurrency and reads amounts in major units.
type Source struct {
	HomeCurrency string
	// MinorUnits reads integer amounts as minor units (cents) of the
	// account's currency.
	MinorUnits bool
}

func (Source) Provider() balance.Provider { return balance.Ledger }

func (s Source) home() string {
	if s.HomeCurrency == "" {
		return HomeCurrency
	}
	return s.HomeCurrency
}

// Decode implements balance.Source.
func (s Source) Decode(data []byte) ([]Account, error) {
	c := balance.Cascade[Account]{
		Provider: balance.Ledger,
		Strict:   decodeClientInfo,
		Element:  element,
	}
	return c.Decode(data)
}

// strictAccount is the documented shape of an account in the client info
// payload.
type strictAccount struct {
	ID           string      `json:"id"`
	Balance      json.Number `json:"balance"`
	CurrencyCode json.Number `json:"currencyCode"`
	Type         string      `json:"type"`
	MaskedPan    []string    `json:"maskedPan"`
	IBAN         string      `json:"iban"`
}

// decodeClientInfo reads the documented {"accounts": [...]} payload (or the
// bare array), rejecting it as a whole if one account does not match.
func decodeClientInfo(data []byte) ([]Account, bool) {
	typed, ok := balance.StrictList[strictAccount](data, "accounts")
	if !ok || len(typed) == 0 {
		return nil, false
	}
	for _, a := range typed {
		if a.ID == "" || a.Balance == "" {
			return nil, false
		}
	}
	accounts, ok := balance.StrictList[Account](data, "accounts")
	if !ok || len(accounts) != len(typed) {
		return nil, false
	}
	return accounts, true
}

// element accepts any object carrying an identifier or an amount.
func element(obj map[string]any) (Account, bool) {
	if _, ok := balance.ResolveText(obj, IDAliases); ok {
		return Account(obj), true
	}
	if _, ok := balance.ResolveDecimal(obj, AmountAliases); ok {
		return Account(obj), true
	}
	return nil, false
}

// Project implements balance.Source.
//
// An account without any amount field is a zero balance, not an error: the
// aggregation layer filters it out.
func (s Source) Project(a Account) (balance.Record, bool) {
	obj := map[string]any(a)
	id, ok := balance.ResolveText(obj, IDAliases)
	if !ok {
		id = balance.NewID()
	}
	title, ok := balance.ResolveString(obj, TitleAliases)
	if !ok {
		title = balance.MaskID(id)
	}
	currency, ok := balance.ResolveCurrency(obj, balance.CurrencyAliases)
	if !ok {
		currency = s.home()
	}
	amount, ok := balance.ResolveDecimal(obj, AmountAliases)
	if !ok {
		amount = decimal.Zero
	}
	if s.MinorUnits && amount.IsInteger() {
		amount = amount.Shift(-int32(balance.CurrencyFraction(currency)))
	}
	return balance.Record{
		ID:       id,
		Title:    title,
		Currency: currency,
		Amount:   amount,
	}, true
}

// Normalize decodes a ledger payload into deduplicated canonical records.
func Normalize(data []byte) ([]balance.Record, error) {
	return balance.Normalize[Account](Source{}, data)
}
