package balance

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Provider identifies the upstream service a record or an error comes from.
type Provider string

const (
	Ledger Provider = "ledger" // ledger-account bank provider
	Wallet Provider = "wallet" // multi-currency wallet provider
)

// Record is the canonical, provider agnostic balance of one account.
//
// Records are values: they are rebuilt on every refresh and have no identity
// beyond ID.
type Record struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
	Provider Provider        `json:"provider,omitempty"`
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s %s", r.Title, r.Amount.String(), r.Currency)
}

// Rate is the exchange rate from Source to Target: 1 Source = Rate Target.
type Rate struct {
	Source string          `json:"source"`
	Target string          `json:"target"`
	Rate   decimal.Decimal `json:"rate"`
}

// NewID returns a random identifier for accounts that come without one.
func NewID() string { return uuid.NewString() }

const maskMarker = "•••• "

// MaskID derives a display label from an account identifier: identifiers
// longer than 6 characters are reduced to their last 4, prefixed with a mask.
func MaskID(id string) string {
	if utf8.RuneCountInString(id) <= 6 {
		return id
	}
	r := []rune(id)
	return maskMarker + string(r[len(r)-4:])
}

// Dedupe removes records whose ID was already seen, keeping the first
// occurrence and the order of first appearance.
func Dedupe(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
