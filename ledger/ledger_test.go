package ledger

import (
	"errors"
	"reflect"
	"testing"

	"github.com/etnz/balance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const clientInfo = `{
  "clientId": "3MSaMMtczs",
  "name": "Мазепа Іван",
  "accounts": [
    {
      "id": "kKGVoZuHWzqVoZuH",
      "sendId": "uHWzqVoZuH",
      "balance": 10000000,
      "creditLimit": 10000000,
      "type": "black",
      "currencyCode": 980,
      "cashbackType": "UAH",
      "maskedPan": ["537541******1234"],
      "iban": "UA733220010000026201234567890"
    },
    {
      "id": "pLUZoJDYtp5nMPeq",
      "balance": 2550,
      "currencyCode": 840,
      "type": "white",
      "maskedPan": [],
      "iban": "UA413220010000026208765432109"
    }
  ]
}`

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []balance.Record
	}{
		{
			name: "aliased wrapper with duplicates",
			data: `{"data":[{"id":"A1","rest":"100,50","ccy":"uah"},{"id":"A1","rest":"999","ccy":"usd"}]}`,
			want: []balance.Record{
				{ID: "A1", Title: "A1", Currency: "UAH", Amount: decimal.RequireFromString("100.50"), Provider: balance.Ledger},
			},
		},
		{
			name: "documented client info",
			data: clientInfo,
			want: []balance.Record{
				{ID: "kKGVoZuHWzqVoZuH", Title: "black", Currency: "UAH", Amount: decimal.RequireFromString("10000000"), Provider: balance.Ledger},
				{ID: "pLUZoJDYtp5nMPeq", Title: "white", Currency: "USD", Amount: decimal.RequireFromString("2550"), Provider: balance.Ledger},
			},
		},
		{
			name: "card with masked title",
			data: `{"cards":[{"cardNumber":"4149499912345678","available":"1 000,00","currency":"usd"}]}`,
			want: []balance.Record{
				{ID: "4149499912345678", Title: "•••• 5678", Currency: "USD", Amount: decimal.RequireFromString("1000"), Provider: balance.Ledger},
			},
		},
		{
			name: "no amount is a zero balance in home currency",
			data: `[{"iban":"UA123","description":"Savings"}]`,
			want: []balance.Record{
				{ID: "UA123", Title: "Savings", Currency: "UAH", Amount: decimal.Zero, Provider: balance.Ledger},
			},
		},
		{
			name: "amount precedence",
			data: `[{"id":"x","available":"1","balance":"2"}]`,
			want: []balance.Record{
				{ID: "x", Title: "x", Currency: "UAH", Amount: decimal.RequireFromString("2"), Provider: balance.Ledger},
			},
		},
		{
			name: "nested amount object",
			data: `[{"id":"x","balance":{"value":"3,5","currency":"EUR"}}]`,
			want: []balance.Record{
				{ID: "x", Title: "x", Currency: "EUR", Amount: decimal.RequireFromString("3.5"), Provider: balance.Ledger},
			},
		},
		{
			name: "deeply wrapped",
			data: `{"response":{"result":{"jars":[{"id":"jar1","title":"Vacation","balance":150000,"currencyCode":980}]}}}`,
			want: []balance.Record{
				{ID: "jar1", Title: "Vacation", Currency: "UAH", Amount: decimal.RequireFromString("150000"), Provider: balance.Ledger},
			},
		},
		{
			name: "empty body",
			data: ``,
			want: []balance.Record{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize([]byte(tt.data))
			if err != nil {
				t.Fatalf("Normalize() unexpected error = %v", err)
			}
			assertRecords(t, got, tt.want)
		})
	}
}

func TestNormalize_SynthesizedID(t *testing.T) {
	got, err := Normalize([]byte(`{"accounts":[{"balance":"5","currency":"EUR","name":"Jar"}]}`))
	if err != nil {
		t.Fatalf("Normalize() unexpected error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Normalize() = %v, want one record", got)
	}
	if _, err := uuid.Parse(got[0].ID); err != nil {
		t.Errorf("Normalize() id = %q, want a generated uuid", got[0].ID)
	}
	if got[0].Title != "Jar" {
		t.Errorf("Normalize() title = %q, want Jar", got[0].Title)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	data := []byte(`{"accounts":[{"id":"a","balance":"1"},{"id":"a","balance":"1"},{"id":"b","balance":"2"}]}`)
	first, err := Normalize(data)
	if err != nil {
		t.Fatalf("Normalize() unexpected error = %v", err)
	}
	second, _ := Normalize(data)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Normalize() is not deterministic: %v then %v", first, second)
	}
	if again := balance.Dedupe(first); !reflect.DeepEqual(again, first) {
		t.Errorf("Dedupe() changed a normalized list: %v", again)
	}
	if len(first) != 2 {
		t.Errorf("Normalize() = %v, want 2 records", first)
	}
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		target  error
		wantMsg string
	}{
		{name: "message", data: `{"message":"token expired"}`, target: balance.ErrGenericMessage, wantMsg: "token expired"},
		{name: "error description", data: `{"errorDescription":"Unknown 'X-Token'"}`, target: balance.ErrGenericMessage, wantMsg: "Unknown 'X-Token'"},
		{name: "no account", data: `{"clientId":"x","name":"y"}`, target: balance.ErrDecodingFailed},
		{name: "html", data: `<html></html>`, target: balance.ErrDecodingFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]byte(tt.data))
			if !errors.Is(err, tt.target) {
				t.Fatalf("Normalize() error = %v, want %v", err, tt.target)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("Normalize() error = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestSource_MinorUnits(t *testing.T) {
	src := Source{MinorUnits: true}
	got, err := balance.Normalize[Account](src, []byte(clientInfo))
	if err != nil {
		t.Fatalf("Normalize() unexpected error = %v", err)
	}
	want := []string{"100000", "25.5"}
	for i, r := range got {
		if !r.Amount.Equal(decimal.RequireFromString(want[i])) {
			t.Errorf("record %d amount = %v, want %v", i, r.Amount, want[i])
		}
	}

	// amounts that already have decimals are left untouched.
	got, _ = balance.Normalize[Account](src, []byte(`[{"id":"a","balance":"12,34"}]`))
	if len(got) != 1 || !got[0].Amount.Equal(decimal.RequireFromString("12.34")) {
		t.Errorf("Normalize() = %v, want 12.34", got)
	}
}

func TestSource_HomeCurrency(t *testing.T) {
	got, err := balance.Normalize[Account](Source{HomeCurrency: "PLN"}, []byte(`[{"id":"a","balance":1}]`))
	if err != nil {
		t.Fatalf("Normalize() unexpected error = %v", err)
	}
	if len(got) != 1 || got[0].Currency != "PLN" {
		t.Errorf("Normalize() = %v, want a PLN record", got)
	}
}

func assertRecords(t *testing.T, got, want []balance.Record) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d records %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Title != w.Title || g.Currency != w.Currency || g.Provider != w.Provider || !g.Amount.Equal(w.Amount) {
			t.Errorf("record %d = %+v, want %+v", i, g, w)
		}
	}
}
