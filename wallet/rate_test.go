package wallet

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecodeRate(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		want   string
		wantOk bool
	}{
		{name: "documented", data: `[{"rate":1.0852,"source":"EUR","target":"USD","time":"2024-03-01T10:00:00+0000"}]`, want: "1.0852", wantOk: true},
		{name: "object", data: `{"rate":"41,5"}`, want: "41.5", wantOk: true},
		{name: "nested mid", data: `{"data":{"mid":40}}`, want: "40", wantOk: true},
		{name: "zero", data: `[{"rate":0}]`, wantOk: false},
		{name: "negative", data: `{"rate":-1}`, wantOk: false},
		{name: "empty list", data: `[]`, wantOk: false},
		{name: "not json", data: `rate`, wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeRate([]byte(tt.data), "eur", "usd")
			if ok != tt.wantOk {
				t.Fatalf("DecodeRate() ok = %v, want %v", ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if got.Source != "EUR" || got.Target != "USD" {
				t.Errorf("DecodeRate() pair = %s/%s, want EUR/USD", got.Source, got.Target)
			}
			if !got.Rate.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("DecodeRate() rate = %v, want %v", got.Rate, tt.want)
			}
		})
	}
}
