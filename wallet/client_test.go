package wallet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/etnz/balance"
)

const profiles = `[
  {"id": 16, "type": "business", "details": {"name": "ACME"}},
  {"id": 3, "type": "personal", "details": {"firstName": "Oliver"}}
]`

// newServer serves the wallet API for the token "tok".
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/profiles", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, profiles)
	})
	mux.HandleFunc("/v4/profiles/3/balances", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("types"); got != "STANDARD,SAVINGS" {
			http.Error(w, "bad types "+got, http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, balances)
	})
	mux.HandleFunc("/v1/rates", func(w http.ResponseWriter, r *http.Request) {
		source, target := r.URL.Query().Get("source"), r.URL.Query().Get("target")
		switch {
		case source == "EUR" && target == "UAH":
			fmt.Fprint(w, `[{"rate":45.1,"source":"EUR","target":"UAH","time":"2024-03-01T10:00:00+0000"}]`)
		case source == "USD" && target == "UAH":
			fmt.Fprint(w, `[{"rate":41.25,"source":"USD","target":"UAH","time":"2024-03-01T10:00:00+0000"}]`)
		default:
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"error":"unsupported pair"}`)
		}
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"invalid_token","error_description":"Invalid token"}`)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Balances(t *testing.T) {
	server := newServer(t)
	c := &Client{BaseURL: server.URL, Token: "tok", HTTP: server.Client()}

	id, err := c.ProfileID(context.Background())
	if err != nil || id != 3 {
		t.Fatalf("ProfileID() = %d, %v, want 3", id, err)
	}

	got, err := c.Balances(context.Background())
	if err != nil {
		t.Fatalf("Balances() unexpected error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Balances() = %v, want 2 records", got)
	}
	assertRecord(t, got[0], want{id: "200001", title: "STANDARD", currency: "EUR", amount: "1500.25"})
	assertRecord(t, got[1], want{id: "200002", title: "Holiday", currency: "USD", amount: "300"})
}

func TestClient_Errors(t *testing.T) {
	server := newServer(t)
	tests := []struct {
		name   string
		client *Client
		target error
	}{
		{name: "missing token", client: &Client{BaseURL: server.URL, HTTP: server.Client()}, target: balance.ErrMissingCredential},
		{name: "invalid token", client: &Client{BaseURL: server.URL, Token: "bad", HTTP: server.Client()}, target: balance.ErrGenericMessage},
		{name: "invalid base url", client: &Client{BaseURL: "://", Token: "tok"}, target: balance.ErrInvalidTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.client.Balances(context.Background())
			if !errors.Is(err, tt.target) {
				t.Errorf("Balances() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestClient_Rates(t *testing.T) {
	server := newServer(t)
	c := &Client{BaseURL: server.URL, Token: "tok", HTTP: server.Client()}

	rate, err := c.Rate(context.Background(), "eur", "uah")
	if err != nil {
		t.Fatalf("Rate() unexpected error = %v", err)
	}
	if rate.Source != "EUR" || rate.Target != "UAH" || rate.Rate.String() != "45.1" {
		t.Errorf("Rate() = %+v, want EUR/UAH 45.1", rate)
	}

	if _, err := c.Rate(context.Background(), "ABC", "UAH"); !errors.Is(err, balance.ErrInvalidTarget) {
		t.Errorf("Rate(ABC) error = %v, want invalid target", err)
	}
	if _, err := c.Rate(context.Background(), "GBP", "UAH"); !errors.Is(err, balance.ErrGenericMessage) {
		t.Errorf("Rate(GBP) error = %v, want the upstream message", err)
	}

	// failing pairs are omitted, order is kept.
	rates, err := c.Rates(context.Background(), "UAH", "USD", "UAH", "GBP", "ABC", "EUR")
	if err != nil {
		t.Fatalf("Rates() unexpected error = %v", err)
	}
	var pairs []string
	for _, r := range rates {
		pairs = append(pairs, r.Source+"/"+r.Target+" "+r.Rate.String())
	}
	if want := []string{"USD/UAH 41.25", "EUR/UAH 45.1"}; !reflect.DeepEqual(pairs, want) {
		t.Errorf("Rates() = %v, want %v", pairs, want)
	}

	if _, err := (&Client{}).Rates(context.Background(), "UAH", "EUR"); !errors.Is(err, balance.ErrMissingCredential) {
		t.Errorf("Rates() without token error = %v, want missing credential", err)
	}
}

var _ balance.Pipeline = (*Client)(nil)
