package ledger

import (
	"context"
	"net/http"

	"github.com/etnz/balance"
)

// DefaultBaseURL is the public personal API of the bank.
const DefaultBaseURL = "https://api.monobank.ua/"

const clientInfoPath = "personal/client-info"

// Client fetches the accounts of the token's owner. It implements
// balance.Pipeline.
type Client struct {
	BaseURL string // defaults to DefaultBaseURL
	Token   string
	HTTP    *http.Client // defaults to http.DefaultClient
	Source  Source
}

func (c *Client) Provider() balance.Provider { return balance.Ledger }

// Balances fetches the client info and normalizes its accounts.
func (c *Client) Balances(ctx context.Context) ([]balance.Record, error) {
	if c.Token == "" {
		return nil, balance.MissingCredentialError(balance.Ledger)
	}
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	req, err := balance.NewRequest(ctx, balance.Ledger, base, clientInfoPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Token", c.Token)

	data, err := balance.Fetch(c.HTTP, balance.Ledger, req)
	if err != nil {
		return nil, err
	}
	return balance.Normalize[Account](c.Source, data)
}
