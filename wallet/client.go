package wallet

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/balance"
	"github.com/etnz/balance/logger"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the public API of the wallet provider.
const DefaultBaseURL = "https://api.wise.com/"

const (
	profilesPath = "v2/profiles"
	balancesPath = "v4/profiles/%d/balances"
	ratesPath    = "v1/rates"
)

// DefaultTypes are the balance types requested.
var DefaultTypes = []string{"STANDARD", "SAVINGS"}

// Client fetches the balances of the token's owner. It implements
// balance.Pipeline.
type Client struct {
	BaseURL string // defaults to DefaultBaseURL
	Token   string
	HTTP    *http.Client // defaults to http.DefaultClient
	// RatesHTTP is used for rate requests, defaults to HTTP. Rates are good
	// candidates for balance.DailyClient.
	RatesHTTP *http.Client
	Types     []string // defaults to DefaultTypes
	Source    Source
}

func (c *Client) Provider() balance.Provider { return balance.Wallet }

func (c *Client) base() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *Client) get(ctx context.Context, client *http.Client, path string, query url.Values) ([]byte, error) {
	if c.Token == "" {
		return nil, balance.MissingCredentialError(balance.Wallet)
	}
	req, err := balance.NewRequest(ctx, balance.Wallet, c.base(), path, query)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if client == nil {
		client = c.HTTP
	}
	return balance.Fetch(client, balance.Wallet, req)
}

// ProfileID finds the wallet holder's profile.
func (c *Client) ProfileID(ctx context.Context) (int64, error) {
	data, err := c.get(ctx, c.HTTP, profilesPath, nil)
	if err != nil {
		return 0, err
	}
	return ProfileID(data)
}

// Balances looks up the profile, then fetches and normalizes its balances.
func (c *Client) Balances(ctx context.Context) ([]balance.Record, error) {
	id, err := c.ProfileID(ctx)
	if err != nil {
		return nil, err
	}
	types := c.Types
	if len(types) == 0 {
		types = DefaultTypes
	}
	query := url.Values{"types": {strings.Join(types, ",")}}
	data, err := c.get(ctx, c.HTTP, fmt.Sprintf(balancesPath, id), query)
	if err != nil {
		return nil, err
	}
	return balance.Normalize[Balance](c.Source, data)
}

// Rate fetches the current rate from source to target.
func (c *Client) Rate(ctx context.Context, source, target string) (balance.Rate, error) {
	source, target = strings.ToUpper(source), strings.ToUpper(target)
	if !balance.KnownCurrency(source) || !balance.KnownCurrency(target) {
		return balance.Rate{}, balance.InvalidTargetError(balance.Wallet, fmt.Errorf("unknown currency pair %s/%s", source, target))
	}
	client := c.RatesHTTP
	if client == nil {
		client = c.HTTP
	}
	data, err := c.get(ctx, client, ratesPath, url.Values{"source": {source}, "target": {target}})
	if err != nil {
		return balance.Rate{}, err
	}
	rate, ok := DecodeRate(data, source, target)
	if !ok {
		return balance.Rate{}, balance.DecodingError(balance.Wallet, "no rate for %s/%s", source, target)
	}
	return rate, nil
}

// Rates fetches the rate of every source currency to target concurrently.
// Pairs that fail are omitted, identical currencies are skipped. Only a
// missing credential fails the whole batch.
func (c *Client) Rates(ctx context.Context, target string, sources ...string) ([]balance.Rate, error) {
	if c.Token == "" {
		return nil, balance.MissingCredentialError(balance.Wallet)
	}
	log := logger.FromContext(ctx)
	results := make([]*balance.Rate, len(sources))
	var g errgroup.Group
	for i, source := range sources {
		if strings.EqualFold(source, target) {
			continue
		}
		g.Go(func() error {
			rate, err := c.Rate(ctx, source, target)
			if err != nil {
				log.Warn().Str("source", source).Str("target", target).Err(err).Msg("rate omitted")
				return nil
			}
			results[i] = &rate
			return nil
		})
	}
	_ = g.Wait() // failing pairs are omitted

	rates := make([]balance.Rate, 0, len(results))
	for _, r := range results {
		if r != nil {
			rates = append(rates, *r)
		}
	}
	return rates, nil
}
