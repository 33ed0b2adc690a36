package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/etnz/balance"
	"github.com/etnz/balance/renderer"
	"github.com/etnz/balance/wallet"
	"github.com/google/subcommands"
)

type ratesCmd struct {
	to      string
	format  string
	timeout time.Duration
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "fetches exchange rates from the wallet provider" }
func (*ratesCmd) Usage() string {
	return `balances rates -to <currency> <currency>...

Fetches the current rate of every listed currency into the -to currency.
Pairs the provider cannot quote are omitted. Rates are cached for the day.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.to, "to", "UAH", "Target currency.")
	f.StringVar(&c.format, "format", "markdown", "Output format: markdown, raw or json.")
	f.DurationVar(&c.timeout, "timeout", 30*time.Second, "Timeout of each rate request.")
}

func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = WithLogger(ctx)
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one source currency is required.")
		return subcommands.ExitUsageError
	}
	token, err := balance.Credential(Keychain(), balance.Wallet)
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}
	rates := balance.DailyClient(*tokenDir)
	rates.Timeout = c.timeout
	client := &wallet.Client{
		BaseURL:   *walletURL,
		Token:     token,
		HTTP:      newHTTPClient(c.timeout),
		RatesHTTP: rates,
	}
	list, err := client.Rates(ctx, c.to, f.Args()...)
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}
	if err := output(c.format, list, renderer.RatesMarkdown(list)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}

// newHTTPClient returns a client applying timeout to every request.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
