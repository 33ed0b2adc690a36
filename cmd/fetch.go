package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/balance"
	"github.com/etnz/balance/ledger"
	"github.com/etnz/balance/renderer"
	"github.com/etnz/balance/wallet"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	format     string
	timeout    time.Duration
	minorUnits bool
	nonZero    bool
	convert    string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches balances from the providers" }
func (*fetchCmd) Usage() string {
	return `balances fetch [-convert <currency>] [provider...]

Fetches the balances of every provider (or only those listed) in parallel
and prints them.

A provider that fails does not prevent the others from being displayed.

Supported providers:
  - ledger: the ledger-account bank. Requires a token, see 'balances token'
            or the LEDGER_API_TOKEN environment variable.
  - wallet: the multi-currency wallet. Requires a token, see 'balances token'
            or the WALLET_API_TOKEN environment variable.

With -convert, the grand total in that currency is computed from the
wallet provider's current rates.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "markdown", "Output format: markdown, raw or json.")
	f.DurationVar(&c.timeout, "timeout", 30*time.Second, "Timeout of each provider request.")
	f.BoolVar(&c.minorUnits, "minor-units", false, "ledger only: read integer amounts as minor units (cents).")
	f.BoolVar(&c.nonZero, "non-zero", true, "Hide zero balances.")
	f.StringVar(&c.convert, "convert", "", "Currency to compute the grand total in.")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = WithLogger(ctx)
	providers := f.Args()
	if len(providers) == 0 {
		providers = []string{string(balance.Ledger), string(balance.Wallet)}
	}

	keychain := Keychain()
	httpClient := newHTTPClient(c.timeout)
	var pipelines []balance.Pipeline
	var walletClient *wallet.Client
	for _, name := range providers {
		p, err := parseProvider(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		// a missing token is reported by the pipeline itself.
		token, err := balance.Credential(keychain, p)
		if err != nil && balance.KindOf(err) != balance.MissingCredential {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		switch p {
		case balance.Ledger:
			pipelines = append(pipelines, &ledger.Client{
				BaseURL: *ledgerURL,
				Token:   token,
				HTTP:    httpClient,
				Source:  ledger.Source{MinorUnits: c.minorUnits},
			})
		case balance.Wallet:
			walletClient = &wallet.Client{
				BaseURL:   *walletURL,
				Token:     token,
				HTTP:      httpClient,
				RatesHTTP: balance.DailyClient(*tokenDir),
			}
			pipelines = append(pipelines, walletClient)
		}
	}

	snap := balance.Refresh(ctx, pipelines...)
	for _, p := range snap.Failed {
		reportError(snap.Errors[p])
	}

	records := snap.Records
	if c.nonZero {
		records = records.NonZero()
	}
	var conv *renderer.Conversion
	if c.convert != "" && walletClient != nil && walletClient.Token != "" {
		target := strings.ToUpper(c.convert)
		rates, err := walletClient.Rates(ctx, target, records.Currencies()...)
		if err != nil {
			reportError(err)
		}
		total, skipped := records.Convert(rates, target)
		conv = &renderer.Conversion{Currency: target, Total: total, Skipped: skipped}
	}

	if err := output(c.format, records, renderer.BalancesMarkdown(records, conv)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if len(snap.Errors) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
