package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/balance"
	"github.com/etnz/balance/ledger"
	"github.com/etnz/balance/renderer"
	"github.com/etnz/balance/wallet"
	"github.com/google/subcommands"
)

// normalizeCmd implements the "normalize" command.
type normalizeCmd struct {
	provider   string
	format     string
	minorUnits bool
	nonZero    bool
}

func (*normalizeCmd) Name() string     { return "normalize" }
func (*normalizeCmd) Synopsis() string { return "normalizes a saved provider response into balances" }
func (*normalizeCmd) Usage() string {
	return `balances normalize -provider <ledger|wallet> [file]

  Reads a provider response body from file (or stdin) and prints the
  canonical balances found in it.
`
}

func (c *normalizeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.provider, "provider", string(balance.Ledger), "Provider that produced the response: ledger or wallet.")
	f.StringVar(&c.format, "format", "markdown", "Output format: markdown, raw or json.")
	f.BoolVar(&c.minorUnits, "minor-units", false, "ledger only: read integer amounts as minor units (cents).")
	f.BoolVar(&c.nonZero, "non-zero", false, "Hide zero balances.")
}

func (c *normalizeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	provider, err := parseProvider(c.provider)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var in io.Reader = os.Stdin
	if f.NArg() > 0 {
		file, err := os.Open(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", f.Arg(0), err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		in = file
	}
	data, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading response: %v\n", err)
		return subcommands.ExitFailure
	}

	var records balance.Records
	switch provider {
	case balance.Ledger:
		records, err = balance.Normalize[ledger.Account](ledger.Source{MinorUnits: c.minorUnits}, data)
	case balance.Wallet:
		records, err = balance.Normalize[wallet.Balance](wallet.Source{}, data)
	}
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}
	if c.nonZero {
		records = records.NonZero()
	}

	if err := output(c.format, records, renderer.BalancesMarkdown(records, nil)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
