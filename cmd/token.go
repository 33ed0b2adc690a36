package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// tokenCmd is a container for token subcommands
type tokenCmd struct{}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "manages provider tokens" }
func (*tokenCmd) Usage() string {
	return `token <subcommand> [args]

Commands:
  set    - Store the API token of a provider.
  delete - Forget the API token of a provider.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {}
func (c *tokenCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "token")
	commander.Register(&tokenSetCmd{}, "")
	commander.Register(&tokenDeleteCmd{}, "")
	return commander.Execute(ctx, args...)
}

type tokenSetCmd struct{}

func (*tokenSetCmd) Name() string     { return "set" }
func (*tokenSetCmd) Synopsis() string { return "stores the API token of a provider" }
func (*tokenSetCmd) Usage() string {
	return `balances token set <ledger|wallet> <token>
`
}
func (*tokenSetCmd) SetFlags(f *flag.FlagSet) {}

func (*tokenSetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expecting a provider and a token.")
		return subcommands.ExitUsageError
	}
	p, err := parseProvider(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := Keychain().Set(string(p), f.Arg(1)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to store %s token: %v\n", p, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "✅ %s token stored.\n", p)
	return subcommands.ExitSuccess
}

type tokenDeleteCmd struct{}

func (*tokenDeleteCmd) Name() string     { return "delete" }
func (*tokenDeleteCmd) Synopsis() string { return "forgets the API token of a provider" }
func (*tokenDeleteCmd) Usage() string {
	return `balances token delete <ledger|wallet>
`
}
func (*tokenDeleteCmd) SetFlags(f *flag.FlagSet) {}

func (*tokenDeleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting a provider.")
		return subcommands.ExitUsageError
	}
	p, err := parseProvider(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := Keychain().Delete(string(p)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to delete %s token: %v\n", p, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "✅ %s token deleted.\n", p)
	return subcommands.ExitSuccess
}
