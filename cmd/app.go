// Package cmd implements the CLI application to normalize and display
// account balances.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/balance"
	"github.com/etnz/balance/ledger"
	"github.com/etnz/balance/logger"
	"github.com/etnz/balance/wallet"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&normalizeCmd{}, "balances")
	c.Register(&fetchCmd{}, "balances")
	c.Register(&ratesCmd{}, "balances")

	c.Register(&tokenCmd{}, "credentials")

	c.Register(&topicCmd{}, "help")
}

const (
	ledgerTokenEnv = "LEDGER_API_TOKEN"
	walletTokenEnv = "WALLET_API_TOKEN"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	tokenDir  = flag.String("token-dir", "", "Directory where provider tokens are stored. Defaults to the system temp dir.")
	ledgerURL = flag.String("ledger-url", ledger.DefaultBaseURL, "Base URL of the ledger-account provider API.")
	walletURL = flag.String("wallet-url", wallet.DefaultBaseURL, "Base URL of the wallet provider API.")
	logLevel  = flag.String("log-level", "warn", "Log level: debug, info, warn or error.")
)

// Keychain returns the token store: environment variables take precedence
// over stored tokens.
func Keychain() balance.Keychain {
	return balance.EnvKeychain{
		Vars: map[string]string{
			string(balance.Ledger): ledgerTokenEnv,
			string(balance.Wallet): walletTokenEnv,
		},
		Keychain: balance.FileKeychain{Dir: *tokenDir},
	}
}

// WithLogger returns ctx carrying the logger configured by the -log-level flag.
func WithLogger(ctx context.Context) context.Context {
	return logger.WithContext(ctx, logger.New(logger.ParseLevel(*logLevel)))
}

// parseProvider reads a provider name.
func parseProvider(s string) (balance.Provider, error) {
	switch p := balance.Provider(s); p {
	case balance.Ledger, balance.Wallet:
		return p, nil
	}
	return "", fmt.Errorf("unknown provider %q, want %q or %q", s, balance.Ledger, balance.Wallet)
}

// reportError prints err, with a call to action for missing credentials.
func reportError(err error) {
	var e *balance.Error
	if errors.As(err, &e) && e.Kind == balance.MissingCredential {
		fmt.Fprintf(os.Stderr, "Error: %v\n  Run 'balances token set %s <token>' or set the %s environment variable.\n", err, e.Provider, tokenEnv(e.Provider))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

func tokenEnv(p balance.Provider) string {
	switch p {
	case balance.Wallet:
		return walletTokenEnv
	default:
		return ledgerTokenEnv
	}
}
