package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/balance/docs"
	"github.com/google/subcommands"
)

// topicCmd prints embedded documentation topics.
type topicCmd struct {
	format string
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "shows documentation" }
func (*topicCmd) Usage() string {
	var b strings.Builder
	b.WriteString(`balances topic [-format markdown|raw|json] [topic...|*]

Shows the documentation of the given topics, or the list of topics.

Topics:
`)
	topics, err := docs.GetAllTopics()
	if err != nil {
		fmt.Fprintf(&b, "  (unavailable: %v)\n", err)
	}
	for _, topic := range topics {
		fmt.Fprintf(&b, "  %s\n", topic)
	}
	return b.String()
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "markdown", "Output format: markdown, raw or json.")
}

// topicNames expands the requested topics: none is the index, "*" is every
// topic.
func topicNames(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{docs.Index}, nil
	}
	var names []string
	for _, arg := range args {
		if arg != "*" {
			names = append(names, arg)
			continue
		}
		all, err := docs.GetAllTopics()
		if err != nil {
			return nil, err
		}
		names = append(names, all...)
	}
	return names, nil
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names, err := topicNames(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing topics: %v\n", err)
		return subcommands.ExitFailure
	}

	byName := make(map[string]string, len(names))
	var doc strings.Builder
	for _, name := range names {
		content, err := docs.GetTopic(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
			return subcommands.ExitFailure
		}
		byName[name] = content
		doc.WriteString(content)
		doc.WriteString("\n")
	}

	if err := output(c.format, byName, doc.String()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
