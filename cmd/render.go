package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders md for the terminal, or prints it raw when it cannot be rendered.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// printJSON writes v as indented JSON on w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// output prints v as JSON, or md rendered for the terminal ("markdown") or
// as is ("raw").
func output(format string, v any, md string) error {
	switch format {
	case "json":
		return printJSON(os.Stdout, v)
	case "markdown", "md":
		printMarkdown(md)
		return nil
	case "raw":
		fmt.Print(md)
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}
