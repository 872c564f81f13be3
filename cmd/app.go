// Package cmd implements the CLI application to backtest the threshold
// strategy.
// A main package will call Register() on each of Commands, and Execute() on
// the user-selected one.
package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// Commands lists the subcommands to register on a commander.
var Commands = []subcommands.Command{
	&runCmd{},
	&quoteCmd{},
	&cacheCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cacheDir = flag.String("cache-dir", ".", "Directory holding the per-symbol price cache files")

// parseThresholds parses a comma-separated list of decimal thresholds.
func parseThresholds(s string) ([]decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]decimal.Decimal, len(parts))
	for i, p := range parts {
		d, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid threshold %q: %w", p, err)
		}
		out[i] = d
	}
	return out, nil
}

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
