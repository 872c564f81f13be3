package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/wgaggioli/capeval"
	"github.com/wgaggioli/capeval/date"
	"github.com/wgaggioli/capeval/renderer"
)

// defaultThresholds matches the historical default sweep: every integer
// threshold from 16 to 25, plus a 1000 "always in the market" control.
const defaultThresholds = "16,17,18,19,20,21,22,23,24,25,1000"

type runCmd struct {
	thresholds    string
	sell          string
	file          string
	index         string
	start         string
	end           string
	cash          float64
	income        float64
	inclusiveSell bool
	chart         string
	quiet         bool
}

func (*runCmd) Name() string { return "run" }
func (*runCmd) Synopsis() string {
	return "backtest the threshold strategy against the valuation-ratio series"
}
func (*runCmd) Usage() string {
	return `capeval run [-t <thresholds>] [-file <ratio-file>] [-index <symbol>] [-start MM/YYYY] [-end MM/YYYY] [-chart <png>]

  Simulates one investor per buy threshold: each receives a periodic income,
  goes all-in while the ratio is at or below its buy threshold, and sells
  everything once the ratio exceeds its sell threshold. Prints a summary of
  every investor's final position.

Usage Examples:
# Sweep the default thresholds over S&P 500 CAPE data since 1980.
$ capeval run -file pe_data.csv

# Two investors with distinct sell thresholds, and a chart.
$ capeval run -t 19,21 -sell 24,26 -start 01/2000 -chart worth.png
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.thresholds, "t", defaultThresholds, "Comma-separated buy thresholds, one investor each.")
	f.StringVar(&c.sell, "sell", "", "Comma-separated sell thresholds. Defaults to the buy thresholds.")
	f.StringVar(&c.file, "file", "pe_data.csv", "Valuation-ratio file, one \"MM/YYYY,ratio\" record per line.")
	f.StringVar(&c.index, "index", "^GSPC", "Index symbol to backtest against.")
	f.StringVar(&c.start, "start", "01/1980", "First month of the simulation window (MM/YYYY).")
	f.StringVar(&c.end, "end", "", "Last month of the simulation window (MM/YYYY). Defaults to now.")
	f.Float64Var(&c.cash, "cash", 10000, "Starting cash per investor.")
	f.Float64Var(&c.income, "income", 2000, "Income credited to every investor each period.")
	f.BoolVar(&c.inclusiveSell, "inclusive-sell", false, "Sell when the ratio equals the sell threshold, not only above it.")
	f.StringVar(&c.chart, "chart", "", "Write a net-worth PNG chart to this file.")
	f.BoolVar(&c.quiet, "quiet", false, "Do not log prices and trades as the run progresses.")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	buys, err := parseThresholds(c.thresholds)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if len(buys) == 0 {
		fmt.Fprintln(os.Stderr, "at least one buy threshold is required")
		return subcommands.ExitUsageError
	}
	sells, err := parseThresholds(c.sell)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	from, err := date.ParseMonth(c.start)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	to := date.Today()
	if c.end != "" {
		if to, err = date.ParseMonth(c.end); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	b, err := capeval.New(capeval.Config{
		RatioFile:      c.file,
		Symbol:         c.index,
		Window:         date.NewRange(from, to),
		BuyThresholds:  buys,
		SellThresholds: sells,
		InitialCash:    decimal.NewFromFloat(c.cash),
		Income:         decimal.NewFromFloat(c.income),
		Policy:         capeval.Policy{SellTriggerInclusive: c.inclusiveSell},
		CacheDir:       *cacheDir,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.quiet {
		b.Logf = func(string, ...any) {}
	}

	res, err := b.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(c.index, b.Investors, res))

	if c.chart != "" {
		img, err := renderer.WorthChart(c.index, b.Investors, res)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot render chart:", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.chart, img, 0644); err != nil {
			fmt.Fprintln(os.Stderr, "cannot write chart:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Wrote chart to %s\n", c.chart)
	}
	return subcommands.ExitSuccess
}
