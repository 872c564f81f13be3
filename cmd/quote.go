package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/wgaggioli/capeval"
	"github.com/wgaggioli/capeval/date"
)

type quoteCmd struct {
	index string
	on    string
}

func (*quoteCmd) Name() string { return "quote" }
func (*quoteCmd) Synopsis() string {
	return "resolve and print the close price of the index for one day"
}
func (*quoteCmd) Usage() string {
	return `capeval quote [-index <symbol>] [-on <date>]

  Resolves the close price the way a run would: weekends normalized backward,
  market holidays stepped over, the result cached for later runs.

Usage Examples:
$ capeval quote -on 2011-10-03
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.index, "index", "^GSPC", "Index symbol to quote.")
	f.StringVar(&c.on, "on", "", "Day to quote (YYYY-MM-DD). Defaults to today.")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on := date.Today()
	if c.on != "" {
		var err error
		if on, err = date.Parse(c.on); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	cache, err := capeval.LoadPriceCache(*cacheDir, c.index)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	oracle := capeval.NewOracle(c.index, capeval.NewYahooQuoter(), cache)

	price, err := oracle.Resolve(on)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := cache.Save(*cacheDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s %s %s\n", c.index, on, price)
	return subcommands.ExitSuccess
}
