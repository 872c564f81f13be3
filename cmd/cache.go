package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/wgaggioli/capeval"
)

type cacheCmd struct {
	index string
}

func (*cacheCmd) Name() string     { return "cache" }
func (*cacheCmd) Synopsis() string { return "print the persisted price cache for an index" }
func (*cacheCmd) Usage() string {
	return `capeval cache [-index <symbol>]

  Prints every cached date and close price in chronological order.
`
}

func (c *cacheCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.index, "index", "^GSPC", "Index symbol whose cache to print.")
}

func (c *cacheCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cache, err := capeval.LoadPriceCache(*cacheDir, c.index)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if cache.Len() == 0 {
		fmt.Printf("no cached prices for %s\n", c.index)
		return subcommands.ExitSuccess
	}
	for _, day := range cache.Days() {
		price, _ := cache.Get(day)
		fmt.Printf("%s %s\n", day, price)
	}
	return subcommands.ExitSuccess
}
