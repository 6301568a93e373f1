package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ssppooff/analysiolo"
	"github.com/ssppooff/analysiolo/renderer"
)

// priceCmd holds the flags for the 'price' subcommand.
type priceCmd struct {
	date string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "resolve prices for one or more tickers" }
func (*priceCmd) Usage() string {
	return `analysiolo price [-d <date>] <ticker>...

  Resolves the market price of each ticker, live by default or at the close
  of a given date.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Resolve closing prices on this date instead of live quotes (YYYY-MM-DD)")
}

func (c *priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbols := f.Args()
	if len(symbols) == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	on := analysiolo.Today()
	if c.date != "" {
		var err error
		if on, err = analysiolo.ParseDate(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	source := priceSource()
	var quotes []renderer.Quote
	for _, symbol := range symbols {
		price, err := source.PriceOn(symbol, on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving %s: %v\n", symbol, err)
			return subcommands.ExitFailure
		}
		quotes = append(quotes, renderer.Quote{Symbol: symbol, Price: price})
	}

	printMarkdown(renderer.Quotes(on, quotes))
	return subcommands.ExitSuccess
}
