package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/google/subcommands"

	"github.com/ssppooff/analysiolo"
	"github.com/ssppooff/analysiolo/renderer"
)

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	date string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "display the portfolio value on a specific date" }
func (*valueCmd) Usage() string {
	return `analysiolo value [-d <date>]

  Prices every position held on the given date and sums them. Without -d
  the portfolio is valued right now, using live quotes.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Valuation date (YYYY-MM-DD), defaults to today")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on := analysiolo.Today()
	if c.date != "" {
		var err error
		if on, err = analysiolo.ParseDate(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	ledger, err := OpenLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer ledger.Close()

	journal, err := LoadJournal(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal: %v\n", err)
		return subcommands.ExitFailure
	}

	// Only transactions up to the valuation date shape the portfolio.
	upTo, err := analysiolo.NewJournal(slices.Collect(journal.Transactions(analysiolo.Until(on)))...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal: %v\n", err)
		return subcommands.ExitFailure
	}

	pf, err := analysiolo.PortfolioOf(upTo, priceSource(), on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	var lines []renderer.ValuationLine
	for _, symbol := range pf.Symbols() {
		pos, _ := pf.Position(symbol)
		value, err := pos.ValueOn(on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error valuing %s: %v\n", symbol, err)
			return subcommands.ExitFailure
		}
		lines = append(lines, renderer.ValuationLine{Symbol: symbol, Shares: pos.Shares, Value: value})
	}

	total, err := pf.ValueOn(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Valuation(on, lines, total))
	return subcommands.ExitSuccess
}
