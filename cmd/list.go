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

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	symbol string
	from   string
	to     string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the transactions of the ledger" }
func (*listCmd) Usage() string {
	return `analysiolo list [-s <ticker>] [-from <date>] [-to <date>]

  Lists the transactions of the ledger in chronological order, optionally
  restricted to one ticker or a period.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Only list transactions of this ticker")
	f.StringVar(&c.from, "from", "", "Start of the period (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "End of the period (YYYY-MM-DD)")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	period, err := parsePeriod(journal, c.from, c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return subcommands.ExitUsageError
	}

	filters := []func(analysiolo.Transaction) bool{
		analysiolo.Since(period.From),
		analysiolo.Until(period.To),
	}
	if c.symbol != "" {
		filters = append(filters, analysiolo.BySymbol(c.symbol))
	}

	txs := slices.Collect(journal.Transactions(filters...))
	printMarkdown(renderer.Transactions(txs))
	return subcommands.ExitSuccess
}
