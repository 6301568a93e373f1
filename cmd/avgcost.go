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

// avgCostCmd holds the flags for the 'avg-cost' subcommand.
type avgCostCmd struct {
	symbol string
	from   string
	to     string
}

func (*avgCostCmd) Name() string     { return "avg-cost" }
func (*avgCostCmd) Synopsis() string { return "display per-ticker purchase statistics" }
func (*avgCostCmd) Usage() string {
	return `analysiolo avg-cost [-s <ticker>] [-from <date>] [-to <date>]

  Displays the average, lowest and highest purchase price per ticker, over
  the whole ledger or a period. Sells never affect the figures.
`
}

func (c *avgCostCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Only report this ticker")
	f.StringVar(&c.from, "from", "", "Start of the period (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "End of the period (YYYY-MM-DD)")
}

func (c *avgCostCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	grouped := analysiolo.GroupBySymbol(txs)

	var bases []analysiolo.CostBasis
	for _, symbol := range journal.Symbols() {
		outcome := analysiolo.AverageCost(grouped[symbol])
		if outcome.IsEmpty() {
			continue
		}
		basis, ok := outcome.Get()
		if !ok {
			fmt.Fprintf(os.Stderr, "Error computing cost basis for %s: %v\n", symbol, outcome.Err())
			return subcommands.ExitFailure
		}
		bases = append(bases, basis)
	}
	if len(bases) == 0 {
		fmt.Println("No purchases in the selected period.")
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.CostBases(bases))
	return subcommands.ExitSuccess
}
