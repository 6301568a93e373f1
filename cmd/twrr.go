package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/ssppooff/analysiolo"
	"github.com/ssppooff/analysiolo/renderer"
)

// twrrCmd holds the flags for the 'twrr' subcommand.
type twrrCmd struct {
	from string
	to   string
}

func (*twrrCmd) Name() string     { return "twrr" }
func (*twrrCmd) Synopsis() string { return "compute the time-weighted rate of return" }
func (*twrrCmd) Usage() string {
	return `analysiolo twrr [-from <date>] [-to <date>]

  Computes the time-weighted rate of return of the portfolio over a period,
  defaulting to the whole lifetime of the ledger.
`
}

func (c *twrrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Start of the period (YYYY-MM-DD), defaults to the first transaction")
	f.StringVar(&c.to, "to", "", "End of the period (YYYY-MM-DD), defaults to today")
}

func (c *twrrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if journal.Len() == 0 {
		fmt.Println("The ledger is empty, there is no return to measure.")
		return subcommands.ExitSuccess
	}

	period, err := parsePeriod(journal, c.from, c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return subcommands.ExitUsageError
	}

	factors, err := analysiolo.GrowthFactors(journal, priceSource(), period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing growth factors: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(factors) == 0 {
		fmt.Printf("Nothing was held between %s and %s, there is no return to measure.\n", period.From, period.To)
		return subcommands.ExitSuccess
	}

	twrr := decimal.NewFromInt(1)
	for _, factor := range factors {
		twrr = twrr.Mul(factor)
	}
	twrr = twrr.Sub(decimal.NewFromInt(1))

	printMarkdown(renderer.Performance(period, factors, twrr))
	return subcommands.ExitSuccess
}
