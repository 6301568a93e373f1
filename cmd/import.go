package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/ssppooff/analysiolo"
	"github.com/ssppooff/analysiolo/renderer"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	file   string
	dryRun bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a flat file" }
func (*importCmd) Usage() string {
	return `analysiolo import -f <file> [-dry-run]

  Reads transactions from a whitespace-separated flat file ("-" for stdin),
  validates the batch against the persisted ledger, and appends it. A single
  malformed or out-of-order record aborts the whole import.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Flat file to import, or - for stdin")
	f.BoolVar(&c.dryRun, "dry-run", false, "Validate and show the batch without persisting it")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	var in io.Reader = os.Stdin
	if c.file != "-" {
		file, err := os.Open(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.file, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		in = file
	}

	txs, err := analysiolo.DecodeTransactions(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(txs) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to import.")
		return subcommands.ExitSuccess
	}

	ledger, err := OpenLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer ledger.Close()

	totals, err := ledger.Totals()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ledger totals: %v\n", err)
		return subcommands.ExitFailure
	}

	// The batch must be internally consistent and must not oversell what the
	// ledger already holds.
	batch, err := analysiolo.NewJournalSeeded(totals, txs...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid batch: %v\n", err)
		return subcommands.ExitFailure
	}

	// An imported batch may not predate what is already persisted, or the
	// ledger would no longer read back in chronological order.
	if last, ok, err := ledger.LastDate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ledger: %v\n", err)
		return subcommands.ExitFailure
	} else if ok && batch.OldestDate().Before(last) {
		fmt.Fprintf(os.Stderr, "Batch starts %s, before the last persisted transaction on %s.\n", batch.OldestDate(), last)
		return subcommands.ExitFailure
	}

	if c.dryRun {
		printMarkdown(renderer.Transactions(batch.All()))
		fmt.Printf("Dry run: %d transactions validated, nothing persisted.\n", batch.Len())
		return subcommands.ExitSuccess
	}

	if err := ledger.Append(batch.All()); err != nil {
		fmt.Fprintf(os.Stderr, "Error persisting batch: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d transactions.\n", batch.Len())
	return subcommands.ExitSuccess
}
