// Package cmd implements the CLI application to manage the transaction
// ledger and its reports.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ssppooff/analysiolo"
	"github.com/ssppooff/analysiolo/store"
	"github.com/ssppooff/analysiolo/yahoo"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "ledger")
	c.Register(&listCmd{}, "ledger")

	c.Register(&priceCmd{}, "reports")
	c.Register(&valueCmd{}, "reports")
	c.Register(&avgCostCmd{}, "reports")
	c.Register(&twrrCmd{}, "reports")

	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var dbFlag = flag.String("db", "", "Path to the SQLite ledger database (default $ANALYSIOLO_DB, or analysiolo.db)")
var verbose = flag.Bool("v", false, "Enable debug logging")

var logger zerolog.Logger

// Setup loads the .env configuration and initializes logging. It must run
// after flag.Parse.
func Setup() {
	_ = godotenv.Load()
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func dbPath() string {
	if *dbFlag != "" {
		return *dbFlag
	}
	if path := os.Getenv("ANALYSIOLO_DB"); path != "" {
		return path
	}
	return "analysiolo.db"
}

// OpenLedger is the central function to open the ledger database.
func OpenLedger() (*store.Ledger, error) {
	return store.Open(dbPath(), logger)
}

// LoadJournal reads the whole ledger back into a validated journal.
func LoadJournal(l *store.Ledger) (*analysiolo.Journal, error) {
	txs, err := l.All()
	if err != nil {
		return nil, err
	}
	return analysiolo.NewJournal(txs...)
}

func priceSource() *yahoo.Source {
	return yahoo.New(logger)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the terminal cannot be probed.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// parsePeriod resolves optional -from and -to flags into a Range. Missing
// bounds default to the journal's extent.
func parsePeriod(j *analysiolo.Journal, fromStr, toStr string) (analysiolo.Range, error) {
	from := j.OldestDate()
	to := analysiolo.Today()
	var err error
	if fromStr != "" {
		if from, err = analysiolo.ParseDate(fromStr); err != nil {
			return analysiolo.Range{}, fmt.Errorf("invalid -from date: %w", err)
		}
	}
	if toStr != "" {
		if to, err = analysiolo.ParseDate(toStr); err != nil {
			return analysiolo.Range{}, fmt.Errorf("invalid -to date: %w", err)
		}
	}
	return analysiolo.NewRange(from, to), nil
}
