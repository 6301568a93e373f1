// Package store persists the transaction ledger in a SQLite database.
//
// The core treats the ledger as an append-only, internally consistent record.
// This package offers the operations the core consumes: append a batch, read
// everything back, read the most recent transaction date, and read per-symbol
// share totals for seeding sequence validation.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ssppooff/analysiolo"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id         TEXT PRIMARY KEY,
	date       TEXT NOT NULL,
	symbol     TEXT NOT NULL,
	shares     INTEGER NOT NULL,
	price      TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_symbol ON transactions(symbol);
`

// Ledger is a SQLite-backed transaction ledger.
type Ledger struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (creating if necessary) the ledger database at path.
func Open(path string, log zerolog.Logger) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Ledger{db: db, log: log.With().Str("component", "store").Logger()}, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error { return l.db.Close() }

// Append writes a batch of transactions in one database transaction: either
// the whole batch is persisted or none of it is.
func (l *Ledger) Append(txs []analysiolo.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	dbTx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO transactions (id, date, symbol, shares, price) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		if _, err := stmt.Exec(uuid.NewString(), tx.Date.String(), tx.Symbol, tx.Shares, tx.Price.String()); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", tx, err)
		}
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	l.log.Info().Int("count", len(txs)).Msg("appended transactions")
	return nil
}

// All reads back every transaction in storage (insertion) order. The core
// re-validates ordering through its journal; the store does not sort.
func (l *Ledger) All() ([]analysiolo.Transaction, error) {
	rows, err := l.db.Query(`SELECT date, symbol, shares, price FROM transactions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []analysiolo.Transaction
	for rows.Next() {
		var dateStr, symbol, priceStr string
		var shares int64
		if err := rows.Scan(&dateStr, &symbol, &shares, &priceStr); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		date, err := analysiolo.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt date in ledger: %w", err)
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt price in ledger: %w", err)
		}
		txs = append(txs, analysiolo.Transaction{Date: date, Symbol: symbol, Shares: shares, Price: price})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return txs, nil
}

// LastDate returns the most recent transaction date, or false for an empty
// ledger.
func (l *Ledger) LastDate() (analysiolo.Date, bool, error) {
	var dateStr sql.NullString
	err := l.db.QueryRow(`SELECT MAX(date) FROM transactions`).Scan(&dateStr)
	if err != nil {
		return analysiolo.Date{}, false, fmt.Errorf("failed to query last date: %w", err)
	}
	if !dateStr.Valid {
		return analysiolo.Date{}, false, nil
	}
	date, err := analysiolo.ParseDate(dateStr.String)
	if err != nil {
		return analysiolo.Date{}, false, fmt.Errorf("corrupt date in ledger: %w", err)
	}
	return date, true, nil
}

// Totals returns the running share total per symbol over the whole ledger,
// used to seed the share-integrity check of a newly ingested batch.
func (l *Ledger) Totals() (map[string]int64, error) {
	rows, err := l.db.Query(`SELECT symbol, SUM(shares) FROM transactions GROUP BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to query totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var symbol string
		var shares int64
		if err := rows.Scan(&symbol, &shares); err != nil {
			return nil, fmt.Errorf("failed to scan total: %w", err)
		}
		totals[symbol] = shares
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read totals: %w", err)
	}
	return totals, nil
}
