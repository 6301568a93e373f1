package analysiolo

import (
	"iter"
	"slices"
)

// Direction is the inferred date ordering of an ingested transaction batch.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// InferDirection determines the ordering of a transaction sequence by
// comparing the date of the first element against the first element whose
// date differs from it. A single-element or all-same-date sequence defaults
// to ascending.
func InferDirection(txs []Transaction) Direction {
	if len(txs) == 0 {
		return Ascending
	}
	first := txs[0].Date
	for _, tx := range txs[1:] {
		if tx.Date == first {
			continue
		}
		if tx.Date.Before(first) {
			return Descending
		}
		return Ascending
	}
	return Ascending
}

// ValidateSequence infers the direction of txs and verifies non-strict date
// monotonicity consistent with it. On the first violation it returns a
// SequenceError identifying the offending position (the 1-based count of
// already-accepted elements). The input is left untouched; the caller uses
// the returned direction to normalize to ascending order.
func ValidateSequence(txs []Transaction) (Direction, error) {
	dir := InferDirection(txs)
	for i := 1; i < len(txs); i++ {
		prev, cur := txs[i-1].Date, txs[i].Date
		ok := true
		switch dir {
		case Ascending:
			ok = !cur.Before(prev)
		case Descending:
			ok = !cur.After(prev)
		}
		if !ok {
			return dir, &SequenceError{Position: i, Direction: dir}
		}
	}
	return dir, nil
}

// CheckShareIntegrity folds transactions in chronological order, maintaining
// a running signed share count per symbol, and fails as soon as any symbol's
// running total goes negative. seed carries per-symbol totals of an already
// persisted ledger, so a new batch is checked against existing holdings; it
// may be nil.
func CheckShareIntegrity(txs []Transaction, seed map[string]int64) error {
	running := make(map[string]int64, len(seed))
	for sym, shares := range seed {
		running[sym] = shares
	}
	for _, tx := range txs {
		running[tx.Symbol] += tx.Shares
		if running[tx.Symbol] < 0 {
			return &NegativeShareError{Symbol: tx.Symbol, Date: tx.Date, Shares: running[tx.Symbol]}
		}
	}
	return nil
}

// Journal is a validated transaction sequence, always in ascending
// chronological order with no symbol ever holding a negative running share
// count. It can only be obtained through NewJournal or NewJournalSeeded,
// so every consumer of a Journal can rely on those invariants instead of
// re-checking them.
type Journal struct {
	txs []Transaction
}

// NewJournal validates txs (ordering direction, date monotonicity, share
// integrity) and returns them normalized to ascending order.
func NewJournal(txs ...Transaction) (*Journal, error) {
	return NewJournalSeeded(nil, txs...)
}

// NewJournalSeeded is NewJournal with the share-integrity fold seeded by an
// existing ledger's per-symbol totals, catching sells of shares the batch
// itself never bought.
func NewJournalSeeded(seed map[string]int64, txs ...Transaction) (*Journal, error) {
	dir, err := ValidateSequence(txs)
	if err != nil {
		return nil, err
	}
	sorted := slices.Clone(txs)
	if dir == Descending {
		slices.Reverse(sorted)
	}
	if err := CheckShareIntegrity(sorted, seed); err != nil {
		return nil, err
	}
	return &Journal{txs: sorted}, nil
}

// Len returns the number of transactions in the journal.
func (j *Journal) Len() int { return len(j.txs) }

// OldestDate returns the date of the earliest transaction, or the zero Date
// for an empty journal.
func (j *Journal) OldestDate() Date {
	if len(j.txs) == 0 {
		return Date{}
	}
	return j.txs[0].Date
}

// NewestDate returns the date of the latest transaction, or the zero Date
// for an empty journal.
func (j *Journal) NewestDate() Date {
	if len(j.txs) == 0 {
		return Date{}
	}
	return j.txs[len(j.txs)-1].Date
}

// Transactions returns an iterator over the journal in chronological order.
// When filters are given, a transaction is yielded only if every filter
// accepts it.
func (j *Journal) Transactions(filters ...func(Transaction) bool) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
	next:
		for _, tx := range j.txs {
			for _, filter := range filters {
				if !filter(tx) {
					continue next
				}
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// All returns a copy of the journal's transactions in chronological order.
func (j *Journal) All() []Transaction { return slices.Clone(j.txs) }

// Symbols returns the distinct symbols of the journal in order of first
// appearance.
func (j *Journal) Symbols() []string {
	var symbols []string
	seen := make(map[string]struct{})
	for _, tx := range j.txs {
		if _, ok := seen[tx.Symbol]; !ok {
			seen[tx.Symbol] = struct{}{}
			symbols = append(symbols, tx.Symbol)
		}
	}
	return symbols
}

// BySymbol returns a predicate that filters transactions by symbol.
func BySymbol(symbol string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Symbol == symbol }
}

// Until returns a predicate accepting transactions on or before the given date.
func Until(on Date) func(Transaction) bool {
	return func(tx Transaction) bool { return !tx.Date.After(on) }
}

// Since returns a predicate accepting transactions on or after the given date.
func Since(on Date) func(Transaction) bool {
	return func(tx Transaction) bool { return !tx.Date.Before(on) }
}

// BuysOnly returns a predicate accepting only buy transactions.
func BuysOnly() func(Transaction) bool {
	return func(tx Transaction) bool { return tx.IsBuy() }
}
