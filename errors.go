package analysiolo

import "fmt"

// ParseError reports a malformed transaction record or a buy/sell sign
// mismatch. It is local to one record but aborts the whole ingestion batch.
type ParseError struct {
	Line   int    // 1-based line number of the offending record
	Record string // the raw record text
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse record %q: %s", e.Line, e.Record, e.Reason)
}

// SequenceError reports a transaction whose date breaks the monotonic order
// of the batch. Position is the 1-based count of already-accepted elements.
type SequenceError struct {
	Position  int
	Direction Direction
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("transaction dates are not %s after position %d", e.Direction, e.Position)
}

// NegativeShareError reports the first transaction that drives a symbol's
// running share count below zero.
type NegativeShareError struct {
	Symbol string
	Date   Date
	Shares int64 // the (negative) running total reached
}

func (e *NegativeShareError) Error() string {
	return fmt.Sprintf("selling %s on %s drives the position to %d shares", e.Symbol, e.Date, e.Shares)
}

// PriceUnavailableError reports that a resolver cannot produce a price for a
// required (symbol, date) pair. It is fatal to the computation that requested
// it: valuation, average cost, and TWRR never return partial results.
type PriceUnavailableError struct {
	Symbol string
	Date   Date // zero when the current price was requested
	Cause  error
}

func (e *PriceUnavailableError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("no current price for %s: %v", e.Symbol, e.Cause)
	}
	return fmt.Sprintf("no price for %s on %s: %v", e.Symbol, e.Date, e.Cause)
}

func (e *PriceUnavailableError) Unwrap() error { return e.Cause }

// ZeroValueError reports a sub-period whose initial portfolio value is zero,
// leaving its growth factor undefined. It aborts the whole TWRR computation.
type ZeroValueError struct {
	Date Date
}

func (e *ZeroValueError) Error() string {
	return fmt.Sprintf("portfolio value on %s is zero, growth factor is undefined", e.Date)
}
