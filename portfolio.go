package analysiolo

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Portfolio is a map of symbol to Position. It is a persistent value: every
// update produces a new Portfolio and leaves the receiver untouched. The
// TWRR engine depends on this to reference the pre-transaction portfolio
// when valuing a sub-period boundary.
type Portfolio struct {
	positions map[string]Position
	resolver  PriceResolver
}

// NewPortfolio creates an empty portfolio whose positions will resolve
// prices through the given resolver.
func NewPortfolio(resolver PriceResolver) Portfolio {
	return Portfolio{positions: map[string]Position{}, resolver: resolver}
}

// PortfolioOf folds a whole journal into a portfolio. Price-history windows
// of all positions are pre-extended back to historyFrom (or to the symbol's
// first transaction date, whichever is earlier) in one batch per symbol.
func PortfolioOf(j *Journal, resolver PriceResolver, historyFrom Date) (Portfolio, error) {
	pf := NewPortfolio(resolver)
	if pre, ok := resolver.(HistoryPreloader); ok {
		for _, symbol := range j.Symbols() {
			from := historyFrom
			first := firstDateOf(j, symbol)
			if historyFrom.IsZero() || first.Before(historyFrom) {
				from = first
			}
			if err := pre.PreloadHistory(symbol, from); err != nil {
				return Portfolio{}, &PriceUnavailableError{Symbol: symbol, Date: from, Cause: err}
			}
		}
	}
	return pf.UpdateWithAll(j.All())
}

func firstDateOf(j *Journal, symbol string) Date {
	for tx := range j.Transactions(BySymbol(symbol)) {
		return tx.Date
	}
	return Date{}
}

// UpdateWith returns a new portfolio with the transaction applied. An
// existing position has the signed share count added; a new symbol binds a
// fresh price-capable position with history scoped from the transaction
// date. A price-resolution failure for a new symbol fails the whole update.
func (pf Portfolio) UpdateWith(tx Transaction) (Portfolio, error) {
	next := Portfolio{positions: maps.Clone(pf.positions), resolver: pf.resolver}
	if pos, ok := next.positions[tx.Symbol]; ok {
		next.positions[tx.Symbol] = pos.WithShares(tx.Shares)
		return next, nil
	}
	pos, err := NewPosition(tx.Symbol, tx.Shares, pf.resolver, tx.Date)
	if err != nil {
		return Portfolio{}, err
	}
	next.positions[tx.Symbol] = pos
	return next, nil
}

// UpdateWithAll folds a transaction list into the portfolio, oldest first.
func (pf Portfolio) UpdateWithAll(txs []Transaction) (Portfolio, error) {
	next := pf
	var err error
	for _, tx := range txs {
		if next, err = next.UpdateWith(tx); err != nil {
			return Portfolio{}, err
		}
	}
	return next, nil
}

// Position returns the position held for symbol.
func (pf Portfolio) Position(symbol string) (Position, bool) {
	pos, ok := pf.positions[symbol]
	return pos, ok
}

// Symbols returns the portfolio's symbols in lexical order. Symbols whose
// position has dropped to zero shares remain listed; consumers value them
// at zero rather than dropping them.
func (pf Portfolio) Symbols() []string {
	symbols := slices.Collect(maps.Keys(pf.positions))
	slices.Sort(symbols)
	return symbols
}

// IsFlat returns true when every position holds zero shares.
func (pf Portfolio) IsFlat() bool {
	for _, pos := range pf.positions {
		if pos.Shares != 0 {
			return false
		}
	}
	return true
}

// ValueOn computes the portfolio's total value on the given date. When the
// date is today, each position is valued at its latest quote and no
// historical lookup is performed. Zero-share positions contribute zero,
// uniformly. Any price-resolution failure fails the whole valuation.
func (pf Portfolio) ValueOn(on Date) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, symbol := range pf.Symbols() {
		value, err := pf.positions[symbol].ValueOn(on)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(value)
	}
	return total, nil
}

// CurrentValue computes the portfolio's total value at the latest quotes.
func (pf Portfolio) CurrentValue() (decimal.Decimal, error) {
	return pf.ValueOn(Today())
}

// RateOfReturn computes ValueOn(to) / ValueOn(from), rounded half-up to the
// fixed scale. It short-circuits to 1 (no-op growth) when every position is
// empty over the period.
func (pf Portfolio) RateOfReturn(from, to Date) (decimal.Decimal, error) {
	one := decimal.NewFromInt(1)
	if pf.IsFlat() {
		return one, nil
	}
	start, err := pf.ValueOn(from)
	if err != nil {
		return decimal.Zero, err
	}
	if start.IsZero() {
		return decimal.Zero, &ZeroValueError{Date: from}
	}
	end, err := pf.ValueOn(to)
	if err != nil {
		return decimal.Zero, err
	}
	return round(end.Div(start)), nil
}
