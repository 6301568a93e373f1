package analysiolo

import (
	"github.com/shopspring/decimal"
)

// Position is a symbol's current share count bound to a price-resolution
// capability. The capability is bound once at creation; updates produce a
// new Position value, never mutate one in place.
type Position struct {
	Symbol string
	Shares int64
	prices PriceResolver
}

// NewPosition binds a price-capable Position for symbol with history scoped
// from historyFrom. When the resolver supports batch preloading, the history
// window is extended immediately; otherwise the symbol is resolved once to
// surface unknown-symbol failures at creation rather than at first valuation.
func NewPosition(symbol string, shares int64, resolver PriceResolver, historyFrom Date) (Position, error) {
	if pre, ok := resolver.(HistoryPreloader); ok {
		if err := pre.PreloadHistory(symbol, historyFrom); err != nil {
			return Position{}, &PriceUnavailableError{Symbol: symbol, Date: historyFrom, Cause: err}
		}
	} else if _, err := resolver.CurrentPrice(symbol); err != nil {
		return Position{}, &PriceUnavailableError{Symbol: symbol, Cause: err}
	}
	return Position{Symbol: symbol, Shares: shares, prices: resolver}, nil
}

// WithShares returns a copy of the position with delta added to its share
// count. Share-count updates are unconditionally additive; rejecting
// sell-before-buy sequences is the journal's job, upstream.
func (p Position) WithShares(delta int64) Position {
	p.Shares += delta
	return p
}

// CurrentValue returns the position's value at the latest quote. A zero-share
// position is worth zero and performs no price lookup.
func (p Position) CurrentValue() (decimal.Decimal, error) {
	if p.Shares == 0 {
		return decimal.Zero, nil
	}
	price, err := p.prices.CurrentPrice(p.Symbol)
	if err != nil {
		return decimal.Zero, &PriceUnavailableError{Symbol: p.Symbol, Cause: err}
	}
	return price.Mul(decimal.NewFromInt(p.Shares)), nil
}

// ValueOn returns the position's value at the closing price of the given
// date, or at the latest quote when the date is today. A zero-share position
// is worth zero and performs no price lookup.
func (p Position) ValueOn(on Date) (decimal.Decimal, error) {
	if p.Shares == 0 {
		return decimal.Zero, nil
	}
	if on.IsToday() {
		return p.CurrentValue()
	}
	price, err := p.prices.PriceOn(p.Symbol, on)
	if err != nil {
		return decimal.Zero, &PriceUnavailableError{Symbol: p.Symbol, Date: on, Cause: err}
	}
	return price.Mul(decimal.NewFromInt(p.Shares)), nil
}
