package analysiolo

import "github.com/shopspring/decimal"

// PriceResolver resolves security prices. It is the single capability the
// core needs from market data; implementations live outside this package
// (see package yahoo). Both operations are fallible and failures are
// terminal for the computation that requested them: there is no default
// price.
type PriceResolver interface {
	// CurrentPrice returns the latest quote for symbol.
	CurrentPrice(symbol string) (decimal.Decimal, error)
	// PriceOn returns the closing price of symbol on the given date. When the
	// date precedes the resolver's history window it must transparently
	// extend the window backward and retry, or fail. PriceOn for today is
	// equivalent to CurrentPrice.
	PriceOn(symbol string, on Date) (decimal.Decimal, error)
}

// HistoryPreloader is implemented by resolvers that can extend a symbol's
// price-history window back to a given date in one batch, amortizing the
// cost of per-day historical fetches.
type HistoryPreloader interface {
	PreloadHistory(symbol string, from Date) error
}
