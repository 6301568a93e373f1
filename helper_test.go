package analysiolo

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// memResolver is an in-memory PriceResolver for tests: a latest quote and a
// day-by-day close history per symbol. It counts lookups so tests can assert
// which path a valuation took.
type memResolver struct {
	current map[string]decimal.Decimal
	history map[string]map[Date]decimal.Decimal

	currentCalls int
	historyCalls int
}

func newMemResolver() *memResolver {
	return &memResolver{
		current: make(map[string]decimal.Decimal),
		history: make(map[string]map[Date]decimal.Decimal),
	}
}

func (r *memResolver) quote(symbol string, price float64) *memResolver {
	r.current[symbol] = decimal.NewFromFloat(price)
	return r
}

func (r *memResolver) close(symbol string, day string, price float64) *memResolver {
	if r.history[symbol] == nil {
		r.history[symbol] = make(map[Date]decimal.Decimal)
	}
	r.history[symbol][MustParse(day)] = decimal.NewFromFloat(price)
	return r
}

func (r *memResolver) CurrentPrice(symbol string) (decimal.Decimal, error) {
	r.currentCalls++
	price, ok := r.current[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown symbol %q", symbol)
	}
	return price, nil
}

func (r *memResolver) PriceOn(symbol string, on Date) (decimal.Decimal, error) {
	if on.IsToday() {
		return r.CurrentPrice(symbol)
	}
	r.historyCalls++
	series, ok := r.history[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown symbol %q", symbol)
	}
	price, ok := series[on]
	if !ok {
		return decimal.Zero, fmt.Errorf("no close for %s on %s", symbol, on)
	}
	return price, nil
}

// preloadResolver adds HistoryPreloader on top of memResolver, recording the
// earliest requested window start per symbol.
type preloadResolver struct {
	*memResolver
	windows map[string]Date
}

func newPreloadResolver() *preloadResolver {
	return &preloadResolver{memResolver: newMemResolver(), windows: make(map[string]Date)}
}

func (r *preloadResolver) PreloadHistory(symbol string, from Date) error {
	if _, ok := r.history[symbol]; !ok {
		if _, ok := r.current[symbol]; !ok {
			return fmt.Errorf("unknown symbol %q", symbol)
		}
	}
	if start, ok := r.windows[symbol]; !ok || from.Before(start) {
		r.windows[symbol] = from
	}
	return nil
}

// dec is a test helper to build a decimal from its exact string form.
func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
