package analysiolo

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPortfolio_UpdateWith(t *testing.T) {
	resolver := newMemResolver().quote("VTI", 198.27).quote("BND", 70.11)
	pf := NewPortfolio(resolver)

	pf1, err := pf.UpdateWith(NewBuy(MustParse("2022-08-10"), "VTI", 10, 211.27))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pf2, err := pf1.UpdateWith(NewSell(MustParse("2022-09-10"), "VTI", 5, 210))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Updates are functional: the earlier value still sees 10 shares.
	if pos, _ := pf1.Position("VTI"); pos.Shares != 10 {
		t.Errorf("pre-transaction portfolio mutated: %d shares, want 10", pos.Shares)
	}
	if pos, _ := pf2.Position("VTI"); pos.Shares != 5 {
		t.Errorf("post-transaction shares = %d, want 5", pos.Shares)
	}

	// Unknown symbols are fatal for the whole update.
	_, err = pf2.UpdateWith(NewBuy(MustParse("2022-09-11"), "NOPE", 1, 10))
	var priceErr *PriceUnavailableError
	if !errors.As(err, &priceErr) {
		t.Fatalf("want PriceUnavailableError for unknown symbol, got %v", err)
	}
}

func TestPortfolio_ValueOnToday(t *testing.T) {
	// Valuing on today must use only current quotes, no historical lookups.
	resolver := newMemResolver().quote("VTI", 198.27).quote("BND", 70.11)
	pf, err := NewPortfolio(resolver).UpdateWithAll([]Transaction{
		NewBuy(Today().Add(-30), "VTI", 10, 211.27),
		NewBuy(Today().Add(-20), "BND", 20, 72.50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resolver.historyCalls = 0
	got, err := pf.ValueOn(Today())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := dec("198.27").Mul(dec("10")).Add(dec("70.11").Mul(dec("20")))
	if !got.Equal(want) {
		t.Errorf("ValueOn(today) = %s, want %s", got, want)
	}
	if resolver.historyCalls != 0 {
		t.Errorf("ValueOn(today) performed %d historical lookups, want 0", resolver.historyCalls)
	}
}

func TestPortfolio_ValueOnHistorical(t *testing.T) {
	resolver := newMemResolver().
		quote("VTI", 198.27).
		close("VTI", "2022-09-10", 204.449997)
	pf, err := NewPortfolio(resolver).UpdateWith(NewBuy(MustParse("2022-08-10"), "VTI", 10, 211.27))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := pf.ValueOn(MustParse("2022-09-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := dec("2044.49997"); !got.Equal(want) {
		t.Errorf("ValueOn = %s, want %s", got, want)
	}

	// A date outside the recorded history is fatal, never silently defaulted.
	_, err = pf.ValueOn(MustParse("2022-07-01"))
	var priceErr *PriceUnavailableError
	if !errors.As(err, &priceErr) {
		t.Fatalf("want PriceUnavailableError, got %v", err)
	}
}

func TestPortfolio_ZeroSharePositions(t *testing.T) {
	// A position sold down to zero stays in the map, values to zero, and
	// performs no price lookup (its history may not even cover the date).
	resolver := newMemResolver().
		quote("VTI", 198.27).
		quote("GONE", 1).
		close("VTI", "2022-10-01", 190)
	pf, err := NewPortfolio(resolver).UpdateWithAll([]Transaction{
		NewBuy(MustParse("2022-08-10"), "VTI", 10, 211.27),
		NewBuy(MustParse("2022-08-10"), "GONE", 3, 50),
		NewSell(MustParse("2022-09-10"), "GONE", 3, 55),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := pf.Symbols(); len(got) != 2 {
		t.Fatalf("Symbols() = %v, want the zero-share position kept", got)
	}
	got, err := pf.ValueOn(MustParse("2022-10-01"))
	if err != nil {
		t.Fatalf("zero-share position triggered a lookup failure: %v", err)
	}
	if want := dec("1900"); !got.Equal(want) {
		t.Errorf("ValueOn = %s, want %s", got, want)
	}
}

func TestPortfolioOf_PreloadsHistory(t *testing.T) {
	resolver := newPreloadResolver()
	resolver.quote("VTI", 198.27).quote("BND", 70.11)

	j, err := NewJournal(
		NewBuy(MustParse("2022-08-10"), "VTI", 10, 211.27),
		NewBuy(MustParse("2022-09-15"), "BND", 20, 72.50),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := PortfolioOf(j, resolver, MustParse("2022-09-01")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// VTI's first transaction predates historyFrom, so its window reaches
	// further back; BND's window starts at the requested date.
	if got := resolver.windows["VTI"]; got != MustParse("2022-08-10") {
		t.Errorf("VTI window start = %s, want 2022-08-10", got)
	}
	if got := resolver.windows["BND"]; got != MustParse("2022-09-01") {
		t.Errorf("BND window start = %s, want 2022-09-01", got)
	}
}

func TestPortfolio_RateOfReturn(t *testing.T) {
	one := decimal.NewFromInt(1)

	// Flat portfolio short-circuits to 1 without any price lookup.
	resolver := newMemResolver().quote("VTI", 198.27)
	pf, err := NewPortfolio(resolver).UpdateWithAll([]Transaction{
		NewBuy(MustParse("2022-08-10"), "VTI", 10, 211.27),
		NewSell(MustParse("2022-09-10"), "VTI", 10, 210),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := pf.RateOfReturn(MustParse("2022-08-11"), MustParse("2022-09-09"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(one) {
		t.Errorf("flat RateOfReturn = %s, want 1", got)
	}

	resolver.close("VTI", "2022-08-11", 200).close("VTI", "2022-09-09", 210)
	held, err := NewPortfolio(resolver).UpdateWith(NewBuy(MustParse("2022-08-10"), "VTI", 10, 211.27))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err = held.RateOfReturn(MustParse("2022-08-11"), MustParse("2022-09-09"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := dec("1.05"); !got.Equal(want) {
		t.Errorf("RateOfReturn = %s, want %s", got, want)
	}
}
