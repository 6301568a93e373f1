package analysiolo

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// vtiResolver returns the VTI closing prices the reference scenario uses.
func vtiResolver() *memResolver {
	return newMemResolver().
		quote("VTI", 198.270004).
		close("VTI", "2022-08-10", 211.270004).
		close("VTI", "2022-09-10", 204.449997).
		close("VTI", "2022-10-10", 180.949997).
		close("VTI", "2022-11-10", 198.139999).
		close("VTI", "2022-11-28", 198.270004)
}

func vtiJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := NewJournal(
		NewBuy(MustParse("2022-08-10"), "VTI", 10, 211.270004),
		NewSell(MustParse("2022-09-10"), "VTI", 5, 210),
		NewBuy(MustParse("2022-10-10"), "VTI", 2, 181),
		NewSell(MustParse("2022-11-10"), "VTI", 6, 180),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return j
}

func TestGrowthFactors_ReferenceScenario(t *testing.T) {
	j := vtiJournal(t)
	period := NewRange(MustParse("2022-08-10"), MustParse("2022-11-28"))

	got, err := GrowthFactors(j, vtiResolver(), period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d growth factors, want 4", len(got))
	}

	// Reference values derived from the closing prices, spelled out as plain
	// arithmetic: each sub-period is valued with the pre-transaction
	// portfolio, the starting value corrected by the buy premium and the
	// ending value by the sell premium of its boundary transactions.
	shares := func(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

	// 2022-08-10 -> 2022-09-10: 10 shares; buy at market (no premium), sell
	// of 5 at 210 against a 204.449997 close.
	v0 := dec("211.270004").Mul(shares(10))
	v1 := dec("204.449997").Mul(shares(10)).
		Add(dec("210").Sub(dec("204.449997")).Mul(shares(5)))
	// 2022-09-10 -> 2022-10-10: 5 shares, no boundary premiums apply.
	v2 := dec("204.449997").Mul(shares(5))
	v3 := dec("180.949997").Mul(shares(5))
	// 2022-10-10 -> 2022-11-10: 7 shares; buy of 2 at 181 against the
	// 180.949997 close, sell of 6 at 180 against the 198.139999 close.
	v4 := dec("180.949997").Mul(shares(7)).
		Add(dec("181").Sub(dec("180.949997")).Mul(shares(2)))
	v5 := dec("198.139999").Mul(shares(7)).
		Add(dec("180").Sub(dec("198.139999")).Mul(shares(6)))
	// 2022-11-10 -> 2022-11-28: the remaining single share.
	v6 := dec("198.139999")
	v7 := dec("198.270004")

	want := []decimal.Decimal{
		v1.Div(v0).Round(PriceScale),
		v3.Div(v2).Round(PriceScale),
		v5.Div(v4).Round(PriceScale),
		v7.Div(v6).Round(PriceScale),
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("factor %d = %s, want %s", i, got[i], want[i])
		}
	}

	// The composed TWRR is the product of the factors minus one.
	twrr, ok := TimeWeightedReturn(j, vtiResolver(), period).Get()
	if !ok {
		t.Fatal("want a successful outcome")
	}
	product := decimal.NewFromInt(1)
	for _, f := range want {
		product = product.Mul(f)
	}
	if wantTWRR := product.Sub(decimal.NewFromInt(1)); !twrr.Equal(wantTWRR) {
		t.Errorf("TWRR = %s, want %s", twrr, wantTWRR)
	}
}

func TestTimeWeightedReturn_CompositionLaw(t *testing.T) {
	// With zero intervening transactions only the trailing factor applies,
	// so the TWRR must equal the single-period return.
	resolver := newMemResolver().
		quote("VTI", 198.270004).
		close("VTI", "2022-09-01", 200).
		close("VTI", "2022-11-01", 210)
	j, err := NewJournal(NewBuy(MustParse("2022-08-10"), "VTI", 10, 211.270004))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	period := NewRange(MustParse("2022-09-01"), MustParse("2022-11-01"))

	factors, err := GrowthFactors(j, resolver, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(factors) != 1 {
		t.Fatalf("got %d factors, want only the trailing one", len(factors))
	}

	twrr, ok := TimeWeightedReturn(j, resolver, period).Get()
	if !ok {
		t.Fatal("want a successful outcome")
	}
	if want := dec("0.05"); !twrr.Equal(want) {
		t.Errorf("TWRR = %s, want %s", twrr, want)
	}
}

func TestTimeWeightedReturn_Empty(t *testing.T) {
	// Nothing ever held over the window: nothing to compute, not a failure.
	j, err := NewJournal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outcome := TimeWeightedReturn(j, newMemResolver(), NewRange(MustParse("2022-09-01"), MustParse("2022-11-01")))
	if !outcome.IsEmpty() {
		t.Errorf("want Empty, got ok=%v err=%v", outcome.IsOK(), outcome.Err())
	}
}

func TestTimeWeightedReturn_MissingPriceIsFatal(t *testing.T) {
	resolver := newMemResolver().
		quote("VTI", 198.270004).
		close("VTI", "2022-08-10", 211.270004)
	// The close for 2022-09-10 is deliberately absent.
	j := vtiJournal(t)
	period := NewRange(MustParse("2022-08-10"), MustParse("2022-11-28"))

	outcome := TimeWeightedReturn(j, resolver, period)
	if !outcome.IsFailure() {
		t.Fatal("want a failure when a market price is missing")
	}
	var priceErr *PriceUnavailableError
	if !errors.As(outcome.Err(), &priceErr) {
		t.Errorf("want PriceUnavailableError, got %v", outcome.Err())
	}
}

func TestGrowthFactor_ZeroInitialValue(t *testing.T) {
	resolver := newMemResolver().
		quote("VTI", 198.270004).
		close("VTI", "2022-08-10", 0). // worthless on the boundary
		close("VTI", "2022-09-10", 204.449997)
	j, err := NewJournal(NewBuy(MustParse("2022-08-01"), "VTI", 10, 200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resolver.close("VTI", "2022-08-01", 200)

	outcome := TimeWeightedReturn(j, resolver, NewRange(MustParse("2022-08-10"), MustParse("2022-09-10")))
	if !outcome.IsFailure() {
		t.Fatal("want a failure for a zero sub-period starting value")
	}
	var zeroErr *ZeroValueError
	if !errors.As(outcome.Err(), &zeroErr) {
		t.Errorf("want ZeroValueError, got %v", outcome.Err())
	}
}
