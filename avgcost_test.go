package analysiolo

import (
	"testing"
)

func TestAverageCost(t *testing.T) {
	testCases := []struct {
		name string
		txs  []Transaction
		want CostBasis
	}{
		{
			name: "single buy",
			txs: []Transaction{
				NewBuy(MustParse("2022-08-10"), "VTI", 10, 211.270004),
			},
			want: CostBasis{Symbol: "VTI", Shares: 10, Avg: dec("211.270004"), Min: dec("211.270004"), Max: dec("211.270004")},
		},
		{
			name: "several buys",
			txs: []Transaction{
				NewBuy(MustParse("2022-08-10"), "VTI", 10, 211.270004),
				NewBuy(MustParse("2022-10-10"), "VTI", 2, 181),
				NewBuy(MustParse("2022-11-10"), "VTI", 8, 198.50),
			},
			// (2112.70004 + 362 + 1588) / 20 = 4062.70004 / 20
			want: CostBasis{Symbol: "VTI", Shares: 20, Avg: dec("203.135002"), Min: dec("181"), Max: dec("211.270004")},
		},
		{
			name: "sells are ignored",
			txs: []Transaction{
				NewBuy(MustParse("2022-08-10"), "VTI", 10, 200),
				NewSell(MustParse("2022-09-10"), "VTI", 5, 500),
				NewBuy(MustParse("2022-10-10"), "VTI", 10, 100),
			},
			want: CostBasis{Symbol: "VTI", Shares: 20, Avg: dec("150"), Min: dec("100"), Max: dec("200")},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AverageCost(tc.txs).Get()
			if !ok {
				t.Fatal("want a successful outcome")
			}
			if got.Symbol != tc.want.Symbol || got.Shares != tc.want.Shares {
				t.Errorf("got %s/%d shares, want %s/%d", got.Symbol, got.Shares, tc.want.Symbol, tc.want.Shares)
			}
			if !got.Avg.Equal(tc.want.Avg) {
				t.Errorf("Avg = %s, want %s", got.Avg, tc.want.Avg)
			}
			if !got.Min.Equal(tc.want.Min) {
				t.Errorf("Min = %s, want %s", got.Min, tc.want.Min)
			}
			if !got.Max.Equal(tc.want.Max) {
				t.Errorf("Max = %s, want %s", got.Max, tc.want.Max)
			}

			// Invariant: min <= avg <= max.
			if got.Avg.LessThan(got.Min) || got.Avg.GreaterThan(got.Max) {
				t.Errorf("Avg %s outside [%s, %s]", got.Avg, got.Min, got.Max)
			}
		})
	}
}

func TestAverageCost_Empty(t *testing.T) {
	// No qualifying buys is "nothing to compute", not an error.
	sellsOnly := []Transaction{NewSell(MustParse("2022-09-10"), "VTI", 5, 210)}

	for name, txs := range map[string][]Transaction{"no transactions": nil, "sells only": sellsOnly} {
		t.Run(name, func(t *testing.T) {
			outcome := AverageCost(txs)
			if !outcome.IsEmpty() {
				t.Errorf("want Empty, got ok=%v err=%v", outcome.IsOK(), outcome.Err())
			}
		})
	}
}

func TestGroupBySymbol(t *testing.T) {
	groups := GroupBySymbol([]Transaction{
		NewBuy(MustParse("2022-08-10"), "VTI", 10, 211.27),
		NewBuy(MustParse("2022-08-15"), "BND", 20, 72.50),
		NewSell(MustParse("2022-09-10"), "VTI", 5, 210),
	})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups["VTI"]) != 2 || len(groups["BND"]) != 1 {
		t.Errorf("group sizes = VTI:%d BND:%d, want 2 and 1", len(groups["VTI"]), len(groups["BND"]))
	}
	if !groups["VTI"][0].IsBuy() || groups["VTI"][1].IsBuy() {
		t.Error("relative order inside a group not preserved")
	}
}
