package analysiolo

import (
	"github.com/shopspring/decimal"
)

// CostBasis is the weighted-average cost of all shares bought for one
// symbol, together with the lowest and highest price paid.
type CostBasis struct {
	Symbol string
	Shares int64 // total shares bought
	Avg    decimal.Decimal
	Min    decimal.Decimal
	Max    decimal.Decimal
}

// AverageCost folds the buy transactions of a single symbol into a weighted
// average cost with running min and max price. The fold is seeded with the
// first buy's price as both min and max, so no sentinel value is needed.
// The average is rounded half-up to the fixed scale.
//
// A list containing no buys yields Empty: there is nothing to compute and in
// particular no division by a zero share count. Grouping by symbol is the
// caller's job (see GroupBySymbol); transactions for several symbols in one
// call produce a meaningless blend.
func AverageCost(txs []Transaction) Outcome[CostBasis] {
	var buys []Transaction
	for _, tx := range txs {
		if tx.IsBuy() {
			buys = append(buys, tx)
		}
	}
	if len(buys) == 0 {
		return Empty[CostBasis]()
	}

	cb := CostBasis{
		Symbol: buys[0].Symbol,
		Min:    buys[0].Price,
		Max:    buys[0].Price,
	}
	totalCost := decimal.Zero
	for _, tx := range buys {
		totalCost = totalCost.Add(tx.Cost())
		cb.Shares += tx.Shares
		if tx.Price.LessThan(cb.Min) {
			cb.Min = tx.Price
		}
		if tx.Price.GreaterThan(cb.Max) {
			cb.Max = tx.Price
		}
	}
	cb.Avg = round(totalCost.Div(decimal.NewFromInt(cb.Shares)))
	return Ok(cb)
}

// GroupBySymbol splits a transaction list per symbol, preserving the
// relative order of each symbol's transactions.
func GroupBySymbol(txs []Transaction) map[string][]Transaction {
	groups := make(map[string][]Transaction)
	for _, tx := range txs {
		groups[tx.Symbol] = append(groups[tx.Symbol], tx)
	}
	return groups
}
