// Package renderer turns portfolio reports into markdown.
package renderer

import (
	"bytes"
	"fmt"

	gomoney "github.com/Rhymond/go-money"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"github.com/ssppooff/analysiolo"
)

// DisplayCurrency is the currency all amounts are rendered in. The ledger
// itself is currency-agnostic.
const DisplayCurrency = "USD"

// Amount formats a decimal amount as money for display.
func Amount(d decimal.Decimal) string {
	cur := *gomoney.New(0, DisplayCurrency).Currency()
	return cur.Formatter().Format(d.Shift(int32(cur.Fraction)).Round(0).IntPart())
}

// Percent formats a rate (0.05 for five percent) for display.
func Percent(rate decimal.Decimal) string {
	s := rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
	if rate.IsPositive() {
		return "+" + s
	}
	return s
}

// Transactions renders a transaction listing to a markdown table.
func Transactions(txs []analysiolo.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Type", "Ticker", "Shares", "Price"},
	}
	for _, tx := range txs {
		table.Rows = append(table.Rows, []string{
			tx.Date.String(),
			string(tx.Type()),
			tx.Symbol,
			fmt.Sprintf("%d", tx.Shares),
			Amount(tx.Price),
		})
	}
	doc.Table(table)
	return doc.String()
}

// ValuationLine is one position of a valuation report.
type ValuationLine struct {
	Symbol string
	Shares int64
	Value  decimal.Decimal
}

// Valuation renders a point-in-time portfolio valuation.
func Valuation(on analysiolo.Date, lines []ValuationLine, total decimal.Decimal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Value on %s", on))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Ticker", "Shares", "Value"},
	}
	for _, l := range lines {
		table.Rows = append(table.Rows, []string{l.Symbol, fmt.Sprintf("%d", l.Shares), Amount(l.Value)})
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), "", md.Bold(Amount(total))})
	doc.Table(table)
	return doc.String()
}

// CostBases renders per-symbol purchase statistics.
func CostBases(bases []analysiolo.CostBasis) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Average Cost")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Ticker", "Bought", "Avg", "Min", "Max"},
	}
	for _, b := range bases {
		table.Rows = append(table.Rows, []string{
			b.Symbol,
			fmt.Sprintf("%d", b.Shares),
			Amount(b.Avg),
			Amount(b.Min),
			Amount(b.Max),
		})
	}
	doc.Table(table)
	return doc.String()
}

// Quote is one symbol's resolved price.
type Quote struct {
	Symbol string
	Price  decimal.Decimal
}

// Quotes renders resolved prices for a set of symbols.
func Quotes(on analysiolo.Date, quotes []Quote) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Prices on %s", on))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Ticker", "Price"},
	}
	for _, q := range quotes {
		table.Rows = append(table.Rows, []string{q.Symbol, Amount(q.Price)})
	}
	doc.Table(table)
	return doc.String()
}

// Performance renders a time-weighted return report over a period.
func Performance(period analysiolo.Range, factors []decimal.Decimal, twrr decimal.Decimal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Performance %s to %s", period.From, period.To))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header: []string{
			md.Bold("Time-Weighted Return"),
			md.Bold(Percent(twrr)),
		},
	}
	for i, f := range factors {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("Sub-period %d growth", i+1),
			f.StringFixed(4),
		})
	}
	doc.Table(table)
	return doc.String()
}
