package analysiolo

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TxType is a typed string identifying the kind of a transaction record.
type TxType string

const (
	TxBuy  TxType = "BUY"
	TxSell TxType = "SELL"
)

// Transaction is an immutable record of a single buy or sell. Positive Shares
// means a buy, negative a sell. Transactions are created by ingestion or a
// ledger read and never mutated afterwards.
type Transaction struct {
	Date   Date
	Symbol string
	Shares int64
	Price  decimal.Decimal // price per share, >= 0
}

// NewTransaction creates a transaction; the sign of shares decides buy vs sell.
func NewTransaction[T float32 | float64 | int | int32 | int64 | decimal.Decimal](on Date, symbol string, shares int64, price T) Transaction {
	return Transaction{Date: on, Symbol: symbol, Shares: shares, Price: newDecimal(price)}
}

// NewBuy creates a buy of the given (positive) number of shares.
func NewBuy[T float32 | float64 | int | int32 | int64 | decimal.Decimal](on Date, symbol string, shares int64, price T) Transaction {
	if shares < 0 {
		shares = -shares
	}
	return NewTransaction(on, symbol, shares, price)
}

// NewSell creates a sell; shares are stored negative.
func NewSell[T float32 | float64 | int | int32 | int64 | decimal.Decimal](on Date, symbol string, shares int64, price T) Transaction {
	if shares > 0 {
		shares = -shares
	}
	return NewTransaction(on, symbol, shares, price)
}

// Type returns TxBuy for positive shares and TxSell otherwise.
func (t Transaction) Type() TxType {
	if t.Shares > 0 {
		return TxBuy
	}
	return TxSell
}

// IsBuy returns true when the transaction adds shares.
func (t Transaction) IsBuy() bool { return t.Shares > 0 }

// Cost returns price multiplied by the signed share count: positive for a
// buy (cash out), negative for a sell (cash in).
func (t Transaction) Cost() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Shares))
}

// Equal reports structural equality.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date == o.Date && t.Symbol == o.Symbol && t.Shares == o.Shares && t.Price.Equal(o.Price)
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s %d@%s", t.Date, t.Type(), t.Symbol, abs64(t.Shares), t.Price)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
