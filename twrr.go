package analysiolo

import (
	"github.com/shopspring/decimal"
)

// The time-weighted rate of return breaks the holding period into
// sub-periods at every transaction date, computes a growth factor
// (endValue/startValue) per sub-period, and composes them geometrically:
//
//	TWRR = (Π growthFactor_i) − 1
//
// Valuing each boundary with the pre-transaction portfolio and correcting
// boundary values by the transaction's premium (the amount paid above or
// below the market price of the same day) isolates investment performance
// from the timing and size of the cash flows themselves.

// GrowthFactors computes the ordered sub-period growth factors of a journal
// over the given window: one factor per transaction boundary inside the
// window plus one trailing factor up to period.To. Transactions before the
// window seed the starting portfolio. Sub-periods during which the portfolio
// is flat (every position at zero shares) have a growth of 1 and contribute
// no factor. Each factor is rounded half-up to the fixed scale.
//
// A missing market price or a zero sub-period starting value aborts the
// whole computation; there is no partial TWRR.
func GrowthFactors(j *Journal, resolver PriceResolver, period Range) ([]decimal.Decimal, error) {
	pf := NewPortfolio(resolver)
	var window []Transaction
	var err error
	for tx := range j.Transactions() {
		switch {
		case tx.Date.Before(period.From):
			if pf, err = pf.UpdateWith(tx); err != nil {
				return nil, err
			}
		case !tx.Date.After(period.To):
			window = append(window, tx)
		}
	}

	var factors []decimal.Decimal
	start := period.From
	var startTx *Transaction
	for i := range window {
		tx := window[i]
		factor, held, err := growthFactor(pf, start, tx.Date, startTx, &tx)
		if err != nil {
			return nil, err
		}
		if held {
			factors = append(factors, factor)
		}
		if pf, err = pf.UpdateWith(tx); err != nil {
			return nil, err
		}
		start = tx.Date
		startTx = &window[i]
	}

	// Trailing factor from the last boundary to the end of the window.
	factor, held, err := growthFactor(pf, start, period.To, startTx, nil)
	if err != nil {
		return nil, err
	}
	if held {
		factors = append(factors, factor)
	}
	return factors, nil
}

// growthFactor values one sub-period with the running (pre-transaction)
// portfolio. The starting value is corrected by the premium of the starting
// boundary transaction when it is a buy: cash flowing in on the start date
// counts as part of the initial value, not as growth. Symmetrically, the
// ending value is corrected by the premium of the ending transaction when it
// is a sell. held is false when the portfolio holds no shares at all over
// the sub-period, in which case the growth is a no-op.
func growthFactor(pf Portfolio, from, to Date, startTx, endTx *Transaction) (factor decimal.Decimal, held bool, err error) {
	if pf.IsFlat() {
		return decimal.Decimal{}, false, nil
	}

	vinit, err := pf.ValueOn(from)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	if startTx != nil && startTx.IsBuy() {
		premium, err := premiumOf(pf, *startTx)
		if err != nil {
			return decimal.Decimal{}, false, err
		}
		vinit = vinit.Add(premium)
	}
	if vinit.IsZero() {
		return decimal.Decimal{}, false, &ZeroValueError{Date: from}
	}

	vend, err := pf.ValueOn(to)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	if endTx != nil && !endTx.IsBuy() {
		premium, err := premiumOf(pf, *endTx)
		if err != nil {
			return decimal.Decimal{}, false, err
		}
		vend = vend.Add(premium)
	}

	return round(vend.Div(vinit)), true, nil
}

// premiumOf is the amount paid above (or received below) the fair market
// value of the transaction's day: (txPrice − marketPrice) × |shares|. Buying
// above market makes it positive, as does selling above market.
func premiumOf(pf Portfolio, tx Transaction) (decimal.Decimal, error) {
	market, err := pf.resolver.PriceOn(tx.Symbol, tx.Date)
	if err != nil {
		return decimal.Decimal{}, &PriceUnavailableError{Symbol: tx.Symbol, Date: tx.Date, Cause: err}
	}
	return tx.Price.Sub(market).Mul(decimal.NewFromInt(abs64(tx.Shares))), nil
}

// TimeWeightedReturn composes the growth factors of a journal over the given
// window into a time-weighted rate of return. It is Empty when no sub-period
// held any shares, a failure when any price or starting value is missing,
// and (Π factors − 1) otherwise.
func TimeWeightedReturn(j *Journal, resolver PriceResolver, period Range) Outcome[decimal.Decimal] {
	factors, err := GrowthFactors(j, resolver, period)
	if err != nil {
		return Fail[decimal.Decimal](err)
	}
	if len(factors) == 0 {
		return Empty[decimal.Decimal]()
	}
	product := decimal.NewFromInt(1)
	for _, factor := range factors {
		product = product.Mul(factor)
	}
	return Ok(product.Sub(decimal.NewFromInt(1)))
}
