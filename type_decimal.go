package analysiolo

import "github.com/shopspring/decimal"

// PriceScale is the fixed number of fractional digits used for prices,
// values, and growth factors throughout the package. Using one scale with one
// rounding mode keeps repeated computations reproducible bit-for-bit.
const PriceScale = 6

// round rounds to PriceScale fractional digits, half-up. decimal.Round
// rounds half away from zero, which is identical to half-up for the
// non-negative prices and values handled here.
func round(d decimal.Decimal) decimal.Decimal { return d.Round(PriceScale) }

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}
