package shared

import (
	"math"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places every monetary figure is rounded to.
const MoneyScale = 2

var hundred = decimal.NewFromInt(100)

// Round2 rounds an amount to MoneyScale places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// Clamp limits d to [lo, hi]. When hi is below lo the result is lo.
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.GreaterThan(hi) {
		d = hi
	}
	if d.LessThan(lo) {
		d = lo
	}
	return d
}

// ClampPercent limits a percentage to [0, 100].
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	return Clamp(p, decimal.Zero, hundred)
}

// PercentOf returns base * pct / 100 rounded to money scale.
func PercentOf(base, pct decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(pct).Div(hundred))
}

// RatioPercent returns part / whole * 100 rounded to two places, or zero when
// whole is not positive.
func RatioPercent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return Round2(part.Mul(hundred).Div(whole))
}

// LineAmount returns the exact quantity * unitPrice product. Callers round
// once the amounts have been summed.
func LineAmount(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// NonNegative converts a caller supplied float into a decimal. NaN, infinities
// and negative values become zero.
func NonNegative(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// Float returns d as a float64. Amounts are rounded before conversion so the
// result is the nearest binary value of a two-place decimal.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// FormatPlain renders v without trailing zeros, e.g. 200 -> "200", 12.5 -> "12.5".
func FormatPlain(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return decimal.NewFromFloat(v).String()
}
