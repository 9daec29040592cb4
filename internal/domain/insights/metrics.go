// Package insights derives dashboard figures from posted journals:
// period revenue, expense and profit, with growth and margin
// percentages.
package insights

import (
	"github.com/shopspring/decimal"

	"moneta/internal/core/types"
)

// nearZero is the denominator threshold below which a ratio is
// undefined.
var nearZero = decimal.New(1, -5)

func isNearZero(v types.Money) bool {
	return v.Abs().LessThan(nearZero)
}

// Growth returns the percentage change from previous to current. A
// near-zero previous value cannot anchor a ratio: the result is 0% when
// current is also near zero and 100% otherwise.
func Growth(current, previous types.Money) *types.Money {
	if isNearZero(previous) {
		var pct types.Money
		if isNearZero(current) {
			pct = types.Zero()
		} else {
			pct = types.MustMoney("100")
		}
		return &pct
	}

	pct := current.Sub(previous).Div(previous.Abs()).Mul(types.MustMoney("100"))
	return &pct
}

// Margin returns part as a percentage of base, nil when base is too
// close to zero to divide by.
func Margin(part, base types.Money) *types.Money {
	if isNearZero(base) {
		return nil
	}
	pct := part.Div(base).Mul(types.MustMoney("100"))
	return &pct
}
