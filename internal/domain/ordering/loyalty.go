package ordering

import "github.com/shopspring/decimal"

// PointsPerCurrencyUnit is the spend needed for one loyalty point
var PointsPerCurrencyUnit = decimal.NewFromInt(10)

// PointsEarned returns floor(total / 10). Non-positive totals earn nothing.
func PointsEarned(total decimal.Decimal) int64 {
	if !total.IsPositive() {
		return 0
	}
	// QuoRem with precision 0 truncates, which is floor for positive totals
	q, _ := total.QuoRem(PointsPerCurrencyUnit, 0)
	return q.IntPart()
}
