package analytics

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// roundHalfUp rounds to the nearest integer with ties going towards positive
// infinity, so -2.5 becomes -2 and 2.5 becomes 3.
func roundHalfUp(d decimal.Decimal) int {
	return int(d.Add(half).Floor().IntPart())
}

// Growth returns the whole-percent change from previous to current. Ties
// round towards positive infinity. A zero previous value yields 100 when
// current is positive and 0 otherwise.
func Growth(current, previous decimal.Decimal) int {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	return roundHalfUp(current.Sub(previous).Div(previous).Mul(hundred))
}

// GrowthInt is Growth for counts.
func GrowthInt(current, previous int) int {
	return Growth(decimal.NewFromInt(int64(current)), decimal.NewFromInt(int64(previous)))
}
