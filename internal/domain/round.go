package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundToTen rounds x to the nearest multiple of ten, ties to even, the
// way a dataframe round(-1) does. NaN and infinities pass through.
func RoundToTen(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	f, _ := decimal.NewFromFloat(x).RoundBank(-1).Float64()
	return f
}
