package services

import "github.com/shopspring/decimal"

var half = decimal.NewFromFloat(0.5)

// RoundHalfUp rounds to the nearest whole currency unit, ties toward +Inf.
func RoundHalfUp(amount float64) float64 {
	return roundHalfUp(decimal.NewFromFloat(amount))
}

// MulRound multiplies an amount by a fraction and rounds half-up. The product
// is taken in decimal so that 10000 × 0.85 is exactly 8500.
func MulRound(amount, fraction float64) float64 {
	return roundHalfUp(decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(fraction)))
}

func roundHalfUp(d decimal.Decimal) float64 {
	return d.Add(half).Floor().InexactFloat64()
}
