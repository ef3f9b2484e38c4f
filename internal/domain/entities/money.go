package entities

import "math"

// Round truncates a monetary value to cents using half-up rounding.
func Round(value float64) float64 {
	return math.Round(value*100) / 100
}

// RoundUp rounds a monetary value up to the next cent. Used for installment
// values so that count * installment never undershoots the full price.
func RoundUp(value float64) float64 {
	return math.Ceil(value*100) / 100
}
