package domain

import "math"

// SafeDivide returns num/den, or 0 when den is zero or the result is not finite.
func SafeDivide(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return Finite(num / den)
}

// Finite maps NaN and ±Inf to 0 so they never reach a JSON encoder.
func Finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
