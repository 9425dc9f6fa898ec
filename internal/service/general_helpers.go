package service

import "math"

// RoundingPrecision expresses the 0.01 precision used for monetary values in
// API responses (100 = two decimal places).
const RoundingPrecision = 100

// round rounds a value to two decimal places for API responses. Internal
// calculations stay unrounded; rounding happens once, at the response edge.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

func floatPtr(v float64) *float64 {
	return &v
}
