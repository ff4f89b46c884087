// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/constants"
)

// Round rounds a value to two decimals for display purposes. Internal
// calculations keep full precision; truncating early compounds error across
// chained expectations.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a quantity is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.QuantityTolerance
}

// IsPositive checks if a quantity is positive (greater than tolerance)
func IsPositive(val float64) bool {
	return val > constants.QuantityTolerance
}

// IsNegative checks if a quantity is negative (less than negative tolerance)
func IsNegative(val float64) bool {
	return val < -constants.QuantityTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CeilPositive rounds up, guarding against the negative-zero artifacts that
// math.Ceil produces for inputs in (-1, 0).
func CeilPositive(val float64) float64 {
	if val <= 0 {
		return 0
	}
	return math.Ceil(val)
}

// RoundRuns converts a fractional run count to the nearest executable
// non-negative integer count.
func RoundRuns(val float64) int {
	if val <= 0 {
		return 0
	}
	return int(math.Round(val))
}

// SafeDivide returns numerator/denominator, or 0 when the denominator is
// effectively zero. NaN must never propagate into the ledger.
func SafeDivide(numerator, denominator float64) float64 {
	if IsZero(denominator) {
		return 0
	}
	return numerator / denominator
}
