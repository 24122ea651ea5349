// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/mmfinance/installment-calc/pkg/constants"
)

// FloorToThousand truncates a value down to the nearest multiple of the
// salary granularity. Truncation, not nearest-rounding: a quoted minimum
// salary must never exceed the raw figure.
func FloorToThousand(val float64) float64 {
	if val <= 0 || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	return math.Floor(val/constants.SalaryGranularity) * constants.SalaryGranularity
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
