package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Average calculates the arithmetic mean of a slice of float64 values,
// rounded to two decimal places. Returns nil for an empty slice so callers
// can distinguish "no data" from a genuine zero.
func Average(data []float64) *float64 {
	if len(data) == 0 {
		return nil
	}
	avg := TwoDigitFloat(stat.Mean(data, nil))
	return &avg
}

// Percentage calculates part as a percentage of total, rounded to the
// nearest whole percent. Returns nil when total is zero.
func Percentage(part, total float64) *float64 {
	if total == 0 {
		return nil
	}
	pct := math.Round(100 * part / total)
	return &pct
}

// TwoDigitFloat rounds a value to two decimal places
func TwoDigitFloat(value float64) float64 {
	return math.Round(value*100) / 100
}

// OrZero unwraps an optional value, coercing nil to 0. Dashboards must
// render 0% for brand-new campaigns with no wins, never an error.
func OrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
