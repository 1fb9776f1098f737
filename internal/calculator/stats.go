package calculator

import (
	"errors"
	"math"
	"time"

	"MarketLens/internal/model"
)

var (
	errNoObservations = errors.New("column has no observations")
	errShapeMismatch  = errors.New("column and dates differ in length")
)

// Max returns the largest non-missing value of values.
func Max(values []float64) (float64, error) {
	high, seen := math.Inf(-1), false
	for _, v := range values {
		if model.IsMissing(v) {
			continue
		}
		if v > high {
			high = v
		}
		seen = true
	}
	if !seen {
		return 0, errNoObservations
	}
	return high, nil
}

// ArgMaxDate returns the maximum of values and the date it first occurs on.
// dates must be ascending and aligned with values.
func ArgMaxDate(dates []time.Time, values []float64) (float64, time.Time, error) {
	if len(dates) != len(values) {
		return 0, time.Time{}, errShapeMismatch
	}
	idx := -1
	for i, v := range values {
		if model.IsMissing(v) {
			continue
		}
		// Strict comparison keeps the earliest date on ties.
		if idx < 0 || v > values[idx] {
			idx = i
		}
	}
	if idx < 0 {
		return 0, time.Time{}, errNoObservations
	}
	return values[idx], dates[idx], nil
}

// Mean returns the arithmetic mean of the non-missing values.
func Mean(values []float64) (float64, error) {
	sum, n := 0.0, 0
	for _, v := range values {
		if model.IsMissing(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, errNoObservations
	}
	return sum / float64(n), nil
}
