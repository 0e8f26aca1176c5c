// Package stats computes the summary statistics reported by the analysis:
// mean, median, population standard deviation, and Pearson correlation.
//
// Empty inputs and mismatched lengths are precondition violations and are
// returned as structured errors so the one-shot pipeline can fail fast.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/housefit/housefit/pkg/errors"
)

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, errors.NewValueError("Mean", "empty input")
	}
	return stat.Mean(xs, nil), nil
}

// Median returns the middle value of xs, averaging the two central values
// for even-length input. The conventional even-length definition differs
// from gonum's empirical quantile at p=0.5, so the selection is done here
// on a sorted copy.
func Median(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, errors.NewValueError("Median", "empty input")
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// StdDev returns the population standard deviation of xs (normalized by n,
// not n-1, matching the descriptive-statistics convention of the report).
func StdDev(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, errors.NewValueError("StdDev", "empty input")
	}
	mean := stat.Mean(xs, nil)
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs))), nil
}

// Correlation returns the Pearson correlation coefficient between two
// equal-length columns.
func Correlation(xs, ys []float64) (float64, error) {
	if len(xs) == 0 || len(ys) == 0 {
		return 0, errors.NewValueError("Correlation", "empty input")
	}
	if len(xs) != len(ys) {
		return 0, errors.NewDimensionError("Correlation", len(xs), len(ys), 0)
	}
	return stat.Correlation(xs, ys, nil), nil
}

// Summary bundles the descriptive statistics of one column.
type Summary struct {
	Mean   float64
	Median float64
	StdDev float64
}

// Describe computes the Summary of a column.
func Describe(xs []float64) (Summary, error) {
	mean, err := Mean(xs)
	if err != nil {
		return Summary{}, err
	}
	median, err := Median(xs)
	if err != nil {
		return Summary{}, err
	}
	std, err := StdDev(xs)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Mean: mean, Median: median, StdDev: std}, nil
}
