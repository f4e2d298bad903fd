// Package stats computes the summary statistics behind the shelter reports:
// frequency ranking, per-group quantiles and kernel density estimates.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNoData is returned when a statistic is requested for an empty sample.
var ErrNoData = errors.New("empty sample")

// Quantile returns the q-th quantile of xs using linear interpolation
// between order statistics (Hyndman and Fan type 7, numpy's default).
// xs is not modified.
func Quantile(xs []float64, q float64) (float64, error) {
	if len(xs) == 0 {
		return math.NaN(), ErrNoData
	}
	if q < 0 || q > 1 || math.IsNaN(q) {
		return math.NaN(), fmt.Errorf("quantile %v out of range [0, 1]", q)
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * q
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1], nil
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i]), nil
}
