// Package stats implements the statistical routines behind the operation
// catalog: descriptive statistics, Pearson correlation, t-tests and the
// chi-squared independence test. Distribution tails come from gonum.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"sheetprep/internal/dataset"
)

// NaNPolicy controls how missing values (NaN after extraction) are treated
// inside statistical routines.
type NaNPolicy int

const (
	// SkipNaN drops missing values before computing, the upstream
	// dropna behavior. Default.
	SkipNaN NaNPolicy = iota
	// PropagateNaN returns NaN results when any input is missing.
	PropagateNaN
)

// ParseNaNPolicy maps the config strings "skip" and "propagate".
func ParseNaNPolicy(s string) (NaNPolicy, error) {
	switch s {
	case "", "skip":
		return SkipNaN, nil
	case "propagate":
		return PropagateNaN, nil
	}
	return SkipNaN, dataset.E(dataset.KindInvalidOperation, "unknown nan policy %q (want skip or propagate)", s)
}

// clean applies the policy to a sample. Under SkipNaN the returned slice
// has NaNs removed; under PropagateNaN the second return is true when any
// NaN is present and the caller should yield NaN.
func clean(xs []float64, pol NaNPolicy) ([]float64, bool) {
	hasNaN := false
	for _, v := range xs {
		if math.IsNaN(v) {
			hasNaN = true
			break
		}
	}
	if !hasNaN {
		return xs, false
	}
	if pol == PropagateNaN {
		return xs, true
	}
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out, false
}

// Mean of the sample under the given policy.
func Mean(xs []float64, pol NaNPolicy) float64 {
	xs, nan := clean(xs, pol)
	if nan || len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// StdDev is the sample (n-1) standard deviation.
func StdDev(xs []float64, pol NaNPolicy) float64 {
	xs, nan := clean(xs, pol)
	if nan || len(xs) < 2 {
		return math.NaN()
	}
	return stat.StdDev(xs, nil)
}

// PopStdDev is the population (n) standard deviation, the normalization
// used by Z-score scaling and outlier z-scores.
func PopStdDev(xs []float64, pol NaNPolicy) float64 {
	xs, nan := clean(xs, pol)
	if nan || len(xs) == 0 {
		return math.NaN()
	}
	m := stat.Mean(xs, nil)
	var ss float64
	for _, v := range xs {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// Quantile computes the p-quantile with R-7 linear interpolation, the
// interpolation the upstream tool uses for quartiles and medians. gonum's
// cumulant kinds define quantiles differently, so this stays hand-rolled.
func Quantile(xs []float64, p float64, pol NaNPolicy) float64 {
	xs, nan := clean(xs, pol)
	if nan || len(xs) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Median is the 0.5 quantile.
func Median(xs []float64, pol NaNPolicy) float64 {
	return Quantile(xs, 0.5, pol)
}

// Min ignores NaN under SkipNaN.
func Min(xs []float64, pol NaNPolicy) float64 {
	xs, nan := clean(xs, pol)
	if nan || len(xs) == 0 {
		return math.NaN()
	}
	m := xs[0]
	for _, v := range xs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Max ignores NaN under SkipNaN.
func Max(xs []float64, pol NaNPolicy) float64 {
	xs, nan := clean(xs, pol)
	if nan || len(xs) == 0 {
		return math.NaN()
	}
	m := xs[0]
	for _, v := range xs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
