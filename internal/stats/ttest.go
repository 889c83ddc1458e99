package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"sheetprep/internal/dataset"
)

// TTest holds the result of a one- or two-sample t-test. For a one-sample
// test N2 is zero and Mean2 is the hypothesized mean.
type TTest struct {
	Statistic float64
	PValue    float64
	DF        float64
	N1, N2    int
	Mean1     float64
	Mean2     float64
}

// OneSampleTTest compares the sample mean of xs against mu0.
func OneSampleTTest(xs []float64, mu0 float64, pol NaNPolicy) (TTest, error) {
	xs, nan := clean(xs, pol)
	if nan {
		return TTest{Statistic: math.NaN(), PValue: math.NaN(), DF: math.NaN(), N1: len(xs), Mean1: math.NaN(), Mean2: mu0}, nil
	}
	if len(xs) < 2 {
		return TTest{}, dataset.E(dataset.KindTypeMismatch, "t-test needs at least 2 numeric values, got %d", len(xs))
	}
	mean := stat.Mean(xs, nil)
	sd := stat.StdDev(xs, nil)
	se := sd / math.Sqrt(float64(len(xs)))
	if se == 0 {
		return TTest{}, dataset.E(dataset.KindDivideByZero, "t-test undefined: sample has zero variance")
	}
	t := (mean - mu0) / se
	df := float64(len(xs) - 1)
	return TTest{
		Statistic: t,
		PValue:    twoSidedStudentP(t, df),
		DF:        df,
		N1:        len(xs),
		Mean1:     mean,
		Mean2:     mu0,
	}, nil
}

// TwoSampleTTest is the pooled-variance (equal variances assumed) test,
// matching the upstream reference default.
func TwoSampleTTest(xs, ys []float64, pol NaNPolicy) (TTest, error) {
	xs, nanX := clean(xs, pol)
	ys, nanY := clean(ys, pol)
	if nanX || nanY {
		return TTest{Statistic: math.NaN(), PValue: math.NaN(), DF: math.NaN(), N1: len(xs), N2: len(ys), Mean1: math.NaN(), Mean2: math.NaN()}, nil
	}
	if len(xs) < 2 || len(ys) < 2 {
		return TTest{}, dataset.E(dataset.KindTypeMismatch, "t-test needs at least 2 numeric values per sample, got %d and %d", len(xs), len(ys))
	}
	n1, n2 := float64(len(xs)), float64(len(ys))
	m1, m2 := stat.Mean(xs, nil), stat.Mean(ys, nil)
	v1, v2 := stat.Variance(xs, nil), stat.Variance(ys, nil)
	df := n1 + n2 - 2
	pooled := ((n1-1)*v1 + (n2-1)*v2) / df
	se := math.Sqrt(pooled * (1/n1 + 1/n2))
	if se == 0 {
		return TTest{}, dataset.E(dataset.KindDivideByZero, "t-test undefined: both samples have zero variance")
	}
	t := (m1 - m2) / se
	return TTest{
		Statistic: t,
		PValue:    twoSidedStudentP(t, df),
		DF:        df,
		N1:        len(xs),
		N2:        len(ys),
		Mean1:     m1,
		Mean2:     m2,
	}, nil
}

func twoSidedStudentP(t, df float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}
