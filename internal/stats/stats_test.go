package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantileLinearInterpolation(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 100}
	assert.Equal(t, 2.0, Quantile(xs, 0.25, SkipNaN))
	assert.Equal(t, 3.0, Quantile(xs, 0.5, SkipNaN))
	assert.Equal(t, 4.0, Quantile(xs, 0.75, SkipNaN))
	assert.Equal(t, 1.0, Quantile(xs, 0, SkipNaN))
	assert.Equal(t, 100.0, Quantile(xs, 1, SkipNaN))

	// even count interpolates
	assert.Equal(t, 2.5, Median([]float64{1, 2, 3, 4}, SkipNaN))
}

func TestNaNPolicy(t *testing.T) {
	xs := []float64{1, math.NaN(), 3}

	t.Run("skip", func(t *testing.T) {
		assert.Equal(t, 2.0, Mean(xs, SkipNaN))
		assert.Equal(t, 2.0, Median(xs, SkipNaN))
		assert.Equal(t, 1.0, Min(xs, SkipNaN))
		assert.Equal(t, 3.0, Max(xs, SkipNaN))
	})

	t.Run("propagate", func(t *testing.T) {
		assert.True(t, math.IsNaN(Mean(xs, PropagateNaN)))
		assert.True(t, math.IsNaN(Median(xs, PropagateNaN)))
		assert.True(t, math.IsNaN(PopStdDev(xs, PropagateNaN)))
	})
}

func TestPopStdDev(t *testing.T) {
	// population std of [2, 4] is 1, sample std is sqrt(2)
	assert.InDelta(t, 1.0, PopStdDev([]float64{2, 4}, SkipNaN), 1e-12)
	assert.InDelta(t, math.Sqrt2, StdDev([]float64{2, 4}, SkipNaN), 1e-12)
}

func TestCorrelationMatrix(t *testing.T) {
	names := []string{"x", "y", "z"}
	cols := [][]float64{
		{1, 2, 3, 4, 5},
		{2, 4, 6, 8, 10},
		{5, 4, 3, 2, 1},
	}
	m, err := CorrelationMatrix(names, cols, SkipNaN)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, m.R[0][1], 1e-12)
	assert.InDelta(t, -1.0, m.R[0][2], 1e-12)
	assert.InDelta(t, -1.0, m.R[1][2], 1e-12)
	assert.Equal(t, m.R[0][1], m.R[1][0], "matrix is symmetric")

	pairs := m.HighPairs(0.7)
	assert.Len(t, pairs, 3)

	_, err = CorrelationMatrix([]string{"x"}, cols[:1], SkipNaN)
	assert.Error(t, err)
}

func TestCorrelationPairwiseSkip(t *testing.T) {
	names := []string{"x", "y"}
	cols := [][]float64{
		{1, 2, math.NaN(), 4},
		{2, 4, 100, 8},
	}
	m, err := CorrelationMatrix(names, cols, SkipNaN)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, m.R[0][1], 1e-12, "NaN row dropped pairwise")

	m, err = CorrelationMatrix(names, cols, PropagateNaN)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(m.R[0][1]))
}

func TestOneSampleTTest(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}

	t.Run("mean equals hypothesis", func(t *testing.T) {
		res, err := OneSampleTTest(xs, 3, SkipNaN)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, res.Statistic, 1e-12)
		assert.InDelta(t, 1.0, res.PValue, 1e-12)
		assert.Equal(t, 4.0, res.DF)
	})

	t.Run("reference values", func(t *testing.T) {
		// scipy.stats.ttest_1samp([1,2,3,4,5], 2)
		res, err := OneSampleTTest(xs, 2, SkipNaN)
		require.NoError(t, err)
		assert.InDelta(t, 1.4142, res.Statistic, 1e-4)
		assert.InDelta(t, 0.2302, res.PValue, 1e-3)
	})

	t.Run("zero variance", func(t *testing.T) {
		_, err := OneSampleTTest([]float64{7, 7, 7}, 5, SkipNaN)
		assert.Error(t, err)
	})

	t.Run("propagate", func(t *testing.T) {
		res, err := OneSampleTTest([]float64{1, math.NaN(), 3}, 2, PropagateNaN)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(res.PValue))
	})
}

func TestTwoSampleTTest(t *testing.T) {
	// scipy.stats.ttest_ind([1,2,3,4,5], [2,3,4,5,6])
	res, err := TwoSampleTTest([]float64{1, 2, 3, 4, 5}, []float64{2, 3, 4, 5, 6}, SkipNaN)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, res.Statistic, 1e-12)
	assert.InDelta(t, 0.3466, res.PValue, 1e-3)
	assert.Equal(t, 8.0, res.DF)
	assert.Equal(t, 3.0, res.Mean1)
	assert.Equal(t, 4.0, res.Mean2)
}

func repeat(pairs [][2]string, counts []int) (a, b []string) {
	for i, p := range pairs {
		for n := 0; n < counts[i]; n++ {
			a = append(a, p[0])
			b = append(b, p[1])
		}
	}
	return a, b
}

func TestChiSquareTest(t *testing.T) {
	t.Run("reference table", func(t *testing.T) {
		// scipy.stats.chi2_contingency([[20,10],[10,20]])
		a, b := repeat([][2]string{{"a", "x"}, {"a", "y"}, {"b", "x"}, {"b", "y"}}, []int{20, 10, 10, 20})
		res, err := ChiSquareTest(a, b)
		require.NoError(t, err)
		assert.InDelta(t, 5.4, res.Statistic, 1e-9)
		assert.InDelta(t, 0.0201, res.PValue, 1e-3)
		assert.Equal(t, 1, res.DF)
	})

	t.Run("independent table", func(t *testing.T) {
		a, b := repeat([][2]string{{"a", "x"}, {"a", "y"}, {"b", "x"}, {"b", "y"}}, []int{15, 15, 15, 15})
		res, err := ChiSquareTest(a, b)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, res.Statistic, 1e-12)
		assert.InDelta(t, 1.0, res.PValue, 1e-12)
	})

	t.Run("missing cells skipped", func(t *testing.T) {
		a := []string{"a", "a", "b", "b", ""}
		b := []string{"x", "y", "x", "y", "x"}
		res, err := ChiSquareTest(a, b)
		require.NoError(t, err)
		assert.Equal(t, 4.0, res.Observed[0][0]+res.Observed[0][1]+res.Observed[1][0]+res.Observed[1][1])
	})

	t.Run("single category rejected", func(t *testing.T) {
		_, err := ChiSquareTest([]string{"a", "a"}, []string{"x", "y"})
		assert.Error(t, err)
	})
}

func TestParseNaNPolicy(t *testing.T) {
	p, err := ParseNaNPolicy("skip")
	require.NoError(t, err)
	assert.Equal(t, SkipNaN, p)

	p, err = ParseNaNPolicy("propagate")
	require.NoError(t, err)
	assert.Equal(t, PropagateNaN, p)

	_, err = ParseNaNPolicy("bogus")
	assert.Error(t, err)
}
