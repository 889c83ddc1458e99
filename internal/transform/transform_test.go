package transform

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetprep/internal/dataset"
	"sheetprep/internal/stats"
)

func table(headers []string, rows ...[]string) *dataset.Dataset {
	return &dataset.Dataset{Headers: headers, Rows: rows}
}

func apply(t *testing.T, ds *dataset.Dataset, op Op) *Outcome {
	t.Helper()
	out, err := Apply(ds, op, Options{})
	require.NoError(t, err)
	return out
}

func TestParseRequest(t *testing.T) {
	t.Run("unknown operation", func(t *testing.T) {
		_, err := Request{Operation: "pivot"}.Parse()
		assert.Equal(t, dataset.KindInvalidOperation, dataset.KindOf(err))
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := Request{Operation: "missing_values", Parameters: map[string]any{"method": "magic"}}.Parse()
		assert.Equal(t, dataset.KindInvalidOperation, dataset.KindOf(err))
	})

	t.Run("empty column selection", func(t *testing.T) {
		_, err := Request{Operation: "duplicates", Parameters: map[string]any{"columns": []any{}}}.Parse()
		assert.Equal(t, dataset.KindEmptySelection, dataset.KindOf(err))
	})

	t.Run("defaults", func(t *testing.T) {
		op, err := Request{Operation: "outliers"}.Parse()
		require.NoError(t, err)
		assert.Equal(t, KindOutlierIQR, op.Kind)
		assert.Equal(t, DefaultIQRFence, op.Fence)

		op, err = Request{Operation: "outliers", Parameters: map[string]any{"method": "zscore"}}.Parse()
		require.NoError(t, err)
		assert.Equal(t, KindOutlierZScore, op.Kind)
		assert.Equal(t, DefaultZThreshold, op.Threshold)
	})

	t.Run("t-test variants", func(t *testing.T) {
		op, err := Request{Operation: "t_test", Parameters: map[string]any{"column1": "a", "column2": "b"}}.Parse()
		require.NoError(t, err)
		assert.Equal(t, KindTTestTwoSample, op.Kind)

		op, err = Request{Operation: "t_test", Parameters: map[string]any{"column1": "a", "value": 2.5}}.Parse()
		require.NoError(t, err)
		assert.Equal(t, KindTTestOneSample, op.Kind)
		assert.Equal(t, 2.5, op.TestValue)

		_, err = Request{Operation: "t_test", Parameters: map[string]any{"column1": "a"}}.Parse()
		assert.Equal(t, dataset.KindInvalidOperation, dataset.KindOf(err))
	})
}

func TestDropMissing(t *testing.T) {
	ds := table([]string{"a", "b"},
		[]string{"1", "x"},
		[]string{"", "y"},
		[]string{"3", ""},
		[]string{"4", "z"},
	)
	out := apply(t, ds, Op{Kind: KindDropMissing})
	assert.Equal(t, 4, out.RowsBefore)
	assert.Equal(t, 2, out.RowsAfter)
	assert.Equal(t, [][]string{{"1", "x"}, {"4", "z"}}, ds.Rows)
}

func TestFillMean(t *testing.T) {
	ds := table([]string{"v"}, []string{"1"}, []string{""}, []string{"3"})
	apply(t, ds, Op{Kind: KindFillMean})
	assert.Equal(t, "2", ds.Rows[1][0])
}

func TestFillMedian(t *testing.T) {
	ds := table([]string{"v"}, []string{"1"}, []string{"2"}, []string{""}, []string{"10"})
	apply(t, ds, Op{Kind: KindFillMedian})
	assert.Equal(t, "2", ds.Rows[2][0])
}

func TestFillConstant(t *testing.T) {
	ds := table([]string{"a", "b"}, []string{"", "x"}, []string{"2", ""})
	out := apply(t, ds, Op{Kind: KindFillConstant, FillValue: "missing"})
	assert.Equal(t, "missing", ds.Rows[0][0])
	assert.Equal(t, "missing", ds.Rows[1][1])
	assert.Contains(t, out.Message, "2 missing cells")
}

func TestOutlierIQR(t *testing.T) {
	ds := table([]string{"v"},
		[]string{"1"}, []string{"2"}, []string{"3"}, []string{"4"}, []string{"100"})
	out := apply(t, ds, Op{Kind: KindOutlierIQR, Fence: 1.5})
	assert.Equal(t, 4, out.RowsAfter)
	for _, row := range ds.Rows {
		assert.NotEqual(t, "100", row[0])
	}
}

func TestOutlierZScore(t *testing.T) {
	rows := make([][]string, 0, 12)
	for i := 0; i < 11; i++ {
		rows = append(rows, []string{"10"})
	}
	rows = append(rows, []string{"100"})
	ds := table([]string{"v"}, rows...)

	out := apply(t, ds, Op{Kind: KindOutlierZScore, Threshold: 3})
	assert.Equal(t, 12, out.RowsBefore)
	assert.Equal(t, 11, out.RowsAfter)
	for _, row := range ds.Rows {
		assert.Equal(t, "10", row[0])
	}
}

func TestDropDuplicatesIdempotent(t *testing.T) {
	ds := table([]string{"a", "b"},
		[]string{"1", "x"},
		[]string{"1", "x"},
		[]string{"2", "y"},
		[]string{"1", "x"},
	)
	out := apply(t, ds, Op{Kind: KindDropDuplicates})
	assert.Equal(t, 2, out.RowsAfter)
	first := ds.Clone()

	out = apply(t, ds, Op{Kind: KindDropDuplicates})
	assert.Equal(t, 2, out.RowsAfter)
	assert.Equal(t, first.Rows, ds.Rows)
}

func TestDropDuplicatesSelectedColumns(t *testing.T) {
	ds := table([]string{"a", "b"},
		[]string{"1", "x"},
		[]string{"1", "y"},
		[]string{"2", "z"},
	)
	apply(t, ds, Op{Kind: KindDropDuplicates, Columns: []string{"a"}})
	assert.Equal(t, [][]string{{"1", "x"}, {"2", "z"}}, ds.Rows)
}

func TestScaleZScore(t *testing.T) {
	ds := table([]string{"v"},
		[]string{"2"}, []string{"4"}, []string{"6"}, []string{"8"})
	apply(t, ds, Op{Kind: KindScaleZScore})

	xs := ds.FloatColumn(0)
	assert.InDelta(t, 0.0, stats.Mean(xs, stats.SkipNaN), 1e-9)
	assert.InDelta(t, 1.0, stats.PopStdDev(xs, stats.SkipNaN), 1e-9)
}

func TestScaleMinMax(t *testing.T) {
	ds := table([]string{"v"},
		[]string{"5"}, []string{"10"}, []string{"20"})
	apply(t, ds, Op{Kind: KindScaleMinMax})

	xs := ds.FloatColumn(0)
	assert.Equal(t, 0.0, xs[0])
	assert.Equal(t, 1.0, xs[2])
	for _, v := range xs {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestScaleMinMaxConstantColumn(t *testing.T) {
	ds := table([]string{"v"}, []string{"5"}, []string{"5"})
	before := ds.Clone()

	_, err := Apply(ds, Op{Kind: KindScaleMinMax}, Options{})
	assert.Equal(t, dataset.KindDivideByZero, dataset.KindOf(err))
	assert.Equal(t, before.Rows, ds.Rows, "failed operation must not mutate")
}

func TestNumericOpOnTextColumn(t *testing.T) {
	ds := table([]string{"city"}, []string{"Paris"}, []string{"Lagos"})
	_, err := Apply(ds, Op{Kind: KindScaleZScore, Columns: []string{"city"}}, Options{})
	assert.Equal(t, dataset.KindTypeMismatch, dataset.KindOf(err))

	_, err = Apply(ds, Op{Kind: KindFillMean, Columns: []string{"nope"}}, Options{})
	assert.Equal(t, dataset.KindUnknownColumn, dataset.KindOf(err))
}

func TestCorrelationOutcome(t *testing.T) {
	ds := table([]string{"x", "y"},
		[]string{"1", "2"}, []string{"2", "4"}, []string{"3", "6"})
	out := apply(t, ds, Op{Kind: KindCorrelation})
	assert.False(t, out.Mutated)
	assert.Contains(t, out.Summary, "1.0000")
	assert.Contains(t, out.Summary, "x - y")
}

func TestTTestOutcome(t *testing.T) {
	rows := make([][]string, 0, 5)
	for i := 1; i <= 5; i++ {
		rows = append(rows, []string{strconv.Itoa(i), strconv.Itoa(i + 1)})
	}
	ds := table([]string{"x", "y"}, rows...)

	out := apply(t, ds, Op{Kind: KindTTestTwoSample, Column1: "x", Column2: "y"})
	assert.False(t, out.Mutated)
	assert.Contains(t, out.Summary, "t = -1.0000")

	out = apply(t, ds, Op{Kind: KindTTestOneSample, Column1: "x", TestValue: 3})
	assert.Contains(t, out.Summary, "t = 0.0000")
}

func TestChiSquareOutcome(t *testing.T) {
	rows := [][]string{}
	add := func(a, b string, n int) {
		for i := 0; i < n; i++ {
			rows = append(rows, []string{a, b})
		}
	}
	add("a", "x", 20)
	add("a", "y", 10)
	add("b", "x", 10)
	add("b", "y", 20)
	ds := table([]string{"g", "h"}, rows...)

	out := apply(t, ds, Op{Kind: KindChiSquare, Column1: "g", Column2: "h"})
	assert.False(t, out.Mutated)
	assert.Contains(t, out.Summary, "chi2 = 5.4000")
	assert.Contains(t, out.Summary, "dof = 1")
}
