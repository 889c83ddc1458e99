package transform

import (
	"math"

	"sheetprep/internal/dataset"
	"sheetprep/internal/stats"
)

// dropOutliersIQR removes rows where any checked column falls outside
// [Q1 - fence*IQR, Q3 + fence*IQR]. Following the upstream tool, a missing
// value in a checked column fails the inside-fence test and drops the row.
func dropOutliersIQR(ds *dataset.Dataset, op Op, opts Options) (*Outcome, error) {
	cols, err := resolveNumericColumns(ds, op.Columns)
	if err != nil {
		return nil, err
	}
	lower := make(map[int]float64, len(cols))
	upper := make(map[int]float64, len(cols))
	floats := make(map[int][]float64, len(cols))
	for _, col := range cols {
		xs := ds.FloatColumn(col)
		q1 := stats.Quantile(xs, 0.25, stats.SkipNaN)
		q3 := stats.Quantile(xs, 0.75, stats.SkipNaN)
		if math.IsNaN(q1) || math.IsNaN(q3) {
			return nil, dataset.E(dataset.KindTypeMismatch, "column %q has no numeric values", ds.Headers[col])
		}
		iqr := q3 - q1
		lower[col] = q1 - op.Fence*iqr
		upper[col] = q3 + op.Fence*iqr
		floats[col] = xs
	}
	return filterRows(ds, func(i int) bool {
		for _, col := range cols {
			v := floats[col][i]
			if math.IsNaN(v) || v < lower[col] || v > upper[col] {
				return false
			}
		}
		return true
	}, "Removed outliers (IQR)")
}

// dropOutliersZScore removes rows where any checked column has
// |x - mean| / popstddev above the threshold.
func dropOutliersZScore(ds *dataset.Dataset, op Op, opts Options) (*Outcome, error) {
	cols, err := resolveNumericColumns(ds, op.Columns)
	if err != nil {
		return nil, err
	}
	mean := make(map[int]float64, len(cols))
	sd := make(map[int]float64, len(cols))
	floats := make(map[int][]float64, len(cols))
	for _, col := range cols {
		xs := ds.FloatColumn(col)
		m := stats.Mean(xs, stats.SkipNaN)
		s := stats.PopStdDev(xs, stats.SkipNaN)
		if math.IsNaN(m) || math.IsNaN(s) {
			return nil, dataset.E(dataset.KindTypeMismatch, "column %q has no numeric values", ds.Headers[col])
		}
		if s == 0 {
			return nil, dataset.E(dataset.KindDivideByZero, "z-score undefined: column %q has zero variance", ds.Headers[col])
		}
		mean[col] = m
		sd[col] = s
		floats[col] = xs
	}
	return filterRows(ds, func(i int) bool {
		for _, col := range cols {
			v := floats[col][i]
			if math.IsNaN(v) || math.Abs(v-mean[col])/sd[col] > op.Threshold {
				return false
			}
		}
		return true
	}, "Removed outliers (z-score)")
}

func filterRows(ds *dataset.Dataset, keep func(i int) bool, verb string) (*Outcome, error) {
	before := len(ds.Rows)
	kept := ds.Rows[:0:0]
	for i, row := range ds.Rows {
		if keep(i) {
			kept = append(kept, row)
		}
	}
	ds.Rows = kept
	return &Outcome{
		Mutated:    true,
		RowsBefore: before,
		RowsAfter:  len(ds.Rows),
		Message:    shapeMessage(verb, before, len(ds.Rows)),
	}, nil
}
