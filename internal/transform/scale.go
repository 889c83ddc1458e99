package transform

import (
	"fmt"
	"math"

	"sheetprep/internal/dataset"
	"sheetprep/internal/stats"
)

// scaleZScore rewrites each selected numeric column as (x - mean) / stddev
// using the population standard deviation. Missing cells stay missing.
func scaleZScore(ds *dataset.Dataset, op Op, opts Options) (*Outcome, error) {
	cols, err := resolveNumericColumns(ds, op.Columns)
	if err != nil {
		return nil, err
	}
	scaled := make(map[int][]float64, len(cols))
	for _, col := range cols {
		xs := ds.FloatColumn(col)
		m := stats.Mean(xs, stats.SkipNaN)
		s := stats.PopStdDev(xs, stats.SkipNaN)
		if math.IsNaN(m) || math.IsNaN(s) {
			return nil, dataset.E(dataset.KindTypeMismatch, "column %q has no numeric values", ds.Headers[col])
		}
		if s == 0 {
			return nil, dataset.E(dataset.KindDivideByZero, "z-score scaling undefined: column %q has zero variance", ds.Headers[col])
		}
		out := make([]float64, len(xs))
		for i, v := range xs {
			out[i] = (v - m) / s
		}
		scaled[col] = out
	}
	writeScaled(ds, scaled)
	return &Outcome{
		Mutated:    true,
		RowsBefore: len(ds.Rows),
		RowsAfter:  len(ds.Rows),
		Message:    fmt.Sprintf("Standardized columns (z-score): %s", joinNames(ds, cols)),
	}, nil
}

// scaleMinMax rewrites each selected numeric column as
// (x - min) / (max - min). A constant column has no defined scaling.
func scaleMinMax(ds *dataset.Dataset, op Op, opts Options) (*Outcome, error) {
	cols, err := resolveNumericColumns(ds, op.Columns)
	if err != nil {
		return nil, err
	}
	scaled := make(map[int][]float64, len(cols))
	for _, col := range cols {
		xs := ds.FloatColumn(col)
		lo := stats.Min(xs, stats.SkipNaN)
		hi := stats.Max(xs, stats.SkipNaN)
		if math.IsNaN(lo) || math.IsNaN(hi) {
			return nil, dataset.E(dataset.KindTypeMismatch, "column %q has no numeric values", ds.Headers[col])
		}
		if hi == lo {
			return nil, dataset.E(dataset.KindDivideByZero, "min-max scaling undefined: column %q is constant", ds.Headers[col])
		}
		out := make([]float64, len(xs))
		for i, v := range xs {
			out[i] = (v - lo) / (hi - lo)
		}
		scaled[col] = out
	}
	writeScaled(ds, scaled)
	return &Outcome{
		Mutated:    true,
		RowsBefore: len(ds.Rows),
		RowsAfter:  len(ds.Rows),
		Message:    fmt.Sprintf("Standardized columns (min-max): %s", joinNames(ds, cols)),
	}, nil
}

// writeScaled commits precomputed column values, skipping missing cells.
// Called only after every column validated, so the write cannot fail.
func writeScaled(ds *dataset.Dataset, scaled map[int][]float64) {
	for col, values := range scaled {
		for i, row := range ds.Rows {
			if dataset.IsMissing(row[col]) || math.IsNaN(values[i]) {
				continue
			}
			row[col] = dataset.FormatFloat(values[i])
		}
	}
}
