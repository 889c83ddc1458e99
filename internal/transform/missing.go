package transform

import (
	"fmt"
	"math"
	"strings"

	"sheetprep/internal/dataset"
	"sheetprep/internal/stats"
)

func dropMissing(ds *dataset.Dataset, op Op) (*Outcome, error) {
	cols, err := resolveColumns(ds, op.Columns)
	if err != nil {
		return nil, err
	}
	before := len(ds.Rows)
	kept := ds.Rows[:0:0]
	for _, row := range ds.Rows {
		missing := false
		for _, col := range cols {
			if dataset.IsMissing(row[col]) {
				missing = true
				break
			}
		}
		if !missing {
			kept = append(kept, row)
		}
	}
	ds.Rows = kept
	return &Outcome{
		Mutated:    true,
		RowsBefore: before,
		RowsAfter:  len(ds.Rows),
		Message:    shapeMessage("Dropped rows with missing values", before, len(ds.Rows)),
	}, nil
}

// fillStatistic replaces missing numeric cells with a per-column statistic.
// The fill value is always computed over the non-missing values, so the NaN
// policy does not apply here.
func fillStatistic(ds *dataset.Dataset, op Op, name string, fn func([]float64, stats.NaNPolicy) float64) (*Outcome, error) {
	cols, err := resolveNumericColumns(ds, op.Columns)
	if err != nil {
		return nil, err
	}
	fills := make(map[int]string, len(cols))
	for _, col := range cols {
		v := fn(ds.FloatColumn(col), stats.SkipNaN)
		if math.IsNaN(v) {
			return nil, dataset.E(dataset.KindTypeMismatch, "column %q has no numeric values to compute a %s from", ds.Headers[col], name)
		}
		fills[col] = dataset.FormatFloat(v)
	}
	filled := applyFills(ds, fills)
	return &Outcome{
		Mutated:    true,
		RowsBefore: len(ds.Rows),
		RowsAfter:  len(ds.Rows),
		Message:    fmt.Sprintf("Filled %d missing cells with the column %s", filled, name),
	}, nil
}

func fillConstant(ds *dataset.Dataset, op Op) (*Outcome, error) {
	cols, err := resolveColumns(ds, op.Columns)
	if err != nil {
		return nil, err
	}
	fills := make(map[int]string, len(cols))
	for _, col := range cols {
		fills[col] = op.FillValue
	}
	filled := applyFills(ds, fills)
	return &Outcome{
		Mutated:    true,
		RowsBefore: len(ds.Rows),
		RowsAfter:  len(ds.Rows),
		Message:    fmt.Sprintf("Filled %d missing cells with %q", filled, op.FillValue),
	}, nil
}

func applyFills(ds *dataset.Dataset, fills map[int]string) int {
	filled := 0
	for _, row := range ds.Rows {
		for col, fill := range fills {
			if dataset.IsMissing(row[col]) {
				row[col] = fill
				filled++
			}
		}
	}
	return filled
}

func joinNames(ds *dataset.Dataset, cols []int) string {
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = ds.Headers[col]
	}
	return strings.Join(names, ", ")
}
