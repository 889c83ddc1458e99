package transform

import (
	"fmt"

	"sheetprep/internal/dataset"
	"sheetprep/internal/stats"
)

// Options carries per-deployment knobs into the transformation library.
type Options struct {
	NaNPolicy stats.NaNPolicy
}

// Outcome describes an applied operation: the row delta for mutating
// operations, or a textual statistic summary for analyses.
type Outcome struct {
	Mutated    bool
	RowsBefore int
	RowsAfter  int
	Message    string
	Summary    string
}

// Apply runs one operation against the dataset. Mutating operations either
// fully apply or leave the table untouched; validation and all statistics
// happen before any cell is rewritten.
func Apply(ds *dataset.Dataset, op Op, opts Options) (*Outcome, error) {
	switch op.Kind {
	case KindDropMissing:
		return dropMissing(ds, op)
	case KindFillMean:
		return fillStatistic(ds, op, "mean", stats.Mean)
	case KindFillMedian:
		return fillStatistic(ds, op, "median", stats.Median)
	case KindFillConstant:
		return fillConstant(ds, op)
	case KindOutlierIQR:
		return dropOutliersIQR(ds, op, opts)
	case KindOutlierZScore:
		return dropOutliersZScore(ds, op, opts)
	case KindDropDuplicates:
		return dropDuplicates(ds, op)
	case KindScaleZScore:
		return scaleZScore(ds, op, opts)
	case KindScaleMinMax:
		return scaleMinMax(ds, op, opts)
	case KindCorrelation:
		return correlate(ds, op, opts)
	case KindTTestOneSample, KindTTestTwoSample:
		return tTest(ds, op, opts)
	case KindChiSquare:
		return chiSquare(ds, op)
	}
	return nil, dataset.E(dataset.KindInvalidOperation, "unknown operation kind %d", op.Kind)
}

// resolveColumns maps selected names to indexes, or every column when the
// selection is empty.
func resolveColumns(ds *dataset.Dataset, names []string) ([]int, error) {
	if len(names) == 0 {
		idx := make([]int, len(ds.Headers))
		for i := range ds.Headers {
			idx[i] = i
		}
		return idx, nil
	}
	idx := make([]int, len(names))
	for i, name := range names {
		col, ok := ds.ColumnIndex(name)
		if !ok {
			return nil, dataset.E(dataset.KindUnknownColumn, "column %q does not exist", name)
		}
		idx[i] = col
	}
	return idx, nil
}

// resolveNumericColumns is resolveColumns restricted to numeric columns;
// an explicit non-numeric selection is a TypeMismatch.
func resolveNumericColumns(ds *dataset.Dataset, names []string) ([]int, error) {
	if len(names) == 0 {
		idx := ds.NumericColumnIndexes()
		if len(idx) == 0 {
			return nil, dataset.E(dataset.KindTypeMismatch, "no numeric columns in table")
		}
		return idx, nil
	}
	idx, err := resolveColumns(ds, names)
	if err != nil {
		return nil, err
	}
	for i, col := range idx {
		if !ds.IsNumericColumn(col) {
			return nil, dataset.E(dataset.KindTypeMismatch, "column %q is not numeric", names[i])
		}
	}
	return idx, nil
}

func shapeMessage(verb string, before, after int) string {
	return fmt.Sprintf("%s: %d rows before, %d rows after (%d removed)", verb, before, after, before-after)
}
