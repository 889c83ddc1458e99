package transform

import (
	"fmt"
	"math"
	"strings"

	"sheetprep/internal/dataset"
	"sheetprep/internal/stats"
)

func correlate(ds *dataset.Dataset, op Op, opts Options) (*Outcome, error) {
	cols, err := resolveNumericColumns(ds, op.Columns)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cols))
	floats := make([][]float64, len(cols))
	for i, col := range cols {
		names[i] = ds.Headers[col]
		floats[i] = ds.FloatColumn(col)
	}
	m, err := stats.CorrelationMatrix(names, floats, opts.NaNPolicy)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		RowsBefore: len(ds.Rows),
		RowsAfter:  len(ds.Rows),
		Message:    fmt.Sprintf("Correlation analysis across %d numeric columns", len(names)),
		Summary:    m.Format(),
	}, nil
}

func tTest(ds *dataset.Dataset, op Op, opts Options) (*Outcome, error) {
	cols, err := resolveNumericColumns(ds, []string{op.Column1})
	if err != nil {
		return nil, err
	}
	xs := ds.FloatColumn(cols[0])

	var res stats.TTest
	var b strings.Builder
	if op.Kind == KindTTestTwoSample {
		cols2, err := resolveNumericColumns(ds, []string{op.Column2})
		if err != nil {
			return nil, err
		}
		ys := ds.FloatColumn(cols2[0])
		res, err = stats.TwoSampleTTest(xs, ys, opts.NaNPolicy)
		if err != nil {
			return nil, err
		}
		b.WriteString("Two-sample t-test (pooled variance)\n")
		fmt.Fprintf(&b, "%s: n = %d, mean = %.4f\n", op.Column1, res.N1, res.Mean1)
		fmt.Fprintf(&b, "%s: n = %d, mean = %.4f\n", op.Column2, res.N2, res.Mean2)
	} else {
		res, err = stats.OneSampleTTest(xs, op.TestValue, opts.NaNPolicy)
		if err != nil {
			return nil, err
		}
		b.WriteString("One-sample t-test\n")
		fmt.Fprintf(&b, "%s: n = %d, mean = %.4f\n", op.Column1, res.N1, res.Mean1)
		fmt.Fprintf(&b, "hypothesized mean = %g\n", op.TestValue)
	}
	fmt.Fprintf(&b, "t = %.4f, p-value = %.4f, df = %g\n", res.Statistic, res.PValue, res.DF)
	switch {
	case math.IsNaN(res.PValue):
		b.WriteString("p-value is undefined (missing values propagated)\n")
	case res.PValue < 0.05:
		b.WriteString("Reject the null hypothesis at the 0.05 level\n")
	default:
		b.WriteString("Fail to reject the null hypothesis at the 0.05 level\n")
	}
	return &Outcome{
		RowsBefore: len(ds.Rows),
		RowsAfter:  len(ds.Rows),
		Message:    fmt.Sprintf("t-test: t = %.4f, p = %.4f", res.Statistic, res.PValue),
		Summary:    b.String(),
	}, nil
}

func chiSquare(ds *dataset.Dataset, op Op) (*Outcome, error) {
	cols, err := resolveColumns(ds, []string{op.Column1, op.Column2})
	if err != nil {
		return nil, err
	}
	a := make([]string, len(ds.Rows))
	c := make([]string, len(ds.Rows))
	for i, row := range ds.Rows {
		a[i] = row[cols[0]]
		c[i] = row[cols[1]]
	}
	res, err := stats.ChiSquareTest(a, c)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		RowsBefore: len(ds.Rows),
		RowsAfter:  len(ds.Rows),
		Message:    fmt.Sprintf("Chi-squared test: chi2 = %.4f, p = %.4f, dof = %d", res.Statistic, res.PValue, res.DF),
		Summary:    res.Format(ds.Headers[cols[0]], ds.Headers[cols[1]]),
	}, nil
}
