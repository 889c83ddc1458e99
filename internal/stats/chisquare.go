package stats

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"sheetprep/internal/dataset"
)

// ChiSquare is the result of a chi-squared independence test between two
// categorical columns, including the contingency table it was run on.
type ChiSquare struct {
	Statistic float64
	PValue    float64
	DF        int
	RowLabels []string
	ColLabels []string
	Observed  [][]float64
	Expected  [][]float64
}

// ChiSquareTest cross-tabulates two categorical columns and tests for
// independence. Rows where either cell is missing are skipped. On one
// degree of freedom the sign-based Yates continuity adjustment is applied,
// matching the upstream reference implementation.
func ChiSquareTest(a, b []string) (*ChiSquare, error) {
	if len(a) != len(b) {
		return nil, dataset.E(dataset.KindParseError, "column lengths differ: %d vs %d", len(a), len(b))
	}
	var rowLabels, colLabels []string
	rowIdx := map[string]int{}
	colIdx := map[string]int{}
	type cell struct{ r, c int }
	counts := map[cell]float64{}
	n := 0.0
	for k := range a {
		av, bv := strings.TrimSpace(a[k]), strings.TrimSpace(b[k])
		if dataset.IsMissing(av) || dataset.IsMissing(bv) {
			continue
		}
		r, ok := rowIdx[av]
		if !ok {
			r = len(rowLabels)
			rowIdx[av] = r
			rowLabels = append(rowLabels, av)
		}
		c, ok := colIdx[bv]
		if !ok {
			c = len(colLabels)
			colIdx[bv] = c
			colLabels = append(colLabels, bv)
		}
		counts[cell{r, c}]++
		n++
	}
	if len(rowLabels) < 2 || len(colLabels) < 2 {
		return nil, dataset.E(dataset.KindTypeMismatch, "chi-squared test needs at least 2 categories per column, got %d and %d", len(rowLabels), len(colLabels))
	}

	observed := make([][]float64, len(rowLabels))
	rowSums := make([]float64, len(rowLabels))
	colSums := make([]float64, len(colLabels))
	for r := range rowLabels {
		observed[r] = make([]float64, len(colLabels))
		for c := range colLabels {
			v := counts[cell{r, c}]
			observed[r][c] = v
			rowSums[r] += v
			colSums[c] += v
		}
	}

	dof := (len(rowLabels) - 1) * (len(colLabels) - 1)
	expected := make([][]float64, len(rowLabels))
	chi2 := 0.0
	for r := range rowLabels {
		expected[r] = make([]float64, len(colLabels))
		for c := range colLabels {
			e := rowSums[r] * colSums[c] / n
			expected[r][c] = e
			if e == 0 {
				return nil, dataset.E(dataset.KindDivideByZero, "chi-squared test undefined: expected frequency is zero for (%s, %s)", rowLabels[r], colLabels[c])
			}
			o := observed[r][c]
			if dof == 1 {
				// Yates: nudge the observed count half a unit
				// toward the expected one.
				o += 0.5 * sign(e-o)
			}
			d := o - e
			chi2 += d * d / e
		}
	}

	dist := distuv.ChiSquared{K: float64(dof)}
	return &ChiSquare{
		Statistic: chi2,
		PValue:    1 - dist.CDF(chi2),
		DF:        dof,
		RowLabels: rowLabels,
		ColLabels: colLabels,
		Observed:  observed,
		Expected:  expected,
	}, nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Format renders the contingency table and the test result as text.
func (cs *ChiSquare) Format(colA, colB string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contingency table (%s x %s):\n", colA, colB)
	width := 8
	for _, l := range append(append([]string(nil), cs.RowLabels...), cs.ColLabels...) {
		if len(l) > width {
			width = len(l)
		}
	}
	fmt.Fprintf(&b, "%*s", width+2, "")
	for _, l := range cs.ColLabels {
		fmt.Fprintf(&b, "%*s", width+2, l)
	}
	b.WriteByte('\n')
	for r, l := range cs.RowLabels {
		fmt.Fprintf(&b, "%*s", width+2, l)
		for c := range cs.ColLabels {
			fmt.Fprintf(&b, "%*.0f", width+2, cs.Observed[r][c])
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nchi2 = %.4f, p-value = %.4f, dof = %d\n", cs.Statistic, cs.PValue, cs.DF)
	if math.IsNaN(cs.PValue) {
		b.WriteString("p-value is undefined for this table\n")
	} else if cs.PValue < 0.05 {
		b.WriteString("Reject independence at the 0.05 level\n")
	} else {
		b.WriteString("No evidence against independence at the 0.05 level\n")
	}
	return b.String()
}
