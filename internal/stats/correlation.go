package stats

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"sheetprep/internal/dataset"
)

// CorrMatrix is a pairwise Pearson correlation matrix over named columns.
type CorrMatrix struct {
	Names []string
	R     [][]float64
}

// CorrPair is one entry of the high-correlation listing.
type CorrPair struct {
	A, B string
	R    float64
}

// CorrelationMatrix computes pairwise Pearson correlations. Under SkipNaN
// each pair uses its pairwise-complete observations; under PropagateNaN a
// pair with any missing observation yields NaN.
func CorrelationMatrix(names []string, cols [][]float64, pol NaNPolicy) (*CorrMatrix, error) {
	if len(names) < 2 {
		return nil, dataset.E(dataset.KindTypeMismatch, "correlation needs at least 2 numeric columns, got %d", len(names))
	}
	m := &CorrMatrix{Names: names, R: make([][]float64, len(names))}
	for i := range names {
		m.R[i] = make([]float64, len(names))
		m.R[i][i] = 1
	}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			r := pairCorrelation(cols[i], cols[j], pol)
			m.R[i][j] = r
			m.R[j][i] = r
		}
	}
	return m, nil
}

func pairCorrelation(x, y []float64, pol NaNPolicy) float64 {
	var xs, ys []float64
	for k := range x {
		if math.IsNaN(x[k]) || math.IsNaN(y[k]) {
			if pol == PropagateNaN {
				return math.NaN()
			}
			continue
		}
		xs = append(xs, x[k])
		ys = append(ys, y[k])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// HighPairs lists column pairs with |r| above the threshold.
func (m *CorrMatrix) HighPairs(threshold float64) []CorrPair {
	var pairs []CorrPair
	for i := 0; i < len(m.Names); i++ {
		for j := i + 1; j < len(m.Names); j++ {
			if math.Abs(m.R[i][j]) > threshold {
				pairs = append(pairs, CorrPair{A: m.Names[i], B: m.Names[j], R: m.R[i][j]})
			}
		}
	}
	return pairs
}

// Format renders the matrix plus the |r| > 0.7 pair listing as text.
func (m *CorrMatrix) Format() string {
	var b strings.Builder
	b.WriteString("Correlation matrix:\n")
	width := 8
	for _, n := range m.Names {
		if len(n) > width {
			width = len(n)
		}
	}
	fmt.Fprintf(&b, "%*s", width+2, "")
	for _, n := range m.Names {
		fmt.Fprintf(&b, "%*s", width+2, n)
	}
	b.WriteByte('\n')
	for i, n := range m.Names {
		fmt.Fprintf(&b, "%*s", width+2, n)
		for j := range m.Names {
			fmt.Fprintf(&b, "%*.4f", width+2, m.R[i][j])
		}
		b.WriteByte('\n')
	}
	pairs := m.HighPairs(0.7)
	b.WriteString("\nHighly correlated pairs (|r| > 0.7):\n")
	if len(pairs) == 0 {
		b.WriteString("  none\n")
	}
	for _, p := range pairs {
		fmt.Fprintf(&b, "  %s - %s: %.3f\n", p.A, p.B, p.R)
	}
	return b.String()
}
