// Package dataset holds the in-memory table model shared by every other
// package: an ordered header row plus row-major string cells, exactly as
// they came out of the spreadsheet.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// numericRatio is the fraction of non-missing cells that must parse as a
// float for a column to count as numeric.
const numericRatio = 0.8

// Dataset is a parsed spreadsheet. Every row has exactly len(Headers)
// cells and header names are unique; ingest enforces both.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// Shape returns (rows, columns).
func (d *Dataset) Shape() (int, int) {
	return len(d.Rows), len(d.Headers)
}

// Clone returns a deep copy. Operations compute against the original and
// only swap rows in on success, so a failed operation never leaves a
// half-applied table behind.
func (d *Dataset) Clone() *Dataset {
	c := &Dataset{
		Headers: append([]string(nil), d.Headers...),
		Rows:    make([][]string, len(d.Rows)),
	}
	for i, row := range d.Rows {
		c.Rows[i] = append([]string(nil), row...)
	}
	return c
}

// ColumnIndex resolves a header name to its position.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	for i, h := range d.Headers {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// IsMissing reports whether a cell counts as a missing value.
func IsMissing(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "na", "n/a", "nan", "null", "none":
		return true
	}
	return false
}

// IsNumericColumn applies the parse-ratio heuristic to one column:
// at least 80% of the non-missing cells must parse as floats.
func (d *Dataset) IsNumericColumn(col int) bool {
	numeric, total := 0, 0
	for _, row := range d.Rows {
		val := strings.TrimSpace(row[col])
		if IsMissing(val) {
			continue
		}
		total++
		if _, err := strconv.ParseFloat(val, 64); err == nil {
			numeric++
		}
	}
	if total == 0 {
		return false
	}
	return float64(numeric)/float64(total) >= numericRatio
}

// NumericColumnIndexes returns the positions of all numeric columns.
func (d *Dataset) NumericColumnIndexes() []int {
	var cols []int
	for col := range d.Headers {
		if d.IsNumericColumn(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

// FloatColumn extracts one column as floats. Missing or unparsable cells
// become NaN so the stats layer can apply its NaN policy.
func (d *Dataset) FloatColumn(col int) []float64 {
	out := make([]float64, len(d.Rows))
	for i, row := range d.Rows {
		val := strings.TrimSpace(row[col])
		if IsMissing(val) {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
	}
	return out
}

// MissingCounts returns the number of missing cells per column, keyed by
// header name.
func (d *Dataset) MissingCounts() map[string]int {
	counts := make(map[string]int, len(d.Headers))
	for col, h := range d.Headers {
		n := 0
		for _, row := range d.Rows {
			if IsMissing(row[col]) {
				n++
			}
		}
		counts[h] = n
	}
	return counts
}

// FormatFloat renders a float back into a cell.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// NormalizeHeaders trims header cells, replaces blanks with Column_N, and
// deduplicates repeated names with a _2, _3, ... suffix.
func NormalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		if _, dup := seen[h]; dup {
			base := h
			for n := 2; ; n++ {
				cand := fmt.Sprintf("%s_%d", base, n)
				if _, dup := seen[cand]; !dup {
					h = cand
					break
				}
			}
		}
		seen[h] = struct{}{}
		headers[i] = h
	}
	return headers
}
