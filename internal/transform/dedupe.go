package transform

import (
	"strings"

	"sheetprep/internal/dataset"
)

// dropDuplicates removes rows identical across the selected columns (all
// columns by default), keeping the first occurrence. Applying it twice is
// the same as applying it once.
func dropDuplicates(ds *dataset.Dataset, op Op) (*Outcome, error) {
	cols, err := resolveColumns(ds, op.Columns)
	if err != nil {
		return nil, err
	}
	before := len(ds.Rows)
	seen := make(map[string]struct{}, len(ds.Rows))
	kept := ds.Rows[:0:0]
	var key strings.Builder
	for _, row := range ds.Rows {
		key.Reset()
		for _, col := range cols {
			key.WriteString(row[col])
			key.WriteByte(0x1f)
		}
		k := key.String()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, row)
	}
	ds.Rows = kept
	return &Outcome{
		Mutated:    true,
		RowsBefore: before,
		RowsAfter:  len(ds.Rows),
		Message:    shapeMessage("Removed duplicate rows", before, len(ds.Rows)),
	}, nil
}
