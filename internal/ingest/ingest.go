// Package ingest parses uploaded spreadsheets into the table model.
// Readers are dispatched on file extension; the first row is headers.
package ingest

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"sheetprep/internal/dataset"
)

// Options bounds a single ingest.
type Options struct {
	// MaxRows caps data rows (headers excluded); 0 means no cap.
	MaxRows int
}

// CanIngest reports whether the filename has a recognized extension.
func CanIngest(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}

// Read parses the uploaded stream according to the filename extension.
func Read(r io.Reader, filename string, opts Options) (*dataset.Dataset, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(r, opts)
	case ".xlsx", ".xls":
		return readExcel(r, opts)
	}
	return nil, dataset.E(dataset.KindUnsupportedFormat, "unsupported file type %q (want .csv, .xlsx or .xls)", filepath.Ext(filename))
}

func readCSV(r io.Reader, opts Options) (*dataset.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, dataset.Wrap(dataset.KindParseError, err, "read CSV")
	}
	return build(rows, opts)
}

func readExcel(r io.Reader, opts Options) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, dataset.Wrap(dataset.KindParseError, err, "read Excel")
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, dataset.E(dataset.KindParseError, "workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, dataset.Wrap(dataset.KindParseError, err, "read Excel rows")
	}
	return build(rows, opts)
}

// build normalizes headers and pads every row to header width so the
// table invariant (uniform row length, unique headers) holds from here on.
func build(rows [][]string, opts Options) (*dataset.Dataset, error) {
	if len(rows) == 0 {
		return nil, dataset.E(dataset.KindParseError, "file is empty")
	}
	headers := dataset.NormalizeHeaders(rows[0])
	if len(headers) == 0 {
		return nil, dataset.E(dataset.KindParseError, "header row is empty")
	}
	data := rows[1:]
	if opts.MaxRows > 0 && len(data) > opts.MaxRows {
		return nil, dataset.E(dataset.KindFileTooLarge, "too many rows: %d (limit %d)", len(data), opts.MaxRows)
	}
	out := make([][]string, len(data))
	for i, row := range data {
		cells := make([]string, len(headers))
		copy(cells, row)
		out[i] = cells
	}
	return &dataset.Dataset{Headers: headers, Rows: out}, nil
}
