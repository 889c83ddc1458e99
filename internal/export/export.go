// Package export serializes a table back to a downloadable spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sheetprep/internal/dataset"
)

// Filename builds the download name for the given format.
func Filename(format string) string {
	return fmt.Sprintf("processed_data_%s.%s", time.Now().Format("20060102_150405"), format)
}

// ContentType returns the MIME type for a download format.
func ContentType(format string) string {
	if format == "csv" {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// WriteXLSX writes the table as a single-sheet workbook. Cells that parse
// as numbers are written as numbers so the output stays computable.
func WriteXLSX(w io.Writer, ds *dataset.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for col, h := range ds.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, row := range ds.Rows {
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(val)); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

func cellValue(val string) any {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return ""
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return n
	}
	return val
}

// WriteCSV writes the table with a header row.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Headers); err != nil {
		return err
	}
	for _, row := range ds.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
