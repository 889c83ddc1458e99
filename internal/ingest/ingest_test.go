package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sheetprep/internal/dataset"
)

func TestReadCSV(t *testing.T) {
	in := strings.NewReader("name,age\nalice,30\nbob,25\n")
	ds, err := Read(in, "people.csv", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, ds.Headers)
	assert.Equal(t, [][]string{{"alice", "30"}, {"bob", "25"}}, ds.Rows)
}

func TestReadCSVPadsShortRows(t *testing.T) {
	in := strings.NewReader("a,b,c\n1,2\n4,5,6\n")
	ds, err := Read(in, "data.csv", Options{})
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, []string{"1", "2", ""}, ds.Rows[0])
}

func TestReadCSVHeaderNormalization(t *testing.T) {
	in := strings.NewReader("a,,a\n1,2,3\n")
	ds, err := Read(in, "data.csv", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Column_2", "a_2"}, ds.Headers)
}

func TestReadXLSXRoundTrip(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "name"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "score"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "alice"))
	require.NoError(t, f.SetCellValue(sheet, "B2", 1.5))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	ds, err := Read(bytes.NewReader(buf.Bytes()), "scores.xlsx", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "score"}, ds.Headers)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "alice", ds.Rows[0][0])
	assert.Equal(t, "1.5", ds.Rows[0][1])
}

func TestUnsupportedExtension(t *testing.T) {
	_, err := Read(strings.NewReader("hello"), "notes.txt", Options{})
	assert.Equal(t, dataset.KindUnsupportedFormat, dataset.KindOf(err))
	assert.False(t, CanIngest("notes.txt"))
	assert.True(t, CanIngest("Data.XLSX"))
}

func TestEmptyFile(t *testing.T) {
	_, err := Read(strings.NewReader(""), "empty.csv", Options{})
	assert.Equal(t, dataset.KindParseError, dataset.KindOf(err))
}

func TestMaxRows(t *testing.T) {
	in := strings.NewReader("a\n1\n2\n3\n")
	_, err := Read(in, "data.csv", Options{MaxRows: 2})
	assert.Equal(t, dataset.KindFileTooLarge, dataset.KindOf(err))
}
