package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sheetprep/internal/dataset"
)

func sample() *dataset.Dataset {
	return &dataset.Dataset{
		Headers: []string{"name", "score"},
		Rows: [][]string{
			{"alice", "1.5"},
			{"bob", ""},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))
	assert.Equal(t, "name,score\nalice,1.5\nbob,\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "score"}, rows[0])
	assert.Equal(t, "alice", rows[1][0])
	assert.Equal(t, "1.5", rows[1][1])

	// numeric cells survive as numbers
	v, err := f.GetCellValue(f.GetSheetName(0), "B2")
	require.NoError(t, err)
	assert.Equal(t, "1.5", v)
}

func TestFilenameAndContentType(t *testing.T) {
	assert.True(t, strings.HasPrefix(Filename("csv"), "processed_data_"))
	assert.True(t, strings.HasSuffix(Filename("xlsx"), ".xlsx"))
	assert.Equal(t, "text/csv", ContentType("csv"))
	assert.Contains(t, ContentType("xlsx"), "spreadsheetml")
}
