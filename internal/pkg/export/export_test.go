package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	err := WriteCSV(&buf, []string{"Name", "Pay"}, [][]string{
		{"Asha", "19600.00"},
		{"Doe, Jane", "0.00"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Name,Pay\nAsha,19600.00\n\"Doe, Jane\",0.00\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer

	err := WriteXLSX(&buf,
		Sheet{Name: "Weekly", Title: "Weekly summary", Headers: []string{"Week", "Present"}, Rows: [][]any{{"2025-08-04", 3}}},
		Sheet{Name: "Monthly", Headers: []string{"Month", "Present"}, Rows: [][]any{{"2025-08", 12}}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Weekly", "Monthly"}, f.GetSheetList())

	title, err := f.GetCellValue("Weekly", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Weekly summary", title)

	header, err := f.GetCellValue("Weekly", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Week", header)

	present, err := f.GetCellValue("Weekly", "B4")
	require.NoError(t, err)
	assert.Equal(t, "3", present)

	month, err := f.GetCellValue("Monthly", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-08", month)
}

func TestWriteXLSX_NoSheets(t *testing.T) {
	assert.Error(t, WriteXLSX(&bytes.Buffer{}))
}
