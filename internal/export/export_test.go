package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"factsheet/internal/factsheet"
	"factsheet/internal/normalize"
	"factsheet/internal/sheet"
)

func sampleFactsheet() factsheet.Factsheet {
	axis := []string{"2023", "2024", "2025"}
	return factsheet.Factsheet{Charts: []factsheet.ChartPayload{{
		ID:    "nominal-gdp",
		Title: "Nominal GDP",
		Sheet: "Nominal GDP",
		Focused: normalize.Bundle{Axis: axis, Series: []normalize.Series{
			{Name: "India", Data: []sheet.Value{sheet.Num(3000), sheet.Absent(), sheet.Num(4187.4)}},
		}},
		Detailed: normalize.Bundle{Axis: axis, Series: []normalize.Series{
			{Name: "India", Data: []sheet.Value{sheet.Num(3000), sheet.Absent(), sheet.Num(4187.4)}},
			{Name: "China", Data: []sheet.Value{sheet.Absent(), sheet.Num(0), sheet.Absent()}},
		}},
		Highlight:  normalize.Highlight{Year: "2025", Value: sheet.Num(4187.4), Found: true},
		Estimate:   "$4,187 Bn 2025 Estimate",
		SheetFound: true,
	}}}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "factsheet.xlsx")
	require.NoError(t, WriteWorkbook(sampleFactsheet(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, "nominal-gdp"}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, summaryHeaders, summary[0])
	assert.Equal(t, "nominal-gdp", summary[1][0])
	assert.Equal(t, "4187.4", summary[1][4])
	assert.Equal(t, "$4,187 Bn 2025 Estimate", summary[1][5])

	rows, err := f.GetRows("nominal-gdp")
	require.NoError(t, err)
	assert.Equal(t, []string{"Series", "2023", "2024", "2025"}, rows[0])
	assert.Equal(t, []string{"India", "3000", "", "4187.4"}, rows[1])
	assert.Equal(t, detailedLabel, rows[3][0])
	assert.Equal(t, []string{"Series", "2023", "2024", "2025"}, rows[4])
	require.GreaterOrEqual(t, len(rows[6]), 3)
	assert.Equal(t, []string{"China", "", "0"}, rows[6][:3], "present zero survives")
}

func TestWorkbookFallbackNote(t *testing.T) {
	fs := sampleFactsheet()
	fs.Fallback = true
	f, err := Workbook(fs)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(SummarySheet, "A4")
	require.NoError(t, err)
	assert.Contains(t, v, "fallback")
}

func TestSheetNameTruncated(t *testing.T) {
	assert.Len(t, sheetName("a-very-long-chart-identifier-that-overflows"), maxSheetName)
	assert.Equal(t, "short", sheetName("short"))
}
