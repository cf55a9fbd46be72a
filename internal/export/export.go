// Package export writes a built factsheet to an XLSX workbook: a summary
// sheet plus one sheet per chart holding the focused and detailed series.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"factsheet/internal/factsheet"
	"factsheet/internal/logger"
	"factsheet/internal/normalize"
)

const (
	SummarySheet  = "Summary"
	maxSheetName  = 31
	seriesHeader  = "Series"
	detailedLabel = "Detailed"
)

var summaryHeaders = []string{"Chart", "Title", "Sheet", "Highlight Year", "Highlight Value", "Estimate", "Sheet Found"}

// Workbook builds the workbook in memory. The caller closes it.
func Workbook(fs factsheet.Factsheet) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummary(f, fs); err != nil {
		f.Close()
		return nil, err
	}
	for _, p := range fs.Charts {
		if err := writeChart(f, p); err != nil {
			f.Close()
			return nil, fmt.Errorf("chart %s: %w", p.ID, err)
		}
	}
	return f, nil
}

// WriteWorkbook saves the workbook at path, creating parent directories.
func WriteWorkbook(fs factsheet.Factsheet, path string) error {
	f, err := Workbook(fs)
	if err != nil {
		return err
	}
	defer f.Close()
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	logger.Infof("exported %d charts to %s", len(fs.Charts), path)
	return nil
}

func writeSummary(f *excelize.File, fs factsheet.Factsheet) error {
	header := make([]interface{}, len(summaryHeaders))
	for i, h := range summaryHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return err
	}
	for i, p := range fs.Charts {
		row := []interface{}{p.ID, p.Title, p.Sheet, p.Highlight.Year, p.Highlight.Value.Any(), p.Estimate, p.SheetFound}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}
	if fs.Fallback {
		cell, _ := excelize.CoordinatesToCellName(1, len(fs.Charts)+3)
		if err := f.SetCellValue(SummarySheet, cell, "Source unavailable: fallback data"); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "G", 18)
}

func writeChart(f *excelize.File, p factsheet.ChartPayload) error {
	name := sheetName(p.ID)
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	next, err := writeBundle(f, name, 1, "", p.Focused)
	if err != nil {
		return err
	}
	_, err = writeBundle(f, name, next+1, detailedLabel, p.Detailed)
	return err
}

// writeBundle writes a header row then one row per series starting at row,
// returning the first free row.
func writeBundle(f *excelize.File, name string, row int, label string, b normalize.Bundle) (int, error) {
	if label != "" {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(name, cell, label); err != nil {
			return row, err
		}
		row++
	}
	header := make([]interface{}, 0, len(b.Axis)+1)
	header = append(header, seriesHeader)
	for _, a := range b.Axis {
		header = append(header, a)
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(name, cell, &header); err != nil {
		return row, err
	}
	row++
	for _, s := range b.Series {
		values := make([]interface{}, 0, len(s.Data)+1)
		values = append(values, s.Name)
		for _, v := range s.Data {
			values = append(values, v.Any())
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return row, err
		}
		row++
	}
	return row, nil
}

func sheetName(id string) string {
	if len(id) > maxSheetName {
		return id[:maxSheetName]
	}
	return id
}
