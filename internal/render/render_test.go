package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factsheet/internal/catalog"
	"factsheet/internal/factsheet"
	"factsheet/internal/normalize"
	"factsheet/internal/sheet"
)

func sampleFactsheet() factsheet.Factsheet {
	axis := []string{"2023", "2024", "2025"}
	return factsheet.Factsheet{Charts: []factsheet.ChartPayload{
		{
			ID:           "nominal-gdp",
			Title:        "Nominal GDP",
			Kind:         catalog.KindLine,
			DetailedKind: catalog.KindLine,
			YearAxis:     axis,
			Focused: normalize.Bundle{Axis: axis, Series: []normalize.Series{
				{Name: "India", Data: []sheet.Value{sheet.Num(3000), sheet.Absent(), sheet.Num(4187.4)}},
			}},
			Detailed: normalize.Bundle{Axis: axis, Series: []normalize.Series{
				{Name: "India", Data: []sheet.Value{sheet.Num(3000), sheet.Absent(), sheet.Num(4187.4)}},
				{Name: "Japan", Data: []sheet.Value{sheet.Absent(), sheet.Num(4100), sheet.Absent()}},
			}},
			Highlight:       normalize.Highlight{Year: "2025", Value: sheet.Num(4187.4), Found: true},
			DetailSubtitle:  "Compared across countries",
			HighlightSeries: "India",
			HighlightLabel:  "2025 Estimate",
			Estimate:        "Latest 2025 Estimate",
			SheetFound:      true,
		},
		{
			ID:           "population",
			Title:        "Population Trend",
			Kind:         catalog.KindBar,
			DetailedKind: catalog.KindBar,
			Focused: normalize.Bundle{Axis: []string{"India"}, Series: []normalize.Series{
				{Name: "Population", Data: []sheet.Value{sheet.Num(1450)}},
			}},
			Detailed: normalize.Bundle{Axis: []string{"India"}, Series: []normalize.Series{
				{Name: "Population", Data: []sheet.Value{sheet.Num(1450)}},
			}},
		},
		{ID: "empty-chart", Title: "Nothing Here", Kind: catalog.KindLine},
	}}
}

func TestPageSkipsChartsWithoutAxis(t *testing.T) {
	page := Page(sampleFactsheet(), Options{PageTitle: "Fact Sheet"})
	assert.Len(t, page.Charts, 4, "two views for each drawable chart")
	assert.Equal(t, "Fact Sheet", page.PageTitle)
}

func TestHTMLContainsChartsAndHighlight(t *testing.T) {
	html, err := HTML(sampleFactsheet(), Options{WidthPx: 800})
	require.NoError(t, err)
	out := string(html)

	assert.Contains(t, out, "Nominal GDP")
	assert.Contains(t, out, "Latest 2025 Estimate")
	assert.Contains(t, out, "Population Trend")
	assert.Contains(t, out, "Japan")
	assert.Contains(t, out, "Compared across countries", "detailed view uses the payload subtitle")
	assert.NotContains(t, out, "All countries")
	assert.Contains(t, out, "800px")
	assert.NotContains(t, out, "Nothing Here")
	assert.GreaterOrEqual(t, strings.Count(out, "Nominal GDP"), 2, "card and detailed view")
}

func TestHTMLEmptyFactsheet(t *testing.T) {
	html, err := HTML(factsheet.Factsheet{}, Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, html)
}

func TestWriteHTMLCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "factsheet.html")
	require.NoError(t, WriteHTML(sampleFactsheet(), Options{}, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Nominal GDP")
}

func TestPageHeight(t *testing.T) {
	assert.Equal(t, 2*(cardHeightPx+detailedHeightPx), PageHeight(sampleFactsheet()))
	assert.Equal(t, 520, PageHeight(factsheet.Factsheet{}))
}
