// Package render draws factsheet payloads as go-echarts pages: one compact
// card per chart followed by its detailed comparison view.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"factsheet/internal/catalog"
	"factsheet/internal/factsheet"
	"factsheet/internal/logger"
	"factsheet/internal/normalize"
)

const (
	cardHeightPx     = 260
	detailedHeightPx = 420
	defaultWidthPx   = 960
)

// Options controls page layout only; there is no theming.
type Options struct {
	PageTitle string
	WidthPx   int
}

func (o Options) width() string {
	w := o.WidthPx
	if w <= 0 {
		w = defaultWidthPx
	}
	return fmt.Sprintf("%dpx", w)
}

// Page builds the page. Charts with an empty axis have nothing to draw and
// are skipped with a warning; the rest of the page is unaffected.
func Page(fs factsheet.Factsheet, o Options) *components.Page {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	if o.PageTitle != "" {
		page.PageTitle = o.PageTitle
	}
	for _, p := range fs.Charts {
		if len(p.YearAxis) == 0 && len(p.Focused.Axis) == 0 {
			logger.Warnf("chart %s has no axis; skipping render", p.ID)
			continue
		}
		page.AddCharts(
			buildChart(p, p.Kind, p.Focused, p.ID, p.Title, p.Estimate, cardHeightPx, true, o),
			buildChart(p, p.DetailedKind, p.Detailed, "detailed-"+p.ID, p.Title, p.DetailSubtitle, detailedHeightPx, false, o),
		)
	}
	return page
}

// HTML renders the page to bytes.
func HTML(fs factsheet.Factsheet, o Options) ([]byte, error) {
	page := Page(fs, o)
	if len(page.Charts) == 0 {
		logger.Warnf("no charts rendered; page will be empty")
	}
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteHTML renders the page into path, creating parent directories.
func WriteHTML(fs factsheet.Factsheet, o Options, path string) error {
	html, err := HTML(fs, o)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, html, 0o644)
}

// PageHeight estimates the full page height for screenshots.
func PageHeight(fs factsheet.Factsheet) int {
	h := 0
	for _, p := range fs.Charts {
		if len(p.YearAxis) == 0 && len(p.Focused.Axis) == 0 {
			continue
		}
		h += cardHeightPx + detailedHeightPx
	}
	if h < 520 {
		h = 520
	}
	return h
}

func buildChart(p factsheet.ChartPayload, kind catalog.Kind, b normalize.Bundle, id, title, subtitle string, height int, highlight bool, o Options) components.Charter {
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: id,
			Width:   o.width(),
			Height:  fmt.Sprintf("%dpx", height),
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(b.Series) > 1), Top: "bottom"}),
	}
	var mark []charts.SeriesOpts
	if highlight && p.Highlight.Found {
		mark = append(mark,
			charts.WithMarkPointNameCoordItemOpts(opts.MarkPointNameCoordItem{
				Name:       p.HighlightLabel,
				Coordinate: []interface{}{p.Highlight.Year, p.Highlight.Value.Any()},
			}),
			charts.WithMarkPointStyleOpts(opts.MarkPointStyle{Label: &opts.Label{Show: opts.Bool(true)}}),
		)
	}

	if kind == catalog.KindBar {
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(b.Axis)
		for _, s := range b.Series {
			bar.AddSeries(s.Name, barData(s), seriesOpts(s, p.HighlightSeries, mark)...)
		}
		return bar
	}
	line := charts.NewLine()
	line.SetGlobalOptions(global...)
	line.SetXAxis(b.Axis)
	for _, s := range b.Series {
		line.AddSeries(s.Name, lineData(s), seriesOpts(s, p.HighlightSeries, mark)...)
	}
	return line
}

func seriesOpts(s normalize.Series, highlightSeries string, mark []charts.SeriesOpts) []charts.SeriesOpts {
	if s.Name != highlightSeries {
		return nil
	}
	return mark
}

func lineData(s normalize.Series) []opts.LineData {
	out := make([]opts.LineData, len(s.Data))
	for i, v := range s.Data {
		out[i] = opts.LineData{Value: v.Any()}
	}
	return out
}

func barData(s normalize.Series) []opts.BarData {
	out := make([]opts.BarData, len(s.Data))
	for i, v := range s.Data {
		out[i] = opts.BarData{Value: v.Any()}
	}
	return out
}
