// Package factsheet assembles chart payloads from a fetched sheet book.
package factsheet

import (
	"time"

	"factsheet/internal/catalog"
	"factsheet/internal/normalize"
)

// ChartPayload is what the rendering side needs for one card and its
// "view more" popup.
type ChartPayload struct {
	ID           string              `json:"id" yaml:"id"`
	Title        string              `json:"title" yaml:"title"`
	Sheet        string              `json:"sheet" yaml:"sheet"`
	Shape        string              `json:"shape" yaml:"shape"`
	Kind         catalog.Kind        `json:"kind" yaml:"kind"`
	DetailedKind catalog.Kind        `json:"detailed_kind" yaml:"detailed_kind"`
	Prefix       string              `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Unit         string              `json:"unit,omitempty" yaml:"unit,omitempty"`
	YearAxis     normalize.YearAxis  `json:"year_axis" yaml:"year_axis"`
	Focused      normalize.Bundle    `json:"focused" yaml:"focused"`
	Detailed     normalize.Bundle    `json:"detailed" yaml:"detailed"`
	Highlight    normalize.Highlight `json:"highlight" yaml:"highlight"`
	// HighlightSeries names the series the highlight point sits on.
	HighlightSeries string `json:"highlight_series,omitempty" yaml:"highlight_series,omitempty"`
	HighlightLabel  string `json:"highlight_label" yaml:"highlight_label"`
	// DetailSubtitle labels the detailed view.
	DetailSubtitle  string `json:"detail_subtitle" yaml:"detail_subtitle"`
	Estimate        string `json:"estimate" yaml:"estimate"`
	// SheetFound is false when the sheet was missing from the payload.
	SheetFound bool `json:"sheet_found" yaml:"sheet_found"`
}

// Factsheet is one full build: every chart of the catalogue.
type Factsheet struct {
	Charts      []ChartPayload `json:"charts" yaml:"charts"`
	Fallback    bool           `json:"fallback" yaml:"fallback"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
}

// Chart returns the payload with the given id.
func (f Factsheet) Chart(id string) (ChartPayload, bool) {
	for _, c := range f.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return ChartPayload{}, false
}
