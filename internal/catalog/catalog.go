// Package catalog declares the charts of the India factsheet: which sheet
// feeds each chart, how the sheet is shaped, and how its values are labelled.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"factsheet/internal/sheet"
)

var ErrUnknownChart = errors.New("catalog: unknown chart")

type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
)

// Fallback policies for country-keyed axes.
const (
	PolicyAnnual = "annual"
	PolicyGrowth = "growth"
)

// Sheet names as published by the factsheet API.
const (
	SheetNominalGDP     = "Nominal GDP"
	SheetRealGDPGrowth  = "Real GDP Growth (%)"
	SheetGDPPerCapita   = "GDP Per Capita"
	SheetPopulation     = "Population"
	SheetUnemployment   = "Unemployment Rate"
	SheetInflation      = "Inflation Rate"
	SheetMedianAge      = "Median Age"
	SheetBondYields     = "10-year Government Bond Yields"
	SheetMerchandise    = "Merchandise Trade Statistics"
	SheetSectorShare    = "Share of A,I,S in GDP"
	SheetAnnualReturns  = "Annual Returns of Major Indices"
	fieldExports        = "Exports"
	fieldImports        = "Imports"
	fieldSurplusDeficit = "Surplus/Deficit"
)

// Chart describes one factsheet card and its "view more" variant.
type Chart struct {
	ID           string
	Title        string
	Sheet        string
	Shape        sheet.Shape
	Kind         Kind
	DetailedKind Kind
	// Prefix and Unit decorate displayed values, e.g. "$" and " Bn".
	Prefix string
	Unit   string
	// Grouped renders whole numbers with digit grouping instead of two
	// decimals.
	Grouped bool

	// Country-keyed settings.
	Policy   string
	Snapshot bool

	// Subfield-keyed settings.
	Fields         []string
	HighlightField string

	// Category-keyed settings.
	Anchor       string
	Categories   []string
	HighlightKey string

	// Priority overrides the configured priority years for this chart.
	Priority []string

	// DetailTitle labels the detailed view; empty picks one from the shape.
	DetailTitle string
}

// DetailSubtitle returns the label of the chart's detailed view.
func (c Chart) DetailSubtitle() string {
	if c.DetailTitle != "" {
		return c.DetailTitle
	}
	switch c.Shape {
	case sheet.ShapeCountryKeyed:
		if c.Snapshot {
			return "Latest value by country"
		}
		return "All countries"
	case sheet.ShapeSubfieldKeyed:
		return strings.Join(c.Fields, ", ")
	default:
		return "All series"
	}
}

// Default returns the eleven charts of the factsheet in page order.
func Default() []Chart {
	return []Chart{
		{ID: "nominal-gdp", Title: "Nominal GDP", Sheet: SheetNominalGDP, Shape: sheet.ShapeCountryKeyed,
			Kind: KindLine, DetailedKind: KindLine, Prefix: "$", Unit: " Bn", Grouped: true, Policy: PolicyAnnual},
		{ID: "real-gdp-growth", Title: "Real GDP Growth", Sheet: SheetRealGDPGrowth, Shape: sheet.ShapeCountryKeyed,
			Kind: KindLine, DetailedKind: KindLine, Unit: "%", Policy: PolicyGrowth},
		{ID: "gdp-per-capita", Title: "GDP Per Capita", Sheet: SheetGDPPerCapita, Shape: sheet.ShapeCountryKeyed,
			Kind: KindLine, DetailedKind: KindLine, Prefix: "$", Policy: PolicyAnnual},
		{ID: "population", Title: "Population", Sheet: SheetPopulation, Shape: sheet.ShapeCountryKeyed,
			Kind: KindLine, DetailedKind: KindBar, Unit: "M", Policy: PolicyAnnual, Snapshot: true},
		{ID: "unemployment-rate", Title: "Unemployment Rate", Sheet: SheetUnemployment, Shape: sheet.ShapeCountryKeyed,
			Kind: KindLine, DetailedKind: KindLine, Unit: "%", Policy: PolicyGrowth},
		{ID: "government-bond", Title: "10-year Government Bond Yields", Sheet: SheetBondYields, Shape: sheet.ShapeCountryKeyed,
			Kind: KindLine, DetailedKind: KindLine, Unit: "%", Policy: PolicyGrowth},
		{ID: "merchandise-trade", Title: "Merchandise Trade", Sheet: SheetMerchandise, Shape: sheet.ShapeSubfieldKeyed,
			Kind: KindLine, DetailedKind: KindLine, Unit: "B",
			Fields: []string{fieldExports, fieldImports, fieldSurplusDeficit}, HighlightField: fieldExports,
			Priority: []string{"2025", "2024-25"}},
		{ID: "sector-share", Title: "Share of Agriculture, Industry & Services in GDP", Sheet: SheetSectorShare, Shape: sheet.ShapeCategoryKeyed,
			Kind: KindBar, DetailedKind: KindBar, Unit: "%",
			Anchor: "Agriculture", Categories: []string{"Agriculture", "Industry", "Services"}, HighlightKey: "Services",
			DetailTitle: "All sectors"},
		{ID: "annual-returns", Title: "Annual Returns of Major Indices", Sheet: SheetAnnualReturns, Shape: sheet.ShapeCategoryKeyed,
			Kind: KindLine, DetailedKind: KindLine, Anchor: "SENSEX", HighlightKey: "SENSEX",
			DetailTitle: "All indices"},
		{ID: "median-age", Title: "Median Age", Sheet: SheetMedianAge, Shape: sheet.ShapeCountryKeyed,
			Kind: KindLine, DetailedKind: KindLine, Unit: " years", Policy: PolicyAnnual},
		{ID: "inflation-rate", Title: "Inflation Rate", Sheet: SheetInflation, Shape: sheet.ShapeCountryKeyed,
			Kind: KindLine, DetailedKind: KindLine, Unit: "%", Policy: PolicyGrowth},
	}
}

// SheetNames lists the distinct sheets the charts read, in chart order.
func SheetNames(charts []Chart) []string {
	seen := make(map[string]struct{}, len(charts))
	out := make([]string, 0, len(charts))
	for _, c := range charts {
		if _, ok := seen[c.Sheet]; ok {
			continue
		}
		seen[c.Sheet] = struct{}{}
		out = append(out, c.Sheet)
	}
	return out
}

// Shapes maps each sheet name to the shape its charts expect.
func Shapes(charts []Chart) map[string]sheet.Shape {
	out := make(map[string]sheet.Shape, len(charts))
	for _, c := range charts {
		out[c.Sheet] = c.Shape
	}
	return out
}

func Find(charts []Chart, id string) (Chart, error) {
	for _, c := range charts {
		if c.ID == id {
			return c, nil
		}
	}
	return Chart{}, fmt.Errorf("%w: %s", ErrUnknownChart, id)
}

// Validate checks that ids are unique and each chart carries the settings its
// shape needs.
func Validate(charts []Chart) error {
	ids := make(map[string]struct{}, len(charts))
	shapes := make(map[string]sheet.Shape, len(charts))
	for _, c := range charts {
		if c.ID == "" || c.Sheet == "" {
			return fmt.Errorf("catalog: chart %q missing id or sheet", c.ID)
		}
		if _, dup := ids[c.ID]; dup {
			return fmt.Errorf("catalog: duplicate chart id %s", c.ID)
		}
		ids[c.ID] = struct{}{}
		if prev, ok := shapes[c.Sheet]; ok && prev != c.Shape {
			return fmt.Errorf("catalog: sheet %q used as both %s and %s", c.Sheet, prev, c.Shape)
		}
		shapes[c.Sheet] = c.Shape
		switch c.Shape {
		case sheet.ShapeSubfieldKeyed:
			if len(c.Fields) == 0 {
				return fmt.Errorf("catalog: chart %s needs fields", c.ID)
			}
		case sheet.ShapeCategoryKeyed:
			if c.Anchor == "" {
				return fmt.Errorf("catalog: chart %s needs an anchor row", c.ID)
			}
		case sheet.ShapeCountryKeyed:
		default:
			return fmt.Errorf("catalog: chart %s has unknown shape", c.ID)
		}
	}
	return nil
}
