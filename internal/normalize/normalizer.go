package normalize

import (
	"fmt"

	"factsheet/internal/sheet"
)

// View selects the focused (single entity) or detailed (comparison) bundle.
type View int

const (
	ViewFocused View = iota
	ViewDetailed
)

// Normalizer turns one sheet shape into chart-ready bundles.
type Normalizer interface {
	Shape() sheet.Shape
	ResolveAxis(s sheet.Sheet) YearAxis
	BuildSeries(s sheet.Sheet, axis YearAxis, view View) Bundle
	Highlight(s sheet.Sheet, axis YearAxis) Highlight
}

// Result is everything a chart needs from one sheet.
type Result struct {
	Axis      YearAxis
	Focused   Bundle
	Detailed  Bundle
	Highlight Highlight
}

// Run resolves the axis once and derives both views and the highlight from it.
func Run(n Normalizer, s sheet.Sheet) Result {
	axis := n.ResolveAxis(s)
	return Result{
		Axis:      axis,
		Focused:   n.BuildSeries(s, axis, ViewFocused),
		Detailed:  n.BuildSeries(s, axis, ViewDetailed),
		Highlight: n.Highlight(s, axis),
	}
}

// Params is the union of settings the three normalizers draw from.
type Params struct {
	Focus          string
	Compare        []string
	Fallback       []string
	Priority       []string
	SnapshotName   string
	Fields         []string
	HighlightField string
	Anchor         string
	Categories     []string
	HighlightKey   string
}

// For picks the normalizer matching a sheet's load-time shape tag.
func For(shape sheet.Shape, p Params) (Normalizer, error) {
	switch shape {
	case sheet.ShapeCountryKeyed:
		return &CountryKeyed{
			Focus:        p.Focus,
			Compare:      p.Compare,
			Fallback:     p.Fallback,
			Priority:     p.Priority,
			SnapshotName: p.SnapshotName,
		}, nil
	case sheet.ShapeSubfieldKeyed:
		return &SubfieldKeyed{
			Fields:         p.Fields,
			HighlightField: p.HighlightField,
			Priority:       p.Priority,
		}, nil
	case sheet.ShapeCategoryKeyed:
		return &CategoryKeyed{
			Anchor:       p.Anchor,
			Categories:   p.Categories,
			HighlightKey: p.HighlightKey,
			Priority:     p.Priority,
		}, nil
	default:
		return nil, fmt.Errorf("normalize: no normalizer for shape %s", shape)
	}
}

// CountryKeyed handles sheets with one row per country and one column per
// year. The axis comes from the focus row with fallback top-up.
type CountryKeyed struct {
	Focus    string
	Compare  []string
	Fallback []string
	Priority []string
	// SnapshotName switches the detailed view to one bar per compared
	// country holding its latest priority-year value.
	SnapshotName string
}

func (c *CountryKeyed) Shape() sheet.Shape { return sheet.ShapeCountryKeyed }

func (c *CountryKeyed) ResolveAxis(s sheet.Sheet) YearAxis {
	return ResolveYears(s, c.Focus, c.Fallback)
}

func (c *CountryKeyed) BuildSeries(s sheet.Sheet, axis YearAxis, view View) Bundle {
	if view == ViewDetailed {
		if c.SnapshotName != "" {
			return Snapshot(s, c.SnapshotName, c.Compare, c.Priority)
		}
		return Bundle{Axis: axis.Labels(), Series: BuildSeries(s, axis, c.Compare)}
	}
	return Bundle{Axis: axis.Labels(), Series: BuildSeries(s, axis, []string{c.Focus})}
}

func (c *CountryKeyed) Highlight(s sheet.Sheet, axis YearAxis) Highlight {
	return HighlightRow(axis, s, c.Focus, c.Priority)
}

// SubfieldKeyed handles year-keyed sheets holding a fixed set of named
// sub-fields per year. Both views carry the same series.
type SubfieldKeyed struct {
	Fields         []string
	HighlightField string
	Priority       []string
}

func (t *SubfieldKeyed) Shape() sheet.Shape { return sheet.ShapeSubfieldKeyed }

func (t *SubfieldKeyed) ResolveAxis(s sheet.Sheet) YearAxis {
	return TopLevelYears(s)
}

func (t *SubfieldKeyed) BuildSeries(s sheet.Sheet, axis YearAxis, _ View) Bundle {
	return Bundle{Axis: axis.Labels(), Series: BuildSubfieldSeries(s, axis, t.Fields)}
}

func (t *SubfieldKeyed) Highlight(s sheet.Sheet, axis YearAxis) Highlight {
	field := t.HighlightField
	if field == "" && len(t.Fields) > 0 {
		field = t.Fields[0]
	}
	return HighlightSubfield(axis, s, field, t.Priority)
}

// CategoryKeyed handles sheets whose row keys are the series names. The axis
// is every column under the anchor row. With no fixed Categories the series
// are every row of the sheet in document order.
type CategoryKeyed struct {
	Anchor       string
	Categories   []string
	HighlightKey string
	Priority     []string
}

func (k *CategoryKeyed) Shape() sheet.Shape { return sheet.ShapeCategoryKeyed }

func (k *CategoryKeyed) ResolveAxis(s sheet.Sheet) YearAxis {
	return AnchorYears(s, k.Anchor)
}

func (k *CategoryKeyed) BuildSeries(s sheet.Sheet, axis YearAxis, _ View) Bundle {
	keys := k.Categories
	if len(keys) == 0 {
		keys = s.RowKeys()
	}
	return Bundle{Axis: axis.Labels(), Series: BuildSeries(s, axis, keys)}
}

func (k *CategoryKeyed) Highlight(s sheet.Sheet, axis YearAxis) Highlight {
	key := k.HighlightKey
	if key == "" {
		key = k.Anchor
	}
	return HighlightRow(axis, s, key, k.Priority)
}
