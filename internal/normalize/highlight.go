package normalize

import "factsheet/internal/sheet"

// Highlight is the point annotated as the latest estimate on a chart.
type Highlight struct {
	Year  string      `json:"year,omitempty" yaml:"year,omitempty"`
	Value sheet.Value `json:"value" yaml:"value"`
	Found bool        `json:"found" yaml:"found"`
}

// SelectHighlightYear walks priority in order and returns the first year that
// is on the axis and holds a present value at sheet[key][year].
func SelectHighlightYear(axis YearAxis, s sheet.Sheet, key string, priority []string) (string, bool) {
	h := selectHighlight(axis, priority, func(year string) sheet.Value {
		return s.Lookup(key, year)
	})
	return h.Year, h.Found
}

// HighlightRow is SelectHighlightYear returning the value as well.
func HighlightRow(axis YearAxis, s sheet.Sheet, key string, priority []string) Highlight {
	return selectHighlight(axis, priority, func(year string) sheet.Value {
		return s.Lookup(key, year)
	})
}

// HighlightSubfield selects on year-keyed sheets, reading sheet[year][field].
func HighlightSubfield(axis YearAxis, s sheet.Sheet, field string, priority []string) Highlight {
	return selectHighlight(axis, priority, func(year string) sheet.Value {
		return s.Lookup(year, field)
	})
}

// LatestValue returns the first priority year with a present value in
// sheet[key], regardless of any axis.
func LatestValue(s sheet.Sheet, key string, priority []string) (string, sheet.Value) {
	for _, year := range priority {
		if v := s.Lookup(key, year); v.Valid() {
			return year, v
		}
	}
	return "", sheet.Absent()
}

func selectHighlight(axis YearAxis, priority []string, at func(string) sheet.Value) Highlight {
	for _, year := range priority {
		if !axis.Contains(year) {
			continue
		}
		if v := at(year); v.Valid() {
			return Highlight{Year: year, Value: v, Found: true}
		}
	}
	return Highlight{}
}
