// Package normalize turns sparse indicator sheets into chart-ready series
// aligned to a shared year axis.
package normalize

import (
	"sort"

	"factsheet/internal/sheet"
)

// MinAxisLen is the number of years a sheet must expose to count as having
// data; shorter axes are topped up from the fallback list.
const MinAxisLen = 2

// YearAxis is an ascending, duplicate-free list of year labels.
type YearAxis []string

// Index returns the position of year, or -1.
func (a YearAxis) Index(year string) int {
	for i, y := range a {
		if y == year {
			return i
		}
	}
	return -1
}

func (a YearAxis) Contains(year string) bool { return a.Index(year) >= 0 }

// Labels returns the axis as plain strings.
func (a YearAxis) Labels() []string {
	out := make([]string, len(a))
	copy(out, a)
	return out
}

// ResolveYears collects the numeric column keys under sheet[focus], sorted.
// When fewer than MinAxisLen years are observed (including a missing focus
// row), fallback entries are merged in order, skipping duplicates, until the
// axis is long enough or the fallback runs out.
func ResolveYears(s sheet.Sheet, focus string, fallback []string) YearAxis {
	observed := numericColumns(s, focus)
	if len(observed) >= MinAxisLen {
		return sortAxis(observed)
	}
	seen := make(map[string]struct{}, len(observed)+len(fallback))
	for _, y := range observed {
		seen[y] = struct{}{}
	}
	out := observed
	for _, y := range fallback {
		if len(out) >= MinAxisLen {
			break
		}
		if y == "" {
			continue
		}
		if _, dup := seen[y]; dup {
			continue
		}
		seen[y] = struct{}{}
		out = append(out, y)
	}
	return sortAxis(out)
}

// AnchorYears returns every column key under sheet[anchor], sorted, with no
// fallback. A missing anchor row yields an empty axis.
func AnchorYears(s sheet.Sheet, anchor string) YearAxis {
	row, ok := s.Row(anchor)
	if !ok {
		return YearAxis{}
	}
	return sortAxis(nonEmpty(row.Columns()))
}

// TopLevelYears returns every row key of the sheet, sorted. Used by sheets
// whose rows are the years (merchandise trade).
func TopLevelYears(s sheet.Sheet) YearAxis {
	return sortAxis(nonEmpty(s.RowKeys()))
}

func numericColumns(s sheet.Sheet, rowKey string) []string {
	row, ok := s.Row(rowKey)
	if !ok {
		return nil
	}
	cols := row.Columns()
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if sheet.IsYearKey(c) {
			out = append(out, c)
		}
	}
	return out
}

func nonEmpty(keys []string) []string {
	out := keys[:0]
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func sortAxis(years []string) YearAxis {
	seen := make(map[string]struct{}, len(years))
	out := make(YearAxis, 0, len(years))
	for _, y := range years {
		if _, dup := seen[y]; dup {
			continue
		}
		seen[y] = struct{}{}
		out = append(out, y)
	}
	sort.Strings(out)
	return out
}
