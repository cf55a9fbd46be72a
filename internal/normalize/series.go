package normalize

import (
	"factsheet/internal/logger"
	"factsheet/internal/sheet"
)

// Series is one named list of values, index-aligned to an axis. Absent
// values are explicit sentinels, never omitted.
type Series struct {
	Name string        `json:"name" yaml:"name"`
	Data []sheet.Value `json:"data" yaml:"data"`
}

// Bundle is the set of series for one chart view together with the axis
// they are aligned to.
type Bundle struct {
	Axis   []string `json:"axis" yaml:"axis"`
	Series []Series `json:"series" yaml:"series"`
}

// Aligned reports whether every series has exactly one entry per axis label.
func (b Bundle) Aligned() bool {
	for _, s := range b.Series {
		if len(s.Data) != len(b.Axis) {
			return false
		}
	}
	return true
}

// Empty reports whether no series carries a single present value.
func (b Bundle) Empty() bool {
	for _, s := range b.Series {
		for _, v := range s.Data {
			if v.Valid() {
				return false
			}
		}
	}
	return true
}

// BuildSeries projects sheet[rowKey][year] for each row key across the axis.
// A row key missing from the sheet yields an all-absent series and a warning.
func BuildSeries(s sheet.Sheet, axis YearAxis, rowKeys []string) []Series {
	out := make([]Series, 0, len(rowKeys))
	for _, key := range rowKeys {
		row, ok := s.Row(key)
		if !ok {
			logger.Warnf("no data for %q in sheet; emitting %d empty points", key, len(axis))
		}
		data := make([]sheet.Value, len(axis))
		for i, year := range axis {
			if ok {
				data[i] = row.Get(year)
			}
		}
		out = append(out, Series{Name: key, Data: data})
	}
	return out
}

// BuildSubfieldSeries handles sheets whose rows are years and whose columns
// are fixed sub-fields: one series per field, projected across the axis.
func BuildSubfieldSeries(s sheet.Sheet, axis YearAxis, fields []string) []Series {
	out := make([]Series, 0, len(fields))
	for _, field := range fields {
		data := make([]sheet.Value, len(axis))
		for i, year := range axis {
			data[i] = s.Lookup(year, field)
		}
		out = append(out, Series{Name: field, Data: data})
	}
	return out
}

// Snapshot builds a single series over a category axis (one entry per row
// key), taking for each row the first priority year holding a value.
func Snapshot(s sheet.Sheet, name string, rowKeys []string, priority []string) Bundle {
	data := make([]sheet.Value, len(rowKeys))
	for i, key := range rowKeys {
		_, data[i] = LatestValue(s, key, priority)
	}
	axis := make([]string, len(rowKeys))
	copy(axis, rowKeys)
	return Bundle{Axis: axis, Series: []Series{{Name: name, Data: data}}}
}
