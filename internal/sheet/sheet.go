package sheet

import (
	"sort"
	"strconv"
	"strings"
)

// Row maps a column key to a cell. Column order is the order in which keys
// appeared in the API document.
type Row struct {
	cells map[string]Value
	order []string
}

// Get returns the cell at col, absent when the column does not exist.
func (r Row) Get(col string) Value {
	if r.cells == nil {
		return Absent()
	}
	return r.cells[col]
}

// Has reports whether the column exists (even if its cell is absent).
func (r Row) Has(col string) bool {
	_, ok := r.cells[col]
	return ok
}

// Columns returns column keys in document order.
func (r Row) Columns() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r Row) Len() int { return len(r.order) }

func (r *Row) set(col string, v Value) {
	if r.cells == nil {
		r.cells = make(map[string]Value)
	}
	if _, ok := r.cells[col]; !ok {
		r.order = append(r.order, col)
	}
	r.cells[col] = v
}

// Sheet is one named table: row key → column key → cell. The role of rows and
// columns depends on the sheet's Shape. A Sheet is immutable once built.
type Sheet struct {
	rows  map[string]Row
	order []string
}

// Row returns the row and whether it exists.
func (s Sheet) Row(key string) (Row, bool) {
	r, ok := s.rows[key]
	return r, ok
}

func (s Sheet) HasRow(key string) bool {
	_, ok := s.rows[key]
	return ok
}

// Lookup returns sheet[row][col], absent when either key is missing.
func (s Sheet) Lookup(row, col string) Value {
	r, ok := s.rows[row]
	if !ok {
		return Absent()
	}
	return r.Get(col)
}

// RowKeys returns row keys in document order.
func (s Sheet) RowKeys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s Sheet) Len() int { return len(s.order) }

func (s Sheet) Empty() bool { return len(s.order) == 0 }

func (s *Sheet) setRow(key string, r Row) {
	if s.rows == nil {
		s.rows = make(map[string]Row)
	}
	if _, ok := s.rows[key]; !ok {
		s.order = append(s.order, key)
	}
	s.rows[key] = r
}

// FromMap builds a sheet from plain maps. Rows and columns are ordered
// ascending since Go maps carry no order.
func FromMap(data map[string]map[string]float64) Sheet {
	var s Sheet
	rowKeys := make([]string, 0, len(data))
	for k := range data {
		rowKeys = append(rowKeys, k)
	}
	sort.Strings(rowKeys)
	for _, rk := range rowKeys {
		cols := data[rk]
		colKeys := make([]string, 0, len(cols))
		for c := range cols {
			colKeys = append(colKeys, c)
		}
		sort.Strings(colKeys)
		var r Row
		for _, c := range colKeys {
			r.set(c, Num(cols[c]))
		}
		s.setRow(rk, r)
	}
	return s
}

// IsYearKey reports whether a column key reads as a finite number, the test
// used to keep year columns and drop annotation columns.
func IsYearKey(key string) bool {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return false
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return false
	}
	return Num(f).Valid()
}
