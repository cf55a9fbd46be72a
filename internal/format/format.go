// Package format renders indicator values for chart labels and info cards.
package format

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"factsheet/internal/sheet"
)

const (
	NotAvailable     = "N/A"
	DataNotAvailable = "Data not available"
)

// Fixed renders v with exactly places decimals.
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Grouped renders v rounded to a whole number with thousands separators.
func Grouped(v float64) string {
	return humanize.Comma(decimal.NewFromFloat(v).Round(0).IntPart())
}

// Style decorates a value: "$4,187 Bn", "6.50%", "N/A".
type Style struct {
	Prefix  string
	Unit    string
	Grouped bool
}

// Value renders a cell, NotAvailable when absent. The sign is taken after
// rounding so values that round to zero never print as "-0".
func (s Style) Value(v sheet.Value) string {
	f, ok := v.Float()
	if !ok {
		return NotAvailable
	}
	d := decimal.NewFromFloat(f)
	if s.Grouped {
		d = d.Round(0)
	} else {
		d = d.Round(2)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	abs := d.Abs().InexactFloat64()
	var body string
	if s.Grouped {
		body = Grouped(abs)
	} else {
		body = Fixed(abs, 2)
	}
	return sign + s.Prefix + body + s.Unit
}

// Estimate renders the info-card line for a highlighted point.
func (s Style) Estimate(year string, v sheet.Value, found bool) string {
	if !found || !v.Valid() || strings.TrimSpace(year) == "" {
		return DataNotAvailable
	}
	return s.Value(v) + " " + year + " Estimate"
}
