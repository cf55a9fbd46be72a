package sheet

import (
	"fmt"
	"strings"
)

// Shape tags how a sheet lays out its rows and columns. It is attached when
// the sheet is loaded so normalizers never sniff keys at runtime.
type Shape int

const (
	// ShapeCountryKeyed rows are countries, columns are years.
	ShapeCountryKeyed Shape = iota + 1
	// ShapeSubfieldKeyed rows are years, columns are fixed named sub-fields
	// (merchandise trade: Exports, Imports, Surplus/Deficit).
	ShapeSubfieldKeyed
	// ShapeCategoryKeyed rows are the series names themselves (sectors or
	// index tickers), columns are years.
	ShapeCategoryKeyed
)

func (s Shape) String() string {
	switch s {
	case ShapeCountryKeyed:
		return "country"
	case ShapeSubfieldKeyed:
		return "subfield"
	case ShapeCategoryKeyed:
		return "category"
	default:
		return "unknown"
	}
}

// ParseShape accepts the names produced by String.
func ParseShape(raw string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "country", "country_keyed", "":
		return ShapeCountryKeyed, nil
	case "subfield", "subfield_keyed":
		return ShapeSubfieldKeyed, nil
	case "category", "category_keyed":
		return ShapeCategoryKeyed, nil
	default:
		return 0, fmt.Errorf("unknown sheet shape %q", raw)
	}
}

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
