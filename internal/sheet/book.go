package sheet

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"factsheet/internal/logger"
)

var (
	// ErrInvalidJSON is returned when the payload is not JSON at all.
	ErrInvalidJSON = errors.New("sheet: payload is not valid json")
	// ErrNotObject is returned when the payload root is not a JSON object.
	ErrNotObject = errors.New("sheet: payload root must be an object")
)

// Tagged is a sheet together with the shape it was loaded as.
type Tagged struct {
	Name  string
	Shape Shape
	Sheet Sheet
}

// Book is the full set of sheets of one fetch.
type Book struct {
	sheets map[string]Tagged
	// Fallback is set when the book is the static empty stand-in used after a
	// failed fetch.
	Fallback bool
}

// Sheet returns the named sheet. A missing sheet is reported as an empty
// sheet with ok=false so callers can log it and carry on.
func (b Book) Sheet(name string) (Tagged, bool) {
	t, ok := b.sheets[name]
	if !ok {
		return Tagged{Name: name, Shape: ShapeCountryKeyed}, false
	}
	return t, true
}

// Names returns the sheet names, sorted.
func (b Book) Names() []string {
	out := make([]string, 0, len(b.sheets))
	for name := range b.sheets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (b Book) Len() int { return len(b.sheets) }

// NewBook builds a book from already-parsed sheets.
func NewBook(sheets ...Tagged) Book {
	b := Book{sheets: make(map[string]Tagged, len(sheets))}
	for _, t := range sheets {
		if t.Shape == 0 {
			t.Shape = ShapeCountryKeyed
		}
		b.sheets[t.Name] = t
	}
	return b
}

// Empty returns the fallback book: every expected sheet name mapped to an
// empty sheet, so downstream lookups are absence lookups.
func Empty(names []string, shapes map[string]Shape) Book {
	b := Book{sheets: make(map[string]Tagged, len(names)), Fallback: true}
	for _, name := range names {
		b.sheets[name] = Tagged{Name: name, Shape: shapeFor(shapes, name)}
	}
	return b
}

// Decode parses an API document of shape {"sheets": {name: {row: {col: n}}}}.
// A document without "sheets" decodes to an empty book. Cells that are not
// JSON numbers decode as absent; rows or sheets that are not objects decode
// as empty.
func Decode(raw []byte, shapes map[string]Shape) (Book, error) {
	if !gjson.ValidBytes(raw) {
		return Book{}, ErrInvalidJSON
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return Book{}, ErrNotObject
	}
	book := Book{sheets: make(map[string]Tagged)}
	sheets := root.Get("sheets")
	if !sheets.Exists() {
		logger.Warnf("factsheet payload has no sheets key; treating as empty")
		return book, nil
	}
	if !sheets.IsObject() {
		return Book{}, fmt.Errorf("sheet: sheets must be an object, got %s", sheets.Type)
	}
	sheets.ForEach(func(key, body gjson.Result) bool {
		name := key.String()
		book.sheets[name] = Tagged{
			Name:  name,
			Shape: shapeFor(shapes, name),
			Sheet: parseSheet(name, body),
		}
		return true
	})
	return book, nil
}

// Parse decodes a single sheet body, e.g. `{"India":{"2024":3300}}`.
func Parse(raw string) (Sheet, error) {
	raw = strings.TrimSpace(raw)
	if !gjson.Valid(raw) {
		return Sheet{}, ErrInvalidJSON
	}
	body := gjson.Parse(raw)
	if !body.IsObject() {
		return Sheet{}, ErrNotObject
	}
	return parseSheet("", body), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(raw string) Sheet {
	s, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return s
}

func parseSheet(name string, body gjson.Result) Sheet {
	var s Sheet
	if !body.IsObject() {
		if body.Exists() && body.Type != gjson.Null {
			logger.Warnf("sheet %q is not an object (%s); treating as empty", name, body.Type)
		}
		return s
	}
	body.ForEach(func(key, rowBody gjson.Result) bool {
		s.setRow(key.String(), parseRow(rowBody))
		return true
	})
	return s
}

func parseRow(body gjson.Result) Row {
	var r Row
	if !body.IsObject() {
		return r
	}
	body.ForEach(func(key, cell gjson.Result) bool {
		r.set(key.String(), valueOf(cell))
		return true
	})
	return r
}

func shapeFor(shapes map[string]Shape, name string) Shape {
	if s, ok := shapes[name]; ok && s != 0 {
		return s
	}
	return ShapeCountryKeyed
}
