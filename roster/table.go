package roster

import (
	"math"
	"strconv"
	"strings"
)

// Value is a single cell. The raw text is kept as read.
type Value struct {
	Raw string
	num float64
	isN bool
}

func NewValue(raw string) Value {
	v := Value{Raw: raw}
	if f, ok := parseNumber(raw); ok {
		v.num, v.isN = f, true
	}
	return v
}

// parseNumber accepts finite decimal numbers only; NaN, Inf and hex floats
// stay text.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	unsigned := strings.ToLower(strings.TrimLeft(s, "+-"))
	if strings.HasPrefix(unsigned, "0x") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Number returns the numeric value and whether the cell is numeric.
func (v Value) Number() (float64, bool) { return v.num, v.isN }

func (v Value) String() string { return v.Raw }

func (v Value) IsEmpty() bool { return strings.TrimSpace(v.Raw) == "" }

// Row is aligned with Table.Columns.
type Row []Value

// Table is an ordered set of rows under a fixed header.
type Table struct {
	Columns []string
	Rows    []Row
	index   map[string]int
}

func NewTable(columns []string, rows []Row) *Table {
	t := &Table{Columns: columns, Rows: rows, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		// first occurrence wins on duplicate headers
		if _, ok := t.index[c]; !ok {
			t.index[c] = i
		}
	}
	return t
}

func (t *Table) Len() int { return len(t.Rows) }

// HasColumn reports whether name is one of the header columns.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns an accessor for the named column.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, schemaError("", name)
	}
	return Column{Name: name, index: i}, nil
}

// Column reads one field out of rows belonging to the table it came from.
type Column struct {
	Name  string
	index int
}

func (c Column) Value(r Row) Value {
	if c.index < len(r) {
		return r[c.index]
	}
	return Value{}
}

// Strings renders a row for display.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = v.Raw
	}
	return out
}
