package datatable

import (
	"github.com/Velocidex/ordereddict"
)

// Row maps column names to cell values and remembers the order in which
// columns were set. A Row handed to validation or to an update may hold only
// some of the table's columns.
type Row struct {
	dict *ordereddict.Dict
}

// NewRow returns an empty row.
func NewRow() *Row {
	return &Row{dict: ordereddict.NewDict()}
}

// ParseRow builds a row from raw text cells, coercing each with ParseValue.
// Columns and cells are paired positionally; missing cells are null.
func ParseRow(columns []string, cells []string) *Row {
	r := NewRow()
	for i, col := range columns {
		if i < len(cells) {
			r.Set(col, ParseValue(cells[i]))
		} else {
			r.Set(col, NewNullValue())
		}
	}
	return r
}

// Set stores v under col and returns the row for chaining.
func (r *Row) Set(col string, v Value) *Row {
	r.dict.Set(col, v)
	return r
}

// Get returns the value stored under col.
func (r *Row) Get(col string) (Value, bool) {
	raw, ok := r.dict.Get(col)
	if !ok {
		return Value{}, false
	}
	v, ok := raw.(Value)
	return v, ok
}

// Has reports whether col is present.
func (r *Row) Has(col string) bool {
	_, ok := r.dict.Get(col)
	return ok
}

// Columns returns the column names in insertion order.
func (r *Row) Columns() []string {
	return r.dict.Keys()
}

// Len returns the number of columns present.
func (r *Row) Len() int {
	return r.dict.Len()
}

// Dict returns an ordered dict of plain Go payloads (int64, float64,
// string or nil), suitable for JSON encoding.
func (r *Row) Dict() *ordereddict.Dict {
	out := ordereddict.NewDict()
	for _, col := range r.dict.Keys() {
		v, _ := r.Get(col)
		out.Set(col, v.Interface())
	}
	return out
}
