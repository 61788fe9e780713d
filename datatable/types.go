// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package datatable holds the cell, row and read-only table types shared by
// the table store, the editor window and the chart renderer.
package datatable

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DataType represents the type of a cell or a column.
type DataType int

const (
	// TypeNull marks a missing value. The zero Value is null.
	TypeNull DataType = iota
	// TypeInt represents integer data.
	TypeInt
	// TypeFloat represents floating-point data.
	TypeFloat
	// TypeString represents text data.
	TypeString
)

// String returns the string representation of a DataType.
func (dt DataType) String() string {
	switch dt {
	case TypeNull:
		return "Null"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeString:
		return "String"
	default:
		return fmt.Sprintf("Unknown(%d)", dt)
	}
}

// IsNumeric reports whether the type is Int or Float.
func (dt DataType) IsNumeric() bool {
	return dt == TypeInt || dt == TypeFloat
}

// Value is a typed cell: exactly one of null, integer, float or text.
type Value struct {
	Type DataType

	i int64
	f float64
	s string
}

// NewNullValue returns a missing value.
func NewNullValue() Value {
	return Value{}
}

// NewInt returns an integer value.
func NewInt(v int64) Value {
	return Value{Type: TypeInt, i: v}
}

// NewFloat returns a float value.
func NewFloat(v float64) Value {
	return Value{Type: TypeFloat, f: v}
}

// NewText returns a text value.
func NewText(v string) Value {
	return Value{Type: TypeString, s: v}
}

// ParseValue coerces raw text into a Value. The text is trimmed first; an
// empty result is null. Otherwise an integer parse is attempted, then a float
// parse, and the trimmed text is kept as-is when neither succeeds. Only
// decimal notation is numeric: hex literals stay text, and underscores are
// accepted when they sit between two digits ("1_000").
func ParseValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NewNullValue()
	}
	digits, ok := decimalText(raw)
	if !ok {
		return NewText(raw)
	}
	if i, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return NewInt(i)
	}
	if f, err := strconv.ParseFloat(digits, 64); err == nil {
		return NewFloat(f)
	}
	return NewText(raw)
}

// missingMarkers are the cell spellings data files use for an absent value.
var missingMarkers = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true,
	"1.#QNAN": true, "<NA>": true, "N/A": true, "NA": true, "NULL": true,
	"NaN": true, "None": true, "n/a": true, "nan": true, "null": true,
}

// ParseCell coerces a cell read from a data file. It behaves like ParseValue
// except that the usual missing-value markers ("NA", "NaN", "null", "#N/A"
// and so on) are null.
func ParseCell(raw string) Value {
	if missingMarkers[strings.TrimSpace(raw)] {
		return NewNullValue()
	}
	return ParseValue(raw)
}

// decimalText strips digit-group underscores from raw. It reports false when
// raw is a hex literal or holds an underscore that is not between digits.
func decimalText(raw string) (string, bool) {
	unsigned := strings.TrimLeft(raw, "+-")
	if len(unsigned) > 1 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		return "", false
	}
	if !strings.Contains(raw, "_") {
		return raw, true
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] != '_' {
			continue
		}
		if i == 0 || i == len(raw)-1 || !isDigit(raw[i-1]) || !isDigit(raw[i+1]) {
			return "", false
		}
	}
	return strings.ReplaceAll(raw, "_", ""), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsNull reports whether the value is missing.
func (v Value) IsNull() bool {
	return v.Type == TypeNull
}

// IsMissing reports whether the value is null or a NaN float.
func (v Value) IsMissing() bool {
	return v.Type == TypeNull || (v.Type == TypeFloat && math.IsNaN(v.f))
}

// IsNumeric reports whether the value is an integer or a float.
func (v Value) IsNumeric() bool {
	return v.Type.IsNumeric()
}

// Int returns the integer payload. It is zero unless Type is TypeInt.
func (v Value) Int() int64 {
	return v.i
}

// Text returns the text payload. It is empty unless Type is TypeString.
func (v Value) Text() string {
	return v.s
}

// Number returns the value as a float64 when it is numeric.
func (v Value) Number() (float64, bool) {
	switch v.Type {
	case TypeInt:
		return float64(v.i), true
	case TypeFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// String returns the string form of the value. Floats always carry a
// fractional part ("30.0") so they stay distinguishable from integers, and
// null renders as the empty string.
func (v Value) String() string {
	switch v.Type {
	case TypeInt:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return formatFloat(v.f)
	case TypeString:
		return v.s
	default:
		return ""
	}
}

// Interface returns the payload as int64, float64, string or nil.
func (v Value) Interface() interface{} {
	switch v.Type {
	case TypeInt:
		return v.i
	case TypeFloat:
		return v.f
	case TypeString:
		return v.s
	default:
		return nil
	}
}

// Equal reports whether two values have the same type and payload. NaN
// floats are equal to each other.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case TypeInt:
		return v.i == o.i
	case TypeFloat:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case TypeString:
		return v.s == o.s
	default:
		return true
	}
}

// Compare orders values: numbers first (by numeric value), then text
// (lexicographically), then nulls. It returns -1, 0 or +1.
func Compare(a, b Value) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 0:
		if a.Type == TypeInt && b.Type == TypeInt {
			return compareOrdered(a.i, b.i)
		}
		fa, _ := a.Number()
		fb, _ := b.Number()
		return compareOrdered(fa, fb)
	case 1:
		return strings.Compare(a.s, b.s)
	default:
		return 0
	}
}

func rank(v Value) int {
	switch {
	case v.IsNumeric():
		return 0
	case v.Type == TypeString:
		return 1
	default:
		return 2
	}
}

func compareOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Metadata holds optional metadata about a data source.
type Metadata map[string]interface{}
