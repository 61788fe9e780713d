package store

import (
	"fmt"
	"sort"

	"tedit/datatable"
)

// Group is one bar of a grouped aggregation: a distinct key and the sum of
// the value column over the rows carrying that key.
type Group struct {
	Key datatable.Value
	Sum datatable.Value
}

// NumericColumns returns the numeric columns in header order.
func (s *TableStore) NumericColumns() []string {
	var out []string
	for i, col := range s.columns {
		if s.columnType(i).IsNumeric() {
			out = append(out, col)
		}
	}
	return out
}

// Grouped sums yCol for each distinct value of xCol, ordered by ascending
// key. Rows with a null key are left out and null sums are skipped. A sum is
// an integer unless a float took part in it or it outgrew int64.
func (s *TableStore) Grouped(xCol, yCol string) ([]Group, error) {
	xi, ok := s.index[xCol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", datatable.ErrColumnNotFound, xCol)
	}
	yi, ok := s.index[yCol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", datatable.ErrColumnNotFound, yCol)
	}

	type accumulator struct {
		key      datatable.Value
		intSum   int64
		floatSum float64
		isFloat  bool
	}

	groups := make(map[string]*accumulator)
	for r, row := range s.rows {
		key := row[xi]
		if key.IsNull() {
			continue
		}
		k := valueKey(key)
		acc, ok := groups[k]
		if !ok {
			acc = &accumulator{key: key}
			groups[k] = acc
		}

		y := row[yi]
		switch y.Type {
		case datatable.TypeInt:
			sum, overflow := addInt(acc.intSum, y.Int())
			if overflow {
				acc.floatSum += float64(acc.intSum) + float64(y.Int())
				acc.intSum = 0
				acc.isFloat = true
				continue
			}
			acc.intSum = sum
		case datatable.TypeFloat:
			f, _ := y.Number()
			acc.floatSum += f
			acc.isFloat = true
		case datatable.TypeString:
			return nil, fmt.Errorf("%w: column %s row %d: %q is not a number",
				datatable.ErrTypeMismatch, yCol, r, y.Text())
		}
	}

	out := make([]Group, 0, len(groups))
	for _, acc := range groups {
		sum := datatable.NewInt(acc.intSum)
		if acc.isFloat {
			sum = datatable.NewFloat(float64(acc.intSum) + acc.floatSum)
		}
		out = append(out, Group{Key: acc.key, Sum: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		return datatable.Compare(out[i].Key, out[j].Key) < 0
	})
	return out, nil
}

// addInt returns a+b and whether the sum overflowed int64.
func addInt(a, b int64) (int64, bool) {
	sum := a + b
	return sum, (b > 0 && sum < a) || (b < 0 && sum > a)
}
