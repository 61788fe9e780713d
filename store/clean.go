package store

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tedit/datatable"
)

// NoInfo replaces missing text during cleaning.
const NoInfo = "No info"

var (
	zeroFillColumns = []string{ColSurvived, ColSibSp, ColParch}
	meanFillColumns = []string{ColAge, ColFare}
	textColumns     = []string{ColName, ColSex, ColCabin, ColEmbarked, ColTicket}
	absColumns      = []string{ColFare, ColSibSp, ColParch}
)

// Clean normalises the table in place and saves it under the default file
// name, returning the saved path. Steps whose column is missing are skipped.
// Running Clean again on its own output changes nothing.
//
// A type error in the Age cast or the absolute-value step aborts the pass and
// leaves the table as the earlier steps made it.
func (s *TableStore) Clean() (string, error) {
	before := len(s.rows)

	dropped := s.dropNull(ColPassengerID)

	for _, col := range zeroFillColumns {
		s.fillNull(col, datatable.NewInt(0))
	}

	if mode, ok := s.mode(ColPclass); ok {
		s.fillNull(ColPclass, mode)
	}

	// Both means are taken before either column is filled.
	means := make(map[string]float64, len(meanFillColumns))
	for _, col := range meanFillColumns {
		if mean, ok := s.mean(col); ok {
			means[col] = mean
		}
	}
	for col, mean := range means {
		s.fillNull(col, datatable.NewFloat(mean))
	}

	for _, col := range textColumns {
		s.normalizeText(col)
	}

	duplicates := s.dropDuplicates(ColPassengerID)

	if err := s.truncate(ColAge); err != nil {
		return "", err
	}

	s.stringify(ColPassengerID)

	for _, col := range absColumns {
		if err := s.absolute(col); err != nil {
			return "", err
		}
	}

	logger.Debug().
		Int("rows_before", before).
		Int("missing_id", dropped).
		Int("duplicates", duplicates).
		Int("rows_after", len(s.rows)).
		Msg("cleaned table")

	return s.Save("")
}

// dropNull removes rows whose col is missing and returns how many went.
func (s *TableStore) dropNull(col string) int {
	ci, ok := s.index[col]
	if !ok {
		return 0
	}
	kept := s.rows[:0]
	for _, row := range s.rows {
		if !row[ci].IsMissing() {
			kept = append(kept, row)
		}
	}
	dropped := len(s.rows) - len(kept)
	s.rows = kept
	return dropped
}

func (s *TableStore) fillNull(col string, v datatable.Value) {
	ci, ok := s.index[col]
	if !ok {
		return
	}
	for _, row := range s.rows {
		if row[ci].IsMissing() {
			row[ci] = v
		}
	}
}

// mode returns the most frequent present value of col. Ties go to the
// smallest value in datatable.Compare order.
func (s *TableStore) mode(col string) (datatable.Value, bool) {
	ci, ok := s.index[col]
	if !ok {
		return datatable.Value{}, false
	}

	counts := make(map[string]int)
	first := make(map[string]datatable.Value)
	for _, row := range s.rows {
		v := row[ci]
		if v.IsMissing() {
			continue
		}
		k := valueKey(v)
		if _, seen := first[k]; !seen {
			first[k] = v
		}
		counts[k]++
	}

	var best datatable.Value
	bestCount := 0
	for k, n := range counts {
		v := first[k]
		if n > bestCount || (n == bestCount && datatable.Compare(v, best) < 0) {
			best, bestCount = v, n
		}
	}
	return best, bestCount > 0
}

// mean averages the numeric cells of col; text, nulls and NaN are ignored.
func (s *TableStore) mean(col string) (float64, bool) {
	ci, ok := s.index[col]
	if !ok {
		return 0, false
	}
	sum, n := 0.0, 0
	for _, row := range s.rows {
		if row[ci].IsMissing() {
			continue
		}
		if f, ok := row[ci].Number(); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// normalizeText fills missing cells with NoInfo, then lower-cases and trims the
// string form of every cell.
func (s *TableStore) normalizeText(col string) {
	ci, ok := s.index[col]
	if !ok {
		return
	}
	for _, row := range s.rows {
		text := NoInfo
		if !row[ci].IsMissing() {
			text = row[ci].String()
		}
		row[ci] = datatable.NewText(strings.TrimSpace(strings.ToLower(text)))
	}
}

// dropDuplicates keeps the first row for each value of col.
func (s *TableStore) dropDuplicates(col string) int {
	ci, ok := s.index[col]
	if !ok {
		return 0
	}
	seen := make(map[string]bool, len(s.rows))
	kept := s.rows[:0]
	for _, row := range s.rows {
		k := valueKey(row[ci])
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, row)
	}
	dropped := len(s.rows) - len(kept)
	s.rows = kept
	return dropped
}

// truncate casts col to integers, truncating toward zero. Numeric text is
// parsed first; anything else that is not a finite number is an error.
func (s *TableStore) truncate(col string) error {
	ci, ok := s.index[col]
	if !ok {
		return nil
	}
	for r, row := range s.rows {
		v := row[ci]
		if v.Type == datatable.TypeString {
			v = datatable.ParseValue(v.Text())
		}
		switch v.Type {
		case datatable.TypeInt:
			row[ci] = v
			continue
		case datatable.TypeFloat:
			f, _ := v.Number()
			if !math.IsNaN(f) && !math.IsInf(f, 0) && f >= math.MinInt64 && f < math.MaxInt64 {
				row[ci] = datatable.NewInt(int64(math.Trunc(f)))
				continue
			}
		}
		return fmt.Errorf("%w: column %s row %d: cannot cast %q to integer",
			datatable.ErrTypeMismatch, col, r, row[ci].String())
	}
	return nil
}

// stringify replaces every cell of col with its string form.
func (s *TableStore) stringify(col string) {
	ci, ok := s.index[col]
	if !ok {
		return
	}
	for _, row := range s.rows {
		if row[ci].Type != datatable.TypeString {
			row[ci] = datatable.NewText(row[ci].String())
		}
	}
}

// absolute replaces numbers in col with their absolute value.
func (s *TableStore) absolute(col string) error {
	ci, ok := s.index[col]
	if !ok {
		return nil
	}
	for r, row := range s.rows {
		v := row[ci]
		switch v.Type {
		case datatable.TypeInt:
			switch {
			case v.Int() == math.MinInt64:
				row[ci] = datatable.NewFloat(-float64(v.Int()))
			case v.Int() < 0:
				row[ci] = datatable.NewInt(-v.Int())
			}
		case datatable.TypeFloat:
			f, _ := v.Number()
			row[ci] = datatable.NewFloat(math.Abs(f))
		case datatable.TypeString:
			return fmt.Errorf("%w: column %s row %d: %q is not a number",
				datatable.ErrTypeMismatch, col, r, v.Text())
		}
	}
	return nil
}

// valueKey identifies a cell for grouping and de-duplication. Numbers
// compare by value so 1 and 1.0 share a key.
func valueKey(v datatable.Value) string {
	switch v.Type {
	case datatable.TypeInt:
		return "n:" + strconv.FormatInt(v.Int(), 10)
	case datatable.TypeFloat:
		f, _ := v.Number()
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return "n:" + strconv.FormatInt(int64(f), 10)
		}
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
	case datatable.TypeString:
		return "s:" + v.Text()
	default:
		return "null"
	}
}
