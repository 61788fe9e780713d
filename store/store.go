// Package store implements the in-memory Titanic table: loading, validation,
// row mutation, the cleaning pipeline, aggregation and persistence.
//
// Rows are addressed by position. Deleting a row shifts every later row down
// by one, so an index obtained before a delete may name a different row
// afterwards.
package store

import (
	"fmt"

	"tedit/config"
	"tedit/datatable"
	"tedit/logging"
)

var logger = logging.NewLogger()

// Titanic manifest columns.
const (
	ColPassengerID = "PassengerId"
	ColSurvived    = "Survived"
	ColPclass      = "Pclass"
	ColName        = "Name"
	ColSex         = "Sex"
	ColAge         = "Age"
	ColSibSp       = "SibSp"
	ColParch       = "Parch"
	ColTicket      = "Ticket"
	ColFare        = "Fare"
	ColCabin       = "Cabin"
	ColEmbarked    = "Embarked"
)

// ManifestColumns is the manifest header in file order.
var ManifestColumns = []string{
	ColPassengerID, ColSurvived, ColPclass, ColName, ColSex, ColAge,
	ColSibSp, ColParch, ColTicket, ColFare, ColCabin, ColEmbarked,
}

// TableStore owns the table under edit. It is not safe for concurrent use.
type TableStore struct {
	columns []string
	index   map[string]int
	rows    [][]datatable.Value

	dataDir    string
	outputFile string
	source     string
}

var _ datatable.DataSource = (*TableStore)(nil)

// New returns an empty store that saves into dataDir/outputFile. Empty
// arguments fall back to the config defaults.
func New(dataDir, outputFile string) *TableStore {
	if dataDir == "" {
		dataDir = config.DefaultDataDir
	}
	if outputFile == "" {
		outputFile = config.DefaultOutputFile
	}
	return &TableStore{
		index:      make(map[string]int),
		dataDir:    dataDir,
		outputFile: outputFile,
	}
}

// NewFromConfig returns an empty store using the configured output location.
func NewFromConfig(cfg *config.Config) *TableStore {
	return New(cfg.DataDir, cfg.OutputFile)
}

// Columns returns a copy of the header in column order.
func (s *TableStore) Columns() []string {
	return append([]string(nil), s.columns...)
}

// HasColumn reports whether the header contains name.
func (s *TableStore) HasColumn(name string) bool {
	_, ok := s.index[name]
	return ok
}

// RowCount implements datatable.DataSource.
func (s *TableStore) RowCount() int {
	return len(s.rows)
}

// ColumnCount implements datatable.DataSource.
func (s *TableStore) ColumnCount() int {
	return len(s.columns)
}

// ColumnName implements datatable.DataSource.
func (s *TableStore) ColumnName(col int) (string, error) {
	if col < 0 || col >= len(s.columns) {
		return "", fmt.Errorf("%w: %d", datatable.ErrInvalidColumn, col)
	}
	return s.columns[col], nil
}

// ColumnType implements datatable.DataSource. A column holding any text is
// TypeString, otherwise any float makes it TypeFloat and integers alone make
// it TypeInt. A column with no values at all is reported as TypeFloat.
func (s *TableStore) ColumnType(col int) (datatable.DataType, error) {
	if col < 0 || col >= len(s.columns) {
		return datatable.TypeNull, fmt.Errorf("%w: %d", datatable.ErrInvalidColumn, col)
	}
	return s.columnType(col), nil
}

func (s *TableStore) columnType(col int) datatable.DataType {
	seenInt, seenFloat := false, false
	for _, row := range s.rows {
		switch row[col].Type {
		case datatable.TypeString:
			return datatable.TypeString
		case datatable.TypeFloat:
			seenFloat = true
		case datatable.TypeInt:
			seenInt = true
		}
	}
	if seenInt && !seenFloat {
		return datatable.TypeInt
	}
	return datatable.TypeFloat
}

// Cell implements datatable.DataSource.
func (s *TableStore) Cell(row, col int) (datatable.Value, error) {
	if row < 0 || row >= len(s.rows) {
		return datatable.Value{}, fmt.Errorf("%w: %d", datatable.ErrInvalidRow, row)
	}
	if col < 0 || col >= len(s.columns) {
		return datatable.Value{}, fmt.Errorf("%w: %d", datatable.ErrInvalidColumn, col)
	}
	return s.rows[row][col], nil
}

// Row implements datatable.DataSource.
func (s *TableStore) Row(row int) (*datatable.Row, error) {
	if row < 0 || row >= len(s.rows) {
		return nil, fmt.Errorf("%w: %d", datatable.ErrInvalidRow, row)
	}
	out := datatable.NewRow()
	for i, col := range s.columns {
		out.Set(col, s.rows[row][i])
	}
	return out, nil
}

// Metadata implements datatable.DataSource.
func (s *TableStore) Metadata() datatable.Metadata {
	md := datatable.Metadata{}
	if s.source != "" {
		md["source"] = s.source
	}
	return md
}

// AddRow appends row as the last row. The row is not validated; columns it
// lacks are null and columns the table lacks are appended to the header.
func (s *TableStore) AddRow(row *datatable.Row) {
	for _, col := range row.Columns() {
		s.ensureColumn(col)
	}
	values := make([]datatable.Value, len(s.columns))
	for _, col := range row.Columns() {
		values[s.index[col]], _ = row.Get(col)
	}
	s.rows = append(s.rows, values)
}

// UpdateRow overwrites the columns present in row at index, leaving every
// other column untouched.
func (s *TableStore) UpdateRow(index int, row *datatable.Row) error {
	if index < 0 || index >= len(s.rows) {
		return fmt.Errorf("%w: %d (table has %d rows)", datatable.ErrInvalidRow, index, len(s.rows))
	}
	for _, col := range row.Columns() {
		i := s.ensureColumn(col)
		s.rows[index][i], _ = row.Get(col)
	}
	return nil
}

// DeleteRow removes the row at index and shifts later rows down by one.
func (s *TableStore) DeleteRow(index int) error {
	if index < 0 || index >= len(s.rows) {
		return fmt.Errorf("%w: %d (table has %d rows)", datatable.ErrInvalidRow, index, len(s.rows))
	}
	s.rows = append(s.rows[:index], s.rows[index+1:]...)
	return nil
}

// ensureColumn returns the position of name, appending it to the header
// (null in every existing row) when absent.
func (s *TableStore) ensureColumn(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	s.columns = append(s.columns, name)
	s.index[name] = len(s.columns) - 1
	for i := range s.rows {
		s.rows[i] = append(s.rows[i], datatable.NewNullValue())
	}
	return len(s.columns) - 1
}

// replace swaps in a freshly loaded table.
func (s *TableStore) replace(t *table, source string) {
	s.columns = t.columns
	s.rows = t.rows
	s.index = make(map[string]int, len(t.columns))
	for i, col := range t.columns {
		s.index[col] = i
	}
	s.source = source
}

// table is a loaded header plus rows, built before it replaces the store's
// contents so a failed load leaves the store untouched.
type table struct {
	columns []string
	rows    [][]datatable.Value
}

// newTable names the columns the way spreadsheet tools do: blank headers
// become "Unnamed: <i>" and repeated headers get a ".<n>" suffix.
func newTable(header []string) (*table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: no columns", datatable.ErrFileFormat)
	}
	used := make(map[string]bool, len(header))
	suffix := make(map[string]int)
	columns := make([]string, len(header))
	for i, h := range header {
		name := h
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for used[name] {
			suffix[base]++
			name = fmt.Sprintf("%s.%d", base, suffix[base])
		}
		used[name] = true
		columns[i] = name
	}
	return &table{columns: columns}, nil
}

// appendRaw coerces raw cells and appends them. Absent cells and missing
// markers are null.
func (t *table) appendRaw(cells []string) error {
	if len(cells) > len(t.columns) {
		return fmt.Errorf("%w: expected %d fields, saw %d", datatable.ErrFileFormat, len(t.columns), len(cells))
	}
	row := make([]datatable.Value, len(t.columns))
	for i, c := range cells {
		row[i] = datatable.ParseCell(c)
	}
	t.rows = append(t.rows, row)
	return nil
}
