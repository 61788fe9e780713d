package datatable

// DataSource is the read side of a table: what the editor grid, the CLI
// reports and the chart selectors need. Rows and columns are addressed by
// position, and out-of-range positions return ErrInvalidRow or
// ErrInvalidColumn instead of panicking.
type DataSource interface {
	RowCount() int
	ColumnCount() int

	// ColumnName returns the header at col.
	ColumnName(col int) (string, error)

	// ColumnType summarises the cells of col: String if any cell is text,
	// otherwise Float if any is a float, otherwise Int.
	ColumnType(col int) (DataType, error)

	Cell(row, col int) (Value, error)

	// Row returns a copy of row keyed by column name in header order.
	Row(row int) (*Row, error)

	// Metadata describes where the data came from. It is never nil.
	Metadata() Metadata
}
