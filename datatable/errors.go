package datatable

import "errors"

// Common errors returned by the datatable and store packages.
var (
	// ErrInvalidColumn is returned when a column index is out of range.
	ErrInvalidColumn = errors.New("invalid column index")

	// ErrInvalidRow is returned when a row index is out of range.
	ErrInvalidRow = errors.New("invalid row index")

	// ErrColumnNotFound is returned when a column name is not found.
	ErrColumnNotFound = errors.New("column not found")

	// ErrTypeMismatch is returned when a cell does not have the type an
	// operation needs.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrEmptyData is returned when data is empty where it shouldn't be.
	ErrEmptyData = errors.New("data is empty")

	// ErrFileFormat is returned when an input file is malformed or its
	// format is not supported.
	ErrFileFormat = errors.New("unsupported or malformed file")

	// ErrNotFound is returned when an input path does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrIO is returned when writing output fails.
	ErrIO = errors.New("i/o failure")

	// ErrExportFailed is returned when export operation fails.
	ErrExportFailed = errors.New("export failed")
)
