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

package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tsawler/tabula/xlsx"

	"tedit/datatable"
)

// FileType represents the type of data file
type FileType int

const (
	FileTypeCSV FileType = iota
	FileTypeParquet
	FileTypeSpreadsheet
)

// String returns the name of the file type.
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "csv"
	case FileTypeParquet:
		return "parquet"
	default:
		return "spreadsheet"
	}
}

// DetectFileType picks a reader from the file extension. Anything that is
// not CSV or Parquet is handed to the spreadsheet reader, which rejects the
// extensions it cannot open.
func DetectFileType(filePath string) FileType {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	default:
		return FileTypeSpreadsheet
	}
}

// Load replaces the table with the contents of filePath. On error the
// current table is left as it was.
func (s *TableStore) Load(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", datatable.ErrNotFound, filePath)
		}
		return fmt.Errorf("%w: %s: %v", datatable.ErrFileFormat, filePath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", datatable.ErrFileFormat, filePath)
	}

	fileType := DetectFileType(filePath)

	var t *table
	switch fileType {
	case FileTypeCSV:
		t, err = loadCSVFile(filePath)
	case FileTypeParquet:
		t, err = loadParquetFile(filePath)
	default:
		t, err = loadSpreadsheetFile(filePath)
	}
	if err != nil {
		return err
	}

	s.replace(t, filePath)
	logger.Info().
		Str("file", filepath.Base(filePath)).
		Str("format", fileType.String()).
		Str("size", humanize.Bytes(uint64(info.Size()))).
		Int("rows", len(t.rows)).
		Int("columns", len(t.columns)).
		Msg("loaded table")
	return nil
}

// loadCSVFile reads a comma separated file with a header row.
func loadCSVFile(filePath string) (*table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open file: %v", datatable.ErrFileFormat, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s is empty", datatable.ErrFileFormat, filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV header: %v", datatable.ErrFileFormat, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	t, err := newTable(header)
	if err != nil {
		return nil, err
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read CSV row: %v", datatable.ErrFileFormat, err)
		}
		if err := t.appendRaw(record); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// loadSpreadsheetFile reads the first worksheet of an XLSX workbook. The
// first row is the header; rows without any value are skipped.
func loadSpreadsheetFile(filePath string) (*table, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx", ".xlsm":
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", datatable.ErrFileFormat, filepath.Ext(filePath))
	}

	r, err := xlsx.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", datatable.ErrFileFormat, err)
	}
	defer r.Close()

	if r.SheetCount() == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", datatable.ErrFileFormat)
	}
	sheet, err := r.Sheet(0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", datatable.ErrFileFormat, err)
	}
	if sheet.RowCount() == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", datatable.ErrFileFormat, sheet.Name)
	}

	width := sheet.ColCount()
	header := make([]string, width)
	for col := 0; col < width; col++ {
		header[col] = sheetText(sheet.Cell(0, col))
	}
	t, err := newTable(header)
	if err != nil {
		return nil, err
	}

	for row := 1; row < sheet.RowCount(); row++ {
		cells := make([]string, width)
		empty := true
		for col := 0; col < width; col++ {
			cells[col] = sheetText(sheet.Cell(row, col))
			if strings.TrimSpace(cells[col]) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		if err := t.appendRaw(cells); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// sheetText returns the display text of a cell; error cells read as empty.
func sheetText(c *xlsx.Cell) string {
	if c == nil || c.Type == xlsx.CellTypeError {
		return ""
	}
	return c.Value
}
