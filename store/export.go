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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Velocidex/ordereddict"

	"tedit/datatable"
)

// ExportFormat represents the supported export formats
type ExportFormat string

const (
	FormatCSV     ExportFormat = "csv"
	FormatParquet ExportFormat = "parquet"
	FormatJSON    ExportFormat = "json"
)

// ParseExportFormat accepts a format name, or derives it from the
// extension of path when name is empty.
func ParseExportFormat(name, path string) (ExportFormat, error) {
	if name == "" {
		name = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	switch f := ExportFormat(strings.ToLower(name)); f {
	case FormatCSV, FormatParquet, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", datatable.ErrFileFormat, name)
	}
}

// DataDir returns the directory Save writes into.
func (s *TableStore) DataDir() string {
	return s.dataDir
}

// Save writes the table as CSV to <data dir>/<filename>, creating the data
// directory when needed and overwriting any existing file. An empty filename
// selects the default output file. The write is not atomic.
func (s *TableStore) Save(filename string) (string, error) {
	if filename == "" {
		filename = s.outputFile
	}
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: failed to create data directory: %v", datatable.ErrIO, err)
	}

	filePath := filepath.Join(s.dataDir, filename)
	if err := s.exportCSV(filePath); err != nil {
		return "", err
	}

	logger.Info().Str("path", filePath).Int("rows", len(s.rows)).Msg("saved table")
	return filePath, nil
}

// Export writes the table to filePath in the given format.
func (s *TableStore) Export(filePath string, format ExportFormat) error {
	var err error
	switch format {
	case FormatCSV:
		err = s.exportCSV(filePath)
	case FormatParquet:
		err = s.exportParquet(filePath)
	case FormatJSON:
		err = s.exportJSON(filePath)
	default:
		return fmt.Errorf("%w: unknown export format %q", datatable.ErrFileFormat, format)
	}
	if err != nil {
		return err
	}
	logger.Info().Str("path", filePath).Str("format", string(format)).Msg("exported table")
	return nil
}

// exportCSV writes the header row followed by every row, without an index
// column. Null cells are empty.
func (s *TableStore) exportCSV(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("%w: failed to create CSV file: %v", datatable.ErrIO, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(s.columns); err != nil {
		return fmt.Errorf("%w: failed to write CSV header: %v", datatable.ErrIO, err)
	}

	record := make([]string, len(s.columns))
	for _, row := range s.rows {
		for i, v := range row {
			record[i] = v.String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("%w: failed to write CSV row: %v", datatable.ErrIO, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: failed to flush CSV: %v", datatable.ErrIO, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %v", datatable.ErrIO, err)
	}
	return nil
}

// exportJSON writes an array of objects whose keys follow column order.
func (s *TableStore) exportJSON(filePath string) error {
	records := make([]*ordereddict.Dict, 0, len(s.rows))
	for i := range s.rows {
		row, _ := s.Row(i)
		records = append(records, row.Dict())
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode JSON: %v", datatable.ErrExportFailed, err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write JSON file: %v", datatable.ErrIO, err)
	}
	return nil
}
