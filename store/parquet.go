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
	"context"
	"fmt"
	"math"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"tedit/datatable"
)

// loadParquetFile reads a Parquet file through an Arrow table.
func loadParquetFile(filePath string) (*table, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open parquet file: %v", datatable.ErrFileFormat, err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create parquet reader: %v", datatable.ErrFileFormat, err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create arrow reader: %v", datatable.ErrFileFormat, err)
	}

	tbl, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read parquet data: %v", datatable.ErrFileFormat, err)
	}
	defer tbl.Release()

	return fromArrowTable(tbl)
}

// fromArrowTable copies an Arrow table into row-major cells.
func fromArrowTable(tbl arrow.Table) (*table, error) {
	schema := tbl.Schema()
	header := make([]string, schema.NumFields())
	for i, field := range schema.Fields() {
		header[i] = field.Name
	}
	t, err := newTable(header)
	if err != nil {
		return nil, err
	}

	numRows := int(tbl.NumRows())
	t.rows = make([][]datatable.Value, numRows)
	for i := range t.rows {
		t.rows[i] = make([]datatable.Value, len(header))
	}

	for colIdx := 0; colIdx < int(tbl.NumCols()); colIdx++ {
		rowIdx := 0
		for _, chunk := range tbl.Column(colIdx).Data().Chunks() {
			for pos := 0; pos < chunk.Len(); pos++ {
				t.rows[rowIdx][colIdx] = arrowValue(chunk, pos)
				rowIdx++
			}
		}
	}
	return t, nil
}

// arrowValue converts one Arrow cell. Integers and floats keep their type,
// strings go through the usual text coercion.
func arrowValue(col arrow.Array, pos int) datatable.Value {
	if col.IsNull(pos) {
		return datatable.NewNullValue()
	}

	switch c := col.(type) {
	case *array.Int8:
		return datatable.NewInt(int64(c.Value(pos)))
	case *array.Int16:
		return datatable.NewInt(int64(c.Value(pos)))
	case *array.Int32:
		return datatable.NewInt(int64(c.Value(pos)))
	case *array.Int64:
		return datatable.NewInt(c.Value(pos))
	case *array.Uint8:
		return datatable.NewInt(int64(c.Value(pos)))
	case *array.Uint16:
		return datatable.NewInt(int64(c.Value(pos)))
	case *array.Uint32:
		return datatable.NewInt(int64(c.Value(pos)))
	case *array.Uint64:
		if v := c.Value(pos); v <= math.MaxInt64 {
			return datatable.NewInt(int64(v))
		}
		return datatable.NewFloat(float64(c.Value(pos)))
	case *array.Float32:
		return datatable.NewFloat(float64(c.Value(pos)))
	case *array.Float64:
		return datatable.NewFloat(c.Value(pos))
	case *array.Boolean:
		if c.Value(pos) {
			return datatable.NewInt(1)
		}
		return datatable.NewInt(0)
	case *array.String:
		return datatable.ParseValue(c.Value(pos))
	case *array.LargeString:
		return datatable.ParseValue(c.Value(pos))
	default:
		return datatable.ParseValue(col.ValueStr(pos))
	}
}

// arrowTable builds an Arrow table from the store. Integer columns become
// int64, other numeric columns float64 and everything else string.
func (s *TableStore) arrowTable() arrow.Table {
	mem := memory.NewGoAllocator()

	fields := make([]arrow.Field, len(s.columns))
	for i, name := range s.columns {
		var dt arrow.DataType
		switch s.columnType(i) {
		case datatable.TypeInt:
			dt = arrow.PrimitiveTypes.Int64
		case datatable.TypeFloat:
			dt = arrow.PrimitiveTypes.Float64
		default:
			dt = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: name, Type: dt, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for _, row := range s.rows {
		for i, v := range row {
			switch fb := b.Field(i).(type) {
			case *array.Int64Builder:
				if v.IsNull() {
					fb.AppendNull()
				} else {
					fb.Append(v.Int())
				}
			case *array.Float64Builder:
				if f, ok := v.Number(); ok {
					fb.Append(f)
				} else {
					fb.AppendNull()
				}
			case *array.StringBuilder:
				if v.IsNull() {
					fb.AppendNull()
				} else {
					fb.Append(v.String())
				}
			}
		}
	}

	rec := b.NewRecord()
	defer rec.Release()

	return array.NewTableFromRecords(schema, []arrow.Record{rec})
}

// exportParquet writes the table to a Snappy-compressed Parquet file.
func (s *TableStore) exportParquet(filePath string) error {
	tbl := s.arrowTable()
	defer tbl.Release()

	out, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("%w: failed to create parquet file: %v", datatable.ErrIO, err)
	}
	defer out.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(tbl.Schema(), out, props, arrowProps)
	if err != nil {
		return fmt.Errorf("%w: failed to create parquet writer: %v", datatable.ErrExportFailed, err)
	}

	if err := writer.WriteTable(tbl, max(tbl.NumRows(), 1)); err != nil {
		writer.Close()
		return fmt.Errorf("%w: failed to write table to parquet: %v", datatable.ErrExportFailed, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("%w: failed to close parquet writer: %v", datatable.ErrIO, err)
	}
	return nil
}
