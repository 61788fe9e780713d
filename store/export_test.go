package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tedit/datatable"
	"tedit/store"
)

func TestSave(t *testing.T) {
	as := assert.New(t)
	s := loadCSV(t, "PassengerId,Name,Age,Cabin", `1,"Braund, Mr. Owen",22.0,`, "2,Allen,35,C85")

	path, err := s.Save("")
	require.NoError(t, err)
	as.Equal(filepath.Join(s.DataDir(), "titanic.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	as.Equal("PassengerId,Name,Age,Cabin\n"+
		"1,\"Braund, Mr. Owen\",22.0,\n"+
		"2,Allen,35,C85\n", string(data))
}

func TestSaveNamedFileOverwrites(t *testing.T) {
	s := loadCSV(t, "PassengerId", "1")

	path := filepath.Join(s.DataDir(), "named.csv")
	require.NoError(t, os.MkdirAll(s.DataDir(), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("old contents that are longer\n"), 0o644))

	got, err := s.Save("named.csv")
	require.NoError(t, err)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PassengerId\n1\n", string(data))
}

func TestSaveRoundTrip(t *testing.T) {
	s := loadCSV(t, "PassengerId,Name,Age,Fare", `1,"Braund, Mr. Owen",22,-7.25`, "2,,,")

	path, err := s.Save("")
	require.NoError(t, err)

	reloaded := newStore(t)
	require.NoError(t, reloaded.Load(path))
	assert.Equal(t, snapshot(t, s), snapshot(t, reloaded))
	assert.Equal(t, s.Columns(), reloaded.Columns())
}

func TestSaveIOError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	s := store.New(filepath.Join(blocker, "data"), "")
	s.AddRow(rawRow("PassengerId", "1"))

	_, err := s.Save("")
	assert.ErrorIs(t, err, datatable.ErrIO)
}

func TestParseExportFormat(t *testing.T) {
	as := assert.New(t)

	f, err := store.ParseExportFormat("", "out/titanic.PARQUET")
	as.NoError(err)
	as.Equal(store.FormatParquet, f)

	f, err = store.ParseExportFormat("json", "out.csv")
	as.NoError(err)
	as.Equal(store.FormatJSON, f)

	_, err = store.ParseExportFormat("", "out.xlsx")
	as.ErrorIs(err, datatable.ErrFileFormat)
}

func TestExportJSON(t *testing.T) {
	as := assert.New(t)
	s := loadCSV(t, "PassengerId,Name,Age,Cabin", "1,Allen,29.5,", "2,Bonnell,58,C103")

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, s.Export(path, store.FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	as.Equal(float64(1), records[0]["PassengerId"])
	as.Equal("Allen", records[0]["Name"])
	as.Equal(29.5, records[0]["Age"])
	as.Nil(records[0]["Cabin"])
	as.Equal("C103", records[1]["Cabin"])

	// Keys follow column order.
	text := string(data)
	as.Less(strings.Index(text, `"PassengerId"`), strings.Index(text, `"Name"`))
	as.Less(strings.Index(text, `"Name"`), strings.Index(text, `"Age"`))
	as.Less(strings.Index(text, `"Age"`), strings.Index(text, `"Cabin"`))
}

func TestExportParquetRoundTrip(t *testing.T) {
	as := assert.New(t)
	s := loadCSV(t, "PassengerId,Name,Age,Cabin,Fare",
		"1,Allen,29,,7.25",
		"2,Bonnell,,C103,26",
		"3,Cumings,38,,")

	path := filepath.Join(t.TempDir(), "out.parquet")
	require.NoError(t, s.Export(path, store.FormatParquet))

	reloaded := newStore(t)
	require.NoError(t, reloaded.Load(path))
	as.Equal(s.Columns(), reloaded.Columns())
	as.Equal(3, reloaded.RowCount())

	as.True(cell(t, reloaded, 0, "PassengerId").Equal(datatable.NewInt(1)))
	as.True(cell(t, reloaded, 1, "Age").IsNull())
	as.True(cell(t, reloaded, 2, "Age").Equal(datatable.NewInt(38)))
	as.True(cell(t, reloaded, 1, "Cabin").Equal(datatable.NewText("C103")))
	as.True(cell(t, reloaded, 0, "Cabin").IsNull())
	// Fare mixes integers and floats, so it is written as a float column.
	as.True(cell(t, reloaded, 1, "Fare").Equal(datatable.NewFloat(26)))
	as.True(cell(t, reloaded, 2, "Fare").IsNull())
}

func TestExportCSVToPath(t *testing.T) {
	s := loadCSV(t, "PassengerId,Sex", "1,male")

	path := filepath.Join(t.TempDir(), "copy.csv")
	require.NoError(t, s.Export(path, store.FormatCSV))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PassengerId,Sex\n1,male\n", string(data))
}

func TestExportUnknownFormat(t *testing.T) {
	s := loadCSV(t, "PassengerId", "1")
	err := s.Export(filepath.Join(t.TempDir(), "x"), store.ExportFormat("xml"))
	assert.ErrorIs(t, err, datatable.ErrFileFormat)
}
