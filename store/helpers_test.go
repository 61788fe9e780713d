package store_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tedit/datatable"
	"tedit/store"
)

// newStore returns a store saving into a temporary directory.
func newStore(t *testing.T) *store.TableStore {
	t.Helper()
	return store.New(filepath.Join(t.TempDir(), "data"), "")
}

// rawRow builds a row from column/text pairs, coercing each text.
func rawRow(pairs ...string) *datatable.Row {
	row := datatable.NewRow()
	for i := 0; i+1 < len(pairs); i += 2 {
		row.Set(pairs[i], datatable.ParseValue(pairs[i+1]))
	}
	return row
}

// writeFile writes content to name inside a temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// loadCSV loads the given lines as a CSV file.
func loadCSV(t *testing.T, lines ...string) *store.TableStore {
	t.Helper()
	s := newStore(t)
	require.NoError(t, s.Load(writeFile(t, "in.csv", strings.Join(lines, "\n")+"\n")))
	return s
}

// cell returns the value of col in row.
func cell(t *testing.T, s *store.TableStore, row int, col string) datatable.Value {
	t.Helper()
	r, err := s.Row(row)
	require.NoError(t, err)
	v, ok := r.Get(col)
	require.Truef(t, ok, "column %s missing", col)
	return v
}
