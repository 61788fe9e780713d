package store_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tedit/datatable"
	"tedit/store"
)

func TestDetectFileType(t *testing.T) {
	as := assert.New(t)

	as.Equal(store.FileTypeCSV, store.DetectFileType("train.csv"))
	as.Equal(store.FileTypeCSV, store.DetectFileType("TRAIN.CSV"))
	as.Equal(store.FileTypeParquet, store.DetectFileType("a/b.Parquet"))
	as.Equal(store.FileTypeSpreadsheet, store.DetectFileType("train.xlsx"))
	as.Equal(store.FileTypeSpreadsheet, store.DetectFileType("train.txt"))
	as.Equal("spreadsheet", store.FileTypeSpreadsheet.String())
}

func TestLoadCSV(t *testing.T) {
	as := assert.New(t)
	s := loadCSV(t,
		"\ufeffPassengerId,Name,Age,Fare",
		`1,"Braund, Mr. Owen Harris",22,7.25`,
		`2,"Cumings, Mrs. John",,71.2833`)

	as.Equal([]string{"PassengerId", "Name", "Age", "Fare"}, s.Columns())
	as.Equal(2, s.RowCount())
	as.True(cell(t, s, 0, "Name").Equal(datatable.NewText("Braund, Mr. Owen Harris")))
	as.True(cell(t, s, 0, "Age").Equal(datatable.NewInt(22)))
	as.True(cell(t, s, 1, "Age").IsNull())
	as.True(cell(t, s, 1, "Fare").Equal(datatable.NewFloat(71.2833)))
}

func TestLoadCSVShortRows(t *testing.T) {
	s := loadCSV(t, "PassengerId,Name,Age", "1,Allen")
	assert.True(t, cell(t, s, 0, "Age").IsNull())
}

func TestLoadCSVMissingMarkers(t *testing.T) {
	as := assert.New(t)
	s := loadCSV(t,
		"PassengerId,Age,Fare,Cabin",
		"1,22,7.25,NA",
		"2,NaN,8.05,#N/A",
		"3, nan ,null,None",
		"4,N/A,NULL,C85")

	for row := 0; row < 3; row++ {
		as.Truef(cell(t, s, row, "Cabin").IsNull(), "Cabin row %d", row)
	}
	as.True(cell(t, s, 1, "Age").IsNull())
	as.True(cell(t, s, 2, "Age").IsNull())
	as.True(cell(t, s, 3, "Age").IsNull())
	as.True(cell(t, s, 2, "Fare").IsNull())
	as.True(cell(t, s, 3, "Fare").IsNull())
	as.True(cell(t, s, 3, "Cabin").Equal(datatable.NewText("C85")))
	as.Equal([]string{"PassengerId", "Age", "Fare"}, s.NumericColumns())
}

func TestLoadCSVManglesHeader(t *testing.T) {
	s := loadCSV(t, "Name,,Name,Name,", "a,b,c,d,e")
	assert.Equal(t, []string{"Name", "Unnamed: 1", "Name.1", "Name.2", "Unnamed: 4"}, s.Columns())
}

func TestLoadReplacesContents(t *testing.T) {
	s := loadCSV(t, "PassengerId,Name", "1,Allen", "2,Bonnell")
	require.NoError(t, s.Load(writeFile(t, "other.csv", "Ticket\nA/5\n")))

	assert.Equal(t, []string{"Ticket"}, s.Columns())
	assert.Equal(t, 1, s.RowCount())
}

func TestLoadNotFound(t *testing.T) {
	s := newStore(t)
	err := s.Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, datatable.ErrNotFound)
}

func TestLoadFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"empty csv", "empty.csv", ""},
		{"too many fields", "wide.csv", "a,b\n1,2,3\n"},
		{"bad quoting", "quote.csv", "a,b\n\"1,2\n"},
		{"unknown extension", "notes.txt", "a,b\n1,2\n"},
		{"not a workbook", "fake.xlsx", "a,b\n1,2\n"},
		{"not parquet", "fake.parquet", "a,b\n1,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadCSV(t, "PassengerId", "1")
			err := s.Load(writeFile(t, tt.file, tt.content))
			assert.ErrorIs(t, err, datatable.ErrFileFormat)
			// A failed load keeps the previous table.
			assert.Equal(t, []string{"PassengerId"}, s.Columns())
			assert.Equal(t, 1, s.RowCount())
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	s := newStore(t)
	assert.ErrorIs(t, s.Load(t.TempDir()), datatable.ErrFileFormat)
}

func TestLoadXLSX(t *testing.T) {
	as := assert.New(t)

	sheet := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
  <row r="1">
    <c r="A1" t="s"><v>0</v></c>
    <c r="B1" t="s"><v>1</v></c>
    <c r="C1" t="s"><v>2</v></c>
  </row>
  <row r="2">
    <c r="A2"><v>1</v></c>
    <c r="B2" t="s"><v>3</v></c>
    <c r="C2"><v>22.5</v></c>
  </row>
  <row r="4">
    <c r="A4"><v>2</v></c>
    <c r="B4" t="inlineStr"><is><t>FEMALE</t></is></c>
  </row>
</sheetData>
</worksheet>`
	path := writeXLSX(t, sheet, []string{"PassengerId", "Sex", "Age", "male"})

	s := newStore(t)
	require.NoError(t, s.Load(path))

	as.Equal([]string{"PassengerId", "Sex", "Age"}, s.Columns())
	// The blank third row is skipped.
	require.Equal(t, 2, s.RowCount())
	as.True(cell(t, s, 0, "PassengerId").Equal(datatable.NewInt(1)))
	as.True(cell(t, s, 0, "Sex").Equal(datatable.NewText("male")))
	as.True(cell(t, s, 0, "Age").Equal(datatable.NewFloat(22.5)))
	as.True(cell(t, s, 1, "Sex").Equal(datatable.NewText("FEMALE")))
	as.True(cell(t, s, 1, "Age").IsNull())
}

// writeXLSX builds a one-sheet workbook in a temporary directory.
func writeXLSX(t *testing.T, sheet string, sharedStrings []string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "manifest.xlsx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	var ss strings.Builder
	ss.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
	for _, s := range sharedStrings {
		ss.WriteString("<si><t>" + s + "</t></si>")
	}
	ss.WriteString("</sst>")

	files := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
  <Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>
  <Override PartName="/xl/sharedStrings.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"/>
</Types>`},
		{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`},
		{"xl/_rels/workbook.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="sharedStrings.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`},
		{"xl/workbook.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets>
  <sheet name="train" sheetId="1" r:id="rId2"/>
</sheets>
</workbook>`},
		{"xl/sharedStrings.xml", ss.String()},
		{"xl/worksheets/sheet1.xml", sheet},
	}

	zw := zip.NewWriter(f)
	for _, file := range files {
		w, err := zw.Create(file.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(file.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}
