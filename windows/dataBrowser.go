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

package windows

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"tedit/datatable"
)

const (
	minColumnWidth = 100
	maxColumnWidth = 260
)

// DataBrowser shows a DataSource as a grid with a header row and a
// positional row index column.
type DataBrowser struct {
	source         datatable.DataSource
	table          *widget.Table
	selected       int
	tableName      string
	statusCallback func(string)
}

// NewDataBrowser creates a browser over source.
func NewDataBrowser(source datatable.DataSource, statusCallback func(string)) *DataBrowser {
	t := &DataBrowser{
		source:         source,
		selected:       -1,
		statusCallback: statusCallback,
	}

	t.table = widget.NewTableWithHeaders(
		func() (int, int) {
			return t.source.RowCount(), t.source.ColumnCount()
		},
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Truncation = fyne.TextTruncateEllipsis
			return l
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(t.cellText(id.Row, id.Col))
		},
	)
	t.table.CreateHeader = func() fyne.CanvasObject {
		l := widget.NewLabel("")
		l.TextStyle = fyne.TextStyle{Bold: true}
		return l
	}
	t.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		o.(*widget.Label).SetText(t.headerText(id))
	}
	t.table.OnSelected = func(id widget.TableCellID) {
		if id.Row >= 0 {
			t.selected = id.Row
		}
	}
	t.table.OnUnselected = func(id widget.TableCellID) {
		if id.Row == t.selected {
			t.selected = -1
		}
	}
	return t
}

// Widget returns the canvas object to embed in a window.
func (t *DataBrowser) Widget() fyne.CanvasObject {
	return t.table
}

// SetTableName sets the name shown in the status text.
func (t *DataBrowser) SetTableName(name string) {
	t.tableName = name
}

// SelectedRow returns the positional index of the selected row, or -1.
func (t *DataBrowser) SelectedRow() int {
	if t.selected >= t.source.RowCount() {
		return -1
	}
	return t.selected
}

// Select marks row as selected.
func (t *DataBrowser) Select(row int) {
	t.table.Select(widget.TableCellID{Row: row, Col: 0})
	t.selected = row
}

// ClearSelection drops the current selection. Positions shift after
// deletes and cleaning, so a stale index must not survive them.
func (t *DataBrowser) ClearSelection() {
	t.table.UnselectAll()
	t.selected = -1
}

// Refresh re-reads the source, resizes columns and updates the status text.
func (t *DataBrowser) Refresh() {
	t.adjustColumnWidths()
	t.table.Refresh()
	if t.statusCallback != nil {
		t.statusCallback(t.StatusText())
	}
}

// StatusText describes the current shape of the table.
func (t *DataBrowser) StatusText() string {
	name := t.tableName
	if name == "" {
		name = "manifest"
	}
	return fmt.Sprintf("Table %s (%d columns x %d rows)",
		name, t.source.ColumnCount(), t.source.RowCount())
}

func (t *DataBrowser) cellText(row, col int) string {
	v, err := t.source.Cell(row, col)
	if err != nil {
		return ""
	}
	return v.String()
}

func (t *DataBrowser) headerText(id widget.TableCellID) string {
	switch {
	case id.Row < 0 && id.Col >= 0:
		name, err := t.source.ColumnName(id.Col)
		if err != nil {
			return ""
		}
		return name
	case id.Col < 0 && id.Row >= 0:
		return strconv.Itoa(id.Row)
	}
	return ""
}

// adjustColumnWidths sizes each column from its header and a sample of
// its cells.
func (t *DataBrowser) adjustColumnWidths() {
	const sampleRows = 50
	rows := min(t.source.RowCount(), sampleRows)
	for col := 0; col < t.source.ColumnCount(); col++ {
		name, _ := t.source.ColumnName(col)
		longest := len(name)
		for row := 0; row < rows; row++ {
			longest = max(longest, len(t.cellText(row, col)))
		}
		width := float32(longest*9 + 24)
		width = max(width, minColumnWidth)
		width = min(width, maxColumnWidth)
		t.table.SetColumnWidth(col, width)
	}
}
