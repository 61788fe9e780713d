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
	"errors"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"tedit/store"
)

var exportFormats = []string{
	string(store.FormatCSV),
	string(store.FormatParquet),
	string(store.FormatJSON),
}

// ExportDialog asks for an export format and a destination file name.
type ExportDialog struct {
	window   fyne.Window
	dir      string
	callback func(string, store.ExportFormat)

	format *widget.Select
	name   *widget.Entry
}

func NewExportDialog(w fyne.Window, dir string, callback func(string, store.ExportFormat)) *ExportDialog {
	ed := &ExportDialog{window: w, dir: dir, callback: callback}
	ed.name = widget.NewEntry()
	ed.name.SetText("titanic_export.csv")
	ed.format = widget.NewSelect(exportFormats, ed.formatChanged)
	ed.format.SetSelected(string(store.FormatCSV))
	return ed
}

// formatChanged keeps the file extension in step with the chosen format.
func (ed *ExportDialog) formatChanged(format string) {
	name := ed.name.Text
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		base = "titanic_export"
	}
	ed.name.SetText(base + "." + format)
}

// Path returns the destination the dialog would export to.
func (ed *ExportDialog) Path() string {
	name := strings.TrimSpace(ed.name.Text)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(ed.dir, name)
}

func (ed *ExportDialog) submit() error {
	if strings.TrimSpace(ed.name.Text) == "" {
		return errors.New("file name is required")
	}
	format, err := store.ParseExportFormat(ed.format.Selected, "")
	if err != nil {
		return err
	}
	ed.callback(ed.Path(), format)
	return nil
}

func (ed *ExportDialog) Show() {
	items := []*widget.FormItem{
		widget.NewFormItem("Format", ed.format),
		widget.NewFormItem("File", ed.name),
	}
	items[1].HintText = "Relative names are placed in " + ed.dir
	d := dialog.NewForm("Export table", "Export", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		if err := ed.submit(); err != nil {
			dialog.ShowError(err, ed.window)
		}
	}, ed.window)
	d.Resize(fyne.NewSize(480, 220))
	d.Show()
}
