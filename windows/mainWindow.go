package windows

import (
	"errors"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tedit/config"
	"tedit/store"
)

// MainWindow is the editor: a toolbar, the table browser and a status bar.
type MainWindow struct {
	a           fyne.App
	w           fyne.Window
	cfg         *config.Config
	store       *store.TableStore
	top, bottom fyne.CanvasObject
	dataBrowser *DataBrowser
	statusBar   *widget.Label
	fileName    string
}

// CreateMainWindow builds the editor window on a new Fyne application.
func CreateMainWindow(cfg *config.Config, st *store.TableStore) *MainWindow {
	return newMainWindow(app.NewWithID("tedit"), cfg, st)
}

func newMainWindow(a fyne.App, cfg *config.Config, st *store.TableStore) *MainWindow {
	t := &MainWindow{a: a, cfg: cfg, store: st}
	t.NewMainWindow()
	return t
}

// SetStatus updates the status bar message
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

// Status returns the status bar message.
func (t *MainWindow) Status() string {
	if t.statusBar == nil {
		return ""
	}
	return t.statusBar.Text
}

func (t *MainWindow) NewMainWindow() {
	t.a.Settings().SetTheme(&CustomTheme{})

	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}
	t.bottom = container.NewHBox(t.statusBar)

	t.w = t.a.NewWindow("Titanic Manifest Editor")
	t.w.Resize(fyne.NewSize(float32(t.cfg.Window.Width), float32(t.cfg.Window.Height)))

	t.dataBrowser = NewDataBrowser(t.store, t.SetStatus)

	t.top = widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), t.OpenFile),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), t.Save),
		widget.NewToolbarAction(theme.UploadIcon(), t.Export),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentAddIcon(), t.AddRow),
		widget.NewToolbarAction(theme.DocumentCreateIcon(), t.EditRow),
		widget.NewToolbarAction(theme.DeleteIcon(), t.DeleteRow),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), t.Clean),
		widget.NewToolbarAction(theme.GridIcon(), t.ShowChart),
		widget.NewToolbarSpacer(),
	)

	c := container.NewBorder(t.top, t.bottom, nil, nil, widget.NewCard("", "", t.dataBrowser.Widget()))
	t.w.SetContent(c)
}

// ShowAndRun shows the window and runs the application loop.
func (t *MainWindow) ShowAndRun() {
	t.w.ShowAndRun()
}

// OpenFile lets the user pick a data file and loads it.
func (t *MainWindow) OpenFile() {
	NewDataFileDialog(t.w, func(path string, err error) {
		if err != nil {
			t.SetStatus("Error opening file")
			dialog.ShowError(err, t.w)
			return
		}
		if path == "" {
			return
		}
		t.handleDataFileLoad(path)
	}).Show()
}

// Save writes the table to the configured output file.
func (t *MainWindow) Save() {
	path, err := t.store.Save("")
	if err != nil {
		t.SetStatus("Error saving table")
		dialog.ShowError(err, t.w)
		return
	}
	t.SetStatus("Saved to " + path)
}

// Export asks for a destination and writes the table there.
func (t *MainWindow) Export() {
	if t.store.ColumnCount() == 0 {
		dialog.ShowInformation("Export", "Load a table first.", t.w)
		return
	}
	NewExportDialog(t.w, t.store.DataDir(), func(path string, format store.ExportFormat) {
		if err := t.store.Export(path, format); err != nil {
			t.SetStatus("Export failed")
			dialog.ShowError(err, t.w)
			return
		}
		t.SetStatus(fmt.Sprintf("Exported %s to %s", format, path))
	}).Show()
}

// AddRow opens an empty row form.
func (t *MainWindow) AddRow() {
	columns := t.store.Columns()
	if len(columns) == 0 {
		columns = store.ManifestColumns
	}
	NewRowForm(t.w, columns, nil, func(row rowSubmission) error {
		return t.applyRow(-1, row)
	}).Show()
}

// EditRow opens the form for the selected row.
func (t *MainWindow) EditRow() {
	index := t.dataBrowser.SelectedRow()
	current, err := t.store.Row(index)
	if err != nil {
		dialog.ShowInformation("Edit row", "Select a row first.", t.w)
		return
	}
	NewRowForm(t.w, t.store.Columns(), current, func(row rowSubmission) error {
		return t.applyRow(index, row)
	}).Show()
}

// applyRow validates a submitted row and adds it (index < 0) or updates the
// row at index.
func (t *MainWindow) applyRow(index int, sub rowSubmission) error {
	if ok, msg := store.Validate(sub.row); !ok {
		return errors.New(msg)
	}
	if index < 0 {
		t.store.AddRow(sub.row)
		t.dataBrowser.Refresh()
		t.SetStatus(fmt.Sprintf("Added row %d", t.store.RowCount()-1))
		return nil
	}
	if err := t.store.UpdateRow(index, sub.row); err != nil {
		return err
	}
	t.dataBrowser.Refresh()
	t.SetStatus(fmt.Sprintf("Updated row %d (%d fields)", index, sub.row.Len()))
	return nil
}

// DeleteRow removes the selected row after confirmation.
func (t *MainWindow) DeleteRow() {
	index := t.dataBrowser.SelectedRow()
	if index < 0 || index >= t.store.RowCount() {
		dialog.ShowInformation("Delete row", "Select a row first.", t.w)
		return
	}
	dialog.ShowConfirm("Delete row",
		fmt.Sprintf("Delete row %d? Rows below it move up by one.", index),
		func(ok bool) {
			if ok {
				t.deleteRow(index)
			}
		}, t.w)
}

func (t *MainWindow) deleteRow(index int) {
	if err := t.store.DeleteRow(index); err != nil {
		dialog.ShowError(err, t.w)
		return
	}
	t.dataBrowser.ClearSelection()
	t.dataBrowser.Refresh()
	t.SetStatus(fmt.Sprintf("Deleted row %d", index))
}

// Clean runs the cleaning pass after confirmation.
func (t *MainWindow) Clean() {
	dialog.ShowConfirm("Clean data",
		"Fill missing values, normalise text, drop duplicate passengers and save?",
		func(ok bool) {
			if ok {
				t.clean()
			}
		}, t.w)
}

func (t *MainWindow) clean() {
	before := t.store.RowCount()
	path, err := t.store.Clean()
	t.dataBrowser.ClearSelection()
	t.dataBrowser.Refresh()
	if err != nil {
		t.SetStatus("Cleaning failed")
		dialog.ShowError(err, t.w)
		return
	}
	t.SetStatus(fmt.Sprintf("Cleaned %d -> %d rows, saved to %s", before, t.store.RowCount(), filepath.Clean(path)))
}

// ShowChart opens the chart configuration popup.
func (t *MainWindow) ShowChart() {
	if t.store.RowCount() == 0 {
		return
	}
	NewChartDialog(t.a, t.w, t.store, t.cfg.Chart).Show()
}
