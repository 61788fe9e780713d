package windows

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
)

// dataFileExtensions are the files the store can load.
var dataFileExtensions = []string{".csv", ".xlsx", ".xlsm", ".parquet"}

func isDataFile(name string) bool {
	return slices.Contains(dataFileExtensions, strings.ToLower(filepath.Ext(name)))
}

// DataFileDialog browses the file system for a manifest file. The callback
// receives the full path of the chosen file.
type DataFileDialog struct {
	dialog      dialog.Dialog
	window      fyne.Window
	callback    func(string, error)
	fileList    *widget.List
	files       []string
	startDir    string
	currentPath string
	pathLabel   *widget.Label
}

func NewDataFileDialog(w fyne.Window, callback func(string, error)) *DataFileDialog {
	startDir, err := os.Getwd()
	if err != nil {
		startDir = "."
	}
	return &DataFileDialog{
		window:      w,
		callback:    callback,
		files:       make([]string, 0),
		startDir:    startDir,
		currentPath: startDir,
	}
}

func (fd *DataFileDialog) Show() {
	fd.pathLabel = widget.NewLabel(fd.currentPath)
	fd.pathLabel.Truncation = fyne.TextTruncateEllipsis
	fd.pathLabel.TextStyle = fyne.TextStyle{Bold: true}

	fd.fileList = widget.NewList(
		func() int {
			return len(fd.files)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.DocumentIcon()), widget.NewLabel("template"), widget.NewLabel(""))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			cont := obj.(*fyne.Container)
			icon := cont.Objects[0].(*widget.Icon)
			label := cont.Objects[1].(*widget.Label)
			size := cont.Objects[2].(*widget.Label)

			name := fd.files[id]
			label.SetText(name)
			size.SetText("")

			info, err := os.Stat(filepath.Join(fd.currentPath, name))
			switch {
			case err == nil && info.IsDir():
				icon.SetResource(theme.FolderIcon())
			case err == nil:
				icon.SetResource(theme.FileIcon())
				size.SetText(humanize.Bytes(uint64(info.Size())))
			default:
				icon.SetResource(theme.DocumentIcon())
			}
		},
	)

	fd.fileList.OnSelected = func(id widget.ListItemID) {
		fullPath := filepath.Join(fd.currentPath, fd.files[id])
		info, err := os.Stat(fullPath)
		if err != nil {
			return
		}
		if info.IsDir() {
			fd.currentPath = fullPath
			fd.loadDirectory()
			fd.fileList.UnselectAll()
			return
		}
		fd.dialog.Hide()
		fd.callback(fullPath, nil)
	}

	startButton := widget.NewButtonWithIcon("Start", theme.HomeIcon(), func() {
		fd.currentPath = fd.startDir
		fd.loadDirectory()
	})
	upButton := widget.NewButtonWithIcon("Up", theme.NavigateBackIcon(), func() {
		parent := filepath.Dir(fd.currentPath)
		if parent != fd.currentPath {
			fd.currentPath = parent
			fd.loadDirectory()
		}
	})
	refreshButton := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), fd.loadDirectory)

	filterInfo := widget.NewLabel("Showing: " + strings.Join(dataFileExtensions, ", ") + " files and directories")
	filterInfo.TextStyle = fyne.TextStyle{Italic: true}

	navToolbar := container.NewBorder(
		nil, nil,
		container.NewHBox(startButton, upButton, refreshButton),
		nil,
		fd.pathLabel,
	)

	content := container.NewBorder(
		container.NewVBox(navToolbar, widget.NewSeparator(), filterInfo),
		nil, nil, nil,
		fd.fileList,
	)

	fd.dialog = dialog.NewCustom("Open manifest", "Close", content, fd.window)
	fd.dialog.Resize(fyne.NewSize(720, 520))
	fd.loadDirectory()
	fd.dialog.Show()
}

func (fd *DataFileDialog) loadDirectory() {
	entries, err := os.ReadDir(fd.currentPath)
	if err != nil {
		dialog.ShowError(err, fd.window)
		return
	}

	fd.files = fd.files[:0]
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			fd.files = append(fd.files, entry.Name())
		}
	}
	for _, entry := range entries {
		if !entry.IsDir() && isDataFile(entry.Name()) {
			fd.files = append(fd.files, entry.Name())
		}
	}

	fd.pathLabel.SetText(fd.currentPath)
	fd.fileList.Refresh()
}
