package main

import (
	"github.com/alecthomas/kingpin/v2"

	"tedit/store"
	"tedit/windows"
)

var (
	guiCommand = app.Command("gui", "Open the editor window.").Default()
	guiFile    = guiCommand.Arg("file", "A manifest to open at start.").ExistingFile()
)

func doGUI() {
	cfg := loadConfig()
	st := store.NewFromConfig(cfg)

	w := windows.CreateMainWindow(cfg, st)
	if *guiFile != "" {
		kingpin.FatalIfError(w.LoadDataFile(*guiFile), "Unable to open %s", *guiFile)
	}
	w.ShowAndRun()
}

func init() {
	commandHandlers = append(commandHandlers, func(command string) bool {
		switch command {
		case guiCommand.FullCommand():
			doGUI()
		default:
			return false
		}
		return true
	})
}
