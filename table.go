package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"tedit/report"
	"tedit/store"
	"tedit/visualizer"
)

var (
	cleanCommand = app.Command("clean", "Clean a manifest and save it to the data directory.")
	cleanFile    = cleanCommand.Arg("file", "The manifest to clean.").Required().ExistingFile()
	cleanOutput  = cleanCommand.Flag("output", "Output file name inside the data directory.").String()

	showCommand = app.Command("show", "Print a manifest as a table.")
	showFile    = showCommand.Arg("file", "The manifest to print.").Required().ExistingFile()
	showLimit   = showCommand.Flag("limit", "Maximum rows to print (0 prints all).").Default("20").Int()

	groupCommand = app.Command("group", "Sum a numeric column grouped by another column.")
	groupFile    = groupCommand.Arg("file", "The manifest to group.").Required().ExistingFile()
	groupX       = groupCommand.Flag("x", "Column to group by.").Required().String()
	groupY       = groupCommand.Flag("y", "Numeric column to sum.").Required().String()
	groupChart   = groupCommand.Flag("chart", "Also write a PNG bar chart to this path.").String()

	validateCommand = app.Command("validate", "Report rows that fail the manifest rules.")
	validateFile    = validateCommand.Arg("file", "The manifest to check.").Required().ExistingFile()

	exportCommand = app.Command("export", "Convert a manifest to CSV, Parquet or JSON.")
	exportFile    = exportCommand.Arg("file", "The manifest to convert.").Required().ExistingFile()
	exportOutput  = exportCommand.Arg("output", "Destination path.").Required().String()
	exportFormat  = exportCommand.Flag("format", "Output format; defaults to the destination extension.").
			Enum("csv", "parquet", "json")
)

func doClean() {
	cfg := loadConfig()
	if *cleanOutput != "" {
		cfg.OutputFile = *cleanOutput
	}
	st := loadStore(cfg, *cleanFile)

	before := st.RowCount()
	path, err := st.Clean()
	kingpin.FatalIfError(err, "Cleaning failed")

	logger.Info().Int("before", before).Int("after", st.RowCount()).Str("path", path).Msg("cleaned")
	fmt.Println(path)
}

func doShow() {
	st := loadStore(loadConfig(), *showFile)
	kingpin.FatalIfError(report.Rows(os.Stdout, st, *showLimit), "show")
}

func doGroup() {
	cfg := loadConfig()
	st := loadStore(cfg, *groupFile)

	groups, err := st.Grouped(*groupX, *groupY)
	kingpin.FatalIfError(err, "Unable to group")
	report.Groups(os.Stdout, groups, *groupX, *groupY)

	if *groupChart == "" {
		return
	}
	fd, err := os.Create(*groupChart)
	kingpin.FatalIfError(err, "Unable to create %s", *groupChart)
	defer fd.Close()

	opts := visualizer.Options{Width: cfg.Chart.Width, Height: cfg.Chart.Height}
	err = visualizer.RenderBarChart(fd, groups, *groupX, *groupY, opts)
	kingpin.FatalIfError(err, "Unable to draw chart")
}

func doValidate() {
	st := loadStore(loadConfig(), *validateFile)
	findings, err := report.Validate(st)
	kingpin.FatalIfError(err, "validate")
	report.Findings(os.Stdout, findings)
	if len(findings) > 0 {
		os.Exit(1)
	}
}

func doExport() {
	st := loadStore(loadConfig(), *exportFile)
	format, err := store.ParseExportFormat(*exportFormat, *exportOutput)
	kingpin.FatalIfError(err, "export")
	kingpin.FatalIfError(st.Export(*exportOutput, format), "Unable to export")
}

func init() {
	commandHandlers = append(commandHandlers, func(command string) bool {
		switch command {
		case cleanCommand.FullCommand():
			doClean()
		case showCommand.FullCommand():
			doShow()
		case groupCommand.FullCommand():
			doGroup()
		case validateCommand.FullCommand():
			doValidate()
		case exportCommand.FullCommand():
			doExport()
		default:
			return false
		}
		return true
	})
}
