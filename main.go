package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"

	"tedit/config"
	"tedit/logging"
	"tedit/store"
)

type CommandHandler func(command string) bool

var (
	app = kingpin.New("tedit", "Edit, clean and chart the Titanic passenger manifest.")

	configPath = app.Flag("config", "The configuration file.").Short('c').
			Envar("TITANIC_CONFIG").String()

	dataDir = app.Flag("data-dir", "Directory the cleaned table is saved into.").String()

	verboseFlag = app.Flag("verbose", "Enable debug logging.").Short('v').Bool()

	commandHandlers []CommandHandler

	logger = logging.NewLogger()
)

// loadConfig loads the configuration file and applies command line
// overrides.
func loadConfig() *config.Config {
	cfg, err := config.Load(*configPath)
	kingpin.FatalIfError(err, "Unable to load config")
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	return cfg
}

// loadStore returns a store holding the table in path.
func loadStore(cfg *config.Config, path string) *store.TableStore {
	st := store.NewFromConfig(cfg)
	kingpin.FatalIfError(st.Load(path), "Unable to load %s", path)
	return st
}

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	logging.SetLevel(*verboseFlag)

	for _, handler := range commandHandlers {
		if handler(command) {
			break
		}
	}
}
