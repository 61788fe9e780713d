package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tedit/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tedit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	as := assert.New(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	as.Equal(config.DefaultDataDir, cfg.DataDir)
	as.Equal(config.DefaultOutputFile, cfg.OutputFile)
	as.Equal(800, cfg.Chart.Width)
	as.Equal(500, cfg.Chart.Height)
	as.Equal(1000, cfg.Window.Width)
}

func TestLoadYAML(t *testing.T) {
	as := assert.New(t)
	path := writeConfig(t, `
data_dir: /var/lib/titanic
output_file: cleaned.csv
chart:
  width: 1024
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	as.Equal("/var/lib/titanic", cfg.DataDir)
	as.Equal("cleaned.csv", cfg.OutputFile)
	as.Equal(1024, cfg.Chart.Width)
	// Unset keys keep their defaults.
	as.Equal(500, cfg.Chart.Height)
	as.Equal(650, cfg.Window.Height)
}

func TestLoadEnvOverrides(t *testing.T) {
	as := assert.New(t)
	t.Setenv("TITANIC_DATA_DIR", "out")
	t.Setenv("TITANIC_OUTPUT_FILE", "env.csv")
	t.Setenv("TITANIC_CHART_HEIGHT", "300")

	cfg, err := config.Load(writeConfig(t, "data_dir: ignored\n"))
	require.NoError(t, err)
	as.Equal("out", cfg.DataDir)
	as.Equal("env.csv", cfg.OutputFile)
	as.Equal(300, cfg.Chart.Height)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "chart: [1, 2"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "output_file: sub/dir.csv\n"))
	assert.ErrorContains(t, err, "invalid config")

	_, err = config.Load(writeConfig(t, "window:\n  width: 0\n"))
	assert.ErrorContains(t, err, "invalid config")

	t.Setenv("TITANIC_CHART_WIDTH", "wide")
	_, err = config.Load("")
	assert.ErrorContains(t, err, "TITANIC_CHART_WIDTH")
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEDIT_TEST_VALUE", "")
	assert.Equal(t, "fallback", config.GetEnvOrDefault("TEDIT_TEST_VALUE", "fallback"))

	t.Setenv("TEDIT_TEST_VALUE", "set")
	assert.Equal(t, "set", config.GetEnvOrDefault("TEDIT_TEST_VALUE", "fallback"))

	t.Setenv("TEDIT_TEST_INT", "42")
	n, err := config.GetEnvOrDefaultInt("TEDIT_TEST_INT", 1)
	assert.NoError(t, err)
	assert.Equal(t, 42, n)
}
