// Package config loads editor settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir    = "data"
	DefaultOutputFile = "titanic.csv"
)

// Config holds the editor settings.
type Config struct {
	// DataDir is where Save and Clean write, relative to the working
	// directory unless absolute.
	DataDir string `yaml:"data_dir" validate:"required"`
	// OutputFile is the default file name used by Save and Clean.
	OutputFile string `yaml:"output_file" validate:"required,excludesall=/"`

	Chart  ChartConfig  `yaml:"chart"`
	Window WindowConfig `yaml:"window"`
}

type ChartConfig struct {
	Width  int `yaml:"width" validate:"gt=0"`
	Height int `yaml:"height" validate:"gt=0"`
}

type WindowConfig struct {
	Width  int `yaml:"width" validate:"gt=0"`
	Height int `yaml:"height" validate:"gt=0"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataDir:    DefaultDataDir,
		OutputFile: DefaultOutputFile,
		Chart:      ChartConfig{Width: 800, Height: 500},
		Window:     WindowConfig{Width: 1000, Height: 650},
	}
}

// Load reads path (if not empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decoding config %s: %w", path, err)
		}
	}

	cfg.DataDir = GetEnvOrDefault("TITANIC_DATA_DIR", cfg.DataDir)
	cfg.OutputFile = GetEnvOrDefault("TITANIC_OUTPUT_FILE", cfg.OutputFile)

	width, err := GetEnvOrDefaultInt("TITANIC_CHART_WIDTH", cfg.Chart.Width)
	if err != nil {
		return nil, err
	}
	height, err := GetEnvOrDefaultInt("TITANIC_CHART_HEIGHT", cfg.Chart.Height)
	if err != nil {
		return nil, err
	}
	cfg.Chart.Width, cfg.Chart.Height = width, height

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func GetEnvOrDefault(env, defaultVal string) string {
	e := os.Getenv(env)
	if e == "" {
		return defaultVal
	}
	return e
}

func GetEnvOrDefaultInt(env string, defaultVal int) (int, error) {
	e := os.Getenv(env)
	if e == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(e)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s=%q as int: %w", env, e, err)
	}
	return v, nil
}
