// Package config loads renderer configuration from defaults, an optional
// YAML file and CODEVIEW_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all renderer configuration.
type Config struct {
	Render   RenderConfig   `yaml:"render"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Batch    BatchConfig    `yaml:"batch"`
	Log      LogConfig      `yaml:"log"`
}

// RenderConfig controls the composed view.
type RenderConfig struct {
	LineHeight  float64 `envconfig:"CODEVIEW_LINE_HEIGHT" yaml:"line_height"`
	Theme       string  `envconfig:"CODEVIEW_THEME" yaml:"theme"`
	ThemeFile   string  `envconfig:"CODEVIEW_THEME_FILE" yaml:"theme_file"`
	ShowErrors  bool    `envconfig:"CODEVIEW_SHOW_ERRORS" yaml:"show_errors"`
	LineNumbers bool    `envconfig:"CODEVIEW_LINE_NUMBERS" yaml:"line_numbers"`
	TabSize     int     `envconfig:"CODEVIEW_TAB_SIZE" yaml:"tab_size"`
}

// AnalysisConfig controls the analyzer.
type AnalysisConfig struct {
	DeclarationsFile string `envconfig:"CODEVIEW_DECLARATIONS" yaml:"declarations_file"`
	TabWidth         int    `envconfig:"CODEVIEW_TAB_WIDTH" yaml:"tab_width"`
	IndentSize       int    `envconfig:"CODEVIEW_INDENT_SIZE" yaml:"indent_size"`
	Format           bool   `envconfig:"CODEVIEW_FORMAT" yaml:"format"`
}

// BatchConfig controls directory rendering.
type BatchConfig struct {
	Jobs     int   `envconfig:"CODEVIEW_JOBS" yaml:"jobs"` // 0 = number of CPUs
	MaxBytes int64 `envconfig:"CODEVIEW_MAX_BYTES" yaml:"max_bytes"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `envconfig:"CODEVIEW_LOG_LEVEL" yaml:"level"`
	Format string `envconfig:"CODEVIEW_LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from an optional YAML file and the environment.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	setDefaults(cfg)

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	// Environment variables win over the file.
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func setDefaults(cfg *Config) {
	cfg.Render = RenderConfig{
		LineHeight:  20,
		Theme:       "github",
		ShowErrors:  true,
		LineNumbers: true,
		TabSize:     4,
	}

	cfg.Analysis = AnalysisConfig{
		TabWidth:   4,
		IndentSize: 2,
		Format:     true,
	}

	cfg.Batch = BatchConfig{
		MaxBytes: 2 * 1024 * 1024,
	}

	cfg.Log = LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Render.LineHeight <= 0 {
		errs = append(errs, "line_height must be positive")
	}

	if c.Render.Theme == "" && c.Render.ThemeFile == "" {
		errs = append(errs, "one of theme or theme_file is required")
	}

	if c.Render.TabSize < 1 {
		errs = append(errs, "tab_size must be positive")
	}

	if c.Analysis.TabWidth < 1 {
		errs = append(errs, "tab_width must be positive")
	}

	if c.Analysis.IndentSize < 1 {
		errs = append(errs, "indent_size must be positive")
	}

	if c.Batch.Jobs < 0 {
		errs = append(errs, "jobs must not be negative")
	}

	if c.Batch.MaxBytes < 0 {
		errs = append(errs, "max_bytes must not be negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be text or json)", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
