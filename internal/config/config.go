// Package config provides configuration management for the catalog tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the commands look for a config file when none is given.
const DefaultPath = "configs/catalog.yaml"

// Configuration validation errors.
var (
	ErrMissingInputPath     = errors.New("catalog.input is required")
	ErrMissingOutputPath    = errors.New("catalog.output is required")
	ErrInvalidOutputFormat  = errors.New("catalog.output must be a .json file")
	ErrBlankColumnName      = errors.New("column names must not be blank")
	ErrInvalidTopCountries  = errors.New("catalog.report.top_countries must be non-negative")
	ErrMissingIconSource    = errors.New("icons.source is required")
	ErrMissingIconOutputDir = errors.New("icons.output_dir is required")
	ErrNoIconSizes          = errors.New("icons.sizes must list at least one size")
	ErrInvalidIconSize      = errors.New("icons.sizes entries must be between 1 and 1024")
	ErrInvalidIcoSize       = errors.New("icons.ico_size must be between 1 and 256")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete tool configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Icons   IconsConfig   `yaml:"icons"`
	Logging LoggingConfig `yaml:"logging"`
}

// CatalogConfig contains converter settings.
type CatalogConfig struct {
	Input   string        `yaml:"input"`
	Sheet   string        `yaml:"sheet"`
	Output  string        `yaml:"output"`
	Columns ColumnsConfig `yaml:"columns"`
	Report  ReportConfig  `yaml:"report"`
	Backup  bool          `yaml:"backup"`
}

// ColumnsConfig classifies source columns. Columns in neither list are treated as general values.
type ColumnsConfig struct {
	Text []string `yaml:"text"`
	Date []string `yaml:"date"`
}

// ReportConfig controls the summary printed after a conversion.
type ReportConfig struct {
	CountryColumn string `yaml:"country_column"`
	ValueColumn   string `yaml:"value_column"`
	TopCountries  int    `yaml:"top_countries"`
}

// IconsConfig contains icon generator settings.
type IconsConfig struct {
	Source    string `yaml:"source"`
	OutputDir string `yaml:"output_dir"`
	Sizes     []int  `yaml:"sizes"`
	IcoSize   int    `yaml:"ico_size"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used for the mineral collection workbook.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Input:  "Coleccion de minerales.xlsx",
			Output: "catalogo_minerales.json",
			Backup: true,
			Columns: ColumnsConfig{
				Text: []string{
					"Variedad", "Min_asociado", "Transparencia", "Cristal (mm)",
					"Fecha Adquisición", "Precio Compra", "Notas", "Info",
					"Brillo", "Color", "Hábito / Morfología",
				},
				Date: []string{"Fecha Adquisición", "Fecha Tasación"},
			},
			Report: ReportConfig{
				CountryColumn: "Pais",
				ValueColumn:   "Valor estimado (€)",
				TopCountries:  5,
			},
		},
		Icons: IconsConfig{
			Source:    "icon-source.png",
			OutputDir: "icons",
			Sizes:     []int{72, 96, 128, 144, 152, 192, 384, 512},
			IcoSize:   72,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file, overlaid on Default.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Resolve loads path if given, else DefaultPath if it exists, else Default.
// Environment overrides are applied on top.
func Resolve(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}

	cfg := Default()

	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	cfg.ApplyEnv()

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads variables from the given .env files (default ".env") into the
// process environment. Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var existing []string

	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}

	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	return nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv() {
	c.Catalog.Input = getEnv("CATALOG_INPUT", c.Catalog.Input)
	c.Catalog.Output = getEnv("CATALOG_OUTPUT", c.Catalog.Output)
	c.Catalog.Sheet = getEnv("CATALOG_SHEET", c.Catalog.Sheet)
	c.Icons.Source = getEnv("ICONS_SOURCE", c.Icons.Source)
	c.Icons.OutputDir = getEnv("ICONS_OUTPUT_DIR", c.Icons.OutputDir)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.ValidateCatalog(); err != nil {
		return err
	}

	if err := c.ValidateIcons(); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return ErrInvalidLogLevel
	}

	return nil
}

// ValidateCatalog validates the converter section.
func (c *Config) ValidateCatalog() error {
	if strings.TrimSpace(c.Catalog.Input) == "" {
		return ErrMissingInputPath
	}

	if strings.TrimSpace(c.Catalog.Output) == "" {
		return ErrMissingOutputPath
	}

	if !strings.EqualFold(filepath.Ext(c.Catalog.Output), ".json") {
		return ErrInvalidOutputFormat
	}

	for i, name := range c.Catalog.Columns.Text {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: columns.text[%d]", ErrBlankColumnName, i)
		}
	}

	for i, name := range c.Catalog.Columns.Date {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: columns.date[%d]", ErrBlankColumnName, i)
		}
	}

	if c.Catalog.Report.TopCountries < 0 {
		return ErrInvalidTopCountries
	}

	return nil
}

// ValidateIcons validates the icon generator section.
func (c *Config) ValidateIcons() error {
	if strings.TrimSpace(c.Icons.Source) == "" {
		return ErrMissingIconSource
	}

	if strings.TrimSpace(c.Icons.OutputDir) == "" {
		return ErrMissingIconOutputDir
	}

	if len(c.Icons.Sizes) == 0 {
		return ErrNoIconSizes
	}

	for i, size := range c.Icons.Sizes {
		if size < 1 || size > 1024 {
			return fmt.Errorf("%w: sizes[%d]=%d", ErrInvalidIconSize, i, size)
		}
	}

	if c.Icons.IcoSize < 1 || c.Icons.IcoSize > 256 {
		return ErrInvalidIcoSize
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Output: %s, TextColumns: %d, DateColumns: %d, Icons: %d}",
		c.Catalog.Input,
		c.Catalog.Output,
		len(c.Catalog.Columns.Text),
		len(c.Catalog.Columns.Date),
		len(c.Icons.Sizes),
	)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}
