package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "catalog.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

const validConfigYAML = `
catalog:
  input: "data/Coleccion de minerales.xlsx"
  output: "out/catalogo_minerales.json"
  backup: false
  columns:
    text: ["Notas", "Color"]
    date: ["Fecha Tasación"]
  report:
    country_column: "Pais"
    top_countries: 3
icons:
  source: "logo.png"
  output_dir: "out/icons"
  sizes: [16, 32]
  ico_size: 32
logging:
  level: "debug"
`

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config failed validation: %v", err)
	}

	if cfg.Catalog.Output != "catalogo_minerales.json" {
		t.Errorf("Default output = %q, want catalogo_minerales.json", cfg.Catalog.Output)
	}

	if len(cfg.Icons.Sizes) != 8 || cfg.Icons.IcoSize != 72 {
		t.Errorf("Default icon sizes = %v ico=%d", cfg.Icons.Sizes, cfg.Icons.IcoSize)
	}
}

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Catalog.Backup {
		t.Error("Expected backup to be disabled")
	}

	if len(cfg.Catalog.Columns.Text) != 2 {
		t.Errorf("Expected 2 text columns, got %d", len(cfg.Catalog.Columns.Text))
	}

	if cfg.Catalog.Report.TopCountries != 3 {
		t.Errorf("Expected top_countries 3, got %d", cfg.Catalog.Report.TopCountries)
	}

	// Unset keys keep their defaults.
	if cfg.Catalog.Report.ValueColumn != "Valor estimado (€)" {
		t.Errorf("Expected default value column, got %q", cfg.Catalog.Report.ValueColumn)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected level debug, got %q", cfg.Logging.Level)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/catalog.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	configPath := createTempConfigFile(t, "catalog:\n  output: \"catalogo.csv\"\n")

	_, err := LoadConfig(configPath)
	if !errors.Is(err, ErrInvalidOutputFormat) {
		t.Fatalf("Expected ErrInvalidOutputFormat, got %v", err)
	}
}

func TestConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"missing input", func(c *Config) { c.Catalog.Input = " " }, ErrMissingInputPath},
		{"missing output", func(c *Config) { c.Catalog.Output = "" }, ErrMissingOutputPath},
		{"non json output", func(c *Config) { c.Catalog.Output = "catalog.yaml" }, ErrInvalidOutputFormat},
		{"blank text column", func(c *Config) { c.Catalog.Columns.Text = []string{"Notas", ""} }, ErrBlankColumnName},
		{"blank date column", func(c *Config) { c.Catalog.Columns.Date = []string{"  "} }, ErrBlankColumnName},
		{"negative top countries", func(c *Config) { c.Catalog.Report.TopCountries = -1 }, ErrInvalidTopCountries},
		{"missing icon source", func(c *Config) { c.Icons.Source = "" }, ErrMissingIconSource},
		{"missing icon dir", func(c *Config) { c.Icons.OutputDir = "" }, ErrMissingIconOutputDir},
		{"no icon sizes", func(c *Config) { c.Icons.Sizes = nil }, ErrNoIconSizes},
		{"icon size too large", func(c *Config) { c.Icons.Sizes = []int{72, 2048} }, ErrInvalidIconSize},
		{"ico size too large", func(c *Config) { c.Icons.IcoSize = 512 }, ErrInvalidIcoSize},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("CATALOG_INPUT", "otro.xlsx")
	t.Setenv("CATALOG_OUTPUT", "")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.Catalog.Input != "otro.xlsx" {
		t.Errorf("Input = %q, want otro.xlsx", cfg.Catalog.Input)
	}

	if cfg.Catalog.Output != "catalogo_minerales.json" {
		t.Errorf("Empty env var overrode output: %q", cfg.Catalog.Output)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadDotEnv(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(envPath, []byte("CATALOG_SHEET=Minerales\n"), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	t.Setenv("CATALOG_SHEET", "")
	os.Unsetenv("CATALOG_SHEET")

	if err := LoadDotEnv(envPath); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}

	if got := os.Getenv("CATALOG_SHEET"); got != "Minerales" {
		t.Errorf("CATALOG_SHEET = %q, want Minerales", got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadDotEnv with missing file returned %v", err)
	}
}

func TestResolve_ExplicitPath(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := Resolve(configPath)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cfg.Icons.Source != "logo.png" {
		t.Errorf("Icons.Source = %q, want logo.png", cfg.Icons.Source)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")

	if err := Default().SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(cfg.Catalog.Columns.Date) != 2 {
		t.Errorf("Expected 2 date columns after round trip, got %d", len(cfg.Catalog.Columns.Date))
	}
}

func TestConfig_String(t *testing.T) {
	s := Default().String()
	if !strings.Contains(s, "catalogo_minerales.json") {
		t.Errorf("String() = %q, want output path", s)
	}
}
