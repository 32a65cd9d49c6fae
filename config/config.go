// Package config loads .transheet.yaml settings and TRANSHEET_* overrides.
//
// All settings are optional. Values are resolved in this order, later
// sources winning:
//
//  1. built-in defaults
//  2. .transheet.yaml in the working directory (or the file given with --config)
//  3. TRANSHEET_* environment variables, optionally loaded from a .env file
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = ".transheet.yaml"

// EnvFileName is the optional dotenv file read before environment overrides.
const EnvFileName = ".env"

// Formats lists the valid output formats for spreadsheet → files conversion.
var Formats = []string{"json", "yaml", "yml", "toml", "properties", "arb"}

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// Config is the .transheet.yaml structure.
type Config struct {
	// Delimiter joins nested keys into a key path (default ".").
	Delimiter string `yaml:"delimiter,omitempty"`
	// Placeholder is written for empty values (default "-").
	Placeholder string `yaml:"placeholder,omitempty"`
	// KeyHeader is the label of the first spreadsheet column (default "Key").
	KeyHeader string `yaml:"key_header,omitempty"`
	// OutputName is the spreadsheet file name (default "translations.xlsx").
	OutputName string `yaml:"output_name,omitempty"`
	// SheetName is the worksheet name (default "Sheet1").
	SheetName string `yaml:"sheet_name,omitempty"`
	// ColumnWidth is the width of every used column (default 50).
	ColumnWidth float64 `yaml:"column_width,omitempty"`
	// OutputFormat is the file extension written when splitting a
	// spreadsheet (default "json").
	OutputFormat string `yaml:"output_format,omitempty"`
	// YAML holds options for YAML output.
	YAML YAMLOptions `yaml:"yaml,omitempty"`
}

// YAMLOptions holds YAML-specific settings.
type YAMLOptions struct {
	// RootLocale nests written YAML files under their language code
	// (Rails i18n style).
	RootLocale bool `yaml:"root_locale,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Delimiter:    ".",
		Placeholder:  "-",
		KeyHeader:    "Key",
		OutputName:   "translations.xlsx",
		SheetName:    "Sheet1",
		ColumnWidth:  50,
		OutputFormat: "json",
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads .transheet.yaml from dir on top of the defaults.
// A missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads the config file at path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults restores defaults for keys explicitly set to empty values.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Delimiter == "" {
		c.Delimiter = d.Delimiter
	}
	if c.Placeholder == "" {
		c.Placeholder = d.Placeholder
	}
	if c.KeyHeader == "" {
		c.KeyHeader = d.KeyHeader
	}
	if c.OutputName == "" {
		c.OutputName = d.OutputName
	}
	if c.SheetName == "" {
		c.SheetName = d.SheetName
	}
	if c.ColumnWidth == 0 {
		c.ColumnWidth = d.ColumnWidth
	}
	if c.OutputFormat == "" {
		c.OutputFormat = d.OutputFormat
	}
}

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// LoadDotEnv loads dir/.env into the process environment. Variables that are
// already set keep their value. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, EnvFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from TRANSHEET_* variables found via lookup
// (usually os.LookupEnv).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"TRANSHEET_DELIMITER":   &c.Delimiter,
		"TRANSHEET_PLACEHOLDER": &c.Placeholder,
		"TRANSHEET_KEY_HEADER":  &c.KeyHeader,
		"TRANSHEET_OUTPUT_NAME": &c.OutputName,
		"TRANSHEET_SHEET":       &c.SheetName,
		"TRANSHEET_FORMAT":      &c.OutputFormat,
	}
	for name, dst := range str {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("TRANSHEET_COLUMN_WIDTH"); ok && v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("TRANSHEET_COLUMN_WIDTH: %w", err)
		}
		c.ColumnWidth = w
	}
	if v, ok := lookup("TRANSHEET_YAML_ROOT_LOCALE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRANSHEET_YAML_ROOT_LOCALE: %w", err)
		}
		c.YAML.RootLocale = b
	}
	return nil
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Delimiter == "" {
		return fmt.Errorf("config: delimiter must not be empty")
	}
	if strings.TrimSpace(c.KeyHeader) == "" {
		return fmt.Errorf("config: key_header must not be empty")
	}
	if c.ColumnWidth <= 0 || c.ColumnWidth > 255 {
		return fmt.Errorf("config: column_width must be between 0 and 255, got %v", c.ColumnWidth)
	}
	if !strings.EqualFold(filepath.Ext(c.OutputName), ".xlsx") {
		return fmt.Errorf("config: output_name %q must end in .xlsx", c.OutputName)
	}
	if c.OutputName != filepath.Base(c.OutputName) {
		return fmt.Errorf("config: output_name %q must be a file name, not a path", c.OutputName)
	}

	c.OutputFormat = strings.ToLower(strings.TrimPrefix(c.OutputFormat, "."))
	for _, f := range Formats {
		if c.OutputFormat == f {
			return nil
		}
	}
	return fmt.Errorf("config: unknown output_format %q (valid: %s)", c.OutputFormat, strings.Join(Formats, ", "))
}
