// Package config loads picker settings from a TOML file and the
// environment. Values layer in a fixed order: built-in defaults, then
// the config file, then PICKY_* environment variables. Command-line
// flags and programmatic options are applied by the caller on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/Jacobious52/picky/internal/fuzzy"
)

// Config holds every tunable of the picker. Color values are names or
// specs understood by term.ParseColor; an empty color keeps the theme
// default.
type Config struct {
	// Prompt is printed before the query on the input line.
	Prompt string `toml:"prompt"`

	// Header is an optional line shown above the candidate list.
	Header string `toml:"header"`

	// Height caps the number of terminal rows used. Zero means the
	// full screen.
	Height int `toml:"height"`

	// Algorithm selects the scoring strategy: align, scan or fzf.
	Algorithm string `toml:"algorithm"`

	// Case selects case handling: smart, insensitive or sensitive.
	Case string `toml:"case"`

	// MultiSelect enables marking several candidates with Tab.
	MultiSelect bool `toml:"multi_select"`

	// Workers is the ranking parallelism. Zero means GOMAXPROCS.
	Workers int `toml:"workers"`

	// CacheSize bounds the per-query result cache. Zero disables it.
	CacheSize int `toml:"cache_size"`

	// LogFile receives diagnostic output. Empty discards it; the
	// terminal belongs to the picker while it runs.
	LogFile string `toml:"log_file"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `toml:"log_level"`

	Colors ColorConfig `toml:"colors"`
}

// ColorConfig overrides individual theme colors.
type ColorConfig struct {
	// Prompt colors the prompt marker on the input line.
	Prompt string `toml:"prompt"`

	// Header colors the header line.
	Header string `toml:"header"`

	// Number colors the row numbers and their delimiter.
	Number string `toml:"number"`

	// Marker colors the "> " delimiter and marked-row numbers.
	Marker string `toml:"marker"`

	// Background fills the text of the highlighted row.
	Background string `toml:"background"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Prompt:    "> ",
		Algorithm: "align",
		Case:      "smart",
		CacheSize: 64,
		LogLevel:  "info",
	}
}

// ParseError describes a config file that exists but cannot be
// decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DefaultPath returns the conventional config file location,
// $XDG_CONFIG_HOME/picky/config.toml or the platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "picky", "config.toml"), nil
}

// Load reads the TOML file at path over the defaults. A missing file
// is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}

// Validate reports the first out-of-range or unknown value. Color
// fields are checked where they are turned into styles.
func (c Config) Validate() error {
	if _, ok := fuzzy.ParseAlgorithm(c.Algorithm); !ok {
		return fmt.Errorf("unknown algorithm %q", c.Algorithm)
	}
	if _, ok := fuzzy.ParseCaseMode(c.Case); !ok {
		return fmt.Errorf("unknown case mode %q", c.Case)
	}
	if c.Height < 0 {
		return fmt.Errorf("height %d is negative", c.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d is negative", c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size %d is negative", c.CacheSize)
	}
	return nil
}
