package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Prompt != "> " {
		t.Errorf("prompt = %q, want %q", cfg.Prompt, "> ")
	}
	if cfg.Algorithm != "align" || cfg.Case != "smart" {
		t.Errorf("matcher defaults = %q/%q, want align/smart", cfg.Algorithm, cfg.Case)
	}
	if cfg.CacheSize != 64 {
		t.Errorf("cache_size = %d, want 64", cfg.CacheSize)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
prompt = "pick: "
height = 15
algorithm = "fzf"
multi_select = true
log_file = "/tmp/picky.log"
future_knob = 1

[colors]
prompt = "magenta"
background = "#303030"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Prompt != "pick: " {
		t.Errorf("prompt = %q", cfg.Prompt)
	}
	if cfg.Height != 15 {
		t.Errorf("height = %d", cfg.Height)
	}
	if cfg.Algorithm != "fzf" {
		t.Errorf("algorithm = %q", cfg.Algorithm)
	}
	if !cfg.MultiSelect {
		t.Error("multi_select not set")
	}
	if cfg.LogFile != "/tmp/picky.log" {
		t.Errorf("log_file = %q", cfg.LogFile)
	}
	if cfg.Colors.Prompt != "magenta" || cfg.Colors.Background != "#303030" {
		t.Errorf("colors = %+v", cfg.Colors)
	}
	if cfg.Case != "smart" || cfg.CacheSize != 64 {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("height = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", perr.Path, path)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PICKY_PROMPT", "? ")
	t.Setenv("PICKY_HEIGHT", "25")
	t.Setenv("PICKY_MULTI_SELECT", "true")
	t.Setenv("PICKY_LOG", "/tmp/out.log")
	t.Setenv("PICKY_COLOR_MARKER", "yellow")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Prompt != "? " {
		t.Errorf("prompt = %q", cfg.Prompt)
	}
	if cfg.Height != 25 {
		t.Errorf("height = %d", cfg.Height)
	}
	if !cfg.MultiSelect {
		t.Error("multi_select not set")
	}
	if cfg.LogFile != "/tmp/out.log" {
		t.Errorf("log_file = %q", cfg.LogFile)
	}
	if cfg.Colors.Marker != "yellow" {
		t.Errorf("marker color = %q", cfg.Colors.Marker)
	}
	if cfg.Algorithm != "align" {
		t.Errorf("untouched field changed: algorithm = %q", cfg.Algorithm)
	}
}

func TestApplyEnvBadValues(t *testing.T) {
	tests := []struct {
		name, value string
	}{
		{"PICKY_HEIGHT", "tall"},
		{"PICKY_WORKERS", "3.5"},
		{"PICKY_MULTI_SELECT", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.name, tt.value)
			cfg := Default()
			err := ApplyEnv(&cfg)
			if err == nil {
				t.Fatalf("ApplyEnv accepted %s=%q", tt.name, tt.value)
			}
			if !strings.Contains(err.Error(), tt.name) {
				t.Errorf("error %q does not name %s", err, tt.name)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	mutate := func(f func(*Config)) Config {
		cfg := Default()
		f(&cfg)
		return cfg
	}
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"default", Default(), ""},
		{"scan insensitive", mutate(func(c *Config) { c.Algorithm = "scan"; c.Case = "insensitive" }), ""},
		{"bad algorithm", mutate(func(c *Config) { c.Algorithm = "quantum" }), "algorithm"},
		{"bad case", mutate(func(c *Config) { c.Case = "shouty" }), "case"},
		{"negative height", mutate(func(c *Config) { c.Height = -1 }), "height"},
		{"negative workers", mutate(func(c *Config) { c.Workers = -2 }), "workers"},
		{"negative cache", mutate(func(c *Config) { c.CacheSize = -1 }), "cache_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	want := filepath.Join("picky", "config.toml")
	if !strings.HasSuffix(path, want) {
		t.Errorf("path = %q, want suffix %q", path, want)
	}
}
