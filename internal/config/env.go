package config

import (
	"fmt"
	"os"
	"strconv"
)

// ApplyEnv overlays PICKY_* environment variables onto cfg. Unset
// variables leave their field alone. PICKY_LOG is the log file path.
func ApplyEnv(cfg *Config) error {
	setString := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}
	setInt := func(name string, dst *int) error {
		v, ok := os.LookupEnv(name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", name, v, err)
		}
		*dst = n
		return nil
	}
	setBool := func(name string, dst *bool) error {
		v, ok := os.LookupEnv(name)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", name, v, err)
		}
		*dst = b
		return nil
	}

	setString("PICKY_PROMPT", &cfg.Prompt)
	setString("PICKY_HEADER", &cfg.Header)
	setString("PICKY_ALGORITHM", &cfg.Algorithm)
	setString("PICKY_CASE", &cfg.Case)
	setString("PICKY_LOG", &cfg.LogFile)
	setString("PICKY_LOG_LEVEL", &cfg.LogLevel)
	setString("PICKY_COLOR_PROMPT", &cfg.Colors.Prompt)
	setString("PICKY_COLOR_HEADER", &cfg.Colors.Header)
	setString("PICKY_COLOR_NUMBER", &cfg.Colors.Number)
	setString("PICKY_COLOR_MARKER", &cfg.Colors.Marker)
	setString("PICKY_COLOR_BACKGROUND", &cfg.Colors.Background)

	if err := setInt("PICKY_HEIGHT", &cfg.Height); err != nil {
		return err
	}
	if err := setInt("PICKY_WORKERS", &cfg.Workers); err != nil {
		return err
	}
	if err := setInt("PICKY_CACHE_SIZE", &cfg.CacheSize); err != nil {
		return err
	}
	if err := setBool("PICKY_MULTI_SELECT", &cfg.MultiSelect); err != nil {
		return err
	}
	return nil
}
