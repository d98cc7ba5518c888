// Package config handles .pipeboard.yaml configuration files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pipeboard-org/pipeboard/engine"
)

// FileName is the expected config file name in the working directory.
const FileName = ".pipeboard.yaml"

// Config represents the contents of a .pipeboard.yaml file. All fields are
// optional; zero values defer to CLI flags and built-in defaults.
type Config struct {
	NoColor      *bool  `yaml:"no_color,omitempty"`
	MaxTableRows int    `yaml:"max_table_rows,omitempty"`
	DateRange    string `yaml:"date_range,omitempty"` // "all", "overdue", or a day count
	DebounceMS   int    `yaml:"debounce_ms,omitempty"`
}

// Load reads the config file from dir. A missing file is not an error —
// it returns an empty Config.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", FileName, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MaxTableRows < 0 {
		return fmt.Errorf("max_table_rows must be >= 0, got %d", c.MaxTableRows)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must be >= 0, got %d", c.DebounceMS)
	}
	if c.DateRange != "" {
		if _, err := ParseRange(c.DateRange); err != nil {
			return err
		}
	}
	return nil
}

// Debounce returns the configured search quiet period, or the engine
// default when unset.
func (c *Config) Debounce() time.Duration {
	if c.DebounceMS > 0 {
		return time.Duration(c.DebounceMS) * time.Millisecond
	}
	return engine.SearchDebounce
}

// ParseRange converts a date-range control value ("all", "overdue", "30")
// into criteria form.
func ParseRange(value string) (engine.DateRange, error) {
	switch value {
	case "", "all":
		return engine.DateRange{Kind: engine.RangeAll}, nil
	case "overdue":
		return engine.DateRange{Kind: engine.RangeOverdue}, nil
	}
	days, err := strconv.Atoi(value)
	if err != nil || days < 0 {
		return engine.DateRange{}, fmt.Errorf("invalid date range %q (want all, overdue, or a day count)", value)
	}
	return engine.DateRange{Kind: engine.RangeWindow, Days: days}, nil
}
