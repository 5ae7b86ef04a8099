package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"StockScope/internal/model"
)

const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Source struct {
		Kind       string `yaml:"kind"`
		Path       string `yaml:"path"`
		SQLitePath string `yaml:"sqlite_path"`
		Name       string `yaml:"name"`
	} `yaml:"source"`
	Analysis struct {
		FastWindow      int    `yaml:"fast_window"`
		SlowWindow      int    `yaml:"slow_window"`
		SourceColumn    string `yaml:"source_column"`
		ReferenceColumn string `yaml:"reference_column"`
		Start           string `yaml:"start"`
		End             string `yaml:"end"`
	} `yaml:"analysis"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Persist *bool `yaml:"persist"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKSCOPE_SOURCE"); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv("STOCKSCOPE_SOURCE_KIND"); v != "" {
		cfg.Source.Kind = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Source.SQLitePath = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("STOCKSCOPE_PERSIST"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Persist = &b
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Source.Kind == "" {
		c.Source.Kind = SourceCSV
	}
	if c.Source.SQLitePath == "" {
		c.Source.SQLitePath = "data/stockscope.db"
	}
	if c.Analysis.FastWindow == 0 {
		c.Analysis.FastWindow = 15
	}
	if c.Analysis.SlowWindow == 0 {
		c.Analysis.SlowWindow = 50
	}
	if c.Analysis.SourceColumn == "" {
		c.Analysis.SourceColumn = model.DefaultSourceColumn
	}
	if c.Analysis.ReferenceColumn == "" {
		c.Analysis.ReferenceColumn = model.DefaultSourceColumn
	}
	if c.Persist == nil {
		persist := true
		c.Persist = &persist
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceCSV:
		if c.Source.Path == "" {
			return fmt.Errorf("source.path is required")
		}
	case SourceSQLite:
		if c.Source.Name == "" {
			return fmt.Errorf("source.name is required for sqlite sources")
		}
	default:
		return fmt.Errorf("source.kind must be %q or %q, got %q", SourceCSV, SourceSQLite, c.Source.Kind)
	}
	if c.Analysis.FastWindow < 0 || c.Analysis.SlowWindow < 0 {
		return fmt.Errorf("analysis windows must be positive")
	}
	if c.Analysis.FastWindow > 0 && c.Analysis.FastWindow == c.Analysis.SlowWindow {
		return fmt.Errorf("analysis.fast_window and analysis.slow_window must differ")
	}
	if _, err := c.DateRange(); err != nil {
		return err
	}
	return nil
}

// DateRange parses the configured start and end. Empty values stay zero.
func (c *Config) DateRange() (model.DateRange, error) {
	var r model.DateRange
	if c.Analysis.Start != "" {
		d, err := model.ParseDate(c.Analysis.Start)
		if err != nil {
			return r, fmt.Errorf("analysis.start: %w", err)
		}
		r.Start = d
	}
	if c.Analysis.End != "" {
		d, err := model.ParseDate(c.Analysis.End)
		if err != nil {
			return r, fmt.Errorf("analysis.end: %w", err)
		}
		r.End = d
	}
	return r, nil
}

// PersistEnabled reports whether changes are written back to the source.
func (c *Config) PersistEnabled() bool {
	return c.Persist == nil || *c.Persist
}
