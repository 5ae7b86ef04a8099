package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"StockScope/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source.Kind != SourceCSV || cfg.Analysis.FastWindow != 15 || cfg.Analysis.SlowWindow != 50 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Analysis.SourceColumn != "Close" || cfg.Analysis.ReferenceColumn != "Close" {
		t.Errorf("unexpected column defaults: %+v", cfg.Analysis)
	}
	if !cfg.PersistEnabled() {
		t.Error("persistence should default to on")
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without source.path")
	}
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	path := writeConfig(t, `
source:
  path: data/GOOG.csv
analysis:
  fast_window: 10
  slow_window: 30
  reference_column: SMA10
  start: "2020-01-02"
  end: "2020-09-22"
persist: false
`)
	t.Setenv("CRON_REFRESH", "0 30 22 * * 1-5")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Source.Path != "data/GOOG.csv" || cfg.Analysis.FastWindow != 10 || cfg.Analysis.ReferenceColumn != "SMA10" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.PersistEnabled() {
		t.Error("expected persistence disabled")
	}
	if cfg.Schedule.RefreshCron != "0 30 22 * * 1-5" {
		t.Errorf("expected env cron override, got %q", cfg.Schedule.RefreshCron)
	}
	r, err := cfg.DateRange()
	if err != nil || r.String() != "2020-01-02 to 2020-09-22" {
		t.Errorf("unexpected range %s (%v)", r, err)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Source.Path = "prices.csv"
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"unknown kind", func(c *Config) { c.Source.Kind = "parquet" }, false},
		{"sqlite without name", func(c *Config) { c.Source.Kind = SourceSQLite }, false},
		{"sqlite with name", func(c *Config) { c.Source.Kind = SourceSQLite; c.Source.Name = "GOOG" }, true},
		{"equal windows", func(c *Config) { c.Analysis.SlowWindow = c.Analysis.FastWindow }, false},
		{"negative window", func(c *Config) { c.Analysis.FastWindow = -1 }, false},
		{"bad start", func(c *Config) { c.Analysis.Start = "02/01/2020" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestDateRange_InvalidFormat(t *testing.T) {
	cfg := &Config{}
	cfg.Analysis.End = "2020-13-01"
	_, err := cfg.DateRange()
	var dateErr *model.InvalidDateFormatError
	if !errors.As(err, &dateErr) {
		t.Fatalf("expected InvalidDateFormatError, got %v", err)
	}
}
