//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pgEdge/pgedge-merchlens/internal/join"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	// Check default values
	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.Data.Source != SourceJSON {
		t.Errorf("Expected Data.Source 'json', got '%s'", cfg.Data.Source)
	}
	if cfg.CompareMode != "none" {
		t.Errorf("Expected CompareMode 'none', got '%s'", cfg.CompareMode)
	}
	if cfg.Filter != join.AllFilter() {
		t.Errorf("Expected every filter key to be 'all', got %+v", cfg.Filter)
	}
	if cfg.Metrics.WOSSentinel != 99.9 || cfg.Metrics.TopN != 10 {
		t.Errorf("Unexpected metrics defaults %+v", cfg.Metrics)
	}
	if len(cfg.PriceBands) != 4 {
		t.Errorf("Expected 4 default price bands, got %d", len(cfg.PriceBands))
	}
	if cfg.Export.Format != "csv" {
		t.Errorf("Expected Export.Format 'csv', got '%s'", cfg.Export.Format)
	}
	if err := cfg.ValidateQuery(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		data      DataConfig
		wantError bool
	}{
		{"json with dir", DataConfig{Source: "json", Dir: "data"}, false},
		{"json without dir", DataConfig{Source: "json"}, true},
		{"postgres with connection", DataConfig{Source: "postgres", Connection: "postgres://localhost/db"}, false},
		{"postgres without connection", DataConfig{Source: "postgres", Dir: "data"}, true},
		{"unknown source", DataConfig{Source: "sqlite", Dir: "data"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Data = tt.data
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestConfigValidateQuery(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"yoy", func(c *Config) { c.CompareMode = "yoy" }, false},
		{"unknown compare", func(c *Config) { c.CompareMode = "qoq" }, true},
		{"no bands", func(c *Config) { c.PriceBands = nil }, true},
		{"zero top n", func(c *Config) { c.Metrics.TopN = 0 }, true},
		{"inverted health band", func(c *Config) {
			c.Health.SellThrough.Warning = c.Health.SellThrough.Target + 0.1
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.ValidateQuery()
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateQuery() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestConfigValidateExport(t *testing.T) {
	tests := []struct {
		name      string
		export    ExportConfig
		wantError bool
	}{
		{"csv to stdout", ExportConfig{Format: "csv"}, false},
		{"xlsx with output", ExportConfig{Format: "xlsx", Output: "out.xlsx"}, false},
		{"xlsx without output", ExportConfig{Format: "xlsx"}, true},
		{"unknown format", ExportConfig{Format: "pdf", Output: "out.pdf"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Export = tt.export
			err := cfg.ValidateExport()
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateExport() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestConfigValidateSeedAndGenerate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateSeed(); err == nil {
		t.Error("Expected seed to require a connection string")
	}
	cfg.Data.Connection = "postgres://localhost/db"
	if err := cfg.ValidateSeed(); err != nil {
		t.Errorf("Expected seed config to validate, got %v", err)
	}

	if err := cfg.ValidateGenerate(); err != nil {
		t.Errorf("Expected generate defaults to validate, got %v", err)
	}
	cfg.Generate.Weeks = 20
	if err := cfg.ValidateGenerate(); err == nil {
		t.Error("Expected error for more weeks than a season holds")
	}
	cfg.Generate.Weeks = 4
	cfg.Generate.OrphanRate = 1.5
	if err := cfg.ValidateGenerate(); err == nil {
		t.Error("Expected error for orphan rate above 1")
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
log_level: debug
data:
  source: postgres
  connection: postgres://test@localhost/merch
filter:
  season_year: 2025
  season: Q1
  region: 华东
compare_mode: yoy
metrics:
  top_n: 5
price_bands:
  - code: LOW
    label: 低价
    min: 0
    max: 500
  - code: HIGH
    label: 高价
    min: 500
    max: 0
thresholds:
  stockout_wos: 3
export:
  format: xlsx
  output: out.xlsx
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel 'debug', got '%s'", cfg.LogLevel)
	}
	if cfg.Data.Source != "postgres" || cfg.Data.Connection != "postgres://test@localhost/merch" {
		t.Errorf("Unexpected data config %+v", cfg.Data)
	}
	if cfg.Filter.SeasonYear != "2025" || cfg.Filter.Region != "华东" {
		t.Errorf("Unexpected filter %+v", cfg.Filter)
	}
	if cfg.Filter.Color != "all" {
		t.Errorf("Expected unset filter keys to stay 'all', got '%s'", cfg.Filter.Color)
	}
	if cfg.Metrics.TopN != 5 || cfg.Metrics.WOSSentinel != 99.9 {
		t.Errorf("Expected top_n override with other defaults kept, got %+v", cfg.Metrics)
	}
	if len(cfg.PriceBands) != 2 || cfg.PriceBands[1].Code != "HIGH" {
		t.Errorf("Expected file bands to replace defaults, got %+v", cfg.PriceBands)
	}
	if cfg.Thresholds.StockoutWOS != 3 || cfg.Thresholds.LowSellThrough == 0 {
		t.Errorf("Unexpected thresholds %+v", cfg.Thresholds)
	}
	if err := cfg.ValidateExport(); err != nil {
		t.Errorf("Expected loaded config to validate, got %v", err)
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	// Non-existent explicit config file path should error
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Expected error for non-existent config file")
	}
}
