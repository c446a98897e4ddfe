//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for merchlens.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pgEdge/pgedge-merchlens/internal/analytics"
	"github.com/pgEdge/pgedge-merchlens/internal/datagen"
	"github.com/pgEdge/pgedge-merchlens/internal/export"
	"github.com/pgEdge/pgedge-merchlens/internal/join"
	"github.com/pgEdge/pgedge-merchlens/internal/metrics"
	"github.com/pgEdge/pgedge-merchlens/internal/risk"
	"github.com/pgEdge/pgedge-merchlens/internal/taxonomy"
)

// Snapshot sources.
const (
	SourceJSON     = "json"
	SourcePostgres = "postgres"
)

// Config holds all configuration for merchlens.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogPretty switches to human-readable console logging.
	LogPretty bool `mapstructure:"log_pretty"`

	// Data selects where the snapshot is read from.
	Data DataConfig `mapstructure:"data"`

	// Filter is the default query filter. Unset keys are "all".
	Filter join.Filter `mapstructure:"filter"`

	// CompareMode is none, plan, mom or yoy.
	CompareMode string `mapstructure:"compare_mode"`

	Metrics    metrics.Config    `mapstructure:"metrics"`
	PriceBands []taxonomy.Band   `mapstructure:"price_bands"`
	Taxonomy   taxonomy.Taxonomy `mapstructure:"taxonomy"`
	Thresholds risk.Thresholds   `mapstructure:"thresholds"`
	Health     risk.Health       `mapstructure:"health"`

	// Export holds configuration for the export subcommand.
	Export ExportConfig `mapstructure:"export"`

	// Generate holds configuration for the generate subcommand.
	Generate datagen.Options `mapstructure:"generate"`
}

// DataConfig locates the snapshot.
type DataConfig struct {
	// Source is json or postgres.
	Source string `mapstructure:"source"`

	// Dir is the directory of <table>.json files.
	Dir string `mapstructure:"dir"`

	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`
}

// ExportConfig holds configuration for file export.
type ExportConfig struct {
	// Format is csv or xlsx.
	Format string `mapstructure:"format"`

	// Output is the file path. With csv an empty path writes to stdout.
	Output string `mapstructure:"output"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	opts := analytics.DefaultOptions()
	return &Config{
		LogLevel: "info",
		Data: DataConfig{
			Source: SourceJSON,
			Dir:    "data",
		},
		Filter:      join.AllFilter(),
		CompareMode: analytics.CompareNone,
		Metrics:     opts.Metrics,
		PriceBands:  opts.PriceBands,
		Taxonomy:    opts.Taxonomy,
		Thresholds:  opts.Thresholds,
		Health:      opts.Health,
		Export: ExportConfig{
			Format: export.FormatCSV,
		},
		Generate: datagen.DefaultOptions(),
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./merchlens.yaml
// 3. ~/.config/merchlens/merchlens.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("merchlens")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "merchlens"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Lists from the file replace the defaults rather than merging into them.
	if v.IsSet("price_bands") {
		cfg.PriceBands = nil
	}
	if v.IsSet("taxonomy.nodes") {
		cfg.Taxonomy.Nodes = nil
	}
	if v.IsSet("taxonomy.product_lines") {
		cfg.Taxonomy.ProductLines = nil
	}
	if v.IsSet("generate.years") {
		cfg.Generate.Years = nil
	}

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Options returns the engine options described by the configuration.
func (c *Config) Options() analytics.Options {
	return analytics.Options{
		Taxonomy:   c.Taxonomy,
		PriceBands: c.PriceBands,
		Metrics:    c.Metrics,
		Thresholds: c.Thresholds,
		Health:     c.Health,
	}
}

// Query returns the default query of the configuration.
func (c *Config) Query() analytics.Query {
	return analytics.Query{Filter: c.Filter, Compare: c.CompareMode}
}

// Validate checks that the snapshot source is usable.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceJSON:
		if c.Data.Dir == "" {
			return fmt.Errorf("data directory is required for the json source")
		}
	case SourcePostgres:
		if c.Data.Connection == "" {
			return fmt.Errorf("connection string is required for the postgres source")
		}
	default:
		return fmt.Errorf("data source must be '%s' or '%s'", SourceJSON, SourcePostgres)
	}
	return nil
}

// ValidateQuery checks configuration required for query commands.
func (c *Config) ValidateQuery() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := analytics.ValidateCompare(c.CompareMode); err != nil {
		return err
	}
	if err := taxonomy.ValidateBands(c.PriceBands); err != nil {
		return fmt.Errorf("price_bands: %w", err)
	}
	if c.Metrics.TopN < 1 {
		return fmt.Errorf("metrics.top_n must be at least 1")
	}
	if err := c.Health.Validate(); err != nil {
		return fmt.Errorf("health: %w", err)
	}
	return nil
}

// ValidateExport checks configuration required for export command.
func (c *Config) ValidateExport() error {
	if err := c.ValidateQuery(); err != nil {
		return err
	}
	if err := export.ValidateFormat(c.Export.Format); err != nil {
		return err
	}
	if c.Export.Format == export.FormatXLSX && c.Export.Output == "" {
		return fmt.Errorf("output path is required for xlsx export")
	}
	return nil
}

// ValidateSeed checks configuration required for seed command. Seeding
// reads the json directory and writes to PostgreSQL.
func (c *Config) ValidateSeed() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data directory is required for seed")
	}
	if c.Data.Connection == "" {
		return fmt.Errorf("connection string is required for seed")
	}
	return nil
}

// ValidateGenerate checks configuration required for generate command.
func (c *Config) ValidateGenerate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("output directory is required for generate")
	}
	g := c.Generate
	if g.SKUs < 0 || g.Channels < 0 || g.Weeks < 0 || g.Competitors < 0 {
		return fmt.Errorf("generate sizes must be non-negative")
	}
	if g.Weeks > datagen.MaxWeeks {
		return fmt.Errorf("generate.weeks must be at most %d", datagen.MaxWeeks)
	}
	if g.OrphanRate < 0 || g.OrphanRate > 1 {
		return fmt.Errorf("generate.orphan_rate must be between 0 and 1")
	}
	return nil
}
