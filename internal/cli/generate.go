//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-merchlens/internal/datagen"
	"github.com/pgEdge/pgedge-merchlens/internal/logging"
)

var (
	genSeed       uint64
	genSKUs       int
	genChannels   int
	genWeeks      int
	genOrphanRate float64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic snapshot as JSON table files",
	Long: `Generate a reproducible synthetic snapshot and write one JSON file
per table into the data directory. The same seed always produces the same
files.

Example:
  merchlens generate --data-dir ./data --seed 7 --skus 200`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0, "random seed (default: 1)")
	generateCmd.Flags().IntVar(&genSKUs, "skus", 0, "number of SKUs")
	generateCmd.Flags().IntVar(&genChannels, "channels", 0, "number of channels")
	generateCmd.Flags().IntVar(&genWeeks, "weeks", 0, "weeks per season (at most 13)")
	generateCmd.Flags().Float64Var(&genOrphanRate, "orphan-rate", 0,
		"share of sales facts referencing unknown SKUs or channels")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if genSeed != 0 {
		cfg.Generate.Seed = genSeed
	}
	if genSKUs > 0 {
		cfg.Generate.SKUs = genSKUs
	}
	if genChannels > 0 {
		cfg.Generate.Channels = genChannels
	}
	if genWeeks != 0 {
		cfg.Generate.Weeks = genWeeks
	}
	if cmd.Flags().Changed("orphan-rate") {
		cfg.Generate.OrphanRate = genOrphanRate
	}

	// Validate configuration
	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	logging.Info().
		Uint64("seed", cfg.Generate.Seed).
		Int("skus", cfg.Generate.SKUs).
		Str("dir", cfg.Data.Dir).
		Msg("Generating snapshot")

	tables := datagen.Generate(cfg.Generate)
	if err := datagen.WriteJSON(cfg.Data.Dir, tables); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	logging.Info().
		Str("dir", cfg.Data.Dir).
		Int("sales", len(tables.Sales)).
		Msg("Snapshot generation complete")
	return nil
}
