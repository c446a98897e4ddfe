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

	"github.com/pgEdge/pgedge-merchlens/internal/db"
	"github.com/pgEdge/pgedge-merchlens/internal/logging"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
)

var seedDrop bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a JSON snapshot into PostgreSQL",
	Long: `Validate the JSON snapshot in the data directory and copy it into
PostgreSQL, replacing any snapshot stored there. Query commands read it back
with --source postgres.

Example:
  merchlens seed --data-dir ./data --connection "postgres://..."`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedDrop, "drop-existing", false,
		"drop the snapshot tables before seeding")
}

func runSeed(cmd *cobra.Command, args []string) error {
	// Validate configuration
	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	snap, err := snapshot.LoadDir(cfg.Data.Dir)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	pool, err := db.Connect(ctx, cfg.Data.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Drop existing schema if requested
	if seedDrop {
		logging.Info().Msg("Dropping existing schema")
		if err := db.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	logging.Info().
		Str("dir", cfg.Data.Dir).
		Msg("Seeding snapshot")
	if err := db.SeedSnapshot(ctx, pool, snap.Tables(), cfg.Data.Dir); err != nil {
		return err
	}

	logging.Info().
		Int("sales", len(snap.Sales())).
		Msg("Snapshot seed complete")
	return nil
}
