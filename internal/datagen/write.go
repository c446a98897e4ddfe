//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pgEdge/pgedge-merchlens/internal/logging"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
)

type tableFile struct {
	name string
	rows any
	n    int
}

func files(t snapshot.Tables) []tableFile {
	return []tableFile{
		{snapshot.TableSKUs, t.SKUs, len(t.SKUs)},
		{snapshot.TableChannels, t.Channels, len(t.Channels)},
		{snapshot.TableSales, t.Sales, len(t.Sales)},
		{snapshot.TableInventory, t.Inventory, len(t.Inventory)},
		{snapshot.TableCompetitors, t.Competitors, len(t.Competitors)},
		{snapshot.TableCompetitorFacts, t.CompetitorFacts, len(t.CompetitorFacts)},
		{snapshot.TableHotSKUs, t.HotSKUs, len(t.HotSKUs)},
		{snapshot.TableWavePlans, t.WavePlans, len(t.WavePlans)},
		{snapshot.TableWavePlanMix, t.WavePlanMix, len(t.WavePlanMix)},
		{snapshot.TableSalesPlans, t.SalesPlans, len(t.SalesPlans)},
	}
}

// WriteJSON writes every table as <table>.json under dir, creating dir if
// needed. Empty tables are written as empty arrays.
func WriteJSON(dir string, t snapshot.Tables) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	for _, tf := range files(t) {
		rows := tf.rows
		if tf.n == 0 {
			rows = []struct{}{}
		}
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", tf.name, err)
		}
		path := filepath.Join(dir, tf.name+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logging.Info().
			Str("table", tf.name).
			Int("rows", tf.n).
			Msg("Table complete")
	}
	return nil
}
