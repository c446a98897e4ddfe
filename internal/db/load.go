//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-merchlens/internal/logging"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
)

// LoadSnapshot reads every snapshot table in stored order and builds the
// same validated Snapshot the JSON loader produces.
func LoadSnapshot(ctx context.Context, db DB) (*snapshot.Snapshot, error) {
	var (
		t   snapshot.Tables
		err error
	)

	if t.SKUs, err = loadRows[snapshot.SKU](ctx, db, skuTable); err != nil {
		return nil, err
	}
	if t.Channels, err = loadRows[snapshot.Channel](ctx, db, channelTable); err != nil {
		return nil, err
	}
	if t.Sales, err = loadRows[snapshot.SalesFact](ctx, db, salesTable); err != nil {
		return nil, err
	}
	if t.Inventory, err = loadRows[snapshot.InventoryFact](ctx, db, inventoryTable); err != nil {
		return nil, err
	}
	if t.Competitors, err = loadRows[snapshot.CompetitorDim](ctx, db, competitorTable); err != nil {
		return nil, err
	}
	if t.CompetitorFacts, err = loadRows[snapshot.CompetitorFact](ctx, db, competitorFactTable); err != nil {
		return nil, err
	}
	if t.HotSKUs, err = loadRows[snapshot.CompetitorHotSKU](ctx, db, hotSKUTable); err != nil {
		return nil, err
	}
	if t.WavePlans, err = loadRows[snapshot.WavePlan](ctx, db, wavePlanTable); err != nil {
		return nil, err
	}
	if t.WavePlanMix, err = loadRows[snapshot.WavePlanMix](ctx, db, wavePlanMixTable); err != nil {
		return nil, err
	}
	if t.SalesPlans, err = loadRows[snapshot.SalesPlan](ctx, db, salesPlanTable); err != nil {
		return nil, err
	}

	snap, err := snapshot.New(t)
	if err != nil {
		return nil, err
	}

	log := logging.Component("db")
	for name, n := range snap.Counts() {
		log.Debug().Str("table", name).Int("rows", n).Msg("Loaded table")
	}
	if v := snap.MonotonicViolations(); len(v) > 0 {
		log.Warn().
			Int("violations", len(v)).
			Msg("Cumulative sell-through decreases between weeks; latest week values are reported unchanged")
	}
	return snap, nil
}

func loadRows[T any](ctx context.Context, db DB, d tableDef) ([]T, error) {
	rows, err := db.Query(ctx, d.selectSQL())
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", d.table(), err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", d.table(), err)
	}
	return out, nil
}
