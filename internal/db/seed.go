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
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-merchlens/internal/logging"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
)

// SeedSnapshot replaces the stored snapshot with t in one transaction. The
// tables are validated the same way the JSON loader validates them before
// anything is written.
func SeedSnapshot(ctx context.Context, pool *pgxpool.Pool, t snapshot.Tables, source string) error {
	snap, err := snapshot.New(t)
	if err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := CreateSchema(ctx, tx); err != nil {
		return err
	}
	for _, d := range tables {
		if _, err := tx.Exec(ctx, "TRUNCATE "+d.table()); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", d.table(), err)
		}
	}

	steps := []struct {
		def  tableDef
		copy func() (int64, error)
	}{
		{skuTable, func() (int64, error) { return copyRows(ctx, tx, skuTable, t.SKUs, skuValues) }},
		{channelTable, func() (int64, error) { return copyRows(ctx, tx, channelTable, t.Channels, channelValues) }},
		{salesTable, func() (int64, error) { return copyRows(ctx, tx, salesTable, t.Sales, salesValues) }},
		{inventoryTable, func() (int64, error) { return copyRows(ctx, tx, inventoryTable, t.Inventory, inventoryValues) }},
		{competitorTable, func() (int64, error) { return copyRows(ctx, tx, competitorTable, t.Competitors, competitorValues) }},
		{competitorFactTable, func() (int64, error) {
			return copyRows(ctx, tx, competitorFactTable, t.CompetitorFacts, competitorFactValues)
		}},
		{hotSKUTable, func() (int64, error) { return copyRows(ctx, tx, hotSKUTable, t.HotSKUs, hotSKUValues) }},
		{wavePlanTable, func() (int64, error) { return copyRows(ctx, tx, wavePlanTable, t.WavePlans, wavePlanValues) }},
		{wavePlanMixTable, func() (int64, error) {
			return copyRows(ctx, tx, wavePlanMixTable, t.WavePlanMix, wavePlanMixValues)
		}},
		{salesPlanTable, func() (int64, error) { return copyRows(ctx, tx, salesPlanTable, t.SalesPlans, salesPlanValues) }},
	}
	for _, s := range steps {
		n, err := s.copy()
		if err != nil {
			return fmt.Errorf("failed to copy %s: %w", s.def.table(), err)
		}
		logging.Info().
			Str("table", s.def.table()).
			Int64("rows", n).
			Msg("Table complete")
	}

	if err := SaveMetadata(ctx, tx, source, snap.Counts()); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// copyRows bulk loads rows with COPY, numbering them in the ord column.
func copyRows[T any](ctx context.Context, tx pgx.Tx, d tableDef, rows []T, values func(T) []any) (int64, error) {
	cols := append([]string{"ord"}, d.names()...)
	src := pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		return append([]any{i}, values(rows[i])...), nil
	})
	return tx.CopyFrom(ctx, pgx.Identifier{d.table()}, cols, src)
}

func skuValues(s snapshot.SKU) []any {
	return []any{s.SKUID, s.SKUName, s.ProductLine, s.CategoryID, s.SubCategory, s.PriceBand,
		s.MSRP, s.Lifecycle, s.LaunchWave, s.LaunchDate, s.Color, s.TargetAudience,
		s.SeasonYear, s.Season}
}

func channelValues(c snapshot.Channel) []any {
	return []any{c.ChannelID, c.ChannelType, c.IsOnline, c.Region, c.CityTier, c.StoreFormat, c.Platform}
}

func salesValues(f snapshot.SalesFact) []any {
	return []any{f.RecordID, f.SKUID, f.ChannelID, f.SeasonYear, f.Season, f.WeekNum,
		f.UnitSold, f.OnHandUnit, f.GrossSalesAmt, f.NetSalesAmt, f.COGSAmt, f.DiscountAmt,
		f.GrossProfitAmt, f.DiscountRate, f.GrossMarginRate, f.CumulativeSellThrough}
}

func inventoryValues(f snapshot.InventoryFact) []any {
	return []any{f.SKUID, f.Period, f.SeasonYear, f.Season, f.InboundQty, f.TransferIn, f.SalesQty, f.EOPQty}
}

func competitorValues(c snapshot.CompetitorDim) []any {
	return []any{c.CompetitorID, c.BrandName, c.Positioning}
}

func competitorFactValues(f snapshot.CompetitorFact) []any {
	return []any{f.CompetitorID, f.SeasonYear, f.Season, f.Category, f.PriceBand, f.AvgPrice,
		f.SalesAmt, f.SKUCount}
}

func hotSKUValues(h snapshot.CompetitorHotSKU) []any {
	return []any{h.CompetitorID, h.SKUName, h.Category, h.Price, h.Color, h.SalesAmt}
}

func wavePlanValues(p snapshot.WavePlan) []any {
	return []any{p.SeasonYear, p.Season, p.Wave, p.PlannedSKUCount, p.PlannedNewRatio, p.PlannedSalesAmt}
}

func wavePlanMixValues(m snapshot.WavePlanMix) []any {
	return []any{m.SeasonYear, m.Season, m.Wave, m.CategoryL1, m.PlannedShare}
}

func salesPlanValues(p snapshot.SalesPlan) []any {
	return []any{p.SeasonYear, p.Season, p.Region, p.PlannedSalesAmt}
}
