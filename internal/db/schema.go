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
	"strings"

	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
)

// TablePrefix is prepended to every snapshot table name.
const TablePrefix = "merchlens_"

type column struct {
	name string
	typ  string
}

// tableDef mirrors one snapshot table. Columns follow the struct field order
// and carry the struct's db tags. Every table also has an ord column that
// keeps the input order across a round trip.
type tableDef struct {
	name    string
	key     string
	columns []column
}

func text(name string) column  { return column{name, "TEXT NOT NULL DEFAULT ''"} }
func num(name string) column   { return column{name, "DOUBLE PRECISION NOT NULL DEFAULT 0"} }
func integ(name string) column { return column{name, "INTEGER NOT NULL DEFAULT 0"} }

var (
	skuTable = tableDef{snapshot.TableSKUs, "sku_id", []column{
		text("sku_id"), text("sku_name"), text("product_line"), text("category_id"),
		text("sub_category"), text("price_band"), num("msrp"), text("lifecycle"),
		text("launch_wave"), text("launch_date"), text("color"), text("target_audience"),
		integ("season_year"), text("season"),
	}}
	channelTable = tableDef{snapshot.TableChannels, "channel_id", []column{
		text("channel_id"), text("channel_type"), {"is_online", "BOOLEAN NOT NULL DEFAULT false"},
		text("region"), text("city_tier"), text("store_format"), text("platform"),
	}}
	salesTable = tableDef{snapshot.TableSales, "record_id", []column{
		text("record_id"), text("sku_id"), text("channel_id"), integ("season_year"),
		text("season"), integ("week_num"), num("unit_sold"), num("on_hand_unit"),
		num("gross_sales_amt"), num("net_sales_amt"), num("cogs_amt"), num("discount_amt"),
		num("gross_profit_amt"), num("discount_rate"), num("gross_margin_rate"),
		num("cumulative_sell_through"),
	}}
	inventoryTable = tableDef{snapshot.TableInventory, "", []column{
		text("sku_id"), text("period"), integ("season_year"), text("season"),
		num("inbound_qty"), num("transfer_in"), num("sales_qty"), num("eop_qty"),
	}}
	competitorTable = tableDef{snapshot.TableCompetitors, "competitor_id", []column{
		text("competitor_id"), text("brand_name"), text("positioning"),
	}}
	competitorFactTable = tableDef{snapshot.TableCompetitorFacts, "", []column{
		text("competitor_id"), integ("season_year"), text("season"), text("category"),
		text("price_band"), num("avg_price"), num("sales_amt"), integ("sku_count"),
	}}
	hotSKUTable = tableDef{snapshot.TableHotSKUs, "", []column{
		text("competitor_id"), text("sku_name"), text("category"), num("price"),
		text("color"), num("sales_amt"),
	}}
	wavePlanTable = tableDef{snapshot.TableWavePlans, "", []column{
		integ("season_year"), text("season"), text("wave"), integ("planned_sku_count"),
		num("planned_new_ratio"), num("planned_sales_amt"),
	}}
	wavePlanMixTable = tableDef{snapshot.TableWavePlanMix, "", []column{
		integ("season_year"), text("season"), text("wave"), text("category_l1"),
		num("planned_share"),
	}}
	salesPlanTable = tableDef{snapshot.TableSalesPlans, "", []column{
		integ("season_year"), text("season"), text("region"), num("planned_sales_amt"),
	}}
)

// tables lists every snapshot table in load order.
var tables = []tableDef{
	skuTable, channelTable, salesTable, inventoryTable, competitorTable,
	competitorFactTable, hotSKUTable, wavePlanTable, wavePlanMixTable, salesPlanTable,
}

func (d tableDef) table() string {
	return TablePrefix + d.name
}

func (d tableDef) names() []string {
	out := make([]string, len(d.columns))
	for i, c := range d.columns {
		out[i] = c.name
	}
	return out
}

func (d tableDef) createSQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n    ord INTEGER NOT NULL", d.table())
	for _, c := range d.columns {
		fmt.Fprintf(&b, ",\n    %s %s", c.name, c.typ)
	}
	if d.key != "" {
		fmt.Fprintf(&b, ",\n    PRIMARY KEY (%s)", d.key)
	}
	b.WriteString("\n)")
	return b.String()
}

func (d tableDef) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY ord", strings.Join(d.names(), ", "), d.table())
}

// CreateSchema creates every snapshot table and the metadata table if they
// do not exist.
func CreateSchema(ctx context.Context, db DB) error {
	for _, d := range tables {
		if _, err := db.Exec(ctx, d.createSQL()); err != nil {
			return fmt.Errorf("failed to create table %s: %w", d.table(), err)
		}
	}
	if _, err := db.Exec(ctx, createMetadataTableSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}
	return nil
}

// DropSchema drops every snapshot table and the metadata table.
func DropSchema(ctx context.Context, db DB) error {
	for _, d := range tables {
		if _, err := db.Exec(ctx, "DROP TABLE IF EXISTS "+d.table()); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", d.table(), err)
		}
	}
	return DropMetadata(ctx, db)
}
