//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pgEdge/pgedge-merchlens/internal/logging"
)

// Table names. Each table is stored as <name>.json in a snapshot directory.
const (
	TableSKUs            = "skus"
	TableChannels        = "channels"
	TableSales           = "sales"
	TableInventory       = "inventory"
	TableCompetitors     = "competitors"
	TableCompetitorFacts = "competitor_facts"
	TableHotSKUs         = "competitor_hot_skus"
	TableWavePlans       = "wave_plans"
	TableWavePlanMix     = "wave_plan_mix"
	TableSalesPlans      = "sales_plans"
)

// ErrNotArray is returned when a table file does not hold a JSON array.
var ErrNotArray = errors.New("table is not a JSON array")

// ValidationError describes a record rejected at the load boundary.
type ValidationError struct {
	Table  string
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s[%d].%s: %s", e.Table, e.Index, e.Field, e.Reason)
}

// tableSpec describes how one table file is decoded.
type tableSpec struct {
	name     string
	required []string
	optional bool
}

var (
	skuSpec            = tableSpec{name: TableSKUs, required: []string{"sku_id"}}
	channelSpec        = tableSpec{name: TableChannels, required: []string{"channel_id", "channel_type"}}
	salesSpec          = tableSpec{name: TableSales, required: []string{"record_id", "sku_id", "channel_id", "season_year", "season", "week_num"}}
	inventorySpec      = tableSpec{name: TableInventory, required: []string{"sku_id", "period"}, optional: true}
	competitorSpec     = tableSpec{name: TableCompetitors, required: []string{"competitor_id", "brand_name"}, optional: true}
	competitorFactSpec = tableSpec{name: TableCompetitorFacts, required: []string{"competitor_id"}, optional: true}
	hotSKUSpec         = tableSpec{name: TableHotSKUs, required: []string{"competitor_id", "sku_name"}, optional: true}
	wavePlanSpec       = tableSpec{name: TableWavePlans, required: []string{"season_year", "season", "wave"}, optional: true}
	wavePlanMixSpec    = tableSpec{name: TableWavePlanMix, required: []string{"season_year", "season", "wave", "category_l1"}, optional: true}
	salesPlanSpec      = tableSpec{name: TableSalesPlans, required: []string{"season_year", "season"}, optional: true}
)

// LoadDir loads a snapshot from a directory of JSON table files.
func LoadDir(dir string) (*Snapshot, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("snapshot directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("snapshot directory: %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS loads a snapshot from any file system holding <table>.json files.
func LoadFS(fsys fs.FS) (*Snapshot, error) {
	var (
		t   Tables
		err error
	)

	if t.SKUs, err = loadTable[SKU](fsys, skuSpec); err != nil {
		return nil, err
	}
	if t.Channels, err = loadTable[Channel](fsys, channelSpec); err != nil {
		return nil, err
	}
	if t.Sales, err = loadTable[SalesFact](fsys, salesSpec); err != nil {
		return nil, err
	}
	if t.Inventory, err = loadTable[InventoryFact](fsys, inventorySpec); err != nil {
		return nil, err
	}
	if t.Competitors, err = loadTable[CompetitorDim](fsys, competitorSpec); err != nil {
		return nil, err
	}
	if t.CompetitorFacts, err = loadTable[CompetitorFact](fsys, competitorFactSpec); err != nil {
		return nil, err
	}
	if t.HotSKUs, err = loadTable[CompetitorHotSKU](fsys, hotSKUSpec); err != nil {
		return nil, err
	}
	if t.WavePlans, err = loadTable[WavePlan](fsys, wavePlanSpec); err != nil {
		return nil, err
	}
	if t.WavePlanMix, err = loadTable[WavePlanMix](fsys, wavePlanMixSpec); err != nil {
		return nil, err
	}
	if t.SalesPlans, err = loadTable[SalesPlan](fsys, salesPlanSpec); err != nil {
		return nil, err
	}

	snap, err := New(t)
	if err != nil {
		return nil, err
	}

	log := logging.Component("snapshot")
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

func loadTable[T any](fsys fs.FS, spec tableSpec) ([]T, error) {
	data, err := fs.ReadFile(fsys, spec.name+".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && spec.optional {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read table %s: %w", spec.name, err)
	}
	return DecodeTable[T](data, spec.name, spec.required)
}

// DecodeTable decodes a JSON array of flat records. Every field in required
// must be present, non-null and, for strings, non-empty. Unknown fields are
// ignored.
func DecodeTable[T any](data []byte, table string, required []string) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%s: %w", table, ErrNotArray)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse table %s: %w", table, err)
	}

	out := make([]T, 0, len(raw))
	for i, msg := range raw {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(msg, &fields); err != nil {
			return nil, &ValidationError{Table: table, Index: i, Field: "*", Reason: "record is not an object"}
		}
		for _, name := range required {
			v, ok := fields[name]
			if !ok {
				return nil, &ValidationError{Table: table, Index: i, Field: name, Reason: "required field missing"}
			}
			s := string(bytes.TrimSpace(v))
			if s == "null" || s == `""` {
				return nil, &ValidationError{Table: table, Index: i, Field: name, Reason: "required field empty"}
			}
		}

		var rec T
		if err := json.Unmarshal(msg, &rec); err != nil {
			return nil, &ValidationError{Table: table, Index: i, Field: "*", Reason: err.Error()}
		}
		out = append(out, rec)
	}
	return out, nil
}
