//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package snapshot holds the immutable set of fact and dimension tables that
// every analytics call reads from.
package snapshot

import (
	"fmt"
	"sort"
)

// Tables is the raw content of a snapshot, one slice per source table.
type Tables struct {
	SKUs            []SKU
	Channels        []Channel
	Sales           []SalesFact
	Inventory       []InventoryFact
	Competitors     []CompetitorDim
	CompetitorFacts []CompetitorFact
	HotSKUs         []CompetitorHotSKU
	WavePlans       []WavePlan
	WavePlanMix     []WavePlanMix
	SalesPlans      []SalesPlan
}

// Snapshot is a read-only view over Tables with key indexes built once.
// It is safe for any number of concurrent readers.
type Snapshot struct {
	t Tables

	skuByID        map[string]int
	channelByID    map[string]int
	competitorByID map[string]int
}

// New indexes the tables. Duplicate dimension keys are a load error.
func New(t Tables) (*Snapshot, error) {
	s := &Snapshot{
		t:              t,
		skuByID:        make(map[string]int, len(t.SKUs)),
		channelByID:    make(map[string]int, len(t.Channels)),
		competitorByID: make(map[string]int, len(t.Competitors)),
	}

	for i, sku := range t.SKUs {
		if _, dup := s.skuByID[sku.SKUID]; dup {
			return nil, &ValidationError{Table: TableSKUs, Index: i, Field: "sku_id",
				Reason: fmt.Sprintf("duplicate key %q", sku.SKUID)}
		}
		s.skuByID[sku.SKUID] = i
	}
	for i, ch := range t.Channels {
		if _, dup := s.channelByID[ch.ChannelID]; dup {
			return nil, &ValidationError{Table: TableChannels, Index: i, Field: "channel_id",
				Reason: fmt.Sprintf("duplicate key %q", ch.ChannelID)}
		}
		s.channelByID[ch.ChannelID] = i
	}
	for i, c := range t.Competitors {
		if _, dup := s.competitorByID[c.CompetitorID]; dup {
			return nil, &ValidationError{Table: TableCompetitors, Index: i, Field: "competitor_id",
				Reason: fmt.Sprintf("duplicate key %q", c.CompetitorID)}
		}
		s.competitorByID[c.CompetitorID] = i
	}

	return s, nil
}

// SKU looks up a SKU by id.
func (s *Snapshot) SKU(id string) (SKU, bool) {
	i, ok := s.skuByID[id]
	if !ok {
		return SKU{}, false
	}
	return s.t.SKUs[i], true
}

// Channel looks up a channel by id.
func (s *Snapshot) Channel(id string) (Channel, bool) {
	i, ok := s.channelByID[id]
	if !ok {
		return Channel{}, false
	}
	return s.t.Channels[i], true
}

// Competitor looks up a competing brand by id.
func (s *Snapshot) Competitor(id string) (CompetitorDim, bool) {
	i, ok := s.competitorByID[id]
	if !ok {
		return CompetitorDim{}, false
	}
	return s.t.Competitors[i], true
}

// SKUs returns the SKU dimension rows. Like every accessor below it returns
// the backing slice, which callers must treat as read-only.
func (s *Snapshot) SKUs() []SKU { return s.t.SKUs }

// Channels returns the channel dimension rows.
func (s *Snapshot) Channels() []Channel { return s.t.Channels }

// Sales returns the weekly sales facts in input order.
func (s *Snapshot) Sales() []SalesFact { return s.t.Sales }

// Inventory returns the inventory facts.
func (s *Snapshot) Inventory() []InventoryFact { return s.t.Inventory }

// Competitors returns the competitor brand rows.
func (s *Snapshot) Competitors() []CompetitorDim { return s.t.Competitors }

// CompetitorFacts returns competitor sales by season, category and band.
func (s *Snapshot) CompetitorFacts() []CompetitorFact { return s.t.CompetitorFacts }

// HotSKUs returns the competitor best sellers.
func (s *Snapshot) HotSKUs() []CompetitorHotSKU { return s.t.HotSKUs }

// WavePlans returns the launch wave plans.
func (s *Snapshot) WavePlans() []WavePlan { return s.t.WavePlans }

// WavePlanMix returns the planned category shares per wave.
func (s *Snapshot) WavePlanMix() []WavePlanMix { return s.t.WavePlanMix }

// SalesPlans returns the season and region sales targets.
func (s *Snapshot) SalesPlans() []SalesPlan { return s.t.SalesPlans }

// Tables returns all tables, for seeding and export.
func (s *Snapshot) Tables() Tables { return s.t }

// Counts returns the row count of every table, keyed by table name.
func (s *Snapshot) Counts() map[string]int {
	return map[string]int{
		TableSKUs:            len(s.t.SKUs),
		TableChannels:        len(s.t.Channels),
		TableSales:           len(s.t.Sales),
		TableInventory:       len(s.t.Inventory),
		TableCompetitors:     len(s.t.Competitors),
		TableCompetitorFacts: len(s.t.CompetitorFacts),
		TableHotSKUs:         len(s.t.HotSKUs),
		TableWavePlans:       len(s.t.WavePlans),
		TableWavePlanMix:     len(s.t.WavePlanMix),
		TableSalesPlans:      len(s.t.SalesPlans),
	}
}

// MonotonicViolation records a week where cumulative sell-through dropped
// below the previous observed week for the same SKU and channel.
type MonotonicViolation struct {
	SKUID     string
	ChannelID string
	WeekNum   int
	Previous  float64
	Current   float64
}

// MonotonicViolations scans sales facts for sell-through regressions.
// The engine still reports the latest week's value as-is; this is an
// audit pass, not a correction.
func (s *Snapshot) MonotonicViolations() []MonotonicViolation {
	type pairKey struct{ sku, channel string }
	series := make(map[pairKey][]SalesFact)
	var order []pairKey
	for _, f := range s.t.Sales {
		k := pairKey{f.SKUID, f.ChannelID}
		if _, seen := series[k]; !seen {
			order = append(order, k)
		}
		series[k] = append(series[k], f)
	}

	var out []MonotonicViolation
	for _, k := range order {
		rows := series[k]
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].SeasonYear != rows[j].SeasonYear {
				return rows[i].SeasonYear < rows[j].SeasonYear
			}
			if rows[i].Season != rows[j].Season {
				return rows[i].Season < rows[j].Season
			}
			return rows[i].WeekNum < rows[j].WeekNum
		})
		for i := 1; i < len(rows); i++ {
			prev, cur := rows[i-1], rows[i]
			if prev.SeasonYear != cur.SeasonYear || prev.Season != cur.Season {
				continue
			}
			if cur.CumulativeSellThrough < prev.CumulativeSellThrough {
				out = append(out, MonotonicViolation{
					SKUID:     k.sku,
					ChannelID: k.channel,
					WeekNum:   cur.WeekNum,
					Previous:  prev.CumulativeSellThrough,
					Current:   cur.CumulativeSellThrough,
				})
			}
		}
	}
	return out
}
