//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package rollup groups joined rows by one or more dimensions and reduces
// each group to a summary row, optionally compared with a baseline or a
// plan.
package rollup

import (
	"sort"

	"github.com/pgEdge/pgedge-merchlens/internal/join"
	"github.com/pgEdge/pgedge-merchlens/internal/metrics"
)

// Group is one aggregate row. It is created per query and never stored.
type Group struct {
	Key   []string `json:"key"`
	Label string   `json:"label"`
	metrics.Summary

	SKUs          int     `json:"skus"`
	Share         float64 `json:"share"`
	TopNShare     float64 `json:"top_n_share"`
	HHI           float64 `json:"hhi"`
	Concentration string  `json:"concentration"`
	ReorderRate   float64 `json:"reorder_rate"`

	// Delta is set when a baseline was supplied. Its fields are nil when
	// the group has no baseline counterpart.
	Delta *Delta `json:"delta,omitempty"`

	// Plan is set by AllocatePlan.
	Plan *Plan `json:"plan,omitempty"`
}

// Aggregator reduces joined rows with a fixed calculator configuration.
// It holds no mutable state and may be shared.
type Aggregator struct {
	cfg metrics.Config
}

// New creates an aggregator.
func New(cfg metrics.Config) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Config returns the calculator configuration.
func (a *Aggregator) Config() metrics.Config {
	return a.cfg
}

// Aggregate groups rows by keys and reduces each group. Groups appear in
// descending net sales, ties in order of first appearance. With no keys a
// single total group is returned.
//
// A non-nil baseline is aggregated the same way and compared group by group;
// see Compare.
func (a *Aggregator) Aggregate(rows []join.Row, keys []Dimension, baseline []join.Row) []Group {
	groups := a.group(rows, keys)
	if baseline != nil {
		groups = Compare(groups, a.group(baseline, keys))
	}
	return groups
}

// Total reduces all rows to one group.
func (a *Aggregator) Total(rows []join.Row, baseline []join.Row) Group {
	return a.Aggregate(rows, nil, baseline)[0]
}

func (a *Aggregator) group(rows []join.Row, keys []Dimension) []Group {
	type bucket struct {
		key  []string
		rows []join.Row
	}
	index := make(map[string]int)
	var buckets []*bucket

	for i := range rows {
		key := keyOf(keys, &rows[i])
		mk := mapKey(key)
		j, ok := index[mk]
		if !ok {
			j = len(buckets)
			index[mk] = j
			buckets = append(buckets, &bucket{key: key})
		}
		buckets[j].rows = append(buckets[j].rows, rows[i])
	}
	if len(keys) == 0 && len(buckets) == 0 {
		buckets = append(buckets, &bucket{key: []string{}})
	}

	var totalNet float64
	for i := range rows {
		totalNet += rows[i].NetSalesAmt
	}

	out := make([]Group, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, a.reduce(b.key, b.rows, totalNet))
	}
	SortByNet(out)
	return out
}

func (a *Aggregator) reduce(key []string, rows []join.Row, totalNet float64) Group {
	g := Group{
		Key:     key,
		Label:   labelOf(key),
		Summary: metrics.Summarize(rows, a.cfg),
	}

	stats := metrics.SKUStats(rows, a.cfg)
	nets := make([]float64, len(stats))
	for i, s := range stats {
		nets[i] = s.Net
	}
	g.SKUs = len(stats)
	g.Share = metrics.SafeDiv(g.Net, totalNet)
	g.TopNShare = metrics.TopNShare(nets, a.cfg.TopN)
	g.HHI = metrics.HHI(nets)
	g.Concentration = metrics.ConcentrationBand(g.HHI)
	g.ReorderRate = metrics.ReorderRate(stats, a.cfg)
	return g
}

// SortByNet orders groups by descending net sales, keeping ties in their
// current order.
func SortByNet(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Net > groups[j].Net })
}

// Find returns the group with the given label.
func Find(groups []Group, label string) (Group, bool) {
	for _, g := range groups {
		if g.Label == label {
			return g, true
		}
	}
	return Group{}, false
}
