//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package rollup

import (
	"math"

	"github.com/pgEdge/pgedge-merchlens/internal/metrics"
)

// Delta compares a group with its baseline counterpart. Money and volume
// fields are relative changes, (cur-base)/|base|. Rate fields are
// percentage-point changes, (cur-base)*100. Every field is nil when the
// baseline has no matching group, which is distinct from a zero change.
type Delta struct {
	Baseline *metrics.Summary `json:"baseline,omitempty"`

	NetSales    *float64 `json:"net_sales_pct,omitempty"`
	Units       *float64 `json:"units_pct,omitempty"`
	GrossProfit *float64 `json:"gross_profit_pct,omitempty"`

	SellThrough   *float64 `json:"sell_through_pp,omitempty"`
	Margin        *float64 `json:"margin_pp,omitempty"`
	DiscountDepth *float64 `json:"discount_depth_pp,omitempty"`
	FillRate      *float64 `json:"fill_rate_pp,omitempty"`

	// WOS is the absolute change in weeks.
	WOS *float64 `json:"wos_change,omitempty"`
}

// Defined reports whether the baseline had a matching group.
func (d *Delta) Defined() bool {
	return d != nil && d.Baseline != nil
}

// PctChange is (cur-base)/|base|, 0 when base is 0.
func PctChange(cur, base float64) float64 {
	return metrics.SafeDiv(cur-base, math.Abs(base))
}

// PPChange is the percentage-point change of a rate.
func PPChange(cur, base float64) float64 {
	return (cur - base) * 100
}

// NewDelta compares two summaries. A nil or empty baseline yields a Delta
// with every field nil.
func NewDelta(cur metrics.Summary, base *metrics.Summary) *Delta {
	if base == nil || base.Rows == 0 {
		return &Delta{}
	}
	b := *base
	return &Delta{
		Baseline:      &b,
		NetSales:      ptr(PctChange(cur.Net, b.Net)),
		Units:         ptr(PctChange(cur.Units, b.Units)),
		GrossProfit:   ptr(PctChange(cur.GrossProfit, b.GrossProfit)),
		SellThrough:   ptr(PPChange(cur.SellThrough, b.SellThrough)),
		Margin:        ptr(PPChange(cur.Margin, b.Margin)),
		DiscountDepth: ptr(PPChange(cur.DiscountDepth, b.DiscountDepth)),
		FillRate:      ptr(PPChange(cur.FillRate, b.FillRate)),
		WOS:           ptr(cur.WOS - b.WOS),
	}
}

// Compare aligns current groups with baseline groups on the grouping key
// and sets Delta on a copy of each current group. Baseline-only groups are
// not reported.
func Compare(current, baseline []Group) []Group {
	index := make(map[string]int, len(baseline))
	for i, g := range baseline {
		index[mapKey(g.Key)] = i
	}

	out := make([]Group, len(current))
	for i, g := range current {
		var base *metrics.Summary
		if j, ok := index[mapKey(g.Key)]; ok {
			base = &baseline[j].Summary
		}
		g.Delta = NewDelta(g.Summary, base)
		out[i] = g
	}
	return out
}

// Plan is a group's sales target.
type Plan struct {
	Target      float64 `json:"target"`
	Explicit    bool    `json:"explicit"`
	Achievement float64 `json:"achievement"`
	Gap         float64 `json:"gap"`
}

// AllocatePlan sets Plan on a copy of each group. A group with an explicit
// plan keyed by its label uses it. Otherwise the group's target is its share
// of the groups' actual net sales times total.
func AllocatePlan(groups []Group, total float64, explicit map[string]float64) []Group {
	var net float64
	for _, g := range groups {
		net += g.Net
	}

	out := make([]Group, len(groups))
	for i, g := range groups {
		p := Plan{}
		if v, ok := explicit[g.Label]; ok {
			p.Target = v
			p.Explicit = true
		} else {
			p.Target = metrics.SafeDiv(g.Net, net) * total
		}
		p.Achievement = metrics.SafeDiv(g.Net, p.Target)
		p.Gap = g.Net - p.Target
		g.Plan = &p
		out[i] = g
	}
	return out
}

func ptr(v float64) *float64 {
	return &v
}
