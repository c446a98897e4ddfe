//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package metrics provides the pure KPI calculators used by rollups and risk
// classification. No function in this package returns NaN or Inf.
package metrics

import (
	"math"
	"sort"
)

// Config holds the tunable constants of the calculators.
type Config struct {
	// WOSSentinel is reported as weeks of supply when nothing sells.
	WOSSentinel float64 `mapstructure:"wos_sentinel"`

	// DemandWeight and ShipWeight are the on-hand fractions added to units
	// sold to form the synthetic Demand and Ship quantities.
	DemandWeight float64 `mapstructure:"demand_weight"`
	ShipWeight   float64 `mapstructure:"ship_weight"`

	// ReorderWeeks is the WOS below which a SKU counts toward reorder rate.
	ReorderWeeks float64 `mapstructure:"reorder_weeks"`

	// TopN is the concentration depth.
	TopN int `mapstructure:"top_n"`
}

// DefaultConfig returns the standard calculator constants.
func DefaultConfig() Config {
	return Config{
		WOSSentinel:  99.9,
		DemandWeight: 0.25,
		ShipWeight:   0.22,
		ReorderWeeks: 4,
		TopN:         10,
	}
}

// SafeDiv returns n/d, or 0 when d <= 0 or either input is not finite.
func SafeDiv(n, d float64) float64 {
	if !finite(n) || !finite(d) || d <= 0 {
		return 0
	}
	return n / d
}

// WOS is weeks of supply: on-hand units over average weekly units sold.
// When average weekly units is not positive the sentinel is returned.
func WOS(onHand, avgWeeklyUnits, sentinel float64) float64 {
	if !finite(avgWeeklyUnits) || avgWeeklyUnits <= 0 {
		return sentinel
	}
	if !finite(onHand) {
		return 0
	}
	return onHand / avgWeeklyUnits
}

// DOS is days of supply.
func DOS(wos float64) float64 {
	return wos * 7
}

// DiscountDepth is (gross - net) / gross, 0 when gross <= 0.
func DiscountDepth(gross, net float64) float64 {
	return SafeDiv(gross-net, gross)
}

// MarginRate is gross profit over net sales, 0 when net <= 0.
func MarginRate(grossProfit, net float64) float64 {
	return SafeDiv(grossProfit, net)
}

// Demand is the synthetic requested quantity used by fill rate: units sold
// plus weight times on-hand. It is a smoothing heuristic, not an ERP count.
func Demand(units, onHand, weight float64) float64 {
	return units + weight*onHand
}

// Ship is the synthetic fulfilled quantity used by fill rate, built the same
// way as Demand with its own weight.
func Ship(units, onHand, weight float64) float64 {
	return units + weight*onHand
}

// FillRate is ship over demand.
func FillRate(ship, demand float64) float64 {
	return SafeDiv(ship, demand)
}

// SellShipRatio is units sold over units shipped in (inbound plus
// transfers).
func SellShipRatio(sold, inbound, transferIn float64) float64 {
	return SafeDiv(sold, inbound+transferIn)
}

// TopNShare returns the share of the total held by the n largest values.
// Values are ranked descending with ties kept in input order. Non-positive
// totals yield 0.
func TopNShare(values []float64, n int) float64 {
	if n <= 0 || len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	var top, total float64
	for i, v := range sorted {
		if !finite(v) {
			continue
		}
		if i < n {
			top += v
		}
		total += v
	}
	return SafeDiv(top, total)
}

// TopN returns the indexes of the n largest values, descending, ties in
// input order.
func TopN(values []float64, n int) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] > values[idx[b]] })
	if n >= 0 && n < len(idx) {
		idx = idx[:n]
	}
	return idx
}

// Concentration bands of the Herfindahl-Hirschman index.
const (
	Unconcentrated         = "unconcentrated"
	ModeratelyConcentrated = "moderately_concentrated"
	HighlyConcentrated     = "highly_concentrated"
)

// HHI is the Herfindahl-Hirschman index over the shares of values, in
// [0, 1]. Non-positive values are ignored.
func HHI(values []float64) float64 {
	var total float64
	for _, v := range values {
		if finite(v) && v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return 0
	}
	var h float64
	for _, v := range values {
		if finite(v) && v > 0 {
			s := v / total
			h += s * s
		}
	}
	return h
}

// ConcentrationBand classifies an HHI value.
func ConcentrationBand(hhi float64) string {
	switch {
	case hhi < 0.15:
		return Unconcentrated
	case hhi < 0.25:
		return ModeratelyConcentrated
	default:
		return HighlyConcentrated
	}
}

// Weighted accumulates a weighted average.
type Weighted struct {
	sum    float64
	weight float64
}

// Add adds v with weight w. Non-finite inputs and non-positive weights are
// ignored.
func (a *Weighted) Add(v, w float64) {
	if !finite(v) || !finite(w) || w <= 0 {
		return
	}
	a.sum += v * w
	a.weight += w
}

// Value returns the weighted average, 0 when no weight was added.
func (a *Weighted) Value() float64 {
	return SafeDiv(a.sum, a.weight)
}

// SalesWeight is the weight of a row in sales-weighted averages: its net
// sales amount, or units sold when the amount is zero.
func SalesWeight(net, units float64) float64 {
	if net != 0 {
		return net
	}
	return units
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
