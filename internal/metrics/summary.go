//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package metrics

import (
	"github.com/pgEdge/pgedge-merchlens/internal/join"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
	"github.com/pgEdge/pgedge-merchlens/internal/taxonomy"
)

// Week orders sales facts in time.
type Week struct {
	Year   int
	Season int
	Num    int
}

// WeekOf returns the time key of a sales fact. Unknown seasons sort first.
func WeekOf(f snapshot.SalesFact) Week {
	season := -1
	for i, s := range join.Seasons {
		if s == f.Season {
			season = i
			break
		}
	}
	return Week{Year: f.SeasonYear, Season: season, Num: f.WeekNum}
}

// Before reports whether w is earlier than o.
func (w Week) Before(o Week) bool {
	if w.Year != o.Year {
		return w.Year < o.Year
	}
	if w.Season != o.Season {
		return w.Season < o.Season
	}
	return w.Num < o.Num
}

// Summary is the metric set of a group of joined rows.
//
// Sell-through and on-hand come from the latest week of each SKU and
// channel pair: sell-through is the carried cumulative_sell_through of that
// row, sales-weighted across pairs, and on-hand is summed across pairs.
// Margin and discount depth are ratios of sums.
type Summary struct {
	Rows  int `json:"rows"`
	Weeks int `json:"weeks"`

	Units       float64 `json:"units"`
	OnHand      float64 `json:"on_hand"`
	Gross       float64 `json:"gross_sales"`
	Net         float64 `json:"net_sales"`
	COGS        float64 `json:"cogs"`
	GrossProfit float64 `json:"gross_profit"`
	Discount    float64 `json:"discount"`

	AvgWeeklyUnits float64 `json:"avg_weekly_units"`
	SellThrough    float64 `json:"sell_through"`
	WOS            float64 `json:"wos"`
	DOS            float64 `json:"dos"`
	Margin         float64 `json:"margin_rate"`
	DiscountDepth  float64 `json:"discount_depth"`

	// Demand and Ship are synthetic; see Demand and Ship.
	Demand   float64 `json:"demand_synthetic"`
	Ship     float64 `json:"ship_synthetic"`
	FillRate float64 `json:"fill_rate"`
}

type pairKey struct {
	sku     string
	channel string
}

// Summarize computes the metric set of rows.
func Summarize(rows []join.Row, cfg Config) Summary {
	var s Summary
	s.Rows = len(rows)

	weeks := make(map[Week]struct{})
	latest := make(map[pairKey]int)
	volume := make(map[pairKey][2]float64)
	var order []pairKey

	for i := range rows {
		r := &rows[i]
		s.Units += r.UnitSold
		s.Gross += r.GrossSalesAmt
		s.Net += r.NetSalesAmt
		s.COGS += r.COGSAmt
		s.GrossProfit += r.GrossProfitAmt
		s.Discount += r.DiscountAmt

		w := WeekOf(r.SalesFact)
		weeks[w] = struct{}{}

		k := pairKey{sku: r.SKUID, channel: r.ChannelID}
		v := volume[k]
		volume[k] = [2]float64{v[0] + r.NetSalesAmt, v[1] + r.UnitSold}
		j, seen := latest[k]
		if !seen {
			order = append(order, k)
			latest[k] = i
			continue
		}
		if !w.Before(WeekOf(rows[j].SalesFact)) {
			latest[k] = i
		}
	}

	// Each pair contributes its latest sell-through, weighted by the pair's
	// total sales in rows.
	var st Weighted
	for _, k := range order {
		r := &rows[latest[k]]
		s.OnHand += r.OnHandUnit
		v := volume[k]
		st.Add(r.CumulativeSellThrough, SalesWeight(v[0], v[1]))
	}

	s.Weeks = len(weeks)
	s.AvgWeeklyUnits = SafeDiv(s.Units, float64(s.Weeks))
	s.SellThrough = st.Value()
	s.WOS = WOS(s.OnHand, s.AvgWeeklyUnits, cfg.WOSSentinel)
	s.DOS = DOS(s.WOS)
	s.Margin = MarginRate(s.GrossProfit, s.Net)
	s.DiscountDepth = DiscountDepth(s.Gross, s.Net)
	s.Demand = Demand(s.Units, s.OnHand, cfg.DemandWeight)
	s.Ship = Ship(s.Units, s.OnHand, cfg.ShipWeight)
	s.FillRate = FillRate(s.Ship, s.Demand)
	return s
}

// SKUStat is the summary of one SKU.
type SKUStat struct {
	Summary
	SKU      snapshot.SKU      `json:"sku"`
	Category taxonomy.Category `json:"category"`
	Band     taxonomy.Band     `json:"price_band"`
}

// SKUStats summarizes rows per SKU, in order of first appearance.
func SKUStats(rows []join.Row, cfg Config) []SKUStat {
	groups := make(map[string][]join.Row)
	var order []string
	for _, r := range rows {
		if _, ok := groups[r.SKUID]; !ok {
			order = append(order, r.SKUID)
		}
		groups[r.SKUID] = append(groups[r.SKUID], r)
	}

	out := make([]SKUStat, 0, len(order))
	for _, id := range order {
		g := groups[id]
		out = append(out, SKUStat{
			Summary:  Summarize(g, cfg),
			SKU:      g[0].SKU,
			Category: g[0].Category,
			Band:     g[0].Band,
		})
	}
	return out
}

// ReorderRate is the share of stats whose WOS is below ReorderWeeks.
func ReorderRate(stats []SKUStat, cfg Config) float64 {
	n := 0
	for _, s := range stats {
		if s.WOS < cfg.ReorderWeeks {
			n++
		}
	}
	return SafeDiv(float64(n), float64(len(stats)))
}
