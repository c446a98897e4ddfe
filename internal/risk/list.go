//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package risk

import (
	"sort"

	"github.com/pgEdge/pgedge-merchlens/internal/metrics"
)

// MetricsOf extracts the risk inputs from a summary.
func MetricsOf(s metrics.Summary) Metrics {
	return Metrics{
		WOS:           s.WOS,
		SellThrough:   s.SellThrough,
		OnHand:        s.OnHand,
		Margin:        s.Margin,
		DiscountDepth: s.DiscountDepth,
	}
}

// Item is one row of the risk list.
type Item struct {
	SKUID      string   `json:"sku_id"`
	SKUName    string   `json:"sku_name"`
	CategoryL1 string   `json:"category_l1"`
	CategoryL2 string   `json:"category_l2"`
	PriceBand  string   `json:"price_band"`
	Lifecycle  string   `json:"lifecycle"`
	Wave       string   `json:"wave"`
	NetSales   float64  `json:"net_sales"`
	Metrics    Metrics  `json:"metrics"`
	Tags       []Tag    `json:"tags"`
	Priority   Priority `json:"priority"`
	Suggestion
}

// Classify tags one SKU.
func Classify(s metrics.SKUStat, t Thresholds) Item {
	m := MetricsOf(s.Summary)
	tags := Tags(m, t)
	return Item{
		SKUID:      s.SKU.SKUID,
		SKUName:    s.SKU.SKUName,
		CategoryL1: s.Category.L1,
		CategoryL2: s.Category.L2,
		PriceBand:  s.Band.Code,
		Lifecycle:  s.SKU.Lifecycle,
		Wave:       s.SKU.LaunchWave,
		NetSales:   s.Net,
		Metrics:    m,
		Tags:       tags,
		Priority:   CalcRiskPriority(tags),
		Suggestion: Suggest(tags, m, t),
	}
}

// List classifies every SKU and orders the result by priority, then by
// descending net sales, ties in input order.
func List(stats []metrics.SKUStat, t Thresholds) []Item {
	out := make([]Item, len(stats))
	for i, s := range stats {
		out[i] = Classify(s, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ri, rj := out[i].Priority.Rank(), out[j].Priority.Rank(); ri != rj {
			return ri < rj
		}
		return out[i].NetSales > out[j].NetSales
	})
	return out
}

// Counts tallies items per priority and per tag.
type Counts struct {
	Total      int              `json:"total"`
	ByPriority map[Priority]int `json:"by_priority"`
	ByTag      map[Tag]int      `json:"by_tag"`
}

// Count summarizes a risk list.
func Count(items []Item) Counts {
	c := Counts{
		Total:      len(items),
		ByPriority: make(map[Priority]int),
		ByTag:      make(map[Tag]int),
	}
	for _, it := range items {
		c.ByPriority[it.Priority]++
		for _, t := range it.Tags {
			c.ByTag[t]++
		}
	}
	return c
}
