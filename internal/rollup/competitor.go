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
	"fmt"
	"sort"

	"github.com/pgEdge/pgedge-merchlens/internal/join"
	"github.com/pgEdge/pgedge-merchlens/internal/metrics"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
	"github.com/pgEdge/pgedge-merchlens/internal/taxonomy"
)

// MixBy selects the competitor mix axis.
type MixBy string

// Mix axes.
const (
	MixCategory  MixBy = "category"
	MixPriceBand MixBy = "price_band"
)

// ParseMixBy validates a mix axis.
func ParseMixBy(s string) (MixBy, error) {
	switch MixBy(s) {
	case MixCategory, MixPriceBand:
		return MixBy(s), nil
	}
	return "", fmt.Errorf("unknown competitor mix axis: %s", s)
}

// OwnBrand labels our own figures next to competitors.
const OwnBrand = "本品"

// Labels resolves competitor labels against our own taxonomy. Competitor
// data shares no keys with ours, only category and price-band text.
type Labels struct {
	Categories *taxonomy.Resolver
	Bands      *taxonomy.BandResolver
}

func (l Labels) key(f snapshot.CompetitorFact, by MixBy) string {
	if by == MixPriceBand {
		return l.Bands.Resolve(f.PriceBand, f.AvgPrice).Code
	}
	return l.Categories.Resolve(taxonomy.CategoryInput{Raw: f.Category}).L1
}

// MixRow is one competitor x category (or price band) cell.
type MixRow struct {
	CompetitorID string  `json:"competitor_id"`
	Brand        string  `json:"brand"`
	Key          string  `json:"key"`
	SalesAmt     float64 `json:"sales_amt"`
	SKUCount     int     `json:"sku_count"`
	AvgPrice     float64 `json:"avg_price"`

	// BrandShare is the cell's share of the brand's own sales.
	BrandShare float64 `json:"brand_share"`

	// OwnShare is the same key's share of our net sales. GapPP is
	// (BrandShare - OwnShare) in percentage points.
	OwnShare float64 `json:"own_share"`
	GapPP    float64 `json:"gap_pp"`
}

// CompetitorMix rolls competitor facts up by brand and key and sets each
// cell against our own share for the same key. Facts of unknown competitors
// are dropped. Rows are ordered by descending sales, ties in order of first
// appearance.
func CompetitorMix(facts []snapshot.CompetitorFact, snap *snapshot.Snapshot, labels Labels, by MixBy, own []join.Row) []MixRow {
	type cell struct {
		row   MixRow
		price metrics.Weighted
	}
	index := make(map[string]int)
	var cells []*cell
	brandTotal := make(map[string]float64)

	for _, f := range facts {
		dim, ok := snap.Competitor(f.CompetitorID)
		if !ok {
			continue
		}
		key := labels.key(f, by)
		mk := f.CompetitorID + "\x00" + key
		i, ok := index[mk]
		if !ok {
			i = len(cells)
			index[mk] = i
			cells = append(cells, &cell{row: MixRow{
				CompetitorID: f.CompetitorID,
				Brand:        dim.BrandName,
				Key:          key,
			}})
		}
		c := cells[i]
		c.row.SalesAmt += f.SalesAmt
		c.row.SKUCount += f.SKUCount
		c.price.Add(f.AvgPrice, float64(f.SKUCount))
		brandTotal[f.CompetitorID] += f.SalesAmt
	}

	ownShare := ownShares(own, by)
	out := make([]MixRow, 0, len(cells))
	for _, c := range cells {
		r := c.row
		r.AvgPrice = c.price.Value()
		r.BrandShare = metrics.SafeDiv(r.SalesAmt, brandTotal[r.CompetitorID])
		r.OwnShare = ownShare[r.Key]
		r.GapPP = PPChange(r.BrandShare, r.OwnShare)
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SalesAmt > out[j].SalesAmt })
	return out
}

func ownShares(rows []join.Row, by MixBy) map[string]float64 {
	dim := CategoryL1
	if by == MixPriceBand {
		dim = PriceBand
	}
	var total float64
	sums := make(map[string]float64)
	for i := range rows {
		sums[dim.Value(&rows[i])] += rows[i].NetSalesAmt
		total += rows[i].NetSalesAmt
	}
	out := make(map[string]float64, len(sums))
	for k, v := range sums {
		out[k] = metrics.SafeDiv(v, total)
	}
	return out
}

// BrandShare is one brand's share of the observed market.
type BrandShare struct {
	Brand       string  `json:"brand"`
	Positioning string  `json:"positioning"`
	SalesAmt    float64 `json:"sales_amt"`
	Share       float64 `json:"share"`
	Own         bool    `json:"own"`
}

// BrandShares returns every competitor brand plus our own net sales as
// shares of their combined total, by descending sales.
func BrandShares(facts []snapshot.CompetitorFact, snap *snapshot.Snapshot, ownNet float64) []BrandShare {
	index := make(map[string]int)
	out := []BrandShare{{Brand: OwnBrand, SalesAmt: ownNet, Own: true}}
	for _, f := range facts {
		dim, ok := snap.Competitor(f.CompetitorID)
		if !ok {
			continue
		}
		i, ok := index[f.CompetitorID]
		if !ok {
			i = len(out)
			index[f.CompetitorID] = i
			out = append(out, BrandShare{Brand: dim.BrandName, Positioning: dim.Positioning})
		}
		out[i].SalesAmt += f.SalesAmt
	}

	var total float64
	for _, b := range out {
		total += b.SalesAmt
	}
	for i := range out {
		out[i].Share = metrics.SafeDiv(out[i].SalesAmt, total)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SalesAmt > out[j].SalesAmt })
	return out
}

// HotSKU is a ranked competitor best seller.
type HotSKU struct {
	snapshot.CompetitorHotSKU
	Brand      string `json:"brand"`
	CategoryL1 string `json:"category_l1"`
	Rank       int    `json:"rank"`
}

// HotSKUs returns up to n best sellers per brand, brands in order of first
// appearance, ranked by descending sales with ties in input order.
func HotSKUs(hot []snapshot.CompetitorHotSKU, snap *snapshot.Snapshot, cats *taxonomy.Resolver, n int) []HotSKU {
	byBrand := make(map[string][]snapshot.CompetitorHotSKU)
	var order []string
	for _, h := range hot {
		if _, ok := snap.Competitor(h.CompetitorID); !ok {
			continue
		}
		if _, ok := byBrand[h.CompetitorID]; !ok {
			order = append(order, h.CompetitorID)
		}
		byBrand[h.CompetitorID] = append(byBrand[h.CompetitorID], h)
	}

	var out []HotSKU
	for _, id := range order {
		list := byBrand[id]
		sales := make([]float64, len(list))
		for i, h := range list {
			sales[i] = h.SalesAmt
		}
		dim, _ := snap.Competitor(id)
		for rank, i := range metrics.TopN(sales, n) {
			h := list[i]
			out = append(out, HotSKU{
				CompetitorHotSKU: h,
				Brand:            dim.BrandName,
				CategoryL1:       cats.Resolve(taxonomy.CategoryInput{Raw: h.Category, SKUName: h.SKUName}).L1,
				Rank:             rank + 1,
			})
		}
	}
	return out
}
