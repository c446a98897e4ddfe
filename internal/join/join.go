//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package join

import (
	"github.com/pgEdge/pgedge-merchlens/internal/logging"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
	"github.com/pgEdge/pgedge-merchlens/internal/taxonomy"
)

// Row is a sales fact joined to its SKU and channel, with the SKU's
// resolved category and price band.
type Row struct {
	snapshot.SalesFact
	SKU      snapshot.SKU
	Channel  snapshot.Channel
	Category taxonomy.Category
	Band     taxonomy.Band
}

// InventoryRow is an inventory fact joined to its SKU.
type InventoryRow struct {
	snapshot.InventoryFact
	SKU      snapshot.SKU
	Category taxonomy.Category
	Band     taxonomy.Band
}

// Result is the output of a join.
type Result struct {
	Rows []Row

	// Dropped counts facts whose SKU or channel did not resolve.
	Dropped int

	// Filtered counts joined facts rejected by the predicate.
	Filtered int
}

// Index holds the resolved category and band of every SKU. It is built once
// per snapshot and is safe for concurrent readers.
type Index struct {
	snap       *snapshot.Snapshot
	categories map[string]taxonomy.Category
	bands      map[string]taxonomy.Band
}

// NewIndex resolves every SKU in the snapshot.
func NewIndex(snap *snapshot.Snapshot, cats *taxonomy.Resolver, bands *taxonomy.BandResolver) *Index {
	skus := snap.SKUs()
	x := &Index{
		snap:       snap,
		categories: make(map[string]taxonomy.Category, len(skus)),
		bands:      make(map[string]taxonomy.Band, len(skus)),
	}
	for _, s := range skus {
		x.categories[s.SKUID] = cats.Resolve(taxonomy.Input(s))
		x.bands[s.SKUID] = bands.Resolve(s.PriceBand, s.MSRP)
	}
	return x
}

// Snapshot returns the indexed snapshot.
func (x *Index) Snapshot() *snapshot.Snapshot {
	return x.snap
}

// Category returns the resolved category of a SKU.
func (x *Index) Category(skuID string) (taxonomy.Category, bool) {
	c, ok := x.categories[skuID]
	return c, ok
}

// Band returns the resolved price band of a SKU.
func (x *Index) Band(skuID string) (taxonomy.Band, bool) {
	b, ok := x.bands[skuID]
	return b, ok
}

// Join inner-joins facts on sku_id and channel_id and keeps rows accepted by
// p. Facts whose SKU or channel do not resolve are excluded and counted.
// Output preserves input order.
func (x *Index) Join(facts []snapshot.SalesFact, p Predicate) Result {
	res := Result{Rows: make([]Row, 0, len(facts))}
	for _, f := range facts {
		sku, ok := x.snap.SKU(f.SKUID)
		if !ok {
			res.Dropped++
			continue
		}
		ch, ok := x.snap.Channel(f.ChannelID)
		if !ok {
			res.Dropped++
			continue
		}
		row := Row{
			SalesFact: f,
			SKU:       sku,
			Channel:   ch,
			Category:  x.categories[f.SKUID],
			Band:      x.bands[f.SKUID],
		}
		if !p.Match(&row) {
			res.Filtered++
			continue
		}
		res.Rows = append(res.Rows, row)
	}

	if res.Dropped > 0 {
		logging.Debug().
			Int("dropped", res.Dropped).
			Int("facts", len(facts)).
			Msg("Dropped sales facts with unresolved dimensions")
	}
	return res
}

// Current joins the snapshot's sales against the filter as selected.
func (x *Index) Current(f Filter) Result {
	return x.Join(x.snap.Sales(), f.Predicate())
}

// Baseline joins the snapshot's sales against f with season_year and season
// replaced by the comparison period. Every other dimension is kept.
func (x *Index) Baseline(f Filter, period Period) Result {
	return x.Join(x.snap.Sales(), f.WithPeriod(period).Predicate())
}

// Inventory joins inventory facts to their SKU and applies the SKU-level
// clauses of f. Channel dimensions do not apply to inventory.
func (x *Index) Inventory(f Filter) []InventoryRow {
	p := f.Predicate().SKULevel()
	facts := x.snap.Inventory()
	out := make([]InventoryRow, 0, len(facts))
	for _, inv := range facts {
		sku, ok := x.snap.SKU(inv.SKUID)
		if !ok {
			continue
		}
		probe := Row{
			SalesFact: snapshot.SalesFact{
				SKUID:      inv.SKUID,
				SeasonYear: inv.SeasonYear,
				Season:     inv.Season,
			},
			SKU:      sku,
			Category: x.categories[inv.SKUID],
			Band:     x.bands[inv.SKUID],
		}
		if !p.Match(&probe) {
			continue
		}
		out = append(out, InventoryRow{
			InventoryFact: inv,
			SKU:           sku,
			Category:      probe.Category,
			Band:          probe.Band,
		})
	}
	return out
}
