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
	"testing"

	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
)

func currentFacts(snap *snapshot.Snapshot) []snapshot.CompetitorFact {
	var out []snapshot.CompetitorFact
	for _, f := range snap.CompetitorFacts() {
		if f.SeasonYear == 2025 && f.Season == "Q1" {
			out = append(out, f)
		}
	}
	return out
}

func TestCompetitorMixByCategory(t *testing.T) {
	fx := newFixture(t)
	rows := CompetitorMix(currentFacts(fx.snap), fx.snap, fx.labels, MixCategory, fx.cur)

	want := []struct {
		brand, key string
		sales      float64
	}{
		{"竞品A", "跑步", 5000},
		{"竞品B", "休闲/街头", 4000},
		{"竞品A", "篮球", 3000},
	}
	if len(rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(rows))
	}
	for i, w := range want {
		if rows[i].Brand != w.brand || rows[i].Key != w.key || rows[i].SalesAmt != w.sales {
			t.Errorf("Row %d: expected %s/%s/%v, got %s/%s/%v",
				i, w.brand, w.key, w.sales, rows[i].Brand, rows[i].Key, rows[i].SalesAmt)
		}
	}

	run := rows[0]
	if !approx(run.BrandShare, 0.625) {
		t.Errorf("Expected brand share 0.625, got %v", run.BrandShare)
	}
	if !approx(run.OwnShare, 3000.0/13000) {
		t.Errorf("Expected own share %v, got %v", 3000.0/13000, run.OwnShare)
	}
	if !approx(run.GapPP, (0.625-3000.0/13000)*100) {
		t.Errorf("Unexpected gap %v", run.GapPP)
	}
	if run.AvgPrice != 700 {
		t.Errorf("Expected avg price 700, got %v", run.AvgPrice)
	}
}

func TestCompetitorMixByBand(t *testing.T) {
	fx := newFixture(t)
	rows := CompetitorMix(currentFacts(fx.snap), fx.snap, fx.labels, MixPriceBand, fx.cur)

	keys := []string{"PB3", "PB2", "PB4"}
	for i, k := range keys {
		if rows[i].Key != k {
			t.Errorf("Row %d: expected %s, got %s", i, k, rows[i].Key)
		}
	}
	if rows[1].OwnShare != 0 || !approx(rows[1].GapPP, 100) {
		t.Errorf("Expected PB2 gap of 100pp with no own sales, got %+v", rows[1])
	}
}

func TestCompetitorMixDropsUnknownBrand(t *testing.T) {
	fx := newFixture(t)
	facts := append(currentFacts(fx.snap), snapshot.CompetitorFact{CompetitorID: "K9", Category: "跑步", SalesAmt: 1})
	rows := CompetitorMix(facts, fx.snap, fx.labels, MixCategory, fx.cur)
	if len(rows) != 3 {
		t.Errorf("Expected unknown competitor to be dropped, got %d rows", len(rows))
	}
}

func TestBrandShares(t *testing.T) {
	fx := newFixture(t)
	shares := BrandShares(currentFacts(fx.snap), fx.snap, 13000)

	if len(shares) != 3 {
		t.Fatalf("Expected 3 brands, got %d", len(shares))
	}
	if !shares[0].Own || !approx(shares[0].Share, 0.52) {
		t.Errorf("Expected own brand first with 52%%, got %+v", shares[0])
	}
	if shares[1].Brand != "竞品A" || !approx(shares[1].Share, 0.32) {
		t.Errorf("Expected 竞品A with 32%%, got %+v", shares[1])
	}
}

func TestHotSKUs(t *testing.T) {
	fx := newFixture(t)
	hot := HotSKUs(fx.snap.HotSKUs(), fx.snap, fx.labels.Categories, 1)

	if len(hot) != 2 {
		t.Fatalf("Expected one SKU per brand, got %d", len(hot))
	}
	if hot[0].SKUName != "A1 碳板跑鞋" || hot[0].Rank != 1 || hot[0].CategoryL1 != "跑步" {
		t.Errorf("Unexpected top 竞品A SKU %+v", hot[0])
	}
	if hot[1].Brand != "竞品B" {
		t.Errorf("Expected 竞品B second, got %s", hot[1].Brand)
	}
}
