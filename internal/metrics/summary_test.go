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
	"math"
	"testing"

	"github.com/pgEdge/pgedge-merchlens/internal/join"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
	"github.com/pgEdge/pgedge-merchlens/internal/taxonomy"
	"github.com/pgEdge/pgedge-merchlens/internal/testutil"
)

func joinFixture(t *testing.T) []join.Row {
	t.Helper()
	x := join.NewIndex(testutil.Snapshot(t),
		taxonomy.NewResolver(taxonomy.DefaultTaxonomy()),
		taxonomy.NewBandResolver(taxonomy.DefaultPriceBands()))
	f := join.AllFilter()
	f.SeasonYear = "2025"
	f.Season = "Q1"
	return x.Current(f).Rows
}

func TestSKUStatsEndToEnd(t *testing.T) {
	stats := SKUStats(joinFixture(t), DefaultConfig())
	if len(stats) != 3 {
		t.Fatalf("Expected 3 SKUs, got %d", len(stats))
	}

	s := stats[0]
	if s.SKU.SKUID != "S001" {
		t.Fatalf("Expected S001 first, got %s", s.SKU.SKUID)
	}
	if s.Rows != 2 {
		t.Errorf("Expected the unknown-channel fact to be dropped, got %d rows", s.Rows)
	}
	if math.Abs(s.Margin-0.4333) > 1e-4 {
		t.Errorf("Expected margin 0.4333, got %.4f", s.Margin)
	}
	if !approx(s.SellThrough, 0.6) {
		t.Errorf("Expected latest-week sell-through 0.6, got %v", s.SellThrough)
	}
	if s.OnHand != 50 {
		t.Errorf("Expected latest on-hand 50, got %v", s.OnHand)
	}
	if s.Weeks != 2 || !approx(s.AvgWeeklyUnits, 15) {
		t.Errorf("Expected 2 weeks averaging 15 units, got %d weeks, %v", s.Weeks, s.AvgWeeklyUnits)
	}
	if !approx(s.WOS, 50.0/15) {
		t.Errorf("Expected WOS %v, got %v", 50.0/15, s.WOS)
	}
	if s.Category.L1 != "跑步" || s.Band.Code != "PB3" {
		t.Errorf("Expected 跑步/PB3, got %s/%s", s.Category.L1, s.Band.Code)
	}
}

func TestSummarizeWeightedSellThrough(t *testing.T) {
	rows := []join.Row{
		{SalesFact: snapshot.SalesFact{SKUID: "A", ChannelID: "C", WeekNum: 1,
			NetSalesAmt: 100, CumulativeSellThrough: 0.5}},
		{SalesFact: snapshot.SalesFact{SKUID: "B", ChannelID: "C", WeekNum: 1,
			NetSalesAmt: 300, CumulativeSellThrough: 0.9}},
	}
	s := Summarize(rows, DefaultConfig())
	if !approx(s.SellThrough, 0.80) {
		t.Errorf("Expected weighted sell-through 0.80, got %v", s.SellThrough)
	}
}

func TestSummarizeWeightsPairsByTotalSales(t *testing.T) {
	rows := []join.Row{
		{SalesFact: snapshot.SalesFact{SKUID: "A", ChannelID: "C", WeekNum: 1,
			NetSalesAmt: 1000, CumulativeSellThrough: 0.3}},
		{SalesFact: snapshot.SalesFact{SKUID: "A", ChannelID: "C", WeekNum: 2,
			NetSalesAmt: 10, CumulativeSellThrough: 0.5}},
		{SalesFact: snapshot.SalesFact{SKUID: "B", ChannelID: "C", WeekNum: 1,
			NetSalesAmt: 300, CumulativeSellThrough: 0.9}},
	}
	s := Summarize(rows, DefaultConfig())
	want := (0.5*1010 + 0.9*300) / 1310
	if !approx(s.SellThrough, want) {
		t.Errorf("Expected sell-through %.4f weighted by pair sales, got %.4f", want, s.SellThrough)
	}
}

func TestSummarizeUnitsFallbackWeight(t *testing.T) {
	rows := []join.Row{
		{SalesFact: snapshot.SalesFact{SKUID: "A", ChannelID: "C", WeekNum: 1,
			UnitSold: 1, CumulativeSellThrough: 0.2}},
		{SalesFact: snapshot.SalesFact{SKUID: "B", ChannelID: "C", WeekNum: 1,
			UnitSold: 3, CumulativeSellThrough: 0.6}},
	}
	s := Summarize(rows, DefaultConfig())
	if !approx(s.SellThrough, 0.5) {
		t.Errorf("Expected unit-weighted sell-through 0.5, got %v", s.SellThrough)
	}
}

func TestSummarizeLatestAcrossSeasons(t *testing.T) {
	rows := []join.Row{
		{SalesFact: snapshot.SalesFact{SKUID: "A", ChannelID: "C", SeasonYear: 2025, Season: "Q2",
			WeekNum: 1, UnitSold: 2, NetSalesAmt: 10, OnHandUnit: 5, CumulativeSellThrough: 0.7}},
		{SalesFact: snapshot.SalesFact{SKUID: "A", ChannelID: "C", SeasonYear: 2025, Season: "Q1",
			WeekNum: 12, UnitSold: 2, NetSalesAmt: 10, OnHandUnit: 9, CumulativeSellThrough: 0.4}},
	}
	s := Summarize(rows, DefaultConfig())
	if !approx(s.SellThrough, 0.7) || s.OnHand != 5 {
		t.Errorf("Expected Q2 week 1 as latest, got sell-through %v on-hand %v", s.SellThrough, s.OnHand)
	}
}

func TestSummarizeNoSales(t *testing.T) {
	rows := []join.Row{
		{SalesFact: snapshot.SalesFact{SKUID: "A", ChannelID: "C", WeekNum: 1, OnHandUnit: 40}},
		{SalesFact: snapshot.SalesFact{SKUID: "A", ChannelID: "C", WeekNum: 2, OnHandUnit: 40}},
	}
	s := Summarize(rows, DefaultConfig())
	if s.WOS != 99.9 {
		t.Errorf("Expected WOS sentinel 99.9, got %v", s.WOS)
	}
	if s.Margin != 0 || s.DiscountDepth != 0 || s.SellThrough != 0 {
		t.Errorf("Expected zero rates, got %+v", s)
	}

	empty := Summarize(nil, DefaultConfig())
	if empty.WOS != 99.9 || empty.FillRate != 0 {
		t.Errorf("Expected sentinel WOS and zero fill rate for no rows, got %+v", empty)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	rows := joinFixture(t)
	first := Summarize(rows, DefaultConfig())
	for i := 0; i < 20; i++ {
		if got := Summarize(rows, DefaultConfig()); got != first {
			t.Fatalf("Expected identical summaries, got %+v then %+v", first, got)
		}
	}
}

func TestReorderRate(t *testing.T) {
	stats := SKUStats(joinFixture(t), DefaultConfig())
	// S001 WOS 3.33 and S003 WOS 0.67 are under 4 weeks, S002 is 60.
	if got := ReorderRate(stats, DefaultConfig()); !approx(got, 2.0/3) {
		t.Errorf("Expected reorder rate 2/3, got %v", got)
	}
	if got := ReorderRate(nil, DefaultConfig()); got != 0 {
		t.Errorf("Expected 0 for no SKUs, got %v", got)
	}
}
