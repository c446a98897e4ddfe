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
	"errors"
	"testing"

	"github.com/pgEdge/pgedge-merchlens/internal/datagen"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
	"github.com/pgEdge/pgedge-merchlens/internal/taxonomy"
	"github.com/pgEdge/pgedge-merchlens/internal/testutil"
)

func newIndex(t *testing.T, snap *snapshot.Snapshot) *Index {
	t.Helper()
	return NewIndex(snap,
		taxonomy.NewResolver(taxonomy.DefaultTaxonomy()),
		taxonomy.NewBandResolver(taxonomy.DefaultPriceBands()))
}

func TestJoinFilters(t *testing.T) {
	x := newIndex(t, testutil.Snapshot(t))

	tests := []struct {
		name string
		key  string
		val  string
		want []string
	}{
		{"all", "", "", []string{"R1", "R2", "R4", "R5", "R6", "R7"}},
		{"season year", "season_year", "2024", []string{"R6", "R7"}},
		{"resolved category", "category_id", "休闲/街头", []string{"R5"}},
		{"raw category matches nothing", "category_id", "unknown-xyz", nil},
		{"resolved sub category", "sub_category", "实战篮球鞋", []string{"R4", "R7"}},
		{"resolved band", "price_band", "PB3", []string{"R1", "R2", "R6"}},
		{"legacy band label", "price_band", "199-399", nil},
		{"region", "region", "华南", []string{"R4", "R5", "R7"}},
		{"channel type", "channel_type", "直营", []string{"R4", "R5", "R7"}},
		{"lifecycle", "lifecycle", "新品", []string{"R4", "R7"}},
		{"wave", "wave", "W2", []string{"R5"}},
		{"online", "scope", "online", []string{"R1", "R2", "R6"}},
		{"offline", "scope", "offline", []string{"R4", "R5", "R7"}},
		{"unknown scope", "scope", "hybrid", nil},
		{"platform", "platform", "天猫", []string{"R1", "R2", "R6"}},
		{"unknown region", "region", "火星", nil},
		{"empty string is a value", "color", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := AllFilter()
			if tt.key != "" {
				if err := f.Set(tt.key, tt.val); err != nil {
					t.Fatalf("Set failed: %v", err)
				}
			}
			res := x.Current(f)
			if res.Dropped != 1 {
				t.Errorf("Expected 1 dropped fact, got %d", res.Dropped)
			}
			if len(res.Rows) != len(tt.want) {
				t.Fatalf("Expected %d rows, got %d", len(tt.want), len(res.Rows))
			}
			for i, id := range tt.want {
				if res.Rows[i].RecordID != id {
					t.Errorf("Expected row %d to be %s, got %s", i, id, res.Rows[i].RecordID)
				}
			}
		})
	}
}

func TestJoinResolvesDimensions(t *testing.T) {
	x := newIndex(t, testutil.Snapshot(t))
	res := x.Current(AllFilter())

	var r5 *Row
	for i := range res.Rows {
		if res.Rows[i].RecordID == "R5" {
			r5 = &res.Rows[i]
		}
	}
	if r5 == nil {
		t.Fatal("Expected R5 in join output")
	}
	if r5.Category.L1 != taxonomy.DefaultL1 || r5.Category.Matched {
		t.Errorf("Expected default category fallback, got %+v", r5.Category)
	}
	if r5.Band.Code != "PB1" {
		t.Errorf("Expected PB1 from legacy label, got %s", r5.Band.Code)
	}
	if r5.Channel.Region != "华南" {
		t.Errorf("Expected channel region 华南, got %s", r5.Channel.Region)
	}
}

func TestBaseline(t *testing.T) {
	x := newIndex(t, testutil.Snapshot(t))

	f := AllFilter()
	f.SeasonYear = "2025"
	f.Season = "Q1"
	f.Region = "华东"

	cur := x.Current(f)
	if len(cur.Rows) != 2 {
		t.Fatalf("Expected 2 current rows, got %d", len(cur.Rows))
	}

	prior, ok := PriorPeriod(f.SeasonYear, f.Season, ModeYoY)
	if !ok {
		t.Fatal("Expected a yoy period")
	}
	base := x.Baseline(f, prior)
	if len(base.Rows) != 1 || base.Rows[0].RecordID != "R6" {
		t.Errorf("Expected baseline [R6], got %v", base.Rows)
	}
	if f.SeasonYear != "2025" {
		t.Error("Baseline must not modify the caller's filter")
	}
}

func TestJoinCompleteness(t *testing.T) {
	for _, seed := range []uint64{1, 7, 42} {
		tables := datagen.Generate(datagen.Options{
			Seed:       seed,
			SKUs:       25,
			Channels:   6,
			Weeks:      5,
			OrphanRate: 0.1,
		})
		snap := testutil.SnapshotFrom(t, tables)
		x := newIndex(t, snap)

		res := x.Join(snap.Sales(), nil)
		if len(res.Rows) > len(snap.Sales()) {
			t.Fatalf("seed %d: joined %d rows from %d facts", seed, len(res.Rows), len(snap.Sales()))
		}

		want := 0
		for _, f := range snap.Sales() {
			_, skuOK := snap.SKU(f.SKUID)
			_, chOK := snap.Channel(f.ChannelID)
			if skuOK && chOK {
				want++
			}
		}
		if len(res.Rows) != want {
			t.Errorf("seed %d: expected %d joined rows, got %d", seed, want, len(res.Rows))
		}
		if res.Dropped != len(snap.Sales())-want {
			t.Errorf("seed %d: expected %d dropped, got %d", seed, len(snap.Sales())-want, res.Dropped)
		}
	}
}

func TestInventoryJoin(t *testing.T) {
	x := newIndex(t, testutil.Snapshot(t))

	rows := x.Inventory(AllFilter())
	if len(rows) != 2 {
		t.Fatalf("Expected 2 inventory rows (unknown SKU dropped), got %d", len(rows))
	}

	f := AllFilter()
	f.CategoryID = "篮球"
	f.Region = "华东"
	rows = x.Inventory(f)
	if len(rows) != 1 || rows[0].SKUID != "S002" {
		t.Errorf("Expected only S002 with channel clauses ignored, got %v", rows)
	}
}

func TestParseFilter(t *testing.T) {
	full := AllFilter().Map()
	delete(full, "scope")
	delete(full, "platform")

	f, err := ParseFilter(full)
	if err != nil {
		t.Fatalf("ParseFilter failed: %v", err)
	}
	if f != AllFilter() {
		t.Errorf("Expected all filter, got %+v", f)
	}

	partial := map[string]string{"season_year": "2025"}
	if _, err := ParseFilter(partial); !errors.Is(err, ErrMissingFilterKey) {
		t.Errorf("Expected ErrMissingFilterKey, got %v", err)
	}

	full["planet"] = "mars"
	if _, err := ParseFilter(full); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestFilterSummary(t *testing.T) {
	f := AllFilter()
	if got := f.Summary(); got != "all" {
		t.Errorf("Expected all, got %q", got)
	}
	f.Region = "华东"
	f.SeasonYear = "2025"
	if got := f.Summary(); got != "region=华东; season_year=2025" {
		t.Errorf("Unexpected summary %q", got)
	}
}

func TestPredicateOrder(t *testing.T) {
	f := AllFilter()
	f.Color = "黑"
	f.SeasonYear = "2025"
	f.Region = "华东"
	names := f.Predicate().Names()
	want := []string{"season_year", "region", "color"}
	if len(names) != len(want) {
		t.Fatalf("Expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected clause %d to be %s, got %s", i, want[i], names[i])
		}
	}
	if got := f.Predicate().SKULevel().Names(); len(got) != 2 {
		t.Errorf("Expected 2 SKU-level clauses, got %v", got)
	}
}
