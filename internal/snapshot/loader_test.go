//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

const (
	testSKUs     = `[{"sku_id":"S001","sku_name":"Runner","category_id":"跑步","msrp":499,"extra_field":"ignored"}]`
	testChannels = `[{"channel_id":"C01","channel_type":"直营","region":"华东","is_online":false}]`
	testSales    = `[{"record_id":"R1","sku_id":"S001","channel_id":"C01","season_year":2025,"season":"Q1","week_num":1,"net_sales_amt":1000}]`
)

func baseFS() fstest.MapFS {
	return fstest.MapFS{
		"skus.json":     {Data: []byte(testSKUs)},
		"channels.json": {Data: []byte(testChannels)},
		"sales.json":    {Data: []byte(testSales)},
	}
}

func TestLoadFS(t *testing.T) {
	snap, err := LoadFS(baseFS())
	if err != nil {
		t.Fatalf("LoadFS failed: %v", err)
	}

	if len(snap.SKUs()) != 1 {
		t.Errorf("Expected 1 SKU, got %d", len(snap.SKUs()))
	}
	sku, ok := snap.SKU("S001")
	if !ok {
		t.Fatal("Expected SKU S001 to resolve")
	}
	if sku.MSRP != 499 {
		t.Errorf("Expected MSRP 499, got %v", sku.MSRP)
	}
	if _, ok := snap.Channel("C01"); !ok {
		t.Error("Expected channel C01 to resolve")
	}
	if _, ok := snap.Channel("C99"); ok {
		t.Error("Expected channel C99 not to resolve")
	}
	if snap.Sales()[0].NetSalesAmt != 1000 {
		t.Errorf("Expected net sales 1000, got %v", snap.Sales()[0].NetSalesAmt)
	}

	// Optional tables default to empty.
	if len(snap.Inventory()) != 0 || len(snap.WavePlans()) != 0 {
		t.Error("Expected optional tables to be empty")
	}
}

func TestLoadFSErrors(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		remove    bool
		wantField string
		wantArray bool
	}{
		{name: "sales not an array", file: "sales.json", content: `{"record_id":"R1"}`, wantArray: true},
		{name: "empty file", file: "skus.json", content: ``, wantArray: true},
		{name: "missing required field", file: "sales.json",
			content:   `[{"record_id":"R1","sku_id":"S001","season_year":2025,"season":"Q1","week_num":1}]`,
			wantField: "channel_id"},
		{name: "empty required string", file: "skus.json", content: `[{"sku_id":""}]`, wantField: "sku_id"},
		{name: "null required field", file: "channels.json", content: `[{"channel_id":"C01","channel_type":null}]`,
			wantField: "channel_type"},
		{name: "duplicate sku", file: "skus.json", content: `[{"sku_id":"S1"},{"sku_id":"S1"}]`, wantField: "sku_id"},
		{name: "wrong type", file: "sales.json",
			content: `[{"record_id":"R1","sku_id":"S001","channel_id":"C01","season_year":"2025","season":"Q1","week_num":1}]`,
			wantField: "*"},
		{name: "required table missing", file: "channels.json", remove: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := baseFS()
			if tt.remove {
				delete(fsys, tt.file)
			} else {
				fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.content)}
			}

			_, err := LoadFS(fsys)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tt.wantArray && !errors.Is(err, ErrNotArray) {
				t.Errorf("Expected ErrNotArray, got %v", err)
			}
			if tt.wantField != "" {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("Expected ValidationError, got %T: %v", err, err)
				}
				if verr.Field != tt.wantField {
					t.Errorf("Expected field %q, got %q", tt.wantField, verr.Field)
				}
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	for name, f := range baseFS() {
		if err := os.WriteFile(filepath.Join(dir, name), f.Data, 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	snap, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if got := snap.Counts()[TableSales]; got != 1 {
		t.Errorf("Expected 1 sales row, got %d", got)
	}

	if _, err := LoadDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestMonotonicViolations(t *testing.T) {
	snap, err := New(Tables{
		Sales: []SalesFact{
			{RecordID: "1", SKUID: "S1", ChannelID: "C1", SeasonYear: 2025, Season: "Q1", WeekNum: 2, CumulativeSellThrough: 0.3},
			{RecordID: "2", SKUID: "S1", ChannelID: "C1", SeasonYear: 2025, Season: "Q1", WeekNum: 1, CumulativeSellThrough: 0.2},
			{RecordID: "3", SKUID: "S1", ChannelID: "C1", SeasonYear: 2025, Season: "Q1", WeekNum: 3, CumulativeSellThrough: 0.25},
			{RecordID: "4", SKUID: "S2", ChannelID: "C1", SeasonYear: 2025, Season: "Q1", WeekNum: 1, CumulativeSellThrough: 0.5},
		},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	v := snap.MonotonicViolations()
	if len(v) != 1 {
		t.Fatalf("Expected 1 violation, got %d", len(v))
	}
	if v[0].WeekNum != 3 || v[0].Previous != 0.3 || v[0].Current != 0.25 {
		t.Errorf("Unexpected violation: %+v", v[0])
	}

	// The input order is untouched.
	if snap.Sales()[0].RecordID != "1" {
		t.Errorf("Expected input order preserved, got %s first", snap.Sales()[0].RecordID)
	}
}

func TestSalesPlanIsTotal(t *testing.T) {
	tests := []struct {
		region string
		want   bool
	}{
		{"", true},
		{"all", true},
		{"华东", false},
	}
	for _, tt := range tests {
		if got := (SalesPlan{Region: tt.region}).IsTotal(); got != tt.want {
			t.Errorf("IsTotal(%q): expected %v, got %v", tt.region, tt.want, got)
		}
	}
}
