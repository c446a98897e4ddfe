//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reports

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pgEdge/pgedge-merchlens/internal/analytics"
	"github.com/pgEdge/pgedge-merchlens/internal/testutil"
)

func newEngine(t *testing.T) *analytics.Engine {
	t.Helper()
	e, err := analytics.New(testutil.Snapshot(t), analytics.DefaultOptions())
	if err != nil {
		t.Fatalf("analytics.New failed: %v", err)
	}
	return e
}

func query(compare string) analytics.Query {
	q := analytics.NewQuery()
	q.Filter.SeasonYear = "2025"
	q.Filter.Season = "Q1"
	q.Compare = compare
	return q
}

func TestList(t *testing.T) {
	want := []string{
		"category-color",
		"competitor-band",
		"competitor-category",
		"region-ops",
		"region-wave",
		"risk-list",
		"sell-ship",
		"wave-plan",
	}
	if got := List(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if len(All()) != len(want) {
		t.Errorf("Expected %d reports, got %d", len(want), len(All()))
	}
}

func TestGet(t *testing.T) {
	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			r, err := Get(name)
			if err != nil {
				t.Fatalf("Failed to get report '%s': %v", name, err)
			}
			if r.Name() != name {
				t.Errorf("Report name mismatch: expected '%s', got '%s'", name, r.Name())
			}
			if r.Description() == "" {
				t.Error("Report description should not be empty")
			}
		})
	}

	if _, err := Get("nonexistent"); !errors.Is(err, ErrUnknownReport) {
		t.Errorf("Expected ErrUnknownReport, got %v", err)
	}
}

func TestBuildShapes(t *testing.T) {
	e := newEngine(t)

	for _, r := range All() {
		for _, mode := range analytics.CompareModes {
			t.Run(r.Name()+"/"+mode, func(t *testing.T) {
				tbl, err := r.Build(e, query(mode))
				if err != nil {
					t.Fatalf("Build failed: %v", err)
				}
				if tbl.Title == "" || len(tbl.Columns) == 0 {
					t.Fatalf("Expected a titled table, got %+v", tbl)
				}
				for i, row := range tbl.Rows {
					if len(row) != len(tbl.Columns) {
						t.Errorf("Row %d: expected %d cells, got %d", i, len(tbl.Columns), len(row))
					}
				}
			})
		}
	}
}

func cell(t *testing.T, tbl *Table, row int, header string) string {
	t.Helper()
	for i, c := range tbl.Columns {
		if c == header {
			return tbl.Rows[row][i]
		}
	}
	t.Fatalf("No column %q in %v", header, tbl.Columns)
	return ""
}

func TestRegionOpsPlanColumns(t *testing.T) {
	r, _ := Get("region-ops")
	tbl, err := r.Build(newEngine(t), query(analytics.ComparePlan))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i, row := range tbl.Rows {
		if row[0] != "华东" {
			continue
		}
		if got := cell(t, tbl, i, "计划"); got != "4000.00" {
			t.Errorf("Expected explicit plan 4000.00, got %s", got)
		}
		if got := cell(t, tbl, i, "达成率"); got != "75.0%" {
			t.Errorf("Expected achievement 75.0%%, got %s", got)
		}
		return
	}
	t.Fatal("Expected a 华东 row")
}

func TestRegionOpsUndefinedDelta(t *testing.T) {
	r, _ := Get("region-ops")
	tbl, err := r.Build(newEngine(t), query(analytics.CompareYoY))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i, row := range tbl.Rows {
		got := cell(t, tbl, i, "净销售额变化")
		switch row[0] {
		case "华东":
			if got == "-" {
				t.Error("Expected a defined delta for 华东")
			}
		case "华南":
			if got != "-" {
				t.Errorf("Expected no baseline for 华南, got %s", got)
			}
		}
	}
}

func TestRiskListTable(t *testing.T) {
	r, _ := Get("risk-list")
	tbl, err := r.Build(newEngine(t), query(analytics.CompareNone))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("Expected 3 SKUs, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0][0] != "P0" || tbl.Rows[0][1] != "S002" {
		t.Errorf("Expected P0 S002 first, got %v", tbl.Rows[0][:2])
	}
	if got := cell(t, tbl, 0, "风险标签"); got != "低售罄、积压风险、高库存" {
		t.Errorf("Unexpected tags %s", got)
	}
}
