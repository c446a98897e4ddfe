//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pgEdge/pgedge-merchlens/internal/reports"
)

func sample() (*reports.Table, Meta) {
	t := &reports.Table{
		Title:   "区域运营",
		Columns: []string{"区域", "净销售额"},
		Rows: [][]string{
			{"华东", "3000.00"},
			{`含"引号", 逗号`, "0.00"},
		},
	}
	m := Meta{
		ExportedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		ExportID:   "0b7c",
		Filter:     "region=华东",
		Compare:    "plan",
		Generator:  "merchlens/test",
	}
	return t, m
}

func TestWriteCSV(t *testing.T) {
	tbl, m := sample()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, tbl, m); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, BOM) {
		t.Fatal("Expected output to start with a UTF-8 BOM")
	}
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, BOM), "\r\n"), "\r\n")
	want := []string{
		`"导出时间","2025-03-01 09:30:00"`,
		`"导出编号","0b7c"`,
		`"筛选条件","region=华东"`,
		`"对比方式","plan"`,
		`"生成工具","merchlens/test"`,
		`"区域","净销售额"`,
		`"华东","3000.00"`,
		`"含""引号"", 逗号","0.00"`,
	}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Line %d: expected %s, got %s", i, want[i], lines[i])
		}
	}
}

func TestWriteXLSX(t *testing.T) {
	tbl, m := sample()
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteXLSX(path, tbl, m); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(DataSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "区域" || rows[1][1] != "3000.00" {
		t.Errorf("Unexpected data rows %v", rows)
	}

	meta, err := f.GetRows(MetaSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(meta) != 6 || meta[0][1] != "区域运营" || meta[2][1] != "0b7c" {
		t.Errorf("Unexpected metadata rows %v", meta)
	}
}

func TestNewMeta(t *testing.T) {
	a := NewMeta("all", "none")
	b := NewMeta("all", "none")
	if a.ExportID == "" || a.ExportID == b.ExportID {
		t.Errorf("Expected unique export ids, got %q and %q", a.ExportID, b.ExportID)
	}
	if !strings.HasPrefix(a.Generator, "merchlens/") {
		t.Errorf("Expected generator stamp, got %q", a.Generator)
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"csv", false},
		{"XLSX", false},
		{"pdf", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%s): expected error=%v, got %v", tt.format, tt.wantErr, err)
		}
	}
}
