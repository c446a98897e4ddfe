//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
)

func TestWriteJSONRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snap")
	tables := Generate(small(11))

	if err := WriteJSON(dir, tables); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	snap, err := snapshot.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	want, err := snapshot.New(tables)
	if err != nil {
		t.Fatalf("snapshot.New failed: %v", err)
	}
	for name, n := range want.Counts() {
		if got := snap.Counts()[name]; got != n {
			t.Errorf("Table %s: expected %d rows, got %d", name, n, got)
		}
	}
}

func TestWriteJSONEmptyTables(t *testing.T) {
	dir := t.TempDir()
	if err := WriteJSON(dir, snapshot.Tables{}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, snapshot.TableHotSKUs+".json"))
	if err != nil {
		t.Fatalf("Failed to read table: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected empty array, got %s", data)
	}
}
