//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Run with: go test -tags=integration ./internal/db/...
// Set MERCHLENS_TEST_CONN to override the connection string.

package db

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-merchlens/internal/datagen"
	"github.com/pgEdge/pgedge-merchlens/internal/testutil"
)

func TestSeedAndLoad(t *testing.T) {
	pool := testutil.TempDatabase(t, "seed")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tables := datagen.Generate(datagen.Options{Seed: 3, SKUs: 15, Channels: 4, Weeks: 3, Years: []int{2025}})
	if err := SeedSnapshot(ctx, pool, tables, "datagen"); err != nil {
		t.Fatalf("SeedSnapshot failed: %v", err)
	}

	snap, err := LoadSnapshot(ctx, pool)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if !reflect.DeepEqual(snap.Sales(), tables.Sales) {
		t.Error("Expected sales to round trip in order")
	}
	if !reflect.DeepEqual(snap.SKUs(), tables.SKUs) {
		t.Error("Expected SKUs to round trip in order")
	}

	meta, err := GetAllMetadata(ctx, pool)
	if err != nil {
		t.Fatalf("GetAllMetadata failed: %v", err)
	}
	if meta[MetaSource] != "datagen" || meta["rows_sales"] == "" {
		t.Errorf("Unexpected metadata %v", meta)
	}

	// Seeding again replaces the snapshot instead of appending.
	if err := SeedSnapshot(ctx, pool, testutil.Tables(), "fixture"); err != nil {
		t.Fatalf("Second SeedSnapshot failed: %v", err)
	}
	snap, err = LoadSnapshot(ctx, pool)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(snap.Sales()) != len(testutil.Tables().Sales) {
		t.Errorf("Expected %d sales after reseed, got %d", len(testutil.Tables().Sales), len(snap.Sales()))
	}

	if err := DropSchema(ctx, pool); err != nil {
		t.Fatalf("DropSchema failed: %v", err)
	}
	if exists, err := MetadataExists(ctx, pool); err != nil || exists {
		t.Errorf("Expected metadata table to be dropped, got exists=%v err=%v", exists, err)
	}
}
