//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides shared snapshot fixtures and PostgreSQL
// helpers for tests.
package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// ConnEnv overrides DefaultConn.
	ConnEnv = "MERCHLENS_TEST_CONN"

	// DefaultConn is the server integration tests use.
	DefaultConn = "postgres://postgres@localhost:5432/postgres"

	// DBPrefix prefixes every temporary test database.
	DBPrefix = "merchlens_test_"
)

// PostgresConn returns the connection string of the test server, or ""
// when it cannot be reached.
func PostgresConn() string {
	conn := os.Getenv(ConnEnv)
	if conn == "" {
		conn = DefaultConn
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, conn)
	if err != nil {
		return ""
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return ""
	}
	return conn
}

// SkipIfNoPostgres skips t when the test server cannot be reached.
func SkipIfNoPostgres(t *testing.T) string {
	t.Helper()
	conn := PostgresConn()
	if conn == "" {
		t.Skip("PostgreSQL not available, skipping integration test")
	}
	return conn
}

// TempDatabase creates an empty database for t and returns a pool on it.
// The pool is closed when t finishes. The database is dropped too, unless
// t failed, in which case it is kept for inspection.
func TempDatabase(t *testing.T, label string) *pgxpool.Pool {
	t.Helper()
	base := SkipIfNoPostgres(t)

	name := DBPrefix + label + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	ident := pgx.Identifier{name}.Sanitize()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, base)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer admin.Close()
	if _, err := admin.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	cfg, err := pgxpool.ParseConfig(base)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}
	cfg.ConnConfig.Database = name
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if t.Failed() {
			t.Logf("Test failed - keeping database %s for diagnostics", name)
			return
		}
		dropDatabase(t, base, ident)
	})
	return pool
}

func dropDatabase(t *testing.T, base, ident string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, base)
	if err != nil {
		t.Logf("Warning: Failed to connect to drop test database: %v", err)
		return
	}
	defer admin.Close()
	if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+ident+" WITH (FORCE)"); err != nil {
		t.Logf("Warning: Failed to drop test database: %v", err)
	}
}
