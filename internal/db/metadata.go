//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pgEdge/pgedge-merchlens/internal/logging"
	"github.com/pgEdge/pgedge-merchlens/pkg/version"
)

const metadataTable = TablePrefix + "metadata"

// createMetadataTableSQL creates the metadata table if it doesn't exist.
const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS ` + metadataTable + ` (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// Metadata keys written by SaveMetadata. Row counts use "rows_<table>".
const (
	MetaVersion  = "version"
	MetaLoadedAt = "loaded_at"
	MetaSource   = "source"
)

// SaveMetadata records where a seeded snapshot came from and its row counts.
func SaveMetadata(ctx context.Context, db DB, source string, counts map[string]int) error {
	_, err := db.Exec(ctx, createMetadataTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	metadata := map[string]string{
		MetaVersion:  version.Short(),
		MetaLoadedAt: time.Now().UTC().Format(time.RFC3339),
		MetaSource:   source,
	}
	for table, n := range counts {
		metadata["rows_"+table] = fmt.Sprint(n)
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		_, err := db.Exec(ctx, `
            INSERT INTO `+metadataTable+` (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, metadata[key])
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().
		Str("source", source).
		Int("keys", len(keys)).
		Msg("Saved metadata")

	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, db DB, key string) (string, error) {
	var value string
	err := db.QueryRow(ctx, `
        SELECT value FROM `+metadataTable+` WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetAllMetadata retrieves all metadata as a map.
func GetAllMetadata(ctx context.Context, db DB) (map[string]string, error) {
	rows, err := db.Query(ctx, `SELECT key, value FROM `+metadataTable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// DropMetadata drops the metadata table.
func DropMetadata(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}

// MetadataExists checks if the metadata table exists.
func MetadataExists(ctx context.Context, db DB) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_name = $1
        )
    `, metadataTable).Scan(&exists)
	return exists, err
}
