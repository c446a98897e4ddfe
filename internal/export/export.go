//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package export writes report tables as CSV or XLSX files.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pgEdge/pgedge-merchlens/pkg/version"
)

// Supported formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// TimeLayout is the layout of the export timestamp.
const TimeLayout = "2006-01-02 15:04:05"

// Meta is written ahead of the table so an exported file can be traced back
// to the query that produced it.
type Meta struct {
	ExportedAt time.Time
	ExportID   string
	Filter     string
	Compare    string
	Generator  string
}

// NewMeta stamps an export with the current time and a fresh id.
func NewMeta(filter, compare string) Meta {
	return Meta{
		ExportedAt: time.Now(),
		ExportID:   uuid.NewString(),
		Filter:     filter,
		Compare:    compare,
		Generator:  version.Generator(),
	}
}

// rows returns the metadata as label and value pairs.
func (m Meta) rows() [][]string {
	return [][]string{
		{"导出时间", m.ExportedAt.Format(TimeLayout)},
		{"导出编号", m.ExportID},
		{"筛选条件", m.Filter},
		{"对比方式", m.Compare},
		{"生成工具", m.Generator},
	}
}

// ValidateFormat returns an error for unsupported formats.
func ValidateFormat(f string) error {
	switch strings.ToLower(f) {
	case FormatCSV, FormatXLSX:
		return nil
	}
	return fmt.Errorf("invalid export format: %s (must be %s or %s)", f, FormatCSV, FormatXLSX)
}
