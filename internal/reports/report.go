//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package reports defines the named report tables and their registry.
package reports

import (
	"github.com/pgEdge/pgedge-merchlens/internal/analytics"
)

// Table is a rendered report: a title, column headers and string cells.
// Every row has len(Columns) cells.
type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Report defines the interface that all named reports must implement.
type Report interface {
	// Name returns the report name used on the command line.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Build runs the report's query against the engine.
	Build(e *analytics.Engine, q analytics.Query) (*Table, error)
}

// report is a Report backed by a build function.
type report struct {
	name        string
	description string
	build       func(e *analytics.Engine, q analytics.Query) (*Table, error)
}

func (r *report) Name() string        { return r.name }
func (r *report) Description() string { return r.description }

func (r *report) Build(e *analytics.Engine, q analytics.Query) (*Table, error) {
	return r.build(e, q)
}
