//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package analytics is the query facade over a loaded snapshot. An Engine
// is built once per snapshot; every query is a pure function of the
// snapshot and its arguments and may run concurrently with others.
package analytics

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pgEdge/pgedge-merchlens/internal/insight"
	"github.com/pgEdge/pgedge-merchlens/internal/join"
	"github.com/pgEdge/pgedge-merchlens/internal/logging"
	"github.com/pgEdge/pgedge-merchlens/internal/metrics"
	"github.com/pgEdge/pgedge-merchlens/internal/risk"
	"github.com/pgEdge/pgedge-merchlens/internal/rollup"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
	"github.com/pgEdge/pgedge-merchlens/internal/taxonomy"
)

// Compare modes.
const (
	CompareNone = "none"
	ComparePlan = "plan"
	CompareMoM  = join.ModeMoM
	CompareYoY  = join.ModeYoY
)

// CompareModes lists every valid compare mode.
var CompareModes = []string{CompareNone, ComparePlan, CompareMoM, CompareYoY}

// ErrUnknownCompareMode is returned for a compare mode outside
// CompareModes.
var ErrUnknownCompareMode = errors.New("unknown compare mode")

// ValidateCompare checks a compare mode.
func ValidateCompare(mode string) error {
	for _, m := range CompareModes {
		if m == mode {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCompareMode, mode)
}

// Options configure an Engine.
type Options struct {
	Taxonomy   taxonomy.Taxonomy
	PriceBands []taxonomy.Band
	Metrics    metrics.Config
	Thresholds risk.Thresholds
	Health     risk.Health
}

// DefaultOptions returns the built-in configuration.
func DefaultOptions() Options {
	return Options{
		Taxonomy:   taxonomy.DefaultTaxonomy(),
		PriceBands: taxonomy.DefaultPriceBands(),
		Metrics:    metrics.DefaultConfig(),
		Thresholds: risk.DefaultThresholds(),
		Health:     risk.DefaultHealth(),
	}
}

// Engine answers queries over one snapshot.
type Engine struct {
	snap   *snapshot.Snapshot
	opts   Options
	cats   *taxonomy.Resolver
	bands  *taxonomy.BandResolver
	index  *join.Index
	agg    *rollup.Aggregator
	audit  taxonomy.AuditReport
	labels rollup.Labels
}

// New builds the lookup structures of an engine.
func New(snap *snapshot.Snapshot, opts Options) (*Engine, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is required")
	}
	if err := taxonomy.ValidateBands(opts.PriceBands); err != nil {
		return nil, fmt.Errorf("invalid price bands: %w", err)
	}
	if err := opts.Health.Validate(); err != nil {
		return nil, fmt.Errorf("invalid health bands: %w", err)
	}

	cats := taxonomy.NewResolver(opts.Taxonomy)
	bands := taxonomy.NewBandResolver(opts.PriceBands)
	e := &Engine{
		snap:   snap,
		opts:   opts,
		cats:   cats,
		bands:  bands,
		index:  join.NewIndex(snap, cats, bands),
		agg:    rollup.New(opts.Metrics),
		audit:  taxonomy.Audit(snap.SKUs(), cats, bands),
		labels: rollup.Labels{Categories: cats, Bands: bands},
	}

	logging.Debug().
		Int("skus", e.audit.Total).
		Int("l1_fallbacks", e.audit.L1Fallbacks).
		Int("l2_fallbacks", e.audit.L2Fallbacks).
		Int("band_unknown", e.audit.BandUnknown).
		Msg("Resolved SKU taxonomy")
	return e, nil
}

// Snapshot returns the engine's snapshot.
func (e *Engine) Snapshot() *snapshot.Snapshot {
	return e.snap
}

// Options returns the engine's configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// Audit returns the taxonomy fallback report of the snapshot.
func (e *Engine) Audit() taxonomy.AuditReport {
	return e.audit
}

// Resolver returns the category resolver.
func (e *Engine) Resolver() *taxonomy.Resolver {
	return e.cats
}

// Bands returns the price band resolver.
func (e *Engine) Bands() *taxonomy.BandResolver {
	return e.bands
}

// Query selects the rows and baseline of a request.
type Query struct {
	Filter  join.Filter `json:"filter"`
	Compare string      `json:"compare"`
}

// NewQuery returns an unfiltered query without comparison.
func NewQuery() Query {
	return Query{Filter: join.AllFilter(), Compare: CompareNone}
}

// Validate checks the compare mode.
func (q Query) Validate() error {
	return ValidateCompare(q.Compare)
}

// selection is the joined input of a query.
type selection struct {
	current []join.Row
	dropped int

	// baseline is nil when no period comparison applies, and non-nil but
	// possibly empty when a prior period was requested.
	baseline []join.Row
	period   *join.Period
}

func (e *Engine) selectRows(q Query) (selection, error) {
	if err := q.Validate(); err != nil {
		return selection{}, err
	}
	cur := e.index.Current(q.Filter)
	sel := selection{current: cur.Rows, dropped: cur.Dropped}

	if q.Compare == CompareMoM || q.Compare == CompareYoY {
		sel.baseline = []join.Row{}
		if p, ok := join.PriorPeriod(q.Filter.SeasonYear, q.Filter.Season, q.Compare); ok {
			sel.baseline = e.index.Baseline(q.Filter, p).Rows
			sel.period = &p
		}
	}
	return sel, nil
}

// matchesPeriod reports whether a plan or competitor row belongs to the
// filter's season_year and season.
func matchesPeriod(f join.Filter, year int, season string) bool {
	if f.SeasonYear != join.All && f.SeasonYear != strconv.Itoa(year) {
		return false
	}
	return f.Season == join.All || f.Season == season
}

// Insights returns every narrative line for the query, in a fixed order.
func (e *Engine) Insights(q Query) ([]insight.Insight, error) {
	ov, err := e.Overview(q)
	if err != nil {
		return nil, err
	}
	return ov.Insights, nil
}
