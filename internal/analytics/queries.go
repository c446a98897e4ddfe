//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package analytics

import (
	"github.com/pgEdge/pgedge-merchlens/internal/insight"
	"github.com/pgEdge/pgedge-merchlens/internal/join"
	"github.com/pgEdge/pgedge-merchlens/internal/metrics"
	"github.com/pgEdge/pgedge-merchlens/internal/risk"
	"github.com/pgEdge/pgedge-merchlens/internal/rollup"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
	"github.com/pgEdge/pgedge-merchlens/internal/taxonomy"
)

// Overview is the headline view of a query.
type Overview struct {
	Query          Query                `json:"query"`
	Period         *join.Period         `json:"period,omitempty"`
	BaselinePeriod *join.Period         `json:"baseline_period,omitempty"`
	Total          rollup.Group         `json:"total"`
	Dropped        int                  `json:"dropped_facts"`
	Banners        []insight.Banner     `json:"banners"`
	Risks          risk.Counts          `json:"risks"`
	Insights       []insight.Insight    `json:"insights"`
	Audit          taxonomy.AuditReport `json:"audit"`
}

// Overview computes the total KPIs, health banners and narrative lines.
func (e *Engine) Overview(q Query) (*Overview, error) {
	sel, err := e.selectRows(q)
	if err != nil {
		return nil, err
	}

	ov := &Overview{
		Query:          q,
		BaselinePeriod: sel.period,
		Total:          e.agg.Total(sel.current, sel.baseline),
		Dropped:        sel.dropped,
		Audit:          e.audit,
	}
	if p, ok := q.Filter.CurrentPeriod(); ok {
		ov.Period = &p
	}
	if q.Compare == ComparePlan {
		if plan, ok := e.overviewPlan(q.Filter, ov.Total); ok {
			ov.Total.Plan = &plan
		}
	}
	ov.Banners = insight.Banners(ov.Total, e.opts.Health)

	regions := e.agg.Aggregate(sel.current, []rollup.Dimension{rollup.Region}, nil)
	categories := e.agg.Aggregate(sel.current, []rollup.Dimension{rollup.CategoryL1}, nil)
	facts := e.competitorFacts(q.Filter)
	items := risk.List(metrics.SKUStats(sel.current, e.opts.Metrics), e.opts.Thresholds)
	ov.Risks = risk.Count(items)

	ov.Insights = append(ov.Insights, insight.Headline(ov.Total, q.Compare, e.opts.Health))
	if in, ok := insight.Plan(ov.Total, e.opts.Health); ok {
		ov.Insights = append(ov.Insights, in)
	}
	ov.Insights = append(ov.Insights, insight.Regions(regions), insight.Categories(categories))
	shares := rollup.BrandShares(facts, e.snap, ov.Total.Net)
	mix := rollup.CompetitorMix(facts, e.snap, e.labels, rollup.MixCategory, sel.current)
	if in, ok := insight.Competitors(shares, mix); ok {
		ov.Insights = append(ov.Insights, in)
	}
	if in, ok := insight.Waves(e.wavePlan(q.Filter, sel.current), e.opts.Health); ok {
		ov.Insights = append(ov.Insights, in)
	}
	ov.Insights = append(ov.Insights, insight.Risks(items))
	return ov, nil
}

// Rollup aggregates the query by keys. With compare mom or yoy every group
// carries a Delta; with compare plan every group carries a Plan.
func (e *Engine) Rollup(q Query, keys ...rollup.Dimension) ([]rollup.Group, error) {
	sel, err := e.selectRows(q)
	if err != nil {
		return nil, err
	}
	groups := e.agg.Aggregate(sel.current, keys, sel.baseline)
	if q.Compare == ComparePlan {
		total, explicit := e.salesPlan(q.Filter)
		if len(keys) != 1 || keys[0] != rollup.Region {
			explicit = nil
		}
		groups = rollup.AllocatePlan(groups, total, explicit)
	}
	return groups, nil
}

// RegionOps is the region rollup with fill and reorder rates.
func (e *Engine) RegionOps(q Query) ([]rollup.Group, error) {
	return e.Rollup(q, rollup.Region)
}

// RegionWave is the region by wave rollup.
func (e *Engine) RegionWave(q Query) ([]rollup.Group, error) {
	return e.Rollup(q, rollup.Region, rollup.Wave)
}

// CategoryColor is the category by color rollup.
func (e *Engine) CategoryColor(q Query) ([]rollup.Group, error) {
	return e.Rollup(q, rollup.CategoryL1, rollup.Color)
}

// CompetitorMix compares competitor brand mix with ours by category or
// price band, for the filter's period.
func (e *Engine) CompetitorMix(q Query, by rollup.MixBy) ([]rollup.MixRow, error) {
	sel, err := e.selectRows(q)
	if err != nil {
		return nil, err
	}
	return rollup.CompetitorMix(e.competitorFacts(q.Filter), e.snap, e.labels, by, sel.current), nil
}

// BrandShares returns market shares of competitors and our own brand.
func (e *Engine) BrandShares(q Query) ([]rollup.BrandShare, error) {
	sel, err := e.selectRows(q)
	if err != nil {
		return nil, err
	}
	total := e.agg.Total(sel.current, nil)
	return rollup.BrandShares(e.competitorFacts(q.Filter), e.snap, total.Net), nil
}

// HotSKUs returns the top n best sellers of each competitor.
func (e *Engine) HotSKUs(n int) []rollup.HotSKU {
	return rollup.HotSKUs(e.snap.HotSKUs(), e.snap, e.cats, n)
}

// WavePlan compares wave plans of the filter's period with actuals.
func (e *Engine) WavePlan(q Query) ([]rollup.WaveRow, error) {
	sel, err := e.selectRows(q)
	if err != nil {
		return nil, err
	}
	return e.wavePlan(q.Filter, sel.current), nil
}

// SellShip rolls inventory up by SKU-level keys.
func (e *Engine) SellShip(q Query, keys ...rollup.Dimension) ([]rollup.StockRow, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return rollup.SellShip(e.index.Inventory(q.Filter), keys)
}

// RiskList classifies every SKU of the query, most urgent first.
func (e *Engine) RiskList(q Query) ([]risk.Item, error) {
	sel, err := e.selectRows(q)
	if err != nil {
		return nil, err
	}
	return risk.List(metrics.SKUStats(sel.current, e.opts.Metrics), e.opts.Thresholds), nil
}

// SKUStats summarizes every SKU of the query.
func (e *Engine) SKUStats(q Query) ([]metrics.SKUStat, error) {
	sel, err := e.selectRows(q)
	if err != nil {
		return nil, err
	}
	return metrics.SKUStats(sel.current, e.opts.Metrics), nil
}

func (e *Engine) competitorFacts(f join.Filter) []snapshot.CompetitorFact {
	var out []snapshot.CompetitorFact
	for _, c := range e.snap.CompetitorFacts() {
		if matchesPeriod(f, c.SeasonYear, c.Season) {
			out = append(out, c)
		}
	}
	return out
}

func (e *Engine) wavePlan(f join.Filter, rows []join.Row) []rollup.WaveRow {
	var plans []snapshot.WavePlan
	for _, p := range e.snap.WavePlans() {
		if matchesPeriod(f, p.SeasonYear, p.Season) && (f.Wave == join.All || f.Wave == p.Wave) {
			plans = append(plans, p)
		}
	}
	var mix []snapshot.WavePlanMix
	for _, m := range e.snap.WavePlanMix() {
		if matchesPeriod(f, m.SeasonYear, m.Season) && (f.Wave == join.All || f.Wave == m.Wave) {
			mix = append(mix, m)
		}
	}
	return rollup.WavePlanReport(plans, mix, rows)
}

// salesPlan sums the season totals and per-region plans of the filter's
// period. Without a total row the explicit regions are summed instead.
func (e *Engine) salesPlan(f join.Filter) (float64, map[string]float64) {
	var total, regional float64
	haveTotal := false
	explicit := make(map[string]float64)
	for _, p := range e.snap.SalesPlans() {
		if !matchesPeriod(f, p.SeasonYear, p.Season) {
			continue
		}
		if p.IsTotal() {
			total += p.PlannedSalesAmt
			haveTotal = true
			continue
		}
		explicit[p.Region] += p.PlannedSalesAmt
		regional += p.PlannedSalesAmt
	}
	if !haveTotal {
		total = regional
	}
	return total, explicit
}

// overviewPlan is the target of the whole query. When one region is
// selected its explicit plan applies, or else its allocated share across
// all regions.
func (e *Engine) overviewPlan(f join.Filter, total rollup.Group) (rollup.Plan, bool) {
	planTotal, explicit := e.salesPlan(f)
	if planTotal <= 0 {
		return rollup.Plan{}, false
	}
	if f.Region == join.All {
		return *rollup.AllocatePlan([]rollup.Group{total}, planTotal, nil)[0].Plan, true
	}

	all := f
	all.Region = join.All
	regions := e.agg.Aggregate(e.index.Current(all).Rows, []rollup.Dimension{rollup.Region}, nil)
	regions = rollup.AllocatePlan(regions, planTotal, explicit)
	g, ok := rollup.Find(regions, f.Region)
	if !ok {
		if v, ok := explicit[f.Region]; ok {
			return rollup.Plan{Target: v, Explicit: true, Gap: -v}, true
		}
		return rollup.Plan{}, false
	}
	return *g.Plan, true
}
