//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package rollup

import (
	"github.com/pgEdge/pgedge-merchlens/internal/join"
	"github.com/pgEdge/pgedge-merchlens/internal/metrics"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
)

// MixGap compares the planned and actual category share within a wave.
type MixGap struct {
	CategoryL1 string  `json:"category_l1"`
	Planned    float64 `json:"planned_share"`
	Actual     float64 `json:"actual_share"`
	GapPP      float64 `json:"gap_pp"`
}

// WaveRow is plan versus actual for one launch wave of one season. Actuals
// come from that season's sales of SKUs whose launch_wave is the wave.
type WaveRow struct {
	SeasonYear int    `json:"season_year"`
	Season     string `json:"season"`
	Wave       string `json:"wave"`
	HasPlan    bool   `json:"has_plan"`

	PlannedSKUs int `json:"planned_skus"`
	ActualSKUs  int `json:"actual_skus"`
	SKUGap      int `json:"sku_gap"`

	PlannedNewRatio float64 `json:"planned_new_ratio"`
	ActualNewRatio  float64 `json:"actual_new_ratio"`
	NewRatioGapPP   float64 `json:"new_ratio_gap_pp"`

	PlannedSales float64 `json:"planned_sales"`
	ActualSales  float64 `json:"actual_sales"`
	Achievement  float64 `json:"achievement"`

	Mix []MixGap `json:"mix"`
}

// Label names the row, e.g. "2025Q1 W1". Rows without a season year are
// named by wave alone.
func (w WaveRow) Label() string {
	if w.SeasonYear == 0 && w.Season == "" {
		return w.Wave
	}
	return join.Period{Year: w.SeasonYear, Season: w.Season}.String() + " " + w.Wave
}

// waveKey identifies a wave within its season.
type waveKey struct {
	year   int
	season string
	wave   string
}

type waveActual struct {
	net        float64
	skus       map[string]bool
	newSKUs    int
	categories []string
	byCategory map[string]float64
}

// WavePlanReport compares each planned season wave with its actuals. Rows
// follow plan order; the first plan of a season wave wins. Season waves
// with sales but no plan are appended in order of first appearance with
// HasPlan false.
func WavePlanReport(plans []snapshot.WavePlan, mix []snapshot.WavePlanMix, rows []join.Row) []WaveRow {
	actuals := make(map[waveKey]*waveActual)
	var actualOrder []waveKey
	for i := range rows {
		r := &rows[i]
		k := waveKey{r.SeasonYear, r.Season, r.SKU.LaunchWave}
		a, ok := actuals[k]
		if !ok {
			a = &waveActual{skus: make(map[string]bool), byCategory: make(map[string]float64)}
			actuals[k] = a
			actualOrder = append(actualOrder, k)
		}
		a.net += r.NetSalesAmt
		if !a.skus[r.SKUID] {
			a.skus[r.SKUID] = true
			if r.SKU.Lifecycle == snapshot.LifecycleNew {
				a.newSKUs++
			}
		}
		if _, ok := a.byCategory[r.Category.L1]; !ok {
			a.categories = append(a.categories, r.Category.L1)
		}
		a.byCategory[r.Category.L1] += r.NetSalesAmt
	}

	mixByWave := make(map[waveKey][]snapshot.WavePlanMix)
	for _, m := range mix {
		k := waveKey{m.SeasonYear, m.Season, m.Wave}
		mixByWave[k] = append(mixByWave[k], m)
	}

	var out []WaveRow
	planned := make(map[waveKey]bool)
	for _, p := range plans {
		k := waveKey{p.SeasonYear, p.Season, p.Wave}
		if planned[k] {
			continue
		}
		planned[k] = true
		row := WaveRow{
			SeasonYear:      p.SeasonYear,
			Season:          p.Season,
			Wave:            p.Wave,
			HasPlan:         true,
			PlannedSKUs:     p.PlannedSKUCount,
			PlannedNewRatio: p.PlannedNewRatio,
			PlannedSales:    p.PlannedSalesAmt,
		}
		fillActual(&row, actuals[k], mixByWave[k])
		out = append(out, row)
	}
	for _, k := range actualOrder {
		if planned[k] {
			continue
		}
		row := WaveRow{SeasonYear: k.year, Season: k.season, Wave: k.wave}
		fillActual(&row, actuals[k], nil)
		out = append(out, row)
	}
	return out
}

func fillActual(row *WaveRow, a *waveActual, mix []snapshot.WavePlanMix) {
	if a == nil {
		a = &waveActual{skus: map[string]bool{}, byCategory: map[string]float64{}}
	}
	row.ActualSKUs = len(a.skus)
	row.SKUGap = row.ActualSKUs - row.PlannedSKUs
	row.ActualNewRatio = metrics.SafeDiv(float64(a.newSKUs), float64(len(a.skus)))
	row.NewRatioGapPP = PPChange(row.ActualNewRatio, row.PlannedNewRatio)
	row.ActualSales = a.net
	row.Achievement = metrics.SafeDiv(a.net, row.PlannedSales)

	seen := make(map[string]bool)
	for _, m := range mix {
		if seen[m.CategoryL1] {
			continue
		}
		seen[m.CategoryL1] = true
		actual := metrics.SafeDiv(a.byCategory[m.CategoryL1], a.net)
		row.Mix = append(row.Mix, MixGap{
			CategoryL1: m.CategoryL1,
			Planned:    m.PlannedShare,
			Actual:     actual,
			GapPP:      PPChange(actual, m.PlannedShare),
		})
	}
	for _, c := range a.categories {
		if seen[c] {
			continue
		}
		actual := metrics.SafeDiv(a.byCategory[c], a.net)
		row.Mix = append(row.Mix, MixGap{
			CategoryL1: c,
			Actual:     actual,
			GapPP:      PPChange(actual, 0),
		})
	}
}
