//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reports

import (
	"strconv"
	"strings"

	"github.com/pgEdge/pgedge-merchlens/internal/analytics"
	"github.com/pgEdge/pgedge-merchlens/internal/format"
	"github.com/pgEdge/pgedge-merchlens/internal/join"
	"github.com/pgEdge/pgedge-merchlens/internal/risk"
	"github.com/pgEdge/pgedge-merchlens/internal/rollup"
)

func init() {
	Register(&report{"region-wave", "区域 × 波段销售与售罄", regionWave})
	Register(&report{"region-ops", "区域运营：满足率、补货率与库存周转", regionOps})
	Register(&report{"category-color", "品类 × 颜色结构", categoryColor})
	Register(&report{"competitor-category", "竞品品类结构对比", competitorMix(rollup.MixCategory, "品类")})
	Register(&report{"competitor-band", "竞品价格带结构对比", competitorMix(rollup.MixPriceBand, "价格带")})
	Register(&report{"wave-plan", "波段计划达成", wavePlan})
	Register(&report{"sell-ship", "品类售罄/到货比与期末库存", sellShip})
	Register(&report{"risk-list", "SKU 风险清单与建议", riskList})
}

// column renders one cell of a rollup group.
type column struct {
	header string
	value  func(g rollup.Group) string
}

var (
	colSKUs = column{"SKU数", func(g rollup.Group) string { return strconv.Itoa(g.SKUs) }}
	colNet  = column{"净销售额", func(g rollup.Group) string { return format.Money(g.Net) }}
	colUnit = column{"销量", func(g rollup.Group) string { return format.Fixed(g.Units, 0) }}
	colST   = column{"售罄率", func(g rollup.Group) string { return format.Percent(g.SellThrough) }}
	colGM   = column{"毛利率", func(g rollup.Group) string { return format.Percent(g.Margin) }}
	colDisc = column{"折扣深度", func(g rollup.Group) string { return format.Percent(g.DiscountDepth) }}
	colWOS  = column{"库存周转(周)", func(g rollup.Group) string { return format.Fixed(g.WOS, 1) }}
	colFill = column{"满足率", func(g rollup.Group) string { return format.Percent(g.FillRate) }}
	colRe   = column{"补货率", func(g rollup.Group) string { return format.Percent(g.ReorderRate) }}
	colShr  = column{"销售占比", func(g rollup.Group) string { return format.Percent(g.Share) }}
	colTopN = column{"TopN集中度", func(g rollup.Group) string { return format.Percent(g.TopNShare) }}
	colHHI  = column{"HHI", func(g rollup.Group) string { return format.Fixed(g.HHI, 0) + " " + g.Concentration }}
)

// compareColumns are appended for the query's compare mode.
func compareColumns(mode string) []column {
	switch mode {
	case analytics.CompareMoM, analytics.CompareYoY:
		delta := func(f func(d *rollup.Delta) *float64, render func(float64) string) func(g rollup.Group) string {
			return func(g rollup.Group) string {
				if g.Delta == nil {
					return "-"
				}
				return format.Optional(f(g.Delta), render)
			}
		}
		return []column{
			{"净销售额变化", delta(func(d *rollup.Delta) *float64 { return d.NetSales }, format.SignedPercent)},
			{"售罄率变化", delta(func(d *rollup.Delta) *float64 { return d.SellThrough }, format.PP)},
			{"毛利率变化", delta(func(d *rollup.Delta) *float64 { return d.Margin }, format.PP)},
		}
	case analytics.ComparePlan:
		plan := func(f func(p *rollup.Plan) float64, render func(float64) string) func(g rollup.Group) string {
			return func(g rollup.Group) string {
				if g.Plan == nil {
					return "-"
				}
				return render(f(g.Plan))
			}
		}
		return []column{
			{"计划", plan(func(p *rollup.Plan) float64 { return p.Target }, format.Money)},
			{"达成率", plan(func(p *rollup.Plan) float64 { return p.Achievement }, format.Percent)},
			{"差额", plan(func(p *rollup.Plan) float64 { return p.Gap }, format.Money)},
		}
	}
	return nil
}

func groupTable(title, keyHeader string, groups []rollup.Group, cols []column, mode string) *Table {
	cols = append(cols, compareColumns(mode)...)
	t := &Table{Title: title, Columns: []string{keyHeader}}
	for _, c := range cols {
		t.Columns = append(t.Columns, c.header)
	}
	for _, g := range groups {
		row := []string{g.Label}
		for _, c := range cols {
			row = append(row, c.value(g))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func regionWave(e *analytics.Engine, q analytics.Query) (*Table, error) {
	groups, err := e.RegionWave(q)
	if err != nil {
		return nil, err
	}
	return groupTable("区域 × 波段", "区域 × 波段", groups,
		[]column{colSKUs, colUnit, colNet, colST, colGM, colDisc, colShr}, q.Compare), nil
}

func regionOps(e *analytics.Engine, q analytics.Query) (*Table, error) {
	groups, err := e.RegionOps(q)
	if err != nil {
		return nil, err
	}
	return groupTable("区域运营", "区域", groups,
		[]column{colSKUs, colNet, colST, colWOS, colFill, colRe, colShr}, q.Compare), nil
}

func categoryColor(e *analytics.Engine, q analytics.Query) (*Table, error) {
	groups, err := e.CategoryColor(q)
	if err != nil {
		return nil, err
	}
	return groupTable("品类 × 颜色", "品类 × 颜色", groups,
		[]column{colSKUs, colUnit, colNet, colST, colGM, colShr, colTopN, colHHI}, q.Compare), nil
}

func competitorMix(by rollup.MixBy, keyHeader string) func(*analytics.Engine, analytics.Query) (*Table, error) {
	return func(e *analytics.Engine, q analytics.Query) (*Table, error) {
		rows, err := e.CompetitorMix(q, by)
		if err != nil {
			return nil, err
		}
		t := &Table{
			Title:   "竞品" + keyHeader + "结构",
			Columns: []string{"品牌", keyHeader, "销售额", "SKU数", "均价", "品牌内占比", "本品占比", "差距"},
		}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{
				r.Brand,
				r.Key,
				format.Money(r.SalesAmt),
				strconv.Itoa(r.SKUCount),
				format.Money(r.AvgPrice),
				format.Percent(r.BrandShare),
				format.Percent(r.OwnShare),
				format.PP(r.GapPP),
			})
		}
		return t, nil
	}
}

func wavePlan(e *analytics.Engine, q analytics.Query) (*Table, error) {
	rows, err := e.WavePlan(q)
	if err != nil {
		return nil, err
	}
	t := &Table{
		Title: "波段计划达成",
		Columns: []string{"期间", "波段", "计划SKU", "实际SKU", "SKU差额", "计划新品占比", "实际新品占比",
			"新品占比差距", "计划销售", "实际销售", "达成率"},
	}
	for _, r := range rows {
		planned, achievement := "-", "-"
		if r.HasPlan {
			planned = format.Money(r.PlannedSales)
			achievement = format.Percent(r.Achievement)
		}
		t.Rows = append(t.Rows, []string{
			join.Period{Year: r.SeasonYear, Season: r.Season}.String(),
			r.Wave,
			strconv.Itoa(r.PlannedSKUs),
			strconv.Itoa(r.ActualSKUs),
			strconv.Itoa(r.SKUGap),
			format.Percent(r.PlannedNewRatio),
			format.Percent(r.ActualNewRatio),
			format.PP(r.NewRatioGapPP),
			planned,
			format.Money(r.ActualSales),
			achievement,
		})
	}
	return t, nil
}

func sellShip(e *analytics.Engine, q analytics.Query) (*Table, error) {
	rows, err := e.SellShip(q, rollup.CategoryL1)
	if err != nil {
		return nil, err
	}
	t := &Table{
		Title:   "售罄/到货比",
		Columns: []string{"品类", "SKU数", "到货", "调入", "销售", "期末库存", "售罄/到货比", "库存占比"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Label,
			strconv.Itoa(r.SKUs),
			format.Fixed(r.Inbound, 0),
			format.Fixed(r.TransferIn, 0),
			format.Fixed(r.Sold, 0),
			format.Fixed(r.EOP, 0),
			format.Percent(r.SellShip),
			format.Percent(r.EOPShare),
		})
	}
	return t, nil
}

func riskList(e *analytics.Engine, q analytics.Query) (*Table, error) {
	items, err := e.RiskList(q)
	if err != nil {
		return nil, err
	}
	return RiskTable(items), nil
}

// RiskTable renders a risk list.
func RiskTable(items []risk.Item) *Table {
	t := &Table{
		Title: "SKU 风险清单",
		Columns: []string{"优先级", "SKU", "名称", "品类", "子品类", "价格带", "生命周期", "波段",
			"净销售额", "售罄率", "库存周转(周)", "在库", "毛利率", "折扣深度", "风险标签", "建议", "预计影响"},
	}
	for _, it := range items {
		tags := make([]string, len(it.Tags))
		for i, tag := range it.Tags {
			tags[i] = string(tag)
		}
		t.Rows = append(t.Rows, []string{
			string(it.Priority),
			it.SKUID,
			it.SKUName,
			it.CategoryL1,
			it.CategoryL2,
			it.PriceBand,
			it.Lifecycle,
			it.Wave,
			format.Money(it.NetSales),
			format.Percent(it.Metrics.SellThrough),
			format.Fixed(it.Metrics.WOS, 1),
			format.Fixed(it.Metrics.OnHand, 0),
			format.Percent(it.Metrics.Margin),
			format.Percent(it.Metrics.DiscountDepth),
			strings.Join(tags, "、"),
			it.Action,
			it.Impact,
		})
	}
	return t
}
