//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package insight turns aggregated numbers into short narrative lines.
// Output depends only on its inputs.
package insight

import (
	"fmt"
	"strings"

	"github.com/pgEdge/pgedge-merchlens/internal/format"
	"github.com/pgEdge/pgedge-merchlens/internal/risk"
	"github.com/pgEdge/pgedge-merchlens/internal/rollup"
)

// Kinds of insight.
const (
	KindOverview   = "overview"
	KindPlan       = "plan"
	KindRegion     = "region"
	KindCategory   = "category"
	KindCompetitor = "competitor"
	KindWave       = "wave"
	KindRisk       = "risk"
)

// Insight is one narrative line.
type Insight struct {
	Kind   string      `json:"kind"`
	Status risk.Status `json:"status"`
	Text   string      `json:"text"`
}

// CompareLabel names a comparison mode in narrative text.
func CompareLabel(mode string) string {
	switch mode {
	case "yoy":
		return "同比"
	case "mom":
		return "环比"
	case "plan":
		return "对比计划"
	}
	return ""
}

// Headline summarizes the total group. The comparison clause appears only
// when the baseline is defined.
func Headline(total rollup.Group, mode string, h risk.Health) Insight {
	var b strings.Builder
	fmt.Fprintf(&b, "本期净销售 %s，毛利率 %s，售罄率 %s，折扣深度 %s",
		format.Amount(total.Net), format.Percent(total.Margin),
		format.Percent(total.SellThrough), format.Percent(total.DiscountDepth))

	if d := total.Delta; d.Defined() {
		fmt.Fprintf(&b, "；%s净销售 %s，毛利率 %s，售罄率 %s",
			CompareLabel(mode), format.SignedPercent(*d.NetSales),
			format.PP(*d.Margin), format.PP(*d.SellThrough))
	}
	b.WriteString("。")

	return Insight{Kind: KindOverview, Status: h.SellThrough.Classify(total.SellThrough), Text: b.String()}
}

// Plan reports achievement against the allocated target.
func Plan(total rollup.Group, h risk.Health) (Insight, bool) {
	if total.Plan == nil || total.Plan.Target <= 0 {
		return Insight{}, false
	}
	p := total.Plan
	text := fmt.Sprintf("计划目标 %s，已达成 %s，差额 %s。",
		format.Amount(p.Target), format.Percent(p.Achievement), format.Amount(p.Gap))
	return Insight{Kind: KindPlan, Status: h.Achievement.Classify(p.Achievement), Text: text}, true
}

// Extremes names the leading and trailing groups of a rollup sorted by net
// sales.
func Extremes(kind, noun string, groups []rollup.Group) Insight {
	switch len(groups) {
	case 0:
		return Insight{Kind: kind, Status: risk.Warn, Text: fmt.Sprintf("暂无%s数据。", noun)}
	case 1:
		g := groups[0]
		return Insight{Kind: kind, Status: risk.Good,
			Text: fmt.Sprintf("仅 %s 一个%s，净销售 %s。", g.Label, noun, format.Amount(g.Net))}
	}
	top, bottom := groups[0], groups[len(groups)-1]
	return Insight{
		Kind:   kind,
		Status: risk.Good,
		Text: fmt.Sprintf("%s贡献最高的是 %s，占净销售 %s；最低的是 %s，占 %s。",
			noun, top.Label, format.Percent(top.Share), bottom.Label, format.Percent(bottom.Share)),
	}
}

// Regions describes a region rollup.
func Regions(groups []rollup.Group) Insight {
	return Extremes(KindRegion, "区域", groups)
}

// Categories describes a category rollup.
func Categories(groups []rollup.Group) Insight {
	return Extremes(KindCategory, "品类", groups)
}

// Competitors reports our market position and the widest category gap.
func Competitors(shares []rollup.BrandShare, mix []rollup.MixRow) (Insight, bool) {
	if len(shares) < 2 {
		return Insight{}, false
	}
	rank := 0
	var own rollup.BrandShare
	for i, s := range shares {
		if s.Own {
			rank, own = i+1, s
			break
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "本品在观测品牌中排名第 %d，份额 %s", rank, format.Percent(own.Share))

	status := risk.Good
	if rank > 1 {
		status = risk.Warn
	}
	var widest *rollup.MixRow
	for i := range mix {
		if mix[i].GapPP > 0 && (widest == nil || mix[i].GapPP > widest.GapPP) {
			widest = &mix[i]
		}
	}
	if widest != nil {
		fmt.Fprintf(&b, "；%s 在 %s 的占比高出本品 %s", widest.Brand, widest.Key, format.PP(widest.GapPP))
	}
	b.WriteString("。")
	return Insight{Kind: KindCompetitor, Status: status, Text: b.String()}, true
}

// Waves lists planned waves whose achievement is below the warning level.
func Waves(rows []rollup.WaveRow, h risk.Health) (Insight, bool) {
	var lagging []string
	planned := 0
	for _, w := range rows {
		if !w.HasPlan {
			continue
		}
		planned++
		if h.Achievement.Classify(w.Achievement) == risk.Danger {
			lagging = append(lagging, fmt.Sprintf("%s（达成 %s，SKU 差 %d）",
				w.Label(), format.Percent(w.Achievement), w.SKUGap))
		}
	}
	if planned == 0 {
		return Insight{}, false
	}
	if len(lagging) == 0 {
		return Insight{Kind: KindWave, Status: risk.Good, Text: "各波段计划达成正常。"}, true
	}
	return Insight{
		Kind:   KindWave,
		Status: risk.Danger,
		Text:   "达成落后的波段：" + strings.Join(lagging, "、") + "。",
	}, true
}

// Risks summarizes a prioritized risk list.
func Risks(items []risk.Item) Insight {
	c := risk.Count(items)
	if c.ByPriority[risk.P0]+c.ByPriority[risk.P1] == 0 {
		return Insight{Kind: KindRisk, Status: risk.Good, Text: fmt.Sprintf("%d 个 SKU 均无重点风险。", c.Total)}
	}

	top := items[0]
	tags := make([]string, len(top.Tags))
	for i, t := range top.Tags {
		tags[i] = string(t)
	}
	status := risk.Warn
	if c.ByPriority[risk.P0] > 0 {
		status = risk.Danger
	}
	return Insight{
		Kind:   KindRisk,
		Status: status,
		Text: fmt.Sprintf("风险 SKU：P0 %d 个，P1 %d 个；首要关注 %s %s（%s），建议%s。",
			c.ByPriority[risk.P0], c.ByPriority[risk.P1], top.SKUID, top.SKUName,
			strings.Join(tags, "/"), top.Action),
	}
}

// Banner is one KPI health indicator.
type Banner struct {
	Metric   string        `json:"metric"`
	Value    float64       `json:"value"`
	Status   risk.Status   `json:"status"`
	Strength risk.Strength `json:"strength"`
}

type kpi struct {
	name  string
	value float64
	band  risk.Band
}

// Banners classifies the headline KPIs of the total group.
func Banners(total rollup.Group, h risk.Health) []Banner {
	items := []kpi{
		{"sell_through", total.SellThrough, h.SellThrough},
		{"margin_rate", total.Margin, h.Margin},
		{"fill_rate", total.FillRate, h.FillRate},
		{"discount_depth", total.DiscountDepth, h.DiscountDepth},
		{"wos", total.WOS, h.WOS},
	}
	if total.Plan != nil {
		items = append(items, kpi{"achievement", total.Plan.Achievement, h.Achievement})
	}

	out := make([]Banner, 0, len(items))
	for _, it := range items {
		s := it.band.Classify(it.value)
		out = append(out, Banner{Metric: it.name, Value: it.value, Status: s, Strength: s.Strength()})
	}
	return out
}
