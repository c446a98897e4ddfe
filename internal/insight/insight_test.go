//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package insight

import (
	"strings"
	"testing"

	"github.com/pgEdge/pgedge-merchlens/internal/metrics"
	"github.com/pgEdge/pgedge-merchlens/internal/risk"
	"github.com/pgEdge/pgedge-merchlens/internal/rollup"
)

func f(v float64) *float64 { return &v }

func totalGroup() rollup.Group {
	return rollup.Group{
		Label: rollup.TotalLabel,
		Summary: metrics.Summary{
			Rows: 4, Net: 13000, Margin: 0.4333, SellThrough: 0.5,
			DiscountDepth: 0.1, FillRate: 0.97, WOS: 6,
		},
	}
}

func TestHeadline(t *testing.T) {
	h := risk.DefaultHealth()
	base := "本期净销售 1.30万，毛利率 43.3%，售罄率 50.0%，折扣深度 10.0%"

	tests := []struct {
		name  string
		delta *rollup.Delta
		mode  string
		want  string
	}{
		{"no compare", nil, "none", base + "。"},
		{"undefined baseline", &rollup.Delta{}, "yoy", base + "。"},
		{
			name: "yoy",
			delta: &rollup.Delta{
				Baseline:    &metrics.Summary{Rows: 1},
				NetSales:    f(2.75),
				Margin:      f(1.5),
				SellThrough: f(-10),
			},
			mode: "yoy",
			want: base + "；同比净销售 +275.0%，毛利率 +1.5pp，售罄率 -10.0pp。",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := totalGroup()
			g.Delta = tt.delta
			got := Headline(g, tt.mode, h)
			if got.Text != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got.Text)
			}
			if got.Status != risk.Danger {
				t.Errorf("Expected danger for 50%% sell-through, got %s", got.Status)
			}
		})
	}
}

func TestPlan(t *testing.T) {
	g := totalGroup()
	if _, ok := Plan(g, risk.DefaultHealth()); ok {
		t.Error("Expected no plan insight without a plan")
	}

	g.Plan = &rollup.Plan{Target: 15000, Achievement: 13000.0 / 15000, Gap: -2000}
	got, ok := Plan(g, risk.DefaultHealth())
	if !ok {
		t.Fatal("Expected a plan insight")
	}
	if got.Text != "计划目标 1.50万，已达成 86.7%，差额 -2000。" {
		t.Errorf("Unexpected text %q", got.Text)
	}
	if got.Status != risk.Danger {
		t.Errorf("Expected danger below 90%% achievement, got %s", got.Status)
	}
}

func TestRegions(t *testing.T) {
	groups := []rollup.Group{
		{Label: "华南", Share: 0.7692},
		{Label: "华东", Share: 0.2308},
	}
	got := Regions(groups)
	want := "区域贡献最高的是 华南，占净销售 76.9%；最低的是 华东，占 23.1%。"
	if got.Text != want {
		t.Errorf("Expected %q, got %q", want, got.Text)
	}
	if empty := Regions(nil); !strings.Contains(empty.Text, "暂无区域数据") {
		t.Errorf("Unexpected empty text %q", empty.Text)
	}
}

func TestCompetitors(t *testing.T) {
	shares := []rollup.BrandShare{
		{Brand: rollup.OwnBrand, Share: 0.52, Own: true},
		{Brand: "竞品A", Share: 0.32},
	}
	mix := []rollup.MixRow{
		{Brand: "竞品A", Key: "跑步", GapPP: 39.4},
		{Brand: "竞品B", Key: "休闲/街头", GapPP: 53.8},
		{Brand: "竞品A", Key: "篮球", GapPP: -6},
	}
	got, ok := Competitors(shares, mix)
	if !ok {
		t.Fatal("Expected a competitor insight")
	}
	want := "本品在观测品牌中排名第 1，份额 52.0%；竞品B 在 休闲/街头 的占比高出本品 +53.8pp。"
	if got.Text != want {
		t.Errorf("Expected %q, got %q", want, got.Text)
	}
	if _, ok := Competitors(shares[:1], nil); ok {
		t.Error("Expected no insight without competitors")
	}
}

func TestWaves(t *testing.T) {
	h := risk.DefaultHealth()
	rows := []rollup.WaveRow{
		{Wave: "W1", HasPlan: true, Achievement: 0.7778, SKUGap: -1},
		{Wave: "W2", HasPlan: true, Achievement: 1.2},
		{Wave: "W9", Achievement: 0},
	}
	got, ok := Waves(rows, h)
	if !ok || got.Text != "达成落后的波段：W1（达成 77.8%，SKU 差 -1）。" {
		t.Errorf("Unexpected wave insight %q", got.Text)
	}
	if got, _ := Waves(rows[1:], h); got.Status != risk.Good {
		t.Errorf("Expected good status, got %s", got.Status)
	}
	if _, ok := Waves(rows[2:], h); ok {
		t.Error("Expected no insight without planned waves")
	}
}

func TestRisks(t *testing.T) {
	items := []risk.Item{
		{SKUID: "S002", SKUName: "实战签名篮球鞋", Priority: risk.P0,
			Tags:       []risk.Tag{risk.LowSell, risk.HighStock},
			Suggestion: risk.Suggestion{Action: "立即清货"}},
		{SKUID: "S001", Priority: risk.P1, Tags: []risk.Tag{risk.LowSell}},
		{SKUID: "S009", Priority: risk.P2, Tags: []risk.Tag{risk.Healthy}},
	}
	got := Risks(items)
	want := "风险 SKU：P0 1 个，P1 1 个；首要关注 S002 实战签名篮球鞋（低售罄/高库存），建议立即清货。"
	if got.Text != want || got.Status != risk.Danger {
		t.Errorf("Expected %q (danger), got %q (%s)", want, got.Text, got.Status)
	}
	if got := Risks(items[2:]); got.Status != risk.Good {
		t.Errorf("Expected good status for a healthy list, got %s", got.Status)
	}
}

func TestBanners(t *testing.T) {
	g := totalGroup()
	g.Plan = &rollup.Plan{Achievement: 1}
	banners := Banners(g, risk.DefaultHealth())
	if len(banners) != 6 {
		t.Fatalf("Expected 6 banners, got %d", len(banners))
	}
	want := map[string]risk.Status{
		"sell_through":   risk.Danger,
		"margin_rate":    risk.Good,
		"fill_rate":      risk.Good,
		"discount_depth": risk.Good,
		"wos":            risk.Good,
		"achievement":    risk.Good,
	}
	for _, b := range banners {
		if b.Status != want[b.Metric] {
			t.Errorf("%s: expected %s, got %s", b.Metric, want[b.Metric], b.Status)
		}
	}
}
