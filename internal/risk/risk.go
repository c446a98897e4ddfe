//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package risk tags SKUs and groups with rule-based risk labels, derives a
// priority and suggests an action. Every classifier here is an ordered
// decision table evaluated top to bottom.
package risk

// Tag is a risk label.
type Tag string

// Risk tags.
const (
	Stockout     Tag = "断货风险"
	LowSell      Tag = "低售罄"
	Overstock    Tag = "积压风险"
	HighStock    Tag = "高库存"
	LowMargin    Tag = "低毛利"
	DiscountHigh Tag = "折扣异常"
	Healthy      Tag = "健康"
)

// Metrics are the inputs of every risk rule.
type Metrics struct {
	WOS           float64 `json:"wos"`
	SellThrough   float64 `json:"sell_through"`
	OnHand        float64 `json:"on_hand"`
	Margin        float64 `json:"margin_rate"`
	DiscountDepth float64 `json:"discount_depth"`
}

// Thresholds configure the tag rules.
type Thresholds struct {
	StockoutWOS     float64 `mapstructure:"stockout_wos"`
	LowSellThrough  float64 `mapstructure:"low_sell_through"`
	OverstockWOS    float64 `mapstructure:"overstock_wos"`
	HighStockOnHand float64 `mapstructure:"high_stock_on_hand"`
	HighStockWOS    float64 `mapstructure:"high_stock_wos"`
	LowMargin       float64 `mapstructure:"low_margin"`
	HighDiscount    float64 `mapstructure:"high_discount"`
}

// DefaultThresholds returns the standard thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StockoutWOS:     4,
		LowSellThrough:  0.70,
		OverstockWOS:    12,
		HighStockOnHand: 200,
		HighStockWOS:    8,
		LowMargin:       0.38,
		HighDiscount:    0.20,
	}
}

type tagRule struct {
	tag  Tag
	when func(Metrics, Thresholds) bool
}

// tagRules is evaluated in order; every matching rule contributes its tag.
var tagRules = []tagRule{
	{Stockout, func(m Metrics, t Thresholds) bool { return m.WOS < t.StockoutWOS }},
	{LowSell, func(m Metrics, t Thresholds) bool { return m.SellThrough < t.LowSellThrough }},
	{Overstock, func(m Metrics, t Thresholds) bool { return m.WOS > t.OverstockWOS }},
	{HighStock, func(m Metrics, t Thresholds) bool {
		return m.OnHand > t.HighStockOnHand && m.WOS > t.HighStockWOS
	}},
	{LowMargin, func(m Metrics, t Thresholds) bool { return m.Margin < t.LowMargin }},
	{DiscountHigh, func(m Metrics, t Thresholds) bool { return m.DiscountDepth > t.HighDiscount }},
}

// Tags returns every matching tag in rule order, or [Healthy] when none
// match.
func Tags(m Metrics, t Thresholds) []Tag {
	var out []Tag
	for _, r := range tagRules {
		if r.when(m, t) {
			out = append(out, r.tag)
		}
	}
	if len(out) == 0 {
		return []Tag{Healthy}
	}
	return out
}

// Has reports whether tags contains every one of want.
func Has(tags []Tag, want ...Tag) bool {
	for _, w := range want {
		found := false
		for _, t := range tags {
			if t == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// HasAny reports whether tags contains at least one of want.
func HasAny(tags []Tag, want ...Tag) bool {
	for _, w := range want {
		if Has(tags, w) {
			return true
		}
	}
	return false
}

// Priority ranks a risk, P0 first.
type Priority string

// Priorities.
const (
	P0 Priority = "P0"
	P1 Priority = "P1"
	P2 Priority = "P2"
)

// Rank orders priorities, lower is more urgent.
func (p Priority) Rank() int {
	switch p {
	case P0:
		return 0
	case P1:
		return 1
	}
	return 2
}

type priorityRule struct {
	priority Priority
	when     func([]Tag) bool
}

// priorityRules is evaluated in order; the first match wins.
var priorityRules = []priorityRule{
	{P0, func(t []Tag) bool { return Has(t, LowSell, HighStock) }},
	{P1, func(t []Tag) bool { return HasAny(t, LowSell, DiscountHigh, LowMargin, HighStock) }},
}

// CalcRiskPriority derives the priority of a tag set. Returns P2 when no rule
// matches.
func CalcRiskPriority(tags []Tag) Priority {
	for _, r := range priorityRules {
		if r.when(tags) {
			return r.priority
		}
	}
	return P2
}
