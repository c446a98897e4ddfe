//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package risk

import (
	"fmt"
	"math"
)

// Suggestion is the action text shown next to a risk. The same tags and
// metrics always produce the same text.
type Suggestion struct {
	Action string `json:"action"`
	Impact string `json:"impact"`
}

type suggestRule struct {
	when    func([]Tag) bool
	suggest func(Metrics, Thresholds) Suggestion
}

// suggestRules is evaluated in order; the first match wins.
var suggestRules = []suggestRule{
	{
		when: func(t []Tag) bool { return Has(t, LowSell, HighStock) },
		suggest: func(m Metrics, _ Thresholds) Suggestion {
			return Suggestion{
				Action: "立即启动清货：渠道调拨加限时折扣，暂停补单",
				Impact: fmt.Sprintf("预计释放库存约 %.0f 双，库存周转 %.1f 周", units(m.OnHand*0.5), m.WOS),
			}
		},
	},
	{
		when: func(t []Tag) bool { return Has(t, Stockout) },
		suggest: func(m Metrics, _ Thresholds) Suggestion {
			return Suggestion{
				Action: "尽快补货并优先保障高动销门店",
				Impact: fmt.Sprintf("当前仅够销售 %.1f 周，补货可避免断码损失", m.WOS),
			}
		},
	},
	{
		when: func(t []Tag) bool { return Has(t, Overstock) },
		suggest: func(m Metrics, t Thresholds) Suggestion {
			return Suggestion{
				Action: "控制后续到货，向高售罄区域调拨",
				Impact: fmt.Sprintf("库存覆盖 %.1f 周，目标回落至 %g 周以内", m.WOS, t.OverstockWOS),
			}
		},
	},
	{
		when: func(t []Tag) bool { return Has(t, DiscountHigh) },
		suggest: func(m Metrics, _ Thresholds) Suggestion {
			return Suggestion{
				Action: "收紧折扣审批，排查渠道乱价",
				Impact: fmt.Sprintf("折扣深度 %.1f%%，每收回 5pp 约提升毛利率 5pp", m.DiscountDepth*100),
			}
		},
	},
	{
		when: func(t []Tag) bool { return Has(t, LowMargin) },
		suggest: func(m Metrics, _ Thresholds) Suggestion {
			return Suggestion{
				Action: "复核成本与定价，减少低毛利渠道投放",
				Impact: fmt.Sprintf("毛利率 %.1f%%，低于目标线", m.Margin*100),
			}
		},
	},
	{
		when: func(t []Tag) bool { return Has(t, LowSell) },
		suggest: func(m Metrics, _ Thresholds) Suggestion {
			return Suggestion{
				Action: "加强陈列与营销曝光，评估试穿转化",
				Impact: fmt.Sprintf("售罄率 %.1f%%，需提升动销", m.SellThrough*100),
			}
		},
	},
	{
		when: func(t []Tag) bool { return Has(t, HighStock) },
		suggest: func(m Metrics, _ Thresholds) Suggestion {
			return Suggestion{
				Action: "关注库存深度，适度调拨",
				Impact: fmt.Sprintf("在库 %.0f 双", units(m.OnHand)),
			}
		},
	},
}

var healthy = Suggestion{Action: "保持当前节奏", Impact: "各项指标正常"}

// Suggest returns the action for a tag set. Impact text quotes the
// thresholds that raised the tags.
func Suggest(tags []Tag, m Metrics, t Thresholds) Suggestion {
	for _, r := range suggestRules {
		if r.when(tags) {
			return r.suggest(m, t)
		}
	}
	return healthy
}

func units(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v)
}
