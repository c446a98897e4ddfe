//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package taxonomy normalizes free-text category and price-band labels into
// the canonical footwear hierarchy.
package taxonomy

// DefaultL1 is the L1 category used when nothing else matches.
const DefaultL1 = "休闲/街头"

// Node is one canonical L1 category.
type Node struct {
	// L1 is the canonical label.
	L1 string `mapstructure:"l1"`

	// Aliases are labels that name L1 exactly (legacy codes, English names).
	Aliases []string `mapstructure:"aliases"`

	// Keywords are matched by substring containment in addition to every
	// canonical L2 label.
	Keywords []string `mapstructure:"keywords"`

	// L2 is the ordered list of allowed sub-categories. The first entry is
	// the default L2.
	L2 []string `mapstructure:"l2"`

	// L2Synonyms maps a canonical L2 to extra keywords scoped to this L1.
	L2Synonyms []Synonyms `mapstructure:"l2_synonyms"`
}

// Synonyms is an ordered synonym set for one label.
type Synonyms struct {
	Label string   `mapstructure:"label"`
	Terms []string `mapstructure:"terms"`
}

// Alias maps a free-text term to a canonical L1.
type Alias struct {
	Term string `mapstructure:"term"`
	L1   string `mapstructure:"l1"`
}

// Taxonomy is the static dictionary consumed by the resolver.
type Taxonomy struct {
	Nodes        []Node  `mapstructure:"nodes"`
	ProductLines []Alias `mapstructure:"product_lines"`
	DefaultL1    string  `mapstructure:"default_l1"`
}

// DefaultTaxonomy returns the built-in footwear taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		DefaultL1: DefaultL1,
		Nodes: []Node{
			{
				L1:       "跑步",
				Aliases:  []string{"跑步鞋", "running", "run"},
				Keywords: []string{"跑鞋", "跑步", "马拉松", "running", "jogging"},
				L2:       []string{"缓震跑鞋", "竞速跑鞋", "稳定跑鞋", "入门跑鞋"},
				L2Synonyms: []Synonyms{
					{Label: "竞速跑鞋", Terms: []string{"竞速", "碳板", "racing"}},
					{Label: "缓震跑鞋", Terms: []string{"缓震", "cushion"}},
					{Label: "稳定跑鞋", Terms: []string{"稳定", "支撑", "stability"}},
					{Label: "入门跑鞋", Terms: []string{"入门", "基础"}},
				},
			},
			{
				L1:       "篮球",
				Aliases:  []string{"篮球鞋", "basketball", "bb"},
				Keywords: []string{"篮球", "basketball", "球星"},
				L2:       []string{"实战篮球鞋", "外场篮球鞋", "篮球文化鞋"},
				L2Synonyms: []Synonyms{
					{Label: "实战篮球鞋", Terms: []string{"实战", "专业", "签名"}},
					{Label: "外场篮球鞋", Terms: []string{"外场", "耐磨", "水泥地"}},
					{Label: "篮球文化鞋", Terms: []string{"文化", "复刻", "retro"}},
				},
			},
			{
				L1:       "训练",
				Aliases:  []string{"training", "综训", "训练鞋"},
				Keywords: []string{"训练", "健身", "综训", "gym", "training"},
				L2:       []string{"综合训练鞋", "健身鞋", "室内训练鞋"},
				L2Synonyms: []Synonyms{
					{Label: "健身鞋", Terms: []string{"健身", "举重", "gym"}},
					{Label: "室内训练鞋", Terms: []string{"室内", "跳操", "indoor"}},
				},
			},
			{
				L1:       "户外",
				Aliases:  []string{"outdoor", "户外鞋"},
				Keywords: []string{"户外", "徒步", "越野", "登山", "溯溪", "hiking", "trail"},
				L2:       []string{"徒步鞋", "越野跑鞋", "登山鞋", "溯溪鞋"},
				L2Synonyms: []Synonyms{
					{Label: "越野跑鞋", Terms: []string{"越野", "trail"}},
					{Label: "登山鞋", Terms: []string{"登山", "高帮", "mountain"}},
					{Label: "溯溪鞋", Terms: []string{"溯溪", "涉水"}},
				},
			},
			{
				L1:       DefaultL1,
				Aliases:  []string{"休闲", "街头", "运动休闲", "lifestyle", "casual", "休闲鞋"},
				Keywords: []string{"休闲", "板鞋", "老爹", "帆布", "复古", "街头", "lifestyle", "casual"},
				L2:       []string{"板鞋", "老爹鞋", "帆布鞋", "复古跑鞋"},
				L2Synonyms: []Synonyms{
					{Label: "老爹鞋", Terms: []string{"老爹", "厚底", "chunky"}},
					{Label: "帆布鞋", Terms: []string{"帆布", "canvas"}},
					{Label: "复古跑鞋", Terms: []string{"复古", "retro"}},
				},
			},
			{
				L1:       "儿童",
				Aliases:  []string{"kids", "童鞋", "儿童鞋"},
				Keywords: []string{"儿童", "童鞋", "学步", "小童", "大童", "kids"},
				L2:       []string{"儿童跑鞋", "儿童板鞋", "学步鞋"},
				L2Synonyms: []Synonyms{
					{Label: "学步鞋", Terms: []string{"学步", "婴童"}},
					{Label: "儿童板鞋", Terms: []string{"板鞋", "休闲"}},
				},
			},
		},
		ProductLines: []Alias{
			{Term: "专业跑", L1: "跑步"},
			{Term: "篮球线", L1: "篮球"},
			{Term: "综训线", L1: "训练"},
			{Term: "户外线", L1: "户外"},
			{Term: "运动生活", L1: DefaultL1},
			{Term: "童装", L1: "儿童"},
		},
	}
}

// L1Labels returns the canonical L1 labels in taxonomy order.
func (t Taxonomy) L1Labels() []string {
	out := make([]string, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		out = append(out, n.L1)
	}
	return out
}
