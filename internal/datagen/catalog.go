//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
	"github.com/pgEdge/pgedge-merchlens/internal/taxonomy"
)

// category is a raw catalog label as merchandisers type it, with the L1 it
// should resolve to and the explicit sub categories used with it.
type category struct {
	raw  string
	l1   string
	subs []string
}

// The last entry has no sub category and usually resolves to the default
// L1 without a match.
var categories = []category{
	{"跑步鞋", "跑步", []string{"缓震跑鞋", "竞速跑鞋", "稳定跑鞋", "入门跑鞋"}},
	{"running", "跑步", []string{"缓震跑鞋", "竞速跑鞋"}},
	{"篮球鞋", "篮球", []string{"实战篮球鞋", "外场篮球鞋", "篮球文化鞋"}},
	{"训练", "训练", []string{"健身鞋", "室内训练鞋"}},
	{"户外", "户外", []string{"越野跑鞋", "登山鞋", "溯溪鞋"}},
	{"休闲", taxonomy.DefaultL1, []string{"老爹鞋", "帆布鞋", "复古跑鞋"}},
	{"童鞋", "儿童", []string{"学步鞋", "儿童板鞋"}},
	{"misc", taxonomy.DefaultL1, []string{""}},
}

var categoryWeights = []int{6, 2, 5, 3, 2, 4, 2, 1}

var (
	waves      = []string{"W1", "W2", "W3", "W4"}
	colors     = []string{"黑", "白", "灰", "红", "蓝", "绿", "米"}
	audiences  = []string{"男", "女", "中性", "儿童"}
	lifecycles = []string{snapshot.LifecycleNew, snapshot.LifecycleEvergreen, snapshot.LifecycleClearance}
	lifeWeight = []int{3, 5, 2}
	lines      = []string{"专业运动", "运动生活", "潮流"}

	channelTypes   = []string{snapshot.ChannelEcommerce, snapshot.ChannelDirect, snapshot.ChannelFranchise, snapshot.ChannelKA}
	channelWeights = []int{3, 3, 2, 1}
	regions        = []string{"华东", "华南", "华北", "华中", "西南", "西北", "东北"}
	cityTiers      = []string{"一线", "新一线", "二线", "三线", "四线及以下"}
	storeFormats   = []string{"旗舰店", "标准店", "奥莱", "店中店"}
	platforms      = []string{"天猫", "京东", "抖音", "得物"}

	positionings = []string{"高端专业", "大众运动", "潮流时尚", "性价比"}
)

// competitorBand is a free price band label as competitor reports use it.
type competitorBand struct {
	label    string
	min, max float64
}

var competitorBands = []competitorBand{
	{"199-399", 199, 399},
	{"399-599", 399, 599},
	{"599-800", 599, 800},
	{"800以上", 800, 1500},
}
