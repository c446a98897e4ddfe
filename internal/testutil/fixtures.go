//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package testutil

import (
	"testing"

	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
)

// Tables returns a small hand-checked snapshot covering every table.
//
// Current period is 2025 Q1. S001 has two weeks on C01 plus one fact on the
// unknown channel C99, which every join must drop. Baselines exist for
// 2024 Q1 (yoy) and 2024 Q4 (mom).
func Tables() snapshot.Tables {
	return snapshot.Tables{
		SKUs: []snapshot.SKU{
			{SKUID: "S001", SKUName: "云跑缓震跑鞋", ProductLine: "专业跑", CategoryID: "跑步",
				SubCategory: "缓震跑鞋", MSRP: 699, Lifecycle: snapshot.LifecycleEvergreen,
				LaunchWave: "W1", LaunchDate: "2025-01-06", Color: "黑", TargetAudience: "男",
				SeasonYear: 2025, Season: "Q1"},
			{SKUID: "S002", SKUName: "实战签名篮球鞋", ProductLine: "篮球线", CategoryID: "篮球",
				SubCategory: "实战篮球鞋", PriceBand: "PB4", MSRP: 899, Lifecycle: snapshot.LifecycleNew,
				LaunchWave: "W1", LaunchDate: "2025-01-06", Color: "白", TargetAudience: "男",
				SeasonYear: 2025, Season: "Q1"},
			{SKUID: "S003", SKUName: "经典款", ProductLine: "其他", CategoryID: "unknown-xyz",
				PriceBand: "199-399", MSRP: 299, Lifecycle: snapshot.LifecycleClearance,
				LaunchWave: "W2", LaunchDate: "2025-02-10", Color: "黑", TargetAudience: "女",
				SeasonYear: 2025, Season: "Q1"},
		},
		Channels: []snapshot.Channel{
			{ChannelID: "C01", ChannelType: snapshot.ChannelEcommerce, IsOnline: true,
				Region: "华东", CityTier: "一线", StoreFormat: "平台店", Platform: "天猫"},
			{ChannelID: "C02", ChannelType: snapshot.ChannelDirect, IsOnline: false,
				Region: "华南", CityTier: "二线", StoreFormat: "购物中心"},
		},
		Sales: []snapshot.SalesFact{
			{RecordID: "R1", SKUID: "S001", ChannelID: "C01", SeasonYear: 2025, Season: "Q1", WeekNum: 1,
				UnitSold: 10, OnHandUnit: 100, GrossSalesAmt: 1200, NetSalesAmt: 1000, COGSAmt: 600,
				DiscountAmt: 200, GrossProfitAmt: 400, CumulativeSellThrough: 0.3},
			{RecordID: "R2", SKUID: "S001", ChannelID: "C01", SeasonYear: 2025, Season: "Q1", WeekNum: 2,
				UnitSold: 20, OnHandUnit: 50, GrossSalesAmt: 2400, NetSalesAmt: 2000, COGSAmt: 1100,
				DiscountAmt: 400, GrossProfitAmt: 900, CumulativeSellThrough: 0.6},
			{RecordID: "R3", SKUID: "S001", ChannelID: "C99", SeasonYear: 2025, Season: "Q1", WeekNum: 2,
				UnitSold: 99, OnHandUnit: 1, GrossSalesAmt: 5000, NetSalesAmt: 5000, COGSAmt: 4900,
				GrossProfitAmt: 100, CumulativeSellThrough: 0.99},
			{RecordID: "R4", SKUID: "S002", ChannelID: "C02", SeasonYear: 2025, Season: "Q1", WeekNum: 1,
				UnitSold: 5, OnHandUnit: 300, GrossSalesAmt: 4500, NetSalesAmt: 4000, COGSAmt: 2000,
				DiscountAmt: 500, GrossProfitAmt: 2000, CumulativeSellThrough: 0.1},
			{RecordID: "R5", SKUID: "S003", ChannelID: "C02", SeasonYear: 2025, Season: "Q1", WeekNum: 1,
				UnitSold: 30, OnHandUnit: 20, GrossSalesAmt: 9000, NetSalesAmt: 6000, COGSAmt: 4500,
				DiscountAmt: 3000, GrossProfitAmt: 1500, CumulativeSellThrough: 0.8},
			{RecordID: "R6", SKUID: "S001", ChannelID: "C01", SeasonYear: 2024, Season: "Q1", WeekNum: 1,
				UnitSold: 8, OnHandUnit: 60, GrossSalesAmt: 900, NetSalesAmt: 800, COGSAmt: 500,
				DiscountAmt: 100, GrossProfitAmt: 300, CumulativeSellThrough: 0.5},
			{RecordID: "R7", SKUID: "S002", ChannelID: "C02", SeasonYear: 2024, Season: "Q4", WeekNum: 1,
				UnitSold: 4, OnHandUnit: 100, GrossSalesAmt: 3200, NetSalesAmt: 3000, COGSAmt: 1500,
				DiscountAmt: 200, GrossProfitAmt: 1500, CumulativeSellThrough: 0.2},
		},
		Inventory: []snapshot.InventoryFact{
			{SKUID: "S001", Period: "2025-W02", SeasonYear: 2025, Season: "Q1",
				InboundQty: 100, TransferIn: 20, SalesQty: 30, EOPQty: 90},
			{SKUID: "S002", Period: "2025-W02", SeasonYear: 2025, Season: "Q1",
				InboundQty: 300, SalesQty: 5, EOPQty: 295},
			{SKUID: "S404", Period: "2025-W02", SeasonYear: 2025, Season: "Q1",
				InboundQty: 10, SalesQty: 1, EOPQty: 9},
		},
		Competitors: []snapshot.CompetitorDim{
			{CompetitorID: "K1", BrandName: "竞品A", Positioning: "专业运动"},
			{CompetitorID: "K2", BrandName: "竞品B", Positioning: "潮流休闲"},
		},
		CompetitorFacts: []snapshot.CompetitorFact{
			{CompetitorID: "K1", SeasonYear: 2025, Season: "Q1", Category: "跑步",
				PriceBand: "PB3", AvgPrice: 700, SalesAmt: 5000, SKUCount: 10},
			{CompetitorID: "K1", SeasonYear: 2025, Season: "Q1", Category: "篮球鞋",
				PriceBand: "PB4", AvgPrice: 950, SalesAmt: 3000, SKUCount: 4},
			{CompetitorID: "K2", SeasonYear: 2025, Season: "Q1", Category: "休闲",
				PriceBand: "399-599", AvgPrice: 450, SalesAmt: 4000, SKUCount: 8},
			{CompetitorID: "K2", SeasonYear: 2024, Season: "Q1", Category: "休闲",
				PriceBand: "PB2", AvgPrice: 430, SalesAmt: 3500, SKUCount: 7},
		},
		HotSKUs: []snapshot.CompetitorHotSKU{
			{CompetitorID: "K1", SKUName: "A2 训练鞋", Category: "训练", Price: 599, Color: "灰", SalesAmt: 1000},
			{CompetitorID: "K1", SKUName: "A1 碳板跑鞋", Category: "跑步", Price: 1099, Color: "红", SalesAmt: 2000},
			{CompetitorID: "K2", SKUName: "B1 老爹鞋", Category: "休闲", Price: 499, Color: "白", SalesAmt: 1500},
		},
		WavePlans: []snapshot.WavePlan{
			{SeasonYear: 2025, Season: "Q1", Wave: "W1", PlannedSKUCount: 3,
				PlannedNewRatio: 0.5, PlannedSalesAmt: 9000},
			{SeasonYear: 2025, Season: "Q1", Wave: "W2", PlannedSKUCount: 1,
				PlannedNewRatio: 0, PlannedSalesAmt: 5000},
		},
		WavePlanMix: []snapshot.WavePlanMix{
			{SeasonYear: 2025, Season: "Q1", Wave: "W1", CategoryL1: "跑步", PlannedShare: 0.5},
			{SeasonYear: 2025, Season: "Q1", Wave: "W1", CategoryL1: "篮球", PlannedShare: 0.5},
			{SeasonYear: 2025, Season: "Q1", Wave: "W2", CategoryL1: "休闲/街头", PlannedShare: 1},
		},
		SalesPlans: []snapshot.SalesPlan{
			{SeasonYear: 2025, Season: "Q1", Region: "all", PlannedSalesAmt: 15000},
			{SeasonYear: 2025, Season: "Q1", Region: "华东", PlannedSalesAmt: 4000},
		},
	}
}

// Snapshot builds the fixture snapshot, failing the test on error.
func Snapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()

	snap, err := snapshot.New(Tables())
	if err != nil {
		t.Fatalf("Failed to build fixture snapshot: %v", err)
	}
	return snap
}

// SnapshotFrom builds a snapshot from tables, failing the test on error.
func SnapshotFrom(t *testing.T, tables snapshot.Tables) *snapshot.Snapshot {
	t.Helper()

	snap, err := snapshot.New(tables)
	if err != nil {
		t.Fatalf("Failed to build snapshot: %v", err)
	}
	return snap
}
