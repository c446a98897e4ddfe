//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package snapshot

// Lifecycle states carried on the SKU dimension. The engine never derives
// or changes them.
const (
	LifecycleNew       = "新品"
	LifecycleEvergreen = "常青"
	LifecycleClearance = "清仓"
)

// Channel types.
const (
	ChannelEcommerce = "电商"
	ChannelDirect    = "直营"
	ChannelFranchise = "加盟"
	ChannelKA        = "KA"
)

// SKU is the product dimension.
type SKU struct {
	SKUID          string  `json:"sku_id" db:"sku_id"`
	SKUName        string  `json:"sku_name" db:"sku_name"`
	ProductLine    string  `json:"product_line" db:"product_line"`
	CategoryID     string  `json:"category_id" db:"category_id"`
	SubCategory    string  `json:"sub_category" db:"sub_category"`
	PriceBand      string  `json:"price_band" db:"price_band"`
	MSRP           float64 `json:"msrp" db:"msrp"`
	Lifecycle      string  `json:"lifecycle" db:"lifecycle"`
	LaunchWave     string  `json:"launch_wave" db:"launch_wave"`
	LaunchDate     string  `json:"launch_date" db:"launch_date"`
	Color          string  `json:"color" db:"color"`
	TargetAudience string  `json:"target_audience" db:"target_audience"`
	SeasonYear     int     `json:"season_year" db:"season_year"`
	Season         string  `json:"season" db:"season"`
}

// Channel is the store/platform dimension.
type Channel struct {
	ChannelID   string `json:"channel_id" db:"channel_id"`
	ChannelType string `json:"channel_type" db:"channel_type"`
	IsOnline    bool   `json:"is_online" db:"is_online"`
	Region      string `json:"region" db:"region"`
	CityTier    string `json:"city_tier" db:"city_tier"`
	StoreFormat string `json:"store_format" db:"store_format"`
	Platform    string `json:"platform" db:"platform"`
}

// SalesFact has a grain of SKU x channel x week.
//
// CumulativeSellThrough is assumed non-decreasing over WeekNum for a fixed
// SKU and channel. The loader does not enforce this; see
// MonotonicViolations.
type SalesFact struct {
	RecordID              string  `json:"record_id" db:"record_id"`
	SKUID                 string  `json:"sku_id" db:"sku_id"`
	ChannelID             string  `json:"channel_id" db:"channel_id"`
	SeasonYear            int     `json:"season_year" db:"season_year"`
	Season                string  `json:"season" db:"season"`
	WeekNum               int     `json:"week_num" db:"week_num"`
	UnitSold              float64 `json:"unit_sold" db:"unit_sold"`
	OnHandUnit            float64 `json:"on_hand_unit" db:"on_hand_unit"`
	GrossSalesAmt         float64 `json:"gross_sales_amt" db:"gross_sales_amt"`
	NetSalesAmt           float64 `json:"net_sales_amt" db:"net_sales_amt"`
	COGSAmt               float64 `json:"cogs_amt" db:"cogs_amt"`
	DiscountAmt           float64 `json:"discount_amt" db:"discount_amt"`
	GrossProfitAmt        float64 `json:"gross_profit_amt" db:"gross_profit_amt"`
	DiscountRate          float64 `json:"discount_rate" db:"discount_rate"`
	GrossMarginRate       float64 `json:"gross_margin_rate" db:"gross_margin_rate"`
	CumulativeSellThrough float64 `json:"cumulative_sell_through" db:"cumulative_sell_through"`
}

// InventoryFact has a grain of SKU x period.
type InventoryFact struct {
	SKUID      string  `json:"sku_id" db:"sku_id"`
	Period     string  `json:"period" db:"period"`
	SeasonYear int     `json:"season_year" db:"season_year"`
	Season     string  `json:"season" db:"season"`
	InboundQty float64 `json:"inbound_qty" db:"inbound_qty"`
	TransferIn float64 `json:"transfer_in" db:"transfer_in"`
	SalesQty   float64 `json:"sales_qty" db:"sales_qty"`
	EOPQty     float64 `json:"eop_qty" db:"eop_qty"`
}

// CompetitorDim describes a competing brand.
type CompetitorDim struct {
	CompetitorID string `json:"competitor_id" db:"competitor_id"`
	BrandName    string `json:"brand_name" db:"brand_name"`
	Positioning  string `json:"positioning" db:"positioning"`
}

// CompetitorFact is one brand's category/price-band mix row. Category and
// PriceBand are free labels, joined to our own taxonomy by resolution.
type CompetitorFact struct {
	CompetitorID string  `json:"competitor_id" db:"competitor_id"`
	SeasonYear   int     `json:"season_year" db:"season_year"`
	Season       string  `json:"season" db:"season"`
	Category     string  `json:"category" db:"category"`
	PriceBand    string  `json:"price_band" db:"price_band"`
	AvgPrice     float64 `json:"avg_price" db:"avg_price"`
	SalesAmt     float64 `json:"sales_amt" db:"sales_amt"`
	SKUCount     int     `json:"sku_count" db:"sku_count"`
}

// CompetitorHotSKU is a sampled best seller of a competing brand.
type CompetitorHotSKU struct {
	CompetitorID string  `json:"competitor_id" db:"competitor_id"`
	SKUName      string  `json:"sku_name" db:"sku_name"`
	Category     string  `json:"category" db:"category"`
	Price        float64 `json:"price" db:"price"`
	Color        string  `json:"color" db:"color"`
	SalesAmt     float64 `json:"sales_amt" db:"sales_amt"`
}

// WavePlan is the planned shape of one launch wave.
type WavePlan struct {
	SeasonYear      int     `json:"season_year" db:"season_year"`
	Season          string  `json:"season" db:"season"`
	Wave            string  `json:"wave" db:"wave"`
	PlannedSKUCount int     `json:"planned_sku_count" db:"planned_sku_count"`
	PlannedNewRatio float64 `json:"planned_new_ratio" db:"planned_new_ratio"`
	PlannedSalesAmt float64 `json:"planned_sales_amt" db:"planned_sales_amt"`
}

// WavePlanMix is the planned category share of one wave.
type WavePlanMix struct {
	SeasonYear   int     `json:"season_year" db:"season_year"`
	Season       string  `json:"season" db:"season"`
	Wave         string  `json:"wave" db:"wave"`
	CategoryL1   string  `json:"category_l1" db:"category_l1"`
	PlannedShare float64 `json:"planned_share" db:"planned_share"`
}

// SalesPlan is a season sales target. An empty or "all" region is the
// season total.
type SalesPlan struct {
	SeasonYear      int     `json:"season_year" db:"season_year"`
	Season          string  `json:"season" db:"season"`
	Region          string  `json:"region" db:"region"`
	PlannedSalesAmt float64 `json:"planned_sales_amt" db:"planned_sales_amt"`
}

// IsTotal reports whether the plan row is the season-wide total.
func (p SalesPlan) IsTotal() bool {
	return p.Region == "" || p.Region == "all"
}
