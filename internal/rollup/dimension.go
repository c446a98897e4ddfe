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
	"fmt"
	"strconv"
	"strings"

	"github.com/pgEdge/pgedge-merchlens/internal/join"
)

// Dimension is a grouping attribute of a joined row.
type Dimension string

// Supported dimensions.
const (
	Region         Dimension = "region"
	Wave           Dimension = "wave"
	CategoryL1     Dimension = "category_l1"
	CategoryL2     Dimension = "category_l2"
	Color          Dimension = "color"
	ChannelType    Dimension = "channel_type"
	PriceBand      Dimension = "price_band"
	Lifecycle      Dimension = "lifecycle"
	CityTier       Dimension = "city_tier"
	StoreFormat    Dimension = "store_format"
	TargetAudience Dimension = "target_audience"
	Platform       Dimension = "platform"
	Scope          Dimension = "scope"
	Season         Dimension = "season"
	SKU            Dimension = "sku"
)

type dimensionSpec struct {
	skuLevel bool
	value    func(*join.Row) string
}

var dimensions = map[Dimension]dimensionSpec{
	Region:         {false, func(r *join.Row) string { return r.Channel.Region }},
	Wave:           {true, func(r *join.Row) string { return r.SKU.LaunchWave }},
	CategoryL1:     {true, func(r *join.Row) string { return r.Category.L1 }},
	CategoryL2:     {true, func(r *join.Row) string { return r.Category.L2 }},
	Color:          {true, func(r *join.Row) string { return r.SKU.Color }},
	ChannelType:    {false, func(r *join.Row) string { return r.Channel.ChannelType }},
	PriceBand:      {true, func(r *join.Row) string { return r.Band.Code }},
	Lifecycle:      {true, func(r *join.Row) string { return r.SKU.Lifecycle }},
	CityTier:       {false, func(r *join.Row) string { return r.Channel.CityTier }},
	StoreFormat:    {false, func(r *join.Row) string { return r.Channel.StoreFormat }},
	TargetAudience: {true, func(r *join.Row) string { return r.SKU.TargetAudience }},
	Platform:       {false, func(r *join.Row) string { return r.Channel.Platform }},
	Scope: {false, func(r *join.Row) string {
		if r.Channel.IsOnline {
			return join.ScopeOnline
		}
		return join.ScopeOffline
	}},
	Season: {true, func(r *join.Row) string { return strconv.Itoa(r.SeasonYear) + r.Season }},
	SKU:    {true, func(r *join.Row) string { return r.SKUID }},
}

// Dimensions lists every supported dimension in declaration order.
var Dimensions = []Dimension{
	Region, Wave, CategoryL1, CategoryL2, Color, ChannelType, PriceBand,
	Lifecycle, CityTier, StoreFormat, TargetAudience, Platform, Scope,
	Season, SKU,
}

// ParseDimension validates a dimension name.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.TrimSpace(s))
	if _, ok := dimensions[d]; !ok {
		return "", fmt.Errorf("unknown dimension: %s", s)
	}
	return d, nil
}

// ParseDimensions validates a list of dimension names.
func ParseDimensions(names []string) ([]Dimension, error) {
	out := make([]Dimension, 0, len(names))
	for _, n := range names {
		d, err := ParseDimension(n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Value extracts the dimension value of a row.
func (d Dimension) Value(r *join.Row) string {
	spec, ok := dimensions[d]
	if !ok {
		return ""
	}
	return spec.value(r)
}

// SKULevel reports whether the dimension is independent of the channel.
func (d Dimension) SKULevel() bool {
	return dimensions[d].skuLevel
}

func keyOf(keys []Dimension, r *join.Row) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Value(r)
	}
	return out
}

// LabelSeparator joins composite key parts in group labels.
const LabelSeparator = " × "

// TotalLabel labels the single group of an aggregation with no keys.
const TotalLabel = "合计"

func labelOf(key []string) string {
	if len(key) == 0 {
		return TotalLabel
	}
	return strings.Join(key, LabelSeparator)
}

func mapKey(key []string) string {
	return strings.Join(key, "\x00")
}
