//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package join joins fact rows to their SKU and channel dimensions and
// applies filter predicates.
package join

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// All is the filter sentinel that matches every value.
const All = "all"

// Scope values.
const (
	ScopeOnline  = "online"
	ScopeOffline = "offline"
)

// ErrMissingFilterKey is returned by ParseFilter when a required key is
// absent. Absence is not the same as "all".
var ErrMissingFilterKey = errors.New("missing filter key")

// Filter enumerates every recognized filter dimension. Each field is either
// All or a concrete value matched exactly. An empty string is a concrete
// value, not a wildcard.
type Filter struct {
	SeasonYear     string `mapstructure:"season_year" json:"season_year"`
	Season         string `mapstructure:"season" json:"season"`
	Wave           string `mapstructure:"wave" json:"wave"`
	CategoryID     string `mapstructure:"category_id" json:"category_id"`
	SubCategory    string `mapstructure:"sub_category" json:"sub_category"`
	ChannelType    string `mapstructure:"channel_type" json:"channel_type"`
	PriceBand      string `mapstructure:"price_band" json:"price_band"`
	Lifecycle      string `mapstructure:"lifecycle" json:"lifecycle"`
	Region         string `mapstructure:"region" json:"region"`
	CityTier       string `mapstructure:"city_tier" json:"city_tier"`
	StoreFormat    string `mapstructure:"store_format" json:"store_format"`
	TargetAudience string `mapstructure:"target_audience" json:"target_audience"`
	Color          string `mapstructure:"color" json:"color"`
	Scope          string `mapstructure:"scope" json:"scope"`
	Platform       string `mapstructure:"platform" json:"platform"`
}

// RequiredKeys are the filter keys every caller must supply.
var RequiredKeys = []string{
	"season_year", "season", "wave", "category_id", "sub_category",
	"channel_type", "price_band", "lifecycle", "region", "city_tier",
	"store_format", "target_audience", "color",
}

// OptionalKeys default to All when absent.
var OptionalKeys = []string{"scope", "platform"}

// AllFilter returns a filter with every dimension set to All.
func AllFilter() Filter {
	return Filter{
		SeasonYear:     All,
		Season:         All,
		Wave:           All,
		CategoryID:     All,
		SubCategory:    All,
		ChannelType:    All,
		PriceBand:      All,
		Lifecycle:      All,
		Region:         All,
		CityTier:       All,
		StoreFormat:    All,
		TargetAudience: All,
		Color:          All,
		Scope:          All,
		Platform:       All,
	}
}

// ParseFilter builds a filter from a key/value map. Every required key must
// be present; unknown keys are rejected.
func ParseFilter(m map[string]string) (Filter, error) {
	var missing []string
	for _, k := range RequiredKeys {
		if _, ok := m[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return Filter{}, fmt.Errorf("%w: %s", ErrMissingFilterKey, strings.Join(missing, ", "))
	}

	f := AllFilter()
	for k, v := range m {
		p := f.field(k)
		if p == nil {
			return Filter{}, fmt.Errorf("unknown filter key: %s", k)
		}
		*p = v
	}
	return f, nil
}

// Map returns the filter as a key/value map covering every key.
func (f Filter) Map() map[string]string {
	out := make(map[string]string, len(RequiredKeys)+len(OptionalKeys))
	for _, k := range append(append([]string(nil), RequiredKeys...), OptionalKeys...) {
		out[k] = *f.field(k)
	}
	return out
}

// Set assigns one dimension by key.
func (f *Filter) Set(key, value string) error {
	p := f.field(key)
	if p == nil {
		return fmt.Errorf("unknown filter key: %s", key)
	}
	*p = value
	return nil
}

// Summary renders the non-All dimensions as "key=value" pairs sorted by key,
// or "all" when nothing is filtered.
func (f Filter) Summary() string {
	var parts []string
	for k, v := range f.Map() {
		if v != All {
			parts = append(parts, k+"="+v)
		}
	}
	if len(parts) == 0 {
		return All
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// WithPeriod returns a copy of f with season_year and season replaced.
func (f Filter) WithPeriod(p Period) Filter {
	f.SeasonYear = strconv.Itoa(p.Year)
	f.Season = p.Season
	return f
}

func (f *Filter) field(key string) *string {
	switch key {
	case "season_year":
		return &f.SeasonYear
	case "season":
		return &f.Season
	case "wave":
		return &f.Wave
	case "category_id":
		return &f.CategoryID
	case "sub_category":
		return &f.SubCategory
	case "channel_type":
		return &f.ChannelType
	case "price_band":
		return &f.PriceBand
	case "lifecycle":
		return &f.Lifecycle
	case "region":
		return &f.Region
	case "city_tier":
		return &f.CityTier
	case "store_format":
		return &f.StoreFormat
	case "target_audience":
		return &f.TargetAudience
	case "color":
		return &f.Color
	case "scope":
		return &f.Scope
	case "platform":
		return &f.Platform
	}
	return nil
}
