//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package join

import "strconv"

// Clause is one independent filter condition.
//
// SKULevel clauses only look at the SKU side of a row (and its period), so
// they also apply to facts that carry no channel, such as inventory.
type Clause struct {
	Name     string
	SKULevel bool
	Match    func(*Row) bool
}

// Predicate is a conjunction of clauses. The empty predicate matches every
// row.
type Predicate []Clause

// Match reports whether every clause accepts the row.
func (p Predicate) Match(r *Row) bool {
	for _, c := range p {
		if !c.Match(r) {
			return false
		}
	}
	return true
}

// SKULevel returns only the clauses that do not depend on the channel.
func (p Predicate) SKULevel() Predicate {
	out := make(Predicate, 0, len(p))
	for _, c := range p {
		if c.SKULevel {
			out = append(out, c)
		}
	}
	return out
}

// Names lists clause names in evaluation order.
func (p Predicate) Names() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Name
	}
	return out
}

// Predicate composes the clauses for every non-All dimension, in a fixed
// order. Category and price band match the resolved values, not the raw
// labels carried on the SKU.
func (f Filter) Predicate() Predicate {
	var p Predicate
	add := func(name, want string, skuLevel bool, get func(*Row) string) {
		if want == All {
			return
		}
		p = append(p, Clause{
			Name:     name,
			SKULevel: skuLevel,
			Match:    func(r *Row) bool { return get(r) == want },
		})
	}

	add("season_year", f.SeasonYear, true, func(r *Row) string { return strconv.Itoa(r.SeasonYear) })
	add("season", f.Season, true, func(r *Row) string { return r.Season })
	add("wave", f.Wave, true, func(r *Row) string { return r.SKU.LaunchWave })
	add("category_id", f.CategoryID, true, func(r *Row) string { return r.Category.L1 })
	add("sub_category", f.SubCategory, true, func(r *Row) string { return r.Category.L2 })
	add("channel_type", f.ChannelType, false, func(r *Row) string { return r.Channel.ChannelType })
	add("price_band", f.PriceBand, true, func(r *Row) string { return r.Band.Code })
	add("lifecycle", f.Lifecycle, true, func(r *Row) string { return r.SKU.Lifecycle })
	add("region", f.Region, false, func(r *Row) string { return r.Channel.Region })
	add("city_tier", f.CityTier, false, func(r *Row) string { return r.Channel.CityTier })
	add("store_format", f.StoreFormat, false, func(r *Row) string { return r.Channel.StoreFormat })
	add("target_audience", f.TargetAudience, true, func(r *Row) string { return r.SKU.TargetAudience })
	add("color", f.Color, true, func(r *Row) string { return r.SKU.Color })
	add("scope", f.Scope, false, scopeOf)
	add("platform", f.Platform, false, func(r *Row) string { return r.Channel.Platform })
	return p
}

func scopeOf(r *Row) string {
	if r.Channel.IsOnline {
		return ScopeOnline
	}
	return ScopeOffline
}
