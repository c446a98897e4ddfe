//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package join

import (
	"fmt"
	"strconv"
	"strings"
)

// Comparison modes that derive a prior period.
const (
	ModeMoM = "mom"
	ModeYoY = "yoy"
)

// Seasons in calendar order.
var Seasons = []string{"Q1", "Q2", "Q3", "Q4"}

// Period is a season within a year.
type Period struct {
	Year   int
	Season string
}

func (p Period) String() string {
	return fmt.Sprintf("%d%s", p.Year, p.Season)
}

// CurrentPeriod parses the filter's season_year and season. It returns
// ok=false when either is All or not a recognized value.
func (f Filter) CurrentPeriod() (Period, bool) {
	if f.SeasonYear == All || f.Season == All {
		return Period{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(f.SeasonYear))
	if err != nil {
		return Period{}, false
	}
	if seasonIndex(f.Season) < 0 {
		return Period{}, false
	}
	return Period{Year: year, Season: f.Season}, true
}

// PriorPeriod derives the comparison period for mom or yoy. For mom the
// previous season is used, wrapping Q1 to Q4 of the prior year; for yoy the
// same season of the prior year.
func PriorPeriod(year, season, mode string) (Period, bool) {
	cur, ok := Filter{SeasonYear: year, Season: season}.CurrentPeriod()
	if !ok {
		return Period{}, false
	}

	switch mode {
	case ModeYoY:
		return Period{Year: cur.Year - 1, Season: cur.Season}, true
	case ModeMoM:
		i := seasonIndex(cur.Season)
		if i == 0 {
			return Period{Year: cur.Year - 1, Season: Seasons[len(Seasons)-1]}, true
		}
		return Period{Year: cur.Year, Season: Seasons[i-1]}, true
	}
	return Period{}, false
}

func seasonIndex(s string) int {
	for i, v := range Seasons {
		if v == s {
			return i
		}
	}
	return -1
}
