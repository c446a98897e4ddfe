//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package format renders numbers for reports, narratives and exports.
// Rounding goes through decimal so that the same value always renders the
// same text.
package format

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	hundred     = decimal.NewFromInt(100)
	tenThousand = decimal.NewFromInt(10000)
)

func dec(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// Money renders an amount with two decimals.
func Money(v float64) string {
	return dec(v).StringFixed(2)
}

// Amount renders an amount for narrative text: whole units below ten
// thousand, otherwise in 万 with two decimals.
func Amount(v float64) string {
	d := dec(v)
	if d.Abs().LessThan(tenThousand) {
		return d.StringFixed(0)
	}
	return d.Div(tenThousand).StringFixed(2) + "万"
}

// Fixed renders v with the given number of decimals.
func Fixed(v float64, places int32) string {
	return dec(v).StringFixed(places)
}

// Percent renders a ratio as a percentage with one decimal.
func Percent(v float64) string {
	return dec(v).Mul(hundred).StringFixed(1) + "%"
}

// SignedPercent renders a relative change with an explicit sign.
func SignedPercent(v float64) string {
	return sign(dec(v)) + Percent(v)
}

// PP renders a percentage-point change with an explicit sign.
func PP(v float64) string {
	d := dec(v)
	return sign(d) + d.StringFixed(1) + "pp"
}

// Optional renders a possibly undefined value, or "-" when nil.
func Optional(v *float64, render func(float64) string) string {
	if v == nil {
		return "-"
	}
	return render(*v)
}

func sign(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+"
	}
	return ""
}
