//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package taxonomy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UndefinedBandCode is the sentinel band for unparsable or out-of-range
// inputs.
const UndefinedBandCode = "PBX"

// Band is one MSRP bucket, covering [Min, Max). A zero Max is open-ended.
type Band struct {
	Code  string  `mapstructure:"code" json:"code"`
	Label string  `mapstructure:"label" json:"label"`
	Min   float64 `mapstructure:"min" json:"min"`
	Max   float64 `mapstructure:"max" json:"max"`
}

// UndefinedBand is returned when no bucket applies.
var UndefinedBand = Band{Code: UndefinedBandCode, Label: "未定义价格带"}

// Contains reports whether v falls in the band.
func (b Band) Contains(v float64) bool {
	if v < b.Min {
		return false
	}
	return b.Max <= 0 || v < b.Max
}

// DefaultPriceBands returns the standard footwear MSRP buckets.
func DefaultPriceBands() []Band {
	return []Band{
		{Code: "PB1", Label: "199-399", Min: 199, Max: 399},
		{Code: "PB2", Label: "399-599", Min: 399, Max: 599},
		{Code: "PB3", Label: "599-800", Min: 599, Max: 800},
		{Code: "PB4", Label: "800+", Min: 800},
	}
}

// ValidateBands checks that bands are ordered and non-overlapping and that
// only the last one is open-ended.
func ValidateBands(bands []Band) error {
	if len(bands) == 0 {
		return fmt.Errorf("at least one price band is required")
	}
	seen := make(map[string]bool, len(bands))
	for i, b := range bands {
		if b.Code == "" {
			return fmt.Errorf("price band %d: code is required", i)
		}
		if b.Code == UndefinedBandCode {
			return fmt.Errorf("price band %d: code %s is reserved", i, UndefinedBandCode)
		}
		if seen[b.Code] {
			return fmt.Errorf("price band %d: duplicate code %s", i, b.Code)
		}
		seen[b.Code] = true
		if b.Max > 0 && b.Max <= b.Min {
			return fmt.Errorf("price band %s: max must be greater than min", b.Code)
		}
		if b.Max <= 0 && i != len(bands)-1 {
			return fmt.Errorf("price band %s: only the last band may be open-ended", b.Code)
		}
		if i > 0 && b.Min < bands[i-1].Max {
			return fmt.Errorf("price band %s overlaps %s", b.Code, bands[i-1].Code)
		}
	}
	return nil
}

// BandResolver maps legacy band codes or MSRP values to a fixed ordered set
// of bands.
type BandResolver struct {
	bands  []Band
	labels map[string]int
}

// NewBandResolver builds a resolver over bands, which must already be
// validated.
func NewBandResolver(bands []Band) *BandResolver {
	r := &BandResolver{
		bands:  append([]Band(nil), bands...),
		labels: make(map[string]int, len(bands)*3),
	}
	for i, b := range r.bands {
		r.labels[foldBand(b.Code)] = i
		if b.Label != "" {
			r.labels[foldBand(b.Label)] = i
		}
		if b.Max > 0 {
			r.labels[foldBand(formatAmount(b.Min)+"-"+formatAmount(b.Max))] = i
		} else {
			r.labels[foldBand(formatAmount(b.Min)+"+")] = i
			r.labels[foldBand(formatAmount(b.Min)+"以上")] = i
		}
	}
	return r
}

// Bands returns the configured bands in order.
func (r *BandResolver) Bands() []Band {
	return append([]Band(nil), r.bands...)
}

// Codes returns band codes in order, followed by the undefined sentinel.
func (r *BandResolver) Codes() []string {
	out := make([]string, 0, len(r.bands)+1)
	for _, b := range r.bands {
		out = append(out, b.Code)
	}
	return append(out, UndefinedBandCode)
}

// Resolve maps a legacy code, a range label or a numeric string to a band.
// When code is empty or unknown the MSRP is bucketed instead. Anything else
// lands in UndefinedBand.
func (r *BandResolver) Resolve(code string, msrp float64) Band {
	if code != "" {
		if i, ok := r.labels[foldBand(code)]; ok {
			return r.bands[i]
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(code), 64); err == nil {
			return r.ForPrice(v)
		}
	}
	if msrp > 0 {
		return r.ForPrice(msrp)
	}
	return UndefinedBand
}

// ForPrice buckets a price.
func (r *BandResolver) ForPrice(v float64) Band {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return UndefinedBand
	}
	for _, b := range r.bands {
		if b.Contains(v) {
			return b
		}
	}
	return UndefinedBand
}

// Band returns the band with the given code.
func (r *BandResolver) Band(code string) (Band, bool) {
	if code == UndefinedBandCode {
		return UndefinedBand, true
	}
	for _, b := range r.bands {
		if b.Code == code {
			return b, true
		}
	}
	return Band{}, false
}

func foldBand(s string) string {
	s = Fold(s)
	for _, sep := range []string{"~", "至", "到", "—", "–", "元"} {
		s = strings.ReplaceAll(s, sep, "")
	}
	return s
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
