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
	"math"
	"testing"
)

func TestBandResolve(t *testing.T) {
	r := NewBandResolver(DefaultPriceBands())

	tests := []struct {
		name string
		code string
		msrp float64
		want string
	}{
		{"code", "PB2", 0, "PB2"},
		{"lower-case code", "pb3", 0, "PB3"},
		{"range label", "399-599", 0, "PB2"},
		{"tilde range", "399~599", 0, "PB2"},
		{"chinese range", "599至800", 0, "PB3"},
		{"open label", "800+", 0, "PB4"},
		{"open label text", "800以上", 0, "PB4"},
		{"numeric code", "650", 0, "PB3"},
		{"msrp bucket", "", 450, "PB2"},
		{"lower bound inclusive", "", 399, "PB2"},
		{"first band", "", 199, "PB1"},
		{"open-ended top", "", 5000, "PB4"},
		{"below range", "", 150, "PBX"},
		{"no data", "", 0, "PBX"},
		{"garbage code", "garbage", 0, "PBX"},
		{"garbage code with msrp", "garbage", 900, "PB4"},
		{"nan", "", math.NaN(), "PBX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.code, tt.msrp); got.Code != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got.Code)
			}
		})
	}
}

func TestUndefinedBandLabel(t *testing.T) {
	r := NewBandResolver(DefaultPriceBands())
	got := r.Resolve("", -1)
	if got != UndefinedBand {
		t.Errorf("Expected undefined band, got %+v", got)
	}
	if got.Label != "未定义价格带" {
		t.Errorf("Expected undefined label, got %q", got.Label)
	}
}

func TestBandCodes(t *testing.T) {
	r := NewBandResolver(DefaultPriceBands())
	codes := r.Codes()
	want := []string{"PB1", "PB2", "PB3", "PB4", "PBX"}
	if len(codes) != len(want) {
		t.Fatalf("Expected %d codes, got %d", len(want), len(codes))
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("Expected code %d to be %s, got %s", i, want[i], codes[i])
		}
	}
	if _, ok := r.Band("PBX"); !ok {
		t.Error("Expected PBX lookup to succeed")
	}
	if _, ok := r.Band("PB7"); ok {
		t.Error("Expected PB7 lookup to fail")
	}
}

func TestValidateBands(t *testing.T) {
	tests := []struct {
		name    string
		bands   []Band
		wantErr bool
	}{
		{"defaults", DefaultPriceBands(), false},
		{"empty", nil, true},
		{"missing code", []Band{{Min: 1, Max: 2}}, true},
		{"reserved code", []Band{{Code: "PBX", Min: 1}}, true},
		{"duplicate", []Band{{Code: "A", Min: 1, Max: 2}, {Code: "A", Min: 2}}, true},
		{"inverted", []Band{{Code: "A", Min: 5, Max: 2}}, true},
		{"open-ended middle", []Band{{Code: "A", Min: 1}, {Code: "B", Min: 5, Max: 9}}, true},
		{"overlap", []Band{{Code: "A", Min: 1, Max: 5}, {Code: "B", Min: 4}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBands(tt.bands)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
