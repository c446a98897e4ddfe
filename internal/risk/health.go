//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package risk

import "fmt"

// Status is a summary banner state.
type Status string

// Statuses.
const (
	Good   Status = "good"
	Warn   Status = "warn"
	Danger Status = "danger"
)

// Strength is the adjective form of a Status.
type Strength string

// Strengths.
const (
	Strong   Strength = "strong"
	Moderate Strength = "moderate"
	Weak     Strength = "weak"
)

// Strength maps a status to its strength.
func (s Status) Strength() Strength {
	switch s {
	case Good:
		return Strong
	case Warn:
		return Moderate
	}
	return Weak
}

// Band holds the target and warning levels of one KPI.
// HigherIsBetter selects the comparison direction.
type Band struct {
	Target         float64 `mapstructure:"target"`
	Warning        float64 `mapstructure:"warning"`
	HigherIsBetter bool    `mapstructure:"higher_is_better"`
}

// Classify compares value with the band. Reaching the target is inclusive:
// for higher-is-better KPIs value >= Target is Good, value >= Warning is
// Warn, anything else is Danger. Lower-is-better KPIs mirror this.
func (b Band) Classify(value float64) Status {
	if b.HigherIsBetter {
		switch {
		case value >= b.Target:
			return Good
		case value >= b.Warning:
			return Warn
		}
		return Danger
	}
	switch {
	case value <= b.Target:
		return Good
	case value <= b.Warning:
		return Warn
	}
	return Danger
}

// Validate checks that Target and Warning are ordered for the direction.
func (b Band) Validate() error {
	if b.HigherIsBetter && b.Warning > b.Target {
		return fmt.Errorf("warning %v must not exceed target %v", b.Warning, b.Target)
	}
	if !b.HigherIsBetter && b.Warning < b.Target {
		return fmt.Errorf("warning %v must not be below target %v", b.Warning, b.Target)
	}
	return nil
}

// Health holds the bands of every summary KPI.
type Health struct {
	SellThrough   Band `mapstructure:"sell_through"`
	Margin        Band `mapstructure:"margin"`
	FillRate      Band `mapstructure:"fill_rate"`
	Achievement   Band `mapstructure:"achievement"`
	DiscountDepth Band `mapstructure:"discount_depth"`
	WOS           Band `mapstructure:"wos"`
}

// DefaultHealth returns the standard banner bands.
func DefaultHealth() Health {
	return Health{
		SellThrough:   Band{Target: 0.75, Warning: 0.60, HigherIsBetter: true},
		Margin:        Band{Target: 0.42, Warning: 0.38, HigherIsBetter: true},
		FillRate:      Band{Target: 0.95, Warning: 0.90, HigherIsBetter: true},
		Achievement:   Band{Target: 1.00, Warning: 0.90, HigherIsBetter: true},
		DiscountDepth: Band{Target: 0.15, Warning: 0.20},
		WOS:           Band{Target: 8, Warning: 12},
	}
}

// Validate checks every band.
func (h Health) Validate() error {
	bands := []struct {
		name string
		band Band
	}{
		{"sell_through", h.SellThrough},
		{"margin", h.Margin},
		{"fill_rate", h.FillRate},
		{"achievement", h.Achievement},
		{"discount_depth", h.DiscountDepth},
		{"wos", h.WOS},
	}
	for _, b := range bands {
		if err := b.band.Validate(); err != nil {
			return fmt.Errorf("health.%s: %w", b.name, err)
		}
	}
	return nil
}
