//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package taxonomy

import "github.com/pgEdge/pgedge-merchlens/internal/snapshot"

// AuditReport counts best-effort fallbacks over a SKU table.
type AuditReport struct {
	Total        int            `json:"total"`
	L1Fallbacks  int            `json:"l1_fallbacks"`
	L2Fallbacks  int            `json:"l2_fallbacks"`
	BandUnknown  int            `json:"band_unknown"`
	ByRule       map[string]int `json:"by_rule"`
	UnmatchedIDs []string       `json:"unmatched_ids"`
}

// Input builds the resolver input for a SKU.
func Input(s snapshot.SKU) CategoryInput {
	return CategoryInput{
		Raw:         s.CategoryID,
		L2:          s.SubCategory,
		ProductLine: s.ProductLine,
		SKUName:     s.SKUName,
	}
}

// Audit resolves every SKU and reports where fallbacks were used.
// UnmatchedIDs lists SKUs whose L1 fell back to the default, in input order.
func Audit(skus []snapshot.SKU, r *Resolver, bands *BandResolver) AuditReport {
	rep := AuditReport{Total: len(skus), ByRule: make(map[string]int)}
	for _, s := range skus {
		cat := r.Resolve(Input(s))
		rep.ByRule[cat.Rule]++
		if !cat.Matched {
			rep.L1Fallbacks++
			rep.UnmatchedIDs = append(rep.UnmatchedIDs, s.SKUID)
		}
		if !cat.L2Matched {
			rep.L2Fallbacks++
		}
		if bands != nil && bands.Resolve(s.PriceBand, s.MSRP).Code == UndefinedBandCode {
			rep.BandUnknown++
		}
	}
	return rep
}
