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
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Fold canonicalizes a label for matching: NFKC, full-width to half-width,
// lower case, and whitespace, hyphens and underscores removed.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = width.Fold.String(norm.NFKC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// contains reports whether needle (already folded) occurs in haystack
// (already folded). Empty needles never match.
func contains(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}
