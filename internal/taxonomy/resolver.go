//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package taxonomy

import "unicode/utf8"

// CategoryInput is everything known about an item's category.
type CategoryInput struct {
	Raw         string // raw or legacy L1 label
	L2          string // explicit L2 label, may be empty
	ProductLine string
	SKUName     string
}

// Category is a resolved position in the canonical hierarchy.
//
// Matched is false when the L1 came from the configured default. L2Matched
// is false when the L2 is the L1's default entry. Neither is an error; both
// exist for offline data-quality review.
type Category struct {
	L1        string `json:"category_l1"`
	L2        string `json:"category_l2"`
	Matched   bool   `json:"matched"`
	L2Matched bool   `json:"l2_matched"`
	Rule      string `json:"rule"`
}

// Resolution rules, in evaluation order.
const (
	RuleExplicitL2  = "explicit_l2"
	RuleL1Label     = "l1_label"
	RuleKeyword     = "keyword"
	RuleProductLine = "product_line"
	RuleDefault     = "default"
)

type term struct {
	folded string
	target string
}

type l1Node struct {
	label    string
	l2       []string
	allowed  map[string]string // folded L2 -> canonical L2
	synonyms []term            // folded synonym -> canonical L2, ordered
}

// Resolver is an immutable lookup structure built from a Taxonomy.
type Resolver struct {
	order        []string
	nodes        map[string]*l1Node
	l2Parent     map[string]string // folded L2 -> L1
	l1Labels     map[string]string
	keywords     []term
	productLines []term
	defaultL1    string
}

// NewResolver builds the lookup maps once. A default L1 that is not part of
// the taxonomy is added as an empty node so that fallbacks stay canonical.
func NewResolver(t Taxonomy) *Resolver {
	r := &Resolver{
		nodes:     make(map[string]*l1Node, len(t.Nodes)),
		l2Parent:  make(map[string]string),
		l1Labels:  make(map[string]string),
		defaultL1: t.DefaultL1,
	}
	if r.defaultL1 == "" {
		r.defaultL1 = DefaultL1
	}

	for _, n := range t.Nodes {
		if _, dup := r.nodes[n.L1]; dup {
			continue
		}
		node := &l1Node{label: n.L1, allowed: make(map[string]string)}
		r.nodes[n.L1] = node
		r.order = append(r.order, n.L1)

		r.addL1Label(n.L1, n.L1)
		for _, a := range n.Aliases {
			r.addL1Label(a, n.L1)
		}

		for _, l2 := range n.L2 {
			f := Fold(l2)
			if f == "" {
				continue
			}
			if _, ok := node.allowed[f]; ok {
				continue
			}
			node.l2 = append(node.l2, l2)
			node.allowed[f] = l2
			node.synonyms = append(node.synonyms, term{folded: f, target: l2})
			if _, taken := r.l2Parent[f]; !taken {
				r.l2Parent[f] = n.L1
			}
			r.keywords = append(r.keywords, term{folded: f, target: n.L1})
		}
		for _, syn := range n.L2Synonyms {
			if _, ok := node.allowed[Fold(syn.Label)]; !ok {
				continue
			}
			for _, s := range syn.Terms {
				if f := Fold(s); f != "" {
					node.synonyms = append(node.synonyms, term{folded: f, target: syn.Label})
				}
			}
		}
		for _, k := range n.Keywords {
			if f := Fold(k); f != "" {
				r.keywords = append(r.keywords, term{folded: f, target: n.L1})
			}
		}
	}

	if _, ok := r.nodes[r.defaultL1]; !ok {
		r.nodes[r.defaultL1] = &l1Node{label: r.defaultL1, allowed: map[string]string{}}
		r.order = append(r.order, r.defaultL1)
	}

	for _, pl := range t.ProductLines {
		if _, ok := r.nodes[pl.L1]; !ok {
			continue
		}
		if f := Fold(pl.Term); f != "" {
			r.productLines = append(r.productLines, term{folded: f, target: pl.L1})
		}
	}
	return r
}

func (r *Resolver) addL1Label(label, l1 string) {
	f := Fold(label)
	if f == "" {
		return
	}
	if _, taken := r.l1Labels[f]; !taken {
		r.l1Labels[f] = l1
	}
}

// DefaultL1 returns the fallback L1.
func (r *Resolver) DefaultL1() string {
	return r.defaultL1
}

// L1Labels returns canonical L1 labels in taxonomy order.
func (r *Resolver) L1Labels() []string {
	return append([]string(nil), r.order...)
}

// L2Labels returns the allowed L2 labels of an L1, default first.
func (r *Resolver) L2Labels(l1 string) []string {
	n, ok := r.nodes[l1]
	if !ok {
		return nil
	}
	return append([]string(nil), n.l2...)
}

// Resolve maps a category input to the canonical hierarchy. The first
// matching rule wins:
//
//	explicit_l2   explicit L2 found in the taxonomy → its parent L1
//	l1_label      raw text equals a canonical L1 or one of its aliases
//	keyword       raw text, then SKU name, contains an L1 keyword
//	product_line  product line contains a product-line alias
//	default       configured default L1, Matched=false
func (r *Resolver) Resolve(in CategoryInput) Category {
	raw := Fold(in.Raw)
	l2 := Fold(in.L2)
	name := Fold(in.SKUName)

	l1, rule := r.resolveL1(raw, l2, name, Fold(in.ProductLine))
	cat := Category{L1: l1, Rule: rule, Matched: rule != RuleDefault}
	cat.L2, cat.L2Matched = r.resolveL2(l1, l2, raw, name)
	return cat
}

func (r *Resolver) resolveL1(raw, l2, name, productLine string) (string, string) {
	if l2 != "" {
		if parent, ok := r.l2Parent[l2]; ok {
			return parent, RuleExplicitL2
		}
	}
	if raw != "" {
		if l1, ok := r.l1Labels[raw]; ok {
			return l1, RuleL1Label
		}
	}
	for _, text := range []string{raw, name} {
		if l1, ok := longestMatch(r.keywords, text); ok {
			return l1, RuleKeyword
		}
	}
	if l1, ok := longestMatch(r.productLines, productLine); ok {
		return l1, RuleProductLine
	}
	return r.defaultL1, RuleDefault
}

func (r *Resolver) resolveL2(l1, l2, raw, name string) (string, bool) {
	node := r.nodes[l1]
	if len(node.l2) == 0 {
		return "", false
	}
	if canonical, ok := node.allowed[l2]; ok {
		return canonical, true
	}
	for _, text := range []string{l2, raw, name} {
		if canonical, ok := longestMatch(node.synonyms, text); ok {
			return canonical, true
		}
	}
	return node.l2[0], false
}

// longestMatch returns the target of the longest term, counted in runes,
// contained in text. Ties go to the term listed first.
func longestMatch(terms []term, text string) (string, bool) {
	if text == "" {
		return "", false
	}
	best, bestLen := -1, 0
	for i, t := range terms {
		if !contains(text, t.folded) {
			continue
		}
		if n := utf8.RuneCountInString(t.folded); best < 0 || n > bestLen {
			best, bestLen = i, n
		}
	}
	if best < 0 {
		return "", false
	}
	return terms[best].target, true
}
