// Package search implements the card query language, alias resolution and
// fuzzy name lookup over a card.Table snapshot.
//
// A query is a list of predicates separated by '|'. Every predicate filters
// the result of the previous one, so a query is a plain conjunction:
//
//	type:spell|atk>=1500|!dragon
//
// A predicate prefixed with '!' is negated. A predicate is either a
// comparison "property OP value", with OP one of ':', '=', '<', '>', '<=',
// '>=', or a bare term matched against the card name.
//
// Note that ':' and '=' test containment, not equality: "type:spell" matches
// "Quick-Play Spell". Existing queries rely on this.
package search

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/arcanaland/tcgoracle/internal/card"
	"github.com/arcanaland/tcgoracle/internal/normalize"
)

// Operator is a comparison operator.
type Operator string

const (
	OpContains  Operator = "="
	OpLess      Operator = "<"
	OpGreater   Operator = ">"
	OpLessEq    Operator = "<="
	OpGreaterEq Operator = ">="
)

var comparisonPattern = regexp.MustCompile(`^([^:<>=]+)\s*(>=|<=|>|<|:|=)\s*(.+)$`)

// Predicate is one clause of a query.
type Predicate struct {
	Negated bool

	// Comparison fields. Property is normalized and alias-resolved.
	Property string
	Op       Operator
	Value    string // normalized for OpContains, trimmed raw text otherwise

	// Bare term fields.
	Term    string // normalized term
	TermKey string // compact term key
}

// IsComparison reports whether p compares a property rather than the name.
func (p Predicate) IsComparison() bool {
	return p.Op != ""
}

// Parse splits a query into predicates. Empty clauses are skipped.
func Parse(query string, aliases *AliasResolver) []Predicate {
	var preds []Predicate

	for _, part := range strings.Split(query, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var p Predicate
		if strings.HasPrefix(part, "!") {
			p.Negated = true
			part = part[1:]
		}

		if m := comparisonPattern.FindStringSubmatch(part); m != nil {
			p.Property = aliases.Resolve(normalize.Normalize(m[1]))
			p.Op = Operator(m[2])
			if p.Op == ":" {
				p.Op = OpContains
			}
			if p.Op == OpContains {
				p.Value = normalize.Normalize(m[3])
			} else {
				p.Value = strings.TrimSpace(m[3])
			}
		} else {
			p.Term = normalize.Normalize(part)
			p.TermKey = normalize.CompactKey(part)
		}

		preds = append(preds, p)
	}

	return preds
}

// Match reports whether c satisfies p, negation included.
func (p Predicate) Match(c *card.Card) bool {
	return p.matches(c) != p.Negated
}

func (p Predicate) matches(c *card.Card) bool {
	if !p.IsComparison() {
		return strings.Contains(c.NormalizedName, p.Term) ||
			strings.Contains(c.NameKey, p.TermKey)
	}

	raw, ok := c.Field(p.Property)
	if !ok {
		return false
	}

	if p.Op == OpContains {
		return strings.Contains(normalize.Normalize(card.StringValue(raw)), p.Value)
	}

	return compareNumeric(raw, p.Op, p.Value)
}

// Filter applies the predicates left to right, keeping card order. The input
// slice is not modified.
func Filter(cards []*card.Card, preds []Predicate) []*card.Card {
	results := append([]*card.Card(nil), cards...)
	for _, p := range preds {
		kept := results[:0]
		for _, c := range results {
			if p.Match(c) {
				kept = append(kept, c)
			}
		}
		results = kept
	}
	return results
}

// Evaluate parses query and filters cards with it.
func Evaluate(cards []*card.Card, query string, aliases *AliasResolver) []*card.Card {
	return Filter(cards, Parse(query, aliases))
}

func compareNumeric(raw any, op Operator, target string) bool {
	num, ok := toNumber(raw)
	if !ok {
		return false
	}
	tgt, ok := toNumber(target)
	if !ok {
		return false
	}

	switch op {
	case OpLess:
		return num < tgt
	case OpGreater:
		return num > tgt
	case OpLessEq:
		return num <= tgt
	case OpGreaterEq:
		return num >= tgt
	default:
		return false
	}
}

func toNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, !math.IsNaN(val)
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
