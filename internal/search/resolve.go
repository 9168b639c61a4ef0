package search

import (
	"strings"

	"github.com/arcanaland/tcgoracle/internal/card"
)

// Resolve runs a query against cards. When nothing matches and the query is a
// single bare name, the fuzzy name matcher gets a chance.
func Resolve(cards []*card.Card, query string, aliases *AliasResolver) Result {
	preds := Parse(query, aliases)
	if len(preds) == 0 {
		return Result{}
	}

	matches := Filter(cards, preds)
	if len(matches) > 0 || !isBareName(query, preds) {
		return Result{Cards: matches}
	}

	return FuzzyMatch(cards, query)
}

// IsBareName reports whether query is a plain card name rather than a
// predicate expression.
func IsBareName(query string, aliases *AliasResolver) bool {
	return isBareName(query, Parse(query, aliases))
}

func isBareName(query string, preds []Predicate) bool {
	return !strings.Contains(query, "|") &&
		len(preds) == 1 &&
		!preds[0].Negated &&
		!preds[0].IsComparison()
}
