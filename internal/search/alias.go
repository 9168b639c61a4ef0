package search

import (
	"sort"

	"github.com/arcanaland/tcgoracle/internal/normalize"
)

// AliasResolver maps property synonyms used in queries to the canonical
// property names found on cards.
type AliasResolver struct {
	lookup map[string]string
}

// NewAliasResolver builds a resolver from canonical name -> aliases. Names are
// normalized; every canonical name resolves to itself. When an alias is
// claimed by several canonical names, the alphabetically last one wins.
func NewAliasResolver(aliases map[string][]string) *AliasResolver {
	r := &AliasResolver{lookup: make(map[string]string)}

	canonicals := make([]string, 0, len(aliases))
	for c := range aliases {
		canonicals = append(canonicals, c)
	}
	sort.Strings(canonicals)

	for _, raw := range canonicals {
		canonical := normalize.Normalize(raw)
		if canonical == "" {
			continue
		}
		r.lookup[canonical] = canonical

		for _, a := range aliases[raw] {
			alias := normalize.Normalize(a)
			if alias == "" {
				continue
			}
			r.lookup[alias] = canonical
		}
	}

	return r
}

// Resolve returns the canonical name for an already normalized property, or
// the property itself when no alias is configured. A nil resolver resolves
// nothing.
func (r *AliasResolver) Resolve(prop string) string {
	if r == nil {
		return prop
	}
	if canonical, ok := r.lookup[prop]; ok {
		return canonical
	}
	return prop
}
