package search

import (
	"github.com/arcanaland/tcgoracle/internal/card"
	"github.com/arcanaland/tcgoracle/internal/normalize"
)

// MaxFuzzyDistance is the largest edit distance accepted as a fuzzy hit.
const MaxFuzzyDistance = 2

// Result is the outcome of a card lookup.
type Result struct {
	Cards      []*card.Card
	Fuzzy      bool   // Cards came from an approximate name match
	Suggestion string // Display name of the best approximate match
}

// FuzzyMatch looks a single card name up. Cards whose name key equals the
// query key are returned as an exact match. Otherwise the card with the
// smallest Levenshtein distance wins (the first one on ties); if it is within
// MaxFuzzyDistance, every card sharing its name key is returned.
func FuzzyMatch(cards []*card.Card, query string) Result {
	key := normalize.CompactKey(query)

	var exact []*card.Card
	for _, c := range cards {
		if c.NameKey == key {
			exact = append(exact, c)
		}
	}
	if len(exact) > 0 {
		return Result{Cards: exact}
	}

	var (
		lev       levenshtein
		best      *card.Card
		bestScore = -1
	)
	for _, c := range cards {
		// The distance is at least the length difference.
		if bestScore >= 0 && abs(len(c.NameKey)-len(key)) >= bestScore {
			continue
		}
		d := lev.distance(key, c.NameKey)
		if bestScore < 0 || d < bestScore {
			best, bestScore = c, d
		}
	}

	if best == nil || bestScore > MaxFuzzyDistance {
		return Result{}
	}

	var matches []*card.Card
	for _, c := range cards {
		if c.NameKey == best.NameKey {
			matches = append(matches, c)
		}
	}
	return Result{Cards: matches, Fuzzy: true, Suggestion: best.Name}
}

// Levenshtein returns the edit distance between a and b, counting insertions,
// deletions and substitutions of single runes.
func Levenshtein(a, b string) int {
	var lev levenshtein
	return lev.distance(a, b)
}

// levenshtein keeps its two DP rows between calls so a scan over the catalog
// allocates only when a longer name shows up.
type levenshtein struct {
	prev, curr []int
	ra, rb     []rune
}

func (l *levenshtein) distance(a, b string) int {
	l.ra = append(l.ra[:0], []rune(a)...)
	l.rb = append(l.rb[:0], []rune(b)...)
	ra, rb := l.ra, l.rb

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	n := len(rb) + 1
	if cap(l.prev) < n {
		l.prev = make([]int, n)
		l.curr = make([]int, n)
	}
	prev, curr := l.prev[:n], l.curr[:n]

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
