// Package normalize canonicalizes free text so card names, property names and
// query terms can be compared regardless of case, punctuation or spacing.
package normalize

import "strings"

// Normalize lowercases text, turns runs of '_' and '-' into a single space,
// drops everything outside [a-z0-9 ], collapses whitespace and trims.
//
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range strings.ToLower(text) {
		switch {
		case r == ' ' || r == '_' || r == '-':
			if b.Len() > 0 {
				pendingSpace = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}

	return b.String()
}

// CompactKey is Normalize with every space removed, so "Dark Magician" and
// "DarkMagician" share a key.
func CompactKey(text string) string {
	return strings.ReplaceAll(Normalize(text), " ", "")
}
