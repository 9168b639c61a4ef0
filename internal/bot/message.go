// Package bot turns chat messages into plain-text replies: bracketed card
// lookups like "[Dark Magician]" or "[type:spell|atk>2000]" and deck requests
// like "[deck: ABC123]". It knows nothing about the chat platform itself.
package bot

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Kind says what a message asks for.
type Kind int

const (
	NoRequest Kind = iota
	DeckRequest
	CardRequest
)

func (k Kind) String() string {
	switch k {
	case DeckRequest:
		return "deck"
	case CardRequest:
		return "card"
	default:
		return "none"
	}
}

// Request is a parsed chat message.
type Request struct {
	Kind Kind

	// DeckCode is the deck code, extracted from a share URL when one was
	// pasted. DeckGame is the game named in that URL, if any.
	DeckCode string
	DeckGame string

	// Query is the text between the brackets of a card lookup.
	Query string
}

var (
	deckPattern     = regexp2.MustCompile(`\[deck:\s*(.+?)\]`, regexp2.IgnoreCase)
	deckParamRe     = regexp2.MustCompile(`[?&]deck=([A-Za-z0-9_-]+)`, regexp2.IgnoreCase)
	deckPathRe      = regexp2.MustCompile(`/deck/([A-Za-z0-9_-]+)`, regexp2.IgnoreCase)
	gameParamRe     = regexp2.MustCompile(`[?&]game=([A-Za-z0-9_-]+)`, regexp2.IgnoreCase)
	cardQueryRe     = regexp2.MustCompile(`(?<!\[)\[(.+?)\](?!\])(?!\()`, regexp2.None)
	deckCodePattern = regexp2.MustCompile(`^[A-Za-z0-9_-]+$`, regexp2.None)
)

// firstGroup returns the first capture group of re's first match in s.
func firstGroup(re *regexp2.Regexp, s string) (string, bool) {
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return "", false
	}
	return m.GroupByNumber(1).String(), true
}

// ParseMessage finds the request in a chat message. A deck request wins over
// a card lookup. Brackets followed by '(' (markdown links) or doubled
// brackets are not lookups.
func ParseMessage(content string) Request {
	content = strings.TrimSpace(content)

	if raw, ok := firstGroup(deckPattern, content); ok {
		input := strings.TrimSpace(raw)
		if code, ok := firstGroup(deckParamRe, input); ok {
			input = code
		}
		if code, ok := firstGroup(deckPathRe, input); ok {
			input = code
		}

		req := Request{Kind: DeckRequest, DeckCode: strings.TrimSpace(input)}
		if game, ok := firstGroup(gameParamRe, raw); ok {
			req.DeckGame = game
		}
		return req
	}

	if q, ok := firstGroup(cardQueryRe, content); ok {
		if q = strings.TrimSpace(q); q != "" {
			return Request{Kind: CardRequest, Query: q}
		}
	}

	return Request{}
}

// ValidDeckCode reports whether code is safe to use as a deck file name.
func ValidDeckCode(code string) bool {
	ok, err := deckCodePattern.MatchString(code)
	return err == nil && ok
}
