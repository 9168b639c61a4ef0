package card

import "strings"

// Table is an immutable snapshot of the card catalog. It is safe for
// concurrent readers; nothing in this module mutates a Table after NewTable.
type Table struct {
	cards []*Card
	byID  map[string]*Card
}

// NewTable indexes cards by lower-cased id. When two cards share an id the
// later one wins, matching a catalog merged set by set. Cards without an id
// stay searchable but cannot be referenced from a deck.
func NewTable(cards []*Card) *Table {
	t := &Table{
		cards: make([]*Card, 0, len(cards)),
		byID:  make(map[string]*Card, len(cards)),
	}
	for _, c := range cards {
		if c == nil {
			continue
		}
		t.cards = append(t.cards, c)
		if c.ID != "" {
			t.byID[strings.ToLower(c.ID)] = c
		}
	}
	return t
}

// Cards returns the cards in catalog order. Callers must not modify the slice.
func (t *Table) Cards() []*Card {
	if t == nil {
		return nil
	}
	return t.cards
}

// Len returns the number of cards.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.cards)
}

// IDCount returns the number of distinct indexed ids.
func (t *Table) IDCount() int {
	if t == nil {
		return 0
	}
	return len(t.byID)
}

// Lookup finds a card by id, ignoring case.
func (t *Table) Lookup(id string) (*Card, bool) {
	if t == nil {
		return nil, false
	}
	c, ok := t.byID[strings.ToLower(id)]
	return c, ok
}

// SameName returns every card sharing c's name key, c's printing included,
// in catalog order.
func (t *Table) SameName(c *Card) []*Card {
	var out []*Card
	for _, other := range t.Cards() {
		if other.NameKey == c.NameKey {
			out = append(out, other)
		}
	}
	return out
}
