package deck

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/arcanaland/tcgoracle/internal/card"
	"github.com/arcanaland/tcgoracle/internal/normalize"
	"github.com/arcanaland/tcgoracle/internal/ordered"
)

// Options controls how a deck is grouped.
type Options struct {
	HeaderPile string   // Pile shown first, flat, pinned to the left column
	FooterPile string   // Pile shown last, flat, pinned to the right column
	TypeOrder  []string // Types listed first, in this order
}

// Item is one card line of a pile.
type Item struct {
	Quantity float64
	Label    string
	Type     string
}

// Pile is a named group of deck items in deck order.
type Pile struct {
	Name  string
	Items []Item
}

// Total returns the number of copies in the pile.
func (p Pile) Total() float64 {
	var sum float64
	for _, it := range p.Items {
		sum += it.Quantity
	}
	return sum
}

// TypeGroup holds the items of one pile sharing a type.
type TypeGroup struct {
	Type  string
	Items []Item
}

// Composition is a deck resolved against a card table and split into piles.
type Composition struct {
	Header *Pile
	Middle []Pile // Pile order is first appearance in the deck
	Footer *Pile

	UniqueEntries int
	TotalCopies   float64
}

// Empty reports whether no pile received any item.
func (c Composition) Empty() bool {
	return c.Header == nil && c.Footer == nil && len(c.Middle) == 0
}

// MissingLabel is the label used for deck entries whose card is unknown.
func MissingLabel(id string) string {
	return fmt.Sprintf("[Missing card: %s]", id)
}

// Compose resolves every entry of d against table and collects the items of
// each pile. Unknown cards get a placeholder label; invalid quantities are
// dropped.
func Compose(d *Deck, table *card.Table, opts Options) Composition {
	piles := ordered.NewMap[string, *Pile]()
	var comp Composition
	if d == nil {
		return comp
	}
	comp.UniqueEntries = len(d.Entries)

	for _, e := range d.Entries {
		label := MissingLabel(e.CardID)
		typ := card.UnknownType
		if c, ok := table.Lookup(e.CardID); ok {
			label = c.Name
			if c.Type != "" {
				typ = c.Type
			}
		}

		for _, pq := range e.Piles {
			if !Valid(pq.Quantity) {
				continue
			}
			p, ok := piles.Get(pq.Pile)
			if !ok {
				p = &Pile{Name: pq.Pile}
				piles.Set(pq.Pile, p)
			}
			p.Items = append(p.Items, Item{Quantity: pq.Quantity, Label: label, Type: typ})
			comp.TotalCopies += pq.Quantity
		}
	}

	header, footer := opts.HeaderPile, opts.FooterPile
	if footer == header {
		footer = ""
	}

	for name, p := range piles.All() {
		switch {
		case header != "" && name == header:
			comp.Header = p
		case footer != "" && name == footer:
			comp.Footer = p
		default:
			comp.Middle = append(comp.Middle, *p)
		}
	}

	return comp
}

// newCollator orders labels like a human-facing sorted list would. Collators
// keep internal buffers, so each call gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

// SortItems orders items by label, keeping deck order for equal labels.
func SortItems(items []Item, col *collate.Collator) []Item {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		return col.CompareString(a.Label, b.Label)
	})
	return sorted
}

// GroupByType partitions a pile by type. Types named in typeOrder come first
// in that order; the rest follow alphabetically. Types are compared in
// normalized form, and blank types fall under card.UnknownType.
func GroupByType(p Pile, typeOrder []string, col *collate.Collator) []TypeGroup {
	groups := ordered.NewMap[string, *TypeGroup]()
	for _, it := range p.Items {
		display := strings.TrimSpace(it.Type)
		if display == "" {
			display = card.UnknownType
		}
		key := normalize.Normalize(display)
		if key == "" {
			key = display
		}

		g, ok := groups.Get(key)
		if !ok {
			g = &TypeGroup{Type: display}
			groups.Set(key, g)
		}
		g.Items = append(g.Items, it)
	}

	rank := make(map[string]int, len(typeOrder))
	for i, t := range typeOrder {
		k := normalize.Normalize(t)
		if _, seen := rank[k]; !seen {
			rank[k] = i
		}
	}

	keys := groups.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		ri, iListed := rank[keys[i]]
		rj, jListed := rank[keys[j]]
		switch {
		case iListed && jListed:
			return ri < rj
		case iListed != jListed:
			return iListed
		}
		gi, _ := groups.Get(keys[i])
		gj, _ := groups.Get(keys[j])
		return col.CompareString(gi.Type, gj.Type) < 0
	})

	out := make([]TypeGroup, 0, len(keys))
	for _, k := range keys {
		g, _ := groups.Get(k)
		out = append(out, TypeGroup{Type: g.Type, Items: SortItems(g.Items, col)})
	}
	return out
}
