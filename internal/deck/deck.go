package deck

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/arcanaland/tcgoracle/internal/ordered"
)

// DefaultPile receives entries that only carry a flat count.
const DefaultPile = "Main"

// ErrNotFound is returned when a deck file does not exist.
var ErrNotFound = errors.New("deck not found")

// Deck is a deck list in the order its entries appear in the source JSON
type Deck struct {
	Entries []Entry
}

// Entry is one card of a deck and its quantity in every pile it appears in.
type Entry struct {
	CardID string
	Piles  []PileQuantity
}

// PileQuantity is a raw quantity as found in the deck file. Quantity may be
// NaN, infinite, zero or negative; grouping drops those.
type PileQuantity struct {
	Pile     string
	Quantity float64
}

// LoadDeck loads a deck from a JSON file
func LoadDeck(deckPath string) (*Deck, error) {
	data, err := os.ReadFile(deckPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, deckPath)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading deck: %w", err)
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", deckPath, err)
	}
	return d, nil
}

// Parse decodes a deck mapping of card id to either {"count": n} or
// {"group": {"<pile>": n, ...}}. A bare number is read as a count. Entries
// with neither get a count of 1 in DefaultPile.
func Parse(data []byte) (*Deck, error) {
	if t := bytes.TrimSpace(data); bytes.Equal(t, []byte("null")) {
		return &Deck{}, nil
	}

	obj, err := ordered.DecodeObject(data)
	if err != nil {
		return nil, err
	}

	d := &Deck{Entries: make([]Entry, 0, obj.Len())}
	for id, raw := range obj.All() {
		entry, err := parseEntry(id, raw)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", id, err)
		}
		d.Entries = append(d.Entries, entry)
	}
	return d, nil
}

func parseEntry(id string, raw json.RawMessage) (Entry, error) {
	e := Entry{CardID: id}

	if !ordered.IsObject(raw) {
		qty := 1.0
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			if n, ok := v.(float64); ok {
				qty = n
			}
		}
		e.Piles = []PileQuantity{{Pile: DefaultPile, Quantity: qty}}
		return e, nil
	}

	info, err := ordered.DecodeObject(raw)
	if err != nil {
		return e, err
	}

	if group, ok := info.Get("group"); ok && ordered.IsObject(group) {
		piles, err := ordered.DecodeObject(group)
		if err != nil {
			return e, fmt.Errorf("group: %w", err)
		}
		for pile, q := range piles.All() {
			e.Piles = append(e.Piles, PileQuantity{Pile: pile, Quantity: quantity(q)})
		}
		return e, nil
	}

	qty := 1.0
	if count, ok := info.Get("count"); ok && !isNull(count) {
		qty = quantity(count)
	}
	e.Piles = []PileQuantity{{Pile: DefaultPile, Quantity: qty}}
	return e, nil
}

// quantity converts a raw JSON value the way a loosely typed deck file
// expects: numbers as-is, numeric strings parsed, booleans as 0/1, null as 0.
// Anything else is NaN.
func quantity(raw json.RawMessage) float64 {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return math.NaN()
	}

	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return val
	case bool:
		if val {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Valid reports whether q is a usable pile quantity.
func Valid(q float64) bool {
	return !math.IsNaN(q) && !math.IsInf(q, 0) && q > 0
}
