package deck

import (
	"fmt"
	"strconv"

	"golang.org/x/text/collate"

	"github.com/arcanaland/tcgoracle/internal/card"
	"github.com/arcanaland/tcgoracle/internal/layout"
)

// Rendering is a deck laid out in two text columns.
type Rendering struct {
	Left  string
	Right string

	UniqueEntries int
	TotalCopies   float64
}

// FormatQuantity prints a quantity without a trailing ".0".
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func itemLines(items []Item) []string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = fmt.Sprintf("%sx %s", FormatQuantity(it.Quantity), it.Label)
	}
	return lines
}

func flatBlock(p *Pile, col *collate.Collator) layout.Block {
	return layout.Block{
		Title: fmt.Sprintf("%s (%s)", p.Name, FormatQuantity(p.Total())),
		Lines: itemLines(SortItems(p.Items, col)),
	}
}

// Blocks renders a composition into its block sequence: the header pile, one
// block per type of every other pile, then the footer pile.
func Blocks(comp Composition, opts Options) ([]layout.Block, layout.Pinning) {
	col := newCollator()

	var (
		blocks []layout.Block
		pin    layout.Pinning
	)

	if comp.Header != nil {
		blocks = append(blocks, flatBlock(comp.Header, col))
		pin.Header = true
	}

	for _, p := range comp.Middle {
		for _, g := range GroupByType(p, opts.TypeOrder, col) {
			blocks = append(blocks, layout.Block{
				Title: fmt.Sprintf("%s — %s", p.Name, g.Type),
				Lines: itemLines(g.Items),
			})
		}
	}

	if comp.Footer != nil {
		blocks = append(blocks, flatBlock(comp.Footer, col))
		pin.Footer = true
	}

	return blocks, pin
}

// Render composes d against table and lays it out in two columns. It returns
// nil when the deck has nothing to show.
func Render(d *Deck, table *card.Table, opts Options) *Rendering {
	comp := Compose(d, table, opts)

	blocks, pin := Blocks(comp, opts)
	if len(blocks) == 0 {
		return nil
	}

	cols := layout.Split(blocks, pin)
	return &Rendering{
		Left:          cols.Left,
		Right:         cols.Right,
		UniqueEntries: comp.UniqueEntries,
		TotalCopies:   comp.TotalCopies,
	}
}
