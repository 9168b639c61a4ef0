package validator

import (
	"fmt"
	"os"
	"strings"

	"github.com/arcanaland/tcgoracle/internal/card"
	"github.com/arcanaland/tcgoracle/internal/deck"
	"github.com/arcanaland/tcgoracle/internal/layout"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	DeckPath string
	Table    *card.Table
	Options  deck.Options
	Results  ValidationResults

	deck *deck.Deck
}

func NewValidator(deckPath string, table *card.Table, opts deck.Options) *Validator {
	return &Validator{
		DeckPath: deckPath,
		Table:    table,
		Options:  opts,
		Results:  ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.validateDeckFile(); err != nil {
		return v.Results, err
	}

	v.validateEntries()
	v.validatePiles()
	v.validateLayout()

	return v.Results, nil
}

func (v *Validator) validateDeckFile() error {
	if _, err := os.Stat(v.DeckPath); os.IsNotExist(err) {
		return fmt.Errorf("deck file not found: %s", v.DeckPath)
	}

	d, err := deck.LoadDeck(v.DeckPath)
	if err != nil {
		return err
	}
	v.deck = d

	if len(d.Entries) == 0 {
		v.Results.Errors = append(v.Results.Errors, "deck has no entries")
	}
	return nil
}

// validateEntries checks every entry resolves to a card and carries usable quantities
func (v *Validator) validateEntries() {
	seen := make(map[string]string)

	for _, e := range v.deck.Entries {
		lower := strings.ToLower(e.CardID)
		if prev, ok := seen[lower]; ok {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card ids %q and %q refer to the same card", prev, e.CardID))
		} else {
			seen[lower] = e.CardID
		}

		if _, ok := v.Table.Lookup(e.CardID); !ok {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("card not found: %s", e.CardID))
		}

		for _, pq := range e.Piles {
			if !deck.Valid(pq.Quantity) {
				v.Results.Warnings = append(v.Results.Warnings,
					fmt.Sprintf("%s: quantity %v in pile %q is ignored", e.CardID, pq.Quantity, pq.Pile))
			}
		}
	}
}

// validatePiles checks the configured header and footer piles are present
func (v *Validator) validatePiles() {
	comp := deck.Compose(v.deck, v.Table, v.Options)

	if len(v.deck.Entries) > 0 && comp.Empty() {
		v.Results.Errors = append(v.Results.Errors, "deck has no cards with a usable quantity")
		return
	}

	if v.Options.HeaderPile != "" && comp.Header == nil {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("header pile %q not found in deck", v.Options.HeaderPile))
	}

	if v.Options.FooterPile != "" && v.Options.FooterPile != v.Options.HeaderPile && comp.Footer == nil {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("footer pile %q not found in deck", v.Options.FooterPile))
	}
}

// validateLayout warns when a rendered column has to be cut short
func (v *Validator) validateLayout() {
	blocks, pin := deck.Blocks(deck.Compose(v.deck, v.Table, v.Options), v.Options)
	if len(blocks) == 0 {
		return
	}

	cols := layout.Split(blocks, pin)
	for _, side := range []struct {
		name      string
		truncated bool
	}{{"left", cols.LeftTruncated}, {"right", cols.RightTruncated}} {
		if side.truncated {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("%s column exceeds %d characters and will be truncated", side.name, layout.ColumnLimit))
		}
	}
}
