package bot

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/arcanaland/tcgoracle/internal/card"
	"github.com/arcanaland/tcgoracle/internal/config"
	"github.com/arcanaland/tcgoracle/internal/deck"
	"github.com/arcanaland/tcgoracle/internal/normalize"
	"github.com/arcanaland/tcgoracle/internal/search"
)

// ErrNotReady is returned when a lookup runs before the card table is loaded.
var ErrNotReady = errors.New("card database not ready")

// DeckSource fetches decks by code. Implementations return an error wrapping
// deck.ErrNotFound when no deck has that code.
type DeckSource interface {
	Deck(code string) (*deck.Deck, error)
}

// LibrarySource reads decks from <dir>/<code>.json.
type LibrarySource struct {
	Dir string
}

// Deck implements DeckSource.
func (s LibrarySource) Deck(code string) (*deck.Deck, error) {
	if !ValidDeckCode(code) {
		return nil, fmt.Errorf("%w: %s", deck.ErrNotFound, code)
	}
	return deck.LoadDeck(filepath.Join(s.Dir, code+".json"))
}

// Bot answers chat messages from a card table snapshot.
type Bot struct {
	cfg     *config.Config
	table   *card.Table
	decks   DeckSource
	aliases *search.AliasResolver
	logger  *zap.Logger

	// pick returns a random index in [0, n).
	pick func(n int) int
}

// New creates a bot. A nil logger discards log output.
func New(cfg *config.Config, table *card.Table, decks DeckSource, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		cfg:     cfg,
		table:   table,
		decks:   decks,
		aliases: search.NewAliasResolver(cfg.Aliases()),
		logger:  logger,
		pick:    rand.IntN,
	}
}

// Reply returns the answer to a chat message, or "" when the message asks
// for nothing.
func (b *Bot) Reply(content string) string {
	req := ParseMessage(content)
	switch req.Kind {
	case DeckRequest:
		return b.deckReply(req)
	case CardRequest:
		return b.cardReply(req.Query)
	default:
		return ""
	}
}

func (b *Bot) ready() error {
	if b.table.Len() == 0 {
		return ErrNotReady
	}
	return nil
}

func (b *Bot) deckReply(req Request) string {
	if req.DeckGame != "" && b.cfg.Game != "" && !strings.EqualFold(req.DeckGame, b.cfg.Game) {
		return fmt.Sprintf("That deck link is for game **%s**, but this bot is configured for **%s**.",
			req.DeckGame, b.cfg.Game)
	}
	if req.DeckCode == "" {
		return "Invalid deck code."
	}

	d, err := b.decks.Deck(req.DeckCode)
	if errors.Is(err, deck.ErrNotFound) {
		return fmt.Sprintf("No deck found for code **%s**.", req.DeckCode)
	}
	if err != nil {
		b.logger.Error("deck lookup failed", zap.String("code", req.DeckCode), zap.Error(err))
		return fmt.Sprintf("Deck **%s** could not be loaded.", req.DeckCode)
	}

	if err := b.ready(); err != nil {
		return "Card database not ready."
	}

	r := deck.Render(d, b.table, b.cfg.DeckOptions())
	if r == nil {
		return fmt.Sprintf("Deck **%s** was found, but it contained no entries I can display.", req.DeckCode)
	}

	b.logger.Debug("rendered deck",
		zap.String("code", req.DeckCode),
		zap.Int("entries", r.UniqueEntries),
		zap.Float64("copies", r.TotalCopies))

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Deck %s**\n", req.DeckCode)
	if b.cfg.DeckShareBase != "" {
		fmt.Fprintf(&sb, "<%s%s>\n", b.cfg.DeckShareBase, url.QueryEscape(req.DeckCode))
	}
	sb.WriteString("\n")
	sb.WriteString(r.Left)
	sb.WriteString("\n\n")
	sb.WriteString(r.Right)
	fmt.Fprintf(&sb, "\n\nCards: %d • Copies: %s", r.UniqueEntries, deck.FormatQuantity(r.TotalCopies))
	return sb.String()
}

func (b *Bot) cardReply(query string) string {
	if err := b.ready(); err != nil {
		return "Card database not ready."
	}

	res := search.Resolve(b.table.Cards(), query, b.aliases)
	bare := search.IsBareName(query, b.aliases)

	if len(res.Cards) == 0 {
		if bare {
			return fmt.Sprintf("No card named **%s** found.\n%s", query, b.noMatchMessage())
		}
		return fmt.Sprintf("No results found for **%s**.", query)
	}

	if res.Fuzzy {
		return b.CardText(res.Cards[0], res.Suggestion)
	}
	if bare {
		key := normalize.CompactKey(query)
		for _, c := range res.Cards {
			if c.NameKey == key {
				return b.CardText(c, "")
			}
		}
	}
	if len(res.Cards) == 1 {
		return b.CardText(res.Cards[0], "")
	}
	return b.listText(res.Cards)
}

func (b *Bot) noMatchMessage() string {
	msgs := b.cfg.NoMatchMessages
	if len(msgs) == 0 {
		return ""
	}
	return msgs[b.pick(len(msgs))]
}

func (b *Bot) listText(cards []*card.Card) string {
	limit := b.cfg.MaxResults
	if limit <= 0 {
		limit = config.DefaultMaxResults
	}

	lines := make([]string, 0, min(limit, len(cards)))
	for _, c := range cards[:min(limit, len(cards))] {
		lines = append(lines, fmt.Sprintf("• [%s (%s)](<%s>)", c.Name, c.SetName, b.ImageURL(c)))
	}

	text := strings.Join(lines, "\n")
	if len(cards) > limit {
		text += fmt.Sprintf("\n\nAdditional results found (%d total). Please narrow your search.", len(cards))
	}
	return text
}

// CardText renders a single card. Other printings of the same card are linked
// under "See also", and suggestion, when set, names the fuzzy match.
func (b *Bot) CardText(c *card.Card, suggestion string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**\n", c.Name)
	if u := b.ImageURL(c); u != "" {
		sb.WriteString(u)
		sb.WriteString("\n")
	}
	sb.WriteString(c.DisplayType())
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "*%s*", c.Text)

	var links []string
	for _, other := range b.table.SameName(c) {
		if other == c {
			continue
		}
		links = append(links, fmt.Sprintf("[%s](<%s>)", other.SetName, b.ImageURL(other)))
	}
	if len(links) > 0 {
		sb.WriteString("\n\nSee also: ")
		sb.WriteString(strings.Join(links, ", "))
	}

	if suggestion != "" {
		fmt.Fprintf(&sb, "\n\nDid you mean: %s?", suggestion)
	}
	return sb.String()
}

// ImageURL returns the card image address, or "" when the card has no image.
func (b *Bot) ImageURL(c *card.Card) string {
	if c.Image == "" {
		return ""
	}
	base := strings.TrimRight(b.cfg.ImageBaseURL, "/")
	if b.cfg.Game == "" {
		return base + "/" + url.PathEscape(c.Image)
	}
	return base + "/" + url.PathEscape(b.cfg.Game) + "/" + url.PathEscape(c.Image)
}
