package card

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/arcanaland/tcgoracle/internal/ordered"
)

// SetIndexFile lists, per game, the set files making up the catalog.
const SetIndexFile = "setsIndex.json"

var (
	// ErrNoSetIndex is returned when the set index has no entry for the game.
	ErrNoSetIndex = errors.New("no set files listed for game")
	// ErrNotArray is returned when a set file is not a JSON array of cards.
	ErrNotArray = errors.New("set file is not a JSON array")
)

// LoadIndex loads every set file the index in dir lists for game. Set files
// that cannot be read or parsed are skipped with a warning.
func LoadIndex(dir, game string, logger *zap.Logger) ([]*Card, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(filepath.Join(dir, SetIndexFile))
	if err != nil {
		return nil, fmt.Errorf("reading set index: %w", err)
	}

	var index map[string][]string
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parsing set index: %w", err)
	}

	files, ok := index[game]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSetIndex, game)
	}

	paths := make([]string, len(files))
	for i, f := range files {
		if filepath.IsAbs(f) {
			paths[i] = f
		} else {
			paths[i] = filepath.Join(dir, f)
		}
	}

	cards, err := LoadFiles(paths, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("loaded card catalog",
		zap.String("game", game),
		zap.Int("sets", len(paths)),
		zap.Int("cards", len(cards)),
	)
	return cards, nil
}

// LoadFiles merges the cards of several set files in the given order.
func LoadFiles(paths []string, logger *zap.Logger) ([]*Card, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var merged []*Card
	for _, path := range paths {
		cards, err := LoadFile(path)
		if err != nil {
			logger.Warn("skipping set file", zap.String("path", path), zap.Error(err))
			continue
		}
		logger.Debug("loaded set file", zap.String("path", path), zap.Int("cards", len(cards)))
		merged = append(merged, cards...)
	}
	return merged, nil
}

// LoadFile reads a single set file.
func LoadFile(path string) ([]*Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCards(data)
}

// ParseCards decodes a JSON array of card objects. Elements that are not
// objects are ignored.
func ParseCards(data []byte) ([]*Card, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotArray
		}
		return nil, fmt.Errorf("parsing cards: %w", err)
	}
	if raw == nil {
		return nil, ErrNotArray
	}

	cards := make([]*Card, 0, len(raw))
	for i, elem := range raw {
		if !ordered.IsObject(elem) {
			continue
		}
		var c Card
		if err := c.UnmarshalJSON(elem); err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		cards = append(cards, &c)
	}
	return cards, nil
}
