package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/tcgoracle/internal/card"
)

func testCards() []*card.Card {
	return []*card.Card{
		card.New(map[string]any{"id": "c1", "name": "Alpha", "type": "Spell"}),
		card.New(map[string]any{"id": "c2", "name": "Beta", "type": "Monster"}),
	}
}

func catalog() []*card.Card {
	return []*card.Card{
		card.New(map[string]any{"id": "1", "name": "Dark Magician", "type": "Spellcaster", "atk": 2500.0, "level": "7"}),
		card.New(map[string]any{"id": "2", "name": "Dark Magician Girl", "type": "Spellcaster", "atk": 2000.0, "level": "6"}),
		card.New(map[string]any{"id": "3", "name": "Blue-Eyes White Dragon", "type": "Dragon", "atk": 3000.0, "level": "8"}),
		card.New(map[string]any{"id": "4", "name": "Pot of Greed", "type": "Normal Spell"}),
		card.New(map[string]any{"id": "5", "name": "Darkmagic Curtain", "type": "Quick-Play Spell", "atk": "n/a"}),
		card.New(map[string]any{"id": "6", "name": "Dark Magician", "type": "Spellcaster", "atk": 2500.0, "set": "Reprint"}),
	}
}

func names(cards []*card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}

func TestAliasResolver(t *testing.T) {
	r := NewAliasResolver(map[string][]string{
		"ATK":       {"Attack", "power", " "},
		"card_type": {"Kind"},
		"":          {"ignored"},
	})

	assert.Equal(t, "atk", r.Resolve("atk"), "canonical resolves to itself")
	assert.Equal(t, "atk", r.Resolve("attack"))
	assert.Equal(t, "atk", r.Resolve("power"))
	assert.Equal(t, "card type", r.Resolve("card type"))
	assert.Equal(t, "card type", r.Resolve("kind"))
	assert.Equal(t, "ignored", r.Resolve("ignored"))
	assert.Equal(t, "defense", r.Resolve("defense"), "unknown names pass through")

	var nilResolver *AliasResolver
	assert.Equal(t, "attack", nilResolver.Resolve("attack"))
}

func TestParse(t *testing.T) {
	preds := Parse(" type:spell | !atk >= 1500 || dark-magician |!", nil)
	require.Len(t, preds, 4)

	assert.Equal(t, Predicate{Property: "type", Op: OpContains, Value: "spell"}, preds[0])
	assert.Equal(t, Predicate{Negated: true, Property: "atk", Op: OpGreaterEq, Value: "1500"}, preds[1])
	assert.Equal(t, Predicate{Term: "dark magician", TermKey: "darkmagician"}, preds[2])
	assert.True(t, preds[3].Negated)
	assert.False(t, preds[3].IsComparison())

	assert.Equal(t, OpContains, Parse("name=alpha", nil)[0].Op)
	assert.Equal(t, OpLess, Parse("level<4", nil)[0].Op)
	assert.Equal(t, OpLessEq, Parse("level <= 4", nil)[0].Op)
	assert.Equal(t, OpGreater, Parse("level>4", nil)[0].Op)

	assert.Empty(t, Parse(" | ", nil))
}

func TestEvaluate_Examples(t *testing.T) {
	got := Evaluate(testCards(), "type:spell|!name:beta", nil)
	assert.Equal(t, []string{"Alpha"}, names(got))
}

func TestEvaluate(t *testing.T) {
	aliases := NewAliasResolver(map[string][]string{"atk": {"attack"}, "type": {"kind"}})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"contains, not equality", "type:spell", []string{"Dark Magician", "Dark Magician Girl", "Pot of Greed", "Darkmagic Curtain", "Dark Magician"}},
		{"equals sign is containment too", "type=spellcaster", []string{"Dark Magician", "Dark Magician Girl", "Dark Magician"}},
		{"alias", "kind:dragon", []string{"Blue-Eyes White Dragon"}},
		{"numeric on numbers", "attack>=2500", []string{"Dark Magician", "Blue-Eyes White Dragon", "Dark Magician"}},
		{"numeric on strings", "level<7", []string{"Dark Magician Girl"}},
		{"numeric strict", "atk>2500", []string{"Blue-Eyes White Dragon"}},
		{"numeric with non-numeric field excluded", "atk<=2000", []string{"Dark Magician Girl"}},
		{"non-numeric target excludes all", "atk>lots", nil},
		{"unknown property excludes all", "rarity:rare", nil},
		{"bare term on normalized name", "dark magician", []string{"Dark Magician", "Dark Magician Girl", "Dark Magician"}},
		{"bare term tolerates spacing", "darkmagic", []string{"Dark Magician", "Dark Magician Girl", "Darkmagic Curtain", "Dark Magician"}},
		{"bare term tolerates punctuation", "blue eyes", []string{"Blue-Eyes White Dragon"}},
		{"conjunction", "dark|type:spellcaster|atk<2500", []string{"Dark Magician Girl"}},
		{"negated term", "dark|!girl", []string{"Dark Magician", "Darkmagic Curtain", "Dark Magician"}},
		{"negated unknown property keeps all", "!rarity:rare|pot", []string{"Pot of Greed"}},
		{"negated non-numeric keeps card", "!atk>1000|curtain", []string{"Darkmagic Curtain"}},
		{"empty query keeps everything", "", []string{"Dark Magician", "Dark Magician Girl", "Blue-Eyes White Dragon", "Pot of Greed", "Darkmagic Curtain", "Dark Magician"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(catalog(), tt.query, aliases)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestEvaluate_ConjunctionIsSequentialFilter(t *testing.T) {
	cards := catalog()
	queries := [][2]string{
		{"dark", "type:spellcaster"},
		{"type:spell", "!atk>=2500"},
		{"!dragon", "level<8"},
	}

	for _, q := range queries {
		both := Evaluate(cards, q[0]+"|"+q[1], nil)
		stepwise := Evaluate(Evaluate(cards, q[0], nil), q[1], nil)
		assert.Equal(t, names(stepwise), names(both), "query %v", q)
	}
}

func TestEvaluate_NegationIsComplement(t *testing.T) {
	cards := catalog()
	for _, p := range []string{"type:spell", "atk>=2500", "rarity:rare", "magician", "atk<lots"} {
		pos := Evaluate(cards, p, nil)
		neg := Evaluate(cards, "!"+p, nil)

		assert.Equal(t, len(cards), len(pos)+len(neg), "predicate %q", p)
		for _, c := range neg {
			assert.NotContains(t, pos, c, "predicate %q", p)
		}
	}
}

func TestEvaluate_DoesNotModifyInput(t *testing.T) {
	cards := catalog()
	before := names(cards)
	_ = Evaluate(cards, "!dark", nil)
	assert.Equal(t, before, names(cards))
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"alpha", "alpha", 0},
		{"alfa", "alpha", 2},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"héllo", "hello", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "%q -> %q", tt.a, tt.b)
	}
}

func TestLevenshtein_Properties(t *testing.T) {
	words := []string{"", "a", "alpha", "alfa", "beta", "darkmagician", "darkmagiciangirl", "kitten", "sitting"}

	for _, a := range words {
		assert.Equal(t, 0, Levenshtein(a, a))
		for _, b := range words {
			ab := Levenshtein(a, b)
			assert.Equal(t, ab, Levenshtein(b, a), "symmetry %q %q", a, b)
			for _, c := range words {
				assert.LessOrEqual(t, Levenshtein(a, c), ab+Levenshtein(b, c), "triangle %q %q %q", a, b, c)
			}
		}
	}
}

func TestFuzzyMatch(t *testing.T) {
	t.Run("exact key match", func(t *testing.T) {
		res := FuzzyMatch(catalog(), "darkmagician")
		assert.False(t, res.Fuzzy)
		assert.Empty(t, res.Suggestion)
		assert.Equal(t, []string{"Dark Magician", "Dark Magician"}, names(res.Cards))
	})

	t.Run("fuzzy within distance", func(t *testing.T) {
		res := FuzzyMatch(testCards(), "Alfa")
		assert.True(t, res.Fuzzy)
		assert.Equal(t, "Alpha", res.Suggestion)
		assert.Equal(t, []string{"Alpha"}, names(res.Cards))
	})

	t.Run("fuzzy returns every printing", func(t *testing.T) {
		res := FuzzyMatch(catalog(), "Dark Magican")
		assert.True(t, res.Fuzzy)
		assert.Equal(t, "Dark Magician", res.Suggestion)
		assert.Len(t, res.Cards, 2)
	})

	t.Run("first card wins ties", func(t *testing.T) {
		cards := []*card.Card{
			card.New(map[string]any{"name": "Cat"}),
			card.New(map[string]any{"name": "Bat"}),
		}
		res := FuzzyMatch(cards, "Hat")
		assert.Equal(t, "Cat", res.Suggestion)
	})

	t.Run("too far", func(t *testing.T) {
		res := FuzzyMatch(catalog(), "Exodia")
		assert.Empty(t, res.Cards)
		assert.False(t, res.Fuzzy)
		assert.Empty(t, res.Suggestion)
	})

	t.Run("empty catalog", func(t *testing.T) {
		assert.Empty(t, FuzzyMatch(nil, "Alpha").Cards)
	})
}

func TestResolve(t *testing.T) {
	t.Run("evaluator hit", func(t *testing.T) {
		res := Resolve(catalog(), "magician", nil)
		assert.False(t, res.Fuzzy)
		assert.Len(t, res.Cards, 3)
	})

	t.Run("bare name falls back to fuzzy", func(t *testing.T) {
		res := Resolve(testCards(), "Alfa", nil)
		assert.True(t, res.Fuzzy)
		assert.Equal(t, "Alpha", res.Suggestion)
		assert.Equal(t, []string{"Alpha"}, names(res.Cards))
	})

	t.Run("predicate query never falls back", func(t *testing.T) {
		res := Resolve(testCards(), "Alfa|type:spell", nil)
		assert.Empty(t, res.Cards)
		assert.False(t, res.Fuzzy)

		res = Resolve(testCards(), "name:alfa", nil)
		assert.Empty(t, res.Cards)
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Empty(t, Resolve(catalog(), "  ", nil).Cards)
	})

	assert.True(t, IsBareName("Dark Magician", nil))
	assert.False(t, IsBareName("!Dark Magician", nil))
	assert.False(t, IsBareName("atk>1", nil))
	assert.False(t, IsBareName("a|b", nil))
}
