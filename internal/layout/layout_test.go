package layout

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(title string, lines int) Block {
	b := Block{Title: title}
	for i := 0; i < lines; i++ {
		b.Lines = append(b.Lines, fmt.Sprintf("1x %s card %d", title, i))
	}
	return b
}

func TestBlock(t *testing.T) {
	b := Block{Title: "Main — Spell", Lines: []string{"3x Alpha", "1x Beta"}}
	assert.Equal(t, "**Main — Spell**\n3x Alpha\n1x Beta\n\n", b.String())
	assert.Equal(t, 3, b.Weight())

	assert.Equal(t, 1, Block{}.Weight(), "an empty title still renders markers")
	assert.Equal(t, 1, Block{Title: "x", Lines: []string{"  "}}.Weight())
}

func diffOf(weights []int, toLeft []bool, fixedLeft, fixedRight int) int {
	l, r := fixedLeft, fixedRight
	for i, w := range weights {
		if toLeft[i] {
			l += w
		} else {
			r += w
		}
	}
	return abs(l - r)
}

func bruteForceDiff(weights []int, fixedLeft, fixedRight int) int {
	best := -1
	for mask := 0; mask < 1<<len(weights); mask++ {
		toLeft := make([]bool, len(weights))
		for i := range weights {
			toLeft[i] = mask&(1<<i) != 0
		}
		d := diffOf(weights, toLeft, fixedLeft, fixedRight)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

func TestPartition_Optimal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 300; iter++ {
		n := rng.Intn(9)
		weights := make([]int, n)
		for i := range weights {
			weights[i] = 1 + rng.Intn(12)
		}
		fixedLeft, fixedRight := rng.Intn(15), rng.Intn(15)
		if rng.Intn(3) == 0 {
			fixedLeft = 0
		}

		toLeft := Partition(weights, fixedLeft, fixedRight)
		require.Len(t, toLeft, n)
		assert.Equal(t, bruteForceDiff(weights, fixedLeft, fixedRight), diffOf(weights, toLeft, fixedLeft, fixedRight),
			"weights=%v fixed=%d/%d", weights, fixedLeft, fixedRight)
	}
}

func TestPartition_Cases(t *testing.T) {
	tests := []struct {
		name       string
		weights    []int
		fixedLeft  int
		fixedRight int
		want       []bool
	}{
		{"empty", nil, 0, 0, []bool{}},
		{"single block goes right on ties", []int{2}, 0, 0, []bool{false}},
		{"even pair", []int{2, 2}, 0, 0, []bool{true, false}},
		{"big block balances many small", []int{1, 1, 1, 3}, 0, 0, []bool{true, true, true, false}},
		{"header weight counts", []int{2, 2}, 4, 0, []bool{false, false}},
		{"footer weight counts", []int{2, 2}, 0, 4, []bool{true, true}},
		{"heavy footer pulls middle left", []int{2}, 0, 1, []bool{true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Partition(tt.weights, tt.fixedLeft, tt.fixedRight))
		})
	}
}

func TestSplit_PinningAndOrder(t *testing.T) {
	blocks := []Block{
		block("Header", 2),
		block("A", 3),
		block("B", 1),
		block("C", 4),
		block("D", 2),
		block("Footer", 3),
	}

	cols := Split(blocks, Pinning{Header: true, Footer: true})

	require.NotEmpty(t, cols.LeftBlocks)
	require.NotEmpty(t, cols.RightBlocks)
	assert.Equal(t, 0, cols.LeftBlocks[0], "header is first on the left")
	assert.Equal(t, len(blocks)-1, cols.RightBlocks[len(cols.RightBlocks)-1], "footer is last on the right")
	assert.True(t, sort.IntsAreSorted(cols.LeftBlocks))
	assert.True(t, sort.IntsAreSorted(cols.RightBlocks))
	assert.Len(t, append(cols.LeftBlocks, cols.RightBlocks...), len(blocks))

	weights := []int{}
	for _, b := range blocks[1:5] {
		weights = append(weights, b.Weight())
	}
	assert.Equal(t, bruteForceDiff(weights, blocks[0].Weight(), blocks[5].Weight()), abs(cols.LeftWeight-cols.RightWeight))

	assert.True(t, strings.HasPrefix(cols.Left, "**Header**"))
	assert.True(t, strings.HasSuffix(cols.Right, "1x Footer card 2"))
}

func TestSplit_NoPinning(t *testing.T) {
	blocks := []Block{block("A", 5), block("B", 1), block("C", 1), block("D", 1)}
	cols := Split(blocks, Pinning{})

	assert.Equal(t, 0, abs(cols.LeftWeight-cols.RightWeight))
	assert.Equal(t, []int{0}, cols.LeftBlocks)
	assert.Equal(t, []int{1, 2, 3}, cols.RightBlocks)
}

func TestSplit_Degenerate(t *testing.T) {
	cols := Split(nil, Pinning{Header: true, Footer: true})
	assert.Equal(t, Placeholder, cols.Left)
	assert.Equal(t, Placeholder, cols.Right)

	cols = Split([]Block{block("Only", 1)}, Pinning{Header: true, Footer: true})
	assert.Equal(t, []int{0}, cols.LeftBlocks)
	assert.Empty(t, cols.RightBlocks)
	assert.Equal(t, Placeholder, cols.Right)

	cols = Split([]Block{block("Only", 1)}, Pinning{Footer: true})
	assert.Empty(t, cols.LeftBlocks)
	assert.Equal(t, []int{0}, cols.RightBlocks)
}

func TestSplit_ColumnCapacity(t *testing.T) {
	var blocks []Block
	for i := 0; i < 6; i++ {
		blocks = append(blocks, block(strings.Repeat("Long pile name ", 3), 30))
	}

	cols := Split(blocks, Pinning{})
	assert.True(t, cols.LeftTruncated)
	assert.True(t, cols.RightTruncated)
	for _, col := range []string{cols.Left, cols.Right} {
		assert.LessOrEqual(t, utf8.RuneCountInString(col), ColumnLimit)
		assert.True(t, strings.HasSuffix(col, Ellipsis))
	}
}

func TestTruncate(t *testing.T) {
	short := strings.Repeat("x", ColumnLimit)
	assert.Equal(t, short, Truncate(short))

	long := strings.Repeat("é", ColumnLimit+1)
	got := Truncate(long)
	assert.Equal(t, TruncatedLength+1, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, Ellipsis))
	assert.Equal(t, strings.Repeat("é", TruncatedLength), strings.TrimSuffix(got, Ellipsis))
}

func TestFinish(t *testing.T) {
	assert.Equal(t, Placeholder, Finish(""))
	assert.Equal(t, Placeholder, Finish(" \n\n "))
	assert.Equal(t, "**A**\n1x B", Finish("**A**\n1x B\n\n"))
}
