// Package layout splits rendered text blocks across two fixed-capacity
// columns so that both columns carry about the same number of lines.
package layout

import (
	"strings"
	"unicode/utf8"
)

const (
	// ColumnLimit is the most characters a column may hold.
	ColumnLimit = 1024
	// TruncatedLength is how many characters survive truncation.
	TruncatedLength = 1021
	// Ellipsis marks a truncated column.
	Ellipsis = "…"
	// Placeholder stands in for an empty column.
	Placeholder = "—"
)

// Block is the unit moved between columns: a bold title and one line per
// entry, followed by a blank separator line.
type Block struct {
	Title string
	Lines []string
}

// String renders the block.
func (b Block) String() string {
	var sb strings.Builder
	sb.WriteString("**")
	sb.WriteString(b.Title)
	sb.WriteString("**\n")
	for _, l := range b.Lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return sb.String()
}

// Weight is the number of non-blank lines the block renders to, at least 1.
func (b Block) Weight() int {
	w := 0
	for _, l := range strings.Split(b.String(), "\n") {
		if strings.TrimSpace(l) != "" {
			w++
		}
	}
	return max(w, 1)
}

// Pinning says whether the first block is a header that must stay in the
// left column and whether the last block is a footer that must end the right
// column.
type Pinning struct {
	Header bool
	Footer bool
}

// Columns is the result of Split.
type Columns struct {
	Left  string
	Right string

	// Indices of the blocks placed in each column, in order.
	LeftBlocks  []int
	RightBlocks []int

	LeftWeight  int
	RightWeight int

	// Set when the column text was cut at ColumnLimit.
	LeftTruncated  bool
	RightTruncated bool
}

// Split places blocks in two columns. Pinned header and footer blocks stay on
// their side; every other block goes to whichever column gives the smallest
// weight difference, found by an exact subset-sum search. Blocks keep their
// relative order inside a column.
func Split(blocks []Block, pin Pinning) Columns {
	hasHeader := pin.Header && len(blocks) > 0
	hasFooter := pin.Footer && len(blocks) > 0 && !(hasHeader && len(blocks) == 1)

	lo, hi := 0, len(blocks)
	var fixedLeft, fixedRight int
	if hasHeader {
		fixedLeft = blocks[0].Weight()
		lo = 1
	}
	if hasFooter {
		fixedRight = blocks[len(blocks)-1].Weight()
		hi--
	}

	middle := make([]int, 0, hi-lo)
	for _, b := range blocks[lo:hi] {
		middle = append(middle, b.Weight())
	}
	toLeft := Partition(middle, fixedLeft, fixedRight)

	var cols Columns
	if hasHeader {
		cols.LeftBlocks = append(cols.LeftBlocks, 0)
	}
	for i, left := range toLeft {
		if left {
			cols.LeftBlocks = append(cols.LeftBlocks, lo+i)
		} else {
			cols.RightBlocks = append(cols.RightBlocks, lo+i)
		}
	}
	if hasFooter {
		cols.RightBlocks = append(cols.RightBlocks, len(blocks)-1)
	}

	cols.Left, cols.LeftWeight, cols.LeftTruncated = join(blocks, cols.LeftBlocks)
	cols.Right, cols.RightWeight, cols.RightTruncated = join(blocks, cols.RightBlocks)
	return cols
}

func join(blocks []Block, idx []int) (string, int, bool) {
	var sb strings.Builder
	weight := 0
	for _, i := range idx {
		sb.WriteString(blocks[i].String())
		weight += blocks[i].Weight()
	}
	text := sb.String()
	return Finish(text), weight, utf8.RuneCountInString(text) > ColumnLimit
}

// Partition decides, for each middle weight, whether it goes to the left
// column. It minimizes |left - right| where left = fixedLeft + chosen weights
// and right = fixedRight + the rest. Among equally balanced splits it picks
// the one whose left side is lighter.
func Partition(weights []int, fixedLeft, fixedRight int) []bool {
	sum := 0
	for _, w := range weights {
		sum += w
	}

	// reach[s] records whether some subset of weights adds up to s and, if
	// so, the highest-index block of one such subset.
	type slot struct {
		reachable bool
		block     int
	}
	reach := make([]slot, sum+1)
	reach[0].reachable = true

	for i, w := range weights {
		if w <= 0 {
			continue
		}
		for s := sum; s >= w; s-- {
			if !reach[s].reachable && reach[s-w].reachable {
				reach[s] = slot{reachable: true, block: i}
			}
		}
	}

	best, bestDiff := 0, -1
	for s := 0; s <= sum; s++ {
		if !reach[s].reachable {
			continue
		}
		diff := abs((fixedLeft + s) - (fixedRight + sum - s))
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = s, diff
		}
	}

	toLeft := make([]bool, len(weights))
	for s := best; s > 0; {
		i := reach[s].block
		toLeft[i] = true
		s -= weights[i]
	}
	return toLeft
}

// Finish truncates a column to ColumnLimit characters and trims it; an empty
// column becomes Placeholder.
func Finish(text string) string {
	text = strings.TrimSpace(Truncate(text))
	if text == "" {
		return Placeholder
	}
	return text
}

// Truncate cuts text longer than ColumnLimit characters down to its first
// TruncatedLength characters followed by Ellipsis.
func Truncate(text string) string {
	if utf8.RuneCountInString(text) <= ColumnLimit {
		return text
	}
	n := 0
	for i := range text {
		if n == TruncatedLength {
			return text[:i] + Ellipsis
		}
		n++
	}
	return text
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
