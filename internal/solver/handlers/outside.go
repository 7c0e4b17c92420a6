package handlers

import (
	"variantsudoku/internal/core"
	"variantsudoku/internal/solver/exclude"
)

// Skyscraper requires that, viewed from outside the line, exactly clue
// digits are "visible" (a digit is visible if it is strictly greater than
// every digit before it on the line). Enforce only commits once the line
// is fully fixed; the visibility count is a whole-line property that
// doesn't decompose into an easy incremental bound, so this handler is a
// late feasibility check rather than an early pruner, matching how the
// heavier outside-clue kinds are documented to behave (§4.3.6, §9).
type Skyscraper struct {
	line []int
	clue int
}

func NewSkyscraper(line []int, clue int) *Skyscraper {
	return &Skyscraper{line: append([]int(nil), line...), clue: clue}
}

func (s *Skyscraper) Cells() []int  { return s.line }
func (s *Skyscraper) Priority() int { return PriorityOutside }
func (s *Skyscraper) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func visibleCount(digits []int) int {
	count, tallest := 0, 0
	for _, d := range digits {
		if d > tallest {
			count++
			tallest = d
		}
	}
	return count
}

func (s *Skyscraper) Enforce(grid *core.Grid, acc *Accumulator) bool {
	digits := make([]int, len(s.line))
	for i, idx := range s.line {
		d, ok := grid.Cells[idx].Single()
		if !ok {
			return true
		}
		digits[i] = d
	}
	return visibleCount(digits) == s.clue
}

// HiddenSkyscraper is Skyscraper's variant: clue counts digits visible
// when reading the line from its first cell, once a specific digit (the
// "hidden" marker, conveyed via target) is skipped when scanning for
// tallest-so-far (§4.3.6's HiddenSkyscraper example).
type HiddenSkyscraper struct {
	line   []int
	clue   int
	target int
}

func NewHiddenSkyscraper(line []int, clue, target int) *HiddenSkyscraper {
	return &HiddenSkyscraper{line: append([]int(nil), line...), clue: clue, target: target}
}

func (h *HiddenSkyscraper) Cells() []int  { return h.line }
func (h *HiddenSkyscraper) Priority() int { return PriorityOutside }
func (h *HiddenSkyscraper) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (h *HiddenSkyscraper) Enforce(grid *core.Grid, acc *Accumulator) bool {
	digits := make([]int, 0, len(h.line))
	for _, idx := range h.line {
		d, ok := grid.Cells[idx].Single()
		if !ok {
			return true
		}
		if d == h.target {
			continue
		}
		digits = append(digits, d)
	}
	return visibleCount(digits) == h.clue
}

// NumberedRoom requires that the cell at position equal to the clue
// digit shown at the edge of the line (the "room number") holds target
// (§4.3.6: "look N cells in, the digit you find is the clue's partner
// value").
type NumberedRoom struct {
	line     []int
	roomNum  int
	target   int
}

func NewNumberedRoom(line []int, roomNum, target int) *NumberedRoom {
	return &NumberedRoom{line: append([]int(nil), line...), roomNum: roomNum, target: target}
}

func (n *NumberedRoom) Cells() []int  { return n.line }
func (n *NumberedRoom) Priority() int { return PriorityOutside }
func (n *NumberedRoom) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (n *NumberedRoom) Enforce(grid *core.Grid, acc *Accumulator) bool {
	if n.roomNum < 1 || n.roomNum > len(n.line) {
		return false
	}
	idx := n.line[n.roomNum-1]
	if grid.Fix(idx, n.target) {
		acc.AddForCell(idx)
	}
	return !grid.Cells[idx].IsEmpty()
}

// FullRank orders a set of lines (e.g. every row, or every column) by a
// derived rank key (§4.3.6's RankMode family: by sum, by first-cell
// value, by count of a target digit) and pins line i's rank to position
// i in layout order. Like Skyscraper, rank is a whole-line property, so
// this handler resolves once every line it tracks is fully fixed.
type FullRank struct {
	lines  [][]int
	layout []int // layout[i] = expected rank (1-based) of lines[i]
	mode   string
	target int
}

// NewFullRank builds a rank handler. mode selects the ranking key:
// "sum" ranks by total of the line, "first" by the line's first cell,
// "count" by the number of occurrences of target within the line.
func NewFullRank(lines [][]int, layout []int, mode string, target int) *FullRank {
	cp := make([][]int, len(lines))
	for i, l := range lines {
		cp[i] = append([]int(nil), l...)
	}
	return &FullRank{lines: cp, layout: append([]int(nil), layout...), mode: mode, target: target}
}

func (f *FullRank) Cells() []int {
	var out []int
	for _, l := range f.lines {
		out = append(out, l...)
	}
	return out
}
func (f *FullRank) Priority() int { return PriorityOutside }
func (f *FullRank) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (f *FullRank) rankKey(grid *core.Grid, line []int) (int, bool) {
	switch f.mode {
	case "first":
		return grid.Cells[line[0]].Single()
	case "count":
		count, allFixed := 0, true
		for _, idx := range line {
			d, ok := grid.Cells[idx].Single()
			if !ok {
				allFixed = false
				continue
			}
			if d == f.target {
				count++
			}
		}
		if !allFixed {
			return 0, false
		}
		return count, true
	default: // "sum"
		sum, allFixed := 0, true
		for _, idx := range line {
			d, ok := grid.Cells[idx].Single()
			if !ok {
				allFixed = false
				continue
			}
			sum += d
		}
		if !allFixed {
			return 0, false
		}
		return sum, true
	}
}

func (f *FullRank) Enforce(grid *core.Grid, acc *Accumulator) bool {
	keys := make([]int, len(f.lines))
	for i, line := range f.lines {
		k, ok := f.rankKey(grid, line)
		if !ok {
			return true
		}
		keys[i] = k
	}
	rank := make([]int, len(keys))
	for i := range keys {
		r := 1
		for j := range keys {
			if j != i && keys[j] < keys[i] {
				r++
			}
		}
		rank[i] = r
	}
	for i, want := range f.layout {
		if rank[i] != want {
			return false
		}
	}
	return true
}
