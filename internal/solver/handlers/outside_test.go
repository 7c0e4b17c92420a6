package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"variantsudoku/internal/core"
)

func fixLine(grid *core.Grid, line []int, digits []int) {
	for i, idx := range line {
		grid.Fix(idx, digits[i])
	}
}

func TestSkyscraperCountsVisibleDigits(t *testing.T) {
	grid := newTestGrid(9, 5)
	line := []int{0, 1, 2, 3, 4}
	fixLine(grid, line, []int{3, 1, 4, 2, 5}) // visible: 3, 4, 5 -> 3
	s := NewSkyscraper(line, 3)
	acc := NewAccumulator(5)
	assert.True(t, s.Enforce(grid, acc))

	bad := NewSkyscraper(line, 2)
	assert.False(t, bad.Enforce(grid, acc))
}

func TestSkyscraperNoopUntilLineSettles(t *testing.T) {
	grid := newTestGrid(9, 5)
	line := []int{0, 1, 2, 3, 4}
	grid.Fix(0, 3)
	s := NewSkyscraper(line, 1)
	acc := NewAccumulator(5)
	assert.True(t, s.Enforce(grid, acc), "must not judge visibility before the whole line is fixed")
}

func TestHiddenSkyscraperSkipsTargetDigit(t *testing.T) {
	grid := newTestGrid(9, 5)
	line := []int{0, 1, 2, 3, 4}
	fixLine(grid, line, []int{3, 9, 4, 2, 5}) // skip 9: visible among 3,4,2,5 -> 3,4,5 = 3
	h := NewHiddenSkyscraper(line, 3, 9)
	acc := NewAccumulator(5)
	assert.True(t, h.Enforce(grid, acc))
}

func TestNumberedRoomFixesTargetAtRoomPosition(t *testing.T) {
	grid := newTestGrid(9, 5)
	line := []int{0, 1, 2, 3, 4}
	n := NewNumberedRoom(line, 3, 7) // room 3 -> line[2] -> cell 2
	acc := NewAccumulator(5)

	require.True(t, n.Enforce(grid, acc))
	assert.Equal(t, core.MaskOf(7), grid.Cells[2])
}

func TestNumberedRoomInfeasibleWhenTargetAlreadyExcluded(t *testing.T) {
	grid := newTestGrid(9, 5)
	line := []int{0, 1, 2, 3, 4}
	grid.Exclude(2, 7)
	n := NewNumberedRoom(line, 3, 7)
	acc := NewAccumulator(5)
	assert.False(t, n.Enforce(grid, acc))
}

func TestFullRankOrdersLinesBySum(t *testing.T) {
	grid := newTestGrid(9, 6)
	lineA := []int{0, 1}
	lineB := []int{2, 3}
	lineC := []int{4, 5}
	fixLine(grid, lineA, []int{1, 1}) // sum 2, smallest -> rank 1
	fixLine(grid, lineB, []int{4, 5}) // sum 9, largest -> rank 3
	fixLine(grid, lineC, []int{2, 2}) // sum 4, middle -> rank 2

	f := NewFullRank([][]int{lineA, lineB, lineC}, []int{1, 3, 2}, "sum", 0)
	acc := NewAccumulator(6)
	assert.True(t, f.Enforce(grid, acc))

	bad := NewFullRank([][]int{lineA, lineB, lineC}, []int{3, 1, 2}, "sum", 0)
	assert.False(t, bad.Enforce(grid, acc))
}

func TestFullRankByCountOfTarget(t *testing.T) {
	grid := newTestGrid(9, 4)
	lineA := []int{0, 1}
	lineB := []int{2, 3}
	fixLine(grid, lineA, []int{5, 5}) // two 5s
	fixLine(grid, lineB, []int{5, 1}) // one 5

	f := NewFullRank([][]int{lineA, lineB}, []int{2, 1}, "count", 5) // lineA has more 5s, so ranks higher
	acc := NewAccumulator(4)
	assert.True(t, f.Enforce(grid, acc))
}
