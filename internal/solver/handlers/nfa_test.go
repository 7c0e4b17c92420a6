package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"variantsudoku/internal/core"
)

func TestNFAHandlerCompileRunNarrowsToAllowedDigits(t *testing.T) {
	grid := newTestGrid(9, 2)
	allowed := core.MaskOf(1, 2, 3)
	nfa := CompileRun(2, allowed)
	h := NewNFAHandler([]int{0, 1}, nfa)
	acc := NewAccumulator(2)

	require.True(t, h.Enforce(grid, acc))
	assert.Equal(t, allowed, grid.Cells[0])
	assert.Equal(t, allowed, grid.Cells[1])
}

func TestNFAHandlerDetectsInfeasibleRun(t *testing.T) {
	grid := newTestGrid(9, 2)
	grid.Fix(0, 9) // 9 is not in the allowed alphabet
	allowed := core.MaskOf(1, 2, 3)
	nfa := CompileRun(2, allowed)
	h := NewNFAHandler([]int{0, 1}, nfa)
	acc := NewAccumulator(2)
	assert.False(t, h.Enforce(grid, acc))
}

func TestNFAHandlerAlternatingParity(t *testing.T) {
	// custom automaton: position 0 must be odd, position 1 must be even
	b := NewNFABuilder()
	odd := b.AddState(false)
	even := b.AddState(true)
	for _, d := range []int{1, 3, 5, 7, 9} {
		b.AddTransition(0, d, odd)
	}
	for _, d := range []int{2, 4, 6, 8} {
		b.AddTransition(odd, d, even)
	}
	nfa := b.Build(0)

	grid := newTestGrid(9, 2)
	h := NewNFAHandler([]int{0, 1}, nfa)
	acc := NewAccumulator(2)

	require.True(t, h.Enforce(grid, acc))
	assert.Equal(t, core.MaskOf(1, 3, 5, 7, 9), grid.Cells[0])
	assert.Equal(t, core.MaskOf(2, 4, 6, 8), grid.Cells[1])
}
