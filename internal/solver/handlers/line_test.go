package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"variantsudoku/internal/core"
)

func TestThermoEnforcesStrictIncrease(t *testing.T) {
	grid := newTestGrid(9, 3)
	th := NewThermo([]int{0, 1, 2})
	acc := NewAccumulator(3)

	require.True(t, th.Enforce(grid, acc))
	assert.False(t, grid.Cells[0].Has(9), "the bulb can never be the max digit on a 3-cell thermo")
	assert.False(t, grid.Cells[2].Has(1), "the tip can never be the min digit on a 3-cell thermo")
	assert.False(t, grid.Cells[0].Has(8), "the bulb must leave room for two higher digits")
}

func TestThermoDetectsInfeasibility(t *testing.T) {
	grid := newTestGrid(9, 3)
	grid.Fix(0, 8)
	grid.Fix(1, 9)
	th := NewThermo([]int{0, 1, 2})
	acc := NewAccumulator(3)
	assert.False(t, th.Enforce(grid, acc), "no digit exceeds 9 for the tip")
}

func TestRenbanAcceptsAConsecutiveRun(t *testing.T) {
	grid := newTestGrid(9, 3)
	grid.Fix(0, 5)
	grid.Fix(1, 6)
	grid.Fix(2, 7)
	r := NewRenban([]int{0, 1, 2})
	acc := NewAccumulator(3)

	require.True(t, r.Enforce(grid, acc))
	assert.Equal(t, core.MaskOf(5), grid.Cells[0])
	assert.Equal(t, core.MaskOf(6), grid.Cells[1])
	assert.Equal(t, core.MaskOf(7), grid.Cells[2])
}

func TestPalindromeMirrorsCandidates(t *testing.T) {
	grid := newTestGrid(9, 3)
	grid.Fix(0, 7)
	p := NewPalindrome([]int{0, 1, 2})
	acc := NewAccumulator(3)

	require.True(t, p.Enforce(grid, acc))
	assert.Equal(t, core.MaskOf(7), grid.Cells[2])
}

func TestSameValuesRestrictsToSharedDigits(t *testing.T) {
	grid := newTestGrid(9, 4)
	grid.Set(0, core.MaskOf(1, 2, 3))
	grid.Set(1, core.MaskOf(1, 2, 3))
	grid.Set(2, core.MaskOf(3, 4, 5))
	grid.Set(3, core.MaskOf(3, 4, 5))
	sv := NewSameValues([]int{0, 1}, []int{2, 3})
	acc := NewAccumulator(4)

	require.True(t, sv.Enforce(grid, acc))
	for _, idx := range []int{0, 1, 2, 3} {
		assert.Equal(t, core.MaskOf(3), grid.Cells[idx], "only digit 3 is reachable by both groups")
	}
}

func TestContainExactRequiresEveryValueReachable(t *testing.T) {
	grid := newTestGrid(9, 2)
	grid.Set(0, core.MaskOf(5, 6))
	grid.Set(1, core.MaskOf(5, 6))
	c := NewContainExact([]int{0, 1}, []int{1, 5})
	acc := NewAccumulator(2)
	assert.False(t, c.Enforce(grid, acc), "digit 1 is unreachable in either cell")
}

func TestContainAtLeastFixesHiddenSingle(t *testing.T) {
	grid := newTestGrid(9, 3)
	grid.Set(0, core.MaskOf(2, 4))
	grid.Set(1, core.MaskOf(2, 3, 4))
	grid.Set(2, core.MaskOf(2, 4))
	c := NewContainAtLeast([]int{0, 1, 2}, []int{3})
	acc := NewAccumulator(3)

	require.True(t, c.Enforce(grid, acc))
	assert.Equal(t, core.MaskOf(3), grid.Cells[1])
}
