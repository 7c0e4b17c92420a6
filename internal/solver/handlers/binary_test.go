package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"variantsudoku/internal/core"
)

func TestBinaryWhiteDotPrunesNonConsecutive(t *testing.T) {
	grid := newTestGrid(9, 2)
	grid.Fix(0, 5)
	bn := NewBinary(0, 1, WhiteDotRelation, false)
	acc := NewAccumulator(2)

	require.True(t, bn.Enforce(grid, acc))
	assert.Equal(t, core.MaskOf(4, 6), grid.Cells[1])
}

func TestBinaryBlackDotPrunesNonDouble(t *testing.T) {
	grid := newTestGrid(9, 2)
	grid.Fix(0, 4)
	bn := NewBinary(0, 1, BlackDotRelation, false)
	acc := NewAccumulator(2)

	require.True(t, bn.Enforce(grid, acc))
	assert.Equal(t, core.MaskOf(2, 8), grid.Cells[1])
}

func TestBinaryNegatedExcludesRelation(t *testing.T) {
	grid := newTestGrid(9, 2)
	grid.Fix(0, 5)
	bn := NewBinary(0, 1, WhiteDotRelation, true) // anti-consecutive
	acc := NewAccumulator(2)

	require.True(t, bn.Enforce(grid, acc))
	assert.False(t, grid.Cells[1].Has(4))
	assert.False(t, grid.Cells[1].Has(6))
	assert.True(t, grid.Cells[1].Has(1))
}

func TestBinaryGreaterThanIsDirectional(t *testing.T) {
	grid := newTestGrid(9, 2)
	bn := NewBinary(0, 1, GreaterThanRelation, false)
	acc := NewAccumulator(2)

	require.True(t, bn.Enforce(grid, acc))
	assert.False(t, grid.Cells[0].Has(1), "cell a can never be 1 when a>b is required")
	assert.False(t, grid.Cells[1].Has(9), "cell b can never be 9 when a>b is required")
}

func TestBinaryDetectsInfeasibility(t *testing.T) {
	grid := newTestGrid(9, 2)
	grid.Fix(0, 5)
	grid.Fix(1, 5)
	bn := NewBinary(0, 1, WhiteDotRelation, false)
	acc := NewAccumulator(2)
	assert.False(t, bn.Enforce(grid, acc))
}

func TestSumRelationAndRatioRelation(t *testing.T) {
	sum10 := SumRelation(10)
	assert.True(t, sum10(4, 6))
	assert.False(t, sum10(4, 5))

	ratio3 := RatioRelation(3)
	assert.True(t, ratio3(2, 6))
	assert.True(t, ratio3(6, 2))
	assert.False(t, ratio3(2, 5))
}

func TestDifferenceRelation(t *testing.T) {
	diff2 := DifferenceRelation(2)
	assert.True(t, diff2(5, 3))
	assert.True(t, diff2(3, 5))
	assert.False(t, diff2(5, 4))
}
