package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"variantsudoku/internal/core"
	"variantsudoku/internal/solver/exclude"
)

func TestExclusionSweepPropagatesNakedSingleAcrossMutualGroup(t *testing.T) {
	grid := newTestGrid(4, 4)
	grid.Fix(0, 1)
	ex := exclude.New(4)
	ex.AddMutualGroup([]int{0, 1, 2, 3})
	ex.Freeze()
	s := NewExclusionSweep(ex)
	acc := NewAccumulator(4)

	ok := s.Enforce(grid, acc)
	require.True(t, ok)
	assert.False(t, grid.Cells[1].Has(1))
	assert.False(t, grid.Cells[2].Has(1))
	assert.False(t, grid.Cells[3].Has(1))
}

func TestExclusionSweepCascadesThroughNewlyCreatedSinglesInOneCall(t *testing.T) {
	// 0 and 1 sit in one group, 1 and 2 in another: once 0 forces 1 to a
	// single value, that new single must itself propagate onto 2 within the
	// same Enforce call, since RunToFixpoint never requeues a handler on its
	// own touches.
	grid := newTestGrid(2, 3)
	grid.Fix(0, 1)
	grid.Set(1, core.MaskOf(1, 2))
	ex := exclude.New(3)
	ex.AddMutualGroup([]int{0, 1})
	ex.AddMutualGroup([]int{1, 2})
	ex.Freeze()
	s := NewExclusionSweep(ex)
	acc := NewAccumulator(3)

	ok := s.Enforce(grid, acc)
	require.True(t, ok)
	assert.Equal(t, core.MaskOf(2), grid.Cells[1])
	assert.False(t, grid.Cells[2].Has(2))
}

func TestExclusionSweepDetectsInfeasibilityWhenAPeerIsEmptied(t *testing.T) {
	grid := newTestGrid(1, 2)
	grid.Fix(0, 1)
	grid.Set(1, core.MaskOf(1))
	ex := exclude.New(2)
	ex.AddMutualGroup([]int{0, 1})
	ex.Freeze()
	s := NewExclusionSweep(ex)
	acc := NewAccumulator(2)

	ok := s.Enforce(grid, acc)
	assert.False(t, ok)
}

func TestExclusionSweepNoopOnEmptyGraph(t *testing.T) {
	grid := newTestGrid(4, 4)
	grid.Fix(0, 1)
	ex := exclude.New(4)
	ex.Freeze()
	s := NewExclusionSweep(ex)
	acc := NewAccumulator(4)

	ok := s.Enforce(grid, acc)
	require.True(t, ok)
	assert.True(t, grid.Cells[1].Has(1))
}
