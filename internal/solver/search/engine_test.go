package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"variantsudoku/internal/core"
	"variantsudoku/internal/solver/build"
)

// a 4x4 sudoku (2x2 boxes) with only the last row left as givens-free; the
// implicit row/column/box units, enforced through the exclusion sweep
// handler, narrow it to a single solution during Build's own initial
// propagation pass, before search ever branches.
func solved4x4Puzzle(t *testing.T) *build.Compiled {
	t.Helper()
	shape, err := core.NewShape(4, 4, 4, 2, 2, false)
	require.NoError(t, err)
	given := map[int]int{
		0: 1, 1: 2, 2: 3, 3: 4,
		4: 3, 5: 4, 6: 1, 7: 2,
		8: 2, 9: 1, 10: 4, 11: 3,
	}
	compiled, err := build.Build(shape, given, nil)
	require.NoError(t, err)
	return compiled
}

func TestBuildAlreadyResolvesFullyConstrainedGrid(t *testing.T) {
	compiled := solved4x4Puzzle(t)
	require.True(t, compiled.Grid.IsComplete())
	want := []int{
		1, 2, 3, 4,
		3, 4, 1, 2,
		2, 1, 4, 3,
		4, 3, 2, 1,
	}
	got, ok := compiled.Grid.ToSolution()
	require.True(t, ok)
	assert.Equal(t, want, got.Digits)
}

func TestEngineNthSolutionReturnsTheUniqueSolution(t *testing.T) {
	compiled := solved4x4Puzzle(t)
	engine := New(compiled)
	sol, ok, err := engine.NthSolution(context.Background(), 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3, 4, 3, 4, 1, 2, 2, 1, 4, 3, 4, 3, 2, 1}, sol.Digits)

	_, ok, err = engine.NthSolution(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok, "a uniquely-solved grid has no second solution")
}

func TestEngineCountSolutionsIsExactlyOne(t *testing.T) {
	compiled := solved4x4Puzzle(t)
	engine := New(compiled)
	count, exact, err := engine.CountSolutions(context.Background(), 0)
	require.NoError(t, err)
	assert.True(t, exact)
	assert.Equal(t, 1, count)
}

func TestEngineCountSolutionsRespectsCap(t *testing.T) {
	// an empty 2x2, no-boxes grid (no constraints at all) has 2^4 = 16
	// valid assignments; capping at 2 must report an inexact count
	shape, err := core.NewShape(2, 2, 2, 0, 0, true)
	require.NoError(t, err)
	compiled, err := build.Build(shape, nil, nil)
	require.NoError(t, err)
	engine := New(compiled)

	count, exact, err := engine.CountSolutions(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, exact)
	assert.Equal(t, 2, count)
}

func TestEngineSolutionsChannelStreamsAndCloses(t *testing.T) {
	compiled := solved4x4Puzzle(t)
	engine := New(compiled)
	ch := engine.Solutions(context.Background(), 0)

	var got []core.Solution
	for sol := range ch {
		got = append(got, sol)
	}
	require.Len(t, got, 1)
	assert.Equal(t, []int{1, 2, 3, 4, 3, 4, 1, 2, 2, 1, 4, 3, 4, 3, 2, 1}, got[0].Digits)
}

func TestEngineEstimateSolutionsOnFullyFixedGridIsOne(t *testing.T) {
	compiled := solved4x4Puzzle(t)
	engine := New(compiled)
	assert.Equal(t, 1.0, engine.EstimateSolutions())
}

func TestEngineEstimateSolutionsMultipliesUnfixedCandidateCounts(t *testing.T) {
	shape, err := core.NewShape(1, 2, 9, 0, 0, true)
	require.NoError(t, err)
	compiled, err := build.Build(shape, nil, nil)
	require.NoError(t, err)
	engine := New(compiled)
	assert.Equal(t, 81.0, engine.EstimateSolutions())
}

func TestEngineValidateLayoutAcceptsTheSolutionAndRejectsADuplicate(t *testing.T) {
	compiled := solved4x4Puzzle(t)
	engine := New(compiled)

	good := core.Solution{Shape: compiled.Shape, Digits: []int{1, 2, 3, 4, 3, 4, 1, 2, 2, 1, 4, 3, 4, 3, 2, 1}}
	ok, err := engine.ValidateLayout(good)
	require.NoError(t, err)
	assert.True(t, ok)

	bad := core.Solution{Shape: compiled.Shape, Digits: []int{1, 2, 3, 4, 3, 4, 1, 2, 2, 1, 4, 3, 4, 3, 2, 2}} // row 3 repeats 2
	ok, err = engine.ValidateLayout(bad)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngineValidateLayoutRejectsWrongCellCount(t *testing.T) {
	compiled := solved4x4Puzzle(t)
	engine := New(compiled)
	_, err := engine.ValidateLayout(core.Solution{Shape: compiled.Shape, Digits: []int{1, 2, 3}})
	assert.Error(t, err)
}

func TestEngineNthStepReturnsFalseWhenAlreadyResolved(t *testing.T) {
	compiled := solved4x4Puzzle(t)
	engine := New(compiled)
	_, ok := engine.NthStep(1)
	assert.False(t, ok, "the grid is already complete after the initial propagation pass")
}

func TestEngineNthStepZeroReturnsThePropagatedGrid(t *testing.T) {
	compiled := solved4x4Puzzle(t)
	engine := New(compiled)
	grid, ok := engine.NthStep(0)
	require.True(t, ok)
	assert.True(t, grid.IsComplete())
}

func TestEngineNthSolutionRespectsContextCancellation(t *testing.T) {
	compiled := solved4x4Puzzle(t)
	engine := New(compiled)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := engine.NthSolution(ctx, 0)
	assert.Error(t, err)
}
