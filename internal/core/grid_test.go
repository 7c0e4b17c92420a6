package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridStartsFull(t *testing.T) {
	s := DefaultShape()
	g := NewGrid(s)
	for _, c := range g.Cells {
		assert.Equal(t, FullMask(9), c)
	}
}

func TestGridSetOnlyShrinks(t *testing.T) {
	s := DefaultShape()
	g := NewGrid(s)

	changed := g.Set(0, MaskOf(1, 2, 3))
	assert.True(t, changed)
	assert.Equal(t, MaskOf(1, 2, 3), g.Cells[0])

	changed = g.Set(0, FullMask(9))
	assert.False(t, changed, "intersecting with a superset must not change the cell or report a prune")
	assert.Equal(t, MaskOf(1, 2, 3), g.Cells[0])
}

func TestGridFixAndExclude(t *testing.T) {
	s := DefaultShape()
	g := NewGrid(s)

	assert.True(t, g.Fix(0, 5))
	assert.Equal(t, MaskOf(5), g.Cells[0])
	assert.False(t, g.Fix(0, 5), "fixing to the same digit again is not a change")

	assert.True(t, g.Exclude(1, 3))
	assert.False(t, g.Cells[1].Has(3))
}

func TestGridCloneIsIndependent(t *testing.T) {
	s := DefaultShape()
	g := NewGrid(s)
	g.Fix(0, 1)

	clone := g.Clone()
	clone.Fix(1, 2)

	assert.False(t, g.Cells[1].IsFixed())
	assert.True(t, clone.Cells[1].IsFixed())
}

func TestGridCopyFromRestoresBitExact(t *testing.T) {
	s := DefaultShape()
	g := NewGrid(s)
	snapshot := g.Clone()

	g.Fix(0, 1)
	g.Exclude(1, 2)
	assert.NotEqual(t, snapshot.Cells[0], g.Cells[0])

	g.CopyFrom(snapshot)
	assert.Equal(t, snapshot.Cells, g.Cells)
}

func TestGridIsCompleteAndHasEmptyCell(t *testing.T) {
	s, err := NewShape(1, 2, 2, 1, 2, false)
	require.NoError(t, err)
	g := NewGrid(s)
	assert.False(t, g.IsComplete())
	assert.False(t, g.HasEmptyCell())

	g.Fix(0, 1)
	assert.False(t, g.IsComplete())

	g.Fix(1, 2)
	assert.True(t, g.IsComplete())

	g.Cells[0] = Mask(0)
	assert.True(t, g.HasEmptyCell())
}

func TestGridToSolutionRequiresAllFixed(t *testing.T) {
	s, err := NewShape(1, 2, 2, 1, 2, false)
	require.NoError(t, err)
	g := NewGrid(s)
	_, ok := g.ToSolution()
	assert.False(t, ok)

	g.Fix(0, 1)
	g.Fix(1, 2)
	sol, ok := g.ToSolution()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, sol.Digits)
}
