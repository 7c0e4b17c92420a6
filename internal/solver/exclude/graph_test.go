package exclude

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddMutualIsSymmetric(t *testing.T) {
	g := New(10)
	g.AddMutual(1, 2)
	assert.True(t, g.Contains(1, 2))
	assert.True(t, g.Contains(2, 1))
	assert.False(t, g.Contains(1, 3))
}

func TestAddMutualIgnoresSelfPairs(t *testing.T) {
	g := New(10)
	g.AddMutual(4, 4)
	assert.False(t, g.Contains(4, 4))
}

func TestAddMutualGroupIsPairwise(t *testing.T) {
	g := New(10)
	g.AddMutualGroup([]int{1, 2, 3})
	assert.True(t, g.AllMutuallyExclusive([]int{1, 2, 3}))
	assert.False(t, g.Contains(1, 4))
}

func TestNeighbors(t *testing.T) {
	g := New(10)
	g.AddMutualGroup([]int{0, 1, 2})
	n := g.Neighbors(0)
	assert.True(t, n.Test(1))
	assert.True(t, n.Test(2))
	assert.False(t, n.Test(3))
}

func TestFreezeBlocksFurtherMutations(t *testing.T) {
	g := New(10)
	g.AddMutual(1, 2)
	g.Freeze()
	assert.True(t, g.Frozen())

	g.AddMutual(3, 4)
	assert.False(t, g.Contains(3, 4), "mutations after Freeze must be no-ops")
}

func TestNumCells(t *testing.T) {
	g := New(81)
	assert.Equal(t, 81, g.NumCells())
}
