package masks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"variantsudoku/internal/core"
)

func TestForCachesByDomainSize(t *testing.T) {
	t1 := For(9)
	t2 := For(9)
	assert.Same(t, t1, t2, "tables for the same V must be cached, not rebuilt")

	t16 := For(16)
	assert.NotSame(t, t1, t16)
}

func TestTablesPopCountMinMaxSum(t *testing.T) {
	tbl := For(9)
	m := core.MaskOf(1, 3, 9)
	assert.Equal(t, uint8(3), tbl.PopCount[m])
	assert.Equal(t, uint8(1), tbl.MinDigit[m])
	assert.Equal(t, uint8(9), tbl.MaxDigit[m])
	assert.Equal(t, int16(13), tbl.SumAll[m])
}

func TestMinMaxSubsetSum(t *testing.T) {
	tbl := For(9)
	m := core.MaskOf(1, 2, 3, 9)

	lo, hi, ok := tbl.MinMaxSubsetSum(m, 2)
	require.True(t, ok)
	assert.Equal(t, 3, lo) // 1+2
	assert.Equal(t, 12, hi) // 3+9

	_, _, ok = tbl.MinMaxSubsetSum(m, 5)
	assert.False(t, ok, "cannot pick more digits than are present")

	lo, hi, ok = tbl.MinMaxSubsetSum(m, 0)
	assert.True(t, ok)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi)
}

func TestCombinationsEnumeratesEveryKSubset(t *testing.T) {
	tbl := For(9)
	m := core.MaskOf(1, 2, 3, 4)

	var seen []core.Mask
	tbl.Combinations(m, 2, func(subset core.Mask) bool {
		seen = append(seen, subset)
		return true
	})

	// C(4,2) = 6 distinct pairs
	assert.Len(t, seen, 6)
	for _, s := range seen {
		assert.Equal(t, 2, s.Count())
		assert.Equal(t, s, s.Intersect(m), "every subset must be a subset of the source mask")
	}
}

func TestCombinationsStopsEarly(t *testing.T) {
	tbl := For(9)
	m := core.MaskOf(1, 2, 3, 4)

	count := 0
	tbl.Combinations(m, 2, func(core.Mask) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}
