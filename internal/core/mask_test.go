package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullMask(t *testing.T) {
	assert.Equal(t, Mask(0x1FF), FullMask(9))
	assert.Equal(t, Mask(0xFFFF), FullMask(16))
	assert.Equal(t, Mask(0x1), FullMask(1))
}

func TestMaskBitOps(t *testing.T) {
	m := MaskOf(1, 3, 9)
	assert.True(t, m.Has(1))
	assert.True(t, m.Has(3))
	assert.True(t, m.Has(9))
	assert.False(t, m.Has(2))
	assert.Equal(t, 3, m.Count())

	m2 := m.With(5)
	assert.True(t, m2.Has(5))
	assert.Equal(t, 4, m2.Count())

	m3 := m2.Without(5)
	assert.Equal(t, m, m3)
}

func TestMaskFixedAndSingle(t *testing.T) {
	tests := []struct {
		m       Mask
		fixed   bool
		digit   int
	}{
		{MaskOf(4), true, 4},
		{MaskOf(1, 2), false, 0},
		{Mask(0), false, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.fixed, tt.m.IsFixed())
		d, ok := tt.m.Single()
		assert.Equal(t, tt.fixed, ok)
		if ok {
			assert.Equal(t, tt.digit, d)
		}
	}
}

func TestMaskLowestHighest(t *testing.T) {
	m := MaskOf(2, 5, 7)
	assert.Equal(t, 2, m.LowestDigit())
	assert.Equal(t, 7, m.HighestDigit())

	var empty Mask
	assert.Equal(t, 0, empty.LowestDigit())
	assert.Equal(t, 0, empty.HighestDigit())
}

func TestMaskSetOps(t *testing.T) {
	a := MaskOf(1, 2, 3)
	b := MaskOf(2, 3, 4)

	assert.Equal(t, MaskOf(2, 3), a.Intersect(b))
	assert.Equal(t, MaskOf(1, 2, 3, 4), a.Union(b))
	assert.Equal(t, MaskOf(1), a.Subtract(b))
}

func TestMaskDigitsAscending(t *testing.T) {
	m := MaskOf(9, 1, 5, 3)
	assert.Equal(t, []int{1, 3, 5, 9}, m.Digits())
}

func TestMaskString(t *testing.T) {
	assert.Equal(t, "{}", Mask(0).String())
	assert.Equal(t, "{1,3,9}", MaskOf(1, 3, 9).String())
}

func TestMaskIsEmpty(t *testing.T) {
	assert.True(t, Mask(0).IsEmpty())
	assert.False(t, MaskOf(1).IsEmpty())
}
