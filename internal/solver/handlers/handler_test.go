package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulatorTracksTouchedCellsInOrder(t *testing.T) {
	acc := NewAccumulator(20)
	acc.AddForCell(5)
	acc.AddForCell(2)
	acc.AddForCell(5) // duplicate, must not be recorded twice

	assert.Equal(t, []int{5, 2}, acc.Touched())
}

func TestAccumulatorReset(t *testing.T) {
	acc := NewAccumulator(20)
	acc.AddForCell(1)
	acc.Reset()
	assert.Empty(t, acc.Touched())
}

func TestScratchAllocReturnsStableOffsets(t *testing.T) {
	s := NewScratch()
	off1 := s.Alloc(3)
	off2 := s.Alloc(2)
	assert.Equal(t, 0, off1)
	assert.Equal(t, 3, off2)

	slice := s.Slice(off2, 2)
	assert.Len(t, slice, 2)
	slice[0] = 7
	assert.Equal(t, int32(7), s.Slice(off2, 2)[0])
}

func TestNoopAccumulatorIsThrowaway(t *testing.T) {
	a := NoopAccumulator(5)
	a.AddForCell(1)
	assert.Equal(t, []int{1}, a.Touched())
	// distinct call produces an independent accumulator
	b := NoopAccumulator(5)
	assert.Empty(t, b.Touched())
}
