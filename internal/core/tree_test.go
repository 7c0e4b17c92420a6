package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintCloneIsDeep(t *testing.T) {
	c := &Constraint{
		Kind:   KindCage,
		Cells:  []int{1, 2, 3},
		Groups: [][]int{{1, 2}, {3}},
		Values: []int{5, 6},
		Pairs:  [][2]int{{1, 2}},
		Children: []*Constraint{
			{Kind: KindRow, Cells: []int{4, 5}},
		},
	}

	clone := c.Clone()
	clone.Cells[0] = 99
	clone.Groups[0][0] = 99
	clone.Values[0] = 99
	clone.Children[0].Cells[0] = 99

	assert.Equal(t, 1, c.Cells[0])
	assert.Equal(t, 1, c.Groups[0][0])
	assert.Equal(t, 5, c.Values[0])
	assert.Equal(t, 4, c.Children[0].Cells[0])
}

func TestConstraintCloneNil(t *testing.T) {
	var c *Constraint
	assert.Nil(t, c.Clone())
}
