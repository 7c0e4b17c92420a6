package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildErrorMessage(t *testing.T) {
	err := NewBuildError(ErrInvalidArguments, "Cage", []string{"R1C1", "R1C2"}, "target %d out of range", 99)
	assert.Contains(t, err.Error(), "invalid_arguments")
	assert.Contains(t, err.Error(), "Cage")
	assert.Contains(t, err.Error(), "R1C1")
	assert.Contains(t, err.Error(), "target 99 out of range")
}

func TestBuildErrorMessageWithoutCells(t *testing.T) {
	err := NewBuildError(ErrUnknownKind, "Bogus", nil, "not recognized")
	assert.NotContains(t, err.Error(), "[]")
	assert.Contains(t, err.Error(), "Bogus")
}
