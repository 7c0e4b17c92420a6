// Package core holds the data model shared by every solver layer: grid
// shape, value masks, the mutable grid, solutions, counters, and the
// constraint tree the builder compiles into handlers.
package core

import "fmt"

// MaxValues is the largest per-cell domain size the engine supports. Masks
// are stored in a uint16, so 16 is the hard ceiling.
const MaxValues = 16

// Shape is the immutable descriptor of a puzzle's grid: dimensions, the
// per-cell domain size, and the default box partition (if any). A solver
// instance is built for exactly one Shape and it never changes afterward.
type Shape struct {
	Rows      int
	Cols      int
	Values    int
	BoxHeight int
	BoxWidth  int
	NoBoxes   bool
}

// NewShape validates and returns a Shape. BoxHeight/BoxWidth are ignored
// when noBoxes is true; otherwise boxHeight*boxWidth must equal values.
func NewShape(rows, cols, values, boxHeight, boxWidth int, noBoxes bool) (Shape, error) {
	s := Shape{Rows: rows, Cols: cols, Values: values, BoxHeight: boxHeight, BoxWidth: boxWidth, NoBoxes: noBoxes}
	if rows <= 0 || cols <= 0 {
		return Shape{}, fmt.Errorf("core: shape must have positive dimensions, got %dx%d", rows, cols)
	}
	if values <= 0 || values > MaxValues {
		return Shape{}, fmt.Errorf("core: numValues must be in [1,%d], got %d", MaxValues, values)
	}
	if !noBoxes {
		if boxHeight <= 0 || boxWidth <= 0 {
			return Shape{}, fmt.Errorf("core: boxHeight/boxWidth must be positive unless NoBoxes is set")
		}
		if boxHeight*boxWidth != values {
			return Shape{}, fmt.Errorf("core: boxHeight*boxWidth (%d*%d) must equal numValues (%d)", boxHeight, boxWidth, values)
		}
		if rows%boxHeight != 0 || cols%boxWidth != 0 {
			return Shape{}, fmt.Errorf("core: grid dimensions %dx%d not divisible by box %dx%d", rows, cols, boxHeight, boxWidth)
		}
	}
	return s, nil
}

// DefaultShape is the classic 9x9 puzzle: 3x3 boxes, digits 1-9.
func DefaultShape() Shape {
	s, _ := NewShape(9, 9, 9, 3, 3, false)
	return s
}

// NumCells returns R*C.
func (s Shape) NumCells() int { return s.Rows * s.Cols }

// IsSquare reports whether the grid is R=C.
func (s Shape) IsSquare() bool { return s.Rows == s.Cols }

// RowCol splits a flat cell index into (row, col), both 0-indexed.
func (s Shape) RowCol(idx int) (row, col int) {
	return idx / s.Cols, idx % s.Cols
}

// Index computes the flat index for a 0-indexed (row, col) pair.
func (s Shape) Index(row, col int) int {
	return row*s.Cols + col
}

// BoxOf returns the default box number (row-major, left-to-right,
// top-to-bottom) containing the given 0-indexed row/col, or -1 if the
// shape has no default boxes.
func (s Shape) BoxOf(row, col int) int {
	if s.NoBoxes {
		return -1
	}
	boxRow := row / s.BoxHeight
	boxCol := col / s.BoxWidth
	boxesPerRow := s.Cols / s.BoxWidth
	return boxRow*boxesPerRow + boxCol
}

// CellID renders the canonical external form "R<row>C<col>" for a flat
// 0-indexed cell, 1-indexing the row/column as the format requires.
func (s Shape) CellID(idx int) string {
	row, col := s.RowCol(idx)
	return fmt.Sprintf("R%dC%d", row+1, col+1)
}

// ParseCellID parses "R<row>C<col>" (1-indexed) into a flat 0-indexed cell.
func (s Shape) ParseCellID(id string) (int, error) {
	var row, col int
	if _, err := fmt.Sscanf(id, "R%dC%d", &row, &col); err != nil {
		return 0, fmt.Errorf("core: invalid cell id %q: %w", id, err)
	}
	if row < 1 || row > s.Rows || col < 1 || col > s.Cols {
		return 0, fmt.Errorf("core: cell id %q out of bounds for %dx%d shape", id, s.Rows, s.Cols)
	}
	return s.Index(row-1, col-1), nil
}
