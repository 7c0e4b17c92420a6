package handlers

import (
	"variantsudoku/internal/core"
	"variantsudoku/internal/solver/exclude"
)

// FullGridRequiredValues requires that, across the entire grid, every
// digit in required appears at least minCount times (§4.3.8's global
// counting family: e.g. "every grid must use at least four 9s"). Unlike
// every other handler, its Cells() spans the whole board, since any cell
// assignment can affect whether the count is still reachable.
type FullGridRequiredValues struct {
	allCells []int
	required map[int]int // digit -> minimum occurrences
}

// NewFullGridRequiredValues builds the handler over every cell in the
// grid (numCells) with the given digit -> minimum-count requirements.
func NewFullGridRequiredValues(numCells int, required map[int]int) *FullGridRequiredValues {
	cells := make([]int, numCells)
	for i := range cells {
		cells[i] = i
	}
	cp := make(map[int]int, len(required))
	for d, c := range required {
		cp[d] = c
	}
	return &FullGridRequiredValues{allCells: cells, required: cp}
}

func (f *FullGridRequiredValues) Cells() []int  { return f.allCells }
func (f *FullGridRequiredValues) Priority() int { return PriorityGlobal }
func (f *FullGridRequiredValues) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

// Enforce checks, for each required digit, that enough cells can still
// hold it to reach the minimum; if exactly the minimum number of cells
// can still hold it, those cells are forced to it (every other assignment
// would fall short).
func (f *FullGridRequiredValues) Enforce(grid *core.Grid, acc *Accumulator) bool {
	for d, minCount := range f.required {
		var candidates []int
		fixedCount := 0
		for _, idx := range f.allCells {
			if grid.Cells[idx].Has(d) {
				candidates = append(candidates, idx)
			}
			if v, ok := grid.Cells[idx].Single(); ok && v == d {
				fixedCount++
			}
		}
		if len(candidates) < minCount {
			return false
		}
		if fixedCount >= minCount {
			continue
		}
		if len(candidates) == minCount {
			for _, idx := range candidates {
				if grid.Fix(idx, d) {
					acc.AddForCell(idx)
				}
				if grid.Cells[idx].IsEmpty() {
					return false
				}
			}
		}
	}
	return true
}
