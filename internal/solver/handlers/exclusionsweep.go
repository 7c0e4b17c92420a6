package handlers

import (
	"variantsudoku/internal/core"
	"variantsudoku/internal/solver/exclude"
)

// ExclusionSweep turns the frozen cell-exclusion graph itself into a
// propagating handler: naked-single elimination over every pair of cells
// any Initialize hook registered as mutually exclusive (region units, but
// also any handler that calls ex.AddMutualGroup on its own cells, such as
// a unique Cage). Without it, an AddMutualGroup call would only ever
// affect selectCell's degree tiebreak and ValidateLayout's direct check,
// never actual candidate propagation.
type ExclusionSweep struct {
	ex    *exclude.Graph
	cells []int
}

// NewExclusionSweep wraps ex, watching every cell in the shape.
func NewExclusionSweep(ex *exclude.Graph) *ExclusionSweep {
	cells := make([]int, ex.NumCells())
	for i := range cells {
		cells[i] = i
	}
	return &ExclusionSweep{ex: ex, cells: cells}
}

func (s *ExclusionSweep) Cells() []int  { return s.cells }
func (s *ExclusionSweep) Priority() int { return PriorityUnit }
func (s *ExclusionSweep) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

// Enforce never gets requeued by its own touches (RunToFixpoint only wakes a
// handler on some OTHER handler's touch), so it loops to its own fixpoint
// internally instead of relying on a single top-to-bottom sweep.
func (s *ExclusionSweep) Enforce(grid *core.Grid, acc *Accumulator) bool {
	for {
		changed := false
		for idx, m := range grid.Cells {
			d, ok := m.Single()
			if !ok {
				continue
			}
			ok = true
			s.ex.Neighbors(idx).ForEach(func(peer int) {
				if !ok || peer == idx {
					return
				}
				if grid.Exclude(peer, d) {
					changed = true
					acc.AddForCell(peer)
					if grid.Cells[peer].IsEmpty() {
						ok = false
					}
				}
			})
			if !ok {
				return false
			}
		}
		if !changed {
			return true
		}
	}
}
