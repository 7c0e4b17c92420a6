package handlers

import (
	"variantsudoku/internal/core"
	"variantsudoku/internal/solver/exclude"
)

// Region is the shared implementation behind every uniqueness-region kind
// (§4.3.1): row, column, box, jigsaw piece, windoku box, diagonal,
// disjoint-set, and explicit AllDifferent all reduce to "these cells form
// an all-different set of size k over V values."
type Region struct {
	cells     []int
	priority  int
	maxNaked  int // largest naked-subset size to check (0 disables it)
}

// NewRegion builds a uniqueness-region handler over cells. maxNaked bounds
// the naked-pair/triple search to keep it proportionate to region size;
// callers typically pass 3.
func NewRegion(cells []int, maxNaked int) *Region {
	return &Region{cells: append([]int(nil), cells...), priority: PriorityUnit, maxNaked: maxNaked}
}

func (r *Region) Cells() []int  { return r.cells }
func (r *Region) Priority() int { return r.priority }

// Initialize registers the region as a mutual-exclusion group; it is the
// region handler's only side effect on the exclusion graph.
func (r *Region) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	ex.AddMutualGroup(r.cells)
	return true
}

// Enforce applies naked-single propagation (a fixed cell excludes its
// digit from every region peer), hidden-single detection (a digit with
// exactly one hosting cell in a region of at least V cells gets fixed
// there), and, when the
// region is large enough, naked-pair/triple elimination.
func (r *Region) Enforce(grid *core.Grid, acc *Accumulator) bool {
	cells := r.cells

	// Naked singles: propagate each fixed cell's digit out to its peers.
	for _, idx := range cells {
		d, ok := grid.Cells[idx].Single()
		if !ok {
			continue
		}
		for _, peer := range cells {
			if peer == idx {
				continue
			}
			if grid.Exclude(peer, d) {
				acc.AddForCell(peer)
				if grid.Cells[peer].IsEmpty() {
					return false
				}
			}
		}
	}

	// Hidden singles: a digit present in exactly one cell's candidates
	// must go there. Only a region with a cell for every digit must hold
	// every digit, so smaller regions skip this step.
	values := valuesFromUnion(cells, grid)
	if len(cells) < grid.Shape.Values {
		values = nil
	}
	for _, d := range values {
		var only int = -1
		count := 0
		for _, idx := range cells {
			if grid.Cells[idx].Has(d) {
				count++
				only = idx
			}
		}
		if count == 1 {
			if !grid.Cells[only].IsFixed() {
				if grid.Fix(only, d) {
					acc.AddForCell(only)
				}
			}
		} else if count == 0 {
			return false
		}
	}

	if r.maxNaked >= 2 && len(cells) > r.maxNaked {
		if !r.eliminateNakedSubsets(grid, acc, 2) {
			return false
		}
	}
	if r.maxNaked >= 3 && len(cells) > r.maxNaked {
		if !r.eliminateNakedSubsets(grid, acc, 3) {
			return false
		}
	}

	for _, idx := range cells {
		if grid.Cells[idx].IsEmpty() {
			return false
		}
	}
	return true
}

// valuesFromUnion returns every digit of the domain, 1..V, derived from V
// rather than hardcoded to 9 (variant grids may use any V in [1,16]); the
// hidden-single pass then treats a digit with no hosting cell as
// infeasible.
func valuesFromUnion(cells []int, grid *core.Grid) []int {
	v := grid.Shape.Values
	out := make([]int, 0, v)
	for d := 1; d <= v; d++ {
		out = append(out, d)
	}
	return out
}

// eliminateNakedSubsets finds groups of exactly size unfixed cells whose
// combined candidate mask also has exactly size bits set, and removes
// those digits from every other cell in the region.
func (r *Region) eliminateNakedSubsets(grid *core.Grid, acc *Accumulator, size int) bool {
	var unfixed []int
	for _, idx := range r.cells {
		if !grid.Cells[idx].IsFixed() && !grid.Cells[idx].IsEmpty() {
			unfixed = append(unfixed, idx)
		}
	}
	if len(unfixed) <= size {
		return true
	}

	combo := make([]int, size)
	var recurse func(start, depth int) bool
	recurse = func(start, depth int) bool {
		if depth == size {
			var union core.Mask
			for _, ci := range combo {
				union = union.Union(grid.Cells[unfixed[ci]])
			}
			if union.Count() != size {
				return true
			}
			inSubset := make(map[int]bool, size)
			for _, ci := range combo {
				inSubset[unfixed[ci]] = true
			}
			for _, idx := range r.cells {
				if inSubset[idx] {
					continue
				}
				before := grid.Cells[idx]
				after := before.Subtract(union)
				if after != before {
					grid.Cells[idx] = after
					acc.AddForCell(idx)
					if after.IsEmpty() {
						return false
					}
				}
			}
			return true
		}
		for i := start; i < len(unfixed); i++ {
			combo[depth] = i
			if !recurse(i+1, depth+1) {
				return false
			}
		}
		return true
	}
	return recurse(0, 0)
}
