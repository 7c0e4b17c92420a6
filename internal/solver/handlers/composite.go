package handlers

import (
	"variantsudoku/internal/core"
	"variantsudoku/internal/solver/exclude"
)

// Or requires at least one child handler's constraint to hold. Since
// propagation cannot know in advance which disjunct will hold, Enforce
// trial-runs each child against a cloned grid and keeps only the union of
// candidates every trial that didn't prove infeasible is still allowing
// (§4.3.7, §9's design note on composite handlers cloning the grid
// rather than attempting incremental union propagation). Depth-limited:
// a nested Or inside an Or is trial-run as an opaque child, never
// recursively expanded past maxDepth, to bound worst-case cost.
type Or struct {
	cells    []int
	children []Handler
	maxDepth int
	depth    int
}

// NewOr builds a disjunction over children, all of which must share
// cells as their combined footprint. maxDepth bounds how many nested Or
// levels will themselves trial-expand their own children; depth is the
// nesting level of this instance (0 for a top-level Or).
func NewOr(cells []int, children []Handler, maxDepth, depth int) *Or {
	return &Or{cells: append([]int(nil), cells...), children: children, maxDepth: maxDepth, depth: depth}
}

func (o *Or) Cells() []int  { return o.cells }
func (o *Or) Priority() int { return PriorityComposite }

func (o *Or) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	// A disjunction never contributes mutual exclusions of its own. Its
	// children's Initialize hooks are not called, neither here nor by the
	// builder (which initializes only top-level handlers), so a child of
	// an Or registers no exclusions and allocates no scratch.
	return true
}

func (o *Or) Enforce(grid *core.Grid, acc *Accumulator) bool {
	if o.depth > o.maxDepth {
		return true
	}
	hasUnion := make(map[int]core.Mask, len(o.cells))
	for _, c := range o.cells {
		hasUnion[c] = 0
	}
	anyFeasible := false
	for _, child := range o.children {
		trial := grid.Clone()
		noop := NoopAccumulator(len(trial.Cells))
		if !child.Enforce(trial, noop) {
			continue
		}
		anyFeasible = true
		for _, c := range o.cells {
			hasUnion[c] = hasUnion[c].Union(trial.Cells[c])
		}
	}
	if !anyFeasible {
		return false
	}
	for _, c := range o.cells {
		before := grid.Cells[c]
		after := before.Intersect(hasUnion[c])
		if after != before {
			grid.Cells[c] = after
			acc.AddForCell(c)
		}
		if after.IsEmpty() {
			return false
		}
	}
	return true
}

// And requires every child to hold simultaneously; it is a thin
// aggregate that simply runs each child's Enforce in sequence against the
// real grid (no cloning needed, since every child must hold anyway).
type And struct {
	cells    []int
	children []Handler
}

func NewAnd(cells []int, children []Handler) *And {
	return &And{cells: append([]int(nil), cells...), children: children}
}

func (a *And) Cells() []int  { return a.cells }
func (a *And) Priority() int { return PriorityComposite }
func (a *And) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	for _, child := range a.children {
		if !child.Initialize(grid, ex, shape, scratch) {
			return false
		}
	}
	return true
}

func (a *And) Enforce(grid *core.Grid, acc *Accumulator) bool {
	for _, child := range a.children {
		if !child.Enforce(grid, acc) {
			return false
		}
	}
	return true
}
