// Package handlers implements the constraint handler protocol (§4.3) and
// the full handler library: one type per variant rule, sharing common
// propagation helpers (a sum-range helper for the cage/arrow family, an
// AC-3 pairwise helper for dot/pair constraints, a sliding-window helper
// for line constraints, forward-backward reachability for NFA/Regex).
package handlers

import (
	"variantsudoku/internal/core"
	"variantsudoku/internal/solver/exclude"
)

// Handler is the polymorphic constraint type every variant rule
// implements (§4.3). Implementations must be safe to call Enforce on
// repeatedly for an unchanged grid with no further effect (idempotence).
type Handler interface {
	// Cells returns the ordered, duplicate-free list of cell indices this
	// handler owns.
	Cells() []int

	// Priority controls dequeue order: higher values run first. By
	// convention unit, pairwise, line and sum handlers use the hundreds,
	// outside-clue, global and composite handlers the tens, and the heavy
	// NFA handler the ones.
	Priority() int

	// Initialize may prune grid, may register mutual exclusions into ex,
	// and may allocate scratch space. Called once, in declaration order,
	// before search begins. Returns false if it proves the puzzle
	// infeasible.
	Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool

	// Enforce prunes grid and records every cell it tightened into acc.
	// Returns false if it proves no assignment survives. Must never
	// enlarge a mask and must not touch cells outside Cells() except via
	// exclusions already registered in Initialize.
	Enforce(grid *core.Grid, acc *Accumulator) bool
}

// Priority bands, highest-numbered-runs-first (the builder sorts handlers
// by descending priority).
const (
	PriorityUnit      = 300 // row/column/box/jigsaw/windoku/diagonal/AllDifferent
	PriorityPairwise  = 200 // dot/pair/binary
	PriorityLine      = 150 // thermo/whisper/renban/palindrome/zipper/...
	PrioritySum       = 100 // cage/sum/arrow/between/lockout/...
	PriorityOutside   = 80  // skyscraper/sandwich/xsum/littlekiller/fullrank
	PriorityGlobal    = 50  // FullGridRequiredValues
	PriorityComposite = 10  // Or/And
	PriorityHeavy     = 1   // NFA/Regex
)

// Scratch is a typed linear arena handlers may allocate fixed-size integer
// buffers from during Initialize, receiving a stable offset (§4.5). It is
// never mutated after init except through handler-local offsets.
type Scratch struct {
	buf []int32
}

// NewScratch allocates an empty arena.
func NewScratch() *Scratch { return &Scratch{} }

// Alloc grows the arena by n int32 slots and returns the stable offset at
// which they start.
func (s *Scratch) Alloc(n int) int {
	off := len(s.buf)
	s.buf = append(s.buf, make([]int32, n)...)
	return off
}

// Slice returns the n-element window starting at offset off.
func (s *Scratch) Slice(off, n int) []int32 {
	return s.buf[off : off+n]
}

// Accumulator is the per-propagation work record (§3 "Accumulator"): which
// cells were pruned since the last handler ran. The engine re-enqueues
// handlers that watch those cells.
type Accumulator struct {
	touched core.BitSet
	order   []int
}

// NewAccumulator allocates an accumulator over numCells cells.
func NewAccumulator(numCells int) *Accumulator {
	return &Accumulator{touched: core.NewBitSet(numCells)}
}

// AddForCell records that cell idx's mask was tightened.
func (a *Accumulator) AddForCell(idx int) {
	if !a.touched.Test(idx) {
		a.touched.Set(idx)
		a.order = append(a.order, idx)
	}
}

// Touched returns the cells recorded since the last Reset, in the order
// they were first added.
func (a *Accumulator) Touched() []int { return a.order }

// Reset clears the accumulator for the next propagation episode.
func (a *Accumulator) Reset() {
	a.touched.Reset()
	a.order = a.order[:0]
}

// NoopAccumulator is a throwaway accumulator for read-only Enforce calls
// (§8's "every handler's enforce(s, noop_accumulator) returns feasible and
// mutates no cell" testable property).
func NoopAccumulator(numCells int) *Accumulator { return NewAccumulator(numCells) }
