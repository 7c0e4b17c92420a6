// Package search implements the backtracking engine (§4.1, §4.5, §4.6):
// propagate-to-fixpoint, branch on the most constrained cell, and recurse,
// restoring bit-exact grid state on retreat.
package search

import (
	"context"
	"fmt"
	"time"

	"variantsudoku/internal/core"
	"variantsudoku/internal/solver/build"
	"variantsudoku/internal/solver/handlers"
)

// Progress is delivered to a caller-supplied callback during a long search
// (§5's concurrency model: cooperative cancellation plus observability,
// no background goroutines started without being told to).
type Progress struct {
	NodesExplored int64
	Depth         int
	Solutions     int64
}

// Engine runs search over a single Compiled puzzle. It is not safe for
// concurrent use by multiple goroutines against the same instance; callers
// wanting concurrent search of the same puzzle should Build a fresh
// Compiled per goroutine (construction is cheap relative to search).
type Engine struct {
	c        *build.Compiled
	acc      *handlers.Accumulator
	progress func(Progress)
	nodes    int64
}

// New wraps a compiled puzzle for search.
func New(c *build.Compiled) *Engine {
	return &Engine{c: c, acc: handlers.NewAccumulator(c.Shape.NumCells())}
}

// SetProgressCallback installs fn to be called periodically during long
// search operations. A nil fn disables reporting.
func (e *Engine) SetProgressCallback(fn func(Progress)) { e.progress = fn }

func (e *Engine) reportEvery() int64 { return 4096 }

func (e *Engine) maybeReport(depth int, solutions int64) {
	if e.progress == nil {
		return
	}
	if e.nodes%e.reportEvery() == 0 {
		e.progress(Progress{NodesExplored: e.nodes, Depth: depth, Solutions: solutions})
	}
}

// propagate runs every handler to a fixpoint starting from grid's current
// state, returning false if infeasibility is proven.
func (e *Engine) propagate(grid *core.Grid) bool {
	return build.RunToFixpoint(grid, e.c.Handlers, e.acc)
}

// NthSolution returns the n-th solution (0-indexed) in search order, or
// ok=false if fewer than n+1 solutions exist. ctx cancellation aborts the
// search early with ctx.Err().
func (e *Engine) NthSolution(ctx context.Context, n int) (core.Solution, bool, error) {
	if n < 0 {
		return core.Solution{}, false, fmt.Errorf("search: n must be >= 0")
	}
	var found core.Solution
	var ok bool
	count := 0
	err := e.dfs(ctx, e.c.Grid.Clone(), func(sol core.Solution) bool {
		if count == n {
			found, ok = sol, true
			return false
		}
		count++
		return true
	})
	if err != nil {
		return core.Solution{}, false, err
	}
	return found, ok, nil
}

// Solutions streams every solution to a channel, closing it when the
// search completes, ctx is cancelled, or limit solutions have been sent
// (limit <= 0 means unbounded). The caller must drain the channel or
// cancel ctx to avoid leaking the search goroutine.
func (e *Engine) Solutions(ctx context.Context, limit int) <-chan core.Solution {
	out := make(chan core.Solution)
	go func() {
		defer close(out)
		sent := 0
		e.dfs(ctx, e.c.Grid.Clone(), func(sol core.Solution) bool {
			select {
			case out <- sol:
			case <-ctx.Done():
				return false
			}
			sent++
			return limit <= 0 || sent < limit
		})
	}()
	return out
}

// CountSolutions counts solutions up to cap (cap <= 0 means unbounded).
// The returned bool is true if the count is exact (search exhausted
// before hitting cap); false means at least cap solutions exist.
func (e *Engine) CountSolutions(ctx context.Context, cap int) (int, bool, error) {
	count := 0
	exact := true
	err := e.dfs(ctx, e.c.Grid.Clone(), func(core.Solution) bool {
		count++
		if cap > 0 && count >= cap {
			exact = false
			return false
		}
		return true
	})
	if err != nil {
		return count, false, err
	}
	return count, exact, nil
}

// estimateTrials is the number of random descents averaged together by
// EstimateSolutions; more trials tighten the estimate at the cost of more
// propagation work.
const estimateTrials = 25

// estimateRNG is a small deterministic LCG, grounded on the same
// newRNG/shuffle idiom used for puzzle generation in the teacher's dp
// solver: math/rand's output isn't guaranteed stable across Go versions,
// and this engine only needs a cheap, self-contained stream of picks, not
// a cryptographic or statistically rigorous one.
type estimateRNG struct{ state int64 }

func newEstimateRNG(seed int64) *estimateRNG { return &estimateRNG{state: seed} }

func (r *estimateRNG) next() int {
	r.state = (r.state*1103515245 + 12345) & 0x7fffffff
	return int(r.state)
}

// EstimateSolutions returns a statistical estimate of the solution count
// via random-descent branching-factor sampling (§4.6): repeatedly walk
// from the root, at each step picking the most constrained cell and a
// uniformly random candidate digit for it, multiplying the branching
// factor (candidate count) seen at every step along the way. Each
// completed or dead-ended descent yields one sample; the average across
// estimateTrials samples is the returned estimate. A trial that proves
// infeasible contributes 0, pulling the estimate toward zero the way a
// real solution count would if most random descents fail.
func (e *Engine) EstimateSolutions() float64 {
	var sum float64
	for i := 0; i < estimateTrials; i++ {
		sum += e.estimateOnce(newEstimateRNG(time.Now().UnixNano() + int64(i)))
	}
	return sum / estimateTrials
}

func (e *Engine) estimateOnce(r *estimateRNG) float64 {
	grid := e.c.Grid.Clone()
	if !e.propagate(grid) {
		return 0
	}
	estimate := 1.0
	for {
		if grid.IsComplete() {
			return estimate
		}
		cell, ok := selectCell(grid, e.c.Exclude)
		if !ok {
			return 0
		}
		digits := grid.Cells[cell].Digits()
		if len(digits) == 0 {
			return 0
		}
		estimate *= float64(len(digits))
		d := digits[r.next()%len(digits)]
		grid.Fix(cell, d)
		if !e.propagate(grid) {
			return 0
		}
	}
}

// ValidateLayout checks a fully specified solution against the exclusion
// graph and every handler's Enforce (run against a throwaway
// accumulator), returning true only if every constraint is satisfied.
func (e *Engine) ValidateLayout(sol core.Solution) (bool, error) {
	if len(sol.Digits) != e.c.Shape.NumCells() {
		return false, fmt.Errorf("search: solution has %d cells, want %d", len(sol.Digits), e.c.Shape.NumCells())
	}
	g := core.NewGrid(e.c.Shape)
	for i, d := range sol.Digits {
		if d < 1 || d > e.c.Shape.Values {
			return false, nil
		}
		if !g.Fix(i, d) && !g.Cells[i].Has(d) {
			return false, nil
		}
	}
	for a := 0; a < e.c.Shape.NumCells(); a++ {
		da, _ := g.Cells[a].Single()
		ok := true
		e.c.Exclude.Neighbors(a).ForEach(func(b int) {
			if !ok {
				return
			}
			db, _ := g.Cells[b].Single()
			if da == db {
				ok = false
			}
		})
		if !ok {
			return false, nil
		}
	}
	noop := handlers.NoopAccumulator(e.c.Shape.NumCells())
	for _, h := range e.c.Handlers {
		if !h.Enforce(g, noop) {
			return false, nil
		}
	}
	return true, nil
}

// NthStep runs n rounds of propagate-then-branch-on-first-choice without
// backtracking, and returns the grid snapshot after the n-th step
// (§4.6's stepwise tracing operation, e.g. for a "show your work" UI). It
// returns ok=false if the puzzle resolves (or proves infeasible) in fewer
// than n steps.
func (e *Engine) NthStep(n int) (*core.Grid, bool) {
	grid := e.c.Grid.Clone()
	if !e.propagate(grid) {
		return nil, false
	}
	for i := 0; i < n; i++ {
		if grid.IsComplete() {
			return nil, false
		}
		cell, ok := selectCell(grid, e.c.Exclude)
		if !ok {
			return nil, false
		}
		d := grid.Cells[cell].LowestDigit()
		grid.Fix(cell, d)
		if !e.propagate(grid) {
			return nil, false
		}
	}
	return grid, true
}

// dfs is the iterative search core: propagate to fixpoint, branch on the
// most constrained cell, and retreat through an explicit stack rather
// than Go-level recursion. visit is called once per discovered solution
// in search order; returning false stops the search early (used by
// NthSolution/CountSolutions/Solutions to short-circuit).
func (e *Engine) dfs(ctx context.Context, grid *core.Grid, visit func(core.Solution) bool) error {
	var st stack
	g := grid
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		e.nodes++
		e.maybeReport(st.depth(), 0)

		feasible := e.propagate(g)
		if feasible && g.IsComplete() {
			sol, ok := g.ToSolution()
			if ok {
				if !visit(sol) {
					return nil
				}
			}
			feasible = false // a complete grid has no further branch; force backtrack
		}

		if feasible {
			cell, ok := selectCell(g, e.c.Exclude)
			if !ok {
				feasible = false
			} else {
				digits := g.Cells[cell].Digits()
				for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
					digits[i], digits[j] = digits[j], digits[i]
				}
				st.push(frame{snapshot: g.Clone(), cell: cell, choices: digits})
			}
		}

		// Find the next untried choice, backtracking through exhausted
		// frames as needed.
		for {
			f, ok := st.pop()
			if !ok {
				return nil
			}
			if len(f.choices) == 0 {
				continue
			}
			d := f.choices[len(f.choices)-1]
			f.choices = f.choices[:len(f.choices)-1]
			next := f.snapshot.Clone()
			next.Fix(f.cell, d)
			if len(f.choices) > 0 {
				st.push(f)
			}
			g = next
			break
		}
	}
}
