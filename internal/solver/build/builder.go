// Package build compiles a user-facing constraint tree (core.Constraint)
// into the flat representation search actually runs: a Shape, an initial
// Grid, a frozen exclude.Graph, and an ordered slice of handlers.Handler
// (§4.4's eight-step pipeline).
package build

import (
	"fmt"
	"sort"

	"variantsudoku/internal/core"
	"variantsudoku/internal/solver/exclude"
	"variantsudoku/internal/solver/handlers"
)

// Compiled is the output of Build: everything the search engine needs to
// run, with no further reference to the original constraint tree.
type Compiled struct {
	Shape    core.Shape
	Grid     *core.Grid
	Exclude  *exclude.Graph
	Handlers []handlers.Handler
	Scratch  *handlers.Scratch
}

// maxCompositeDepth bounds nested Or trial-expansion (§9's design note on
// composite handlers): beyond this nesting level, a child Or's Enforce
// becomes a pass-through rather than trial-cloning further.
const maxCompositeDepth = 3

// Build runs the eight-step pipeline over root's children:
//  1. allocate the grid for the already-validated shape
//  2. apply Given clues
//  3. instantiate one handler per non-container constraint node
//  4. run every handler's Initialize, in declaration order, to seed the
//     exclusion graph and scratch arena
//  5. freeze the exclusion graph
//  6. sort handlers by priority band
//  7. run propagation to a fixpoint before returning (if any handler's
//     Initialize or that pass rejects the puzzle, Build returns a nil
//     Compiled and a plain, non-BuildError error)
//  8. return the compiled puzzle, or a *core.BuildError for a structural
//     problem in the input
func Build(shape core.Shape, given map[int]int, nodes []*core.Constraint) (*Compiled, error) {
	grid := core.NewGrid(shape)
	for idx, d := range given {
		if idx < 0 || idx >= shape.NumCells() {
			return nil, core.NewBuildError(core.ErrInvalidCellList, "Given", nil, "cell index %d out of range", idx)
		}
		if d < 1 || d > shape.Values {
			return nil, core.NewBuildError(core.ErrInvalidArguments, "Given", []string{shape.CellID(idx)}, "digit %d out of domain", d)
		}
		grid.Fix(idx, d)
	}

	ex := exclude.New(shape.NumCells())
	scratch := handlers.NewScratch()

	if !shape.NoBoxes {
		registerDefaultUnits(shape, ex)
	}

	var hs []handlers.Handler
	for _, n := range nodes {
		built, err := compileNode(shape, n, 0)
		if err != nil {
			return nil, err
		}
		hs = append(hs, built...)
	}

	for _, h := range hs {
		if !h.Initialize(grid, ex, shape, scratch) {
			return nil, fmt.Errorf("build: handler initialization proved the puzzle infeasible")
		}
	}
	ex.Freeze()

	// the frozen exclusion graph becomes its own propagating handler, so
	// every mutual-exclusion group registered along the way (implicit
	// row/column/box units, a unique Cage's own cells, ...) actually
	// narrows candidates during search rather than only informing
	// selectCell's tiebreak and ValidateLayout's direct check.
	hs = append(hs, handlers.NewExclusionSweep(ex))

	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Priority() > hs[j].Priority() })

	acc := handlers.NewAccumulator(shape.NumCells())
	if !RunToFixpoint(grid, hs, acc) {
		return nil, fmt.Errorf("build: initial propagation proved the puzzle infeasible")
	}

	return &Compiled{Shape: shape, Grid: grid, Exclude: ex, Handlers: hs, Scratch: scratch}, nil
}

// registerDefaultUnits wires the implicit row/column/box uniqueness
// regions every non-Jigsaw grid carries (§4.3.1), on top of whatever
// explicit regions the constraint tree adds. This only records the units
// in the exclusion graph; the ExclusionSweep handler appended in Build is
// what actually turns them into propagation.
func registerDefaultUnits(shape core.Shape, ex *exclude.Graph) {
	for r := 0; r < shape.Rows; r++ {
		cells := make([]int, shape.Cols)
		for c := 0; c < shape.Cols; c++ {
			cells[c] = shape.Index(r, c)
		}
		ex.AddMutualGroup(cells)
	}
	for c := 0; c < shape.Cols; c++ {
		cells := make([]int, shape.Rows)
		for r := 0; r < shape.Rows; r++ {
			cells[r] = shape.Index(r, c)
		}
		ex.AddMutualGroup(cells)
	}
	boxes := map[int][]int{}
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			b := shape.BoxOf(r, c)
			boxes[b] = append(boxes[b], shape.Index(r, c))
		}
	}
	for _, cells := range boxes {
		ex.AddMutualGroup(cells)
	}
}

// diagonalCells expands the Diagonal sugar (§4.4 step 1) into its cell
// list: selector 0 is the main diagonal (top-left to bottom-right),
// any nonzero selector is the anti-diagonal (top-right to bottom-left),
// matching the Diagonal(-1) shorthand. Only defined on a square shape.
func diagonalCells(shape core.Shape, selector int) ([]int, error) {
	if !shape.IsSquare() {
		return nil, core.NewBuildError(core.ErrInvalidArguments, string(core.KindDiagonal), nil,
			"diagonal requires a square shape, got %dx%d", shape.Rows, shape.Cols)
	}
	cells := make([]int, shape.Rows)
	for r := 0; r < shape.Rows; r++ {
		c := r
		if selector != 0 {
			c = shape.Cols - 1 - r
		}
		cells[r] = shape.Index(r, c)
	}
	return cells, nil
}

// RunToFixpoint dequeues handlers in priority order, re-enqueueing any
// handler whose watched cells were touched, until no handler's Enforce
// changes anything or one reports infeasibility (§4.5).
func RunToFixpoint(grid *core.Grid, hs []handlers.Handler, acc *handlers.Accumulator) bool {
	pending := make([]bool, len(hs))
	for i := range pending {
		pending[i] = true
	}
	touchesHandler := func(h handlers.Handler, touched []int) bool {
		if len(touched) == 0 {
			return false
		}
		set := make(map[int]bool, len(touched))
		for _, c := range touched {
			set[c] = true
		}
		for _, c := range h.Cells() {
			if set[c] {
				return true
			}
		}
		return false
	}

	for {
		any := false
		for i, h := range hs {
			if !pending[i] {
				continue
			}
			pending[i] = false
			acc.Reset()
			if !h.Enforce(grid, acc) {
				return false
			}
			if grid.HasEmptyCell() {
				return false
			}
			touched := acc.Touched()
			if len(touched) > 0 {
				any = true
				for j, other := range hs {
					if j == i {
						continue
					}
					if touchesHandler(other, touched) {
						pending[j] = true
					}
				}
			}
		}
		if !any {
			break
		}
	}
	return true
}

// compileNode compiles one constraint-tree node into zero or more
// handlers. depth tracks Or/And nesting for maxCompositeDepth.
func compileNode(shape core.Shape, n *core.Constraint, depth int) ([]handlers.Handler, error) {
	switch n.Kind {
	case core.KindShape, core.KindGiven:
		return nil, nil

	case core.KindRow, core.KindColumn, core.KindBox, core.KindDisjointSets, core.KindAllDifferent:
		return []handlers.Handler{handlers.NewRegion(n.Cells, 3)}, nil

	case core.KindDiagonal:
		cells, err := diagonalCells(shape, n.Int0)
		if err != nil {
			return nil, err
		}
		return []handlers.Handler{handlers.NewRegion(cells, 3)}, nil

	case core.KindJigsaw, core.KindWindoku:
		var hs []handlers.Handler
		regions := map[int][]int{}
		for cell, region := range n.Layout {
			regions[region] = append(regions[region], cell)
		}
		for _, cells := range regions {
			hs = append(hs, handlers.NewRegion(cells, 3))
		}
		return hs, nil

	case core.KindCage:
		return []handlers.Handler{handlers.NewCage(n.Cells, n.Int0, true)}, nil
	case core.KindSum:
		return []handlers.Handler{handlers.NewSumLine(n.Cells, n.Int0)}, nil
	case core.KindArrow:
		return []handlers.Handler{handlers.NewArrow(n.Cells)}, nil
	case core.KindDoubleArrow:
		return []handlers.Handler{handlers.NewDoubleArrow(n.Cells)}, nil
	case core.KindPillArrow:
		return []handlers.Handler{handlers.NewPillArrow(n.Cells, n.Int0)}, nil
	case core.KindBetween:
		return []handlers.Handler{handlers.NewBetween(n.Cells)}, nil
	case core.KindLockout:
		return []handlers.Handler{handlers.NewLockout(n.Cells, n.Int0)}, nil
	case core.KindSandwich:
		return []handlers.Handler{handlers.NewSandwich(n.Cells, n.Int0)}, nil
	case core.KindXSum:
		return []handlers.Handler{handlers.NewXSum(n.Cells, n.Int0)}, nil
	case core.KindLittleKiller:
		return []handlers.Handler{handlers.NewSumLine(n.Cells, n.Int0)}, nil
	case core.KindRegionSumLine:
		return []handlers.Handler{handlers.NewRegionSumLine(n.Cells)}, nil
	case core.KindSumLine:
		return []handlers.Handler{handlers.NewSumLine(n.Cells, n.Int0)}, nil
	case core.KindLunchbox:
		return []handlers.Handler{handlers.NewLunchbox(n.Cells, n.Int0)}, nil

	case core.KindWhiteDot:
		return []handlers.Handler{handlers.NewBinary(n.Cells[0], n.Cells[1], handlers.WhiteDotRelation, false)}, nil
	case core.KindBlackDot:
		return []handlers.Handler{handlers.NewBinary(n.Cells[0], n.Cells[1], handlers.BlackDotRelation, false)}, nil
	case core.KindX:
		return []handlers.Handler{handlers.NewBinary(n.Cells[0], n.Cells[1], handlers.XRelation, false)}, nil
	case core.KindV:
		return []handlers.Handler{handlers.NewBinary(n.Cells[0], n.Cells[1], handlers.VRelation, false)}, nil
	case core.KindGreaterThan:
		rel := handlers.GreaterThanRelation
		if n.Bool0 {
			rel = func(a, b int) bool { return handlers.GreaterThanRelation(b, a) }
		}
		return []handlers.Handler{handlers.NewBinary(n.Cells[0], n.Cells[1], rel, false)}, nil
	case core.KindAntiConsecutive:
		return []handlers.Handler{handlers.NewBinary(n.Cells[0], n.Cells[1], handlers.WhiteDotRelation, true)}, nil
	case core.KindStrictKropki:
		return []handlers.Handler{handlers.NewBinary(n.Cells[0], n.Cells[1], handlers.ConsecutiveOrDoubleRelation, true)}, nil
	case core.KindStrictXV:
		return []handlers.Handler{handlers.NewBinary(n.Cells[0], n.Cells[1], func(a, b int) bool {
			return handlers.SumRelation(5)(a, b) || handlers.SumRelation(10)(a, b)
		}, true)}, nil
	case core.KindPair:
		return []handlers.Handler{handlers.NewBinary(n.Cells[0], n.Cells[1], pairsRelation(n.Pairs), false)}, nil
	case core.KindPairX:
		return []handlers.Handler{handlers.NewBinary(n.Cells[0], n.Cells[1], pairsRelation(n.Pairs), true)}, nil
	case core.KindBinary:
		return []handlers.Handler{handlers.NewBinary(n.Cells[0], n.Cells[1], pairsRelation(n.Pairs), false)}, nil

	case core.KindThermo:
		return []handlers.Handler{handlers.NewThermo(n.Cells)}, nil
	case core.KindWhisper:
		return []handlers.Handler{handlers.NewWhisper(n.Cells, n.Int0)}, nil
	case core.KindRenban:
		return []handlers.Handler{handlers.NewRenban(n.Cells)}, nil
	case core.KindModular:
		return []handlers.Handler{handlers.NewModular(n.Cells, n.Int0)}, nil
	case core.KindEntropic:
		return []handlers.Handler{handlers.NewEntropic(n.Cells, n.Int0)}, nil
	case core.KindPalindrome:
		return []handlers.Handler{handlers.NewPalindrome(n.Cells)}, nil
	case core.KindZipper:
		return []handlers.Handler{handlers.NewZipper(n.Cells)}, nil
	case core.KindValueIndexing:
		return []handlers.Handler{handlers.NewValueIndexing(n.Cells)}, nil
	case core.KindIndexing:
		return []handlers.Handler{handlers.NewIndexing(n.Cells, n.Int0, n.Int1)}, nil
	case core.KindCountingCircles:
		return []handlers.Handler{handlers.NewCountingCircles(n.Cells)}, nil
	case core.KindSameValues:
		if len(n.Groups) < 2 {
			return nil, core.NewBuildError(core.ErrInvalidArguments, string(n.Kind), nil, "SameValues requires two groups")
		}
		return []handlers.Handler{handlers.NewSameValues(n.Groups[0], n.Groups[1])}, nil
	case core.KindContainExact:
		return []handlers.Handler{handlers.NewContainExact(n.Cells, n.Values)}, nil
	case core.KindContainAtLeast:
		return []handlers.Handler{handlers.NewContainAtLeast(n.Cells, n.Values)}, nil
	case core.KindQuad:
		return []handlers.Handler{handlers.NewQuad(n.Cells, n.Values)}, nil

	case core.KindRegex, core.KindNFA:
		allowed := core.MaskOf(n.Values...)
		nfa := handlers.CompileRun(len(n.Cells), allowed)
		return []handlers.Handler{handlers.NewNFAHandler(n.Cells, nfa)}, nil

	case core.KindSkyscraper:
		return []handlers.Handler{handlers.NewSkyscraper(n.Cells, n.Int0)}, nil
	case core.KindHiddenSkyscraper:
		return []handlers.Handler{handlers.NewHiddenSkyscraper(n.Cells, n.Int0, n.Int1)}, nil
	case core.KindNumberedRoom:
		return []handlers.Handler{handlers.NewNumberedRoom(n.Cells, n.Int0, n.Int1)}, nil
	case core.KindFullRank:
		lines := n.Groups
		return []handlers.Handler{handlers.NewFullRank(lines, n.Values, n.Mode, n.Int0)}, nil

	case core.KindAnd:
		var kids []handlers.Handler
		for _, c := range n.Children {
			built, err := compileNode(shape, c, depth+1)
			if err != nil {
				return nil, err
			}
			kids = append(kids, built...)
		}
		return []handlers.Handler{handlers.NewAnd(n.Cells, kids)}, nil
	case core.KindOr:
		var kids []handlers.Handler
		for _, c := range n.Children {
			built, err := compileNode(shape, c, depth+1)
			if err != nil {
				return nil, err
			}
			kids = append(kids, built...)
		}
		return []handlers.Handler{handlers.NewOr(n.Cells, kids, maxCompositeDepth, depth)}, nil

	case core.KindFullGridRequiredValues:
		required := map[int]int{}
		for _, v := range n.Values {
			required[v] = n.Int0
		}
		return []handlers.Handler{handlers.NewFullGridRequiredValues(shape.NumCells(), required)}, nil
	}

	return nil, core.NewBuildError(core.ErrUnknownKind, string(n.Kind), nil, "unrecognized constraint kind")
}

func pairsRelation(pairs [][2]int) func(a, b int) bool {
	allowed := make(map[[2]int]bool, len(pairs))
	for _, p := range pairs {
		allowed[p] = true
	}
	return func(a, b int) bool { return allowed[[2]int{a, b}] }
}
