package handlers

import "variantsudoku/internal/core"
import "variantsudoku/internal/solver/exclude"

// Cage is a killer-cage: a fixed-sum group of cells, normally required to
// be pairwise distinct (§4.3.2).
type Cage struct {
	cells  []int
	sum    int
	unique bool
}

// NewCage builds a Cage handler. The builder always passes unique=true for
// a Cage node; a bare Sum node compiles to SumLine instead.
func NewCage(cells []int, sum int, unique bool) *Cage {
	return &Cage{cells: append([]int(nil), cells...), sum: sum, unique: unique}
}

func (c *Cage) Cells() []int  { return c.cells }
func (c *Cage) Priority() int { return PrioritySum }

func (c *Cage) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	if c.unique {
		ex.AddMutualGroup(c.cells)
	}
	return true
}

func (c *Cage) Enforce(grid *core.Grid, acc *Accumulator) bool {
	return sumRangeEnforce(grid, acc, c.cells, c.sum, c.unique)
}

// SumLine is a plain total-sum group with no uniqueness requirement
// (§4.3.2's `Sum`/`SumLine`): LittleKiller and SumLine are both
// represented by this type, since both are "these cells sum to a constant,
// repeats allowed."
type SumLine struct {
	cells []int
	sum   int
}

func NewSumLine(cells []int, sum int) *SumLine {
	return &SumLine{cells: append([]int(nil), cells...), sum: sum}
}

func (s *SumLine) Cells() []int  { return s.cells }
func (s *SumLine) Priority() int { return PrioritySum }
func (s *SumLine) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}
func (s *SumLine) Enforce(grid *core.Grid, acc *Accumulator) bool {
	return sumRangeEnforce(grid, acc, s.cells, s.sum, false)
}

// Arrow is a single-cell circle whose digit must equal the sum of the
// shaft cells that follow it (§4.3.2). cells[0] is the circle.
type Arrow struct {
	cells []int
}

func NewArrow(cells []int) *Arrow { return &Arrow{cells: append([]int(nil), cells...)} }

func (a *Arrow) Cells() []int  { return a.cells }
func (a *Arrow) Priority() int { return PrioritySum }
func (a *Arrow) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (a *Arrow) Enforce(grid *core.Grid, acc *Accumulator) bool {
	circle := a.cells[0]
	shaft := a.cells[1:]
	circleLo, circleHi := grid.Cells[circle].LowestDigit(), grid.Cells[circle].HighestDigit()
	shaftLo, shaftHi := sumBounds(grid, shaft)
	tLo, tHi := circleLo, circleHi
	if shaftLo > tLo {
		tLo = shaftLo
	}
	if shaftHi < tHi {
		tHi = shaftHi
	}
	if tLo > tHi {
		return false
	}
	before := grid.Cells[circle]
	after := before.Intersect(rangeMask(grid.Shape.Values, tLo, tHi))
	if after != before {
		grid.Cells[circle] = after
		acc.AddForCell(circle)
	}
	if after.IsEmpty() {
		return false
	}
	return sumRangeEnforceRanged(grid, acc, shaft, tLo, tHi)
}

// DoubleArrow is an arrow whose two ends are both circles: the sum of the
// two end digits must equal the sum of the shaft between them.
type DoubleArrow struct {
	cells []int // cells[0], cells[len-1] are the ends; the rest is the shaft
}

func NewDoubleArrow(cells []int) *DoubleArrow {
	return &DoubleArrow{cells: append([]int(nil), cells...)}
}

func (d *DoubleArrow) Cells() []int  { return d.cells }
func (d *DoubleArrow) Priority() int { return PrioritySum }
func (d *DoubleArrow) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (d *DoubleArrow) Enforce(grid *core.Grid, acc *Accumulator) bool {
	ends := []int{d.cells[0], d.cells[len(d.cells)-1]}
	shaft := d.cells[1 : len(d.cells)-1]
	endsLo, endsHi := sumBounds(grid, ends)
	shaftLo, shaftHi := sumBounds(grid, shaft)
	tLo, tHi := endsLo, endsHi
	if shaftLo > tLo {
		tLo = shaftLo
	}
	if shaftHi < tHi {
		tHi = shaftHi
	}
	if tLo > tHi {
		return false
	}
	if !sumRangeEnforceRanged(grid, acc, ends, tLo, tHi) {
		return false
	}
	return sumRangeEnforceRanged(grid, acc, shaft, tLo, tHi)
}

// PillArrow is an arrow whose head is a two- or three-cell "pill" read as
// a multi-digit number (most significant digit first) instead of a single
// circle (§4.3.2). Cells are ordered [pill digits..., shaft...].
type PillArrow struct {
	cells    []int
	pillSize int
}

func NewPillArrow(cells []int, pillSize int) *PillArrow {
	return &PillArrow{cells: append([]int(nil), cells...), pillSize: pillSize}
}

func (p *PillArrow) Cells() []int  { return p.cells }
func (p *PillArrow) Priority() int { return PrioritySum }
func (p *PillArrow) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

// pillRange computes an outer (sound but not maximally tight) bound on the
// multi-digit number read off pill, most significant digit first, base 10.
func pillRange(grid *core.Grid, pill []int) (lo, hi int) {
	for _, idx := range pill {
		lo = lo*10 + grid.Cells[idx].LowestDigit()
		hi = hi*10 + grid.Cells[idx].HighestDigit()
	}
	return lo, hi
}

func (p *PillArrow) Enforce(grid *core.Grid, acc *Accumulator) bool {
	pill := p.cells[:p.pillSize]
	shaft := p.cells[p.pillSize:]
	pillLo, pillHi := pillRange(grid, pill)
	shaftLo, shaftHi := sumBounds(grid, shaft)
	tLo, tHi := pillLo, pillHi
	if shaftLo > tLo {
		tLo = shaftLo
	}
	if shaftHi < tHi {
		tHi = shaftHi
	}
	if tLo > tHi {
		return false
	}
	return sumRangeEnforceRanged(grid, acc, shaft, tLo, tHi)
}

// Between constrains every cell strictly between two circled ends to a
// value strictly between the two end digits (order unspecified). cells[0]
// and cells[len-1] are the ends.
type Between struct {
	cells []int
}

func NewBetween(cells []int) *Between { return &Between{cells: append([]int(nil), cells...)} }

func (b *Between) Cells() []int  { return b.cells }
func (b *Between) Priority() int { return PriorityLine }
func (b *Between) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (b *Between) Enforce(grid *core.Grid, acc *Accumulator) bool {
	e1, e2 := b.cells[0], b.cells[len(b.cells)-1]
	middle := b.cells[1 : len(b.cells)-1]
	lo := min(grid.Cells[e1].LowestDigit(), grid.Cells[e2].LowestDigit())
	hi := max(grid.Cells[e1].HighestDigit(), grid.Cells[e2].HighestDigit())
	allowed := rangeMask(grid.Shape.Values, lo+1, hi-1)
	for _, idx := range middle {
		before := grid.Cells[idx]
		after := before.Intersect(allowed)
		if after != before {
			grid.Cells[idx] = after
			acc.AddForCell(idx)
		}
		if after.IsEmpty() {
			return false
		}
	}
	return true
}

// Lockout constrains two circled ends to differ by at least minDiff, and
// every cell between them to lie strictly outside the ends' value range.
type Lockout struct {
	cells   []int
	minDiff int
}

func NewLockout(cells []int, minDiff int) *Lockout {
	return &Lockout{cells: append([]int(nil), cells...), minDiff: minDiff}
}

func (l *Lockout) Cells() []int  { return l.cells }
func (l *Lockout) Priority() int { return PriorityLine }
func (l *Lockout) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

// lockoutDiffFilter removes candidates from `from` that cannot possibly
// reach minDiff distance from any surviving candidate of `to`.
func lockoutDiffFilter(grid *core.Grid, acc *Accumulator, from, to, minDiff int) bool {
	toMax := grid.Cells[to].HighestDigit()
	toMin := grid.Cells[to].LowestDigit()
	before := grid.Cells[from]
	var after core.Mask
	for _, v := range before.Digits() {
		if toMax-v >= minDiff || v-toMin >= minDiff {
			after = after.With(v)
		}
	}
	if after != before {
		grid.Cells[from] = after
		acc.AddForCell(from)
	}
	return !after.IsEmpty()
}

func (l *Lockout) Enforce(grid *core.Grid, acc *Accumulator) bool {
	e1, e2 := l.cells[0], l.cells[len(l.cells)-1]
	middle := l.cells[1 : len(l.cells)-1]
	if !lockoutDiffFilter(grid, acc, e1, e2, l.minDiff) {
		return false
	}
	if !lockoutDiffFilter(grid, acc, e2, e1, l.minDiff) {
		return false
	}
	if d1, ok1 := grid.Cells[e1].Single(); ok1 {
		if d2, ok2 := grid.Cells[e2].Single(); ok2 {
			lo, hi := min(d1, d2), max(d1, d2)
			forbidden := rangeMask(grid.Shape.Values, lo, hi)
			for _, idx := range middle {
				before := grid.Cells[idx]
				after := before.Subtract(forbidden)
				if after != before {
					grid.Cells[idx] = after
					acc.AddForCell(idx)
				}
				if after.IsEmpty() {
					return false
				}
			}
		}
	}
	return true
}

// Sandwich is an outside clue: the cells strictly between the 1 and the
// maximum value on a line must sum to clue. Propagation only fires once
// both the 1 and the max digit have settled to specific cells, since their
// positions (not just their values) determine the summed group; until
// then Enforce is a sound no-op.
type Sandwich struct {
	line []int
	clue int
}

func NewSandwich(line []int, clue int) *Sandwich {
	return &Sandwich{line: append([]int(nil), line...), clue: clue}
}

func (s *Sandwich) Cells() []int  { return s.line }
func (s *Sandwich) Priority() int { return PriorityOutside }
func (s *Sandwich) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (s *Sandwich) Enforce(grid *core.Grid, acc *Accumulator) bool {
	v := grid.Shape.Values
	p1, pmax := -1, -1
	for i, idx := range s.line {
		if d, ok := grid.Cells[idx].Single(); ok {
			if d == 1 {
				p1 = i
			}
			if d == v {
				pmax = i
			}
		}
	}
	if p1 < 0 || pmax < 0 || p1 == pmax {
		return true
	}
	lo, hi := p1, pmax
	if lo > hi {
		lo, hi = hi, lo
	}
	between := s.line[lo+1 : hi]
	return sumRangeEnforce(grid, acc, between, s.clue, true)
}

// XSum is an outside clue: the sum of the first N cells of a line, where N
// is the digit in the line's first cell, equals clue.
type XSum struct {
	line []int
	clue int
}

func NewXSum(line []int, clue int) *XSum { return &XSum{line: append([]int(nil), line...), clue: clue} }

func (x *XSum) Cells() []int  { return x.line }
func (x *XSum) Priority() int { return PriorityOutside }
func (x *XSum) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (x *XSum) Enforce(grid *core.Grid, acc *Accumulator) bool {
	first := x.line[0]
	before := grid.Cells[first]
	var feasible core.Mask
	for _, k := range before.Digits() {
		if k > len(x.line) {
			continue
		}
		lo, hi := sumBounds(grid, x.line[:k])
		if x.clue >= lo && x.clue <= hi {
			feasible = feasible.With(k)
		}
	}
	if feasible != before {
		grid.Cells[first] = feasible
		acc.AddForCell(first)
	}
	if feasible.IsEmpty() {
		return false
	}
	if k, ok := feasible.Single(); ok {
		return sumRangeEnforce(grid, acc, x.line[:k], x.clue, true)
	}
	return true
}

// RegionSumLine requires that the segments of a line falling inside each
// distinct default-box it crosses all sum to the same (otherwise
// unconstrained) total.
type RegionSumLine struct {
	line     []int
	segments [][]int
}

func NewRegionSumLine(line []int) *RegionSumLine {
	return &RegionSumLine{line: append([]int(nil), line...)}
}

func (r *RegionSumLine) Cells() []int  { return r.line }
func (r *RegionSumLine) Priority() int { return PriorityLine }

func (r *RegionSumLine) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	if shape.NoBoxes {
		r.segments = [][]int{r.line}
		return true
	}
	var segs [][]int
	var cur []int
	lastBox := -2
	for _, idx := range r.line {
		row, col := shape.RowCol(idx)
		box := shape.BoxOf(row, col)
		if box != lastBox && len(cur) > 0 {
			segs = append(segs, cur)
			cur = nil
		}
		cur = append(cur, idx)
		lastBox = box
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	r.segments = segs
	return true
}

func (r *RegionSumLine) Enforce(grid *core.Grid, acc *Accumulator) bool {
	if len(r.segments) <= 1 {
		return true
	}
	tLo, tHi := sumBounds(grid, r.segments[0])
	for _, seg := range r.segments[1:] {
		lo, hi := sumBounds(grid, seg)
		if lo > tLo {
			tLo = lo
		}
		if hi < tHi {
			tHi = hi
		}
	}
	if tLo > tHi {
		return false
	}
	for _, seg := range r.segments {
		if !sumRangeEnforceRanged(grid, acc, seg, tLo, tHi) {
			return false
		}
	}
	return true
}

// Lunchbox requires that the digits strictly between the smallest and
// largest digit actually present on the line sum to a fixed total. Since
// "smallest/largest on the line" (not "smallest/largest possible") is only
// knowable once the line is fully assigned, this handler checks feasibility
// once every cell is fixed rather than pruning candidates earlier; it is
// still a sound, idempotent Enforce.
type Lunchbox struct {
	line []int
	sum  int
}

func NewLunchbox(line []int, sum int) *Lunchbox {
	return &Lunchbox{line: append([]int(nil), line...), sum: sum}
}

func (l *Lunchbox) Cells() []int  { return l.line }
func (l *Lunchbox) Priority() int { return PrioritySum }
func (l *Lunchbox) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (l *Lunchbox) Enforce(grid *core.Grid, acc *Accumulator) bool {
	digits := make([]int, len(l.line))
	for i, idx := range l.line {
		d, ok := grid.Cells[idx].Single()
		if !ok {
			return true
		}
		digits[i] = d
	}
	lo, hi := 0, 0
	for i, d := range digits {
		if i == 0 || d < digits[lo] {
			lo = i
		}
		if i == 0 || d > digits[hi] {
			hi = i
		}
	}
	a, b := lo, hi
	if a > b {
		a, b = b, a
	}
	total := 0
	for i := a + 1; i < b; i++ {
		total += digits[i]
	}
	return total == l.sum
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
