package handlers

import (
	"variantsudoku/internal/core"
	"variantsudoku/internal/solver/exclude"
)

// Thermo requires strictly increasing digits from the bulb (cells[0]) to
// the tip (cells[len-1]). Propagation is a two-pass sweep: forward raises
// each cell's minimum past its predecessor's minimum, backward lowers each
// cell's maximum below its successor's maximum (§4.3.4).
type Thermo struct {
	cells []int
}

func NewThermo(cells []int) *Thermo { return &Thermo{cells: append([]int(nil), cells...)} }

func (t *Thermo) Cells() []int  { return t.cells }
func (t *Thermo) Priority() int { return PriorityLine }
func (t *Thermo) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	ex.AddMutualGroup(t.cells)
	return true
}

func (t *Thermo) Enforce(grid *core.Grid, acc *Accumulator) bool {
	v := grid.Shape.Values
	minSoFar := 0
	for _, idx := range t.cells {
		lo := minSoFar + 1
		before := grid.Cells[idx]
		after := before.Intersect(rangeMask(v, lo, v))
		if after != before {
			grid.Cells[idx] = after
			acc.AddForCell(idx)
		}
		if after.IsEmpty() {
			return false
		}
		minSoFar = after.LowestDigit()
	}
	maxSoFar := v + 1
	for i := len(t.cells) - 1; i >= 0; i-- {
		idx := t.cells[i]
		hi := maxSoFar - 1
		before := grid.Cells[idx]
		after := before.Intersect(rangeMask(v, 1, hi))
		if after != before {
			grid.Cells[idx] = after
			acc.AddForCell(idx)
		}
		if after.IsEmpty() {
			return false
		}
		maxSoFar = after.HighestDigit()
	}
	return true
}

// Whisper requires every pair of adjacent cells on the line to differ by
// at least minDiff (§4.3.4), using the same diff-filter argument as Lockout.
type Whisper struct {
	cells   []int
	minDiff int
}

func NewWhisper(cells []int, minDiff int) *Whisper {
	return &Whisper{cells: append([]int(nil), cells...), minDiff: minDiff}
}

func (w *Whisper) Cells() []int  { return w.cells }
func (w *Whisper) Priority() int { return PriorityLine }
func (w *Whisper) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (w *Whisper) Enforce(grid *core.Grid, acc *Accumulator) bool {
	for i := 0; i+1 < len(w.cells); i++ {
		a, b := w.cells[i], w.cells[i+1]
		if !lockoutDiffFilter(grid, acc, a, b, w.minDiff) {
			return false
		}
		if !lockoutDiffFilter(grid, acc, b, a, w.minDiff) {
			return false
		}
	}
	return true
}

// Renban requires the cells to hold a set of consecutive distinct digits
// in any order: span (max-min) must equal len-1 and all digits distinct
// (§4.3.4). It is enforced as a mutual-exclusion region plus a span bound.
type Renban struct {
	cells []int
}

func NewRenban(cells []int) *Renban { return &Renban{cells: append([]int(nil), cells...)} }

func (r *Renban) Cells() []int  { return r.cells }
func (r *Renban) Priority() int { return PriorityLine }
func (r *Renban) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	ex.AddMutualGroup(r.cells)
	return true
}

func (r *Renban) Enforce(grid *core.Grid, acc *Accumulator) bool {
	n := len(r.cells)
	v := grid.Shape.Values
	maxLo, minHi := 0, v+1
	for _, idx := range r.cells {
		lo, hi := grid.Cells[idx].LowestDigit(), grid.Cells[idx].HighestDigit()
		if lo > maxLo {
			maxLo = lo
		}
		if hi < minHi {
			minHi = hi
		}
	}
	// A valid run of length n must reach every cell's lowest candidate and
	// stay within every cell's highest, so it lies inside
	// [maxLo-n+1, minHi+n-1]; intersect every cell with that range.
	winLo := maxLo - n + 1
	winHi := minHi + n - 1
	if winLo < 1 {
		winLo = 1
	}
	if winHi > v {
		winHi = v
	}
	allowed := rangeMask(v, winLo, winHi)
	for _, idx := range r.cells {
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

// Palindrome requires the line to read the same digit sequence forwards
// and backwards: cells[i] must equal cells[len-1-i] (§4.3.4).
type Palindrome struct {
	cells []int
}

func NewPalindrome(cells []int) *Palindrome { return &Palindrome{cells: append([]int(nil), cells...)} }

func (p *Palindrome) Cells() []int  { return p.cells }
func (p *Palindrome) Priority() int { return PriorityLine }
func (p *Palindrome) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (p *Palindrome) Enforce(grid *core.Grid, acc *Accumulator) bool {
	n := len(p.cells)
	for i := 0; i < n/2; i++ {
		a, b := p.cells[i], p.cells[n-1-i]
		shared := grid.Cells[a].Intersect(grid.Cells[b])
		if shared != grid.Cells[a] {
			grid.Cells[a] = shared
			acc.AddForCell(a)
		}
		if shared != grid.Cells[b] {
			grid.Cells[b] = shared
			acc.AddForCell(b)
		}
		if shared.IsEmpty() {
			return false
		}
	}
	return true
}

// Zipper requires every symmetric pair of cells (first+last, second+
// second-last, ...) to sum to the same constant; an odd-length zipper's
// center cell must equal half that constant (§4.3.4).
type Zipper struct {
	cells []int
}

func NewZipper(cells []int) *Zipper { return &Zipper{cells: append([]int(nil), cells...)} }

func (z *Zipper) Cells() []int  { return z.cells }
func (z *Zipper) Priority() int { return PriorityLine }
func (z *Zipper) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (z *Zipper) Enforce(grid *core.Grid, acc *Accumulator) bool {
	n := len(z.cells)
	if n < 2 {
		return true
	}
	tLo, tHi := 0, grid.Shape.Values*2
	pairs := n / 2
	for i := 0; i < pairs; i++ {
		a, b := z.cells[i], z.cells[n-1-i]
		lo, hi := sumBounds(grid, []int{a, b})
		if lo > tLo {
			tLo = lo
		}
		if hi < tHi {
			tHi = hi
		}
	}
	if n%2 == 1 {
		mid := z.cells[n/2]
		lo2, hi2 := grid.Cells[mid].LowestDigit()*2, grid.Cells[mid].HighestDigit()*2
		if lo2 > tLo {
			tLo = lo2
		}
		if hi2 < tHi {
			tHi = hi2
		}
	}
	if tLo > tHi {
		return false
	}
	for i := 0; i < pairs; i++ {
		a, b := z.cells[i], z.cells[n-1-i]
		if !sumRangeEnforceRanged(grid, acc, []int{a, b}, tLo, tHi) {
			return false
		}
	}
	if n%2 == 1 {
		mid := z.cells[n/2]
		lo := (tLo + 1) / 2
		hi := tHi / 2
		before := grid.Cells[mid]
		after := before.Intersect(rangeMask(grid.Shape.Values, lo, hi))
		if after != before {
			grid.Cells[mid] = after
			acc.AddForCell(mid)
		}
		if after.IsEmpty() {
			return false
		}
	}
	return true
}

// Modular partitions the line into fixed-size windows (size m) and
// requires each window's cells to land in m distinct residue classes mod
// m, i.e. no two cells in the same window may share a residue (§4.3.4).
type Modular struct {
	cells []int
	m     int
}

func NewModular(cells []int, m int) *Modular {
	return &Modular{cells: append([]int(nil), cells...), m: m}
}

func (md *Modular) Cells() []int  { return md.cells }
func (md *Modular) Priority() int { return PriorityLine }
func (md *Modular) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (md *Modular) residueMask(values, residue int) core.Mask {
	var out core.Mask
	for d := 1; d <= values; d++ {
		if (d-1)%md.m == residue {
			out = out.With(d)
		}
	}
	return out
}

func (md *Modular) Enforce(grid *core.Grid, acc *Accumulator) bool {
	v := grid.Shape.Values
	for start := 0; start+md.m <= len(md.cells); start += md.m {
		window := md.cells[start : start+md.m]
		usedResidues := make(map[int][]int) // residue -> cells fixed to it
		for _, idx := range window {
			if d, ok := grid.Cells[idx].Single(); ok {
				r := (d - 1) % md.m
				usedResidues[r] = append(usedResidues[r], idx)
				if len(usedResidues[r]) > 1 {
					return false
				}
			}
		}
		for _, idx := range window {
			if grid.Cells[idx].IsFixed() {
				continue
			}
			before := grid.Cells[idx]
			after := before
			for r := range usedResidues {
				after = after.Subtract(md.residueMask(v, r))
			}
			if after != before {
				grid.Cells[idx] = after
				acc.AddForCell(idx)
			}
			if after.IsEmpty() {
				return false
			}
		}
	}
	return true
}

// Entropic partitions the line into fixed-size windows of width cells and
// requires each window to contain one digit from each of width equal bands
// of the value domain (the last band absorbs any remainder): with width 3
// this is the classic 9x9 "entropic line" rule (1-3 / 4-6 / 7-9).
type Entropic struct {
	cells []int
	width int
}

func NewEntropic(cells []int, width int) *Entropic {
	return &Entropic{cells: append([]int(nil), cells...), width: width}
}

func (e *Entropic) Cells() []int  { return e.cells }
func (e *Entropic) Priority() int { return PriorityLine }
func (e *Entropic) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (e *Entropic) bandOf(v, band, d int) bool {
	bandSize := v / e.width
	lo := band*bandSize + 1
	hi := lo + bandSize - 1
	if band == e.width-1 {
		hi = v
	}
	return d >= lo && d <= hi
}

func (e *Entropic) bandMask(v, band int) core.Mask {
	var m core.Mask
	for d := 1; d <= v; d++ {
		if e.bandOf(v, band, d) {
			m = m.With(d)
		}
	}
	return m
}

func (e *Entropic) Enforce(grid *core.Grid, acc *Accumulator) bool {
	v := grid.Shape.Values
	for start := 0; start+e.width <= len(e.cells); start += e.width {
		window := e.cells[start : start+e.width]
		usedBands := make(map[int]bool)
		for _, idx := range window {
			if d, ok := grid.Cells[idx].Single(); ok {
				for b := 0; b < e.width; b++ {
					if e.bandOf(v, b, d) {
						if usedBands[b] {
							return false
						}
						usedBands[b] = true
					}
				}
			}
		}
		if len(usedBands) == e.width {
			continue
		}
		for _, idx := range window {
			if grid.Cells[idx].IsFixed() {
				continue
			}
			before := grid.Cells[idx]
			after := before
			for b := range usedBands {
				after = after.Subtract(e.bandMask(v, b))
			}
			if after != before {
				grid.Cells[idx] = after
				acc.AddForCell(idx)
			}
			if after.IsEmpty() {
				return false
			}
		}
	}
	return true
}

// CountingCircles requires each circled cell's digit d to equal the count
// of cells in its group (including itself) that hold digit d (§4.3.4).
// Exact counting only resolves once the group is mostly fixed; until
// then Enforce applies a sound bound: d can survive in the circle only if
// at least d cells in the group can still hold d, and no more than d
// cells are already fixed to d.
type CountingCircles struct {
	group []int
}

func NewCountingCircles(group []int) *CountingCircles {
	return &CountingCircles{group: append([]int(nil), group...)}
}

func (c *CountingCircles) Cells() []int  { return c.group }
func (c *CountingCircles) Priority() int { return PriorityLine }
func (c *CountingCircles) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (c *CountingCircles) Enforce(grid *core.Grid, acc *Accumulator) bool {
	v := grid.Shape.Values
	canHold := make([]int, v+1)
	fixedTo := make([]int, v+1)
	for _, idx := range c.group {
		for _, d := range grid.Cells[idx].Digits() {
			canHold[d]++
		}
		if d, ok := grid.Cells[idx].Single(); ok {
			fixedTo[d]++
		}
	}
	for _, idx := range c.group {
		before := grid.Cells[idx]
		if before.IsFixed() {
			continue
		}
		var after core.Mask
		for _, d := range before.Digits() {
			if canHold[d] >= d && fixedTo[d] <= d {
				after = after.With(d)
			}
		}
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

// SameValues requires two groups of cells to use exactly the same set of
// digits (as a set, not a multiset): a digit unreachable in one group can
// never appear in the final set for either, so it is excluded from both
// (§4.3.4's SameValues example).
type SameValues struct {
	a, b []int
}

func NewSameValues(a, b []int) *SameValues {
	return &SameValues{a: append([]int(nil), a...), b: append([]int(nil), b...)}
}

func (s *SameValues) Cells() []int {
	out := make([]int, 0, len(s.a)+len(s.b))
	out = append(out, s.a...)
	out = append(out, s.b...)
	return out
}
func (s *SameValues) Priority() int { return PriorityLine }
func (s *SameValues) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (s *SameValues) unionOf(grid *core.Grid, group []int) core.Mask {
	var m core.Mask
	for _, idx := range group {
		m = m.Union(grid.Cells[idx])
	}
	return m
}

func (s *SameValues) restrict(grid *core.Grid, acc *Accumulator, group []int, allowed core.Mask) bool {
	for _, idx := range group {
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

func (s *SameValues) Enforce(grid *core.Grid, acc *Accumulator) bool {
	unionA := s.unionOf(grid, s.a)
	unionB := s.unionOf(grid, s.b)
	shared := unionA.Intersect(unionB)
	if !s.restrict(grid, acc, s.a, shared) {
		return false
	}
	if !s.restrict(grid, acc, s.b, shared) {
		return false
	}
	return true
}

// ContainExact requires a region's digit set to equal exactly the given
// values: every cell is restricted to that value set, and every named
// value must still be reachable somewhere in the region (§4.3.4).
type ContainExact struct {
	cells  []int
	values core.Mask
}

func NewContainExact(cells []int, values []int) *ContainExact {
	return &ContainExact{cells: append([]int(nil), cells...), values: core.MaskOf(values...)}
}

func (c *ContainExact) Cells() []int  { return c.cells }
func (c *ContainExact) Priority() int { return PriorityLine }
func (c *ContainExact) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (c *ContainExact) Enforce(grid *core.Grid, acc *Accumulator) bool {
	for _, idx := range c.cells {
		before := grid.Cells[idx]
		after := before.Intersect(c.values)
		if after != before {
			grid.Cells[idx] = after
			acc.AddForCell(idx)
		}
		if after.IsEmpty() {
			return false
		}
	}
	for _, d := range c.values.Digits() {
		found := false
		for _, idx := range c.cells {
			if grid.Cells[idx].Has(d) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ContainAtLeast requires every listed value to appear somewhere in the
// cells, placing no restriction on which other values may also appear
// (§4.3.4; also the mechanism behind Quad clues).
type ContainAtLeast struct {
	cells  []int
	values []int
}

func NewContainAtLeast(cells []int, values []int) *ContainAtLeast {
	return &ContainAtLeast{cells: append([]int(nil), cells...), values: append([]int(nil), values...)}
}

func (c *ContainAtLeast) Cells() []int  { return c.cells }
func (c *ContainAtLeast) Priority() int { return PriorityLine }
func (c *ContainAtLeast) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (c *ContainAtLeast) Enforce(grid *core.Grid, acc *Accumulator) bool {
	for _, d := range c.values {
		found := false
		for _, idx := range c.cells {
			if grid.Cells[idx].Has(d) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	// Hidden single: if a required value has exactly one hosting cell in
	// the quad's cells, fix it there.
	for _, d := range c.values {
		only, count := -1, 0
		for _, idx := range c.cells {
			if grid.Cells[idx].Has(d) {
				count++
				only = idx
			}
		}
		if count == 1 && !grid.Cells[only].IsFixed() {
			if grid.Fix(only, d) {
				acc.AddForCell(only)
			}
		}
	}
	return true
}

// Quad is ContainAtLeast specialized to the conventional four-cell
// grid-intersection clue; kept as a distinct constructor for readability
// at the builder call site even though it shares ContainAtLeast's type.
func NewQuad(cells []int, values []int) *ContainAtLeast {
	return NewContainAtLeast(cells, values)
}

// Indexing requires that, reading along the line, the digit appearing at
// the position equal to the index cell's own value matches target
// (§4.3.4's indexing family; ValueIndexing is the same mechanism applied
// position-by-position over the whole line rather than a single index
// cell). indexPos is 0-based; line is the sequence searched by position.
type Indexing struct {
	line     []int
	indexPos int
	target   int
}

func NewIndexing(line []int, indexPos, target int) *Indexing {
	return &Indexing{line: append([]int(nil), line...), indexPos: indexPos, target: target}
}

func (ix *Indexing) Cells() []int  { return ix.line }
func (ix *Indexing) Priority() int { return PriorityLine }
func (ix *Indexing) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (ix *Indexing) Enforce(grid *core.Grid, acc *Accumulator) bool {
	idxCell := ix.line[ix.indexPos]
	before := grid.Cells[idxCell]
	var after core.Mask
	for _, p := range before.Digits() {
		if p < 1 || p > len(ix.line) {
			continue
		}
		if grid.Cells[ix.line[p-1]].Has(ix.target) {
			after = after.With(p)
		}
	}
	if after != before {
		grid.Cells[idxCell] = after
		acc.AddForCell(idxCell)
	}
	if after.IsEmpty() {
		return false
	}
	if p, ok := after.Single(); ok {
		target := ix.line[p-1]
		if grid.Fix(target, ix.target) {
			acc.AddForCell(target)
		}
		if grid.Cells[target].IsEmpty() {
			return false
		}
	}
	return true
}

// ValueIndexing applies Indexing position-by-position: for every position
// p on the line, the digit v at position p means the cell at position v
// holds digit p (a fully self-referential permutation-style line).
type ValueIndexing struct {
	line []int
}

func NewValueIndexing(line []int) *ValueIndexing {
	return &ValueIndexing{line: append([]int(nil), line...)}
}

func (vi *ValueIndexing) Cells() []int  { return vi.line }
func (vi *ValueIndexing) Priority() int { return PriorityLine }
func (vi *ValueIndexing) Initialize(grid *core.Grid, ex *exclude.Graph, shape core.Shape, scratch *Scratch) bool {
	return true
}

func (vi *ValueIndexing) Enforce(grid *core.Grid, acc *Accumulator) bool {
	n := len(vi.line)
	for p := 0; p < n; p++ {
		cell := vi.line[p]
		before := grid.Cells[cell]
		var after core.Mask
		for _, v := range before.Digits() {
			if v < 1 || v > n {
				continue
			}
			if grid.Cells[vi.line[v-1]].Has(p + 1) {
				after = after.With(v)
			}
		}
		if after != before {
			grid.Cells[cell] = after
			acc.AddForCell(cell)
		}
		if after.IsEmpty() {
			return false
		}
	}
	return true
}
