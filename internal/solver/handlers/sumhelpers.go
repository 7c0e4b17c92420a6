package handlers

import (
	"variantsudoku/internal/core"
	"variantsudoku/internal/solver/masks"
)

// rangeMask returns the mask of every digit in [lo,hi] (inclusive),
// clamped to the shape's domain.
func rangeMask(values, lo, hi int) core.Mask {
	if lo < 1 {
		lo = 1
	}
	if hi > values {
		hi = values
	}
	var m core.Mask
	for d := lo; d <= hi; d++ {
		m = m.With(d)
	}
	return m
}

// sumBounds computes the minimum and maximum possible sum over cells,
// using each cell's own lowest/highest remaining candidate. It is the
// building block for every sum-family handler's range propagation.
func sumBounds(grid *core.Grid, cells []int) (lo, hi int) {
	for _, idx := range cells {
		lo += grid.Cells[idx].LowestDigit()
		hi += grid.Cells[idx].HighestDigit()
	}
	return lo, hi
}

// sumRangeEnforce tightens every cell in cells to the range of values
// that can still let the group reach exactly target, given the other
// cells' own min/max (§4.3.2). If unique, it additionally restricts the
// union of candidates using a small-mask subset-sum check: every digit
// must appear in at least one exact-sum, distinct-digit combination of
// size len(cells) (bounded to keep the search proportionate to a cage's
// realistic size).
func sumRangeEnforce(grid *core.Grid, acc *Accumulator, cells []int, target int, unique bool) bool {
	n := len(cells)
	if n == 0 {
		return target == 0
	}
	// Per-cell min/max range propagation.
	for i, idx := range cells {
		minOthers, maxOthers := 0, 0
		for j, other := range cells {
			if j == i {
				continue
			}
			minOthers += grid.Cells[other].LowestDigit()
			maxOthers += grid.Cells[other].HighestDigit()
		}
		lo := target - maxOthers
		hi := target - minOthers
		m := rangeMask(grid.Shape.Values, lo, hi)
		before := grid.Cells[idx]
		after := before.Intersect(m)
		if after != before {
			grid.Cells[idx] = after
			acc.AddForCell(idx)
		}
		if after.IsEmpty() {
			return false
		}
	}

	if unique && n <= 12 {
		var union core.Mask
		for _, idx := range cells {
			union = union.Union(grid.Cells[idx])
		}
		if union.Count() >= n {
			t := masks.For(grid.Shape.Values)
			var allowed core.Mask
			any := false
			t.Combinations(union, n, func(subset core.Mask) bool {
				if int(t.SumAll[subset]) == target {
					allowed = allowed.Union(subset)
					any = true
				}
				return true
			})
			if any {
				for _, idx := range cells {
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
			} else {
				return false
			}
		}
	}
	return true
}

// sumRangeEnforceRanged is sumRangeEnforce's generalization for handlers
// whose target is itself a range rather than a single constant (Arrow's
// target is the circle cell's own candidate range; RegionSumLine's target
// is the overlap of adjacent segment sums). It skips the subset-sum pass
// since there is no single target to check combinations against.
func sumRangeEnforceRanged(grid *core.Grid, acc *Accumulator, cells []int, targetLo, targetHi int) bool {
	if targetLo > targetHi {
		return false
	}
	for i, idx := range cells {
		minOthers, maxOthers := 0, 0
		for j, other := range cells {
			if j == i {
				continue
			}
			minOthers += grid.Cells[other].LowestDigit()
			maxOthers += grid.Cells[other].HighestDigit()
		}
		lo := targetLo - maxOthers
		hi := targetHi - minOthers
		m := rangeMask(grid.Shape.Values, lo, hi)
		before := grid.Cells[idx]
		after := before.Intersect(m)
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
