package search

import "variantsudoku/internal/core"

// selectCell implements minimum-remaining-values cell selection (§4.6):
// the unfixed cell with the fewest candidates is branched on first, with
// the exclusion graph's degree (number of cells it must differ from) as
// the tiebreaker so the more constrained cell of two equally narrow ones
// goes first.
func selectCell(grid *core.Grid, ex degreeSource) (int, bool) {
	best := -1
	bestCount := grid.Shape.Values + 1
	bestDegree := -1
	for i, c := range grid.Cells {
		if c.IsFixed() {
			continue
		}
		count := c.Count()
		if count == 0 {
			continue
		}
		degree := ex.Neighbors(i).Count()
		if count < bestCount || (count == bestCount && degree > bestDegree) {
			best, bestCount, bestDegree = i, count, degree
		}
	}
	return best, best >= 0
}

type degreeSource interface {
	Neighbors(a int) core.BitSet
}
