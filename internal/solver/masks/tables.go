// Package masks holds the per-V precomputed lookup tables that back the
// hot inner loops of the handler library (§4 layer 1): population count,
// min/max set bit, and sum of values represented by a mask. Handlers run
// these tables billions of times across a search, so every one is a flat
// array index, no branching, no allocation. Min/max achievable subset
// sums for a fixed pick count are not tabulated: MinMaxSubsetSum computes
// them on demand from the mask's digit list.
package masks

import (
	"math/bits"
	"sync"

	"variantsudoku/internal/core"
)

// Tables is the full lookup set for one domain size V. All arrays are
// indexed directly by the raw mask value, so each has length 1<<V.
type Tables struct {
	V int

	// PopCount[m] is the number of set bits in mask m.
	PopCount []uint8

	// MinDigit[m] is the smallest digit present in m (1-indexed), or 0 if
	// m is empty.
	MinDigit []uint8

	// MaxDigit[m] is the largest digit present in m, or 0 if empty.
	MaxDigit []uint8

	// SumAll[m] is the sum of every digit present in m.
	SumAll []int16
}

var (
	cacheMu sync.Mutex
	cache   = map[int]*Tables{}
)

// For returns the shared Tables for domain size v, building it on first
// use and caching it for the lifetime of the process. Safe for concurrent
// use by independent solver instances (read-only after construction).
func For(v int) *Tables {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if t, ok := cache[v]; ok {
		return t
	}
	t := build(v)
	cache[v] = t
	return t
}

func build(v int) *Tables {
	size := 1 << uint(v)
	t := &Tables{
		V:        v,
		PopCount: make([]uint8, size),
		MinDigit: make([]uint8, size),
		MaxDigit: make([]uint8, size),
		SumAll:   make([]int16, size),
	}
	for m := 0; m < size; m++ {
		t.PopCount[m] = uint8(bits.OnesCount(uint(m)))
		if m == 0 {
			continue
		}
		t.MinDigit[m] = uint8(bits.TrailingZeros(uint(m)) + 1)
		t.MaxDigit[m] = uint8(bits.Len(uint(m)))
		sum := int16(0)
		for mm := m; mm != 0; mm &= mm - 1 {
			sum += int16(bits.TrailingZeros(uint(mm)) + 1)
		}
		t.SumAll[m] = sum
	}
	return t
}

// MinMaxSubsetSum returns the smallest and largest sums achievable by
// picking exactly k distinct digits from mask m. It is computed on demand
// (not tabulated per (mask,k), which would need a 3-dimensional table) by
// walking the sorted bit list, which is cheap since V<=16 means at most 16
// iterations regardless of how hot the call site is.
func (t *Tables) MinMaxSubsetSum(m core.Mask, k int) (lo, hi int, ok bool) {
	if k <= 0 {
		return 0, 0, k == 0
	}
	digits := m.Digits()
	if len(digits) < k {
		return 0, 0, false
	}
	lo = 0
	for i := 0; i < k; i++ {
		lo += digits[i]
	}
	hi = 0
	for i := len(digits) - k; i < len(digits); i++ {
		hi += digits[i]
	}
	return lo, hi, true
}

// Combinations calls fn for every k-subset of mask m's set digits, passing
// each subset as a Mask. It stops early if fn returns false. Used by
// subset-sum feasibility checks in the sum-family handlers, where k is
// always small (a cage rarely exceeds a handful of free cells once most of
// the grid is fixed).
func (t *Tables) Combinations(m core.Mask, k int, fn func(core.Mask) bool) {
	digits := m.Digits()
	n := len(digits)
	if k <= 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		var subset core.Mask
		for _, di := range idx {
			subset = subset.With(digits[di])
		}
		if !fn(subset) {
			return
		}
		// advance idx like an odometer with the combinatorial constraint
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
