package core

import "strings"

// Solution is the dense per-cell digit array produced by the search
// engine, alongside the shape it was solved for.
type Solution struct {
	Shape  Shape
	Digits []int
}

// Short renders the canonical short form: one character per cell,
// starting at '1' (or 'A' once V>9), offset by digit-1. A 0 (unfilled, for
// partial grids rendered through this helper) renders as '.'.
func (s Solution) Short() string {
	base := byte('1')
	if s.Shape.Values > 9 {
		base = 'A'
	}
	var b strings.Builder
	b.Grow(len(s.Digits))
	for _, d := range s.Digits {
		if d <= 0 {
			b.WriteByte('.')
			continue
		}
		b.WriteByte(base + byte(d-1))
	}
	return b.String()
}

// Clone returns an independent copy of the solution.
func (s Solution) Clone() Solution {
	digits := make([]int, len(s.Digits))
	copy(digits, s.Digits)
	return Solution{Shape: s.Shape, Digits: digits}
}

// Equal reports whether two solutions have identical digit arrays.
func (s Solution) Equal(o Solution) bool {
	if len(s.Digits) != len(o.Digits) {
		return false
	}
	for i := range s.Digits {
		if s.Digits[i] != o.Digits[i] {
			return false
		}
	}
	return true
}
