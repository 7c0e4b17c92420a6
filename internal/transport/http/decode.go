package http

import (
	"fmt"

	"variantsudoku/internal/core"
)

// decodeShape validates and converts the wire shape into a core.Shape.
func decodeShape(req ShapeRequest) (core.Shape, error) {
	return core.NewShape(req.Rows, req.Cols, req.Values, req.BoxHeight, req.BoxWidth, req.NoBoxes)
}

// decodeGivens converts canonical cell-id keys ("R1C1") into flat indices.
func decodeGivens(shape core.Shape, raw map[string]int) (map[int]int, error) {
	out := make(map[int]int, len(raw))
	for id, d := range raw {
		idx, err := shape.ParseCellID(id)
		if err != nil {
			return nil, err
		}
		out[idx] = d
	}
	return out, nil
}

// decodeCells resolves a list of canonical cell ids to flat indices, in
// the order given (order matters for ordered-kind constraints: Arrow,
// Thermo, lines in general).
func decodeCells(shape core.Shape, ids []string) ([]int, error) {
	out := make([]int, len(ids))
	for i, id := range ids {
		idx, err := shape.ParseCellID(id)
		if err != nil {
			return nil, fmt.Errorf("cell %d (%q): %w", i, id, err)
		}
		out[i] = idx
	}
	return out, nil
}

// decodeConstraint recursively converts one wire node (and its children)
// into a core.Constraint.
func decodeConstraint(shape core.Shape, n *ConstraintRequest) (*core.Constraint, error) {
	cells, err := decodeCells(shape, n.Cells)
	if err != nil {
		return nil, fmt.Errorf("constraint %s: %w", n.Kind, err)
	}
	var groups [][]int
	for _, g := range n.Groups {
		gc, err := decodeCells(shape, g)
		if err != nil {
			return nil, fmt.Errorf("constraint %s group: %w", n.Kind, err)
		}
		groups = append(groups, gc)
	}
	var children []*core.Constraint
	for _, ch := range n.Children {
		c, err := decodeConstraint(shape, ch)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return &core.Constraint{
		Kind:      core.Kind(n.Kind),
		Cells:     cells,
		Groups:    groups,
		Layout:    n.Layout,
		Children:  children,
		Int0:      n.Int0,
		Int1:      n.Int1,
		Int2:      n.Int2,
		Bool0:     n.Bool0,
		Mode:      n.Mode,
		Direction: core.Direction(n.Direction),
		Values:    n.Values,
		Pairs:     n.Pairs,
		ID:        n.ID,
	}, nil
}

// decodeConstraints converts the top-level constraint forest.
func decodeConstraints(shape core.Shape, nodes []*ConstraintRequest) ([]*core.Constraint, error) {
	out := make([]*core.Constraint, 0, len(nodes))
	for _, n := range nodes {
		c, err := decodeConstraint(shape, n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// decodeSolution converts a sparse cell-id -> digit solution map into a
// dense per-cell digit slice, defaulting unmentioned cells to 0.
func decodeSolution(shape core.Shape, raw map[string]int) (core.Solution, error) {
	digits := make([]int, shape.NumCells())
	for id, d := range raw {
		idx, err := shape.ParseCellID(id)
		if err != nil {
			return core.Solution{}, err
		}
		digits[idx] = d
	}
	return core.Solution{Shape: shape, Digits: digits}, nil
}
