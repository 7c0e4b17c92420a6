package http

// ShapeRequest describes the grid dimensions and box partition a puzzle
// is built for (§6). BoxHeight/BoxWidth are ignored when NoBoxes is true.
type ShapeRequest struct {
	Rows      int  `json:"rows" binding:"required"`
	Cols      int  `json:"cols" binding:"required"`
	Values    int  `json:"values" binding:"required"`
	BoxHeight int  `json:"box_height"`
	BoxWidth  int  `json:"box_width"`
	NoBoxes   bool `json:"no_boxes"`
}

// ConstraintRequest mirrors core.Constraint field-for-field over the
// wire: one generic tagged node type keeps the JSON schema as flat as
// the in-process representation, rather than inventing a second shape
// for the same data (§6).
type ConstraintRequest struct {
	Kind      string               `json:"kind" binding:"required"`
	Cells     []string             `json:"cells"`
	Groups    [][]string           `json:"groups"`
	Layout    []int                `json:"layout"`
	Children  []*ConstraintRequest `json:"children"`
	Int0      int                  `json:"int0"`
	Int1      int                  `json:"int1"`
	Int2      int                  `json:"int2"`
	Bool0     bool                 `json:"bool0"`
	Mode      string               `json:"mode"`
	Direction string               `json:"direction"`
	Values    []int                `json:"values"`
	Pairs     [][2]int             `json:"pairs"`
	ID        string               `json:"id"`
}

// SolveRequest is the common envelope for every /solve* endpoint (§6):
// a shape, a sparse map of given clues (canonical cell id -> digit), and
// the constraint forest beyond the implicit row/column/box units.
type SolveRequest struct {
	Shape       ShapeRequest         `json:"shape" binding:"required"`
	Givens      map[string]int       `json:"givens"`
	Constraints []*ConstraintRequest `json:"constraints"`
}

// CountRequest extends SolveRequest with a cap on how many solutions to
// count before reporting "at least cap" instead of an exact number.
type CountRequest struct {
	SolveRequest
	Cap int `json:"cap"`
}

// NthRequest extends SolveRequest with which solution, in search order,
// to return.
type NthRequest struct {
	SolveRequest
	N int `json:"n"`
}

// StepRequest extends SolveRequest with how many propagate-and-branch
// rounds to run before returning the grid snapshot.
type StepRequest struct {
	SolveRequest
	Steps int `json:"steps"`
}

// ValidateRequest carries a fully specified grid to check against a
// constraint set (§4.6's ValidateLayout operation).
type ValidateRequest struct {
	SolveRequest
	Solution map[string]int `json:"solution" binding:"required"`
}
