package core

import "fmt"

// BuildErrorKind names the category of a structural error raised while
// compiling a constraint tree (§7 "Structural error").
type BuildErrorKind string

const (
	ErrUnknownKind        BuildErrorKind = "unknown_constraint_kind"
	ErrForbiddenInComposite BuildErrorKind = "forbidden_in_composite"
	ErrRankOutOfRange     BuildErrorKind = "rank_out_of_range"
	ErrDuplicateUniqueness BuildErrorKind = "duplicate_uniqueness_key"
	ErrInvalidCellList    BuildErrorKind = "invalid_cell_list"
	ErrInvalidArguments   BuildErrorKind = "invalid_arguments"
)

// BuildError is a structural error from the optimizer/builder: the input
// tree violates a stated invariant. It is fatal for the puzzle and
// propagates immediately without entering search (§7).
type BuildError struct {
	Kind       BuildErrorKind
	Constraint string // the offending constraint's Kind tag
	Cells      []string // canonical cell ids involved, if any
	Message    string
}

func (e *BuildError) Error() string {
	if len(e.Cells) > 0 {
		return fmt.Sprintf("build error [%s] in %s constraint at %v: %s", e.Kind, e.Constraint, e.Cells, e.Message)
	}
	return fmt.Sprintf("build error [%s] in %s constraint: %s", e.Kind, e.Constraint, e.Message)
}

// NewBuildError constructs a BuildError for the given constraint kind.
func NewBuildError(kind BuildErrorKind, constraintKind string, cells []string, format string, args ...any) *BuildError {
	return &BuildError{
		Kind:       kind,
		Constraint: constraintKind,
		Cells:      cells,
		Message:    fmt.Sprintf(format, args...),
	}
}
