package criteria

import (
	"errors"
	"fmt"
)

// ErrInvalidCriteria is matched by every InvalidCriteriaError.
var ErrInvalidCriteria = errors.New("invalid criteria")

// InvalidCriteriaError reports a criteria string that cannot be parsed or
// that references a column the table does not have.
type InvalidCriteriaError struct {
	// Criteria is the full criteria string.
	Criteria string

	// Pos is the byte offset of the problem within Criteria, or -1 when the
	// problem is not tied to a position.
	Pos int

	// Msg describes the problem.
	Msg string
}

// Error implements the error interface.
func (e *InvalidCriteriaError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("invalid criteria %q at offset %d: %s", e.Criteria, e.Pos, e.Msg)
	}
	return fmt.Sprintf("invalid criteria %q: %s", e.Criteria, e.Msg)
}

// Is reports whether target is ErrInvalidCriteria.
func (e *InvalidCriteriaError) Is(target error) bool {
	return target == ErrInvalidCriteria
}
