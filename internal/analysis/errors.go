package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData indicates there is nothing to analyze: the table is empty or
	// holds no numeric score.
	ErrNoData = errors.New("no data to analyze")

	// ErrMissingColumn is matched by every MissingColumnError.
	ErrMissingColumn = errors.New("missing column")
)

// MissingColumnError reports a required column that the table does not have.
type MissingColumnError struct {
	Column string
}

// Error implements the error interface.
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

// Is reports whether target is ErrMissingColumn.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}
