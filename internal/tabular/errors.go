package tabular

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure categories of this package.
// The typed errors below match them through errors.Is.
var (
	// ErrUnsupportedFormat is returned when a file suffix is not .csv, .xlsx or .txt.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrFileAccess is returned when a file cannot be opened, created or renamed.
	ErrFileAccess = errors.New("file access failed")

	// ErrParse is returned when file content is not a well-formed table.
	ErrParse = errors.New("failed to parse table")
)

// UnsupportedFormatError reports a file whose suffix has no reader.
type UnsupportedFormatError struct {
	// Path is the rejected file path.
	Path string

	// Ext is the rejected suffix, including the leading dot. Empty if the
	// path has no suffix.
	Ext string
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unsupported file format for %s: no file extension (want .csv, .xlsx or .txt)", e.Path)
	}
	return fmt.Sprintf("unsupported file format %q for %s (want .csv, .xlsx or .txt)", e.Ext, e.Path)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// FileAccessError reports an I/O failure on a path.
type FileAccessError struct {
	// Op is the operation that failed (open, read, create, write, rename).
	Op string

	// Path is the file involved.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FileAccessError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFileAccess.
func (e *FileAccessError) Is(target error) bool {
	return target == ErrFileAccess
}

// ParseError reports malformed table content.
type ParseError struct {
	// Path is the file being parsed.
	Path string

	// Line is the 1-based line (or worksheet row) of the problem; 0 if unknown.
	Line int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse %s at line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
