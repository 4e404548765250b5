package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and File.Apply().
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrEmptyColumnName is returned when the score or class column name is empty.
	ErrEmptyColumnName = errors.New("invalid column name: must not be empty")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrEmptyMarker is returned when the marker class is empty.
	ErrEmptyMarker = errors.New("invalid marker: must not be empty")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidReportFormat is returned for a report format other than
	// text, markdown or json.
	ErrInvalidReportFormat = errors.New("invalid report format: must be text, markdown or json")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
