package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "schoolscan"

	// DefaultScoreColumn is the column holding numeric scores.
	DefaultScoreColumn = "Score"

	// DefaultClassColumn is the column holding class names.
	DefaultClassColumn = "Class"

	// DefaultFetchTimeout bounds a single page fetch. The fetch has no
	// retries, so a hung server would otherwise block the run forever.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultUserAgent identifies schoolscan in HTTP requests.
	DefaultUserAgent = "schoolscan/1.0 (+https://github.com/nao1215/schoolscan)"

	// DefaultMaxBodySize limits the response body size to read.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultMarker is the class marking assessment detail elements.
	DefaultMarker = "assessment-details"

	// DefaultReportFormat is the plain text summary.
	DefaultReportFormat = "text"
)

// Config holds all configuration options for schoolscan.
// This struct is populated from defaults, then the config file, then CLI
// flags, and passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The YAML file uses nested sections (see File) and is
// flattened into this struct by File.Apply.
type Config struct {
	// ScoreColumn is the column averaged by the analysis.
	ScoreColumn string

	// ClassColumn is the column rows are grouped by.
	ClassColumn string

	// FetchTimeout bounds each web fetch, body included.
	FetchTimeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (10MB).
	MaxBodySize int64

	// Marker is the class that selects assessment detail elements.
	Marker string

	// Tag optionally restricts matched elements to one tag name.
	Tag string

	// ReportFormat is the summary output format: text, markdown or json.
	ReportFormat string

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with
	// JSONReport.
	MarkdownReport bool

	// Breakdown adds the per-class section to text summaries.
	Breakdown bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (column names, timeout).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		ScoreColumn:  DefaultScoreColumn,
		ClassColumn:  DefaultClassColumn,
		FetchTimeout: DefaultFetchTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
		Marker:       DefaultMarker,
		ReportFormat: DefaultReportFormat,
	}
}

// XDGConfigDir returns the XDG config directory for schoolscan.
// On Linux: ~/.config/schoolscan
// On macOS: ~/Library/Application Support/schoolscan
// On Windows: %APPDATA%\schoolscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// EffectiveReportFormat returns the report format after applying the
// --json and --markdown shortcuts.
func (c *Config) EffectiveReportFormat() string {
	switch {
	case c.JSONReport:
		return "json"
	case c.MarkdownReport:
		return "markdown"
	case c.ReportFormat == "":
		return DefaultReportFormat
	default:
		return c.ReportFormat
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if c.ScoreColumn == "" || c.ClassColumn == "" {
		return ErrEmptyColumnName
	}

	if c.FetchTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.Marker == "" {
		return ErrEmptyMarker
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	switch c.EffectiveReportFormat() {
	case "text", "txt", "markdown", "md", "json":
	default:
		return ErrInvalidReportFormat
	}

	return nil
}
