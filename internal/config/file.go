package config

import (
	"fmt"
	"time"
)

// ColumnsSection names the columns of the assessment table.
type ColumnsSection struct {
	// Score is the column holding numeric scores.
	Score string `yaml:"score,omitempty"`

	// Class is the column holding class names.
	Class string `yaml:"class,omitempty"`
}

// FetchSection configures the web fetcher.
type FetchSection struct {
	// Timeout is a Go duration string such as "30s".
	Timeout string `yaml:"timeout,omitempty"`

	// UserAgent is the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// MaxBodySize is the response body limit in bytes.
	MaxBodySize int64 `yaml:"maxBodySize,omitempty"`

	// Marker is the class selecting assessment detail elements.
	Marker string `yaml:"marker,omitempty"`

	// Tag restricts matches to one tag name.
	Tag string `yaml:"tag,omitempty"`
}

// ReportSection configures summary output.
type ReportSection struct {
	// Format is text, markdown or json.
	Format string `yaml:"format,omitempty"`

	// Breakdown adds the per-class section to text summaries.
	Breakdown bool `yaml:"breakdown,omitempty"`
}

// File represents the structure of the .schoolscan configuration file.
type File struct {
	Columns ColumnsSection `yaml:"columns,omitempty"`
	Fetch   FetchSection   `yaml:"fetch,omitempty"`
	Report  ReportSection  `yaml:"report,omitempty"`
}

// Apply copies every value set in the file onto cfg. Values left empty in
// the file keep their current value in cfg.
func (f *File) Apply(cfg *Config) error {
	if f.Columns.Score != "" {
		cfg.ScoreColumn = f.Columns.Score
	}
	if f.Columns.Class != "" {
		cfg.ClassColumn = f.Columns.Class
	}

	if f.Fetch.Timeout != "" {
		d, err := time.ParseDuration(f.Fetch.Timeout)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, f.Fetch.Timeout)
		}
		cfg.FetchTimeout = d
	}
	if f.Fetch.UserAgent != "" {
		cfg.UserAgent = f.Fetch.UserAgent
	}
	if f.Fetch.MaxBodySize != 0 {
		cfg.MaxBodySize = f.Fetch.MaxBodySize
	}
	if f.Fetch.Marker != "" {
		cfg.Marker = f.Fetch.Marker
	}
	if f.Fetch.Tag != "" {
		cfg.Tag = f.Fetch.Tag
	}

	if f.Report.Format != "" {
		cfg.ReportFormat = f.Report.Format
	}
	if f.Report.Breakdown {
		cfg.Breakdown = true
	}

	return nil
}
