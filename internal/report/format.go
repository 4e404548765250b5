package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownFormat is returned by ParseFormat for an unrecognized name.
var ErrUnknownFormat = errors.New("unknown report format")

// Format selects a Writer implementation.
type Format string

const (
	// FormatText is the plain text summary.
	FormatText Format = "text"
	// FormatMarkdown is GitHub-flavored Markdown.
	FormatMarkdown Format = "markdown"
	// FormatJSON is indented JSON.
	FormatJSON Format = "json"
)

// ParseFormat converts a format name to a Format. "md" is accepted as an
// alias for markdown and an empty name means text.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// NewWriter creates the Writer for format. The breakdown flag adds the
// per-class section to text output; Markdown and JSON always include it.
func NewWriter(format Format, output io.Writer, breakdown bool) Writer {
	switch format {
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	default:
		return NewSimpleWriter(output, WithBreakdown(breakdown))
	}
}
