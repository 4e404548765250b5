package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/schoolscan/internal/model"
)

// JSONWriter outputs summaries and run reports as JSON for other tools.
// Output is one compact line unless WithPrettyPrint is given.
type JSONWriter struct {
	baseWriter
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// jsonSummary adds the report date in the same form the text report
// prints, so consumers need not parse the timestamp.
type jsonSummary struct {
	*model.Summary
	GeneratedOn string `json:"generated_on"`
}

// Write outputs the summary.
func (w *JSONWriter) Write(summary *model.Summary) (int, error) {
	return w.encode(jsonSummary{Summary: summary, GeneratedOn: summary.GeneratedDate()})
}

// WriteRun outputs the run report.
func (w *JSONWriter) WriteRun(run *model.RunReport) (int, error) {
	return w.encode(run)
}

// encode writes v followed by a newline. Class names and fetched texts
// are written as-is, without HTML escaping.
func (w *JSONWriter) encode(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.indent != "" {
		enc.SetIndent("", w.indent)
	}
	if err := enc.Encode(v); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
