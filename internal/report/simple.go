package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/nao1215/schoolscan/internal/model"
)

// SimpleWriter outputs the plain text summary report.
//
// Design decision: We use plain text with fixed indentation rather than
// ANSI colors because the summary is meant to be pasted into mail or
// documents as is.
type SimpleWriter struct {
	baseWriter

	// breakdown adds the per-class section.
	breakdown bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithBreakdown adds a "Class Breakdown" section listing every class.
func WithBreakdown(breakdown bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.breakdown = breakdown
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary text followed by a newline.
func (w *SimpleWriter) Write(summary *model.Summary) (int, error) {
	text := FormatSummary(summary, w.breakdown)
	return io.WriteString(w.output, text+"\n")
}

// WriteRun outputs the run report in human-readable format.
func (w *SimpleWriter) WriteRun(run *model.RunReport) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("RUN REPORT\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Started:          %s\n", run.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&sb, "Steps performed:  %s\n", strings.Join(run.PerformedSteps, ", "))
	fmt.Fprintf(&sb, "Files loaded:     %d\n", len(run.LoadedFiles))
	fmt.Fprintf(&sb, "Rows transferred: %d\n", run.TransferredRows)
	fmt.Fprintf(&sb, "Web data items:   %d\n", run.WebData.Len())
	switch {
	case run.TimedOut:
		sb.WriteString("Status:           TIMED OUT (partial results)\n")
	case run.HasErrors():
		fmt.Fprintf(&sb, "Status:           %d step(s) failed\n", len(run.StepErrors))
	default:
		sb.WriteString("Status:           Complete\n")
	}
	sb.WriteString("\n")

	if run.HasErrors() {
		sb.WriteString("Errors:\n")
		steps := make([]string, 0, len(run.StepErrors))
		for step := range run.StepErrors {
			steps = append(steps, step)
		}
		slices.Sort(steps)
		for _, step := range steps {
			fmt.Fprintf(&sb, "  [%s] %s\n", step, run.StepErrors[step])
		}
		sb.WriteString("\n")
	}

	if run.WebData.Len() > 0 {
		sb.WriteString("Web data:\n")
		for _, text := range run.WebData {
			fmt.Fprintf(&sb, "  - %s\n", strings.TrimSpace(text))
		}
		sb.WriteString("\n")
	}

	if run.Summary != "" {
		sb.WriteString(run.Summary)
		sb.WriteString("\n")
	}

	return io.WriteString(w.output, sb.String())
}

// FormatSummary renders the text summary report. The result has no
// trailing newline. With breakdown set a "2. Class Breakdown" section is
// inserted before the generation date.
func FormatSummary(summary *model.Summary, breakdown bool) string {
	var sb strings.Builder

	title := summary.Title
	if title == "" {
		title = model.DefaultSummaryTitle
	}
	sb.WriteString(title + ":\n\n")

	sb.WriteString("1. Overall Performance:\n")
	fmt.Fprintf(&sb, "   - Average score: %.2f\n", summary.Result.AverageScore)
	fmt.Fprintf(&sb, "   - Top-performing class: %s\n", summary.Result.TopClass)
	sb.WriteString("\n")

	if breakdown && len(summary.Result.Classes) > 0 {
		sb.WriteString("2. Class Breakdown:\n")
		for _, c := range summary.Result.Classes {
			fmt.Fprintf(&sb, "   - %s: mean %.2f, min %.2f, max %.2f (%d scores)\n",
				c.Name, c.MeanScore, c.MinScore, c.MaxScore, c.Count)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Report generated on: " + summary.GeneratedDate())
	return sb.String()
}
