package report

import (
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/schoolscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for sharing results in issues and wikis.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables and mermaid charts
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	title := summary.Title
	if title == "" {
		title = model.DefaultSummaryTitle
	}
	md.H1(title)
	md.PlainText("")

	w.writeOverview(md, summary)
	w.writeClasses(md, summary.Result)
	w.writeAlert(md, summary.Result)
	w.writeFooter(md, summary)

	return len(md.String()), md.Build()
}

// writeOverview writes the overall performance table.
func (w *MarkdownWriter) writeOverview(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Overall Performance")
	md.PlainText("")

	rows := [][]string{
		{"Average score", formatScore(summary.Result.AverageScore)},
		{"Top-performing class", summary.Result.TopClass},
		{"Rows", strconv.Itoa(summary.Result.Rows)},
		{"Scored rows", strconv.Itoa(summary.Result.Scored)},
	}
	if summary.Source != "" {
		rows = slices.Insert(rows, 0, []string{"Source", "`" + summary.Source + "`"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeClasses writes the per-class table and a pie chart of scored rows.
func (w *MarkdownWriter) writeClasses(md *markdown.Markdown, result model.AnalysisResult) {
	if len(result.Classes) == 0 {
		return
	}

	md.H2("Class Breakdown")
	md.PlainText("")

	rows := make([][]string, len(result.Classes))
	for i, c := range result.Classes {
		name := c.Name
		if name == result.TopClass {
			name = "**" + name + "**"
		}
		rows[i] = []string{
			name,
			strconv.Itoa(c.Count),
			formatScore(c.MeanScore),
			formatScore(c.MinScore),
			formatScore(c.MaxScore),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Class", "Scores", "Mean", "Min", "Max"},
		Rows:   rows,
	})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Scored Rows per Class"),
		piechart.WithShowData(true),
	)
	for _, c := range result.Classes {
		chart.LabelAndIntValue(c.Name, uint64(c.Count))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes a note about the result.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result model.AnalysisResult) {
	if skipped := result.Rows - result.Scored; skipped > 0 {
		md.Warningf("%d of %d row(s) have no numeric score and were excluded.", skipped, result.Rows)
	} else {
		md.Tip("Every row has a numeric score.")
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, summary *model.Summary) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated on %s*", summary.GeneratedDate())
}

// WriteRun outputs the run report in Markdown format.
func (w *MarkdownWriter) WriteRun(run *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Run Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Steps performed", strings.Join(run.PerformedSteps, ", ")},
			{"Files loaded", strconv.Itoa(len(run.LoadedFiles))},
			{"Rows transferred", strconv.Itoa(run.TransferredRows)},
			{"Web data items", strconv.Itoa(run.WebData.Len())},
		},
	})
	md.PlainText("")

	switch {
	case run.TimedOut:
		md.Cautionf("The run timed out after %d step(s); results are partial.", len(run.PerformedSteps))
	case run.HasErrors():
		md.Importantf("%d step(s) failed.", len(run.StepErrors))
	default:
		md.Note("All steps completed.")
	}
	md.PlainText("")

	if run.HasErrors() {
		md.H2("Errors")
		md.PlainText("")
		steps := make([]string, 0, len(run.StepErrors))
		for step := range run.StepErrors {
			steps = append(steps, step)
		}
		slices.Sort(steps)
		rows := make([][]string, len(steps))
		for i, step := range steps {
			rows[i] = []string{step, run.StepErrors[step]}
		}
		md.Table(markdown.TableSet{Header: []string{"Step", "Error"}, Rows: rows})
		md.PlainText("")
	}

	if run.WebData.Len() > 0 {
		md.H2("Web Data")
		md.PlainText("")
		items := make([]string, run.WebData.Len())
		for i, text := range run.WebData {
			items[i] = strings.TrimSpace(text)
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	if run.Summary != "" {
		md.H2("Summary")
		md.PlainText("")
		md.Details("Summary report", run.Summary)
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

// formatScore formats a score with two decimals.
func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
