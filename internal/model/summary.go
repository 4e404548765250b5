package model

import "time"

// DefaultSummaryTitle is the title printed at the top of every summary.
const DefaultSummaryTitle = "School Assessment Summary Report"

// NoSummaryAvailable is the fixed text returned when there is no data to
// summarize.
const NoSummaryAvailable = "No summary available."

// Summary is the data rendered by report writers.
//
// Design decision: We keep the rendered inputs in one struct rather than
// passing AnalysisResult and the generation time separately, so every writer
// (text, Markdown, JSON) renders exactly the same facts.
type Summary struct {
	// Title is the report heading.
	Title string `json:"title"`

	// Source is the file the analyzed table was loaded from, if known.
	Source string `json:"source,omitempty"`

	// Result holds the computed statistics.
	Result AnalysisResult `json:"result"`

	// GeneratedAt is when the summary was generated.
	GeneratedAt time.Time `json:"generated_at"`
}

// NewSummary creates a Summary with the default title.
func NewSummary(result AnalysisResult, source string, generatedAt time.Time) *Summary {
	return &Summary{
		Title:       DefaultSummaryTitle,
		Source:      source,
		Result:      result,
		GeneratedAt: generatedAt,
	}
}

// GeneratedDate returns the generation date in YYYY-MM-DD form.
func (s *Summary) GeneratedDate() string {
	return s.GeneratedAt.Format(time.DateOnly)
}
