package model

// AnalysisResult holds the aggregate statistics computed over a Table.
// It is derived data: it is recomputed on every analysis and never stored.
type AnalysisResult struct {
	// AverageScore is the arithmetic mean of every numeric score.
	AverageScore float64 `json:"average_score"`

	// TopClass is the class with the highest mean score.
	TopClass string `json:"top_class"`

	// Rows is the number of rows in the analyzed table.
	Rows int `json:"rows"`

	// Scored is the number of rows with a numeric score.
	Scored int `json:"scored"`

	// Classes holds per-class statistics in the order used for the
	// top-class tie-break.
	Classes []ClassStat `json:"classes,omitempty"`
}

// ClassStat holds the statistics for a single class.
type ClassStat struct {
	// Name is the class key as it appears in the class column.
	Name string `json:"name"`

	// Count is the number of rows with a numeric score in this class.
	Count int `json:"count"`

	// MeanScore is the mean of the numeric scores in this class.
	MeanScore float64 `json:"mean_score"`

	// MinScore is the lowest numeric score in this class.
	MinScore float64 `json:"min_score"`

	// MaxScore is the highest numeric score in this class.
	MaxScore float64 `json:"max_score"`
}
