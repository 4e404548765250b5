package model

import "time"

// RunReport records the outcome of a multi-step run: loading files,
// transferring a filtered subset, fetching webpage data and summarizing.
// Steps that fail record their error here and the run continues.
type RunReport struct {
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// PerformedSteps lists the names of the steps that ran, in order.
	PerformedSteps []string `json:"performed_steps"`

	// StepErrors maps a step name to the error message it produced.
	StepErrors map[string]string `json:"step_errors,omitempty"`

	// LoadedFiles lists the files that loaded successfully, in order.
	LoadedFiles []string `json:"loaded_files,omitempty"`

	// TransferredRows is the number of rows written by the transfer step.
	TransferredRows int `json:"transferred_rows"`

	// WebData holds the text extracted by the fetch step.
	WebData ExtractedWebData `json:"web_data,omitempty"`

	// Summary holds the summary text produced by the summary step.
	Summary string `json:"summary,omitempty"`

	// TimedOut indicates the run was cancelled before every step ran.
	TimedOut bool `json:"timed_out"`
}

// NewRunReport creates an empty RunReport.
func NewRunReport(startedAt time.Time) *RunReport {
	return &RunReport{
		StartedAt:      startedAt,
		PerformedSteps: make([]string, 0),
		StepErrors:     make(map[string]string),
	}
}

// RecordError stores the error produced by a step.
func (r *RunReport) RecordError(step string, err error) {
	if err == nil {
		return
	}
	r.StepErrors[step] = err.Error()
}

// HasErrors reports whether any step failed.
func (r *RunReport) HasErrors() bool {
	return len(r.StepErrors) > 0
}
