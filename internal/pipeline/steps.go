package pipeline

import (
	"context"
	"errors"

	"github.com/nao1215/schoolscan/internal/model"
)

// Analyzer is the part of *analyzer.Analyzer the steps use.
type Analyzer interface {
	Load(path string) (*model.Table, error)
	Transfer(criteria, sourcePath, destPath string) (int, error)
	FetchWebData(ctx context.Context, pageURL string) (model.ExtractedWebData, error)
	GenerateSummary() (string, error)
}

// Step names as recorded in RunReport.PerformedSteps.
const (
	StepLoad     = "load"
	StepTransfer = "transfer"
	StepFetch    = "fetch"
	StepSummary  = "summary"
)

// LoadStep loads each file in turn. The last file that loads becomes the
// current table. A file that fails to load does not stop the others.
type LoadStep struct {
	analyzer Analyzer
	paths    []string
}

// NewLoadStep creates a step loading paths in order.
func NewLoadStep(a Analyzer, paths ...string) *LoadStep {
	return &LoadStep{analyzer: a, paths: paths}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return StepLoad
}

// Do loads every file and records the successful ones.
// The returned error joins the individual failures.
func (s *LoadStep) Do(_ context.Context, run *model.RunReport) error {
	var errs []error
	for _, path := range s.paths {
		if _, err := s.analyzer.Load(path); err != nil {
			errs = append(errs, err)
			continue
		}
		run.LoadedFiles = append(run.LoadedFiles, path)
	}
	return errors.Join(errs...)
}

// TransferStep writes the rows of a source file that match a criteria
// expression to a destination file.
type TransferStep struct {
	analyzer Analyzer
	criteria string
	source   string
	dest     string
}

// NewTransferStep creates a transfer step.
func NewTransferStep(a Analyzer, criteria, source, dest string) *TransferStep {
	return &TransferStep{analyzer: a, criteria: criteria, source: source, dest: dest}
}

// Name returns the step name.
func (s *TransferStep) Name() string {
	return StepTransfer
}

// Do performs the transfer and records the number of rows written.
func (s *TransferStep) Do(_ context.Context, run *model.RunReport) error {
	n, err := s.analyzer.Transfer(s.criteria, s.source, s.dest)
	if err != nil {
		return err
	}
	run.TransferredRows = n
	return nil
}

// FetchStep extracts assessment details from a webpage.
type FetchStep struct {
	analyzer Analyzer
	url      string
}

// NewFetchStep creates a fetch step for pageURL.
func NewFetchStep(a Analyzer, pageURL string) *FetchStep {
	return &FetchStep{analyzer: a, url: pageURL}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return StepFetch
}

// Do fetches the page and records the extracted texts.
func (s *FetchStep) Do(ctx context.Context, run *model.RunReport) error {
	data, err := s.analyzer.FetchWebData(ctx, s.url)
	if err != nil {
		return err
	}
	run.WebData = data
	return nil
}

// SummaryStep produces the text summary of the current table.
type SummaryStep struct {
	analyzer Analyzer
}

// NewSummaryStep creates a summary step.
func NewSummaryStep(a Analyzer) *SummaryStep {
	return &SummaryStep{analyzer: a}
}

// Name returns the step name.
func (s *SummaryStep) Name() string {
	return StepSummary
}

// Do generates the summary. With no data the summary is the fixed
// "No summary available." text, which is not an error.
func (s *SummaryStep) Do(_ context.Context, run *model.RunReport) error {
	text, err := s.analyzer.GenerateSummary()
	if err != nil {
		return err
	}
	run.Summary = text
	return nil
}
