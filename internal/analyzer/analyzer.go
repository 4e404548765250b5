package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/schoolscan/internal/analysis"
	"github.com/nao1215/schoolscan/internal/criteria"
	"github.com/nao1215/schoolscan/internal/fetcher"
	"github.com/nao1215/schoolscan/internal/model"
	"github.com/nao1215/schoolscan/internal/report"
	"github.com/nao1215/schoolscan/internal/tabular"
)

// WebFetcher retrieves the assessment details of a webpage.
// *fetcher.Fetcher implements it.
type WebFetcher interface {
	Fetch(ctx context.Context, pageURL string) (model.ExtractedWebData, error)
}

// Analyzer loads assessment tables, transfers filtered subsets, fetches
// webpage data and summarizes the current table.
//
// Design decision: one mutex guards the table and every public method holds
// it for its whole duration. Operations are therefore serialized, which
// keeps "a load replaces the table wholesale" true even when an Analyzer is
// shared between goroutines.
type Analyzer struct {
	mu sync.Mutex

	// table is the current table; nil until a load succeeds.
	table *model.Table

	// source is the path table was loaded from.
	source string

	columns analysis.Columns
	fetcher WebFetcher
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithColumns sets the score and class column names. Empty names keep the
// defaults.
func WithColumns(score, class string) Option {
	return func(a *Analyzer) {
		if score != "" {
			a.columns.Score = score
		}
		if class != "" {
			a.columns.Class = class
		}
	}
}

// WithFetcher sets the web fetcher.
func WithFetcher(f WebFetcher) Option {
	return func(a *Analyzer) {
		if f != nil {
			a.fetcher = f
		}
	}
}

// WithClock sets the function returning the current time, used for the
// summary date.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Analyzer with no table.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		columns: analysis.DefaultColumns(),
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.fetcher == nil {
		a.fetcher = fetcher.New(fetcher.WithLogger(a.logger))
	}
	return a
}

// Table returns the current table, or nil if nothing has been loaded.
// Tables are immutable, so the result is safe to keep.
func (a *Analyzer) Table() *model.Table {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.table
}

// Source returns the path of the file the current table was loaded from.
func (a *Analyzer) Source() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.source
}

// Load reads path and makes it the current table. The format follows the
// file suffix (.csv, .xlsx, .txt). On failure the current table is kept.
func (a *Analyzer) Load(path string) (*model.Table, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.load(path)
}

func (a *Analyzer) load(path string) (*model.Table, error) {
	table, err := tabular.Read(path)
	if err != nil {
		a.logger.Error("failed to load file", "path", path, "error", err)
		return nil, err
	}

	a.table = table
	a.source = path
	a.logger.Info("file loaded",
		"path", path,
		"rows", table.Len(),
		"columns", len(table.Columns()),
	)
	return table, nil
}

// Transfer loads sourcePath (replacing the current table), selects the rows
// matching criteria and writes them to destPath as CSV with a header row.
// It returns the number of rows written.
//
// The destination is written atomically. If the source cannot be loaded the
// current table is kept; if the criteria are invalid or the write fails the
// source has still replaced the current table.
func (a *Analyzer) Transfer(criteriaText, sourcePath, destPath string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	table, err := a.load(sourcePath)
	if err != nil {
		return 0, err
	}

	c, err := criteria.Parse(criteriaText)
	if err != nil {
		a.logger.Error("invalid transfer criteria", "criteria", criteriaText, "error", err)
		return 0, err
	}

	filtered, err := c.Filter(table)
	if err != nil {
		a.logger.Error("invalid transfer criteria", "criteria", criteriaText, "error", err)
		return 0, err
	}

	if err := tabular.WriteCSV(destPath, filtered); err != nil {
		a.logger.Error("failed to write transfer destination", "path", destPath, "error", err)
		return 0, err
	}

	a.logger.Info("data transferred",
		"criteria", c.String(),
		"source", sourcePath,
		"destination", destPath,
		"rows", filtered.Len(),
	)
	return filtered.Len(), nil
}

// FetchWebData retrieves pageURL and returns the text of every assessment
// details element in document order. On failure it returns nil data and a
// network error. The current table is not touched.
func (a *Analyzer) FetchWebData(ctx context.Context, pageURL string) (model.ExtractedWebData, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := a.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		a.logger.Error("failed to fetch web data", "url", pageURL, "error", err)
		return nil, err
	}

	a.logger.Info("web data fetched", "url", pageURL, "items", data.Len())
	return data, nil
}

// Analyze computes the average score and the top-performing class of the
// current table. It returns analysis.ErrNoData when there is nothing to
// analyze and a *analysis.MissingColumnError when a column is absent.
func (a *Analyzer) Analyze() (model.AnalysisResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.analyze()
}

func (a *Analyzer) analyze() (model.AnalysisResult, error) {
	result, err := analysis.Analyze(a.table, a.columns)
	if err != nil {
		if errors.Is(err, analysis.ErrNoData) {
			a.logger.Warn("no data available for analysis", "source", a.source)
		} else {
			a.logger.Error("failed to analyze data", "source", a.source, "error", err)
		}
		return model.AnalysisResult{}, err
	}

	a.logger.Info("data analyzed",
		"average_score", result.AverageScore,
		"top_class", result.TopClass,
	)
	return result, nil
}

// Summary analyzes the current table and returns the facts a report
// renders, dated with the current time.
func (a *Analyzer) Summary() (*model.Summary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.summary()
}

func (a *Analyzer) summary() (*model.Summary, error) {
	result, err := a.analyze()
	if err != nil {
		return nil, err
	}
	return model.NewSummary(result, a.source, a.now()), nil
}

// GenerateSummary returns the text summary report of the current table.
// When there is no data it returns model.NoSummaryAvailable and a nil error.
// Other analysis failures, such as a missing column, are returned.
func (a *Analyzer) GenerateSummary() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.summary()
	if errors.Is(err, analysis.ErrNoData) {
		return model.NoSummaryAvailable, nil
	}
	if err != nil {
		return "", err
	}
	return report.FormatSummary(s, false), nil
}
