package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/schoolscan/internal/model"
)

// Step is one stage of a run. Stages share a RunReport: each one records
// its own results there and later stages may rely on side effects of
// earlier ones (for example the table loaded into the analyzer).
type Step interface {
	// Do runs the stage. ctx is cancelled when the run is interrupted.
	Do(ctx context.Context, run *model.RunReport) error

	// Name identifies the stage in logs and in RunReport.StepErrors.
	Name() string
}

// Pipeline runs Steps one after another.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// continueOnError keeps the run going after a failed step.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. Failed steps are logged and their errors
// are recorded in the run report, but subsequent steps still execute.
//
// Design decision: The run command enables this so that, like the
// interactive workflow it replaces, an unreachable webpage does not
// prevent the summary from being produced.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates an empty Pipeline. The logger defaults to slog.Default().
func New(opts ...Option) *Pipeline {
	p := &Pipeline{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs the steps in order and records each one in run.
//
// Cancellation is checked between steps only; a step that blocks (the
// fetch) watches ctx itself. When ctx is done the remaining steps are
// skipped, run.TimedOut is set and ctx.Err() is returned.
//
// A failed step always lands in run.StepErrors. Without continueOnError
// its error is also returned and the remaining steps are skipped.
func (p *Pipeline) Execute(ctx context.Context, run *model.RunReport) error {
	p.logger.Info("run started", "steps", p.StepNames())
	for i, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("run interrupted",
				"next_step", step.Name(),
				"skipped", len(p.steps)-i,
				"reason", err,
			)
			run.TimedOut = true
			return err
		}

		if err := p.runStep(ctx, step, run); err != nil && !p.continueOnError {
			return err
		}
	}
	return nil
}

// runStep runs a single step and records it in run.
func (p *Pipeline) runStep(ctx context.Context, step Step, run *model.RunReport) error {
	name := step.Name()
	p.logger.Info("step started", "step", name)

	start := time.Now()
	err := step.Do(ctx, run)
	elapsed := time.Since(start)

	run.PerformedSteps = append(run.PerformedSteps, name)
	if err != nil {
		run.RecordError(name, err)
		p.logger.Error("step failed", "step", name, "elapsed", elapsed, "error", err)
		return err
	}

	p.logger.Debug("step finished", "step", name, "elapsed", elapsed)
	return nil
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
