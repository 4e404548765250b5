package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/schoolscan/internal/model"
	"github.com/nao1215/schoolscan/internal/pipeline"
	"github.com/spf13/cobra"
)

// errNothingToRun is returned when run is given no files and no URL.
var errNothingToRun = errors.New("nothing to run: give at least one file or --url")

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file...]",
		Short: "Load, transfer, fetch and summarize in one pass",
		Long: `Run performs the whole workflow in order:

1. load every file given as an argument (the last successful load is kept)
2. transfer the rows matching --criteria from --source to --dest
3. fetch assessment details from --url
4. summarize the current table

A failing step is reported and the remaining steps still run. The command
exits with an error if any step failed.

Examples:
  schoolscan run school_management.csv school_management.xlsx school_management.txt \
    --criteria 'Score > 90' --dest high_achievers.csv \
    --url https://example.com/assessments

  schoolscan run --markdown -o run.md school_management.csv`,
		Args: cobra.ArbitraryArgs,
		RunE: runRunCmd,
	}

	cmd.Flags().String("criteria", "", "Filter for the transfer step (e.g. 'Score > 90')")
	cmd.Flags().String("source", "", "Source table for the transfer step (default: first file)")
	cmd.Flags().String("dest", "", "Destination CSV for the transfer step")
	cmd.Flags().StringP("url", "u", "", "Webpage to extract assessment details from")
	addColumnFlags(cmd)
	addFetchFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runOptions holds the run command's step selection.
type runOptions struct {
	files    []string
	criteria string
	source   string
	dest     string
	url      string
}

// parseRunOptions reads and checks the step selection flags.
func parseRunOptions(cmd *cobra.Command, args []string) (runOptions, error) {
	opts := runOptions{files: args}
	var err error
	if opts.criteria, err = cmd.Flags().GetString("criteria"); err != nil {
		return opts, err
	}
	if opts.source, err = cmd.Flags().GetString("source"); err != nil {
		return opts, err
	}
	if opts.dest, err = cmd.Flags().GetString("dest"); err != nil {
		return opts, err
	}
	if opts.url, err = cmd.Flags().GetString("url"); err != nil {
		return opts, err
	}

	if opts.criteria != "" {
		if opts.source == "" && len(opts.files) > 0 {
			opts.source = opts.files[0]
		}
		if opts.source == "" || opts.dest == "" {
			return opts, errors.New("--criteria needs --dest and a source (--source or a file argument)")
		}
	} else if opts.source != "" || opts.dest != "" {
		return opts, errors.New("--source and --dest need --criteria")
	}

	if len(opts.files) == 0 && opts.criteria == "" && opts.url == "" {
		return opts, errNothingToRun
	}
	return opts, nil
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, args []string) (err error) {
	opts, err := parseRunOptions(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg)
	a := newAnalyzer(cfg, logger)

	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
	if len(opts.files) > 0 {
		p.AddStep(pipeline.NewLoadStep(a, opts.files...))
	}
	if opts.criteria != "" {
		p.AddStep(pipeline.NewTransferStep(a, opts.criteria, opts.source, opts.dest))
	}
	if opts.url != "" {
		p.AddStep(pipeline.NewFetchStep(a, opts.url))
	}
	p.AddStep(pipeline.NewSummaryStep(a))

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	run := model.NewRunReport(time.Now())
	execErr := p.Execute(ctx, run)

	w, closeFn, err := newReportWriter(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err := w.WriteRun(run); err != nil {
		return err
	}

	if execErr != nil {
		return execErr
	}
	if run.HasErrors() {
		return fmt.Errorf("%d of %d step(s) failed", len(run.StepErrors), len(run.PerformedSteps))
	}
	return nil
}
