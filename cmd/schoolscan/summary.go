package main

import (
	"errors"
	"fmt"

	"github.com/nao1215/schoolscan/internal/analysis"
	"github.com/nao1215/schoolscan/internal/model"
	"github.com/spf13/cobra"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <file>",
		Short: "Print the assessment summary report",
		Long: `Summary loads a table and prints the School Assessment Summary Report.

Examples:
  # Plain text report
  schoolscan summary school_management.csv

  # Plain text with per-class statistics
  schoolscan summary --breakdown school_management.csv

  # Markdown report written to a file (the text report is still printed)
  schoolscan summary --markdown -o reports/summary.md school_management.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: runSummaryCmd,
	}

	addColumnFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runSummaryCmd executes the summary command.
func runSummaryCmd(cmd *cobra.Command, args []string) (err error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	a := newAnalyzer(cfg, setupLogger(cmd, cfg))

	if _, err := a.Load(args[0]); err != nil {
		return err
	}

	summary, err := a.Summary()
	if errors.Is(err, analysis.ErrNoData) {
		fmt.Fprintln(cmd.OutOrStdout(), model.NoSummaryAvailable)
		return nil
	}
	if err != nil {
		return err
	}

	w, closeFn, err := newReportWriter(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = w.Write(summary)
	return err
}
