package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Print the average score and the top-performing class",
		Long: `Analyze loads a table and prints the mean of the score column and the class
with the highest mean score. Empty and non-numeric scores are ignored.

Examples:
  schoolscan analyze school_management.csv
  schoolscan analyze --json --score-column Mark --class-column Group grades.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeCmd,
	}

	addColumnFlags(cmd)
	cmd.Flags().BoolP("json", "j", false, "Output the result as JSON")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	a := newAnalyzer(cfg, setupLogger(cmd, cfg))

	if _, err := a.Load(args[0]); err != nil {
		return err
	}
	result, err := a.Analyze()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.EffectiveReportFormat() == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Fprintf(out, "Average score: %.2f\n", result.AverageScore)
	fmt.Fprintf(out, "Top-performing class: %s\n", result.TopClass)
	return nil
}
