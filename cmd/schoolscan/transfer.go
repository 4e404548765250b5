package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTransferCmd creates the transfer command.
func NewTransferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <criteria> <source> <destination>",
		Short: "Write the rows matching a filter to a CSV file",
		Long: `Transfer loads the source table, keeps the rows matching the criteria and
writes them to the destination as CSV with a header row.

Criteria use a small query language: comparisons (==, !=, <, <=, >, >=)
between a column and a literal, "in" / "not in" lists, and "and", "or",
"not" with parentheses. Column names containing spaces are quoted with
backquotes.

Examples:
  schoolscan transfer 'Score > 90' school_management.csv high_achievers.csv
  schoolscan transfer 'Class in ["A", "B"] and not Score < 50' in.xlsx out.csv
  schoolscan transfer '` + "`Final Score`" + ` >= 75' grades.txt passed.csv`,
		Args: cobra.ExactArgs(3),
		RunE: runTransferCmd,
	}
}

// runTransferCmd executes the transfer command.
func runTransferCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	a := newAnalyzer(cfg, setupLogger(cmd, cfg))

	n, err := a.Transfer(args[0], args[1], args[2])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Transferred %d row(s) to %s\n", n, args[2])
	return nil
}
