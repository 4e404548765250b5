package main

import (
	"fmt"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/schoolscan/internal/tabular"
	"github.com/spf13/cobra"
)

// NewLoadCmd creates the load command.
func NewLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load a table and describe it",
		Long: `Load reads a CSV, XLSX or tab-delimited .txt file and prints its columns
and row count. The format is chosen from the file extension.

Examples:
  # Describe a table
  schoolscan load school_management.csv

  # Preview the first five rows as a Markdown table
  schoolscan load --head 5 school_management.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: runLoadCmd,
	}

	cmd.Flags().IntP("head", "n", 0, "Preview the first N rows")

	return cmd
}

// runLoadCmd executes the load command.
func runLoadCmd(cmd *cobra.Command, args []string) error {
	head, err := cmd.Flags().GetInt("head")
	if err != nil {
		return err
	}
	if head < 0 {
		return fmt.Errorf("--head must not be negative: %d", head)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	a := newAnalyzer(cfg, setupLogger(cmd, cfg))

	table, err := a.Load(args[0])
	if err != nil {
		return err
	}

	format, err := tabular.DetectFormat(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded %s (%s): %d row(s), %d column(s)\n",
		args[0], format, table.Len(), len(table.Columns()))
	fmt.Fprintf(out, "Columns: %s\n", strings.Join(table.Columns(), ", "))

	if head == 0 || table.IsEmpty() {
		return nil
	}

	records := table.Records()
	if head < len(records) {
		records = records[:head]
	}
	fmt.Fprintln(out)
	return markdown.NewMarkdown(out).
		Table(markdown.TableSet{
			Header: table.Columns(),
			Rows:   records,
		}).
		Build()
}
