package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for schoolscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schoolscan",
		Short: "Analyze school assessment data",
		Long: `schoolscan analyzes school assessment data.

It loads tables from CSV, XLSX and tab-delimited text files, writes filtered
subsets to new CSV files, extracts assessment details from webpages and
reports the average score and the top-performing class.

Settings are read from a .schoolscan file in the current or home directory
(create one with "schoolscan init"). Command line flags take precedence.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write log records as JSON lines")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .schoolscan in current or home directory)")

	cmd.AddCommand(NewLoadCmd())
	cmd.AddCommand(NewTransferCmd())
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewSummaryCmd())
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
