package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Extract assessment details from a webpage",
		Long: `Fetch downloads an HTML page and prints the text of every element whose
class attribute contains the marker class, one per line, in document order.

Examples:
  schoolscan fetch https://example.com/assessments
  schoolscan fetch --marker results --tag div --timeout 10s https://example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runFetchCmd,
	}

	addFetchFlags(cmd)

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	a := newAnalyzer(cfg, setupLogger(cmd, cfg))

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	data, err := a.FetchWebData(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if data.Len() == 0 {
		fmt.Fprintf(out, "No elements with class %q found.\n", cfg.Marker)
		return nil
	}
	for _, text := range data {
		fmt.Fprintln(out, text)
	}
	return nil
}

// signalContext returns a context cancelled on interrupt or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
