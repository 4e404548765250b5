package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/schoolscan/internal/analyzer"
	"github.com/nao1215/schoolscan/internal/config"
	"github.com/nao1215/schoolscan/internal/fetcher"
	"github.com/nao1215/schoolscan/internal/log"
	"github.com/nao1215/schoolscan/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getLogJSONFlag reports whether log records should be written as JSON.
func getLogJSONFlag(cmd *cobra.Command) bool {
	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		logJSON, err = cmd.Root().PersistentFlags().GetBool("log-json")
		if err != nil {
			return false
		}
	}
	return logJSON
}

// getConfigFlag retrieves the config file path from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// buildConfig creates a Config from the configuration file and the flags
// the user set on the command line. Flags take precedence over the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(getConfigFlag(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Verbose = getVerboseFlag(cmd)

	flags := cmd.Flags()
	var ferr error
	set := func(name string, apply func(*pflag.FlagSet) error) {
		if ferr != nil {
			return
		}
		if f := flags.Lookup(name); f != nil && f.Changed {
			ferr = apply(flags)
		}
	}

	set("score-column", func(fs *pflag.FlagSet) (err error) {
		cfg.ScoreColumn, err = fs.GetString("score-column")
		return err
	})
	set("class-column", func(fs *pflag.FlagSet) (err error) {
		cfg.ClassColumn, err = fs.GetString("class-column")
		return err
	})
	set("timeout", func(fs *pflag.FlagSet) (err error) {
		cfg.FetchTimeout, err = fs.GetDuration("timeout")
		return err
	})
	set("user-agent", func(fs *pflag.FlagSet) (err error) {
		cfg.UserAgent, err = fs.GetString("user-agent")
		return err
	})
	set("marker", func(fs *pflag.FlagSet) (err error) {
		cfg.Marker, err = fs.GetString("marker")
		return err
	})
	set("tag", func(fs *pflag.FlagSet) (err error) {
		cfg.Tag, err = fs.GetString("tag")
		return err
	})
	set("json", func(fs *pflag.FlagSet) (err error) {
		cfg.JSONReport, err = fs.GetBool("json")
		return err
	})
	set("markdown", func(fs *pflag.FlagSet) (err error) {
		cfg.MarkdownReport, err = fs.GetBool("markdown")
		return err
	})
	set("breakdown", func(fs *pflag.FlagSet) (err error) {
		cfg.Breakdown, err = fs.GetBool("breakdown")
		return err
	})
	set("output", func(fs *pflag.FlagSet) (err error) {
		cfg.ReportFile, err = fs.GetString("output")
		return err
	})
	if ferr != nil {
		return nil, ferr
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// addColumnFlags adds the flags naming the score and class columns.
func addColumnFlags(cmd *cobra.Command) {
	cmd.Flags().String("score-column", config.DefaultScoreColumn, "Column holding numeric scores")
	cmd.Flags().String("class-column", config.DefaultClassColumn, "Column rows are grouped by")
}

// addFetchFlags adds the flags controlling webpage fetching.
func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Timeout for the whole page fetch")
	cmd.Flags().String("user-agent", config.DefaultUserAgent, "User-Agent header for HTTP requests")
	cmd.Flags().String("marker", config.DefaultMarker,
		"Class token marking assessment detail elements")
	cmd.Flags().String("tag", "", "Only extract elements with this tag name")
}

// addReportFlags adds the flags selecting the summary format and destination.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().BoolP("breakdown", "b", false,
		"Add per-class statistics to the text report")
}

// setupLogger creates the structured logger for a command. Logs go to the
// command's stderr so they never mix with report output.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	if getLogJSONFlag(cmd) {
		return log.NewSecureJSONLogger(cmd.ErrOrStderr(), cfg.Verbose)
	}
	return log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
}

// newFetcher creates a web fetcher from the configuration.
func newFetcher(cfg *config.Config, logger *slog.Logger) *fetcher.Fetcher {
	opts := []fetcher.Option{
		fetcher.WithTimeout(cfg.FetchTimeout),
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
		fetcher.WithMarker(cfg.Marker),
		fetcher.WithLogger(logger),
	}
	if cfg.Tag != "" {
		opts = append(opts, fetcher.WithTag(cfg.Tag))
	}
	return fetcher.New(opts...)
}

// newAnalyzer creates an analyzer from the configuration.
func newAnalyzer(cfg *config.Config, logger *slog.Logger) *analyzer.Analyzer {
	return analyzer.New(
		analyzer.WithColumns(cfg.ScoreColumn, cfg.ClassColumn),
		analyzer.WithFetcher(newFetcher(cfg, logger)),
		analyzer.WithLogger(logger),
	)
}

// newReportWriter creates the writer for summaries and run reports.
// Without an output file the report goes to stdout in the configured
// format. With one, the file receives that format and stdout receives the
// plain text report. The returned close function must be called.
func newReportWriter(cmd *cobra.Command, cfg *config.Config) (report.Writer, func() error, error) {
	format, err := report.ParseFormat(cfg.EffectiveReportFormat())
	if err != nil {
		return nil, nil, err
	}

	stdout := cmd.OutOrStdout()
	if cfg.ReportFile == "" {
		return report.NewWriter(format, stdout, cfg.Breakdown), func() error { return nil }, nil
	}

	f, err := createReportFile(cfg.ReportFile)
	if err != nil {
		return nil, nil, err
	}
	w := report.NewMultiWriter(
		report.NewSimpleWriter(stdout, report.WithBreakdown(cfg.Breakdown)),
		report.NewWriter(format, f, cfg.Breakdown),
	)
	return w, f.Close, nil
}

// createReportFile creates or truncates path, creating parent directories.
func createReportFile(path string) (io.WriteCloser, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports may contain student data that should only be readable by the owner.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}
