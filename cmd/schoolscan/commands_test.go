package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/schoolscan/internal/analysis"
	"github.com/nao1215/schoolscan/internal/config"
	"github.com/nao1215/schoolscan/internal/criteria"
	"github.com/nao1215/schoolscan/internal/model"
	"github.com/nao1215/schoolscan/internal/tabular"
)

const schoolCSV = "Name,Class,Score\nAnn,A,80\nBob,A,90\nCid,B,100\n"

// executeWithConfig runs the root command with args and the given config
// file contents, so a .schoolscan on the test machine is never picked up.
func executeWithConfig(t *testing.T, configYAML string, args ...string) (string, string, error) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0600); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeWithConfig(t, "", args...)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCmd(t *testing.T) {
	t.Parallel()

	t.Run("describes the table", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "school_management.csv", schoolCSV)
		out, _, err := execute(t, "load", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "(csv): 3 row(s), 3 column(s)") {
			t.Errorf("unexpected output: %q", out)
		}
		if !strings.Contains(out, "Columns: Name, Class, Score") {
			t.Errorf("missing column list: %q", out)
		}
	})

	t.Run("previews rows", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "school_management.txt", "Name\tClass\tScore\nAnn\tA\t80\nBob\tA\t90\n")
		out, _, err := execute(t, "load", "--head", "1", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Ann") {
			t.Errorf("expected first row in preview: %q", out)
		}
		if strings.Contains(out, "Bob") {
			t.Errorf("expected preview limited to one row: %q", out)
		}
	})

	t.Run("rejects unsupported formats", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "school_management.json", "{}")
		_, _, err := execute(t, "load", path)
		if !errors.Is(err, tabular.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("reports missing files", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, "load", filepath.Join(t.TempDir(), "missing.csv"))
		if !errors.Is(err, tabular.ErrFileAccess) {
			t.Errorf("expected ErrFileAccess, got %v", err)
		}
	})
}

func TestTransferCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes matching rows", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := writeFile(t, dir, "school_management.csv", schoolCSV)
		dst := filepath.Join(dir, "high_achievers.csv")

		out, _, err := execute(t, "transfer", "Score > 85", src, dst)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Transferred 2 row(s)") {
			t.Errorf("unexpected output: %q", out)
		}

		got, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if want := "Name,Class,Score\nBob,A,90\nCid,B,100\n"; string(got) != want {
			t.Errorf("destination = %q, want %q", got, want)
		}
	})

	t.Run("rejects invalid criteria", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := writeFile(t, dir, "school_management.csv", schoolCSV)
		dst := filepath.Join(dir, "out.csv")

		_, _, err := execute(t, "transfer", "Grade > 1", src, dst)
		if !errors.Is(err, criteria.ErrInvalidCriteria) {
			t.Errorf("expected ErrInvalidCriteria, got %v", err)
		}
		if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
			t.Error("destination must not be created")
		}
	})

	t.Run("requires three arguments", func(t *testing.T) {
		t.Parallel()

		if _, _, err := execute(t, "transfer", "Score > 1"); err == nil {
			t.Error("expected argument error")
		}
	})
}

func TestFetchCmd(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body>
<div class="assessment-details">Term 1: Maths</div>
<span class="results">Term 2: Science</span>
</body></html>`))
	}))
	t.Cleanup(server.Close)

	t.Run("prints extracted text", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, "fetch", server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "Term 1: Maths\n" {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("uses the marker flag", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, "fetch", "--marker", "results", server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "Term 2: Science\n" {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("reports no matches", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, "fetch", "--marker", "nothing", server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "No elements") {
			t.Errorf("unexpected output: %q", out)
		}
	})
}

func TestAnalyzeCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints text result", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "school_management.csv", schoolCSV)
		out, _, err := execute(t, "analyze", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "Average score: 90.00\nTop-performing class: B\n"; out != want {
			t.Errorf("output = %q, want %q", out, want)
		}
	})

	t.Run("prints JSON result", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "school_management.csv", schoolCSV)
		out, _, err := execute(t, "analyze", "--json", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result model.AnalysisResult
		if err := json.Unmarshal([]byte(out), &result); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		if result.AverageScore != 90 || result.TopClass != "B" || len(result.Classes) != 2 {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("report format from config file selects JSON", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "school_management.csv", schoolCSV)
		out, _, err := executeWithConfig(t, "report:\n  format: json\n", "analyze", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result model.AnalysisResult
		if err := json.Unmarshal([]byte(out), &result); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		if result.TopClass != "B" {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("NaN scores still produce valid JSON", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "scores.csv", "Class,Score\nA,NaN\nB,80\nB,100\nC,NA\n")
		out, _, err := execute(t, "analyze", "--json", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result model.AnalysisResult
		if err := json.Unmarshal([]byte(out), &result); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		if result.AverageScore != 90 || result.TopClass != "B" {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("writes JSON log lines", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "school_management.csv", schoolCSV)
		_, stderr, err := execute(t, "--verbose", "--log-json", "analyze", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(stderr), "\n")
		if len(lines) == 0 || lines[0] == "" {
			t.Fatal("expected log output on stderr")
		}
		for _, line := range lines {
			var record map[string]any
			if err := json.Unmarshal([]byte(line), &record); err != nil {
				t.Errorf("log line is not JSON: %q", line)
				continue
			}
			if _, ok := record["msg"]; !ok {
				t.Errorf("log record has no msg: %q", line)
			}
		}
	})

	t.Run("uses column names from config file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "marks.csv", "Group,Mark\nX,10\nY,20\n")
		out, _, err := executeWithConfig(t, "columns:\n  score: Mark\n  class: Group\n", "analyze", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Top-performing class: Y") {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("flags override config file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "marks.csv", "Group,Mark\nX,10\nY,20\n")
		_, _, err := executeWithConfig(t, "columns:\n  score: Mark\n  class: Group\n",
			"analyze", "--class-column", "Section", path)
		var missing *analysis.MissingColumnError
		if !errors.As(err, &missing) || missing.Column != "Section" {
			t.Errorf("expected missing Section column, got %v", err)
		}
	})

	t.Run("reports missing score column", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "names.csv", "Name,Class\nAnn,A\n")
		_, _, err := execute(t, "analyze", path)
		if !errors.Is(err, analysis.ErrMissingColumn) {
			t.Errorf("expected ErrMissingColumn, got %v", err)
		}
	})
}

func TestSummaryCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints text report", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "school_management.csv", schoolCSV)
		out, _, err := execute(t, "summary", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		wantPrefix := "School Assessment Summary Report:\n\n1. Overall Performance:\n" +
			"   - Average score: 90.00\n   - Top-performing class: B\n\nReport generated on: "
		if !strings.HasPrefix(out, wantPrefix) {
			t.Errorf("unexpected report:\n%s", out)
		}
	})

	t.Run("adds the class breakdown", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "school_management.csv", schoolCSV)
		out, _, err := execute(t, "summary", "--breakdown", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "2. Class Breakdown:\n   - A: mean 85.00, min 80.00, max 90.00 (2 scores)") {
			t.Errorf("missing breakdown:\n%s", out)
		}
	})

	t.Run("no data", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "empty.csv", "Name,Class,Score\n")
		out, _, err := execute(t, "summary", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != model.NoSummaryAvailable+"\n" {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("writes markdown to file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "school_management.csv", schoolCSV)
		reportPath := filepath.Join(dir, "reports", "summary.md")

		out, _, err := execute(t, "summary", "--markdown", "-o", reportPath, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Top-performing class: B") {
			t.Errorf("expected text report on stdout: %q", out)
		}

		md, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(md), "# School Assessment Summary Report") {
			t.Errorf("unexpected markdown:\n%s", md)
		}
	})

	t.Run("rejects json with markdown", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "school_management.csv", schoolCSV)
		_, _, err := execute(t, "summary", "--json", "--markdown", path)
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})
}

func TestRunCmd(t *testing.T) {
	t.Parallel()

	t.Run("runs every step", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<p class="assessment-details">Mid-term exams</p>`))
		}))
		defer server.Close()

		dir := t.TempDir()
		src := writeFile(t, dir, "school_management.csv", schoolCSV)
		dst := filepath.Join(dir, "high_achievers.csv")

		out, _, err := execute(t, "run", src, "--criteria", "Score > 90", "--dest", dst, "--url", server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v\n%s", err, out)
		}
		for _, want := range []string{
			"RUN REPORT",
			"Steps performed:  load, transfer, fetch, summary",
			"Rows transferred: 1",
			"Status:           Complete",
			"  - Mid-term exams",
			"Top-performing class: B",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
		if _, err := os.Stat(dst); err != nil {
			t.Errorf("expected destination file: %v", err)
		}
	})

	t.Run("continues after a failed load", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := writeFile(t, dir, "school_management.csv", schoolCSV)

		out, _, err := execute(t, "run", src, filepath.Join(dir, "school_management.xlsx"))
		if err == nil || !strings.Contains(err.Error(), "1 of 2 step(s) failed") {
			t.Fatalf("expected step failure, got %v", err)
		}
		if !strings.Contains(out, "[load]") || !strings.Contains(out, "Average score: 90.00") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("writes JSON run report", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "school_management.csv", schoolCSV)
		out, _, err := execute(t, "run", "--json", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var run model.RunReport
		if err := json.Unmarshal([]byte(out), &run); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		if len(run.LoadedFiles) != 1 || !strings.Contains(run.Summary, "Average score") {
			t.Errorf("unexpected run report: %+v", run)
		}
	})

	t.Run("option errors", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			args []string
		}{
			{name: "nothing to run", args: []string{"run"}},
			{name: "criteria without dest", args: []string{"run", "a.csv", "--criteria", "Score > 1"}},
			{name: "dest without criteria", args: []string{"run", "a.csv", "--dest", "b.csv"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				if _, _, err := execute(t, tt.args...); err == nil {
					t.Error("expected error")
				}
			})
		}
	})
}

func TestBuildConfigMissingExplicitFile(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "analyze", "x.csv"})

	if err := cmd.Execute(); !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
}
