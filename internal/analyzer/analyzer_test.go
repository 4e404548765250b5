package analyzer

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/schoolscan/internal/analysis"
	"github.com/nao1215/schoolscan/internal/criteria"
	"github.com/nao1215/schoolscan/internal/fetcher"
	applog "github.com/nao1215/schoolscan/internal/log"
	"github.com/nao1215/schoolscan/internal/model"
	"github.com/nao1215/schoolscan/internal/tabular"
)

var fixedNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func newTestAnalyzer(t *testing.T, opts ...Option) (*Analyzer, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	base := []Option{
		WithLogger(applog.NewSecureLogger(&logs, true)),
		WithClock(func() time.Time { return fixedNow }),
	}
	return New(append(base, opts...)...), &logs
}

// stubFetcher returns canned results.
type stubFetcher struct {
	data model.ExtractedWebData
	err  error
}

func (s stubFetcher) Fetch(context.Context, string) (model.ExtractedWebData, error) {
	return s.data, s.err
}

// TestLoad tests loading every supported format.
func TestLoad(t *testing.T) {
	t.Parallel()

	workbook := func(t *testing.T) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "data.xlsx")
		f := excelize.NewFile()
		defer f.Close()
		if err := f.SetSheetRow("Sheet1", "A1", &[]any{"A", "B"}); err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", "A2", &[]any{1, 2}); err != nil {
			t.Fatal(err)
		}
		if err := f.SaveAs(path); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"csv", func(t *testing.T) string { return writeFile(t, "data.csv", "A,B\n1,2\n") }},
		{"txt", func(t *testing.T) string { return writeFile(t, "data.txt", "A\tB\n1\t2\n") }},
		{"xlsx", workbook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, _ := newTestAnalyzer(t)
			path := tt.path(t)

			tbl, err := a.Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !slices.Equal(tbl.Columns(), []string{"A", "B"}) {
				t.Fatalf("columns = %v", tbl.Columns())
			}
			if tbl.Len() != 1 {
				t.Fatalf("rows = %d, want 1", tbl.Len())
			}
			row := tbl.Row(0)
			for col, want := range map[string]float64{"A": 1, "B": 2} {
				if n, ok := row[col].Number(); !ok || n != want {
					t.Errorf("%s = %q, want %v", col, row[col].String(), want)
				}
			}
			if a.Table() != tbl || a.Source() != path {
				t.Error("loaded table should become the current table")
			}
		})
	}
}

// TestLoadFailureKeepsTable tests that failed loads do not mutate state.
func TestLoadFailureKeepsTable(t *testing.T) {
	t.Parallel()

	a, logs := newTestAnalyzer(t)
	good := writeFile(t, "good.csv", "Class,Score\nA,1\n")
	before, err := a.Load(good)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"unknown extension", writeFile(t, "data.json", `{"A":1}`), tabular.ErrUnsupportedFormat},
		{"missing file", filepath.Join(t.TempDir(), "missing.csv"), tabular.ErrFileAccess},
		{"malformed file", writeFile(t, "bad.csv", "A,B\n1,2,3\n"), tabular.ErrParse},
	}
	for _, tt := range tests {
		tbl, err := a.Load(tt.path)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: Load() error = %v, want %v", tt.name, err, tt.wantErr)
		}
		if tbl != nil {
			t.Errorf("%s: expected nil table", tt.name)
		}
		if a.Table() != before || a.Source() != good {
			t.Errorf("%s: current table changed", tt.name)
		}
	}

	if !strings.Contains(logs.String(), "failed to load file") {
		t.Errorf("expected load failures to be logged:\n%s", logs.String())
	}
}

// TestTransfer tests filtering a file into another.
func TestTransfer(t *testing.T) {
	t.Parallel()

	const source = "Name,Class,Score\nAnn,A,85\nBob,B,95\nCid,A,90\nDee,B,100\n"

	t.Run("writes matching rows in order with header", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		src := writeFile(t, "school.csv", source)
		dst := filepath.Join(t.TempDir(), "out", "high_achievers.csv")

		n, err := a.Transfer("Score > 90", src, dst)
		if err != nil {
			t.Fatalf("Transfer() error = %v", err)
		}
		if n != 2 {
			t.Errorf("rows written = %d, want 2", n)
		}

		got, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		want := "Name,Class,Score\nBob,B,95\nDee,B,100\n"
		if string(got) != want {
			t.Errorf("destination =\n%s\nwant\n%s", got, want)
		}
		if a.Table().Len() != 4 || a.Source() != src {
			t.Error("source should become the current table")
		}
	})

	t.Run("missing scores never match", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		src := writeFile(t, "school.csv", "Class,Score\nA,NaN\nB,80\nB,100\nC,N/A\n")
		dst := filepath.Join(t.TempDir(), "top.csv")

		n, err := a.Transfer("Score >= 95", src, dst)
		if err != nil {
			t.Fatalf("Transfer() error = %v", err)
		}
		got, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if n != 1 || string(got) != "Class,Score\nB,100\n" {
			t.Errorf("wrote %d row(s):\n%s", n, got)
		}
	})

	t.Run("round trip reproduces the filtered set", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		src := writeFile(t, "school.csv", source)
		dst := filepath.Join(t.TempDir(), "high.csv")

		if _, err := a.Transfer(`Score >= 90 and Class == "B"`, src, dst); err != nil {
			t.Fatalf("Transfer() error = %v", err)
		}
		loaded, err := a.Load(dst)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		srcTable, err := tabular.Read(src)
		if err != nil {
			t.Fatal(err)
		}
		c, err := criteria.Parse(`Score >= 90 and Class == "B"`)
		if err != nil {
			t.Fatal(err)
		}
		expected, err := c.Filter(srcTable)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(loaded.Columns(), expected.Columns()) {
			t.Fatalf("columns = %v, want %v", loaded.Columns(), expected.Columns())
		}
		if !slices.EqualFunc(loaded.Records(), expected.Records(), slices.Equal[[]string]) {
			t.Errorf("records = %v, want %v", loaded.Records(), expected.Records())
		}
	})

	t.Run("no match writes header only", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		dst := filepath.Join(t.TempDir(), "none.csv")

		n, err := a.Transfer("Score > 1000", writeFile(t, "school.csv", source), dst)
		if err != nil || n != 0 {
			t.Fatalf("Transfer() = %d, %v", n, err)
		}
		got, _ := os.ReadFile(dst)
		if string(got) != "Name,Class,Score\n" {
			t.Errorf("destination = %q", got)
		}
	})

	t.Run("invalid criteria writes nothing", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		dst := filepath.Join(t.TempDir(), "bad.csv")

		for _, c := range []string{"Score >", "Grade > 1"} {
			_, err := a.Transfer(c, writeFile(t, "school.csv", source), dst)
			if !errors.Is(err, criteria.ErrInvalidCriteria) {
				t.Errorf("Transfer(%q) error = %v, want ErrInvalidCriteria", c, err)
			}
		}
		if _, err := os.Stat(dst); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("destination should not exist: %v", err)
		}
	})

	t.Run("unreadable source keeps table", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		before, err := a.Load(writeFile(t, "school.csv", source))
		if err != nil {
			t.Fatal(err)
		}

		_, err = a.Transfer("Score > 1", filepath.Join(t.TempDir(), "missing.csv"), filepath.Join(t.TempDir(), "o.csv"))
		if !errors.Is(err, tabular.ErrFileAccess) {
			t.Errorf("error = %v, want ErrFileAccess", err)
		}
		if a.Table() != before {
			t.Error("current table changed")
		}
	})

	t.Run("unwritable destination", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		dir := t.TempDir()

		_, err := a.Transfer("Score > 1", writeFile(t, "school.csv", source), dir)
		if !errors.Is(err, tabular.ErrFileAccess) {
			t.Errorf("error = %v, want ErrFileAccess", err)
		}
	})
}

// TestFetchWebData tests fetching through the analyzer.
func TestFetchWebData(t *testing.T) {
	t.Parallel()

	t.Run("returns extracted texts", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<ul><li class="assessment-details">A: 85</li><li class="assessment-details">B: 92</li></ul>`))
		}))
		defer server.Close()

		a, _ := newTestAnalyzer(t)
		got, err := a.FetchWebData(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("FetchWebData() error = %v", err)
		}
		if !slices.Equal([]string(got), []string{"A: 85", "B: 92"}) {
			t.Errorf("FetchWebData() = %q", got)
		}
	})

	t.Run("unreachable url yields no data and keeps table", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.NotFoundHandler())
		addr := server.URL
		server.Close()

		a, logs := newTestAnalyzer(t, WithFetcher(fetcher.New(fetcher.WithTimeout(2*time.Second))))
		before, err := a.Load(writeFile(t, "s.csv", "Class,Score\nA,1\n"))
		if err != nil {
			t.Fatal(err)
		}

		got, err := a.FetchWebData(context.Background(), addr+"/test_assessment_page.html")
		if !errors.Is(err, fetcher.ErrNetwork) {
			t.Fatalf("error = %v, want ErrNetwork", err)
		}
		if got != nil {
			t.Errorf("expected nil data, got %q", got)
		}
		if a.Table() != before {
			t.Error("current table changed")
		}
		if !strings.Contains(logs.String(), "failed to fetch web data") {
			t.Errorf("expected failure to be logged:\n%s", logs.String())
		}
	})

	t.Run("uses injected fetcher", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t, WithFetcher(stubFetcher{data: model.ExtractedWebData{"x"}}))
		got, err := a.FetchWebData(context.Background(), "http://example.invalid/")
		if err != nil || got.Len() != 1 {
			t.Errorf("FetchWebData() = %q, %v", got, err)
		}
	})
}

// TestAnalyze tests statistics over the current table.
func TestAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("average and top class", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		if _, err := a.Load(writeFile(t, "s.csv", "Class,Score\nA,80\nA,90\nB,100\n")); err != nil {
			t.Fatal(err)
		}

		got, err := a.Analyze()
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if got.AverageScore != 90 || got.TopClass != "B" {
			t.Errorf("Analyze() = %+v", got)
		}
	})

	t.Run("nothing loaded is no data", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		if _, err := a.Analyze(); !errors.Is(err, analysis.ErrNoData) {
			t.Errorf("error = %v, want ErrNoData", err)
		}
	})

	t.Run("header only table is no data", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		if _, err := a.Load(writeFile(t, "s.csv", "Class,Score\n")); err != nil {
			t.Fatal(err)
		}
		if _, err := a.Analyze(); !errors.Is(err, analysis.ErrNoData) {
			t.Errorf("error = %v, want ErrNoData", err)
		}
	})

	t.Run("custom columns", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t, WithColumns("Points", "Group"))
		if _, err := a.Load(writeFile(t, "s.csv", "Group,Points\nX,1\nY,3\n")); err != nil {
			t.Fatal(err)
		}
		got, err := a.Analyze()
		if err != nil || got.TopClass != "Y" {
			t.Errorf("Analyze() = %+v, %v", got, err)
		}
	})
}

// TestGenerateSummary tests the text summary.
func TestGenerateSummary(t *testing.T) {
	t.Parallel()

	t.Run("valid data", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		if _, err := a.Load(writeFile(t, "s.csv", "Class,Score\nA,80\nA,90\nB,100\n")); err != nil {
			t.Fatal(err)
		}

		got, err := a.GenerateSummary()
		if err != nil {
			t.Fatalf("GenerateSummary() error = %v", err)
		}
		want := "School Assessment Summary Report:\n\n" +
			"1. Overall Performance:\n" +
			"   - Average score: 90.00\n" +
			"   - Top-performing class: B\n\n" +
			"Report generated on: 2026-10-17"
		if got != want {
			t.Errorf("GenerateSummary() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("NaN scores are treated as missing", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		if _, err := a.Load(writeFile(t, "s.csv", "Class,Score\nA,NaN\nB,80\nB,100\n")); err != nil {
			t.Fatal(err)
		}

		got, err := a.GenerateSummary()
		if err != nil {
			t.Fatalf("GenerateSummary() error = %v", err)
		}
		if !strings.Contains(got, "Average score: 90.00\n") || !strings.Contains(got, "Top-performing class: B\n") {
			t.Errorf("unexpected summary:\n%s", got)
		}
	})

	t.Run("no data", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		got, err := a.GenerateSummary()
		if err != nil {
			t.Fatalf("GenerateSummary() error = %v", err)
		}
		if got != "No summary available." {
			t.Errorf("GenerateSummary() = %q", got)
		}
	})

	t.Run("missing column is an error", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		if _, err := a.Load(writeFile(t, "s.csv", "Class,Grade\nA,1\n")); err != nil {
			t.Fatal(err)
		}
		_, err := a.GenerateSummary()
		var mce *analysis.MissingColumnError
		if !errors.As(err, &mce) || mce.Column != "Score" {
			t.Errorf("error = %v, want missing Score column", err)
		}
	})

	t.Run("summary carries source and date", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAnalyzer(t)
		path := writeFile(t, "s.csv", "Class,Score\nA,1\n")
		if _, err := a.Load(path); err != nil {
			t.Fatal(err)
		}
		s, err := a.Summary()
		if err != nil {
			t.Fatalf("Summary() error = %v", err)
		}
		if s.Source != path || !s.GeneratedAt.Equal(fixedNow) {
			t.Errorf("Summary() = %+v", s)
		}
	})
}
