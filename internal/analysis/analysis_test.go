package analysis

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/nao1215/schoolscan/internal/model"
)

func table(columns []string, rows ...[]string) *model.Table {
	records := make([][]model.Value, len(rows))
	for i, r := range rows {
		for _, cell := range r {
			records[i] = append(records[i], model.ParseValue(cell))
		}
	}
	return model.NewTable(columns, records)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestAnalyze tests average and top class computation.
func TestAnalyze(t *testing.T) {
	t.Parallel()

	cols := []string{"Class", "Score"}

	tests := []struct {
		name        string
		table       *model.Table
		wantAverage float64
		wantTop     string
		wantClasses []string
	}{
		{
			name:        "basic",
			table:       table(cols, []string{"A", "80"}, []string{"A", "90"}, []string{"B", "100"}),
			wantAverage: 90,
			wantTop:     "B",
			wantClasses: []string{"A", "B"},
		},
		{
			name:        "tie resolves to first sorted class",
			table:       table(cols, []string{"C", "90"}, []string{"B", "90"}, []string{"A", "70"}),
			wantAverage: 250.0 / 3,
			wantTop:     "B",
			wantClasses: []string{"A", "B", "C"},
		},
		{
			name:        "NaN and NA scores are excluded",
			table:       table(cols, []string{"A", "NaN"}, []string{"C", "NA"}, []string{"B", "80"}, []string{"B", "100"}),
			wantAverage: 90,
			wantTop:     "B",
			wantClasses: []string{"B"},
		},
		{
			name:        "numeric class keys sort numerically",
			table:       table(cols, []string{"10", "95"}, []string{"9", "95"}),
			wantAverage: 95,
			wantTop:     "9",
			wantClasses: []string{"9", "10"},
		},
		{
			name:        "null and non-numeric scores are excluded",
			table:       table(cols, []string{"A", "80"}, []string{"A", ""}, []string{"B", "absent"}, []string{"B", "60"}),
			wantAverage: 70,
			wantTop:     "A",
			wantClasses: []string{"A", "B"},
		},
		{
			name:        "null class is dropped from groups but counted in average",
			table:       table(cols, []string{"", "100"}, []string{"A", "50"}),
			wantAverage: 75,
			wantTop:     "A",
			wantClasses: []string{"A"},
		},
		{
			name:        "class text is trimmed",
			table:       table(cols, []string{"A ", "40"}, []string{" A", "60"}),
			wantAverage: 50,
			wantTop:     "A",
			wantClasses: []string{"A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Analyze(tt.table, DefaultColumns())
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if !almostEqual(got.AverageScore, tt.wantAverage) {
				t.Errorf("AverageScore = %v, want %v", got.AverageScore, tt.wantAverage)
			}
			if got.TopClass != tt.wantTop {
				t.Errorf("TopClass = %q, want %q", got.TopClass, tt.wantTop)
			}
			names := make([]string, 0, len(got.Classes))
			for _, c := range got.Classes {
				names = append(names, c.Name)
			}
			if !slices.Equal(names, tt.wantClasses) {
				t.Errorf("classes = %v, want %v", names, tt.wantClasses)
			}
		})
	}
}

// TestAnalyzeClassStats tests the per-class statistics.
func TestAnalyzeClassStats(t *testing.T) {
	t.Parallel()

	got, err := Analyze(table([]string{"Class", "Score"},
		[]string{"A", "80"}, []string{"A", "90"}, []string{"A", "70"}, []string{"B", "100"}, []string{"B", ""},
	), DefaultColumns())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.Rows != 5 || got.Scored != 4 {
		t.Errorf("Rows/Scored = %d/%d, want 5/4", got.Rows, got.Scored)
	}
	want := []model.ClassStat{
		{Name: "A", Count: 3, MeanScore: 80, MinScore: 70, MaxScore: 90},
		{Name: "B", Count: 1, MeanScore: 100, MinScore: 100, MaxScore: 100},
	}
	if !slices.Equal(got.Classes, want) {
		t.Errorf("Classes = %+v, want %+v", got.Classes, want)
	}
}

// TestAnalyzeCustomColumns tests configurable column names.
func TestAnalyzeCustomColumns(t *testing.T) {
	t.Parallel()

	got, err := Analyze(table([]string{"Grade", "Points"}, []string{"X", "3"}, []string{"Y", "5"}),
		Columns{Score: "Points", Class: "Grade"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.TopClass != "Y" || !almostEqual(got.AverageScore, 4) {
		t.Errorf("got %+v", got)
	}
}

// TestAnalyzeErrors tests the no-data and missing-column outcomes.
func TestAnalyzeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		table      *model.Table
		wantErr    error
		wantColumn string
	}{
		{name: "nil table", table: nil, wantErr: ErrNoData},
		{name: "empty table", table: model.NewTable(nil, nil), wantErr: ErrNoData},
		{name: "header only", table: table([]string{"Class", "Score"}), wantErr: ErrNoData},
		{name: "no numeric scores", table: table([]string{"Class", "Score"}, []string{"A", "n/a"}), wantErr: ErrNoData},
		{name: "no classes", table: table([]string{"Class", "Score"}, []string{"", "10"}), wantErr: ErrNoData},
		{name: "missing score", table: table([]string{"Class"}, []string{"A"}), wantErr: ErrMissingColumn, wantColumn: "Score"},
		{name: "missing class", table: table([]string{"Score"}, []string{"1"}), wantErr: ErrMissingColumn, wantColumn: "Class"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Analyze(tt.table, Columns{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Analyze() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantColumn != "" {
				var mce *MissingColumnError
				if !errors.As(err, &mce) {
					t.Fatalf("expected *MissingColumnError, got %T", err)
				}
				if mce.Column != tt.wantColumn {
					t.Errorf("Column = %q, want %q", mce.Column, tt.wantColumn)
				}
			}
		})
	}
}
