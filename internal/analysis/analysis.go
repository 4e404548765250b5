package analysis

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/nao1215/schoolscan/internal/model"
)

const (
	// DefaultScoreColumn is the column holding numeric scores.
	DefaultScoreColumn = "Score"

	// DefaultClassColumn is the column holding class names.
	DefaultClassColumn = "Class"
)

// Columns names the columns Analyze reads.
type Columns struct {
	Score string
	Class string
}

// DefaultColumns returns the Score / Class column pair.
func DefaultColumns() Columns {
	return Columns{Score: DefaultScoreColumn, Class: DefaultClassColumn}
}

// withDefaults fills empty names with their defaults.
func (c Columns) withDefaults() Columns {
	if c.Score == "" {
		c.Score = DefaultScoreColumn
	}
	if c.Class == "" {
		c.Class = DefaultClassColumn
	}
	return c
}

// group accumulates the scores of one class.
type group struct {
	name  string
	count int
	sum   float64
	min   float64
	max   float64
}

func (g *group) add(score float64) {
	if g.count == 0 || score < g.min {
		g.min = score
	}
	if g.count == 0 || score > g.max {
		g.max = score
	}
	g.count++
	g.sum += score
}

func (g *group) stat() model.ClassStat {
	return model.ClassStat{
		Name:      g.name,
		Count:     g.count,
		MeanScore: g.sum / float64(g.count),
		MinScore:  g.min,
		MaxScore:  g.max,
	}
}

// Analyze computes the average score and top-performing class of table.
//
// It returns ErrNoData when the table is nil or empty, when no score cell
// is numeric, or when no scored row has a class. A MissingColumnError is
// returned when either column is absent; the score column is checked first.
func Analyze(table *model.Table, cols Columns) (model.AnalysisResult, error) {
	cols = cols.withDefaults()

	if table.IsEmpty() {
		return model.AnalysisResult{}, ErrNoData
	}
	for _, c := range []string{cols.Score, cols.Class} {
		if !table.HasColumn(c) {
			return model.AnalysisResult{}, &MissingColumnError{Column: c}
		}
	}

	var (
		total  float64
		scored int
		groups = make(map[string]*group)
	)
	for i := range table.Len() {
		scoreValue, _ := table.Value(i, cols.Score)
		score, ok := scoreValue.Number()
		if !ok {
			continue
		}
		total += score
		scored++

		classValue, _ := table.Value(i, cols.Class)
		if classValue.IsNull() {
			continue
		}
		name := classValue.Text()
		g, ok := groups[name]
		if !ok {
			g = &group{name: name}
			groups[name] = g
		}
		g.add(score)
	}

	if scored == 0 || len(groups) == 0 {
		return model.AnalysisResult{}, ErrNoData
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sortClassNames(names)

	result := model.AnalysisResult{
		AverageScore: total / float64(scored),
		Rows:         table.Len(),
		Scored:       scored,
		Classes:      make([]model.ClassStat, 0, len(names)),
	}
	best := -1
	for i, name := range names {
		stat := groups[name].stat()
		result.Classes = append(result.Classes, stat)
		if best < 0 || stat.MeanScore > result.Classes[best].MeanScore {
			best = i
		}
	}
	result.TopClass = result.Classes[best].Name

	return result, nil
}

// sortClassNames sorts names numerically when every name is a number and
// lexicographically otherwise.
func sortClassNames(names []string) {
	nums := make(map[string]float64, len(names))
	for _, n := range names {
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			slices.Sort(names)
			return
		}
		nums[n] = f
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(nums[a], nums[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}
