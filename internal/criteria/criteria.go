package criteria

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nao1215/schoolscan/internal/model"
)

// Criteria is a parsed row filter.
type Criteria struct {
	source string
	root   Expr
}

// Parse parses a criteria string.
// It returns an InvalidCriteriaError when the string is empty or malformed.
func Parse(source string) (*Criteria, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &InvalidCriteriaError{Criteria: source, Pos: -1, Msg: "criteria is empty"}
	}

	tokens, err := tokenize(source)
	if err != nil {
		return nil, err
	}

	p := &parser{src: source, tokens: tokens}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok.pos, "unexpected %s", tok.describe())
	}

	return &Criteria{source: source, root: root}, nil
}

// Source returns the criteria string as given to Parse.
func (c *Criteria) Source() string {
	return c.source
}

// String returns the canonical form of the parsed expression.
func (c *Criteria) String() string {
	return c.root.String()
}

// Columns returns the distinct column names referenced by the criteria,
// sorted.
func (c *Criteria) Columns() []string {
	cols := c.root.columns(nil)
	slices.Sort(cols)
	return slices.Compact(cols)
}

// Match reports whether row satisfies the criteria.
func (c *Criteria) Match(row model.Row) bool {
	return c.root.Eval(row)
}

// Validate checks that every referenced column exists in table.
func (c *Criteria) Validate(table *model.Table) error {
	var missing []string
	for _, col := range c.Columns() {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &InvalidCriteriaError{
			Criteria: c.source,
			Pos:      -1,
			Msg:      fmt.Sprintf("unknown column(s) %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

// Filter validates the criteria against table and returns a new table
// holding the matching rows in their original order.
func (c *Criteria) Filter(table *model.Table) (*model.Table, error) {
	if err := c.Validate(table); err != nil {
		return nil, err
	}
	return table.Filter(c.Match), nil
}
