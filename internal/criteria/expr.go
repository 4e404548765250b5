package criteria

import (
	"strconv"
	"strings"

	"github.com/nao1215/schoolscan/internal/model"
)

// Op is a comparison operator.
type Op int

const (
	// OpEq is ==.
	OpEq Op = iota
	// OpNe is !=.
	OpNe
	// OpGt is >.
	OpGt
	// OpGe is >=.
	OpGe
	// OpLt is <.
	OpLt
	// OpLe is <=.
	OpLe
)

// String returns the operator as written in criteria.
func (o Op) String() string {
	switch o {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	default:
		return "?"
	}
}

// parseOp converts operator text to an Op.
func parseOp(text string) Op {
	switch text {
	case "!=":
		return OpNe
	case ">":
		return OpGt
	case ">=":
		return OpGe
	case "<":
		return OpLt
	case "<=":
		return OpLe
	default:
		return OpEq
	}
}

// Expr is a node of a parsed criteria tree.
type Expr interface {
	// Eval reports whether row satisfies the expression.
	Eval(row model.Row) bool

	// String renders the expression in canonical form.
	String() string

	// columns appends every column the expression references.
	columns(dst []string) []string
}

// scalarKind classifies a scalar.
type scalarKind int

const (
	scalarNull scalarKind = iota
	scalarNumber
	scalarString
)

// scalar is a comparable value: either a literal from the criteria or a
// cell from a row.
type scalar struct {
	kind scalarKind
	num  float64
	str  string
}

// fromValue converts a table cell into a scalar.
func fromValue(v model.Value) scalar {
	switch v.Kind() {
	case model.KindNumber:
		n, _ := v.Number()
		return scalar{kind: scalarNumber, num: n}
	case model.KindString:
		return scalar{kind: scalarString, str: v.Text()}
	default:
		return scalar{kind: scalarNull}
	}
}

func (s scalar) String() string {
	switch s.kind {
	case scalarNumber:
		return strconv.FormatFloat(s.num, 'f', -1, 64)
	case scalarString:
		return strconv.Quote(s.str)
	default:
		return "null"
	}
}

// compare applies op to a and b.
// Null operands and number/string mismatches only satisfy !=.
func compare(a scalar, op Op, b scalar) bool {
	if a.kind == scalarNull || b.kind == scalarNull || a.kind != b.kind {
		return op == OpNe
	}

	if a.kind == scalarNumber {
		return compareNumbers(a.num, op, b.num)
	}

	c := strings.Compare(a.str, b.str)
	switch op {
	case OpEq:
		return c == 0
	case OpNe:
		return c != 0
	case OpGt:
		return c > 0
	case OpGe:
		return c >= 0
	case OpLt:
		return c < 0
	case OpLe:
		return c <= 0
	default:
		return false
	}
}

// compareNumbers applies op using float comparisons directly, so a NaN
// operand satisfies only !=.
func compareNumbers(a float64, op Op, b float64) bool {
	switch op {
	case OpEq:
		return a == b
	case OpNe:
		return a != b
	case OpGt:
		return a > b
	case OpGe:
		return a >= b
	case OpLt:
		return a < b
	case OpLe:
		return a <= b
	default:
		return false
	}
}

// Operand is one side of a comparison: a column reference or a literal.
type Operand struct {
	// Column is the referenced column name; empty for literals.
	Column string

	literal scalar
}

// IsColumn reports whether the operand references a column.
func (o Operand) IsColumn() bool {
	return o.Column != ""
}

// resolve returns the operand's value for row.
func (o Operand) resolve(row model.Row) scalar {
	if !o.IsColumn() {
		return o.literal
	}
	v, ok := row.Get(o.Column)
	if !ok {
		return scalar{kind: scalarNull}
	}
	return fromValue(v)
}

func (o Operand) String() string {
	if o.IsColumn() {
		return "`" + o.Column + "`"
	}
	return o.literal.String()
}

// Comparison is a binary comparison between two operands.
type Comparison struct {
	Left  Operand
	Op    Op
	Right Operand
}

// Eval implements Expr.
func (c *Comparison) Eval(row model.Row) bool {
	return compare(c.Left.resolve(row), c.Op, c.Right.resolve(row))
}

func (c *Comparison) String() string {
	return c.Left.String() + " " + c.Op.String() + " " + c.Right.String()
}

func (c *Comparison) columns(dst []string) []string {
	if c.Left.IsColumn() {
		dst = append(dst, c.Left.Column)
	}
	if c.Right.IsColumn() {
		dst = append(dst, c.Right.Column)
	}
	return dst
}

// Membership tests whether a column's value equals any of a list of literals.
type Membership struct {
	Column  string
	Negated bool

	values []scalar
}

// Eval implements Expr.
func (m *Membership) Eval(row model.Row) bool {
	v := Operand{Column: m.Column}.resolve(row)
	found := false
	for _, lit := range m.values {
		if compare(v, OpEq, lit) {
			found = true
			break
		}
	}
	return found != m.Negated
}

func (m *Membership) String() string {
	parts := make([]string, len(m.values))
	for i, v := range m.values {
		parts[i] = v.String()
	}
	op := " in "
	if m.Negated {
		op = " not in "
	}
	return "`" + m.Column + "`" + op + "[" + strings.Join(parts, ", ") + "]"
}

func (m *Membership) columns(dst []string) []string {
	return append(dst, m.Column)
}

// And is satisfied when both sides are.
type And struct {
	Left, Right Expr
}

// Eval implements Expr.
func (a *And) Eval(row model.Row) bool {
	return a.Left.Eval(row) && a.Right.Eval(row)
}

func (a *And) String() string {
	return "(" + a.Left.String() + " and " + a.Right.String() + ")"
}

func (a *And) columns(dst []string) []string {
	return a.Right.columns(a.Left.columns(dst))
}

// Or is satisfied when either side is.
type Or struct {
	Left, Right Expr
}

// Eval implements Expr.
func (o *Or) Eval(row model.Row) bool {
	return o.Left.Eval(row) || o.Right.Eval(row)
}

func (o *Or) String() string {
	return "(" + o.Left.String() + " or " + o.Right.String() + ")"
}

func (o *Or) columns(dst []string) []string {
	return o.Right.columns(o.Left.columns(dst))
}

// Not negates its operand.
type Not struct {
	Expr Expr
}

// Eval implements Expr.
func (n *Not) Eval(row model.Row) bool {
	return !n.Expr.Eval(row)
}

func (n *Not) String() string {
	return "not " + n.Expr.String()
}

func (n *Not) columns(dst []string) []string {
	return n.Expr.columns(dst)
}
