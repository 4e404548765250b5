package criteria

import "fmt"

// parser is a recursive descent parser over a token slice.
//
// Grammar:
//
//	expr       := andExpr (("or" | "|") andExpr)*
//	andExpr    := notExpr (("and" | "&") notExpr)*
//	notExpr    := ("not" | "~") notExpr | primary
//	primary    := "(" expr ")" | comparison
//	comparison := operand (compOp operand)+ | operand ["not"] "in" list
//	operand    := identifier | number | "-" number | string
//	list       := "[" [literal ("," literal)*] "]"
type parser struct {
	src    string
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) token {
	if p.pos+offset >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+offset]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &InvalidCriteriaError{Criteria: p.src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	tok := p.peek()
	if tok.kind != kind {
		return token{}, p.errorf(tok.pos, "expected %s, found %s", what, tok.describe())
	}
	return p.advance(), nil
}

// parseExpr parses an or-chain.
func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Or{Left: left, Right: right}
	}
	return left, nil
}

// parseAnd parses an and-chain.
func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &And{Left: left, Right: right}
	}
	return left, nil
}

// parseNot parses prefix negation.
func (p *parser) parseNot() (Expr, error) {
	if p.peek().kind == tokNot {
		p.advance()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Not{Expr: inner}, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses a parenthesized expression or a comparison.
func (p *parser) parsePrimary() (Expr, error) {
	if p.peek().kind == tokLParen {
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return p.parseComparison()
}

// parseComparison parses a comparison chain or a membership test.
// A chain such as 80 < Score <= 95 becomes (80 < Score) and (Score <= 95).
func (p *parser) parseComparison() (Expr, error) {
	start := p.peek().pos
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	switch {
	case p.peek().kind == tokIn:
		p.advance()
		return p.parseMembership(start, left, false)
	case p.peek().kind == tokNot && p.peekAt(1).kind == tokIn:
		p.advance()
		p.advance()
		return p.parseMembership(start, left, true)
	}

	if p.peek().kind != tokCompare {
		tok := p.peek()
		return nil, p.errorf(tok.pos, "expected comparison operator, found %s", tok.describe())
	}

	var result Expr
	for p.peek().kind == tokCompare {
		opTok := p.advance()
		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		if !left.IsColumn() && !right.IsColumn() {
			return nil, p.errorf(opTok.pos, "comparison %s %s %s does not reference a column",
				left, opTok.text, right)
		}
		cmp := &Comparison{Left: left, Op: parseOp(opTok.text), Right: right}
		if result == nil {
			result = cmp
		} else {
			result = &And{Left: result, Right: cmp}
		}
		left = right
	}
	return result, nil
}

// parseMembership parses the list of an in / not in test.
func (p *parser) parseMembership(start int, left Operand, negated bool) (Expr, error) {
	if !left.IsColumn() {
		return nil, p.errorf(start, "left side of in must be a column")
	}
	if _, err := p.expect(tokLBracket, "'['"); err != nil {
		return nil, err
	}

	m := &Membership{Column: left.Column, Negated: negated}
	if p.peek().kind == tokRBracket {
		p.advance()
		return m, nil
	}
	for {
		lit, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		if lit.IsColumn() {
			return nil, p.errorf(p.tokens[p.pos-1].pos, "list items must be literals")
		}
		m.values = append(m.values, lit.literal)

		if p.peek().kind == tokComma {
			p.advance()
			continue
		}
		if _, err := p.expect(tokRBracket, "',' or ']'"); err != nil {
			return nil, err
		}
		return m, nil
	}
}

// parseOperand parses a column reference or a literal.
func (p *parser) parseOperand() (Operand, error) {
	tok := p.advance()
	switch tok.kind {
	case tokIdent:
		return Operand{Column: tok.text}, nil
	case tokNumber:
		return Operand{literal: scalar{kind: scalarNumber, num: tok.num}}, nil
	case tokString:
		return Operand{literal: scalar{kind: scalarString, str: tok.text}}, nil
	case tokMinus:
		num, err := p.expect(tokNumber, "number after '-'")
		if err != nil {
			return Operand{}, err
		}
		return Operand{literal: scalar{kind: scalarNumber, num: -num.num}}, nil
	default:
		return Operand{}, p.errorf(tok.pos, "expected column or value, found %s", tok.describe())
	}
}
