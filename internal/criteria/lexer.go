package criteria

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenKind classifies a lexical token.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokCompare
	tokAnd
	tokOr
	tokNot
	tokIn
	tokMinus
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
)

// token is a lexical token with its byte offset in the source.
type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// describe returns the token as it should appear in error messages.
func (t token) describe() string {
	if t.kind == tokEOF {
		return "end of criteria"
	}
	return strconv.Quote(t.text)
}

// lexer splits a criteria string into tokens.
type lexer struct {
	src string
	pos int
}

// tokenize returns every token of src followed by tokEOF.
func tokenize(src string) ([]token, error) {
	l := &lexer{src: src}
	var tokens []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.kind == tokEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) errorf(pos int, format string, args ...any) error {
	return &InvalidCriteriaError{Criteria: l.src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// next scans one token.
func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", pos: start}, nil
	case c == '[':
		l.pos++
		return token{kind: tokLBracket, text: "[", pos: start}, nil
	case c == ']':
		l.pos++
		return token{kind: tokRBracket, text: "]", pos: start}, nil
	case c == ',':
		l.pos++
		return token{kind: tokComma, text: ",", pos: start}, nil
	case c == '-':
		l.pos++
		return token{kind: tokMinus, text: "-", pos: start}, nil
	case c == '&':
		l.pos += l.repeat('&')
		return token{kind: tokAnd, text: l.src[start:l.pos], pos: start}, nil
	case c == '|':
		l.pos += l.repeat('|')
		return token{kind: tokOr, text: l.src[start:l.pos], pos: start}, nil
	case c == '~':
		l.pos++
		return token{kind: tokNot, text: "~", pos: start}, nil
	case c == '=' || c == '!' || c == '<' || c == '>':
		return l.compare()
	case c == '\'' || c == '"':
		return l.quoted()
	case c == '`':
		return l.backquoted()
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		return l.number()
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	if r == '_' || unicode.IsLetter(r) {
		return l.ident(), nil
	}
	return token{}, l.errorf(start, "unexpected character %q", r)
}

// repeat returns 2 if the byte after the current one equals c, else 1.
// This accepts both "&" and "&&" (and "|" / "||").
func (l *lexer) repeat(c byte) int {
	if l.pos+1 < len(l.src) && l.src[l.pos+1] == c {
		return 2
	}
	return 1
}

// compare scans a comparison operator.
func (l *lexer) compare() (token, error) {
	start := l.pos
	two := ""
	if l.pos+2 <= len(l.src) {
		two = l.src[l.pos : l.pos+2]
	}
	switch two {
	case "==", "!=", ">=", "<=":
		l.pos += 2
		return token{kind: tokCompare, text: two, pos: start}, nil
	}
	switch l.src[l.pos] {
	case '<', '>':
		l.pos++
		return token{kind: tokCompare, text: l.src[start:l.pos], pos: start}, nil
	case '=':
		return token{}, l.errorf(start, "use == for equality")
	default:
		return token{}, l.errorf(start, "unexpected character '!'; use != or not")
	}
}

// quoted scans a single- or double-quoted string literal.
// A backslash escapes the following character.
func (l *lexer) quoted() (token, error) {
	start := l.pos
	quote := l.src[l.pos]
	l.pos++

	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\\' && l.pos+1 < len(l.src):
			sb.WriteByte(l.src[l.pos+1])
			l.pos += 2
		case c == quote:
			l.pos++
			return token{kind: tokString, text: sb.String(), pos: start}, nil
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return token{}, l.errorf(start, "unterminated string literal")
}

// backquoted scans a `column name` that may contain spaces.
func (l *lexer) backquoted() (token, error) {
	start := l.pos
	end := strings.IndexByte(l.src[start+1:], '`')
	if end < 0 {
		return token{}, l.errorf(start, "unterminated backquoted column name")
	}
	name := l.src[start+1 : start+1+end]
	if name == "" {
		return token{}, l.errorf(start, "empty column name")
	}
	l.pos = start + end + 2
	return token{kind: tokIdent, text: name, pos: start}, nil
}

// number scans a decimal number with an optional exponent.
func (l *lexer) number() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '.') {
		l.pos++
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	text := l.src[start:l.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, l.errorf(start, "invalid number %q", text)
	}
	return token{kind: tokNumber, text: text, num: n, pos: start}, nil
}

// ident scans a bare identifier, turning keywords into their own tokens.
func (l *lexer) ident() token {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.pos += size
	}
	text := l.src[start:l.pos]
	kind := tokIdent
	switch strings.ToLower(text) {
	case "and":
		kind = tokAnd
	case "or":
		kind = tokOr
	case "not":
		kind = tokNot
	case "in":
		kind = tokIn
	}
	return token{kind: kind, text: text, pos: start}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
