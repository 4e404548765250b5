package model

import (
	"math"
	"strconv"
	"strings"
)

// Kind describes how a cell value was interpreted when it was loaded.
type Kind int

const (
	// KindNull is a missing cell: empty, or one of the missingTokens.
	// Null cells are excluded from statistics and never satisfy a
	// comparison.
	KindNull Kind = iota

	// KindNumber is a cell whose text parses as a finite floating point
	// number.
	KindNumber

	// KindString is any other non-empty cell.
	KindString
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a single table cell.
//
// Design decision: Each cell keeps its verbatim text alongside the parsed
// number. Writing a filtered table back to disk uses the text, so a value such
// as "95" is written as "95" rather than "95.000000", and reloading the
// written file reproduces the same values.
type Value struct {
	raw  string
	num  float64
	kind Kind
}

// missingTokens are the cell texts spreadsheet tools and data exports use
// for a missing value. They are matched case-sensitively after trimming.
var missingTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// ParseValue interprets cell text. Surrounding whitespace is ignored when
// deciding the kind, but the original text is preserved.
//
// Missing tokens and text that parses as NaN or an infinity are null.
func ParseValue(text string) Value {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Value{raw: text, kind: KindNull}
	}
	if _, missing := missingTokens[trimmed]; missing {
		return Value{raw: text, kind: KindNull}
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return Value{raw: text, kind: KindNull}
		}
		return Value{raw: text, num: n, kind: KindNumber}
	}
	return Value{raw: text, kind: KindString}
}

// Kind reports how the cell was interpreted.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the cell is missing.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Number returns the numeric value and whether the cell is numeric.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// String returns the cell text exactly as it was read.
func (v Value) String() string {
	return v.raw
}

// Text returns the cell text with surrounding whitespace removed.
// This is the form used for grouping and string comparisons.
func (v Value) Text() string {
	return strings.TrimSpace(v.raw)
}
