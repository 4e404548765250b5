// Package criteria parses and evaluates row filters such as
//
//	Score > 90
//	Class == "A" and Score >= 50
//	`First Name` != 'Bob' or not (Score < 60)
//	80 < Score <= 95
//	Class in ["A", "B"]
//
// A criteria string is parsed once into an expression tree of comparisons
// joined by and/or/not, then evaluated against each row of a table.
//
// Comparison rules:
//   - numbers compare numerically, strings lexicographically
//   - a number compared with a string is never equal and never ordered
//   - an empty cell only satisfies !=
//
// Design decision: We parse into an explicit tree instead of embedding a
// general expression interpreter. Filters only need column comparisons, so
// a small grammar keeps evaluation predictable and error messages precise
// (every error carries the byte offset of the offending token).
package criteria
