// Package analysis computes aggregate statistics over assessment tables.
//
// Analyze returns the mean of the numeric score cells and the class with the
// highest mean score. Cells that are empty or not numeric do not take part in
// any mean. Classes are visited in sorted key order (numerically when every
// key is a number, otherwise lexicographically) and the first class reaching
// the highest mean wins, so ties resolve deterministically.
package analysis
