// Package main provides the entry point for the schoolscan CLI.
//
// schoolscan loads school assessment tables (CSV, XLSX or tab-delimited
// text), transfers filtered subsets, extracts assessment details from
// webpages and prints a summary of scores per class.
//
// Usage:
//
//	schoolscan summary school_management.csv
//	schoolscan transfer 'Score > 90' school_management.csv high_achievers.csv
//	schoolscan run --url https://example.com/assessments school_management.csv
//
// See --help for all available options.
package main

// main is the entry point for schoolscan.
func main() {
	Execute()
}
