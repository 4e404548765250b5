// Package report renders assessment summaries and run reports.
//
// This package contains writers for different output formats:
//   - SimpleWriter: the plain text summary printed to terminals
//   - MarkdownWriter: GitHub-flavored Markdown with tables and a chart
//   - JSONWriter: structured JSON output for tool integration
//
// Design decision: We separate report writing from report data structures
// (which are in the model package). The analyzer builds one Summary and
// every writer renders the same facts from it.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
