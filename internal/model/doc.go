// Package model defines the core data structures used throughout schoolscan.
//
// This package contains the following main types:
//   - Value, Row and Table: the in-memory tabular data loaded from files
//   - AnalysisResult and ClassStat: aggregate statistics over a Table
//   - ExtractedWebData: text extracted from an assessment webpage
//   - Summary: the data rendered by report writers
//   - RunReport: the record of a multi-step run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The tabular, analysis, report and pipeline packages all need
// these types, so centralizing them prevents import cycles.
package model
