// Package analyzer ties the loader, the transfer, the web fetcher and the
// statistics together behind one Analyzer value.
//
// An Analyzer owns the current table. Load and Transfer replace it wholesale
// when a file loads successfully and leave it untouched otherwise. Analyze
// and GenerateSummary read it. FetchWebData never touches it.
//
// Every operation returns its error and also logs it, so a command line run
// that ignores return values still leaves a trace of what went wrong. A
// failed call never leaves the Analyzer unusable.
package analyzer
