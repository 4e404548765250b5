// Package tabular reads delimited and spreadsheet files into model.Table
// values and writes tables back out as CSV.
//
// The file format is inferred from the file name suffix:
//   - .csv: comma-delimited text with a header row
//   - .txt: tab-delimited text with a header row
//   - .xlsx: the first worksheet of an Excel workbook, header in the first row
//
// Any other suffix is rejected with an UnsupportedFormatError.
//
// Design decision: We use encoding/csv for both delimited formats and
// excelize for workbooks. Both are read fully into memory; the files this
// tool handles are class rosters and score sheets, not bulk data.
//
// Writing is atomic: the complete table is written to a temporary file in the
// destination directory and then renamed over the destination, so readers
// never observe a partially written file.
package tabular
