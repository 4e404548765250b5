package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/nao1215/schoolscan/internal/model"
)

// Read loads the file at path into a Table, choosing the reader from the
// path suffix.
func Read(path string) (*model.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return readWorkbook(path)
	default:
		return readDelimited(path, format.delimiter())
	}
}

// readDelimited reads a delimited text file with a header row.
func readDelimited(path string, comma rune) (*model.Table, error) {
	f, err := os.Open(path) //nolint:gosec // Reading user-provided data files is the purpose of this tool
	if err != nil {
		return nil, &FileAccessError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	// Spreadsheet exports often start with a byte-order mark, which would
	// otherwise become part of the first column name.
	decoded := transform.NewReader(f, unicode.BOMOverride(transform.Nop))

	r := csv.NewReader(decoded)
	r.Comma = comma
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: path, Err: errors.New("no header row")}
		}
		return nil, csvError(path, err)
	}
	if err := validateHeader(header); err != nil {
		return nil, &ParseError{Path: path, Line: 1, Err: err}
	}

	var records [][]model.Value
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(path, err)
		}
		if len(rec) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, &ParseError{
				Path: path,
				Line: line,
				Err:  fmt.Errorf("expected %d fields, saw %d", len(header), len(rec)),
			}
		}
		records = append(records, toValues(rec))
	}

	return model.NewTable(header, records), nil
}

// csvError converts an encoding/csv failure into a package error.
func csvError(path string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Path: path, Line: perr.Line, Err: perr.Err}
	}
	return &FileAccessError{Op: "read", Path: path, Err: err}
}

// readWorkbook reads the first worksheet of an Excel workbook.
func readWorkbook(path string) (*model.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, &FileAccessError{Op: "open", Path: path, Err: err}
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Path: path, Err: errors.New("workbook has no worksheets")}
	}

	// Raw values keep number formats such as "#,##0" or "0%" from turning
	// numeric cells into display strings.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("sheet %q: %w", sheets[0], err)}
	}

	// GetRows returns blank rows as empty slices; skip them the same way
	// the delimited reader skips blank lines.
	var (
		header    []string
		headerRow int
		records   [][]model.Value
	)
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		if header == nil {
			header = row
			headerRow = i + 1
			continue
		}
		if len(row) > len(header) {
			return nil, &ParseError{
				Path: path,
				Line: i + 1,
				Err:  fmt.Errorf("expected %d fields, saw %d", len(header), len(row)),
			}
		}
		records = append(records, toValues(row))
	}

	if header == nil {
		return nil, &ParseError{Path: path, Err: errors.New("no header row")}
	}
	if err := validateHeader(header); err != nil {
		return nil, &ParseError{Path: path, Line: headerRow, Err: err}
	}

	return model.NewTable(header, records), nil
}

// validateHeader rejects empty and duplicate column names.
func validateHeader(header []string) error {
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("column %d has an empty name", i+1)
		}
		if seen[name] {
			return fmt.Errorf("duplicate column name %q", name)
		}
		seen[name] = true
	}
	return nil
}

// isBlank reports whether every cell of a worksheet row is empty.
func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// toValues interprets each cell of a record.
func toValues(rec []string) []model.Value {
	values := make([]model.Value, len(rec))
	for i, cell := range rec {
		values[i] = model.ParseValue(cell)
	}
	return values
}
