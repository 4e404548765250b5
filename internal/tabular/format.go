package tabular

import (
	"path/filepath"
	"strings"
)

// Format identifies a supported table file format.
type Format int

const (
	// FormatCSV is comma-delimited text.
	FormatCSV Format = iota + 1

	// FormatXLSX is an Excel workbook.
	FormatXLSX

	// FormatTXT is tab-delimited text.
	FormatTXT
)

// String returns the file suffix for the format, without the dot.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	case FormatTXT:
		return "txt"
	default:
		return "unknown"
	}
}

// delimiter returns the field separator for delimited formats.
func (f Format) delimiter() rune {
	if f == FormatTXT {
		return '\t'
	}
	return ','
}

// DetectFormat infers the format from the path suffix, ignoring case.
func DetectFormat(path string) (Format, error) {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".txt":
		return FormatTXT, nil
	default:
		return 0, &UnsupportedFormatError{Path: path, Ext: ext}
	}
}
