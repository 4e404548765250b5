package model

import "slices"

// Row maps a column name to its cell value.
type Row map[string]Value

// Get returns the value for column, and whether the row has that column.
func (r Row) Get(column string) (Value, bool) {
	v, ok := r[column]
	return v, ok
}

// Table is an ordered collection of rows sharing the same columns.
//
// A Table is immutable once built: accessors return copies and Filter returns
// a new Table. Replacing the data an analyzer works on therefore always means
// replacing the whole Table.
type Table struct {
	// columns holds the column names in file order.
	columns []string

	// rows holds one value per column for each row, in file order.
	rows [][]Value

	// index maps a column name to its position in columns.
	index map[string]int
}

// NewTable builds a Table from column names and row values.
// Each record is padded with null values or truncated to len(columns).
func NewTable(columns []string, records [][]Value) *Table {
	t := &Table{
		columns: slices.Clone(columns),
		rows:    make([][]Value, 0, len(records)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range t.columns {
		t.index[c] = i
	}
	for _, rec := range records {
		row := make([]Value, len(t.columns))
		copy(row, rec)
		t.rows = append(t.rows, row)
	}
	return t
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.columns)
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// Row returns the i-th row as a Row map.
func (t *Table) Row(i int) Row {
	row := make(Row, len(t.columns))
	for j, c := range t.columns {
		row[c] = t.rows[i][j]
	}
	return row
}

// Rows returns every row as a Row map, in order.
func (t *Table) Rows() []Row {
	rows := make([]Row, t.Len())
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// Value returns the cell at row i for column, and whether the column exists.
func (t *Table) Value(i int, column string) (Value, bool) {
	j, ok := t.index[column]
	if !ok {
		return Value{}, false
	}
	return t.rows[i][j], true
}

// Records returns the cell text of every row, in column order.
// This is the form written to delimited files.
func (t *Table) Records() [][]string {
	records := make([][]string, t.Len())
	for i, row := range t.rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = v.String()
		}
		records[i] = rec
	}
	return records
}

// Filter returns a new Table holding the rows for which keep returns true,
// in their original order and with the same columns.
func (t *Table) Filter(keep func(Row) bool) *Table {
	kept := make([][]Value, 0, t.Len())
	for i, row := range t.rows {
		if keep(t.Row(i)) {
			kept = append(kept, row)
		}
	}
	return NewTable(t.columns, kept)
}
