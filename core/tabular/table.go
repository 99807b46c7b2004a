package tabular

import (
	"fmt"
	"strings"
)

// Table is an in-memory tabular dataset: a header row plus data rows.
// All cells are strings; rows are padded to the header width on read.
type Table struct {
	// Columns holds the header names in file order.
	Columns []string
	// Rows holds the data rows. Each row has len(Columns) cells.
	Rows [][]string
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the cell at the given row and column index.
func (t *Table) Cell(row, col int) string {
	return t.Rows[row][col]
}

// SetCell overwrites the cell at the given row and column index.
func (t *Table) SetCell(row, col int, value string) {
	t.Rows[row][col] = value
}

// AddColumn appends a new column with one value per existing row.
func (t *Table) AddColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	if _, exists := t.ColumnIndex(name); exists {
		return fmt.Errorf("column %q already exists", name)
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// MissingColumnError reports a required column absent from a file, together
// with the columns actually present so the operator can fix the source file.
type MissingColumnError struct {
	Path    string
	Column  string
	Present []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: required column %q not found (columns present: %s)",
		e.Path, e.Column, strings.Join(e.Present, ", "))
}

// RequireColumns verifies that every named column exists in the table,
// returning a MissingColumnError for the first one absent.
func RequireColumns(t *Table, path string, columns ...string) error {
	for _, c := range columns {
		if _, ok := t.ColumnIndex(c); !ok {
			return &MissingColumnError{Path: path, Column: c, Present: t.Columns}
		}
	}
	return nil
}
