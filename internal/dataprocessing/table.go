package dataprocessing

import "fmt"

// Table is a header plus rows of string cells. Every row has exactly one
// cell per header column.
type Table struct {
	header []string
	rows   [][]string
	index  map[string]int
}

// NewTable builds a table; short rows are padded and long rows truncated
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{
		header: append([]string(nil), header...),
		rows:   make([][]string, len(rows)),
	}
	for i, row := range rows {
		cells := make([]string, len(header))
		copy(cells, row)
		t.rows[i] = cells
	}
	t.reindex()
	return t
}

// reindex maps each name to its first occurrence
func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.header))
	for i, name := range t.header {
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}
}

// Header returns a copy of the column names
func (t *Table) Header() []string {
	return append([]string(nil), t.header...)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns row i. The slice is shared with the table.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Rows returns every row. The slices are shared with the table.
func (t *Table) Rows() [][]string {
	return t.rows
}

// HasColumn reports whether name is a column
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column
func (t *Table) Column(name string) ([]string, bool) {
	idx, ok := t.index[name]
	if !ok {
		return nil, false
	}
	cells := make([]string, len(t.rows))
	for i, row := range t.rows {
		cells[i] = row[idx]
	}
	return cells, true
}

// SetColumn replaces the named column, or appends it when absent
func (t *Table) SetColumn(name string, values []string) error {
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %s has %d values, table has %d rows", name, len(values), len(t.rows))
	}

	idx, ok := t.index[name]
	if !ok {
		t.header = append(t.header, name)
		idx = len(t.header) - 1
		t.index[name] = idx
		for i := range t.rows {
			t.rows[i] = append(t.rows[i], "")
		}
	}

	for i, v := range values {
		t.rows[i][idx] = v
	}
	return nil
}

// RenameColumn renames from to to. Renaming onto an existing column fails.
func (t *Table) RenameColumn(from, to string) error {
	if from == to {
		return nil
	}
	idx, ok := t.index[from]
	if !ok {
		return fmt.Errorf("rename %s: %w", from, ErrColumnMissing)
	}
	if _, exists := t.index[to]; exists {
		return fmt.Errorf("rename %s: column %s already exists", from, to)
	}
	t.header[idx] = to
	t.reindex()
	return nil
}

// MapHeader rewrites every column name through fn
func (t *Table) MapHeader(fn func(string) string) {
	for i, name := range t.header {
		t.header[i] = fn(name)
	}
	t.reindex()
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	return NewTable(t.header, t.rows)
}
