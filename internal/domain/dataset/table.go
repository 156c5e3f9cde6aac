package dataset

import (
	"fmt"
	"sort"
)

// Table is an ordered collection of rows under a fixed header. Duplicated
// rows are kept; nothing here deduplicates or sorts.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New creates an empty table with the given header. Duplicate column names
// are rejected.
func New(columns ...string) (*Table, error) {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, dup := t.index[c]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	t, _ := New()
	return t
}

// Columns returns a copy of the header.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool { return len(t.rows) == 0 }

// HasColumn reports whether name is part of the header.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AppendRow adds a row. The row must have one cell per column.
func (t *Table) AppendRow(cells ...Value) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("%w: got %d cells for %d columns", ErrRowWidth, len(cells), len(t.columns))
	}
	row := make([]Value, len(cells))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return nil
}

// AppendRecord adds a row from a column->cell map. Columns not yet in the
// header are appended to it, in the given order first and then sorted, and
// back-filled with nulls for earlier rows. Header columns missing from rec
// become null.
func (t *Table) AppendRecord(rec map[string]Value, order []string) {
	for _, c := range order {
		t.ensureColumn(c)
	}
	var extra []string
	for c := range rec {
		if !t.HasColumn(c) {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	for _, c := range extra {
		t.ensureColumn(c)
	}

	row := make([]Value, len(t.columns))
	for c, v := range rec {
		row[t.index[c]] = v
	}
	t.rows = append(t.rows, row)
}

func (t *Table) ensureColumn(name string) {
	if _, ok := t.index[name]; ok {
		return
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], Null())
	}
}

// AddConstColumn appends a column holding v in every row. If the column
// already exists its cells are overwritten.
func (t *Table) AddConstColumn(name string, v Value) {
	t.ensureColumn(name)
	i := t.index[name]
	for _, row := range t.rows {
		row[i] = v
	}
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Value {
	out := make([]Value, len(t.rows[i]))
	copy(out, t.rows[i])
	return out
}

// Cell returns the cell at row i, column name.
func (t *Table) Cell(i int, name string) (Value, error) {
	c, ok := t.index[name]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return t.rows[i][c], nil
}

// Record returns row i as a column->text map; nulls are omitted.
func (t *Table) Record(i int) map[string]string {
	rec := make(map[string]string, len(t.columns))
	for c, v := range t.rows[i] {
		if v.IsNull() {
			continue
		}
		rec[t.columns[c]] = v.String()
	}
	return rec
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out, _ := New(t.columns...)
	out.rows = make([][]Value, len(t.rows))
	for i, row := range t.rows {
		out.rows[i] = make([]Value, len(row))
		copy(out.rows[i], row)
	}
	return out
}

// NullCount returns the number of null cells.
func (t *Table) NullCount() int {
	n := 0
	for _, row := range t.rows {
		for _, v := range row {
			if v.IsNull() {
				n++
			}
		}
	}
	return n
}

// FillNulls replaces every null cell with v and returns how many were
// replaced.
func (t *Table) FillNulls(v Value) int {
	n := 0
	for _, row := range t.rows {
		for j := range row {
			if row[j].IsNull() {
				row[j] = v
				n++
			}
		}
	}
	return n
}

// Concat stacks tables in order. The result header is the union of the
// input headers in first-seen order; cells a table lacks become null.
// Concat of no tables is an empty table.
func Concat(tables ...*Table) *Table {
	out := Empty()
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.columns {
			out.ensureColumn(c)
		}
	}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, row := range t.rows {
			merged := make([]Value, len(out.columns))
			for j, v := range row {
				merged[out.index[t.columns[j]]] = v
			}
			out.rows = append(out.rows, merged)
		}
	}
	return out
}
