// Package table holds the raw, loosely typed tables supplied by data sources.
package table

import (
	"encoding/json"
	"fmt"
)

// Table is a row-oriented collection of named string columns.
// Cells are kept exactly as read; typing happens in the normalize package.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds a Table. Duplicate column names keep their first position.
// Rows shorter than the header read missing cells as "".
func New(columns []string, rows [][]string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
		rows:    rows,
	}
	for i, c := range t.columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
	if t.rows == nil {
		t.rows = [][]string{}
	}
	return t
}

// Columns returns the header in source order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Empty reports whether the table is nil or has no rows.
func (t *Table) Empty() bool { return t.Len() == 0 }

// Has reports whether the header contains col.
func (t *Table) Has(col string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[col]
	return ok
}

// Index returns the position of col, or -1.
func (t *Table) Index(col string) int {
	if t == nil {
		return -1
	}
	if i, ok := t.index[col]; ok {
		return i
	}
	return -1
}

// Cell returns the cell at row i and column position c, or "" when out of range.
func (t *Table) Cell(i, c int) string {
	if t == nil || i < 0 || i >= len(t.rows) || c < 0 || c >= len(t.rows[i]) {
		return ""
	}
	return t.rows[i][c]
}

// Get returns the cell at row i for column col.
func (t *Table) Get(i int, col string) (string, bool) {
	c := t.Index(col)
	if c < 0 || i < 0 || i >= t.Len() {
		return "", false
	}
	return t.Cell(i, c), true
}

type wire struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// MarshalJSON encodes the table as {"columns": [...], "rows": [[...]]}.
func (t *Table) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	return json.Marshal(wire{Columns: t.columns, Rows: t.rows})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (t *Table) UnmarshalJSON(b []byte) error {
	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("decode table: %w", err)
	}
	*t = *New(w.Columns, w.Rows)
	return nil
}
