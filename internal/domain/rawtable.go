package domain

import "strings"

// RawTable is an immutable tabular extract from the source EDC system.
// Columns keep their original spelling; lookups are case-insensitive.
type RawTable struct {
	Name    string
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewRawTable builds a raw table and its column index. Rows shorter than the
// header are padded on access; longer rows are truncated.
func NewRawTable(name string, columns []string, rows [][]string) RawTable {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		key := strings.ToUpper(strings.TrimSpace(col))
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}
	return RawTable{Name: name, Columns: columns, Rows: rows, index: index}
}

// HasColumn reports whether the table carries the named column.
func (t RawTable) HasColumn(name string) bool {
	_, ok := t.index[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}

// ColumnIndex returns the position of the named column, or -1.
func (t RawTable) ColumnIndex(name string) int {
	idx, ok := t.index[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return -1
	}
	return idx
}

// Value returns the trimmed cell value at (row, column), or "" when either
// is out of range.
func (t RawTable) Value(row int, column string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	idx := t.ColumnIndex(column)
	if idx < 0 || idx >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][idx])
}

// SampleValues returns up to limit non-empty values of the named column,
// in row order. limit <= 0 means all rows.
func (t RawTable) SampleValues(column string, limit int) []string {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil
	}
	var values []string
	for _, row := range t.Rows {
		if idx >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[idx])
		if v == "" {
			continue
		}
		values = append(values, v)
		if limit > 0 && len(values) >= limit {
			break
		}
	}
	return values
}

// RowCount returns the number of data rows.
func (t RawTable) RowCount() int {
	return len(t.Rows)
}
