package domain

import (
	"fmt"
	"strings"
)

// Record is one canonical output row. Every required and expected catalogue
// variable is present as a key; a nil value means the variable is null.
// Records are built in one pass by the transformer and immutable afterwards.
type Record struct {
	Values map[string]any
}

// NewRecord materializes a record with every required and expected variable
// of the catalogue present and null.
func NewRecord(cat Catalogue) Record {
	values := make(map[string]any, len(cat.Variables))
	for _, v := range cat.MaterializedVariables() {
		values[v.Name] = nil
	}
	return Record{Values: values}
}

// Get returns the raw value for the named variable.
func (r Record) Get(name string) any {
	return r.Values[name]
}

// Has reports whether the named variable is a key of the record, regardless
// of whether its value is null.
func (r Record) Has(name string) bool {
	_, ok := r.Values[name]
	return ok
}

// String returns the value as a string, "" when null or absent.
func (r Record) String(name string) string {
	v, ok := r.Values[name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", t), "0"), ".")
	case int:
		return fmt.Sprintf("%d", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Float returns the value as a float64 when it is numeric.
func (r Record) Float(name string) (float64, bool) {
	switch t := r.Values[name].(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	default:
		return 0, false
	}
}

// Int returns the value as an int when it is numeric and whole.
func (r Record) Int(name string) (int, bool) {
	switch t := r.Values[name].(type) {
	case int:
		return t, true
	case float64:
		if t == float64(int(t)) {
			return int(t), true
		}
	}
	return 0, false
}

// SubjectID returns the record's USUBJID value.
func (r Record) SubjectID() string {
	return r.String("USUBJID")
}

// Table is a transformed canonical dataset for one domain.
type Table struct {
	Domain  Code
	Columns []string // canonical order
	Records []Record
}

// SubjectSet returns the distinct subject identifiers present in the table.
// The cross-domain validator uses the anchor domain's set for referential
// lookups.
func (t Table) SubjectSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, rec := range t.Records {
		if id := rec.SubjectID(); id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// RecordCount returns the number of canonical records.
func (t Table) RecordCount() int {
	return len(t.Records)
}
