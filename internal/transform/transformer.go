// Package transform produces canonical domain tables from raw EDC
// extracts. A single generic transformer is parameterized by the target
// catalogue; only genuinely domain-specific behavior (derivations, the
// wide-to-long vitals reshape) lives in named strategy functions.
package transform

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/clinforge/sdtm/internal/domain"
	"github.com/clinforge/sdtm/internal/normalize"
	"github.com/clinforge/sdtm/internal/terminology"
)

// ErrNoSubjectColumn is returned when the source table carries no
// identifiable subject column at all. This is the only transformation-
// fatal condition; everything else degrades to nulls and trace lines.
var ErrNoSubjectColumn = errors.New("no subject identifier column in source table")

const defaultSubjectTokenWidth = 3

// Options tunes study-level transformer behavior.
type Options struct {
	// StudyID is used when the source table has no study column.
	StudyID string
	// SubjectTokenWidth is the zero-pad width for numeric subject tokens.
	SubjectTokenWidth int
}

// Transformer converts raw tables of one domain into canonical records.
type Transformer struct {
	cat      domain.Catalogue
	resolver *terminology.Resolver
	opts     Options
}

// New builds a transformer for the given catalogue. A nil resolver falls
// back to the stock codelists.
func New(cat domain.Catalogue, resolver *terminology.Resolver, opts Options) *Transformer {
	if resolver == nil {
		resolver = terminology.DefaultResolver()
	}
	if opts.SubjectTokenWidth <= 0 {
		opts.SubjectTokenWidth = defaultSubjectTokenWidth
	}
	return &Transformer{cat: cat, resolver: resolver, opts: opts}
}

// Catalogue returns the transformer's target catalogue.
func (t *Transformer) Catalogue() domain.Catalogue {
	return t.cat
}

// run carries the per-table state of one transformation pass.
type run struct {
	tr    *Transformer
	table domain.RawTable
	spec  domain.MappingSpec
	trace []string
}

func (r *run) tracef(format string, args ...any) {
	r.trace = append(r.trace, fmt.Sprintf(format, args...))
}

// Transform produces the canonical table for one raw table using a
// previously discovered (or declared) mapping spec. It returns the table,
// the ordered transformation log, and an error only when no subject
// identifier source exists at all. Records are emitted in input row
// order; callers needing a specific sequence order must sort the rows
// first (see SortRows).
func (t *Transformer) Transform(table domain.RawTable, spec domain.MappingSpec) (domain.Table, []string, error) {
	r := &run{tr: t, table: table, spec: spec}

	if !r.hasSubjectSource() {
		return domain.Table{}, nil, fmt.Errorf("table %s: %w", table.Name, ErrNoSubjectColumn)
	}

	r.tracef("transforming %s into %s: %d rows, %d mappings, %d unmapped columns",
		table.Name, t.cat.Domain, table.RowCount(), len(spec.Mappings), len(spec.UnmappedColumns))

	expand := expanderFor(r)
	derive := derivations[t.cat.Domain]

	var records []domain.Record
	for row := range table.Rows {
		for _, rec := range expand(r, row) {
			if derive != nil {
				derive(t, &rec)
			}
			records = append(records, rec)
		}
	}

	if seqVar := t.cat.SequenceVariable(); seqVar != "" {
		counters := make(map[string]int)
		for i := range records {
			subject := records[i].SubjectID()
			counters[subject]++
			records[i].Values[seqVar] = float64(counters[subject])
		}
	}

	out := domain.Table{
		Domain:  t.cat.Domain,
		Columns: t.outputColumns(records),
		Records: records,
	}
	r.tracef("produced %d canonical records", len(records))
	log.Printf("[TRANSFORM] %s: %d rows -> %d %s records", table.Name, table.RowCount(), len(records), t.cat.Domain)
	return out, r.trace, nil
}

// outputColumns returns the deterministic canonical column order: all
// required and expected variables, plus any permissible variable that
// received a value in at least one record.
func (t *Transformer) outputColumns(records []domain.Record) []string {
	var columns []string
	for _, name := range t.cat.CanonicalOrder(nil) {
		v, _ := t.cat.Variable(name)
		if v.Requirement == domain.RequirementPermissible {
			present := false
			for _, rec := range records {
				if rec.Has(name) {
					present = true
					break
				}
			}
			if !present {
				continue
			}
		}
		columns = append(columns, name)
	}
	return columns
}

// buildRecord materializes one record from one raw row: schema-complete
// defaults first, then mapped/fallback source values with normalization
// and terminology resolution, then identifier construction.
func (r *run) buildRecord(row int) domain.Record {
	cat := r.tr.cat
	rec := domain.NewRecord(cat)
	rec.Values["DOMAIN"] = string(cat.Domain)

	study := r.sourceString(row, "STUDYID")
	if study == "" {
		study = r.tr.opts.StudyID
	}
	rec.Values["STUDYID"] = study

	seqVar := cat.SequenceVariable()
	for _, v := range cat.Variables {
		switch v.Name {
		case "DOMAIN", "USUBJID", "STUDYID", seqVar:
			continue
		}
		raw, source := r.sourceValue(row, v.Name)
		if raw == "" {
			continue
		}
		r.applyVariable(&rec, v, raw, row, source)
	}

	site := cleanSiteID(r.sourceString(row, "SITEID"))
	if site != "" && rec.Has("SITEID") {
		rec.Values["SITEID"] = site
	}

	if direct := r.directUSUBJID(row); direct != "" {
		rec.Values["USUBJID"] = direct
		return rec
	}

	token := cleanSubjectToken(r.sourceString(row, "SUBJID"), r.tr.opts.SubjectTokenWidth)
	if token != "" && rec.Has("SUBJID") {
		rec.Values["SUBJID"] = token
	}
	usubjid := buildUSUBJID(study, site, token)
	if usubjid == "" {
		r.tracef("row %d: could not construct a subject identifier", row+1)
	}
	rec.Values["USUBJID"] = usubjid
	return rec
}

// applyVariable normalizes and assigns one source value. Malformed values
// degrade to null with a trace line; nothing here can fail a row.
func (r *run) applyVariable(rec *domain.Record, v domain.Variable, raw string, row int, source string) {
	switch {
	case v.Role == domain.RoleTiming && v.Kind == domain.KindCharacter:
		iso := normalize.Date(raw)
		if iso == "" {
			r.tracef("row %d: unparseable date %q in column %s for %s", row+1, raw, source, v.Name)
			return
		}
		rec.Values[v.Name] = iso
	case v.Kind == domain.KindNumeric:
		f, ok := normalize.Numeric(raw)
		if !ok {
			r.tracef("row %d: non-numeric value %q in column %s for %s", row+1, raw, source, v.Name)
			return
		}
		rec.Values[v.Name] = f
	case v.Codelist == "NY":
		if flag := normalize.Flag(raw); flag != "" {
			rec.Values[v.Name] = flag
			return
		}
		rec.Values[v.Name] = r.tr.resolver.Resolve(raw, v.Codelist)
	case v.Codelist != "":
		rec.Values[v.Name] = r.tr.resolver.Resolve(raw, v.Codelist)
	default:
		rec.Values[v.Name] = raw
	}
}

// sourceValue resolves the raw value for a target variable: the
// discovered mapping first, then the variable's ordered fallback column
// candidates. Returns the value and the column it came from.
func (r *run) sourceValue(row int, variable string) (string, string) {
	if m, ok := r.spec.ForVariable(variable); ok {
		if v := r.table.Value(row, m.SourceColumn); v != "" {
			return v, m.SourceColumn
		}
	}
	for _, candidate := range fallbackColumns[variable] {
		if !r.table.HasColumn(candidate) {
			continue
		}
		if v := r.table.Value(row, candidate); v != "" {
			return v, candidate
		}
	}
	return "", ""
}

func (r *run) sourceString(row int, variable string) string {
	v, _ := r.sourceValue(row, variable)
	return v
}

// directUSUBJID returns a verbatim unique subject identifier when the
// source table already carries one; construction from study/site/subject
// tokens would mangle it.
func (r *run) directUSUBJID(row int) string {
	if m, ok := r.spec.ForVariable("USUBJID"); ok {
		if v := r.table.Value(row, m.SourceColumn); v != "" {
			return v
		}
	}
	if r.table.HasColumn("USUBJID") {
		return r.table.Value(row, "USUBJID")
	}
	return ""
}

// hasSubjectSource reports whether any subject identifier source exists:
// a discovered mapping, an explicit USUBJID column, or any of the subject
// fallback candidates.
func (r *run) hasSubjectSource() bool {
	if _, ok := r.spec.ForVariable("USUBJID"); ok {
		return true
	}
	if _, ok := r.spec.ForVariable("SUBJID"); ok {
		return true
	}
	if r.table.HasColumn("USUBJID") {
		return true
	}
	for _, candidate := range fallbackColumns["SUBJID"] {
		if r.table.HasColumn(candidate) {
			return true
		}
	}
	return false
}

// SortRows returns a copy of the raw table with rows stably ordered by
// the source values of the given target variables, dates compared in
// normalized ISO form. Callers use this before transforming repeating
// domains that need a deterministic sequence order, e.g. adverse events
// by start date then term.
func SortRows(table domain.RawTable, spec domain.MappingSpec, variables ...string) domain.RawTable {
	helper := &run{tr: &Transformer{cat: domain.Catalogue{}}, table: table, spec: spec}

	keys := make([][]string, len(table.Rows))
	for i := range table.Rows {
		key := make([]string, len(variables))
		for j, variable := range variables {
			v, _ := helper.sourceValue(i, variable)
			if iso := normalize.Date(v); iso != "" && strings.HasSuffix(variable, "DTC") {
				v = iso
			}
			key[j] = v
		}
		keys[i] = key
	}

	order := make([]int, len(table.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := keys[order[a]], keys[order[b]]
		for i := range ka {
			if ka[i] != kb[i] {
				return ka[i] < kb[i]
			}
		}
		return false
	})

	rows := make([][]string, len(table.Rows))
	for i, idx := range order {
		rows[i] = table.Rows[idx]
	}
	return domain.NewRawTable(table.Name, table.Columns, rows)
}

func canonicalColumnKey(col string) string {
	return strings.ToUpper(strings.TrimSpace(col))
}
