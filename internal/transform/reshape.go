package transform

import (
	"github.com/clinforge/sdtm/internal/domain"
)

// Vital-signs test reference: code to display name and customary unit.
var vsTests = map[string]struct {
	Name string
	Unit string
}{
	"SYSBP":  {"Systolic Blood Pressure", "mmHg"},
	"DIABP":  {"Diastolic Blood Pressure", "mmHg"},
	"PULSE":  {"Pulse Rate", "beats/min"},
	"RESP":   {"Respiratory Rate", "breaths/min"},
	"TEMP":   {"Temperature", "C"},
	"HEIGHT": {"Height", "cm"},
	"WEIGHT": {"Weight", "kg"},
	"BMI":    {"Body Mass Index", "kg/m2"},
	"OXYSAT": {"Oxygen Saturation", "%"},
}

// rowExpander turns one raw row into one or more canonical records.
type rowExpander func(r *run, row int) []domain.Record

// singleRecordExpander is the default strategy: one record per raw row.
func singleRecordExpander(r *run, row int) []domain.Record {
	return []domain.Record{r.buildRecord(row)}
}

type wideColumn struct {
	column string
	code   string
}

// wideVitalColumns finds source columns whose names resolve to vital-signs
// test codes, e.g. a table laid out as one column per measurement
// (SYSBP, DIABP, PULSE, ...).
func wideVitalColumns(tr *Transformer, table domain.RawTable, spec domain.MappingSpec) []wideColumn {
	claimed := spec.ClaimedColumns()
	var cols []wideColumn
	for _, col := range table.Columns {
		if _, taken := claimed[canonicalColumnKey(col)]; taken {
			continue
		}
		code := tr.resolver.Resolve(col, "VSTESTCD")
		if _, known := vsTests[code]; known {
			cols = append(cols, wideColumn{column: col, code: code})
		}
	}
	return cols
}

// vitalsWideExpander reshapes a wide-per-row vitals table into one record
// per measured value per row. Shared fields (subject, date, visit) come
// from the normal per-row build; the per-measurement fields are filled
// from the matched column.
func vitalsWideExpander(cols []wideColumn) rowExpander {
	return func(r *run, row int) []domain.Record {
		var records []domain.Record
		for _, wc := range cols {
			raw := r.table.Value(row, wc.column)
			if raw == "" {
				continue
			}
			rec := r.buildRecord(row)
			info := vsTests[wc.code]
			rec.Values["VSTESTCD"] = wc.code
			rec.Values["VSTEST"] = info.Name
			rec.Values["VSORRES"] = raw
			if rec.Get("VSORRESU") == nil && info.Unit != "" {
				rec.Values["VSORRESU"] = info.Unit
			}
			records = append(records, rec)
		}
		return records
	}
}

// expanderFor selects the domain's row expansion strategy. Only vital
// signs has a special reshape; it applies when the table looks wide and
// no test-code column was mapped.
func expanderFor(r *run) rowExpander {
	if r.tr.cat.Domain == domain.DomainVS {
		if _, mapped := r.spec.ForVariable("VSTESTCD"); !mapped {
			if cols := wideVitalColumns(r.tr, r.table, r.spec); len(cols) > 0 {
				r.tracef("wide vitals layout detected: %d measurement columns", len(cols))
				return vitalsWideExpander(cols)
			}
		}
	}
	return singleRecordExpander
}
