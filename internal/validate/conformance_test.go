package validate

import (
	"testing"

	"github.com/clinforge/sdtm/internal/domain"
)

func aeRecord(overrides map[string]any) domain.Record {
	values := map[string]any{
		"STUDYID": "ST01",
		"DOMAIN":  "AE",
		"USUBJID": "ST01-001",
		"AESEQ":   float64(1),
		"AETERM":  "HEADACHE",
	}
	for k, v := range overrides {
		values[k] = v
	}
	return record(values)
}

func TestConformanceTerminologySeverity(t *testing.T) {
	// Nonconformance on a safety-critical coded variable is an error;
	// on any other coded variable it is a warning.
	cat, _ := domain.CatalogueFor(domain.DomainAE)
	table := domain.Table{Domain: domain.DomainAE, Records: []domain.Record{
		aeRecord(map[string]any{"AESER": "MAYBE", "AESEV": "HORRIBLE"}),
		aeRecord(map[string]any{"AESEQ": float64(2), "AESER": "Y", "AESEV": "MILD"}),
	}}

	result := NewConformanceValidator(nil).Validate(table, cat)

	found := issuesByRule(result, RuleCTNonconformant)
	if len(found) != 2 {
		t.Fatalf("terminology issues = %+v", result.Issues)
	}
	bySeverity := map[string]domain.Severity{}
	for _, issue := range found {
		bySeverity[issue.Variable] = issue.Severity
		if issue.RecordCount != 1 {
			t.Errorf("%s flagged %d records, want 1", issue.Variable, issue.RecordCount)
		}
	}
	if bySeverity["AESER"] != domain.SeverityError {
		t.Errorf("AESER severity = %s, want error", bySeverity["AESER"])
	}
	if bySeverity["AESEV"] != domain.SeverityWarning {
		t.Errorf("AESEV severity = %s, want warning", bySeverity["AESEV"])
	}
}

func TestConformanceTerminologyAcceptsSynonymsAndExtensible(t *testing.T) {
	cat, _ := domain.CatalogueFor(domain.DomainDM)
	table := domain.Table{Domain: domain.DomainDM, Records: []domain.Record{
		dmRecord("ST01-001", map[string]any{"SEX": "FEMALE", "RACE": "MARTIAN"}),
	}}

	result := NewConformanceValidator(nil).Validate(table, cat)

	if found := issuesByRule(result, RuleCTNonconformant); len(found) != 0 {
		t.Errorf("unexpected terminology issues %+v", found)
	}
}

func TestConformanceDateShapes(t *testing.T) {
	cat, _ := domain.CatalogueFor(domain.DomainDM)
	table := domain.Table{Domain: domain.DomainDM, Records: []domain.Record{
		dmRecord("ST01-001", map[string]any{"RFSTDTC": "01/02/2023"}),
		dmRecord("ST01-002", map[string]any{"RFSTDTC": "2023-02-01", "BRTHDTC": "1980-06"}),
		dmRecord("ST01-003", map[string]any{"BRTHDTC": "1975"}),
	}}

	result := NewConformanceValidator(nil).Validate(table, cat)

	found := issuesByRule(result, RuleDateFormat)
	if len(found) != 1 {
		t.Fatalf("date shape issues = %+v", result.Issues)
	}
	if found[0].Variable != "RFSTDTC" || found[0].RecordCount != 1 || found[0].Severity != domain.SeverityError {
		t.Errorf("unexpected issue %+v", found[0])
	}
}

func TestConformanceTimingOrder(t *testing.T) {
	cat, _ := domain.CatalogueFor(domain.DomainAE)
	table := domain.Table{Domain: domain.DomainAE, Records: []domain.Record{
		aeRecord(map[string]any{"AESTDTC": "2023-06-10", "AEENDTC": "2023-06-01"}),
		aeRecord(map[string]any{"AESEQ": float64(2), "AESTDTC": "2023-06", "AEENDTC": "2023-06-15"}),
		aeRecord(map[string]any{"AESEQ": float64(3), "AESTDTC": "2023-05-01"}),
	}}

	result := NewConformanceValidator(nil).Validate(table, cat)

	found := issuesByRule(result, RuleStartAfterEnd)
	if len(found) != 1 {
		t.Fatalf("timing order issues = %+v", result.Issues)
	}
	// Only the inverted full-precision pair counts: the partial start
	// compares by its available precision, the open-ended record not at all.
	if found[0].RecordCount != 1 || found[0].Variable != "AESTDTC" {
		t.Errorf("unexpected issue %+v", found[0])
	}
}

func TestConformanceSequencePositivity(t *testing.T) {
	cat, _ := domain.CatalogueFor(domain.DomainAE)
	table := domain.Table{Domain: domain.DomainAE, Records: []domain.Record{
		aeRecord(map[string]any{"AESEQ": float64(0)}),
		aeRecord(map[string]any{"AESEQ": float64(1)}),
		aeRecord(map[string]any{"AESEQ": nil}),
	}}

	result := NewConformanceValidator(nil).Validate(table, cat)

	found := issuesByRule(result, RuleSequenceInvalid)
	if len(found) != 1 {
		t.Fatalf("sequence issues = %+v", result.Issues)
	}
	// Null sequence values are a structural concern, not a positivity one.
	if found[0].RecordCount != 1 {
		t.Errorf("flagged %d records, want 1", found[0].RecordCount)
	}
}
