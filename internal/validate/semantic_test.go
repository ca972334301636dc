package validate

import (
	"testing"

	"github.com/clinforge/sdtm/internal/domain"
	"github.com/clinforge/sdtm/internal/transform"
)

func vsRecord(testCode string, result float64) domain.Record {
	return record(map[string]any{
		"STUDYID":  "ST01",
		"DOMAIN":   "VS",
		"USUBJID":  "ST01-001",
		"VSSEQ":    float64(1),
		"VSTESTCD": testCode,
		"VSSTRESN": result,
	})
}

func TestSemanticVitalPlausibility(t *testing.T) {
	cat, _ := domain.CatalogueFor(domain.DomainVS)
	table := domain.Table{Domain: domain.DomainVS, Records: []domain.Record{
		vsRecord("SYSBP", 118), // fine
		vsRecord("SYSBP", 260), // implausible
		vsRecord("SYSBP", 400), // beyond any measurement
		vsRecord("PULSE", 72),
	}}

	result := NewSemanticValidator().Validate(table, cat)

	criticals := issuesByRule(result, RuleRangeCritical)
	if len(criticals) != 1 || criticals[0].Severity != domain.SeverityError || criticals[0].RecordCount != 1 {
		t.Fatalf("critical range issues = %+v", result.Issues)
	}
	warnings := issuesByRule(result, RuleRangeImplausible)
	if len(warnings) != 1 || warnings[0].Severity != domain.SeverityWarning || warnings[0].RecordCount != 1 {
		t.Fatalf("implausible range issues = %+v", result.Issues)
	}
	if result.IsValid {
		t.Error("a critically implausible value must invalidate the table")
	}
}

func TestSemanticVitalFallsBackToOriginalResult(t *testing.T) {
	cat, _ := domain.CatalogueFor(domain.DomainVS)
	rec := vsRecord("TEMP", 0)
	delete(rec.Values, "VSSTRESN")
	rec.Values["VSORRES"] = float64(50) // above the 45 C critical bound
	table := domain.Table{Domain: domain.DomainVS, Records: []domain.Record{rec}}

	result := NewSemanticValidator().Validate(table, cat)

	if found := issuesByRule(result, RuleRangeCritical); len(found) != 1 {
		t.Fatalf("critical range issues = %+v", result.Issues)
	}
}

func TestSemanticAgePlausibility(t *testing.T) {
	cat, _ := domain.CatalogueFor(domain.DomainDM)
	table := domain.Table{Domain: domain.DomainDM, Records: []domain.Record{
		dmRecord("ST01-001", map[string]any{"AGE": float64(44)}),
		dmRecord("ST01-002", map[string]any{"AGE": float64(130)}),
		dmRecord("ST01-003", map[string]any{"AGE": float64(200)}),
	}}

	result := NewSemanticValidator().Validate(table, cat)

	found := issuesByRule(result, RuleAgeImplausible)
	if len(found) != 2 {
		t.Fatalf("age issues = %+v", result.Issues)
	}
	counts := map[domain.Severity]int{}
	for _, issue := range found {
		counts[issue.Severity] += issue.RecordCount
	}
	if counts[domain.SeverityError] != 1 || counts[domain.SeverityWarning] != 1 {
		t.Errorf("age issue counts = %v", counts)
	}
}

func TestSemanticFatalOutcome(t *testing.T) {
	cat, _ := domain.CatalogueFor(domain.DomainAE)
	table := domain.Table{Domain: domain.DomainAE, Records: []domain.Record{
		aeRecord(map[string]any{"AEOUT": "FATAL"}),
		aeRecord(map[string]any{"AESEQ": float64(2), "AEOUT": "FATAL", "AESDTH": "Y"}),
		aeRecord(map[string]any{"AESEQ": float64(3), "AEOUT": "RECOVERED/RESOLVED"}),
	}}

	result := NewSemanticValidator().Validate(table, cat)

	found := issuesByRule(result, RuleFatalOutcome)
	if len(found) != 1 || found[0].RecordCount != 1 || found[0].Severity != domain.SeverityError {
		t.Fatalf("fatal outcome issues = %+v", result.Issues)
	}
}

func TestSemanticSeriousnessCriteria(t *testing.T) {
	cat, _ := domain.CatalogueFor(domain.DomainAE)
	table := domain.Table{Domain: domain.DomainAE, Records: []domain.Record{
		aeRecord(map[string]any{"AESER": "Y"}),
		aeRecord(map[string]any{"AESEQ": float64(2), "AESER": "Y", "AESHOSP": "Y"}),
		aeRecord(map[string]any{"AESEQ": float64(3), "AESER": "N"}),
	}}

	result := NewSemanticValidator().Validate(table, cat)

	found := issuesByRule(result, RuleSeriousCriteria)
	if len(found) != 1 || found[0].RecordCount != 1 || found[0].Severity != domain.SeverityWarning {
		t.Fatalf("seriousness issues = %+v", result.Issues)
	}
}

func TestSemanticReferenceRangeAgreement(t *testing.T) {
	cat, _ := domain.CatalogueFor(domain.DomainLB)
	// The range bounds are character variables, so they arrive as strings.
	lb := func(indicator string, value float64, low, high string) domain.Record {
		return record(map[string]any{
			"STUDYID": "ST01", "DOMAIN": "LB", "USUBJID": "ST01-001",
			"LBSEQ": float64(1), "LBTESTCD": "GLUC", "LBTEST": "Glucose",
			"LBNRIND": indicator, "LBSTRESN": value,
			"LBORNRLO": low, "LBORNRHI": high,
		})
	}
	table := domain.Table{Domain: domain.DomainLB, Records: []domain.Record{
		lb("NORMAL", 200, "70", "110"),   // disagrees: value is above the range
		lb("HIGH", 200, "70", "110"),     // agrees
		lb("ABNORMAL", 200, "70", "110"), // the coarse indicator is acceptable
		lb("NORMAL", 90, "70", "110"),    // agrees
	}}

	result := NewSemanticValidator().Validate(table, cat)

	found := issuesByRule(result, RuleRefRangeMismatch)
	if len(found) != 1 || found[0].RecordCount != 1 || found[0].Severity != domain.SeverityWarning {
		t.Fatalf("reference range issues = %+v", result.Issues)
	}
}

func TestSemanticReferenceRangeOnTransformedRecords(t *testing.T) {
	cat, _ := domain.CatalogueFor(domain.DomainLB)
	raw := domain.NewRawTable("lab.csv",
		[]string{"PT", "LBTESTCD", "RESULT", "NORMAL_LOW", "NORMAL_HIGH", "ABNORMAL_FLAG"},
		[][]string{
			{"001", "GLUC", "200", "70", "110", "NORMAL"},
		})

	table, _, err := transform.New(cat, nil, transform.Options{StudyID: "ST01"}).
		Transform(raw, domain.MappingSpec{Domain: domain.DomainLB})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if len(table.Records) != 1 {
		t.Fatalf("records = %d", len(table.Records))
	}
	if _, ok := table.Records[0].Get("LBORNRLO").(string); !ok {
		t.Fatalf("LBORNRLO = %#v, want a character value", table.Records[0].Get("LBORNRLO"))
	}

	result := NewSemanticValidator().Validate(table, cat)

	found := issuesByRule(result, RuleRefRangeMismatch)
	if len(found) != 1 || found[0].RecordCount != 1 {
		t.Fatalf("reference range issues = %+v", result.Issues)
	}
}

func TestSemanticChecksAreDomainScoped(t *testing.T) {
	// An AE table never triggers the vitals or demographics checks, even
	// when it happens to carry look-alike values.
	cat, _ := domain.CatalogueFor(domain.DomainAE)
	table := domain.Table{Domain: domain.DomainAE, Records: []domain.Record{
		aeRecord(map[string]any{"AGE": float64(500), "VSTESTCD": "SYSBP", "VSSTRESN": float64(400)}),
	}}

	result := NewSemanticValidator().Validate(table, cat)

	if len(result.Issues) != 0 {
		t.Fatalf("unexpected issues %+v", result.Issues)
	}
}
