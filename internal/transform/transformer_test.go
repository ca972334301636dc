package transform

import (
	"errors"
	"testing"

	"github.com/clinforge/sdtm/internal/domain"
)

func catalogueFor(t *testing.T, code domain.Code) domain.Catalogue {
	t.Helper()
	cat, ok := domain.CatalogueFor(code)
	if !ok {
		t.Fatalf("no catalogue for %s", code)
	}
	return cat
}

func declared(code domain.Code, pairs map[string]string) domain.MappingSpec {
	spec := domain.MappingSpec{Domain: code}
	for column, variable := range pairs {
		spec.Mappings = append(spec.Mappings, domain.ColumnMapping{
			SourceColumn:   column,
			TargetVariable: variable,
			Confidence:     1,
			Strategy:       domain.StrategyDeclared,
		})
	}
	return spec
}

func TestTransformDemographics(t *testing.T) {
	table := domain.NewRawTable("dm_extract",
		[]string{"PT", "GENDER", "DOB", "SITE", "FIRST_DOSE_DATE"},
		[][]string{
			{"07-12", "MALE", "19800101", "US_EAST_101", "2023-06-01"},
		})
	spec := declared(domain.DomainDM, map[string]string{
		"PT":     "SUBJID",
		"GENDER": "SEX",
		"DOB":    "BRTHDTC",
	})
	tr := New(catalogueFor(t, domain.DomainDM), nil, Options{StudyID: "STUDY01"})

	out, trace, err := tr.Transform(table, spec)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if len(out.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(out.Records))
	}
	rec := out.Records[0]

	cases := map[string]string{
		"DOMAIN":  "DM",
		"STUDYID": "STUDY01",
		"SUBJID":  "007",
		"SITEID":  "101",
		"USUBJID": "STUDY01-101-007",
		"SEX":     "M",
		"BRTHDTC": "1980-01-01",
		"RFSTDTC": "2023-06-01",
		"AGEU":    "YEARS",
	}
	for variable, want := range cases {
		if got := rec.String(variable); got != want {
			t.Errorf("%s = %q, want %q", variable, got, want)
		}
	}
	if age, ok := rec.Float("AGE"); !ok || age != 43 {
		t.Errorf("derived AGE = (%v, %v), want 43", age, ok)
	}

	// Records are schema complete: unmapped required and expected
	// variables are present as null keys, never absent.
	for _, v := range tr.Catalogue().MaterializedVariables() {
		if !rec.Has(v.Name) {
			t.Errorf("record is missing key %s", v.Name)
		}
	}
	if rec.Get("ARM") != nil {
		t.Errorf("unsourced ARM should be null, got %v", rec.Get("ARM"))
	}
	if len(trace) == 0 {
		t.Error("expected a transformation trace")
	}
}

func TestTransformDeathFlagDerivation(t *testing.T) {
	table := domain.NewRawTable("dm",
		[]string{"PT", "DEATH_DATE"},
		[][]string{{"001", "2023-05-01"}})
	tr := New(catalogueFor(t, domain.DomainDM), nil, Options{StudyID: "ST01"})

	out, _, err := tr.Transform(table, domain.MappingSpec{Domain: domain.DomainDM})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	rec := out.Records[0]
	if got := rec.String("DTHDTC"); got != "2023-05-01" {
		t.Errorf("DTHDTC = %q", got)
	}
	if got := rec.String("DTHFL"); got != "Y" {
		t.Errorf("death date without a flag should imply DTHFL=Y, got %q", got)
	}
}

func TestTransformNoSubjectColumn(t *testing.T) {
	table := domain.NewRawTable("dm", []string{"GENDER"}, [][]string{{"F"}})
	tr := New(catalogueFor(t, domain.DomainDM), nil, Options{})

	_, _, err := tr.Transform(table, domain.MappingSpec{Domain: domain.DomainDM})
	if !errors.Is(err, ErrNoSubjectColumn) {
		t.Fatalf("err = %v, want ErrNoSubjectColumn", err)
	}
}

func TestTransformDirectUSUBJID(t *testing.T) {
	// A verbatim unique identifier is never rebuilt from tokens.
	table := domain.NewRawTable("dm",
		[]string{"USUBJID", "GENDER"},
		[][]string{{"STX-05-0007", "F"}})
	tr := New(catalogueFor(t, domain.DomainDM), nil, Options{StudyID: "OTHER"})

	out, _, err := tr.Transform(table, domain.MappingSpec{Domain: domain.DomainDM})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got := out.Records[0].SubjectID(); got != "STX-05-0007" {
		t.Errorf("USUBJID = %q, want the verbatim source value", got)
	}
}

func TestTransformAdverseEventSequence(t *testing.T) {
	table := domain.NewRawTable("ae_extract",
		[]string{"PT", "AETERM", "SEVERITY"},
		[][]string{
			{"001", "HEADACHE", "MODERATE"},
			{"001", "NAUSEA", "Grade 4"},
			{"002", "RASH", "MILD"},
		})
	tr := New(catalogueFor(t, domain.DomainAE), nil, Options{StudyID: "ST01"})

	out, _, err := tr.Transform(table, domain.MappingSpec{Domain: domain.DomainAE})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if len(out.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(out.Records))
	}

	// Sequence numbers restart at 1 per subject, in emit order.
	wantSeq := []float64{1, 2, 1}
	wantGrade := []string{"2", "4", "1"}
	for i, rec := range out.Records {
		seq, ok := rec.Float("AESEQ")
		if !ok || seq != wantSeq[i] {
			t.Errorf("record %d AESEQ = (%v, %v), want %v", i, seq, ok, wantSeq[i])
		}
		if got := rec.String("AETOXGR"); got != wantGrade[i] {
			t.Errorf("record %d AETOXGR = %q, want %q", i, got, wantGrade[i])
		}
	}

	// Permissible columns only appear when populated.
	hasToxGr, hasSDTH := false, false
	for _, col := range out.Columns {
		if col == "AETOXGR" {
			hasToxGr = true
		}
		if col == "AESDTH" {
			hasSDTH = true
		}
	}
	if !hasToxGr {
		t.Error("populated AETOXGR missing from output columns")
	}
	if hasSDTH {
		t.Error("never-populated AESDTH should not be an output column")
	}
}

func TestTransformWideVitals(t *testing.T) {
	table := domain.NewRawTable("vitals",
		[]string{"PT", "SYSBP", "PULSE", "VS_DATE"},
		[][]string{
			{"001", "120", "72", "2023-06-01"},
			{"002", "", "80", "2023-06-02"},
		})
	tr := New(catalogueFor(t, domain.DomainVS), nil, Options{StudyID: "ST01"})

	out, _, err := tr.Transform(table, domain.MappingSpec{Domain: domain.DomainVS})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	// Two measurements on row one, a single one on row two.
	if len(out.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(out.Records))
	}

	first := out.Records[0]
	if got := first.String("VSTESTCD"); got != "SYSBP" {
		t.Errorf("VSTESTCD = %q", got)
	}
	if got := first.String("VSTEST"); got != "Systolic Blood Pressure" {
		t.Errorf("VSTEST = %q", got)
	}
	if got := first.String("VSORRES"); got != "120" {
		t.Errorf("VSORRES = %q", got)
	}
	if got := first.String("VSORRESU"); got != "mmHg" {
		t.Errorf("VSORRESU = %q", got)
	}
	if n, ok := first.Float("VSSTRESN"); !ok || n != 120 {
		t.Errorf("VSSTRESN = (%v, %v), want 120", n, ok)
	}
	if got := first.String("VSDTC"); got != "2023-06-01" {
		t.Errorf("VSDTC = %q", got)
	}
	if seq, _ := first.Float("VSSEQ"); seq != 1 {
		t.Errorf("VSSEQ = %v", seq)
	}
	if seq, _ := out.Records[1].Float("VSSEQ"); seq != 2 {
		t.Errorf("second measurement of the same subject should get VSSEQ 2, got %v", seq)
	}
	if seq, _ := out.Records[2].Float("VSSEQ"); seq != 1 {
		t.Errorf("first measurement of subject 002 should get VSSEQ 1, got %v", seq)
	}
}

func TestSortRows(t *testing.T) {
	table := domain.NewRawTable("ae",
		[]string{"PT", "ONSET_DATE", "AETERM"},
		[][]string{
			{"001", "20230110", "RASH"},
			{"002", "2023-01-03", "NAUSEA"},
			{"003", "2023-01-10", "HEADACHE"},
		})

	sorted := SortRows(table, domain.MappingSpec{Domain: domain.DomainAE}, "AESTDTC", "AETERM")

	var terms []string
	for i := range sorted.Rows {
		terms = append(terms, sorted.Value(i, "AETERM"))
	}
	// Dates compare in normalized ISO form, ties break on the term.
	want := []string{"NAUSEA", "HEADACHE", "RASH"}
	for i := range want {
		if terms[i] != want[i] {
			t.Fatalf("sorted terms = %v, want %v", terms, want)
		}
	}
}

func TestCleanIdentifiers(t *testing.T) {
	if got := cleanSiteID("US_EAST_101"); got != "101" {
		t.Errorf("cleanSiteID = %q", got)
	}
	if got := cleanSiteID("SITE-07"); got != "07" {
		t.Errorf("cleanSiteID = %q", got)
	}
	if got := cleanSubjectToken("07-12", 3); got != "007" {
		t.Errorf("cleanSubjectToken = %q", got)
	}
	if got := cleanSubjectToken("ABC", 3); got != "ABC" {
		t.Errorf("non-numeric token should pass through, got %q", got)
	}
	if got := buildUSUBJID("ST01", "", "007"); got != "ST01-007" {
		t.Errorf("buildUSUBJID skips empty parts, got %q", got)
	}
}
