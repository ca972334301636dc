package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/clinforge/sdtm/internal/domain"
	"github.com/clinforge/sdtm/internal/repository"

	"github.com/google/uuid"
)

type stubDatasetRepo struct {
	mu       sync.Mutex
	datasets []domain.Dataset
	records  map[uuid.UUID][]domain.Record
}

func newStubDatasetRepo() *stubDatasetRepo {
	return &stubDatasetRepo{records: make(map[uuid.UUID][]domain.Record)}
}

func (r *stubDatasetRepo) Create(_ context.Context, dataset domain.Dataset, records []domain.Record) (domain.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.datasets = append(r.datasets, dataset)
	r.records[dataset.ID] = records
	return dataset, nil
}

func (r *stubDatasetRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.datasets {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Dataset{}, errors.New("not found")
}

func (r *stubDatasetRepo) GetRecords(_ context.Context, id uuid.UUID) ([]domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[id], nil
}

func (r *stubDatasetRepo) ListByRun(context.Context, uuid.UUID) ([]domain.Dataset, error) {
	return nil, nil
}

func (r *stubDatasetRepo) ListByStudy(context.Context, string, int, int) ([]domain.Dataset, error) {
	return nil, nil
}

var _ repository.DatasetRepository = (*stubDatasetRepo)(nil)

type stubFindingRepo struct {
	mu      sync.Mutex
	batches map[uuid.UUID][]domain.Issue
}

func newStubFindingRepo() *stubFindingRepo {
	return &stubFindingRepo{batches: make(map[uuid.UUID][]domain.Issue)}
}

func (r *stubFindingRepo) RecordBatch(_ context.Context, datasetID uuid.UUID, issues []domain.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[datasetID] = append(r.batches[datasetID], issues...)
	return nil
}

func (r *stubFindingRepo) ListByDataset(context.Context, uuid.UUID) ([]domain.Issue, error) {
	return nil, nil
}

func (r *stubFindingRepo) CountBySeverity(context.Context, uuid.UUID) (map[domain.Severity]int, error) {
	return nil, nil
}

var _ repository.FindingRepository = (*stubFindingRepo)(nil)

type stubLogRepo struct {
	mu      sync.Mutex
	entries []domain.TransformationLogEntry
}

func (r *stubLogRepo) Record(_ context.Context, entry domain.TransformationLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubLogRepo) List(context.Context, uuid.UUID, domain.Code, int, int) ([]domain.TransformationLogEntry, error) {
	return nil, nil
}

var _ repository.TransformationLogRepository = (*stubLogRepo)(nil)

func dmInput() Input {
	return Input{
		Domain: domain.DomainDM,
		Table: domain.NewRawTable("dm_export",
			[]string{"SUBJECT_ID", "GENDER", "DOB", "ARMCD", "ARM", "COUNTRY", "SITEID"},
			[][]string{
				{"001", "MALE", "19800101", "A", "Treatment A", "USA", "101"},
				{"002", "FEMALE", "19751115", "B", "Placebo", "USA", "101"},
			}),
	}
}

func aeInput() Input {
	return Input{
		Domain: domain.DomainAE,
		Table: domain.NewRawTable("ae_export",
			[]string{"SUBJECT_ID", "SITEID", "AETERM", "SEVERITY", "ONSET_DATE"},
			[][]string{
				{"001", "101", "HEADACHE", "MILD", "2023-06-10"},
				{"001", "101", "NAUSEA", "MODERATE", "2023-06-01"},
			}),
	}
}

func TestRunNoInputs(t *testing.T) {
	svc := NewService(nil, nil, Repositories{}, Options{})
	if _, err := svc.Run(context.Background(), "ST01", nil); !errors.Is(err, ErrNoInputs) {
		t.Fatalf("err = %v, want ErrNoInputs", err)
	}
}

func TestRunSingleStudy(t *testing.T) {
	svc := NewService(nil, nil, Repositories{}, Options{Workers: 2})

	result, err := svc.Run(context.Background(), "ST01", []Input{dmInput(), aeInput()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.RunID == uuid.Nil {
		t.Error("run should get an identifier")
	}
	if len(result.Domains) != 2 {
		t.Fatalf("got %d domain results, want 2", len(result.Domains))
	}

	dm := result.Domains[domain.DomainDM]
	if dm.Error != "" {
		t.Fatalf("DM failed: %s", dm.Error)
	}
	if dm.Table.RecordCount() != 2 {
		t.Errorf("DM records = %d", dm.Table.RecordCount())
	}
	if dm.SourceTable != "dm_export" {
		t.Errorf("DM source table = %q", dm.SourceTable)
	}

	ae := result.Domains[domain.DomainAE]
	if ae.Error != "" {
		t.Fatalf("AE failed: %s", ae.Error)
	}
	// Rows are ordered by start date before sequencing, so the June 1st
	// event comes first for the subject.
	recs := ae.Table.Records
	if len(recs) != 2 {
		t.Fatalf("AE records = %d", len(recs))
	}
	if got := recs[0].String("AETERM"); got != "NAUSEA" {
		t.Errorf("first AE record is %q, want the earliest onset", got)
	}
	if seq, _ := recs[0].Float("AESEQ"); seq != 1 {
		t.Errorf("first AESEQ = %v", seq)
	}

	// Both domains resolve the same subjects, so the anchor check is clean.
	for _, issue := range result.CrossDomain {
		if issue.Severity == domain.SeverityError {
			t.Errorf("unexpected cross-domain error %+v", issue)
		}
	}
}

func TestRunDetectsOrphanSubjects(t *testing.T) {
	ae := Input{
		Domain: domain.DomainAE,
		Table: domain.NewRawTable("ae_export",
			[]string{"SUBJECT_ID", "AETERM"},
			[][]string{{"999", "HEADACHE"}}),
	}
	svc := NewService(nil, nil, Repositories{}, Options{})

	result, err := svc.Run(context.Background(), "ST01", []Input{dmInput(), ae})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	foundOrphan := false
	for _, issue := range result.CrossDomain {
		if issue.RuleID == "UNRESOLVED_SUBJECT_REFERENCE" && issue.Severity == domain.SeverityError {
			foundOrphan = true
		}
	}
	if !foundOrphan {
		t.Errorf("expected an unresolved subject issue, got %+v", result.CrossDomain)
	}
	if result.IsValid() {
		t.Error("a run with cross-domain errors is not valid")
	}
}

func TestRunCapturesDomainFailure(t *testing.T) {
	// A table with no subject source fails its own domain without
	// aborting the rest of the run.
	broken := Input{
		Domain: domain.DomainVS,
		Table: domain.NewRawTable("vitals",
			[]string{"SYSBP"}, [][]string{{"120"}}),
	}
	svc := NewService(nil, nil, Repositories{}, Options{})

	result, err := svc.Run(context.Background(), "ST01", []Input{dmInput(), broken})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Domains[domain.DomainVS].Error == "" {
		t.Error("expected the vitals domain to report its failure")
	}
	if result.Domains[domain.DomainDM].Error != "" {
		t.Error("the demographics domain should be unaffected")
	}
	if result.IsValid() {
		t.Error("a run with a failed domain is not valid")
	}
}

func TestRunUnsupportedDomain(t *testing.T) {
	svc := NewService(nil, nil, Repositories{}, Options{})
	input := Input{Domain: "ZZ", Table: domain.NewRawTable("t", []string{"SUBJID"}, [][]string{{"1"}})}

	result, err := svc.Run(context.Background(), "ST01", []Input{input})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Domains["ZZ"].Error == "" {
		t.Error("expected an unsupported-domain error in the result")
	}
}

func TestRunDeclaredMappingOverridesDiscovery(t *testing.T) {
	spec := domain.MappingSpec{Domain: domain.DomainDM, Mappings: []domain.ColumnMapping{
		{SourceColumn: "COL_A", TargetVariable: "SUBJID", Strategy: domain.StrategyDeclared, Confidence: 1},
		{SourceColumn: "COL_B", TargetVariable: "SEX", Strategy: domain.StrategyDeclared, Confidence: 1},
	}}
	input := Input{
		Domain: domain.DomainDM,
		Table: domain.NewRawTable("dm",
			[]string{"COL_A", "COL_B"},
			[][]string{{"001", "F"}}),
		Mapping: &spec,
	}
	svc := NewService(nil, nil, Repositories{}, Options{})

	result, err := svc.Run(context.Background(), "ST01", []Input{input})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	dm := result.Domains[domain.DomainDM]
	if dm.Error != "" {
		t.Fatalf("DM failed: %s", dm.Error)
	}
	if got := dm.Table.Records[0].String("SEX"); got != "F" {
		t.Errorf("SEX = %q", got)
	}
	if got := dm.Mapping.Mappings[0].Strategy; got != domain.StrategyDeclared {
		t.Errorf("mapping strategy = %s", got)
	}
}

func TestRunArchivesResults(t *testing.T) {
	datasets := newStubDatasetRepo()
	findings := newStubFindingRepo()
	logs := &stubLogRepo{}
	svc := NewService(nil, nil, Repositories{Datasets: datasets, Findings: findings, Logs: logs}, Options{})

	result, err := svc.Run(context.Background(), "ST01", []Input{dmInput()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	dm := result.Domains[domain.DomainDM]
	if dm.DatasetID == uuid.Nil {
		t.Fatal("domain result should carry the archived dataset id")
	}
	if len(datasets.datasets) != 1 {
		t.Fatalf("archived %d datasets, want 1", len(datasets.datasets))
	}
	archived := datasets.datasets[0]
	if archived.RunID != result.RunID || archived.StudyID != "ST01" || archived.Domain != domain.DomainDM {
		t.Errorf("archived dataset = %+v", archived)
	}
	if archived.RecordCount != 2 {
		t.Errorf("archived record count = %d", archived.RecordCount)
	}
	if len(datasets.records[archived.ID]) != 2 {
		t.Errorf("archived %d records", len(datasets.records[archived.ID]))
	}
	if len(logs.entries) == 0 {
		t.Error("trace lines should be recorded")
	}
	if len(dm.Validation.Issues) > 0 && len(findings.batches[archived.ID]) == 0 {
		t.Error("validation findings should be recorded with the dataset")
	}
}
