// Package pipeline orchestrates the full run for a study: mapping
// discovery, transformation and validation per domain, cross-domain
// validation over the joined results, and optional archival of the
// outcome. Domains are independent until the cross-domain step, so they
// run concurrently.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/clinforge/sdtm/internal/domain"
	"github.com/clinforge/sdtm/internal/mapping"
	"github.com/clinforge/sdtm/internal/repository"
	"github.com/clinforge/sdtm/internal/terminology"
	"github.com/clinforge/sdtm/internal/transform"
	"github.com/clinforge/sdtm/internal/validate"

	"github.com/google/uuid"
)

// ErrNoInputs is returned when a run is requested with nothing to process.
var ErrNoInputs = errors.New("no input tables supplied")

// Input is one raw source table bound to its target domain. A declared
// mapping spec overrides discovery when the caller already knows the
// column bindings.
type Input struct {
	Domain  domain.Code
	Table   domain.RawTable
	Mapping *domain.MappingSpec
}

// DomainResult is the per-domain outcome of a run.
type DomainResult struct {
	Domain      domain.Code        `json:"domain"`
	SourceTable string             `json:"sourceTable"`
	Mapping     domain.MappingSpec `json:"mapping"`
	Table       domain.Table       `json:"-"`
	Trace       []string           `json:"trace,omitempty"`
	Validation  domain.Result      `json:"validation"`
	DatasetID   uuid.UUID          `json:"datasetId,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// RunResult is the outcome of one full study run.
type RunResult struct {
	RunID       uuid.UUID                    `json:"runId"`
	StudyID     string                       `json:"studyId"`
	Domains     map[domain.Code]DomainResult `json:"domains"`
	CrossDomain []domain.Issue               `json:"crossDomainIssues"`
}

// IsValid reports whether no error-severity issue was raised anywhere in
// the run, including the cross-domain step.
func (r RunResult) IsValid() bool {
	for _, dr := range r.Domains {
		if dr.Error != "" || !dr.Validation.IsValid {
			return false
		}
	}
	for _, issue := range r.CrossDomain {
		if issue.Severity == domain.SeverityError {
			return false
		}
	}
	return true
}

// Options tunes a pipeline service.
type Options struct {
	// StudyID is stamped on records whose source carries no study column.
	StudyID string
	// SubjectTokenWidth is the zero-pad width for numeric subject tokens.
	SubjectTokenWidth int
	// Workers bounds domain-level concurrency. Zero means GOMAXPROCS.
	Workers int
}

// Repositories groups the optional persistence backends. A nil field
// disables that concern; the pipeline itself never requires a database.
type Repositories struct {
	Datasets repository.DatasetRepository
	Findings repository.FindingRepository
	Logs     repository.TransformationLogRepository
}

// Service runs study pipelines.
type Service struct {
	discoverer  *mapping.Discoverer
	resolver    *terminology.Resolver
	structural  *validate.StructuralValidator
	conformance *validate.ConformanceValidator
	semantic    *validate.SemanticValidator
	cross       *validate.CrossDomainValidator
	repos       Repositories
	opts        Options
}

// NewService builds a pipeline service. Nil discoverer and resolver fall
// back to the stock strategies and codelists.
func NewService(discoverer *mapping.Discoverer, resolver *terminology.Resolver, repos Repositories, opts Options) *Service {
	if discoverer == nil {
		discoverer = mapping.NewDiscoverer(nil)
	}
	if resolver == nil {
		resolver = terminology.DefaultResolver()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Service{
		discoverer:  discoverer,
		resolver:    resolver,
		structural:  validate.NewStructuralValidator(),
		conformance: validate.NewConformanceValidator(resolver),
		semantic:    validate.NewSemanticValidator(),
		cross:       validate.NewCrossDomainValidator(),
		repos:       repos,
		opts:        opts,
	}
}

// sequenceSortKeys gives each repeating domain its deterministic row order
// before sequence numbers are assigned.
var sequenceSortKeys = map[domain.Code][]string{
	domain.DomainAE: {"AESTDTC", "AETERM"},
	domain.DomainCM: {"CMSTDTC", "CMTRT"},
	domain.DomainEX: {"EXSTDTC"},
	domain.DomainMH: {"MHSTDTC", "MHTERM"},
	domain.DomainDS: {"DSSTDTC", "DSDECOD"},
	domain.DomainVS: {"VSDTC", "VSTESTCD"},
	domain.DomainLB: {"LBDTC", "LBTESTCD"},
}

// Run executes the pipeline for one study. Per-domain failures are
// captured in the result rather than aborting the run; the returned error
// covers only input and context problems.
func (s *Service) Run(ctx context.Context, studyID string, inputs []Input) (RunResult, error) {
	if len(inputs) == 0 {
		return RunResult{}, ErrNoInputs
	}
	if studyID == "" {
		studyID = s.opts.StudyID
	}

	result := RunResult{
		RunID:   uuid.New(),
		StudyID: studyID,
		Domains: make(map[domain.Code]DomainResult, len(inputs)),
	}
	log.Printf("[PIPELINE] run %s: %d input table(s) for study %s", result.RunID, len(inputs), studyID)

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, s.opts.Workers)
	)
	for _, input := range inputs {
		wg.Add(1)
		go func(input Input) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			dr := s.runDomain(ctx, result.RunID, studyID, input)
			mu.Lock()
			result.Domains[input.Domain] = dr
			mu.Unlock()
		}(input)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return result, err
	}

	tables := make(map[domain.Code]domain.Table, len(result.Domains))
	for code, dr := range result.Domains {
		if dr.Error == "" {
			tables[code] = dr.Table
		}
	}
	result.CrossDomain = s.cross.Validate(tables)
	log.Printf("[PIPELINE] run %s: %d domain(s) processed, %d cross-domain issue(s)",
		result.RunID, len(result.Domains), len(result.CrossDomain))
	return result, nil
}

func (s *Service) runDomain(ctx context.Context, runID uuid.UUID, studyID string, input Input) DomainResult {
	dr := DomainResult{Domain: input.Domain, SourceTable: input.Table.Name}

	cat, ok := domain.CatalogueFor(input.Domain)
	if !ok {
		dr.Error = fmt.Sprintf("unsupported target domain %q", input.Domain)
		return dr
	}

	spec := domain.MappingSpec{}
	if input.Mapping != nil {
		spec = *input.Mapping
	} else {
		spec = s.discoverer.Discover(ctx, input.Table, cat)
	}
	dr.Mapping = spec.Sorted()

	table := input.Table
	if keys := sequenceSortKeys[input.Domain]; len(keys) > 0 {
		table = transform.SortRows(table, spec, keys...)
	}

	tr := transform.New(cat, s.resolver, transform.Options{
		StudyID:           studyID,
		SubjectTokenWidth: s.opts.SubjectTokenWidth,
	})
	canonical, trace, err := tr.Transform(table, spec)
	dr.Trace = trace
	if err != nil {
		dr.Error = err.Error()
		s.persistTrace(ctx, runID, studyID, input.Domain, trace)
		return dr
	}
	dr.Table = canonical

	dr.Validation = domain.Merge(cat.Domain, canonical.RecordCount(),
		s.structural.Validate(canonical, cat),
		s.conformance.Validate(canonical, cat),
		s.semantic.Validate(canonical, cat),
	)

	s.persistTrace(ctx, runID, studyID, input.Domain, trace)
	s.persistDataset(ctx, runID, studyID, input, canonical, &dr)
	return dr
}

func (s *Service) persistDataset(ctx context.Context, runID uuid.UUID, studyID string, input Input, table domain.Table, dr *DomainResult) {
	if s.repos.Datasets == nil {
		return
	}
	dataset := domain.NewDataset(runID, studyID, input.Domain, input.Table.Name, table.RecordCount(), dr.Validation.IsValid)
	if _, err := s.repos.Datasets.Create(ctx, dataset, table.Records); err != nil {
		log.Printf("[PIPELINE] run %s: failed to archive %s dataset: %v", runID, input.Domain, err)
		return
	}
	dr.DatasetID = dataset.ID

	if s.repos.Findings != nil && len(dr.Validation.Issues) > 0 {
		if err := s.repos.Findings.RecordBatch(ctx, dataset.ID, dr.Validation.Issues); err != nil {
			log.Printf("[PIPELINE] run %s: failed to archive %s findings: %v", runID, input.Domain, err)
		}
	}
}

func (s *Service) persistTrace(ctx context.Context, runID uuid.UUID, studyID string, code domain.Code, trace []string) {
	if s.repos.Logs == nil {
		return
	}
	for _, line := range trace {
		entry := domain.TransformationLogEntry{
			RunID:   runID,
			StudyID: studyID,
			Domain:  code,
			Message: line,
		}
		if err := s.repos.Logs.Record(ctx, entry); err != nil {
			log.Printf("[PIPELINE] run %s: failed to record trace line: %v", runID, err)
			return
		}
	}
}
