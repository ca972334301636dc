package repository

import (
	"context"

	"github.com/clinforge/sdtm/internal/domain"

	"github.com/google/uuid"
)

// DatasetRepository archives transformed canonical tables.
type DatasetRepository interface {
	Create(ctx context.Context, dataset domain.Dataset, records []domain.Record) (domain.Dataset, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Dataset, error)
	GetRecords(ctx context.Context, id uuid.UUID) ([]domain.Record, error)
	ListByRun(ctx context.Context, runID uuid.UUID) ([]domain.Dataset, error)
	ListByStudy(ctx context.Context, studyID string, limit int, offset int) ([]domain.Dataset, error)
}

// FindingRepository stores validation findings per archived dataset.
type FindingRepository interface {
	RecordBatch(ctx context.Context, datasetID uuid.UUID, issues []domain.Issue) error
	ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]domain.Issue, error)
	CountBySeverity(ctx context.Context, datasetID uuid.UUID) (map[domain.Severity]int, error)
}

// TransformationLogRepository stores per-run trace lines for observability.
type TransformationLogRepository interface {
	Record(ctx context.Context, entry domain.TransformationLogEntry) error
	List(ctx context.Context, runID uuid.UUID, domainCode domain.Code, limit int, offset int) ([]domain.TransformationLogEntry, error)
}
