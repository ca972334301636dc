package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clinforge/sdtm/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type datasetRepository struct {
	pool *pgxpool.Pool
}

// NewDatasetRepository wires a repository backed by pgxpool.
func NewDatasetRepository(pool *pgxpool.Pool) DatasetRepository {
	return &datasetRepository{pool: pool}
}

func (r *datasetRepository) Create(ctx context.Context, dataset domain.Dataset, records []domain.Record) (domain.Dataset, error) {
	if r.pool == nil {
		return domain.Dataset{}, fmt.Errorf("dataset repository not initialized")
	}

	payload := make([]map[string]any, len(records))
	for i, rec := range records {
		payload[i] = rec.Values
	}
	recordsJSON, err := json.Marshal(payload)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to encode records: %w", err)
	}

	_, err = r.pool.Exec(
		ctx,
		`INSERT INTO datasets (id, run_id, study_id, domain, source_table, record_count, is_valid, records)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		dataset.ID,
		dataset.RunID,
		dataset.StudyID,
		string(dataset.Domain),
		dataset.SourceTable,
		dataset.RecordCount,
		dataset.IsValid,
		recordsJSON,
	)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to insert dataset: %w", err)
	}
	return dataset, nil
}

func (r *datasetRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Dataset, error) {
	if r.pool == nil {
		return domain.Dataset{}, fmt.Errorf("dataset repository not initialized")
	}

	row := r.pool.QueryRow(
		ctx,
		`SELECT id, run_id, study_id, domain, source_table, record_count, is_valid, created_at
		 FROM datasets
		 WHERE id = $1`,
		id,
	)
	return scanDataset(row)
}

func (r *datasetRepository) GetRecords(ctx context.Context, id uuid.UUID) ([]domain.Record, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("dataset repository not initialized")
	}

	var recordsJSON []byte
	if err := r.pool.QueryRow(ctx, `SELECT records FROM datasets WHERE id = $1`, id).Scan(&recordsJSON); err != nil {
		return nil, fmt.Errorf("failed to load dataset records: %w", err)
	}

	var payload []map[string]any
	if err := json.Unmarshal(recordsJSON, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode dataset records: %w", err)
	}
	records := make([]domain.Record, len(payload))
	for i, values := range payload {
		records[i] = domain.Record{Values: values}
	}
	return records, nil
}

func (r *datasetRepository) ListByRun(ctx context.Context, runID uuid.UUID) ([]domain.Dataset, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("dataset repository not initialized")
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, run_id, study_id, domain, source_table, record_count, is_valid, created_at
		 FROM datasets
		 WHERE run_id = $1
		 ORDER BY domain`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()
	return collectDatasets(rows)
}

func (r *datasetRepository) ListByStudy(ctx context.Context, studyID string, limit int, offset int) ([]domain.Dataset, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("dataset repository not initialized")
	}

	if limit <= 0 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, run_id, study_id, domain, source_table, record_count, is_valid, created_at
		 FROM datasets
		 WHERE study_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		studyID,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()
	return collectDatasets(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDataset(row rowScanner) (domain.Dataset, error) {
	var (
		dataset    domain.Dataset
		domainCode string
		createdAt  pgtype.Timestamptz
	)
	if err := row.Scan(
		&dataset.ID,
		&dataset.RunID,
		&dataset.StudyID,
		&domainCode,
		&dataset.SourceTable,
		&dataset.RecordCount,
		&dataset.IsValid,
		&createdAt,
	); err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to scan dataset: %w", err)
	}
	dataset.Domain = domain.Code(domainCode)
	if createdAt.Valid {
		dataset.CreatedAt = createdAt.Time
	}
	return dataset, nil
}

func collectDatasets(rows interface {
	rowScanner
	Next() bool
	Err() error
}) ([]domain.Dataset, error) {
	datasets := []domain.Dataset{}
	for rows.Next() {
		dataset, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, dataset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate datasets: %w", err)
	}
	return datasets, nil
}
