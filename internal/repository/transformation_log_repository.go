package repository

import (
	"context"
	"fmt"

	"github.com/clinforge/sdtm/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transformationLogRepository struct {
	pool *pgxpool.Pool
}

// NewTransformationLogRepository wires a repository backed by pgxpool.
func NewTransformationLogRepository(pool *pgxpool.Pool) TransformationLogRepository {
	return &transformationLogRepository{pool: pool}
}

func (r *transformationLogRepository) Record(ctx context.Context, entry domain.TransformationLogEntry) error {
	if r.pool == nil {
		return fmt.Errorf("transformation log repository not initialized")
	}

	var rowNumber any
	if entry.RowNumber != nil {
		rowNumber = *entry.RowNumber
	}

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO transformation_logs (run_id, study_id, domain, row_number, message)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.RunID,
		entry.StudyID,
		string(entry.Domain),
		rowNumber,
		entry.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to record transformation log: %w", err)
	}
	return nil
}

func (r *transformationLogRepository) List(ctx context.Context, runID uuid.UUID, domainCode domain.Code, limit int, offset int) ([]domain.TransformationLogEntry, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("transformation log repository not initialized")
	}

	if limit <= 0 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, run_id, study_id, domain, row_number, message, created_at
		 FROM transformation_logs
		 WHERE run_id = $1
		   AND ($2 = '' OR domain = $2)
		 ORDER BY id
		 LIMIT $3 OFFSET $4`,
		runID,
		string(domainCode),
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transformation logs: %w", err)
	}
	defer rows.Close()

	entries := []domain.TransformationLogEntry{}
	for rows.Next() {
		var (
			entry     domain.TransformationLogEntry
			code      string
			rowNumber pgtype.Int4
			createdAt pgtype.Timestamptz
		)
		if scanErr := rows.Scan(
			&entry.ID,
			&entry.RunID,
			&entry.StudyID,
			&code,
			&rowNumber,
			&entry.Message,
			&createdAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan transformation log: %w", scanErr)
		}
		entry.Domain = domain.Code(code)
		if rowNumber.Valid {
			value := int(rowNumber.Int32)
			entry.RowNumber = &value
		}
		if createdAt.Valid {
			entry.CreatedAt = createdAt.Time
		}
		entries = append(entries, entry)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate transformation logs: %w", rowsErr)
	}
	return entries, nil
}
