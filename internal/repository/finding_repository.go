package repository

import (
	"context"
	"fmt"

	"github.com/clinforge/sdtm/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type findingRepository struct {
	pool *pgxpool.Pool
}

// NewFindingRepository wires a repository backed by pgxpool.
func NewFindingRepository(pool *pgxpool.Pool) FindingRepository {
	return &findingRepository{pool: pool}
}

func (r *findingRepository) RecordBatch(ctx context.Context, datasetID uuid.UUID, issues []domain.Issue) error {
	if r.pool == nil {
		return fmt.Errorf("finding repository not initialized")
	}
	if len(issues) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, issue := range issues {
		batch.Queue(
			`INSERT INTO validation_findings (dataset_id, rule_id, severity, message, domain, variable, affected_record_count)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			datasetID,
			issue.RuleID,
			string(issue.Severity),
			issue.Message,
			string(issue.Domain),
			issue.Variable,
			issue.RecordCount,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range issues {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to record validation finding: %w", err)
		}
	}
	return nil
}

func (r *findingRepository) ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]domain.Issue, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("finding repository not initialized")
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT rule_id, severity, message, domain, variable, affected_record_count
		 FROM validation_findings
		 WHERE dataset_id = $1
		 ORDER BY severity, rule_id`,
		datasetID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list validation findings: %w", err)
	}
	defer rows.Close()

	issues := []domain.Issue{}
	for rows.Next() {
		var (
			issue      domain.Issue
			severity   string
			domainCode string
		)
		if scanErr := rows.Scan(
			&issue.RuleID,
			&severity,
			&issue.Message,
			&domainCode,
			&issue.Variable,
			&issue.RecordCount,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan validation finding: %w", scanErr)
		}
		issue.Severity = domain.Severity(severity)
		issue.Domain = domain.Code(domainCode)
		issues = append(issues, issue)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate validation findings: %w", rowsErr)
	}
	return issues, nil
}

func (r *findingRepository) CountBySeverity(ctx context.Context, datasetID uuid.UUID) (map[domain.Severity]int, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("finding repository not initialized")
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT severity, COUNT(*)
		 FROM validation_findings
		 WHERE dataset_id = $1
		 GROUP BY severity`,
		datasetID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count validation findings: %w", err)
	}
	defer rows.Close()

	counts := map[domain.Severity]int{}
	for rows.Next() {
		var severity string
		var count int
		if scanErr := rows.Scan(&severity, &count); scanErr != nil {
			return nil, fmt.Errorf("failed to scan finding count: %w", scanErr)
		}
		counts[domain.Severity(severity)] = count
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate finding counts: %w", rowsErr)
	}
	return counts, nil
}
