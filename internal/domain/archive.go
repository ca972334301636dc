package domain

import (
	"time"

	"github.com/google/uuid"
)

// Dataset is the archived metadata row for one transformed canonical table.
type Dataset struct {
	ID          uuid.UUID `json:"id"`
	RunID       uuid.UUID `json:"run_id"`
	StudyID     string    `json:"study_id"`
	Domain      Code      `json:"domain"`
	SourceTable string    `json:"source_table"`
	RecordCount int       `json:"record_count"`
	IsValid     bool      `json:"is_valid"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDataset stamps a dataset archive row for a completed transformation.
func NewDataset(runID uuid.UUID, studyID string, domain Code, sourceTable string, recordCount int, isValid bool) Dataset {
	return Dataset{
		ID:          uuid.New(),
		RunID:       runID,
		StudyID:     studyID,
		Domain:      domain,
		SourceTable: sourceTable,
		RecordCount: recordCount,
		IsValid:     isValid,
		CreatedAt:   time.Now(),
	}
}

// TransformationLogEntry is one human-readable trace line from a
// transformation run.
type TransformationLogEntry struct {
	ID        int64     `json:"id"`
	RunID     uuid.UUID `json:"run_id"`
	StudyID   string    `json:"study_id"`
	Domain    Code      `json:"domain"`
	RowNumber *int      `json:"row_number,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
