package importing

import (
	"time"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

const previewSize = 5

type SessionOutput struct {
	RunID      string                `json:"run_id"`
	Table      string                `json:"table"`
	SourceName string                `json:"source_name"`
	Status     string                `json:"status"`
	Headers    []string              `json:"headers"`
	Columns    []string              `json:"columns"`
	Required   []string              `json:"required"`
	Mapping    []domain.MappingEntry `json:"mapping"`
	RowCount   int                   `json:"row_count"`
	Preview    []domain.StagedRecord `json:"preview"`
}

type RunOutput struct {
	ID         string                `json:"id"`
	Table      string                `json:"table"`
	SourceName string                `json:"source_name"`
	Status     string                `json:"status"`
	TotalRows  int64                 `json:"total_rows"`
	Processed  int64                 `json:"processed"`
	Succeeded  int64                 `json:"succeeded"`
	Failed     int64                 `json:"failed"`
	Success    bool                  `json:"success"`
	Errors     []string              `json:"errors"`
	Batches    []domain.BatchOutcome `json:"batches"`
	CreatedAt  time.Time             `json:"created_at"`
	StartedAt  *time.Time            `json:"started_at,omitempty"`
	FinishedAt *time.Time            `json:"finished_at,omitempty"`
}

func newSessionOutput(s *session, transformer domain.Transformer) SessionOutput {
	n := len(s.rows)
	if n > previewSize {
		n = previewSize
	}
	preview := make([]domain.StagedRecord, 0, n)
	for _, row := range s.rows[:n] {
		preview = append(preview, transformer.TransformRow(row, s.mapping))
	}

	return SessionOutput{
		RunID:      s.run.ID,
		Table:      s.run.Table.String(),
		SourceName: s.run.SourceName,
		Status:     string(s.run.Status),
		Headers:    s.mapping.Headers(),
		Columns:    s.schema.Columns,
		Required:   s.schema.Required,
		Mapping:    s.mapping.Entries(),
		RowCount:   len(s.rows),
		Preview:    preview,
	}
}

func NewRunOutput(run domain.ImportRun) RunOutput {
	errs := run.Errors
	if errs == nil {
		errs = []string{}
	}
	batches := run.Batches
	if batches == nil {
		batches = []domain.BatchOutcome{}
	}

	return RunOutput{
		ID:         run.ID,
		Table:      run.Table.String(),
		SourceName: run.SourceName,
		Status:     string(run.Status),
		TotalRows:  run.TotalRows,
		Processed:  run.Processed(),
		Succeeded:  run.SucceededCount,
		Failed:     run.FailedCount,
		Success:    run.Succeeded(),
		Errors:     errs,
		Batches:    batches,
		CreatedAt:  run.CreatedAt,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}
}
