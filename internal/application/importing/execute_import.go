package importing

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

type ExecuteImportInput struct {
	RunID string
	// DryRun stages and validates every row without writing; the run ends cancelled.
	DryRun bool
}

// ExecuteImport transforms the rows of a session with its current mapping and
// writes them batch by batch. The session is discarded once the run ends.
type ExecuteImport interface {
	Execute(ctx context.Context, in ExecuteImportInput) (RunOutput, error)
}

type executeImport struct {
	sessions    *SessionRegistry
	runs        domain.RunRepository
	writer      *BatchWriter
	transformer domain.Transformer
}

func NewExecuteImport(sessions *SessionRegistry, runs domain.RunRepository, writer *BatchWriter, transformer domain.Transformer) ExecuteImport {
	return &executeImport{
		sessions:    sessions,
		runs:        runs,
		writer:      writer,
		transformer: transformer,
	}
}

func (uc *executeImport) Execute(ctx context.Context, in ExecuteImportInput) (RunOutput, error) {
	s, err := uc.sessions.acquire(in.RunID)
	if err != nil {
		return RunOutput{}, err
	}

	if in.DryRun {
		return uc.dryRun(ctx, s)
	}

	run := s.run
	if err := run.Transition(domain.RunImporting, time.Now()); err != nil {
		uc.sessions.release(s)
		return RunOutput{}, err
	}
	if err := uc.runs.Save(ctx, run); err != nil {
		uc.sessions.release(s)
		return RunOutput{}, fmt.Errorf("%w: %v", ErrSaveRun, err)
	}
	defer uc.sessions.remove(run.ID)

	records := StageRecords(&run, s.rows, s.mapping, s.schema, uc.transformer)

	final := domain.RunComplete
	if err := uc.writer.Write(ctx, &run, records); err != nil {
		final = domain.RunCancelled
	}
	if err := run.Transition(final, time.Now()); err != nil {
		return RunOutput{}, err
	}

	log.Printf("import run %s finished: status=%s succeeded=%d failed=%d",
		run.ID, run.Status, run.SucceededCount, run.FailedCount)

	if err := uc.runs.Save(context.WithoutCancel(ctx), run); err != nil {
		return NewRunOutput(run), fmt.Errorf("%w: %v", ErrSaveRun, err)
	}

	return NewRunOutput(run), nil
}

func (uc *executeImport) dryRun(ctx context.Context, s *session) (RunOutput, error) {
	defer uc.sessions.remove(s.run.ID)

	run := s.run
	StageRecords(&run, s.rows, s.mapping, s.schema, uc.transformer)
	if err := run.Transition(domain.RunCancelled, time.Now()); err != nil {
		return RunOutput{}, err
	}

	if err := uc.runs.Save(context.WithoutCancel(ctx), run); err != nil {
		return NewRunOutput(run), fmt.Errorf("%w: %v", ErrSaveRun, err)
	}
	return NewRunOutput(run), nil
}

// StageRecords transforms rows and keeps the records that carry every required
// column. Rejected rows are counted as failures on run, numbered from 1.
func StageRecords(run *domain.ImportRun, rows []domain.Row, mapping domain.ColumnMapping, schema domain.TableSchema, transformer domain.Transformer) []domain.StagedRecord {
	records := make([]domain.StagedRecord, 0, len(rows))
	for i, row := range rows {
		record := transformer.TransformRow(row, mapping)
		if err := domain.ValidateRecord(record, schema); err != nil {
			run.RecordRowFailure(fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		records = append(records, record)
	}
	return records
}
