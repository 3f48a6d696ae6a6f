package importing

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

const DefaultBatchSize = 50

// BatchWriter submits staged records in consecutive batches, one at a time.
type BatchWriter struct {
	inserter  domain.RecordInserter
	batchSize int
}

func NewBatchWriter(inserter domain.RecordInserter, batchSize int) *BatchWriter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchWriter{inserter: inserter, batchSize: batchSize}
}

func (w *BatchWriter) BatchSize() int {
	return w.batchSize
}

// ImportRecords writes records into table and returns the finished run. A
// failed batch is counted and reported but never stops the remaining ones.
func (w *BatchWriter) ImportRecords(ctx context.Context, table domain.TableName, records []domain.StagedRecord) domain.ImportRun {
	run := domain.ImportRun{
		Table:     table,
		Status:    domain.RunImporting,
		TotalRows: int64(len(records)),
	}
	if err := w.Write(ctx, &run, records); err != nil {
		run.Status = domain.RunCancelled
		return run
	}
	run.Status = domain.RunComplete
	return run
}

// Write submits records batch by batch and folds each outcome into run. The
// next batch starts only after the previous one returned. When ctx is done no
// further batch is submitted and ctx.Err() is returned; batches already
// written stay written.
func (w *BatchWriter) Write(ctx context.Context, run *domain.ImportRun, records []domain.StagedRecord) error {
	for _, batch := range domain.Partition(records, w.batchSize) {
		if err := ctx.Err(); err != nil {
			log.Printf("import run %s: stopped before batch %d: %v", run.ID, batch.Index+1, err)
			return err
		}

		outcome := domain.BatchOutcome{Index: batch.Index, Size: len(batch.Records)}
		if err := w.inserter.InsertBatch(ctx, run.Table, batch.Records); err != nil {
			outcome.Failed = len(batch.Records)
			outcome.Error = truncateReason(fmt.Sprintf(
				"batch %d (rows %d-%d): %v",
				batch.Index+1, batch.Offset+1, batch.Offset+len(batch.Records), err,
			))
			log.Printf("import run %s: %s", run.ID, outcome.Error)
		} else {
			outcome.Succeeded = len(batch.Records)
		}

		run.RecordBatch(outcome)
	}
	return nil
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(reason[cut]) {
		cut--
	}
	return reason[:cut]
}
