package importing

import (
	"fmt"
	"time"
)

// MaxStoredErrors bounds the messages kept on a run; counters stay exact.
const MaxStoredErrors = 100

type RunStatus string

const (
	RunIdle      RunStatus = "idle"
	RunUploading RunStatus = "uploading"
	RunMapping   RunStatus = "mapping"
	RunImporting RunStatus = "importing"
	RunComplete  RunStatus = "complete"
	RunCancelled RunStatus = "cancelled"
)

var runTransitions = map[RunStatus][]RunStatus{
	RunIdle:      {RunUploading, RunCancelled},
	RunUploading: {RunMapping, RunCancelled},
	RunMapping:   {RunImporting, RunCancelled},
	RunImporting: {RunComplete, RunCancelled},
}

// Terminal reports whether no further transition is possible.
func (s RunStatus) Terminal() bool {
	return s == RunComplete || s == RunCancelled
}

// ImportRun aggregates every batch of one user-initiated import.
type ImportRun struct {
	ID             string
	Table          TableName
	SourceName     string
	Status         RunStatus
	TotalRows      int64
	SucceededCount int64
	FailedCount    int64
	Errors         []string
	Batches        []BatchOutcome
	CreatedAt      time.Time
	StartedAt      *time.Time
	FinishedAt     *time.Time
}

func NewImportRun(id string, table TableName, sourceName string, now time.Time) ImportRun {
	return ImportRun{
		ID:         id,
		Table:      table,
		SourceName: sourceName,
		Status:     RunIdle,
		CreatedAt:  now,
	}
}

// Transition moves the run along idle → uploading → mapping → importing →
// complete. Any non-terminal state may move to cancelled.
func (r *ImportRun) Transition(to RunStatus, now time.Time) error {
	for _, allowed := range runTransitions[r.Status] {
		if allowed != to {
			continue
		}
		r.Status = to
		switch to {
		case RunImporting:
			r.StartedAt = &now
		case RunComplete, RunCancelled:
			r.FinishedAt = &now
		}
		return nil
	}
	return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, r.Status, to)
}

// Processed is the number of rows that reached a final outcome.
func (r ImportRun) Processed() int64 {
	return r.SucceededCount + r.FailedCount
}

// Succeeded reports a completed run with no failed rows.
func (r ImportRun) Succeeded() bool {
	return r.Status == RunComplete && r.FailedCount == 0
}

// RecordRowFailure counts a row rejected before submission.
func (r *ImportRun) RecordRowFailure(message string) {
	r.FailedCount++
	r.appendError(message)
}

// RecordBatch folds the outcome of one submitted batch into the totals.
func (r *ImportRun) RecordBatch(outcome BatchOutcome) {
	r.SucceededCount += int64(outcome.Succeeded)
	r.FailedCount += int64(outcome.Failed)
	if outcome.Error != "" {
		r.appendError(outcome.Error)
	}
	r.Batches = append(r.Batches, outcome)
}

func (r *ImportRun) appendError(message string) {
	if len(r.Errors) < MaxStoredErrors {
		r.Errors = append(r.Errors, message)
	}
}

// Batch is one chunk of records submitted together.
type Batch struct {
	Index   int
	Offset  int
	Records []StagedRecord
}

// BatchOutcome is the result of submitting one Batch.
type BatchOutcome struct {
	Index     int    `json:"index"`
	Size      int    `json:"size"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Error     string `json:"error,omitempty"`
}

// Partition splits records into consecutive batches of at most size records.
func Partition(records []StagedRecord, size int) []Batch {
	if size <= 0 {
		size = 1
	}

	batches := make([]Batch, 0, (len(records)+size-1)/size)
	for offset := 0; offset < len(records); offset += size {
		end := offset + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, Batch{
			Index:   len(batches),
			Offset:  offset,
			Records: records[offset:end:end],
		})
	}
	return batches
}
