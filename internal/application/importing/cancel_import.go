package importing

import (
	"context"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

type CancelImportInput struct {
	RunID string
}

// CancelImport abandons a session that has not started importing.
type CancelImport interface {
	Execute(ctx context.Context, in CancelImportInput) (RunOutput, error)
}

type cancelImport struct {
	sessions *SessionRegistry
	runs     domain.RunRepository
}

func NewCancelImport(sessions *SessionRegistry, runs domain.RunRepository) CancelImport {
	return &cancelImport{sessions: sessions, runs: runs}
}

func (uc *cancelImport) Execute(ctx context.Context, in CancelImportInput) (RunOutput, error) {
	s, err := uc.sessions.acquire(in.RunID)
	if err != nil {
		return RunOutput{}, err
	}

	run := s.run
	if err := run.Transition(domain.RunCancelled, time.Now()); err != nil {
		uc.sessions.release(s)
		return RunOutput{}, err
	}
	uc.sessions.remove(run.ID)

	if err := uc.runs.Save(ctx, run); err != nil {
		return NewRunOutput(run), fmt.Errorf("%w: %v", ErrSaveRun, err)
	}
	return NewRunOutput(run), nil
}
