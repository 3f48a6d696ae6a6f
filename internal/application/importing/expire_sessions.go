package importing

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

type ExpireSessionsInput struct {
	IdleFor time.Duration
	// Now defaults to time.Now().
	Now time.Time
}

// ExpireSessions cancels the sessions left untouched for longer than IdleFor
// and records their runs as cancelled. It returns how many were expired.
type ExpireSessions interface {
	Execute(ctx context.Context, in ExpireSessionsInput) (int, error)
}

type expireSessions struct {
	sessions *SessionRegistry
	runs     domain.RunRepository
}

func NewExpireSessions(sessions *SessionRegistry, runs domain.RunRepository) ExpireSessions {
	return &expireSessions{sessions: sessions, runs: runs}
}

func (uc *expireSessions) Execute(ctx context.Context, in ExpireSessionsInput) (int, error) {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	idle := uc.sessions.takeIdle(now.Add(-in.IdleFor))

	var firstErr error
	for _, s := range idle {
		run := s.run
		if err := run.Transition(domain.RunCancelled, now); err != nil {
			log.Printf("import run %s: expire: %v", run.ID, err)
			continue
		}
		if err := uc.runs.Save(ctx, run); err != nil {
			log.Printf("import run %s: save expired run: %v", run.ID, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: %v", ErrSaveRun, err)
			}
			continue
		}
		log.Printf("import run %s: session expired after %s idle", run.ID, in.IdleFor)
	}

	return len(idle), firstErr
}
