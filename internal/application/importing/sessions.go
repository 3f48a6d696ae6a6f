package importing

import (
	"sync"
	"time"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

// session is the working state of one import between upload and execution.
// Only the holder returned by SessionRegistry.acquire may touch its fields.
type session struct {
	run     domain.ImportRun
	rows    []domain.Row
	schema  domain.TableSchema
	mapping domain.ColumnMapping
	busy    bool
	touched time.Time
}

// SessionRegistry keeps the open import sessions of this process.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*session)}
}

// Len reports the number of open sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) put(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.touched = time.Now()
	r.sessions[s.run.ID] = s
}

// acquire hands the session to one caller at a time. A session already held
// (for example while its import is running) reports ErrSessionBusy.
func (r *SessionRegistry) acquire(id string) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.busy {
		return nil, ErrSessionBusy
	}
	s.busy = true
	return s, nil
}

func (r *SessionRegistry) release(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.busy = false
	s.touched = time.Now()
}

func (r *SessionRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// takeIdle removes the sessions nobody holds that were last used before cutoff
// and hands them to the caller.
func (r *SessionRegistry) takeIdle(cutoff time.Time) []*session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var idle []*session
	for id, s := range r.sessions {
		if s.busy || !s.touched.Before(cutoff) {
			continue
		}
		delete(r.sessions, id)
		idle = append(idle, s)
	}
	return idle
}
