package importing

import (
	"context"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

type UpdateMappingInput struct {
	RunID  string
	Header string
	Column string
}

type UpdateMapping interface {
	Execute(ctx context.Context, in UpdateMappingInput) (SessionOutput, error)
}

type updateMapping struct {
	sessions    *SessionRegistry
	transformer domain.Transformer
}

func NewUpdateMapping(sessions *SessionRegistry, transformer domain.Transformer) UpdateMapping {
	return &updateMapping{sessions: sessions, transformer: transformer}
}

func (uc *updateMapping) Execute(ctx context.Context, in UpdateMappingInput) (SessionOutput, error) {
	s, err := uc.sessions.acquire(in.RunID)
	if err != nil {
		return SessionOutput{}, err
	}
	defer uc.sessions.release(s)

	if err := s.mapping.SetMapping(in.Header, in.Column); err != nil {
		return SessionOutput{}, err
	}

	return newSessionOutput(s, uc.transformer), nil
}
