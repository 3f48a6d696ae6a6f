package importing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 100
)

type GetImportRunInput struct {
	ID string
}

type GetImportRun interface {
	Execute(ctx context.Context, in GetImportRunInput) (RunOutput, error)
}

type getImportRun struct {
	runs domain.RunRepository
}

func NewGetImportRun(runs domain.RunRepository) GetImportRun {
	return &getImportRun{runs: runs}
}

func (uc *getImportRun) Execute(ctx context.Context, in GetImportRunInput) (RunOutput, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return RunOutput{}, ErrRunNotFound
	}

	run, err := uc.runs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			return RunOutput{}, ErrRunNotFound
		}
		return RunOutput{}, fmt.Errorf("%w: %v", ErrGetRun, err)
	}
	return NewRunOutput(run), nil
}

type ListImportRunsInput struct {
	Limit int
}

type ListImportRuns interface {
	Execute(ctx context.Context, in ListImportRunsInput) ([]RunOutput, error)
}

type listImportRuns struct {
	runs domain.RunRepository
}

func NewListImportRuns(runs domain.RunRepository) ListImportRuns {
	return &listImportRuns{runs: runs}
}

func (uc *listImportRuns) Execute(ctx context.Context, in ListImportRunsInput) ([]RunOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultRunLimit
	}
	if limit > maxRunLimit {
		limit = maxRunLimit
	}

	runs, err := uc.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListRuns, err)
	}

	out := make([]RunOutput, 0, len(runs))
	for _, run := range runs {
		out = append(out, NewRunOutput(run))
	}
	return out, nil
}
