package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/bizimport/internal/domain/importing"
	"github.com/mohammadpnp/bizimport/internal/infrastructure/db/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ImportRunRepository struct {
	db *gorm.DB
}

func NewImportRunRepository(db *gorm.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

func (r *ImportRunRepository) Save(ctx context.Context, run domain.ImportRun) error {
	row, err := toImportRunModel(run)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save import run %s: %w", run.ID, err)
	}
	return nil
}

func (r *ImportRunRepository) Get(ctx context.Context, id string) (domain.ImportRun, error) {
	var row models.ImportRun

	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ImportRun{}, domain.ErrRunNotFound
		}
		return domain.ImportRun{}, fmt.Errorf("get import run: %w", err)
	}

	return toImportRunDomain(row)
}

func (r *ImportRunRepository) ListRecent(ctx context.Context, limit int) ([]domain.ImportRun, error) {
	var rows []models.ImportRun

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}

	out := make([]domain.ImportRun, 0, len(rows))
	for _, row := range rows {
		run, err := toImportRunDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, nil
}

func toImportRunModel(run domain.ImportRun) (models.ImportRun, error) {
	errs, err := json.Marshal(nonNil(run.Errors))
	if err != nil {
		return models.ImportRun{}, fmt.Errorf("encode run errors: %w", err)
	}
	batches, err := json.Marshal(nonNil(run.Batches))
	if err != nil {
		return models.ImportRun{}, fmt.Errorf("encode run batches: %w", err)
	}

	return models.ImportRun{
		ID:             run.ID,
		TargetTable:    run.Table.String(),
		SourceName:     run.SourceName,
		Status:         string(run.Status),
		TotalRows:      run.TotalRows,
		SucceededCount: run.SucceededCount,
		FailedCount:    run.FailedCount,
		Errors:         datatypes.JSON(errs),
		Batches:        datatypes.JSON(batches),
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
		CreatedAt:      run.CreatedAt,
	}, nil
}

func toImportRunDomain(row models.ImportRun) (domain.ImportRun, error) {
	run := domain.ImportRun{
		ID:             row.ID,
		Table:          domain.TableName(row.TargetTable),
		SourceName:     row.SourceName,
		Status:         domain.RunStatus(row.Status),
		TotalRows:      row.TotalRows,
		SucceededCount: row.SucceededCount,
		FailedCount:    row.FailedCount,
		StartedAt:      row.StartedAt,
		FinishedAt:     row.FinishedAt,
		CreatedAt:      row.CreatedAt,
	}

	if len(row.Errors) > 0 {
		if err := json.Unmarshal(row.Errors, &run.Errors); err != nil {
			return domain.ImportRun{}, fmt.Errorf("decode run errors: %w", err)
		}
	}
	if len(row.Batches) > 0 {
		if err := json.Unmarshal(row.Batches, &run.Batches); err != nil {
			return domain.ImportRun{}, fmt.Errorf("decode run batches: %w", err)
		}
	}
	return run, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
