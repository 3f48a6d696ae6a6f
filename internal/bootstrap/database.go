package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohammadpnp/bizimport/internal/infrastructure/db/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenDatabase connects gorm for queries and a pgx pool for batch inserts.
func OpenDatabase(ctx context.Context, databaseURL string) (*gorm.DB, *pgxpool.Pool, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		CloseDatabase(db, nil)
		return nil, nil, fmt.Errorf("create pgx pool: %w", err)
	}

	return db, pool, nil
}

func CloseDatabase(db *gorm.DB, pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Migrate creates or updates the business tables and import_runs.
func Migrate(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)
	if err := tx.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("create pgcrypto extension: %w", err)
	}
	if err := tx.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
