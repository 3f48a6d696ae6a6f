package models

import (
	"time"

	"gorm.io/datatypes"
)

type ImportRun struct {
	ID             string         `gorm:"type:uuid;primaryKey"`
	TargetTable    string         `gorm:"type:text;not null;index"`
	SourceName     string         `gorm:"type:text;not null"`
	Status         string         `gorm:"type:text;not null"`
	TotalRows      int64          `gorm:"not null;default:0"`
	SucceededCount int64          `gorm:"not null;default:0"`
	FailedCount    int64          `gorm:"not null;default:0"`
	Errors         datatypes.JSON `gorm:"type:jsonb"`
	Batches        datatypes.JSON `gorm:"type:jsonb"`
	StartedAt      *time.Time
	FinishedAt     *time.Time
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}

func (ImportRun) TableName() string {
	return "import_runs"
}
