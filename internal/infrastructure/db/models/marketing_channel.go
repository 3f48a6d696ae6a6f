package models

import (
	"time"

	"gorm.io/datatypes"
)

type MarketingChannel struct {
	ID          string          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"type:text;not null"`
	Description *string         `gorm:"type:text"`
	Cost        *float64        `gorm:"type:numeric(12,2)"`
	StartDate   *datatypes.Date `gorm:"type:date"`
	EndDate     *datatypes.Date `gorm:"type:date"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (MarketingChannel) TableName() string {
	return "marketing_channels"
}
