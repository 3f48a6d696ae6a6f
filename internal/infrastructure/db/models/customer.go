package models

import (
	"time"

	"gorm.io/datatypes"
)

type Customer struct {
	ID                 string          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FullName           string          `gorm:"type:text;not null"`
	Email              *string         `gorm:"type:text"`
	Phone              *string         `gorm:"type:text"`
	BirthDate          *datatypes.Date `gorm:"type:date"`
	Document           *string         `gorm:"type:text"`
	Address            *string         `gorm:"type:text"`
	City               *string         `gorm:"type:text"`
	Notes              *string         `gorm:"type:text"`
	MarketingChannelID *string         `gorm:"type:uuid;index"`
	CreatedAt          time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Customer) TableName() string {
	return "customers"
}
