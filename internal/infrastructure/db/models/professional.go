package models

import (
	"time"

	"gorm.io/datatypes"
)

type Professional struct {
	ID             string          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FullName       string          `gorm:"type:text;not null"`
	Email          *string         `gorm:"type:text"`
	Phone          *string         `gorm:"type:text"`
	Specialty      *string         `gorm:"type:text"`
	CommissionRate *float64        `gorm:"type:numeric(5,2)"`
	HireDate       *datatypes.Date `gorm:"type:date"`
	Active         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Professional) TableName() string {
	return "professionals"
}
