package models

import (
	"time"

	"gorm.io/datatypes"
)

type Appointment struct {
	ID              string          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID      string          `gorm:"type:uuid;not null;index"`
	ProfessionalID  *string         `gorm:"type:uuid;index"`
	ServiceID       *string         `gorm:"type:uuid;index"`
	AppointmentDate datatypes.Date  `gorm:"type:date;not null"`
	StartTime       *datatypes.Time `gorm:"type:time"`
	Status          string          `gorm:"type:text;not null;default:'scheduled'"`
	Price           *float64        `gorm:"type:numeric(12,2)"`
	Notes           *string         `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Appointment) TableName() string {
	return "appointments"
}
