package models

import "time"

type Service struct {
	ID              string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string    `gorm:"type:text;not null"`
	Description     *string   `gorm:"type:text"`
	Price           float64   `gorm:"type:numeric(12,2);not null"`
	DurationMinutes int       `gorm:"not null;default:60"`
	CommissionRate  *float64  `gorm:"type:numeric(5,2)"`
	Active          bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Service) TableName() string {
	return "services"
}
