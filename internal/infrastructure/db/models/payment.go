package models

import (
	"time"

	"gorm.io/datatypes"
)

type Payment struct {
	ID            string         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AppointmentID *string        `gorm:"type:uuid;index"`
	CustomerID    *string        `gorm:"type:uuid;index"`
	Amount        float64        `gorm:"type:numeric(12,2);not null"`
	PaymentDate   datatypes.Date `gorm:"type:date;not null"`
	Method        string         `gorm:"type:text;not null;default:'cash'"`
	Status        string         `gorm:"type:text;not null;default:'paid'"`
	CreatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Payment) TableName() string {
	return "payments"
}
