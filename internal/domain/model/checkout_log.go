package model

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutLog is an append-only audit row, one per checkout attempt
// regardless of outcome.
type CheckoutLog struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Success      bool      `gorm:"not null" json:"success"`
	ErrorMessage *string   `gorm:"size:1024" json:"error_message,omitempty"`
	Timestamp    time.Time `gorm:"not null;default:now()" json:"timestamp"`
}

// TableName specifies the table name for GORM
func (CheckoutLog) TableName() string {
	return "checkout_logs"
}
