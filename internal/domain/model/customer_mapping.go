package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerMapping maps Stripe customer IDs to local user IDs. One active
// (non-deleted) mapping per user; created lazily on first checkout.
type CustomerMapping struct {
	ID                 int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	ProviderCustomerID string         `gorm:"column:provider_customer_id;unique;not null;size:100;index" json:"provider_customer_id"`
	CustomerEmail      string         `gorm:"size:255" json:"customer_email"`
	CreatedAt          time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"default:now()" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for GORM
func (CustomerMapping) TableName() string {
	return "customer_mappings"
}
