package model

import (
	"time"

	"github.com/google/uuid"
)

const CampaignStatusActive = "active"

// Campaign is the opaque campaign record the seeder reads. The content model
// is owned elsewhere; only id, title and status matter here.
type Campaign struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	Title     string    `gorm:"size:255" json:"title"`
	Status    string    `gorm:"size:32;index" json:"status"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Campaign) TableName() string {
	return "campaigns"
}
