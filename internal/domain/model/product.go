package model

import "time"

// Product is the local mirror of a Stripe product. The external system stays
// the source of truth; rows here are denormalized for fast catalog reads.
type Product struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderProductID string    `gorm:"column:provider_product_id;unique;not null;size:100;index" json:"provider_product_id"`
	Name              string    `gorm:"not null;size:255;index" json:"name"`
	Description       string    `gorm:"size:1024" json:"description"`
	CampaignID        string    `gorm:"column:campaign_id;size:64;index" json:"campaign_id"`
	Active            bool      `gorm:"not null;default:true" json:"active"`
	Metadata          Metadata  `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt         time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time `gorm:"default:now()" json:"updated_at"`

	// Relations
	Prices []Price `gorm:"foreignKey:ProductID" json:"prices,omitempty"`
}

// TableName specifies the table name for GORM
func (Product) TableName() string {
	return "products"
}
