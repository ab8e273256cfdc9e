package model

import "time"

// Price mirrors one Stripe price. Amount and currency are immutable after
// creation (Stripe semantics); only metadata may change.
type Price struct {
	ID                     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderPriceID        string    `gorm:"column:provider_price_id;unique;not null;size:100;index" json:"provider_price_id"`
	ProductID              int64     `gorm:"not null;index" json:"product_id"`
	UnitAmount             int64     `gorm:"not null" json:"unit_amount"`
	Currency               string    `gorm:"not null;size:3" json:"currency"`
	RecurringInterval      *string   `gorm:"size:10" json:"recurring_interval,omitempty"`
	RecurringIntervalCount *int64    `json:"recurring_interval_count,omitempty"`
	Metadata               Metadata  `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt              time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Price) TableName() string {
	return "prices"
}
