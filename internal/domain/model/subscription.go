package model

import (
	"database/sql/driver"
	"time"
)

// SubscriptionStatus represents the status of a subscription placeholder
type SubscriptionStatus string

const (
	SubscriptionStatusNotStarted SubscriptionStatus = "not_started"
	SubscriptionStatusActive     SubscriptionStatus = "active"
	SubscriptionStatusCanceled   SubscriptionStatus = "canceled"
)

// Scan implements sql.Scanner interface
func (s *SubscriptionStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = SubscriptionStatus(v)
	case []byte:
		*s = SubscriptionStatus(v)
	default:
		*s = SubscriptionStatusNotStarted
	}
	return nil
}

// Value implements driver.Valuer interface
func (s SubscriptionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Subscription is the placeholder row created before the first subscription
// checkout completes. Webhook-driven lifecycle updates are out of scope here;
// the row only marks that a subscription flow was started for the customer.
type Subscription struct {
	ID                 int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderCustomerID string             `gorm:"column:provider_customer_id;not null;size:100;index" json:"provider_customer_id"`
	Status             SubscriptionStatus `gorm:"not null;default:'not_started'" json:"status"`
	CreatedAt          time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}
