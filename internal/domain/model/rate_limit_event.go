package model

import "time"

// RateLimitEvent records one request for the sliding-window limiter, keyed by
// (name, identifier).
type RateLimitEvent struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"not null;size:100;index:idx_rate_limit_key" json:"name"`
	Identifier string    `gorm:"not null;size:100;index:idx_rate_limit_key" json:"identifier"`
	Timestamp  time.Time `gorm:"not null;index:idx_rate_limit_key" json:"timestamp"`
}

// TableName specifies the table name for GORM
func (RateLimitEvent) TableName() string {
	return "rate_limit_events"
}
