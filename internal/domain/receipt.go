// Package domain defines the core persistence models for the application.
// These types are used by GORM for database schema mapping and are shared
// across the repository and service layers.
package domain

import "time"

// RegenReceipt represents a recorded result of a previously processed
// regeneration request, keyed by (user_id, category, key). It enables safe
// retries of the paid regeneration endpoint by returning the originally
// produced content without charging again or re-invoking the content oracle.
type RegenReceipt struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	UserID    string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_category_key,priority:1"`
	Category  string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_category_key,priority:2"`
	Key       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_category_key,priority:3"`
	Content   string    `gorm:"type:TEXT NOT NULL"`
	Charged   bool      `gorm:"type:INTEGER NOT NULL"`
	CreatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (RegenReceipt) TableName() string { return "regen_receipts" }
