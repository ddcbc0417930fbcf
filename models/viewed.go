package models

import "time"

// ViewedEntry records the last time a user viewed a product. Repeat views
// update ViewedAt on the existing row rather than inserting a duplicate.
type ViewedEntry struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_viewed_user_product" json:"user_id"`
	ProductID string    `gorm:"not null;uniqueIndex:idx_viewed_user_product" json:"product_id"`
	ViewedAt  time.Time `json:"viewed_at"`
}
