package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string           `gorm:"primaryKey" json:"id"`
	Name          string           `gorm:"not null" json:"name"`
	Slug          string           `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"original_price,omitempty"`
	StockQuantity int              `json:"stock_quantity"`
	IsActive      bool             `gorm:"default:true" json:"is_active"`
	IsFeatured    bool             `json:"is_featured"`
	Images        []string         `gorm:"serializer:json" json:"images"`
	CategoryID    *string          `gorm:"index" json:"category_id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
