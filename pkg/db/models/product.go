package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sneakerscr/storefront-backend/pkg/enums"
)

// Product is one catalog entry. Rows come from the seed migration and are
// read-only at runtime.
type Product struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Name      string            `gorm:"column:name;not null"`
	Price     decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null"`
	Image     string            `gorm:"column:image;not null"`
	Brand     string            `gorm:"column:brand;not null"`
	Featured  bool              `gorm:"column:featured;not null;default:false"`
	Bullets   []string          `gorm:"column:bullets;serializer:json"`
	SKU       *string           `gorm:"column:sku"`
	Kind      enums.ProductKind `gorm:"column:kind;not null;default:'physical'"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
