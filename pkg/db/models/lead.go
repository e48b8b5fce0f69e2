package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sneakerscr/storefront-backend/pkg/enums"
)

// Lead is a captured purchase-intent record kept for manual follow-up.
type Lead struct {
	ID      uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	LeadRef string           `gorm:"column:lead_ref;not null;uniqueIndex"`
	Status  enums.LeadStatus `gorm:"column:status;not null"`

	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
	Email     string `gorm:"column:email"`
	Phone     string `gorm:"column:phone"`
	Address   string `gorm:"column:address"`
	District  string `gorm:"column:district"`
	Canton    string `gorm:"column:canton"`
	Province  string `gorm:"column:province"`

	ProductID   *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	ProductName string          `gorm:"column:product_name;not null"`
	SKU         *string         `gorm:"column:sku"`
	Size        string          `gorm:"column:size"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// Contact is a free-text prospect message from the contact form.
type Contact struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null"`
	Phone     *string   `gorm:"column:phone"`
	Message   string    `gorm:"column:message;not null"`
	Forwarded bool      `gorm:"column:forwarded;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
