package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sneakerscr/storefront-backend/pkg/db/models"
)

// ProductDTO is the catalog payload returned to storefront clients.
type ProductDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Brand     string          `json:"brand"`
	Featured  bool            `json:"featured"`
	Bullets   []string        `json:"bullets"`
	SKU       *string         `json:"sku,omitempty"`
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
}

// BrandDTO pairs a brand name with its catalog size.
type BrandDTO struct {
	Brand string `json:"brand"`
	Count int64  `json:"count"`
}

// ListResult is one page of the catalog plus the cursor for the next page.
type ListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Brand:     product.Brand,
		Featured:  product.Featured,
		Bullets:   append([]string{}, product.Bullets...),
		SKU:       product.SKU,
		Kind:      product.Kind.String(),
		CreatedAt: product.CreatedAt,
	}
}
