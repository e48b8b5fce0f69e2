package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineDTO is the response shape of one cart line.
type LineDTO struct {
	ID        string          `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	SKU       *string         `json:"sku,omitempty"`
	Kind      string          `json:"kind"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

// CartDTO carries the lines plus the derived aggregates. Total and item
// count are computed on read, never stored.
type CartDTO struct {
	Items     []LineDTO       `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func newCartDTO(lines []Line) *CartDTO {
	dto := &CartDTO{
		Items: make([]LineDTO, 0, len(lines)),
		Total: decimal.Zero,
	}
	for _, line := range lines {
		dto.Items = append(dto.Items, LineDTO{
			ID:        line.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Image:     line.Image,
			SKU:       line.SKU,
			Kind:      line.Kind.String(),
			Quantity:  line.Quantity,
			AddedAt:   line.AddedAt,
		})
		dto.Total = dto.Total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		dto.ItemCount += line.Quantity
	}
	dto.Total = dto.Total.Round(2)
	return dto
}
