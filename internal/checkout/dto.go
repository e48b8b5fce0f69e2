package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sneakerscr/storefront-backend/pkg/config"
	"github.com/sneakerscr/storefront-backend/pkg/db/models"
	"github.com/sneakerscr/storefront-backend/pkg/enums"
)

// TotalsDTO is the currency-rounded breakdown returned to clients.
type TotalsDTO struct {
	Subtotal         decimal.Decimal `json:"subtotal"`
	Discount         decimal.Decimal `json:"discount"`
	Tax              decimal.Decimal `json:"tax"`
	Shipping         decimal.Decimal `json:"shipping"`
	Total            decimal.Decimal `json:"total"`
	ShippingRequired bool            `json:"shipping_required"`
}

func newTotalsDTO(t Totals) TotalsDTO {
	return TotalsDTO{
		Subtotal:         t.Subtotal.Round(2),
		Discount:         t.Discount.Round(2),
		Tax:              t.Tax.Round(2),
		Shipping:         t.Shipping.Round(2),
		Total:            t.Total.Round(2),
		ShippingRequired: t.ShippingRequired,
	}
}

// QuoteDTO previews totals for a shipping/coupon selection without an order.
type QuoteDTO struct {
	Totals           TotalsDTO `json:"totals"`
	ShippingOptionID string    `json:"shipping_option_id"`
	CouponCode       string    `json:"coupon_code,omitempty"`
	ItemCount        int       `json:"item_count"`
}

// CouponDTO confirms a validated coupon and its discount rate in percent.
type CouponDTO struct {
	Code    string          `json:"code"`
	Percent decimal.Decimal `json:"percent"`
}

// ShippingOptionDTO is one entry of the shipping menu.
type ShippingOptionDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	EstimatedDays string          `json:"estimated_days"`
	Default       bool            `json:"default"`
}

func newShippingOptionDTOs(options []config.ShippingOption) []ShippingOptionDTO {
	out := make([]ShippingOptionDTO, 0, len(options))
	for i, opt := range options {
		out = append(out, ShippingOptionDTO{
			ID:            opt.ID,
			Name:          opt.Name,
			Price:         opt.Price.Round(2),
			EstimatedDays: opt.EstimatedDays,
			Default:       i == 0,
		})
	}
	return out
}

// OrderLineDTO is the snapshot of one line inside a created order.
type OrderLineDTO struct {
	LineID    string          `json:"line_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	SKU       *string         `json:"sku,omitempty"`
	Kind      string          `json:"kind"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderDTO is the checkout result handed to the payment step.
type OrderDTO struct {
	ID               uuid.UUID      `json:"id"`
	Status           string         `json:"status"`
	ShippingOptionID string         `json:"shipping_option_id"`
	CouponCode       *string        `json:"coupon_code,omitempty"`
	Totals           TotalsDTO      `json:"totals"`
	Items            []OrderLineDTO `json:"items"`
	CreatedAt        time.Time      `json:"created_at"`
}

// NewOrderDTO builds the response payload from the persisted order.
func NewOrderDTO(order *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:               order.ID,
		Status:           order.Status.String(),
		ShippingOptionID: order.ShippingOptionID,
		CouponCode:       order.CouponCode,
		Totals: TotalsDTO{
			Subtotal:         order.Subtotal,
			Discount:         order.Discount,
			Tax:              order.Tax,
			Shipping:         order.Shipping,
			Total:            order.Total,
			ShippingRequired: !order.Shipping.IsZero() || hasPhysicalItem(order),
		},
		Items:     make([]OrderLineDTO, 0, len(order.Items)),
		CreatedAt: order.CreatedAt,
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, OrderLineDTO{
			LineID:    item.LineID,
			ProductID: item.ProductID,
			Name:      item.Name,
			SKU:       item.SKU,
			Kind:      item.Kind.String(),
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}
	return dto
}

func hasPhysicalItem(order *models.Order) bool {
	for _, item := range order.Items {
		if item.Kind != enums.ProductKindDigital {
			return true
		}
	}
	return false
}
