package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sneakerscr/storefront-backend/internal/cart"
	"github.com/sneakerscr/storefront-backend/pkg/config"
	"github.com/sneakerscr/storefront-backend/pkg/db/models"
	"github.com/sneakerscr/storefront-backend/pkg/enums"
	pkgerrors "github.com/sneakerscr/storefront-backend/pkg/errors"
)

// QuoteInput selects the knobs for a totals preview.
type QuoteInput struct {
	ShippingOptionID string
	CouponCode       string
}

// Address is the validated shipping destination captured at submit time.
type Address struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
	Country   string
}

// SubmitInput is the full checkout submission.
type SubmitInput struct {
	Address          Address
	ShippingOptionID string
	CouponCode       string
}

// Service exposes the checkout surface: totals previews, coupon and
// shipping lookups, and order creation.
type Service interface {
	Quote(ctx context.Context, sessionID string, input QuoteInput) (*QuoteDTO, error)
	Submit(ctx context.Context, sessionID string, input SubmitInput) (*OrderDTO, error)
	ValidateCoupon(ctx context.Context, code string) (*CouponDTO, error)
	ShippingOptions(ctx context.Context) []ShippingOptionDTO
}

type cartReader interface {
	Get(ctx context.Context, sessionID string) (*cart.CartDTO, error)
}

type service struct {
	carts    cartReader
	orders   *Repository
	coupons  *CouponPolicy
	shipping *ShippingPolicy
	taxRate  decimal.Decimal
}

// NewService constructs a checkout service instance.
func NewService(carts cartReader, orders *Repository, coupons *CouponPolicy, shipping *ShippingPolicy, taxRate decimal.Decimal) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if coupons == nil {
		return nil, fmt.Errorf("coupon policy required")
	}
	if shipping == nil {
		return nil, fmt.Errorf("shipping policy required")
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must be non-negative")
	}
	return &service{
		carts:    carts,
		orders:   orders,
		coupons:  coupons,
		shipping: shipping,
		taxRate:  taxRate,
	}, nil
}

func (s *service) Quote(ctx context.Context, sessionID string, input QuoteInput) (*QuoteDTO, error) {
	lines, option, discountRate, err := s.resolve(ctx, sessionID, input.ShippingOptionID, input.CouponCode)
	if err != nil {
		return nil, err
	}

	totals := ComputeTotals(lines.Items, discountRate, s.taxRate, option.Price)
	return &QuoteDTO{
		Totals:           newTotalsDTO(totals),
		ShippingOptionID: option.ID,
		CouponCode:       normalizeCoupon(input.CouponCode),
		ItemCount:        lines.ItemCount,
	}, nil
}

func (s *service) Submit(ctx context.Context, sessionID string, input SubmitInput) (*OrderDTO, error) {
	lines, option, discountRate, err := s.resolve(ctx, sessionID, input.ShippingOptionID, input.CouponCode)
	if err != nil {
		return nil, err
	}

	totals := ComputeTotals(lines.Items, discountRate, s.taxRate, option.Price)

	order := &models.Order{
		ID:               uuid.New(),
		SessionID:        sessionID,
		FirstName:        input.Address.FirstName,
		LastName:         input.Address.LastName,
		Email:            input.Address.Email,
		Phone:            input.Address.Phone,
		Address:          input.Address.Address,
		City:             input.Address.City,
		State:            input.Address.State,
		ZipCode:          input.Address.ZipCode,
		Country:          input.Address.Country,
		ShippingOptionID: option.ID,
		Subtotal:         totals.Subtotal.Round(2),
		Discount:         totals.Discount.Round(2),
		Tax:              totals.Tax.Round(2),
		Shipping:         totals.Shipping.Round(2),
		Total:            totals.Total.Round(2),
		Status:           enums.OrderStatusPending,
		WalletApplied:    decimal.Zero,
	}
	if code := normalizeCoupon(input.CouponCode); code != "" {
		order.CouponCode = &code
	}

	for _, line := range lines.Items {
		kind, err := enums.ParseProductKind(line.Kind)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "corrupt cart line")
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		order.Items = append(order.Items, models.OrderLineItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			LineID:    line.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			SKU:       line.SKU,
			Kind:      kind,
			UnitPrice: line.Price,
			Quantity:  line.Quantity,
			LineTotal: line.Price.Mul(qty).Round(2),
		})
	}

	created, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return NewOrderDTO(created), nil
}

func (s *service) ValidateCoupon(_ context.Context, code string) (*CouponDTO, error) {
	if strings.TrimSpace(code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code required")
	}
	rate, err := s.coupons.Resolve(code)
	if err != nil {
		return nil, err
	}
	return &CouponDTO{
		Code:    normalizeCoupon(code),
		Percent: rate.Mul(decimal.NewFromInt(100)),
	}, nil
}

func (s *service) ShippingOptions(_ context.Context) []ShippingOptionDTO {
	return newShippingOptionDTOs(s.shipping.Options())
}

// resolve loads the session cart and resolves the shipping and coupon
// selections shared by Quote and Submit. An empty cart is a validation
// error for both.
func (s *service) resolve(ctx context.Context, sessionID, shippingOptionID, couponCode string) (*cart.CartDTO, config.ShippingOption, decimal.Decimal, error) {
	var none config.ShippingOption

	dto, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, none, decimal.Zero, err
	}
	if len(dto.Items) == 0 {
		return nil, none, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	option, err := s.shipping.Resolve(shippingOptionID)
	if err != nil {
		return nil, none, decimal.Zero, err
	}
	discountRate, err := s.coupons.Resolve(couponCode)
	if err != nil {
		return nil, none, decimal.Zero, err
	}
	return dto, option, discountRate, nil
}

func normalizeCoupon(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
