package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sneakerscr/storefront-backend/pkg/db/models"
	"github.com/sneakerscr/storefront-backend/pkg/enums"
	pkgerrors "github.com/sneakerscr/storefront-backend/pkg/errors"
	"github.com/sneakerscr/storefront-backend/pkg/logger"
)

// SubmitInput is the payment submission for a pending order.
type SubmitInput struct {
	OrderID   uuid.UUID
	Method    enums.PaymentMethod
	UseWallet bool
	SourceID  string
}

// Service exposes the payment surface.
type Service interface {
	Methods(ctx context.Context) []MethodDTO
	Submit(ctx context.Context, sessionID string, input SubmitInput) (*ReceiptDTO, error)
}

type orderStore interface {
	FindOrder(ctx context.Context, orderID uuid.UUID, sessionID string) (*models.Order, error)
	MarkPaid(ctx context.Context, orderID uuid.UUID, method enums.PaymentMethod, walletApplied decimal.Decimal, paidAt time.Time) error
}

type cartClearer interface {
	Clear(ctx context.Context, sessionID string) error
}

var methodLabels = map[enums.PaymentMethod]string{
	enums.PaymentMethodCard:        "Credit / Debit Card",
	enums.PaymentMethodPayPal:      "PayPal",
	enums.PaymentMethodMercadoPago: "Mercado Pago",
	enums.PaymentMethodCrypto:      "Crypto",
	enums.PaymentMethodManual:      "Manual / Bank Transfer",
}

type service struct {
	orders        orderStore
	carts         cartClearer
	handler       Handler
	walletBalance decimal.Decimal
	logg          *logger.Logger
	now           func() time.Time
}

// NewService constructs a payment service instance.
func NewService(orders orderStore, carts cartClearer, handler Handler, walletBalance decimal.Decimal, logg *logger.Logger) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order store required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart clearer required")
	}
	if handler == nil {
		return nil, fmt.Errorf("payment handler required")
	}
	if walletBalance.IsNegative() {
		return nil, fmt.Errorf("wallet balance must be non-negative")
	}
	return &service{
		orders:        orders,
		carts:         carts,
		handler:       handler,
		walletBalance: walletBalance,
		logg:          logg,
		now:           time.Now,
	}, nil
}

func (s *service) Methods(_ context.Context) []MethodDTO {
	menu := enums.AllPaymentMethods()
	out := make([]MethodDTO, 0, len(menu))
	for _, method := range menu {
		out = append(out, MethodDTO{ID: method.String(), Name: methodLabels[method]})
	}
	return out
}

func (s *service) Submit(ctx context.Context, sessionID string, input SubmitInput) (*ReceiptDTO, error) {
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	order, err := s.orders.FindOrder(ctx, input.OrderID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.Status != enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is already paid")
	}

	walletApplied := decimal.Zero
	if input.UseWallet {
		walletApplied = decimal.Min(s.walletBalance, order.Total)
	}
	charged := order.Total.Sub(walletApplied)
	if charged.IsNegative() {
		charged = decimal.Zero
	}

	if charged.IsZero() && s.logg != nil {
		fields := map[string]any{"order_id": order.ID.String(), "method": input.Method.String()}
		s.logg.Warn(s.logg.WithFields(ctx, fields), "zero-dollar payment submission")
	}

	if err := s.handler.Charge(ctx, ChargeRequest{
		OrderID:  order.ID,
		Method:   input.Method,
		Amount:   charged,
		Currency: "USD",
		SourceID: input.SourceID,
	}); err != nil {
		// The order stays pending so the client can retry.
		return nil, err
	}

	paidAt := s.now().UTC()
	if err := s.orders.MarkPaid(ctx, order.ID, input.Method, walletApplied, paidAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is already paid")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order paid")
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil && s.logg != nil {
		s.logg.Error(ctx, "clear cart after payment", err)
	}

	return &ReceiptDTO{
		OrderID:       order.ID,
		Status:        enums.OrderStatusPaid.String(),
		Method:        input.Method.String(),
		WalletApplied: walletApplied.Round(2),
		ChargedTotal:  charged.Round(2),
		PaidAt:        paidAt,
	}, nil
}
