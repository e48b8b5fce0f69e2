package payments

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sneakerscr/storefront-backend/pkg/enums"
	pkgerrors "github.com/sneakerscr/storefront-backend/pkg/errors"
	"github.com/sneakerscr/storefront-backend/pkg/square"
)

// SquareHandler settles card payments through the Square sandbox. The other
// menu methods settle out of band, so it accepts them without a remote call.
type SquareHandler struct {
	client *square.Client
}

func NewSquareHandler(client *square.Client) (*SquareHandler, error) {
	if client == nil {
		return nil, fmt.Errorf("square client required")
	}
	return &SquareHandler{client: client}, nil
}

func (h *SquareHandler) Name() string {
	return "square"
}

func (h *SquareHandler) Charge(ctx context.Context, req ChargeRequest) error {
	if req.Method != enums.PaymentMethodCard {
		return nil
	}
	// Wallet-covered orders have nothing left to charge.
	if !req.Amount.IsPositive() {
		return nil
	}
	if req.SourceID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "card source is required")
	}

	cents := req.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	_, err := h.client.CreatePayment(ctx, square.PaymentCreateParams{
		AmountCents:    cents,
		Currency:       req.Currency,
		SourceID:       req.SourceID,
		IdempotencyKey: fmt.Sprintf("order-%s", req.OrderID),
		ReferenceID:    req.OrderID.String(),
	})
	return err
}
