package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sneakerscr/storefront-backend/pkg/enums"
)

// ChargeRequest carries the finalized amount for one payment attempt.
type ChargeRequest struct {
	OrderID  uuid.UUID
	Method   enums.PaymentMethod
	Amount   decimal.Decimal
	Currency string
	SourceID string
}

// Handler settles a charge with whatever gateway backs it. A rejection
// leaves the order payable so the client may retry.
type Handler interface {
	Name() string
	Charge(ctx context.Context, req ChargeRequest) error
}

// StubHandler accepts every charge. It backs local development and any
// deployment without gateway credentials.
type StubHandler struct{}

func NewStubHandler() *StubHandler {
	return &StubHandler{}
}

func (h *StubHandler) Name() string {
	return "stub"
}

func (h *StubHandler) Charge(context.Context, ChargeRequest) error {
	return nil
}
