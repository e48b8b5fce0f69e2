package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MethodDTO is one entry of the payment method menu.
type MethodDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ReceiptDTO reports a settled payment.
type ReceiptDTO struct {
	OrderID       uuid.UUID       `json:"order_id"`
	Status        string          `json:"status"`
	Method        string          `json:"method"`
	WalletApplied decimal.Decimal `json:"wallet_applied"`
	ChargedTotal  decimal.Decimal `json:"charged_total"`
	PaidAt        time.Time       `json:"paid_at"`
}
