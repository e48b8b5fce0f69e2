package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sneakerscr/storefront-backend/api/responses"
	"github.com/sneakerscr/storefront-backend/api/validators"
	paymentsvc "github.com/sneakerscr/storefront-backend/internal/payments"
	"github.com/sneakerscr/storefront-backend/pkg/enums"
	pkgerrors "github.com/sneakerscr/storefront-backend/pkg/errors"
	"github.com/sneakerscr/storefront-backend/pkg/logger"
)

type paymentSubmitRequest struct {
	OrderID   string `json:"order_id" validate:"required,uuid"`
	Method    string `json:"method" validate:"required"`
	UseWallet bool   `json:"use_wallet"`
	SourceID  string `json:"source_id,omitempty"`
}

// PaymentMethods lists the selectable payment methods.
func PaymentMethods(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"methods": svc.Methods(r.Context())})
	}
}

// PaymentSubmit settles a pending order with the chosen method, optionally
// applying the store-credit wallet first.
func PaymentSubmit(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		sessionID, err := sessionIDOrError(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload paymentSubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := uuid.Parse(payload.OrderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		method, err := enums.ParsePaymentMethod(strings.TrimSpace(payload.Method))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		receipt, err := svc.Submit(r.Context(), sessionID, paymentsvc.SubmitInput{
			OrderID:   orderID,
			Method:    method,
			UseWallet: payload.UseWallet,
			SourceID:  strings.TrimSpace(payload.SourceID),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, receipt)
	}
}
