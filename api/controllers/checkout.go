package controllers

import (
	"net/http"
	"strings"

	"github.com/sneakerscr/storefront-backend/api/responses"
	"github.com/sneakerscr/storefront-backend/api/validators"
	checkoutsvc "github.com/sneakerscr/storefront-backend/internal/checkout"
	pkgerrors "github.com/sneakerscr/storefront-backend/pkg/errors"
	"github.com/sneakerscr/storefront-backend/pkg/logger"
)

type checkoutQuoteRequest struct {
	ShippingOptionID string `json:"shipping_option_id,omitempty"`
	CouponCode       string `json:"coupon_code,omitempty"`
}

type checkoutAddressRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=120"`
	LastName  string `json:"last_name" validate:"required,min=2,max=120"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"required,min=10,max=32"`
	Address   string `json:"address" validate:"required,min=5,max=500"`
	City      string `json:"city" validate:"required,min=2,max=120"`
	State     string `json:"state" validate:"required,min=2,max=120"`
	ZipCode   string `json:"zip_code" validate:"required,min=3,max=16"`
	Country   string `json:"country" validate:"required,min=2,max=120"`
}

type checkoutSubmitRequest struct {
	Address          checkoutAddressRequest `json:"address" validate:"required"`
	ShippingOptionID string                 `json:"shipping_option_id,omitempty"`
	CouponCode       string                 `json:"coupon_code,omitempty"`
}

type couponValidateRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

// CheckoutQuote previews cart totals under a coupon and shipping selection
// without creating an order.
func CheckoutQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := sessionIDOrError(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), sessionID, checkoutsvc.QuoteInput{
			ShippingOptionID: strings.TrimSpace(payload.ShippingOptionID),
			CouponCode:       strings.TrimSpace(payload.CouponCode),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// CheckoutSubmit snapshots the cart into a pending order.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := sessionIDOrError(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutSubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Submit(r.Context(), sessionID, checkoutsvc.SubmitInput{
			Address: checkoutsvc.Address{
				FirstName: validators.SanitizeString(payload.Address.FirstName, 120),
				LastName:  validators.SanitizeString(payload.Address.LastName, 120),
				Email:     validators.SanitizeString(payload.Address.Email, 254),
				Phone:     validators.SanitizeString(payload.Address.Phone, 32),
				Address:   validators.SanitizeString(payload.Address.Address, 500),
				City:      validators.SanitizeString(payload.Address.City, 120),
				State:     validators.SanitizeString(payload.Address.State, 120),
				ZipCode:   validators.SanitizeString(payload.Address.ZipCode, 16),
				Country:   validators.SanitizeString(payload.Address.Country, 120),
			},
			ShippingOptionID: strings.TrimSpace(payload.ShippingOptionID),
			CouponCode:       strings.TrimSpace(payload.CouponCode),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// CouponValidate checks a discount code and returns its percentage.
func CouponValidate(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload couponValidateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.ValidateCoupon(r.Context(), strings.TrimSpace(payload.Code))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, coupon)
	}
}

// ShippingOptions lists the configured shipping menu; the first entry is
// the default.
func ShippingOptions(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"options": svc.ShippingOptions(r.Context())})
	}
}
