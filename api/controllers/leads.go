package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sneakerscr/storefront-backend/api/responses"
	"github.com/sneakerscr/storefront-backend/api/validators"
	leadsvc "github.com/sneakerscr/storefront-backend/internal/leads"
	pkgerrors "github.com/sneakerscr/storefront-backend/pkg/errors"
	"github.com/sneakerscr/storefront-backend/pkg/logger"
	"github.com/sneakerscr/storefront-backend/pkg/pagination"
)

type leadShippingRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=120"`
	LastName  string `json:"last_name" validate:"required,min=2,max=120"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"required,min=10,max=32"`
	Address   string `json:"address" validate:"required,min=5,max=500"`
	District  string `json:"district" validate:"required,min=2,max=120"`
	Canton    string `json:"canton" validate:"required,min=2,max=120"`
	Province  string `json:"province" validate:"required,min=2,max=120"`
}

type leadCreateRequest struct {
	ProductID   *string              `json:"product_id,omitempty" validate:"omitempty,uuid"`
	ProductName string               `json:"product_name" validate:"required,max=300"`
	SKU         *string              `json:"sku,omitempty" validate:"omitempty,max=120"`
	Size        string               `json:"size,omitempty" validate:"omitempty,max=32"`
	Price       decimal.Decimal      `json:"price"`
	Shipping    *leadShippingRequest `json:"shipping,omitempty"`
}

// LeadCreate captures a purchase-intent lead and returns the prefilled
// WhatsApp hand-off link.
func LeadCreate(svc leadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lead service unavailable"))
			return
		}

		var payload leadCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := leadsvc.CreateInput{
			ProductName: validators.SanitizeString(payload.ProductName, 300),
			Size:        validators.SanitizeString(payload.Size, 32),
			Price:       payload.Price,
		}
		if payload.ProductID != nil {
			parsed, err := uuid.Parse(strings.TrimSpace(*payload.ProductID))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
				return
			}
			input.ProductID = &parsed
		}
		if payload.SKU != nil {
			sku := validators.SanitizeString(*payload.SKU, 120)
			input.SKU = &sku
		}
		if payload.Shipping != nil {
			input.Shipping = &leadsvc.ShippingInfo{
				FirstName: validators.SanitizeString(payload.Shipping.FirstName, 120),
				LastName:  validators.SanitizeString(payload.Shipping.LastName, 120),
				Email:     validators.SanitizeString(payload.Shipping.Email, 254),
				Phone:     validators.SanitizeString(payload.Shipping.Phone, 32),
				Address:   validators.SanitizeString(payload.Shipping.Address, 500),
				District:  validators.SanitizeString(payload.Shipping.District, 120),
				Canton:    validators.SanitizeString(payload.Shipping.Canton, 120),
				Province:  validators.SanitizeString(payload.Shipping.Province, 120),
			}
		}

		lead, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, lead)
	}
}

// LeadList serves the captured leads newest first for manual follow-up.
func LeadList(svc leadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lead service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
