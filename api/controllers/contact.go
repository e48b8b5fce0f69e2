package controllers

import (
	"net/http"

	"github.com/sneakerscr/storefront-backend/api/responses"
	"github.com/sneakerscr/storefront-backend/api/validators"
	contactsvc "github.com/sneakerscr/storefront-backend/internal/contact"
	pkgerrors "github.com/sneakerscr/storefront-backend/pkg/errors"
	"github.com/sneakerscr/storefront-backend/pkg/logger"
)

type contactCreateRequest struct {
	Name    string  `json:"name" validate:"required,max=160"`
	Email   string  `json:"email" validate:"required,email,max=254"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Message string  `json:"message" validate:"required,max=4000"`
}

// ContactCreate stores a contact-form message and forwards it to the
// configured inbox.
func ContactCreate(svc contactsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		var payload contactCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := contactsvc.CreateInput{
			Name:    validators.SanitizeString(payload.Name, 160),
			Email:   validators.SanitizeString(payload.Email, 254),
			Message: validators.SanitizeString(payload.Message, 4000),
		}
		if payload.Phone != nil {
			phone := validators.SanitizeString(*payload.Phone, 32)
			input.Phone = &phone
		}

		message, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, message)
	}
}
