package contact

import (
	"time"

	"github.com/google/uuid"

	"github.com/sneakerscr/storefront-backend/pkg/db/models"
)

// ContactDTO is the API representation of a stored contact message.
type ContactDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Message   string    `json:"message"`
	Forwarded bool      `json:"forwarded"`
	CreatedAt time.Time `json:"created_at"`
}

func NewContactDTO(record *models.Contact) *ContactDTO {
	return &ContactDTO{
		ID:        record.ID,
		Name:      record.Name,
		Email:     record.Email,
		Phone:     record.Phone,
		Message:   record.Message,
		Forwarded: record.Forwarded,
		CreatedAt: record.CreatedAt,
	}
}
