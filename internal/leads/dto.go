package leads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sneakerscr/storefront-backend/pkg/db/models"
)

// LeadDTO is the API representation of a captured lead.
type LeadDTO struct {
	ID          uuid.UUID       `json:"id"`
	LeadRef     string          `json:"lead_ref"`
	Status      string          `json:"status"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	SKU         *string         `json:"sku,omitempty"`
	Size        string          `json:"size,omitempty"`
	Price       decimal.Decimal `json:"price"`
	FirstName   string          `json:"first_name,omitempty"`
	LastName    string          `json:"last_name,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	District    string          `json:"district,omitempty"`
	Canton      string          `json:"canton,omitempty"`
	Province    string          `json:"province,omitempty"`
	WhatsAppURL string          `json:"whatsapp_url"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ListResult is a cursor-bounded page of leads, newest first.
type ListResult struct {
	Leads      []LeadDTO `json:"leads"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// NewLeadDTO maps a persisted lead onto its API shape.
func NewLeadDTO(lead *models.Lead, whatsappURL string) *LeadDTO {
	return &LeadDTO{
		ID:          lead.ID,
		LeadRef:     lead.LeadRef,
		Status:      string(lead.Status),
		ProductID:   lead.ProductID,
		ProductName: lead.ProductName,
		SKU:         lead.SKU,
		Size:        lead.Size,
		Price:       lead.Price,
		FirstName:   lead.FirstName,
		LastName:    lead.LastName,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Address:     lead.Address,
		District:    lead.District,
		Canton:      lead.Canton,
		Province:    lead.Province,
		WhatsAppURL: whatsappURL,
		CreatedAt:   lead.CreatedAt,
	}
}
