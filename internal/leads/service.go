package leads

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sneakerscr/storefront-backend/pkg/db"
	"github.com/sneakerscr/storefront-backend/pkg/db/models"
	"github.com/sneakerscr/storefront-backend/pkg/enums"
	pkgerrors "github.com/sneakerscr/storefront-backend/pkg/errors"
	"github.com/sneakerscr/storefront-backend/pkg/pagination"
)

const leadRefAttempts = 3

// ShippingInfo is the optional free-shipping registration attached to a lead.
type ShippingInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	District  string
	Canton    string
	Province  string
}

// CreateInput is the validated payload to capture a lead.
type CreateInput struct {
	ProductID   *uuid.UUID
	ProductName string
	SKU         *string
	Size        string
	Price       decimal.Decimal
	Shipping    *ShippingInfo
}

// Service captures and lists purchase-intent leads.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*LeadDTO, error)
	List(ctx context.Context, params pagination.Params) (*ListResult, error)
}

type service struct {
	repo           *Repository
	whatsappNumber string
	now            func() time.Time
}

// NewService constructs a lead service instance.
func NewService(repo *Repository, whatsappNumber string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("lead repository required")
	}
	if strings.TrimSpace(whatsappNumber) == "" {
		return nil, fmt.Errorf("whatsapp number required")
	}
	return &service{
		repo:           repo,
		whatsappNumber: whatsappNumber,
		now:            time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*LeadDTO, error) {
	if strings.TrimSpace(input.ProductName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}

	lead := &models.Lead{
		ID:          uuid.New(),
		Status:      enums.LeadStatusNoShippingInfo,
		ProductID:   input.ProductID,
		ProductName: input.ProductName,
		SKU:         input.SKU,
		Size:        input.Size,
		Price:       input.Price,
	}
	if input.Shipping != nil {
		lead.Status = enums.LeadStatusShippingAccepted
		lead.FirstName = input.Shipping.FirstName
		lead.LastName = input.Shipping.LastName
		lead.Email = input.Shipping.Email
		lead.Phone = input.Shipping.Phone
		lead.Address = input.Shipping.Address
		lead.District = input.Shipping.District
		lead.Canton = input.Shipping.Canton
		lead.Province = input.Shipping.Province
	}

	// The reference is date-scoped with a random tail; retry on the rare
	// same-day collision.
	var created *models.Lead
	var err error
	for attempt := 0; attempt < leadRefAttempts; attempt++ {
		lead.LeadRef = s.newLeadRef()
		created, err = s.repo.Create(ctx, lead)
		if err == nil {
			break
		}
		if !db.IsUniqueViolation(err, "lead_ref") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create lead")
		}
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "lead reference collision")
	}

	return NewLeadDTO(created, BuildWhatsAppLink(s.whatsappNumber, created)), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.List(ctx, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list leads")
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	result := &ListResult{Leads: make([]LeadDTO, 0, len(rows))}
	for i := range rows {
		result.Leads = append(result.Leads, *NewLeadDTO(&rows[i], BuildWhatsAppLink(s.whatsappNumber, &rows[i])))
	}
	if hasMore {
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

func (s *service) newLeadRef() string {
	return fmt.Sprintf("SRC-%s-%05d", s.now().UTC().Format("20060102"), rand.IntN(100000))
}
