package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sneakerscr/storefront-backend/pkg/db/models"
	pkgerrors "github.com/sneakerscr/storefront-backend/pkg/errors"
	"github.com/sneakerscr/storefront-backend/pkg/logger"
)

const forwardTimeout = 10 * time.Second

// CreateInput is the validated contact-form payload.
type CreateInput struct {
	Name    string
	Email   string
	Phone   *string
	Message string
}

// Service stores contact messages and forwards them to the configured inbox.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*ContactDTO, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type service struct {
	repo       *Repository
	forwardURL string
	client     httpDoer
	logger     *logger.Logger
}

// NewService constructs a contact service. An empty forwardURL disables
// forwarding; messages are only persisted.
func NewService(repo *Repository, forwardURL string, client httpDoer, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contact repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if client == nil {
		client = &http.Client{Timeout: forwardTimeout}
	}
	return &service{
		repo:       repo,
		forwardURL: forwardURL,
		client:     client,
		logger:     logg,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*ContactDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email required")
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message required")
	}

	record := &models.Contact{
		ID:      uuid.New(),
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Message: input.Message,
	}
	record, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store contact message")
	}

	if s.forwardURL != "" {
		if err := s.forward(ctx, record); err != nil {
			// The record is already stored; the caller can retry the form
			// without losing the message.
			fields := map[string]any{"contact_id": record.ID.String()}
			s.logger.Error(s.logger.WithFields(ctx, fields), "contact forward failed", err)
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "forward contact message")
		}
		if err := s.repo.MarkForwarded(ctx, record.ID); err != nil {
			fields := map[string]any{"contact_id": record.ID.String()}
			s.logger.Error(s.logger.WithFields(ctx, fields), "contact forwarded flag update failed", err)
		} else {
			record.Forwarded = true
		}
	}

	return NewContactDTO(record), nil
}

func (s *service) forward(ctx context.Context, record *models.Contact) error {
	payload, err := json.Marshal(forwardPayload{
		ID:      record.ID,
		Name:    record.Name,
		Email:   record.Email,
		Phone:   record.Phone,
		Message: record.Message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.forwardURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("contact inbox returned status %d", resp.StatusCode)
	}
	return nil
}

type forwardPayload struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   *string   `json:"phone,omitempty"`
	Message string    `json:"message"`
}
