package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sneakerscr/storefront-backend/pkg/db/models"
	pkgerrors "github.com/sneakerscr/storefront-backend/pkg/errors"
)

// AddItemInput is the validated payload to add a product to the cart.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// Service exposes the cart mutation and read surface.
type Service interface {
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartDTO, error)
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*CartDTO, error)
	Clear(ctx context.Context, sessionID string) error
	Get(ctx context.Context, sessionID string) (*CartDTO, error)
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	store    Store
	products productReader
	now      func() time.Time

	// Serializes read-modify-write cycles per session so rapid repeated
	// adds always merge into one line.
	locks sync.Map
}

// NewService constructs a cart service instance.
func NewService(store Store, products productReader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	return &service{
		store:    store,
		products: products,
		now:      time.Now,
	}, nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	return s.mutate(ctx, sessionID, func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ProductID == product.ID {
				lines[i].Quantity += input.Quantity
				return lines
			}
		}
		added := s.now()
		return append(lines, Line{
			ID:        fmt.Sprintf("%s-%d", product.ID, added.UnixNano()),
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			SKU:       product.SKU,
			Kind:      product.Kind,
			Quantity:  input.Quantity,
			AddedAt:   added,
		})
	})
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(lines []Line) []Line {
		return withoutProduct(lines, productID)
	})
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(lines []Line) []Line {
		if quantity <= 0 {
			return withoutProduct(lines, productID)
		}
		for i := range lines {
			if lines[i].ProductID == productID {
				lines[i].Quantity = quantity
				break
			}
		}
		// Absent product is a silent no-op.
		return lines
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	defer unlock()

	if err := s.store.Clear(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	// A cleared session gives its lock entry back so the map only tracks
	// live carts. A racing mutation simply re-creates it.
	s.locks.Delete(sessionID)
	return nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*CartDTO, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return newCartDTO(lines), nil
}

func (s *service) mutate(ctx context.Context, sessionID string, apply func([]Line) []Line) (*CartDTO, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	lines = apply(lines)
	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return newCartDTO(lines), nil
}

func (s *service) lock(sessionID string) func() {
	value, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func withoutProduct(lines []Line, productID uuid.UUID) []Line {
	out := lines[:0]
	for _, line := range lines {
		if line.ProductID != productID {
			out = append(out, line)
		}
	}
	return out
}
