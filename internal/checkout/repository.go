package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sneakerscr/storefront-backend/pkg/db/models"
	"github.com/sneakerscr/storefront-backend/pkg/enums"
)

// Repository persists orders and their line-item snapshots.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateOrder inserts the order with its line items in one transaction.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindOrder loads an order with its items, scoped to the owning session.
func (r *Repository) FindOrder(ctx context.Context, orderID uuid.UUID, sessionID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ? AND session_id = ?", orderID, sessionID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkPaid flips a pending order to paid and records how it was settled.
// Returns gorm.ErrRecordNotFound when the order is not pending anymore.
func (r *Repository) MarkPaid(ctx context.Context, orderID uuid.UUID, method enums.PaymentMethod, walletApplied decimal.Decimal, paidAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, enums.OrderStatusPending).
		Updates(map[string]any{
			"status":         enums.OrderStatusPaid,
			"payment_method": method,
			"wallet_applied": walletApplied,
			"paid_at":        paidAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
