package leads

import (
	"context"

	"gorm.io/gorm"

	"github.com/sneakerscr/storefront-backend/pkg/db/models"
	"github.com/sneakerscr/storefront-backend/pkg/pagination"
)

// Repository persists purchase-intent leads.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the lead row.
func (r *Repository) Create(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

// List returns one page of leads newest-first, keyset-paginated on
// (created_at, id). The limit includes the lookahead row.
func (r *Repository) List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Lead, error) {
	query := r.db.WithContext(ctx).Model(&models.Lead{})
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Lead
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
