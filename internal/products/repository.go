package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sneakerscr/storefront-backend/pkg/db/models"
	"github.com/sneakerscr/storefront-backend/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	Brand    string
	Featured *bool
}

// ListInput captures the inputs needed to paginate and filter the catalog.
type ListInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}

// listQuery is the repository-level slice of ListInput with the cursor
// already decoded.
type listQuery struct {
	Filters ListFilters
	Cursor  *pagination.Cursor
	Limit   int
}

// BrandCount pairs a brand with the number of catalog entries carrying it.
type BrandCount struct {
	Brand string `gorm:"column:brand"`
	Count int64  `gorm:"column:count"`
}

// Repository reads the seeded catalog. The catalog has no write paths at
// runtime, so there are none here either.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns one page of products in seed order, keyset-paginated on
// (created_at, id). The limit includes the lookahead row used to detect the
// next page.
func (r *Repository) List(ctx context.Context, q listQuery) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if brand := strings.TrimSpace(q.Filters.Brand); brand != "" {
		query = query.Where("brand = ?", brand)
	}
	if q.Filters.Featured != nil {
		query = query.Where("featured = ?", *q.Filters.Featured)
	}
	if q.Cursor != nil {
		query = query.Where(
			"(created_at > ?) OR (created_at = ? AND id > ?)",
			q.Cursor.CreatedAt, q.Cursor.CreatedAt, q.Cursor.ID,
		)
	}

	var products []models.Product
	if err := query.
		Order("created_at ASC").
		Order("id ASC").
		Limit(q.Limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// BrandCounts groups the catalog by brand.
func (r *Repository) BrandCounts(ctx context.Context) ([]BrandCount, error) {
	var counts []BrandCount
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("brand, COUNT(*) AS count").
		Group("brand").
		Order("brand ASC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}
