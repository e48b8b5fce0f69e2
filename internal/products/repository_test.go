package product

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sneakerscr/storefront-backend/pkg/db/models"
	"github.com/sneakerscr/storefront-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func seedProduct(t *testing.T, db *gorm.DB, name, brand string, featured bool, createdAt time.Time) *models.Product {
	t.Helper()
	p := &models.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     decimal.NewFromFloat(79.99),
		Image:     "https://cdn.example.com/" + name + ".jpg",
		Brand:     brand,
		Featured:  featured,
		Bullets:   []string{"Lightweight", "True to size"},
		Kind:      enums.ProductKindPhysical,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestRepositoryListFiltersByBrand(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	base := time.Now().Add(-time.Hour)

	seedProduct(t, db, "air-zoom", "Nike", true, base)
	seedProduct(t, db, "ultraboost", "Adidas", false, base.Add(time.Minute))
	seedProduct(t, db, "pegasus", "Nike", false, base.Add(2*time.Minute))

	rows, err := repo.List(context.Background(), listQuery{
		Filters: ListFilters{Brand: "Nike"},
		Limit:   10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Equal(t, "Nike", row.Brand)
	}
}

func TestRepositoryListFiltersByFeatured(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	base := time.Now().Add(-time.Hour)

	seedProduct(t, db, "air-zoom", "Nike", true, base)
	seedProduct(t, db, "ultraboost", "Adidas", false, base.Add(time.Minute))

	featured := true
	rows, err := repo.List(context.Background(), listQuery{
		Filters: ListFilters{Featured: &featured},
		Limit:   10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "air-zoom", rows[0].Name)
}

func TestRepositoryListKeysetOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	base := time.Now().Add(-time.Hour)

	first := seedProduct(t, db, "one", "Nike", false, base)
	seedProduct(t, db, "two", "Nike", false, base.Add(time.Minute))
	seedProduct(t, db, "three", "Nike", false, base.Add(2*time.Minute))

	rows, err := repo.List(context.Background(), listQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, first.ID, rows[0].ID)
	for i := 1; i < len(rows); i++ {
		require.False(t, rows[i].CreatedAt.Before(rows[i-1].CreatedAt))
	}
}

func TestRepositoryBrandCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	base := time.Now().Add(-time.Hour)

	seedProduct(t, db, "one", "Nike", false, base)
	seedProduct(t, db, "two", "Nike", false, base.Add(time.Minute))
	seedProduct(t, db, "three", "Adidas", false, base.Add(2*time.Minute))

	counts, err := repo.BrandCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	// Ordered alphabetically.
	require.Equal(t, "Adidas", counts[0].Brand)
	require.EqualValues(t, 1, counts[0].Count)
	require.Equal(t, "Nike", counts[1].Brand)
	require.EqualValues(t, 2, counts[1].Count)
}
