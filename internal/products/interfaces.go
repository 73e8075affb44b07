package products

import (
	"context"

	"github.com/urbanthreads/storefront-backend/pkg/db/models"
)

// Repository defines the persistence operations the catalog needs.
type Repository interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, products []models.Product) error
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByCategory(ctx context.Context, category string) ([]models.Product, error)
	FindByID(ctx context.Context, id int) (*models.Product, error)
}
