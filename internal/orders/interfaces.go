package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/urbanthreads/storefront-backend/pkg/db/models"
)

// Repository defines the persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	MarkPaid(ctx context.Context, id uuid.UUID, sessionID string) error
}
