package payments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/urbanthreads/storefront-backend/pkg/db/models"
	"github.com/urbanthreads/storefront-backend/pkg/enums"
)

// Repository defines the persistence operations for payment transactions.
type Repository interface {
	Insert(ctx context.Context, txn *models.PaymentTransaction) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error)
	UpdateStatus(ctx context.Context, sessionID string, paymentStatus enums.PaymentStatus, status enums.TransactionStatus) error
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// OrderStore is the slice of the orders layer the payments service needs.
type OrderStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	MarkPaid(ctx context.Context, id uuid.UUID, sessionID string) error
}
