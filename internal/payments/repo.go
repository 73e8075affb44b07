package payments

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/urbanthreads/storefront-backend/pkg/db/models"
	"github.com/urbanthreads/storefront-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a payments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, txn *models.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *repository) FindBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	var txn models.PaymentTransaction
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&txn).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *repository) UpdateStatus(ctx context.Context, sessionID string, paymentStatus enums.PaymentStatus, status enums.TransactionStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.PaymentTransaction{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]any{
			"payment_status": paymentStatus,
			"status":         status,
		}).Error
}

// ExpireStale marks initiated transactions older than the cutoff as
// expired. Paid sessions are never touched.
func (r *repository) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PaymentTransaction{}).
		Where("status = ?", enums.TransactionStatusInitiated).
		Where("payment_status <> ?", enums.PaymentStatusPaid).
		Where("created_at < ?", cutoff).
		Update("status", enums.TransactionStatusExpired)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
