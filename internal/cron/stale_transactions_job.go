package cron

import (
	"context"
	"errors"
	"time"

	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

// staleTransactionStore expires abandoned payment transactions.
type staleTransactionStore interface {
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// StaleTransactionsJob expires payment transactions whose checkout was
// never completed. Hosted sessions lapse on the provider side after a
// day, so the local record follows.
type StaleTransactionsJob struct {
	store  staleTransactionStore
	maxAge time.Duration
	logg   *logger.Logger
	now    func() time.Time
}

// NewStaleTransactionsJob builds the stale transaction job.
func NewStaleTransactionsJob(store staleTransactionStore, maxAge time.Duration, logg *logger.Logger) (*StaleTransactionsJob, error) {
	if store == nil {
		return nil, errors.New("transaction store required")
	}
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return &StaleTransactionsJob{store: store, maxAge: maxAge, logg: logg, now: time.Now}, nil
}

func (j *StaleTransactionsJob) Name() string { return "stale_transactions" }

func (j *StaleTransactionsJob) Run(ctx context.Context) error {
	expired, err := j.store.ExpireStale(ctx, j.now().Add(-j.maxAge))
	if err != nil {
		return err
	}
	if j.logg != nil && expired > 0 {
		j.logg.Info(j.logg.WithField(ctx, "expired", expired), "stale payment transactions expired")
	}
	return nil
}
