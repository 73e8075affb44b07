package cron

import (
	"context"
	"errors"
	"time"

	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

// cartPruner is the slice of the cart manager the job needs.
type cartPruner interface {
	PruneIdle(ttl time.Duration) int
	Len() int
}

// CartPruneJob drops session carts that have sat idle past their TTL.
type CartPruneJob struct {
	carts cartPruner
	ttl   time.Duration
	logg  *logger.Logger
}

// NewCartPruneJob builds the cart prune job.
func NewCartPruneJob(carts cartPruner, ttl time.Duration, logg *logger.Logger) (*CartPruneJob, error) {
	if carts == nil {
		return nil, errors.New("cart pruner required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CartPruneJob{carts: carts, ttl: ttl, logg: logg}, nil
}

func (j *CartPruneJob) Name() string { return "cart_prune" }

func (j *CartPruneJob) Run(ctx context.Context) error {
	pruned := j.carts.PruneIdle(j.ttl)
	if j.logg != nil {
		j.logg.Info(j.logg.WithFields(ctx, map[string]any{
			"pruned": pruned,
			"live":   j.carts.Len(),
		}), "idle carts pruned")
	}
	return nil
}
