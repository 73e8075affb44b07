// Package newsletter manages the subscriber list. Each email may appear
// once; a duplicate subscribe is reported as already subscribed rather
// than failing silently or creating a second row.
package newsletter

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/urbanthreads/storefront-backend/pkg/db"
	"github.com/urbanthreads/storefront-backend/pkg/db/models"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

// Repository defines the persistence operations for subscribers.
type Repository interface {
	Insert(ctx context.Context, subscriber *models.NewsletterSubscriber) error
	FindAll(ctx context.Context) ([]models.NewsletterSubscriber, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a newsletter repository bound to the provided DB.
func NewRepository(gdb *gorm.DB) Repository {
	return &repository{db: gdb}
}

func (r *repository) Insert(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
	return r.db.WithContext(ctx).Create(subscriber).Error
}

func (r *repository) FindAll(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	var subscribers []models.NewsletterSubscriber
	err := r.db.WithContext(ctx).
		Order("subscribed_at ASC").
		Find(&subscribers).Error
	if err != nil {
		return nil, err
	}
	return subscribers, nil
}

// Service defines newsletter operations.
type Service interface {
	Subscribe(ctx context.Context, email string) error
	Subscribers(ctx context.Context) ([]models.NewsletterSubscriber, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the newsletter service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("newsletter repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Subscribe adds the email to the list. The unique index on email is
// the source of truth for duplicates; a check-then-insert would race.
func (s *service) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	err := s.repo.Insert(ctx, &models.NewsletterSubscriber{
		ID:    uuid.New(),
		Email: email,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.New(pkgerrors.CodeAlreadySubscribed, "email already subscribed")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist subscriber")
	}
	if s.logg != nil {
		s.logg.Info(ctx, "newsletter subscription added")
	}
	return nil
}

func (s *service) Subscribers(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	subscribers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscribers")
	}
	return subscribers, nil
}
