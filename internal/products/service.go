// Package products serves the commerce catalog. The catalog is seeded
// once on an empty database and read-only afterwards.
package products

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/urbanthreads/storefront-backend/pkg/db/models"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

// Service defines catalog read operations plus the seed hook.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)
	Get(ctx context.Context, id int) (*models.Product, error)
	SeedIfEmpty(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the catalog service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	products, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products by category")
	}
	return products, nil
}

func (s *service) Get(ctx context.Context, id int) (*models.Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// SeedIfEmpty inserts the launch catalog when the table has no rows and
// returns how many products were inserted.
func (s *service) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	if count > 0 {
		return 0, nil
	}

	catalog := seedCatalog()
	if err := s.repo.InsertMany(ctx, catalog); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed products")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "count", len(catalog)), "seeded product catalog")
	}
	return len(catalog), nil
}
