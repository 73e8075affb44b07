// Package customorders records custom-design requests. Only the
// uploaded file's name travels with the request; storage of the upload
// itself is out of scope.
package customorders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/urbanthreads/storefront-backend/pkg/db/models"
	"github.com/urbanthreads/storefront-backend/pkg/enums"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

// CreateInput is the payload for submitting a custom order.
type CreateInput struct {
	Email       string  `json:"email" validate:"required,email"`
	CustomText  *string `json:"custom_text"`
	Description *string `json:"description"`
	FileName    *string `json:"file_name"`
}

// Repository defines the persistence operations for custom orders.
type Repository interface {
	Insert(ctx context.Context, order *models.CustomOrder) error
	FindAll(ctx context.Context) ([]models.CustomOrder, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a custom-orders repository bound to the provided DB.
func NewRepository(gdb *gorm.DB) Repository {
	return &repository{db: gdb}
}

func (r *repository) Insert(ctx context.Context, order *models.CustomOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindAll(ctx context.Context) ([]models.CustomOrder, error) {
	var orders []models.CustomOrder
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Service defines custom order operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.CustomOrder, error)
	List(ctx context.Context) ([]models.CustomOrder, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the custom orders service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("custom orders repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.CustomOrder, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if emptyOptional(input.CustomText) && emptyOptional(input.Description) && emptyOptional(input.FileName) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "custom order needs text, a description, or a design file")
	}

	order := &models.CustomOrder{
		ID:          uuid.New(),
		Email:       email,
		CustomText:  input.CustomText,
		Description: input.Description,
		FileName:    input.FileName,
		Status:      enums.CustomOrderStatusPending,
	}
	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist custom order")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "custom_order_id", order.ID.String()), "custom order submitted")
	}
	return order, nil
}

func (s *service) List(ctx context.Context) ([]models.CustomOrder, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list custom orders")
	}
	return orders, nil
}

func emptyOptional(value *string) bool {
	return value == nil || strings.TrimSpace(*value) == ""
}
