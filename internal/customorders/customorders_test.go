package customorders

import (
	"context"
	"testing"

	"github.com/urbanthreads/storefront-backend/pkg/db/models"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
)

type stubRepo struct {
	inserted []*models.CustomOrder
}

func (s *stubRepo) Insert(_ context.Context, order *models.CustomOrder) error {
	s.inserted = append(s.inserted, order)
	return nil
}

func (s *stubRepo) FindAll(context.Context) ([]models.CustomOrder, error) {
	out := make([]models.CustomOrder, 0, len(s.inserted))
	for _, o := range s.inserted {
		out = append(out, *o)
	}
	return out, nil
}

func strptr(s string) *string { return &s }

func TestCreateCustomOrder(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	order, err := svc.Create(context.Background(), CreateInput{
		Email:      "Jane@Example.com",
		CustomText: strptr("front print: city skyline"),
		FileName:   strptr("skyline.png"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", order.Email)
	}
	if string(order.Status) != "pending" {
		t.Fatalf("unexpected status %s", order.Status)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.inserted))
	}
}

func TestCreateRequiresEmail(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, nil)
	_, err := svc.Create(context.Background(), CreateInput{CustomText: strptr("text")})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRequiresSomeContent(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, nil)
	_, err := svc.Create(context.Background(), CreateInput{
		Email:      "jane@example.com",
		CustomText: strptr("   "),
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
