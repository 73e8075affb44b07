package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/urbanthreads/storefront-backend/pkg/db/models"
	"github.com/urbanthreads/storefront-backend/pkg/enums"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
)

type stubRepo struct {
	created []*models.Order
	byID    map[uuid.UUID]*models.Order
}

func (s *stubRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	s.created = append(s.created, order)
	return order, nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := s.byID[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) MarkPaid(context.Context, uuid.UUID, string) error { return nil }

func validInput() CreateOrderInput {
	return CreateOrderInput{
		Items: []ItemInput{
			{ProductID: 1, Name: "Urban Essential Tee", Price: decimal.NewFromInt(28), Quantity: 2},
		},
		Total:         decimal.RequireFromString("60.48"),
		CustomerEmail: "Jane@Example.com",
	}
}

func TestCreateOrder(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	order, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.ID == uuid.Nil {
		t.Fatal("order id not assigned")
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("new order status %s, want pending", order.Status)
	}
	if order.CustomerEmail != "jane@example.com" {
		t.Fatalf("email not normalized: %q", order.CustomerEmail)
	}
	if !order.Total.Equal(decimal.RequireFromString("60.48")) {
		t.Fatalf("unexpected total %s", order.Total)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one persisted order, got %d", len(repo.created))
	}
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, nil)

	cases := []struct {
		name   string
		mutate func(*CreateOrderInput)
	}{
		{"missing email", func(in *CreateOrderInput) { in.CustomerEmail = "  " }},
		{"no items", func(in *CreateOrderInput) { in.Items = nil }},
		{"zero total", func(in *CreateOrderInput) { in.Total = decimal.Zero }},
		{"zero quantity", func(in *CreateOrderInput) { in.Items[0].Quantity = 0 }},
		{"negative price", func(in *CreateOrderInput) { in.Items[0].Price = decimal.NewFromInt(-1) }},
		{"total below items", func(in *CreateOrderInput) { in.Total = decimal.NewFromInt(10) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := svc.Create(context.Background(), input)
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestGetUnknownOrder(t *testing.T) {
	svc, _ := NewService(&stubRepo{byID: map[uuid.UUID]*models.Order{}}, nil)
	_, err := svc.Get(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGetRequiresID(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, nil)
	if _, err := svc.Get(context.Background(), uuid.Nil); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestItemTotal(t *testing.T) {
	items := []models.OrderItem{
		{Price: decimal.NewFromInt(28), Quantity: 2},
		{Price: decimal.NewFromInt(45), Quantity: 1},
	}
	if got := ItemTotal(items); !got.Equal(decimal.NewFromInt(101)) {
		t.Fatalf("item total %s, want 101", got)
	}
}
