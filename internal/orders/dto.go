package orders

import (
	"github.com/shopspring/decimal"

	"github.com/urbanthreads/storefront-backend/pkg/db/models"
)

// CreateOrderInput is the validated payload for order creation.
type CreateOrderInput struct {
	Items         []ItemInput     `json:"items" validate:"required,min=1,dive"`
	Total         decimal.Decimal `json:"total" validate:"required"`
	CustomerEmail string          `json:"customer_email" validate:"required,email"`
}

// ItemInput is one line item in an order creation request.
type ItemInput struct {
	ProductID int             `json:"product_id" validate:"required,gt=0"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Image     string          `json:"image"`
}

// OrderResponse is the wire shape of a persisted order.
type OrderResponse struct {
	ID               string             `json:"id"`
	Items            []models.OrderItem `json:"items"`
	Total            string             `json:"total"`
	CustomerEmail    string             `json:"customer_email"`
	Status           string             `json:"status"`
	PaymentSessionID *string            `json:"payment_session_id,omitempty"`
	CreatedAt        string             `json:"created_at"`
}

// ToResponse maps a persisted order to its wire shape.
func ToResponse(order *models.Order) OrderResponse {
	return OrderResponse{
		ID:               order.ID.String(),
		Items:            order.Items,
		Total:            order.Total.StringFixed(2),
		CustomerEmail:    order.CustomerEmail,
		Status:           string(order.Status),
		PaymentSessionID: order.PaymentSessionID,
		CreatedAt:        order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
