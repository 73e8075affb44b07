package payments

import (
	"github.com/urbanthreads/storefront-backend/pkg/enums"
)

// CreateSessionInput is the validated payload for opening a session.
type CreateSessionInput struct {
	OrderID       string `json:"order_id" validate:"required,uuid4"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	OriginURL     string `json:"origin_url" validate:"required,url"`
}

// SessionResponse is the wire shape of a created payment session.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// StatusResponse is the wire shape of a session status check.
type StatusResponse struct {
	SessionID     string              `json:"session_id"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	SessionStatus enums.SessionStatus `json:"session_status"`
	AmountTotal   string              `json:"amount_total,omitempty"`
	Currency      string              `json:"currency,omitempty"`
	OrderID       string              `json:"order_id,omitempty"`
	CustomerEmail string              `json:"customer_email,omitempty"`
}
