package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/urbanthreads/storefront-backend/api/middleware"
	"github.com/urbanthreads/storefront-backend/internal/cart"
	"github.com/urbanthreads/storefront-backend/internal/checkout"
	"github.com/urbanthreads/storefront-backend/internal/pricing"
)

type stubInitiator struct {
	email  string
	origin string
	result checkout.Initiation
	err    error
}

func (s *stubInitiator) Initiate(ctx context.Context, store *cart.Store, email, origin string) (checkout.Initiation, error) {
	s.email = email
	s.origin = origin
	if s.err != nil {
		return checkout.Initiation{}, s.err
	}
	return s.result, nil
}

func postCheckout(t *testing.T, handler http.HandlerFunc, body map[string]any, origin string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	req = req.WithContext(middleware.WithSessionID(req.Context(), testSessionID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestBeginCheckout_ReturnsRedirect(t *testing.T) {
	initiator := &stubInitiator{result: checkout.Initiation{
		OrderID:     "ord_1",
		SessionID:   "cs_test_1",
		RedirectURL: "https://checkout.stripe.com/pay/cs_test_1",
		Quote:       pricing.QuoteFor(decimal.RequireFromString("56.00")),
	}}
	handler := BeginCheckout(initiator, cart.NewManager(), nil)

	rec := postCheckout(t, handler, map[string]any{"customer_email": "shopper@example.com"}, "https://urbanthreads.shop")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if initiator.email != "shopper@example.com" {
		t.Fatalf("email not forwarded, got %q", initiator.email)
	}
	if initiator.origin != "https://urbanthreads.shop" {
		t.Fatalf("origin not forwarded, got %q", initiator.origin)
	}

	var envelope struct {
		Data checkoutResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RedirectURL != "https://checkout.stripe.com/pay/cs_test_1" {
		t.Fatalf("unexpected redirect %q", envelope.Data.RedirectURL)
	}
	if envelope.Data.Total != "60.48" {
		t.Fatalf("expected taxed total 60.48, got %q", envelope.Data.Total)
	}
}

func TestBeginCheckout_FallsBackToHostOrigin(t *testing.T) {
	initiator := &stubInitiator{}
	handler := BeginCheckout(initiator, cart.NewManager(), nil)

	rec := postCheckout(t, handler, map[string]any{"customer_email": "shopper@example.com"}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if initiator.origin != "http://example.com" {
		t.Fatalf("expected host fallback origin, got %q", initiator.origin)
	}
}

func TestBeginCheckout_MissingEmail(t *testing.T) {
	initiator := &stubInitiator{}
	handler := BeginCheckout(initiator, cart.NewManager(), nil)

	rec := postCheckout(t, handler, map[string]any{}, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without email, got %d", rec.Code)
	}
	if initiator.email != "" {
		t.Fatalf("initiator should not run on invalid payload")
	}
}

func TestBeginCheckout_InitiationFailureSurfaces(t *testing.T) {
	initiator := &stubInitiator{err: errors.New("order service down")}
	handler := BeginCheckout(initiator, cart.NewManager(), nil)

	rec := postCheckout(t, handler, map[string]any{"customer_email": "shopper@example.com"}, "")
	if rec.Code == http.StatusCreated {
		t.Fatalf("expected failure status, got 201")
	}
}
