package storefront

import (
	"context"
	"net/http"
	"strings"

	"github.com/urbanthreads/storefront-backend/api/responses"
	"github.com/urbanthreads/storefront-backend/api/validators"
	"github.com/urbanthreads/storefront-backend/internal/cart"
	"github.com/urbanthreads/storefront-backend/internal/checkout"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

// CheckoutInitiator starts a checkout for the session cart.
type CheckoutInitiator interface {
	Initiate(ctx context.Context, store *cart.Store, email, origin string) (checkout.Initiation, error)
}

type beginCheckoutRequest struct {
	CustomerEmail string `json:"customer_email" validate:"required"`
}

type checkoutResponse struct {
	OrderID     string `json:"order_id"`
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
	Total       string `json:"total"`
}

// BeginCheckout creates the order, opens a payment session and returns the
// provider redirect URL. The cart survives any failure along the way.
func BeginCheckout(initiator CheckoutInitiator, carts CartProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if initiator == nil || carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		var payload beginCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		origin := requestOrigin(r)
		initiation, err := initiator.Initiate(r.Context(), store, payload.CustomerEmail, origin)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{
			OrderID:     initiation.OrderID,
			SessionID:   initiation.SessionID,
			RedirectURL: initiation.RedirectURL,
			Total:       initiation.Quote.Total.StringFixed(2),
		})
	}
}

// requestOrigin picks the origin the payment provider should send the
// shopper back to. Falls back to the Host header for same-origin setups.
func requestOrigin(r *http.Request) string {
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		return origin
	}
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	return scheme + "://" + r.Host
}
