package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/urbanthreads/storefront-backend/api/responses"
	"github.com/urbanthreads/storefront-backend/api/validators"
	paymentsvc "github.com/urbanthreads/storefront-backend/internal/payments"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

// CreateCheckoutSession opens a hosted payment session for an order.
func CreateCheckoutSession(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		var payload paymentsvc.CreateSessionInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.CreateSession(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

// CheckoutSessionStatus reports the live state of a payment session.
func CheckoutSessionStatus(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		sessionID := chi.URLParam(r, "sessionId")
		status, err := svc.Status(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, status)
	}
}
