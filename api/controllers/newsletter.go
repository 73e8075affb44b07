package controllers

import (
	"net/http"

	"github.com/urbanthreads/storefront-backend/api/responses"
	"github.com/urbanthreads/storefront-backend/api/validators"
	newslettersvc "github.com/urbanthreads/storefront-backend/internal/newsletter"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type subscriberResponse struct {
	Email        string `json:"email"`
	SubscribedAt string `json:"subscribed_at"`
}

// SubscribeNewsletter adds an email to the subscriber list.
func SubscribeNewsletter(svc newslettersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "newsletter service unavailable"))
			return
		}

		var payload subscribeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Subscribe(r.Context(), payload.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "Successfully subscribed!"})
	}
}

// ListNewsletterSubscribers returns every subscriber.
func ListNewsletterSubscribers(svc newslettersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "newsletter service unavailable"))
			return
		}

		subscribers, err := svc.Subscribers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]subscriberResponse, 0, len(subscribers))
		for _, sub := range subscribers {
			out = append(out, subscriberResponse{
				Email:        sub.Email,
				SubscribedAt: sub.SubscribedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			})
		}
		responses.WriteSuccess(w, map[string]any{
			"count":       len(out),
			"subscribers": out,
		})
	}
}
