package storefront

import (
	"context"
	"net/http"

	"github.com/urbanthreads/storefront-backend/api/responses"
	"github.com/urbanthreads/storefront-backend/api/validators"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

// NewsletterSubscriber forwards subscriptions to the commerce backend.
type NewsletterSubscriber interface {
	Subscribe(ctx context.Context, email string) error
}

type newsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SubscribeNewsletter relays a signup to the commerce backend. A duplicate
// email surfaces as an already-subscribed validation error.
func SubscribeNewsletter(client NewsletterSubscriber, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "newsletter client unavailable"))
			return
		}

		var payload newsletterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := client.Subscribe(r.Context(), payload.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "Successfully subscribed!"})
	}
}
