package storefront

import (
	"context"
	"net/http"
	"strings"

	"github.com/urbanthreads/storefront-backend/api/responses"
	"github.com/urbanthreads/storefront-backend/internal/payment"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

// StatusPoller resolves a payment session to a terminal state.
type StatusPoller interface {
	Poll(ctx context.Context, sessionID string, observe payment.Observer) payment.Result
}

type returnResponse struct {
	State    payment.State           `json:"state"`
	Attempts int                     `json:"attempts"`
	Session  *payment.StatusSnapshot `json:"session,omitempty"`
	Detail   string                  `json:"detail,omitempty"`
}

// CheckoutReturn handles the shopper landing back from the payment provider.
// It polls the session until a terminal state and reports the outcome; the
// cart was already cleared when the session was created, so a timeout here
// is informational rather than an error.
func CheckoutReturn(poller StatusPoller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if poller == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment poller unavailable"))
			return
		}

		sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session_id query parameter required"))
			return
		}

		result := poller.Poll(r.Context(), sessionID, nil)

		resp := returnResponse{
			State:    result.State,
			Attempts: result.Attempts,
			Session:  result.Snapshot,
		}
		if result.Err != nil {
			resp.Detail = result.Err.Error()
		}

		switch result.State {
		case payment.StateError:
			responses.WriteError(r.Context(), logg, w, result.Err)
		default:
			responses.WriteSuccess(w, resp)
		}
	}
}
