package controllers

import (
	"net/http"

	"github.com/urbanthreads/storefront-backend/api/responses"
	"github.com/urbanthreads/storefront-backend/api/validators"
	customordersvc "github.com/urbanthreads/storefront-backend/internal/customorders"
	"github.com/urbanthreads/storefront-backend/pkg/db/models"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

type customOrderResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	CustomText  *string `json:"custom_text,omitempty"`
	Description *string `json:"description,omitempty"`
	FileName    *string `json:"file_name,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

func toCustomOrderResponse(order *models.CustomOrder) customOrderResponse {
	return customOrderResponse{
		ID:          order.ID.String(),
		Email:       order.Email,
		CustomText:  order.CustomText,
		Description: order.Description,
		FileName:    order.FileName,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// CreateCustomOrder records a custom-design request.
func CreateCustomOrder(svc customordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "custom order service unavailable"))
			return
		}

		var payload customordersvc.CreateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toCustomOrderResponse(order))
	}
}

// ListCustomOrders returns submitted custom orders, newest first.
func ListCustomOrders(svc customordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "custom order service unavailable"))
			return
		}

		orders, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]customOrderResponse, 0, len(orders))
		for i := range orders {
			out = append(out, toCustomOrderResponse(&orders[i]))
		}
		responses.WriteSuccess(w, out)
	}
}
