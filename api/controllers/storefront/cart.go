package storefront

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/urbanthreads/storefront-backend/api/middleware"
	"github.com/urbanthreads/storefront-backend/api/responses"
	"github.com/urbanthreads/storefront-backend/api/validators"
	"github.com/urbanthreads/storefront-backend/internal/cart"
	"github.com/urbanthreads/storefront-backend/internal/pricing"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

// CartProvider resolves the cart store for a browser session.
type CartProvider interface {
	Get(sessionID string) *cart.Store
}

type cartItemResponse struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

type cartResponse struct {
	Items     []cartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Pricing   pricing.Rendered   `json:"pricing"`
}

type addItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Quantity    int             `json:"quantity"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func toCartResponse(snap cart.Snapshot) cartResponse {
	items := make([]cartItemResponse, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, cartItemResponse{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Price:       item.UnitPrice.StringFixed(2),
			Quantity:    item.Quantity,
			Image:       item.Image,
			Description: item.Description,
		})
	}
	return cartResponse{
		Items:     items,
		ItemCount: snap.ItemCount,
		Pricing:   pricing.QuoteFor(snap.Subtotal).Render(),
	}
}

func sessionStore(r *http.Request, carts CartProvider) (*cart.Store, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return carts.Get(sessionID), nil
}

// GetCart returns the session cart with its priced summary.
func GetCart(carts CartProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(store.Snapshot()))
	}
}

// AddCartItem adds a product to the session cart, merging quantity when the
// product is already present.
func AddCartItem(carts CartProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Price.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative"))
			return
		}
		productID := strings.TrimSpace(payload.ProductID)
		if parsed, err := strconv.Atoi(productID); err != nil || parsed <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id must be a positive number"))
			return
		}

		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.AddItem(cart.LineItem{
			ProductID:   productID,
			Name:        validators.SanitizeString(payload.Name, 255),
			UnitPrice:   payload.Price,
			Image:       payload.Image,
			Description: validators.SanitizeString(payload.Description, 1024),
		}, payload.Quantity)

		responses.WriteSuccessStatus(w, http.StatusCreated, toCartResponse(store.Snapshot()))
	}
}

// UpdateCartItem sets the quantity of one cart line. Zero or negative
// quantities remove the line.
func UpdateCartItem(carts CartProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id required"))
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.UpdateQuantity(productID, payload.Quantity)
		responses.WriteSuccess(w, toCartResponse(store.Snapshot()))
	}
}

// RemoveCartItem deletes one product line from the session cart.
func RemoveCartItem(carts CartProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id required"))
			return
		}

		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.RemoveItem(productID)
		responses.WriteSuccess(w, toCartResponse(store.Snapshot()))
	}
}

// ClearCart removes every line from the session cart.
func ClearCart(carts CartProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Clear()
		responses.WriteSuccess(w, toCartResponse(store.Snapshot()))
	}
}
