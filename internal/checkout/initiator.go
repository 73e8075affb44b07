// Package checkout drives the storefront checkout flow: it turns a
// session cart into an order, opens a hosted payment session, and only
// then clears the cart so the line items survive any upstream failure.
package checkout

import (
	"context"
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/urbanthreads/storefront-backend/internal/cart"
	"github.com/urbanthreads/storefront-backend/internal/pricing"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

// OrderCreator creates an order and returns its ID.
type OrderCreator interface {
	Create(ctx context.Context, req CreateOrderRequest) (string, error)
}

// SessionCreator opens a hosted payment session for an order.
type SessionCreator interface {
	Create(ctx context.Context, req CreateSessionRequest) (PaymentSession, error)
}

// Initiation is the successful result of starting a checkout.
type Initiation struct {
	OrderID     string
	SessionID   string
	RedirectURL string
	Quote       pricing.Quote
}

// Initiator coordinates the order and payment session clients.
type Initiator struct {
	orders   OrderCreator
	sessions SessionCreator
	logg     *logger.Logger
}

// NewInitiator wires the checkout flow. Both clients are required.
func NewInitiator(orders OrderCreator, sessions SessionCreator, logg *logger.Logger) (*Initiator, error) {
	if orders == nil {
		return nil, fmt.Errorf("order creator required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session creator required")
	}
	return &Initiator{orders: orders, sessions: sessions, logg: logg}, nil
}

// Initiate validates the email, prices the cart, creates the order and
// payment session, and clears the cart. The cart is cleared only after
// the payment session exists; any earlier failure leaves it intact.
func (i *Initiator) Initiate(ctx context.Context, store *cart.Store, email, origin string) (Initiation, error) {
	if i == nil {
		return Initiation{}, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return Initiation{}, pkgerrors.New(pkgerrors.CodeValidation, "customer email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Initiation{}, pkgerrors.New(pkgerrors.CodeValidation, "customer email is invalid")
	}

	snap := store.Snapshot()
	if len(snap.Items) == 0 {
		return Initiation{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	quote := pricing.QuoteFor(snap.Subtotal)

	items := make([]OrderItem, 0, len(snap.Items))
	for _, line := range snap.Items {
		productID, err := strconv.Atoi(line.ProductID)
		if err != nil || productID <= 0 {
			return Initiation{}, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("cart item %q has an invalid product id", line.Name))
		}
		items = append(items, OrderItem{
			ProductID: productID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
			Image:     line.Image,
		})
	}

	orderID, err := i.orders.Create(ctx, CreateOrderRequest{
		Items:         items,
		Total:         quote.Total.Round(2),
		CustomerEmail: email,
	})
	if err != nil {
		return Initiation{}, err
	}

	session, err := i.sessions.Create(ctx, CreateSessionRequest{
		OrderID:       orderID,
		CustomerEmail: email,
		OriginURL:     strings.TrimRight(origin, "/"),
	})
	if err != nil {
		return Initiation{}, err
	}

	store.Clear()
	if i.logg != nil {
		i.logg.Info(i.logg.WithFields(ctx, map[string]any{
			"order_id":   orderID,
			"session_id": session.SessionID,
			"total":      quote.Total.StringFixed(2),
		}), "checkout initiated")
	}

	return Initiation{
		OrderID:     orderID,
		SessionID:   session.SessionID,
		RedirectURL: session.URL,
		Quote:       quote,
	}, nil
}
