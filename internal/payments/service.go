// Package payments owns the hosted-payment lifecycle: opening checkout
// sessions, answering status checks, and syncing the provider's view
// into local orders. Amounts always come from the persisted order, never
// from the caller, and a session that has been observed paid is never
// downgraded by a later observation.
package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/urbanthreads/storefront-backend/pkg/db/models"
	"github.com/urbanthreads/storefront-backend/pkg/enums"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
	"github.com/urbanthreads/storefront-backend/pkg/stripe"
)

// Service defines payment session operations.
type Service interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*SessionResponse, error)
	Status(ctx context.Context, sessionID string) (*StatusResponse, error)
	SyncSession(ctx context.Context, sessionID string) error
}

type service struct {
	repo     Repository
	orders   OrderStore
	checkout stripe.CheckoutSessionClient
	logg     *logger.Logger
}

// NewService builds the payments service.
func NewService(repo Repository, orders OrderStore, checkout stripe.CheckoutSessionClient, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order store required")
	}
	if checkout == nil {
		return nil, fmt.Errorf("checkout session client required")
	}
	return &service{repo: repo, orders: orders, checkout: checkout, logg: logg}, nil
}

// CreateSession opens a hosted checkout session for an order. The
// charged amount is the order's persisted total; the transaction record
// is written before the redirect URL is handed out so a paid session can
// always be traced back to its order.
func (s *service) CreateSession(ctx context.Context, input CreateSessionInput) (*SessionResponse, error) {
	orderID, err := uuid.Parse(strings.TrimSpace(input.OrderID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id must be a valid uuid")
	}
	origin := strings.TrimRight(strings.TrimSpace(input.OriginURL), "/")
	if origin == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "origin url is required")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.Status == enums.OrderStatusPaid {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order is already paid")
	}

	created, err := s.checkout.Create(ctx, stripe.CheckoutSessionInput{
		OrderID:       order.ID.String(),
		CustomerEmail: order.CustomerEmail,
		Amount:        order.Total,
		Currency:      "usd",
		SuccessURL:    origin + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     origin + "/cart",
		Description:   fmt.Sprintf("Urban Threads order %s", shortOrderRef(order.ID)),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create checkout session")
	}
	if created == nil || created.URL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "checkout session missing redirect url")
	}

	txn := &models.PaymentTransaction{
		ID:            uuid.New(),
		SessionID:     created.SessionID,
		OrderID:       order.ID,
		Amount:        order.Total,
		Currency:      "usd",
		CustomerEmail: order.CustomerEmail,
		PaymentStatus: enums.PaymentStatusUnpaid,
		Status:        enums.TransactionStatusInitiated,
	}
	if err := s.repo.Insert(ctx, txn); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist payment transaction")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"order_id":   order.ID.String(),
			"session_id": created.SessionID,
		}), "checkout session created")
	}
	return &SessionResponse{SessionID: created.SessionID, URL: created.URL}, nil
}

// Status retrieves the live session state from the provider and syncs
// it into the local transaction and order records.
func (s *service) Status(ctx context.Context, sessionID string) (*StatusResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	remote, err := s.checkout.Retrieve(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "retrieve checkout session")
	}
	if remote == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment session not found")
	}

	paymentStatus := enums.PaymentStatus(remote.PaymentStatus)
	sessionStatus := enums.SessionStatus(remote.Status)

	txn, err := s.syncTransaction(ctx, sessionID, paymentStatus, sessionStatus)
	if err != nil {
		return nil, err
	}

	resp := &StatusResponse{
		SessionID:     sessionID,
		PaymentStatus: paymentStatus,
		SessionStatus: sessionStatus,
		Currency:      remote.Currency,
	}
	if remote.AmountTotal > 0 {
		resp.AmountTotal = decimal.NewFromInt(remote.AmountTotal).Div(decimal.NewFromInt(100)).StringFixed(2)
	}
	if txn != nil {
		resp.OrderID = txn.OrderID.String()
		resp.CustomerEmail = txn.CustomerEmail
		// a session observed paid stays paid regardless of what the
		// provider returns later
		if txn.PaymentStatus == enums.PaymentStatusPaid {
			resp.PaymentStatus = enums.PaymentStatusPaid
		}
	}
	return resp, nil
}

// SyncSession refreshes local records from the provider without
// building a response. Webhook delivery uses it.
func (s *service) SyncSession(ctx context.Context, sessionID string) error {
	_, err := s.Status(ctx, sessionID)
	return err
}

// syncTransaction applies the remote observation to the local
// transaction and marks the order paid on the first paid sighting. A
// missing local transaction is tolerated: the session may predate this
// deployment or belong to another environment.
func (s *service) syncTransaction(ctx context.Context, sessionID string, paymentStatus enums.PaymentStatus, sessionStatus enums.SessionStatus) (*models.PaymentTransaction, error) {
	txn, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment transaction")
	}

	if txn.PaymentStatus == enums.PaymentStatusPaid {
		return txn, nil
	}

	switch {
	case paymentStatus == enums.PaymentStatusPaid:
		if err := s.repo.UpdateStatus(ctx, sessionID, enums.PaymentStatusPaid, enums.TransactionStatusCompleted); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment transaction")
		}
		if err := s.orders.MarkPaid(ctx, txn.OrderID, sessionID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order paid")
		}
		txn.PaymentStatus = enums.PaymentStatusPaid
		txn.Status = enums.TransactionStatusCompleted
		if s.logg != nil {
			s.logg.Info(s.logg.WithFields(ctx, map[string]any{
				"order_id":   txn.OrderID.String(),
				"session_id": sessionID,
			}), "order payment confirmed")
		}
	case sessionStatus == enums.SessionStatusExpired:
		if err := s.repo.UpdateStatus(ctx, sessionID, txn.PaymentStatus, enums.TransactionStatusExpired); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment transaction")
		}
		txn.Status = enums.TransactionStatusExpired
	}
	return txn, nil
}

func shortOrderRef(id uuid.UUID) string {
	ref := id.String()
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return strings.ToUpper(ref)
}
