// Package payment tracks the outcome of a hosted payment session after
// the customer returns to the storefront. The poller asks the commerce
// backend for the session status on a fixed cadence until it reaches a
// terminal state or runs out of attempts.
package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urbanthreads/storefront-backend/pkg/enums"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

// State is the poller's view of the payment session.
type State string

const (
	StateChecking State = "checking"
	StatePending  State = "pending"
	StateSuccess  State = "success"
	StateExpired  State = "expired"
	StateTimeout  State = "timeout"
	StateError    State = "error"
)

// Terminal reports whether the state ends the poll.
func (s State) Terminal() bool {
	switch s {
	case StateSuccess, StateExpired, StateTimeout, StateError:
		return true
	}
	return false
}

const (
	// DefaultMaxAttempts bounds how many status requests a single poll
	// may issue.
	DefaultMaxAttempts = 5
	// DefaultInterval is the fixed delay between consecutive attempts.
	DefaultInterval = 2000 * time.Millisecond
)

// StatusSnapshot is one observation of the payment session.
type StatusSnapshot struct {
	SessionID     string              `json:"session_id"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	SessionStatus enums.SessionStatus `json:"session_status"`
	AmountTotal   string              `json:"amount_total,omitempty"`
	Currency      string              `json:"currency,omitempty"`
	OrderID       string              `json:"order_id,omitempty"`
	CustomerEmail string              `json:"customer_email,omitempty"`
}

// StatusClient fetches the current status of a payment session.
type StatusClient interface {
	Status(ctx context.Context, sessionID string) (StatusSnapshot, error)
}

// Result is the terminal outcome of a poll.
type Result struct {
	State    State
	Snapshot *StatusSnapshot
	Attempts int
	Err      error
}

// Observer is invoked on every state transition, including the
// terminal one.
type Observer func(state State, snapshot *StatusSnapshot)

// Poller drives the status check loop.
type Poller struct {
	client      StatusClient
	logg        *logger.Logger
	maxAttempts int
	interval    time.Duration
}

// PollerOption configures optional poller behavior.
type PollerOption func(*Poller)

// WithMaxAttempts overrides the attempt budget.
func WithMaxAttempts(n int) PollerOption {
	return func(p *Poller) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithInterval overrides the delay between attempts.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d >= 0 {
			p.interval = d
		}
	}
}

// NewPoller builds a status poller around the given client.
func NewPoller(client StatusClient, logg *logger.Logger, opts ...PollerOption) (*Poller, error) {
	if client == nil {
		return nil, fmt.Errorf("status client required")
	}
	p := &Poller{
		client:      client,
		logg:        logg,
		maxAttempts: DefaultMaxAttempts,
		interval:    DefaultInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Poll checks the session status until it reaches a terminal state.
// A paid session is success, an expired session is expired, a transport
// failure is an immediate error with no further attempts, and exhausting
// the attempt budget while the session stays open is a timeout.
// Canceling the context stops the loop before the next request.
func (p *Poller) Poll(ctx context.Context, sessionID string, observe Observer) Result {
	if p == nil {
		err := pkgerrors.New(pkgerrors.CodeInternal, "payment poller unavailable")
		return Result{State: StateError, Err: err}
	}
	notify := func(state State, snap *StatusSnapshot) {
		if observe != nil {
			observe(state, snap)
		}
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		err := pkgerrors.New(pkgerrors.CodeValidation, "payment session id is required")
		notify(StateError, nil)
		return Result{State: StateError, Err: err}
	}

	notify(StateChecking, nil)

	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			wrapped := pkgerrors.Wrap(pkgerrors.CodeTransport, err, "status poll canceled")
			notify(StateError, nil)
			return Result{State: StateError, Attempts: attempts, Err: wrapped}
		}

		snap, err := p.client.Status(ctx, sessionID)
		attempts++
		if err != nil {
			if p.logg != nil {
				p.logg.Error(ctx, "payment status request failed", err)
			}
			notify(StateError, nil)
			return Result{State: StateError, Attempts: attempts, Err: err}
		}

		switch {
		case snap.PaymentStatus == enums.PaymentStatusPaid:
			notify(StateSuccess, &snap)
			return Result{State: StateSuccess, Snapshot: &snap, Attempts: attempts}
		case snap.SessionStatus == enums.SessionStatusExpired:
			notify(StateExpired, &snap)
			return Result{State: StateExpired, Snapshot: &snap, Attempts: attempts}
		}

		if attempts >= p.maxAttempts {
			err := pkgerrors.New(pkgerrors.CodePollTimeout, "payment status still pending after final attempt")
			notify(StateTimeout, &snap)
			return Result{State: StateTimeout, Snapshot: &snap, Attempts: attempts, Err: err}
		}

		notify(StatePending, &snap)

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			wrapped := pkgerrors.Wrap(pkgerrors.CodeTransport, ctx.Err(), "status poll canceled")
			notify(StateError, &snap)
			return Result{State: StateError, Attempts: attempts, Err: wrapped}
		case <-timer.C:
		}
		timer.Stop()
	}
}
