package payment

import (
	"context"
	"testing"

	"github.com/urbanthreads/storefront-backend/pkg/enums"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
)

type scriptedStatusClient struct {
	responses []StatusSnapshot
	errs      []error
	calls     int
}

func (s *scriptedStatusClient) Status(context.Context, string) (StatusSnapshot, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return StatusSnapshot{}, s.errs[idx]
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	if len(s.responses) > 0 {
		return s.responses[len(s.responses)-1], nil
	}
	return StatusSnapshot{}, nil
}

func pendingSnap() StatusSnapshot {
	return StatusSnapshot{
		SessionID:     "cs_test_abc",
		PaymentStatus: enums.PaymentStatusUnpaid,
		SessionStatus: enums.SessionStatusOpen,
	}
}

func paidSnap() StatusSnapshot {
	return StatusSnapshot{
		SessionID:     "cs_test_abc",
		PaymentStatus: enums.PaymentStatusPaid,
		SessionStatus: enums.SessionStatusComplete,
		AmountTotal:   "60.48",
		Currency:      "usd",
	}
}

func zeroDelayPoller(t *testing.T, client StatusClient) *Poller {
	t.Helper()
	poller, err := NewPoller(client, nil, WithInterval(0))
	if err != nil {
		t.Fatalf("new poller: %v", err)
	}
	return poller
}

func TestPollPaidOnFirstAttempt(t *testing.T) {
	client := &scriptedStatusClient{responses: []StatusSnapshot{paidSnap()}}
	poller := zeroDelayPoller(t, client)

	var states []State
	result := poller.Poll(context.Background(), "cs_test_abc", func(state State, _ *StatusSnapshot) {
		states = append(states, state)
	})

	if result.State != StateSuccess {
		t.Fatalf("expected success, got %s (%v)", result.State, result.Err)
	}
	if result.Attempts != 1 {
		t.Fatalf("expected one attempt, got %d", result.Attempts)
	}
	if result.Snapshot == nil || result.Snapshot.AmountTotal != "60.48" {
		t.Fatalf("terminal snapshot lost: %+v", result.Snapshot)
	}
	if len(states) != 2 || states[0] != StateChecking || states[1] != StateSuccess {
		t.Fatalf("unexpected transitions %v", states)
	}
}

func TestPollPendingThenPaid(t *testing.T) {
	client := &scriptedStatusClient{responses: []StatusSnapshot{pendingSnap(), pendingSnap(), paidSnap()}}
	poller := zeroDelayPoller(t, client)

	result := poller.Poll(context.Background(), "cs_test_abc", nil)
	if result.State != StateSuccess {
		t.Fatalf("expected success, got %s", result.State)
	}
	if result.Attempts != 3 {
		t.Fatalf("expected three attempts, got %d", result.Attempts)
	}
}

func TestPollTimesOutAfterFiveAttempts(t *testing.T) {
	client := &scriptedStatusClient{responses: []StatusSnapshot{pendingSnap()}}
	poller := zeroDelayPoller(t, client)

	var states []State
	result := poller.Poll(context.Background(), "cs_test_abc", func(state State, _ *StatusSnapshot) {
		states = append(states, state)
	})

	if result.State != StateTimeout {
		t.Fatalf("expected timeout, got %s", result.State)
	}
	if client.calls != 5 {
		t.Fatalf("expected exactly 5 requests, got %d", client.calls)
	}
	if !pkgerrors.IsCode(result.Err, pkgerrors.CodePollTimeout) {
		t.Fatalf("expected poll timeout error, got %v", result.Err)
	}
	// checking, 4 pendings, then timeout: the final attempt reports
	// timeout directly, never a fifth pending.
	if states[len(states)-1] != StateTimeout {
		t.Fatalf("missing terminal transition: %v", states)
	}
	pendings := 0
	for _, s := range states {
		if s == StatePending {
			pendings++
		}
	}
	if pendings != 4 {
		t.Fatalf("expected 4 pending transitions, got %d (%v)", pendings, states)
	}
}

func TestPollExpiredSession(t *testing.T) {
	snap := pendingSnap()
	snap.SessionStatus = enums.SessionStatusExpired
	client := &scriptedStatusClient{responses: []StatusSnapshot{snap}}
	poller := zeroDelayPoller(t, client)

	result := poller.Poll(context.Background(), "cs_test_abc", nil)
	if result.State != StateExpired {
		t.Fatalf("expected expired, got %s", result.State)
	}
	if result.Attempts != 1 {
		t.Fatalf("expected one attempt, got %d", result.Attempts)
	}
}

func TestPollTransportFailureStopsImmediately(t *testing.T) {
	client := &scriptedStatusClient{
		errs: []error{pkgerrors.New(pkgerrors.CodeTransport, "execute status request")},
	}
	poller := zeroDelayPoller(t, client)

	result := poller.Poll(context.Background(), "cs_test_abc", nil)
	if result.State != StateError {
		t.Fatalf("expected error state, got %s", result.State)
	}
	if client.calls != 1 {
		t.Fatalf("transport failure retried: %d calls", client.calls)
	}
	if !pkgerrors.IsCode(result.Err, pkgerrors.CodeTransport) {
		t.Fatalf("expected transport error, got %v", result.Err)
	}
}

func TestPollMissingSessionID(t *testing.T) {
	client := &scriptedStatusClient{}
	poller := zeroDelayPoller(t, client)

	result := poller.Poll(context.Background(), "   ", nil)
	if result.State != StateError {
		t.Fatalf("expected error state, got %s", result.State)
	}
	if !pkgerrors.IsCode(result.Err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", result.Err)
	}
	if client.calls != 0 {
		t.Fatal("missing session id still issued a request")
	}
}

func TestPollCanceledContext(t *testing.T) {
	client := &scriptedStatusClient{responses: []StatusSnapshot{pendingSnap()}}
	poller, err := NewPoller(client, nil, WithInterval(DefaultInterval))
	if err != nil {
		t.Fatalf("new poller: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// cancel while the poller waits out the first interval
		cancel()
	}()

	result := poller.Poll(ctx, "cs_test_abc", nil)
	if result.State != StateError {
		t.Fatalf("expected error state after cancel, got %s", result.State)
	}
	if client.calls > 2 {
		t.Fatalf("poll kept scheduling after cancel: %d calls", client.calls)
	}
}

func TestStateTerminal(t *testing.T) {
	for _, s := range []State{StateSuccess, StateExpired, StateTimeout, StateError} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []State{StateChecking, StatePending} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}

func TestNewPollerRequiresClient(t *testing.T) {
	if _, err := NewPoller(nil, nil); err == nil {
		t.Fatal("expected error for nil client")
	}
}
