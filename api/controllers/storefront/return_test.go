package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/urbanthreads/storefront-backend/internal/payment"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
	"github.com/urbanthreads/storefront-backend/pkg/enums"
)

type stubPoller struct {
	sessionID string
	result    payment.Result
}

func (s *stubPoller) Poll(ctx context.Context, sessionID string, observe payment.Observer) payment.Result {
	s.sessionID = sessionID
	return s.result
}

func getReturn(handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCheckoutReturn_Success(t *testing.T) {
	poller := &stubPoller{result: payment.Result{
		State:    payment.StateSuccess,
		Attempts: 1,
		Snapshot: &payment.StatusSnapshot{
			SessionID:     "cs_1",
			PaymentStatus: enums.PaymentStatusPaid,
		},
	}}
	handler := CheckoutReturn(poller, nil)

	rec := getReturn(handler, "/checkout/return?session_id=cs_1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if poller.sessionID != "cs_1" {
		t.Fatalf("session id not forwarded, got %q", poller.sessionID)
	}

	var envelope struct {
		Data returnResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.State != payment.StateSuccess {
		t.Fatalf("expected success state, got %q", envelope.Data.State)
	}
	if envelope.Data.Session == nil || envelope.Data.Session.SessionID != "cs_1" {
		t.Fatalf("expected session snapshot in response")
	}
}

func TestCheckoutReturn_TimeoutIsInformational(t *testing.T) {
	poller := &stubPoller{result: payment.Result{
		State:    payment.StateTimeout,
		Attempts: 5,
		Err:      pkgerrors.New(pkgerrors.CodePollTimeout, "payment status still pending after final attempt"),
	}}
	handler := CheckoutReturn(poller, nil)

	rec := getReturn(handler, "/checkout/return?session_id=cs_slow")
	if rec.Code != http.StatusOK {
		t.Fatalf("timeout should report 200, got %d", rec.Code)
	}

	var envelope struct {
		Data returnResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.State != payment.StateTimeout {
		t.Fatalf("expected timeout state, got %q", envelope.Data.State)
	}
	if envelope.Data.Attempts != 5 {
		t.Fatalf("expected 5 attempts reported, got %d", envelope.Data.Attempts)
	}
	if envelope.Data.Detail == "" {
		t.Fatalf("expected timeout detail in response")
	}
}

func TestCheckoutReturn_TransportErrorSurfaces(t *testing.T) {
	poller := &stubPoller{result: payment.Result{
		State:    payment.StateError,
		Attempts: 1,
		Err:      pkgerrors.New(pkgerrors.CodeTransport, "status endpoint unreachable"),
	}}
	handler := CheckoutReturn(poller, nil)

	rec := getReturn(handler, "/checkout/return?session_id=cs_bad")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for transport error, got %d", rec.Code)
	}
}

func TestCheckoutReturn_MissingSessionID(t *testing.T) {
	poller := &stubPoller{}
	handler := CheckoutReturn(poller, nil)

	rec := getReturn(handler, "/checkout/return")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without session_id, got %d", rec.Code)
	}
	if poller.sessionID != "" {
		t.Fatalf("poller should not run without a session id")
	}
}
