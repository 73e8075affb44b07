package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stripe/stripe-go/v84"
)

type fakeSyncService struct {
	sessions []string
	err      error
}

func (f *fakeSyncService) SyncSession(ctx context.Context, sessionID string) error {
	f.sessions = append(f.sessions, sessionID)
	return f.err
}

type fakeEventClient struct {
	event stripe.Event
	err   error
}

func (c *fakeEventClient) ConstructWebhookEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return c.event, c.err
}

func buildEvent(t *testing.T, eventType, sessionID string) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"id": sessionID, "object": "checkout.session"})
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	return stripe.Event{
		ID:   "evt_1",
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func postEvent(handler http.HandlerFunc, withSignature bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/stripe", bytes.NewReader([]byte(`{}`)))
	if withSignature {
		req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestStripeWebhook_SyncsCompletedSession(t *testing.T) {
	svc := &fakeSyncService{}
	client := &fakeEventClient{event: buildEvent(t, "checkout.session.completed", "cs_test_123")}

	rec := postEvent(StripeWebhook(svc, client, nil), true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if len(svc.sessions) != 1 || svc.sessions[0] != "cs_test_123" {
		t.Fatalf("expected sync for cs_test_123, got %v", svc.sessions)
	}
}

func TestStripeWebhook_IgnoresUnrelatedEvents(t *testing.T) {
	svc := &fakeSyncService{}
	client := &fakeEventClient{event: buildEvent(t, "payment_intent.succeeded", "pi_1")}

	rec := postEvent(StripeWebhook(svc, client, nil), true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for ignored event, got %d", rec.Code)
	}
	if len(svc.sessions) != 0 {
		t.Fatalf("unrelated event should not trigger a sync, got %v", svc.sessions)
	}
}

func TestStripeWebhook_MissingSignature(t *testing.T) {
	svc := &fakeSyncService{}
	client := &fakeEventClient{event: buildEvent(t, "checkout.session.completed", "cs_1")}

	rec := postEvent(StripeWebhook(svc, client, nil), false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without signature header, got %d", rec.Code)
	}
	if len(svc.sessions) != 0 {
		t.Fatalf("service should not run without a signature")
	}
}

func TestStripeWebhook_InvalidSignature(t *testing.T) {
	svc := &fakeSyncService{}
	client := &fakeEventClient{err: errors.New("signature mismatch")}

	rec := postEvent(StripeWebhook(svc, client, nil), true)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for invalid signature, got %d", rec.Code)
	}
	if len(svc.sessions) != 0 {
		t.Fatalf("service should not run on a failed signature check")
	}
}

func TestStripeWebhook_SyncFailureReturnsError(t *testing.T) {
	svc := &fakeSyncService{err: errors.New("db offline")}
	client := &fakeEventClient{event: buildEvent(t, "checkout.session.expired", "cs_2")}

	rec := postEvent(StripeWebhook(svc, client, nil), true)
	if rec.Code == http.StatusOK {
		t.Fatalf("expected failure status when sync errors, got 200")
	}
}
