package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
)

func TestOrderClientCreate(t *testing.T) {
	var captured CreateOrderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/orders" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode order request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"ord_456"}}`))
	}))
	defer server.Close()

	client, err := NewOrderClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	id, err := client.Create(context.Background(), CreateOrderRequest{
		Items:         []OrderItem{{ProductID: 1, Name: "Urban Essential Tee", Price: decimal.NewFromInt(28), Quantity: 1}},
		Total:         decimal.RequireFromString("30.24"),
		CustomerEmail: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if id != "ord_456" {
		t.Fatalf("unexpected order id %q", id)
	}
	if captured.CustomerEmail != "jane@example.com" {
		t.Fatalf("email not forwarded: %q", captured.CustomerEmail)
	}
}

func TestOrderClientSurfacesUpstreamDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"total mismatch"}`))
	}))
	defer server.Close()

	client, _ := NewOrderClient(server.URL)
	_, err := client.Create(context.Background(), CreateOrderRequest{CustomerEmail: "jane@example.com"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeOrderCreation) {
		t.Fatalf("expected order creation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "order creation rejected") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if cause := pkgerrors.As(err).Unwrap(); cause == nil || !strings.Contains(cause.Error(), "total mismatch") {
		t.Fatalf("upstream detail lost: %v", cause)
	}
}

func TestSessionClientMissingURLIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"session_id":"cs_test_abc"}}`))
	}))
	defer server.Close()

	client, _ := NewSessionClient(server.URL)
	_, err := client.Create(context.Background(), CreateSessionRequest{OrderID: "ord_1"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeSessionCreation) {
		t.Fatalf("expected session creation error, got %v", err)
	}
}

func TestSessionClientCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/checkout/create-session" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{"session_id":"cs_test_abc","url":"https://pay.example.com/cs"}}`))
	}))
	defer server.Close()

	client, _ := NewSessionClient(server.URL)
	session, err := client.Create(context.Background(), CreateSessionRequest{
		OrderID:       "ord_1",
		CustomerEmail: "jane@example.com",
		OriginURL:     "https://shop.example.com",
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session.URL != "https://pay.example.com/cs" || session.SessionID != "cs_test_abc" {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestNewsletterClientAlreadySubscribed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"ALREADY_SUBSCRIBED","message":"email already subscribed"}}`))
	}))
	defer server.Close()

	client, _ := NewNewsletterClient(server.URL)
	err := client.Subscribe(context.Background(), "jane@example.com")
	if !pkgerrors.IsCode(err, pkgerrors.CodeAlreadySubscribed) {
		t.Fatalf("expected already-subscribed error, got %v", err)
	}
}

func TestNewsletterClientBare400IsAlreadySubscribed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Email already subscribed"}`))
	}))
	defer server.Close()

	client, _ := NewNewsletterClient(server.URL)
	err := client.Subscribe(context.Background(), "jane@example.com")
	if !pkgerrors.IsCode(err, pkgerrors.CodeAlreadySubscribed) {
		t.Fatalf("expected already-subscribed error, got %v", err)
	}
}

func TestNewsletterClientSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"message":"Successfully subscribed!"}}`))
	}))
	defer server.Close()

	client, _ := NewNewsletterClient(server.URL)
	if err := client.Subscribe(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
}

func TestClientsRejectTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	orderClient, _ := NewOrderClient(server.URL)
	if _, err := orderClient.Create(context.Background(), CreateOrderRequest{}); !pkgerrors.IsCode(err, pkgerrors.CodeTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestNewClientsRequireBaseURL(t *testing.T) {
	if _, err := NewOrderClient("  "); err == nil {
		t.Fatal("expected error for blank base url")
	}
	if _, err := NewSessionClient(""); err == nil {
		t.Fatal("expected error for blank base url")
	}
	if _, err := NewNewsletterClient(""); err == nil {
		t.Fatal("expected error for blank base url")
	}
}
