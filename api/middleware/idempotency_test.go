package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type memoryStore struct {
	records map[string]string
}

func newMemoryStore() *memoryStore { return &memoryStore{records: map[string]string{}} }

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	return s.records[key], nil
}

func (s *memoryStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := s.records[key]; ok {
		return false, nil
	}
	s.records[key] = value.(string)
	return true, nil
}

func (s *memoryStore) IdempotencyKey(scope, id string) string {
	return "ut:idempotency:" + scope + ":" + id
}

func newIdempotentRouter(store *memoryStore, hits *int) http.Handler {
	router := chi.NewRouter()
	router.Use(Idempotency(store, nil))
	router.Post("/api/orders", func(w http.ResponseWriter, _ *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"ord_1"}}`))
	})
	return router
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := newIdempotentRouter(store, &hits)

	body := `{"customer_email":"jane@example.com"}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		req.Header.Set("Idempotency-Key", "key-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d status %d", i, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "ord_1") {
			t.Fatalf("request %d body %q", i, rec.Body.String())
		}
	}
	if hits != 1 {
		t.Fatalf("handler ran %d times, want 1", hits)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := newIdempotentRouter(store, &hits)

	first := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"a":1}`))
	first.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"a":2}`))
	second.Header.Set("Idempotency-Key", "key-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, second)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status %d, want 409", rec.Code)
	}
	if hits != 1 {
		t.Fatalf("handler ran %d times, want 1", hits)
	}
}

func TestIdempotencyIgnoresUnlistedRoutes(t *testing.T) {
	store := newMemoryStore()
	router := chi.NewRouter()
	router.Use(Idempotency(store, nil))
	hits := 0
	router.Post("/api/newsletter/subscribe", func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/newsletter/subscribe", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "key-1")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	if hits != 2 {
		t.Fatalf("unlisted route deduplicated: %d hits", hits)
	}
}

func TestIdempotencyPassesThroughWithoutHeader(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := newIdempotentRouter(store, &hits)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	if hits != 2 {
		t.Fatalf("headerless requests deduplicated: %d hits", hits)
	}
	if len(store.records) != 0 {
		t.Fatalf("records stored without key: %d", len(store.records))
	}
}

func TestCartSessionIssuesCookie(t *testing.T) {
	var captured string
	handler := CartSession("ut_session", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if captured == "" {
		t.Fatal("session id missing from context")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "ut_session" || cookies[0].Value != captured {
		t.Fatalf("unexpected cookies %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie not HttpOnly")
	}
}

func TestCartSessionReusesValidCookie(t *testing.T) {
	var captured string
	handler := CartSession("ut_session", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "ut_session", Value: "2d7e2f09-3a3f-4a3e-bb1a-3f6f0c1f9d6e"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if captured != "2d7e2f09-3a3f-4a3e-bb1a-3f6f0c1f9d6e" {
		t.Fatalf("existing session replaced: %q", captured)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("cookie reissued for a valid session")
	}
}
