package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/urbanthreads/storefront-backend/pkg/db/models"
	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
)

type stubProductService struct {
	category string
	products []models.Product
	product  *models.Product
	err      error
}

func (s *stubProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products, s.err
}

func (s *stubProductService) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	s.category = category
	return s.products, s.err
}

func (s *stubProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) SeedIfEmpty(ctx context.Context) (int, error) {
	return 0, nil
}

func productRouter(svc *stubProductService) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/products", ListProducts(svc, nil))
	r.Get("/api/products/category/{category}", ListProductsByCategory(svc, nil))
	r.Get("/api/products/{productId}", GetProduct(svc, nil))
	return r
}

func TestListProducts(t *testing.T) {
	svc := &stubProductService{products: []models.Product{
		{ID: 1, Name: "Urban Essential Tee", Category: "clothes", Price: decimal.NewFromInt(28)},
		{ID: 6, Name: "City Stride Socks", Category: "socks", Price: decimal.NewFromInt(12)},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	productRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data []models.Product `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 products, got %d", len(envelope.Data))
	}
}

func TestListProductsByCategory_SanitizesParam(t *testing.T) {
	svc := &stubProductService{}

	req := httptest.NewRequest(http.MethodGet, "/api/products/category/%20clothes%20", nil)
	rec := httptest.NewRecorder()
	productRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.category != "clothes" {
		t.Fatalf("expected trimmed category, got %q", svc.category)
	}
}

func TestGetProduct(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &stubProductService{product: &models.Product{ID: 3, Name: "Street Layer Jacket"}}
		req := httptest.NewRequest(http.MethodGet, "/api/products/3", nil)
		rec := httptest.NewRecorder()
		productRouter(svc).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		svc := &stubProductService{}
		req := httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)
		rec := httptest.NewRecorder()
		productRouter(svc).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
		req := httptest.NewRequest(http.MethodGet, "/api/products/999", nil)
		rec := httptest.NewRecorder()
		productRouter(svc).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestListProducts_NilService(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	ListProducts(nil, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for nil service, got %d", rec.Code)
	}
}
