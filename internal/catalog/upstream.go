package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
)

const responseBodyReadLimit int64 = 4096

// Product is a catalog entry as served to the storefront.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

// UpstreamClient fetches products from the commerce backend.
type UpstreamClient struct {
	httpClient *http.Client
	baseURL    string
}

// UpstreamOption configures optional client behavior.
type UpstreamOption func(*UpstreamClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) UpstreamOption {
	return func(c *UpstreamClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewUpstreamClient builds a catalog client for the given backend.
func NewUpstreamClient(baseURL string, opts ...UpstreamOption) (*UpstreamClient, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("catalog base url required")
	}
	client := &UpstreamClient{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return client, nil
}

// FetchAll returns the whole catalog.
func (c *UpstreamClient) FetchAll(ctx context.Context) ([]Product, error) {
	return c.fetchList(ctx, "/api/products")
}

// FetchCategory returns products the backend matched to the category.
func (c *UpstreamClient) FetchCategory(ctx context.Context, category string) ([]Product, error) {
	return c.fetchList(ctx, "/api/products/category/"+url.PathEscape(category))
}

// FetchByID returns one product or a not-found error.
func (c *UpstreamClient) FetchByID(ctx context.Context, id string) (Product, error) {
	if c == nil {
		return Product{}, pkgerrors.New(pkgerrors.CodeDependency, "catalog client not configured")
	}
	resp, err := c.get(ctx, "/api/products/"+url.PathEscape(id))
	if err != nil {
		return Product{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if resp.StatusCode != http.StatusOK {
		return Product{}, c.statusError(resp)
	}

	var payload struct {
		Data Product `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decode product response")
	}
	return payload.Data, nil
}

func (c *UpstreamClient) fetchList(ctx context.Context, path string) ([]Product, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog client not configured")
	}
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var payload struct {
		Data []Product `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decode product list")
	}
	return payload.Data, nil
}

func (c *UpstreamClient) get(ctx context.Context, path string) (*http.Response, error) {
	endpoint := strings.TrimRight(c.baseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "build catalog request")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "execute catalog request")
	}
	return resp, nil
}

func (c *UpstreamClient) statusError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	return pkgerrors.Wrap(pkgerrors.CodeTransport,
		fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "catalog request failed")
}
