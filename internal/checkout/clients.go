package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
)

const responseBodyReadLimit int64 = 4096

// Option configures optional client behavior.
type Option func(*clientBase)

type clientBase struct {
	httpClient *http.Client
	baseURL    string
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientBase) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured backend base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *clientBase) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

func newClientBase(baseURL string, opts ...Option) (clientBase, error) {
	base := clientBase{
		baseURL:    strings.TrimSpace(baseURL),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&base)
		}
	}
	if base.baseURL == "" {
		return clientBase{}, fmt.Errorf("backend base url required")
	}
	if base.httpClient == nil {
		base.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return base, nil
}

func (c clientBase) endpoint(path string) string {
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func (c clientBase) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "marshal request payload")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "execute request")
	}
	return resp, nil
}

// readUpstreamDetail extracts a human-readable failure message from an
// upstream error body, tolerating both the structured envelope and bare
// {"detail": ...} payloads.
func readUpstreamDetail(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, responseBodyReadLimit))
	var envelope struct {
		Detail string `json:"detail"`
		Error  struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Detail != "" {
			return envelope.Detail
		}
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

func upstreamErrorCode(body []byte) string {
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		return envelope.Error.Code
	}
	return ""
}

// OrderItem is one cart line sent to the order API. ProductID is
// numeric on the wire to match the catalog's product ids.
type OrderItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// CreateOrderRequest is the payload for the order creation endpoint.
type CreateOrderRequest struct {
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	CustomerEmail string          `json:"customer_email"`
}

// OrderClient creates orders against the commerce backend.
type OrderClient struct {
	clientBase
}

// NewOrderClient builds an order API client for the given backend.
func NewOrderClient(baseURL string, opts ...Option) (*OrderClient, error) {
	base, err := newClientBase(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &OrderClient{clientBase: base}, nil
}

// Create submits the order and returns its server-assigned ID.
func (c *OrderClient) Create(ctx context.Context, req CreateOrderRequest) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "order client not configured")
	}

	resp, err := c.postJSON(ctx, "/api/orders", req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := readUpstreamDetail(resp.Body)
		return "", pkgerrors.Wrap(pkgerrors.CodeOrderCreation,
			fmt.Errorf("status %d: %s", resp.StatusCode, detail), "order creation rejected")
	}

	var payload struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decode order response")
	}

	orderID := payload.Data.ID
	if orderID == "" {
		orderID = payload.ID
	}
	if orderID == "" {
		return "", pkgerrors.New(pkgerrors.CodeOrderCreation, "order response missing id")
	}
	return orderID, nil
}

// CreateSessionRequest is the payload for the payment session endpoint.
type CreateSessionRequest struct {
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email"`
	OriginURL     string `json:"origin_url"`
}

// PaymentSession is the created payment session handle.
type PaymentSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// SessionClient creates hosted payment sessions against the commerce
// backend.
type SessionClient struct {
	clientBase
}

// NewSessionClient builds a payment session client for the given backend.
func NewSessionClient(baseURL string, opts ...Option) (*SessionClient, error) {
	base, err := newClientBase(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &SessionClient{clientBase: base}, nil
}

// Create opens a payment session for the order and returns the redirect
// target. A 2xx response without a redirect URL is still a failure: the
// customer has nowhere to go.
func (c *SessionClient) Create(ctx context.Context, req CreateSessionRequest) (PaymentSession, error) {
	if c == nil {
		return PaymentSession{}, pkgerrors.New(pkgerrors.CodeDependency, "session client not configured")
	}

	resp, err := c.postJSON(ctx, "/api/checkout/create-session", req)
	if err != nil {
		return PaymentSession{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := readUpstreamDetail(resp.Body)
		return PaymentSession{}, pkgerrors.Wrap(pkgerrors.CodeSessionCreation,
			fmt.Errorf("status %d: %s", resp.StatusCode, detail), "payment session rejected")
	}

	var payload struct {
		Data PaymentSession `json:"data"`
		PaymentSession
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return PaymentSession{}, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decode session response")
	}

	session := payload.Data
	if session.URL == "" {
		session = payload.PaymentSession
	}
	if session.URL == "" {
		return PaymentSession{}, pkgerrors.New(pkgerrors.CodeSessionCreation, "session response missing redirect url")
	}
	return session, nil
}

// NewsletterClient forwards subscribe requests to the commerce backend.
type NewsletterClient struct {
	clientBase
}

// NewNewsletterClient builds a newsletter client for the given backend.
func NewNewsletterClient(baseURL string, opts ...Option) (*NewsletterClient, error) {
	base, err := newClientBase(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &NewsletterClient{clientBase: base}, nil
}

// Subscribe registers the email with the newsletter. A 400 from the
// backend means the address is already on the list.
func (c *NewsletterClient) Subscribe(ctx context.Context, email string) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "newsletter client not configured")
	}

	resp, err := c.postJSON(ctx, "/api/newsletter/subscribe", struct {
		Email string `json:"email"`
	}{Email: email})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if resp.StatusCode == http.StatusBadRequest {
		code := upstreamErrorCode(raw)
		if code == "" || code == string(pkgerrors.CodeAlreadySubscribed) {
			return pkgerrors.New(pkgerrors.CodeAlreadySubscribed, "email already subscribed")
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeTransport,
		fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))), "newsletter subscribe failed")
}
