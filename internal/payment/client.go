package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/urbanthreads/storefront-backend/pkg/errors"
)

const responseBodyReadLimit int64 = 4096

// Client fetches payment session status from the commerce backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// ClientOption configures optional client behavior.
type ClientOption func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds a status client for the given backend base URL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("backend base url required")
	}
	client := &Client{
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

// Status retrieves the current state of a payment session.
func (c *Client) Status(ctx context.Context, sessionID string) (StatusSnapshot, error) {
	if c == nil {
		return StatusSnapshot{}, pkgerrors.New(pkgerrors.CodeDependency, "status client not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return StatusSnapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "payment session id is required")
	}

	endpoint := fmt.Sprintf("%s/api/checkout/status/%s",
		strings.TrimRight(c.baseURL, "/"), url.PathEscape(sessionID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return StatusSnapshot{}, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "build status request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return StatusSnapshot{}, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "execute status request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return StatusSnapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "payment session not found")
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return StatusSnapshot{}, pkgerrors.Wrap(pkgerrors.CodeTransport,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "status request failed")
	}

	var payload struct {
		Data StatusSnapshot `json:"data"`
		StatusSnapshot
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return StatusSnapshot{}, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decode status response")
	}

	snap := payload.Data
	if snap.SessionID == "" && payload.StatusSnapshot.SessionID != "" {
		snap = payload.StatusSnapshot
	}
	if snap.SessionID == "" {
		snap.SessionID = sessionID
	}
	return snap, nil
}
