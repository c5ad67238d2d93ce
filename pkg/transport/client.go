package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/getyouridx/pychargify/pkg/entity"
)

const (
	// userAgent identifies this client to the API.
	userAgent = "pychargify"

	// DefaultTimeout bounds each call. The upstream API has no streaming
	// responses, so a whole-call deadline is sufficient.
	DefaultTimeout = 30 * time.Second
)

// Config holds the per-tenant settings for a transport client.
type Config struct {
	// APIKey authenticates every request as basic auth "{APIKey}:x". The
	// literal password "x" is required by the API, it is not a secret.
	APIKey string

	// Subdomain is the tenant namespace forming the request host.
	Subdomain string

	// BaseHost overrides entity.DefaultBaseHost when set.
	BaseHost string

	// BaseURL, when set, replaces the derived https://{sub}{BaseHost}
	// entirely. Intended for tests against local servers.
	BaseURL string

	// Timeout bounds each call; zero means DefaultTimeout.
	Timeout time.Duration

	// HTTPClient replaces the default client when set. The default opens a
	// fresh connection per call (keep-alives disabled) and applies Timeout.
	HTTPClient *http.Client

	// Logger receives per-request debug records. Nil discards them.
	Logger *slog.Logger
}

// Client performs HTTP calls against one tenant's endpoint. There are no
// retries: transient failures and classified API errors both propagate to
// the caller unchanged.
type Client struct {
	http          *http.Client
	baseURL       string
	authorization string
	logger        *slog.Logger
}

// NewClient builds a transport client from cfg.
func NewClient(cfg Config) *Client {
	baseHost := cfg.BaseHost
	if baseHost == "" {
		baseHost = entity.DefaultBaseHost
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://" + cfg.Subdomain + baseHost
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{DisableKeepAlives: true},
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		http:          httpClient,
		baseURL:       baseURL,
		authorization: "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.APIKey+":x")),
		logger:        logger,
	}
}

// Request sends one HTTP call and returns the raw response body. Statuses
// in the failure table surface as *StatusError; everything else, including
// 200 and 201, returns the body as-is.
func (c *Client) Request(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("transport: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", c.authorization)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("Content-Type", `text/xml; charset="UTF-8"`)
	req.ContentLength = int64(len(body))

	requestID := uuid.NewString()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: read %s %s response: %w", method, path, err)
	}

	c.logger.Debug("api request",
		"id", requestID,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"response_bytes", len(data))

	if err := classify(resp.StatusCode, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Get performs a GET with no body.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.Request(ctx, http.MethodGet, path, nil)
}

// Post performs a POST with the given body.
func (c *Client) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	return c.Request(ctx, http.MethodPost, path, body)
}

// Put performs a PUT with the given body.
func (c *Client) Put(ctx context.Context, path string, body []byte) ([]byte, error) {
	return c.Request(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE. The API expects a body on some deletes
// (unsubscribe carries a cancellation message).
func (c *Client) Delete(ctx context.Context, path string, body []byte) ([]byte, error) {
	return c.Request(ctx, http.MethodDelete, path, body)
}
