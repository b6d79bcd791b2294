package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/rockquest-admin/internal/middleware"
)

// TokenSource supplies the bearer token for outbound requests. An empty token
// means the request is sent unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token
type StaticToken string

// Token returns the token
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// Requester is the request surface every screen depends on
type Requester interface {
	Get(ctx context.Context, path string, result any) error
	Post(ctx context.Context, path string, body, result any) error
	Put(ctx context.Context, path string, body, result any) error
	Delete(ctx context.Context, path string) error
}

// Config holds backend connection settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the settings used for local development
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000",
		Timeout: 30 * time.Second,
	}
}

// Client is an HTTP client for the RockQuest backend
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure Client satisfies Requester
var _ Requester = (*Client)(nil)

// NewClient creates a new backend client with no token source
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		tokens:  StaticToken(""),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// WithTokenSource returns a copy of the client that authenticates with ts.
// The copy shares the underlying connection pool.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	clone := *c
	clone.tokens = ts
	return &clone
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs an HTTP request against the backend. body is JSON-encoded when
// non-nil; a successful response body is decoded into result when non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := middleware.RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(middleware.RequestIDHeader, requestID)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("backend request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
	)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return newStatusError(method, path, resp.StatusCode, respBody)
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, body, result)
}

// Put performs a PUT request
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPut, path, body, result)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}
