// Package daftapi is a client for the Daft.ie listings REST API. It is only
// used to look up a single listing by ID and requires an API key.
package daftapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amineremache/dafty-mcp/internal/logger"
)

// ErrNoAPIKey is returned before any request is made when no key is configured.
var ErrNoAPIKey = errors.New("daft api key is not configured")

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("daft api returned status %d: %s", e.StatusCode, e.Body)
}

// IsAuth reports whether the API rejected the credentials.
func (e *StatusError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Config configures the client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// DefaultConfig returns the public API endpoint with no key.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.daft.ie/v3",
		Timeout: 15 * time.Second,
	}
}

// Client calls the listings API.
type Client struct {
	config Config
	http   *http.Client
}

// New creates a client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
	}
}

// HasKey reports whether an API key is configured.
func (c *Client) HasKey() bool {
	return c.config.APIKey != ""
}

// GetDetails fetches the raw listing document for id.
func (c *Client) GetDetails(ctx context.Context, id string) (json.RawMessage, error) {
	if !c.HasKey() {
		return nil, ErrNoAPIKey
	}

	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/listings/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.config.APIKey)
	req.Header.Set("Accept", "application/json")

	logger.Debug("daft api request", "id", id, "url", endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("daft api request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read daft api response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("daft api returned invalid JSON for listing %s", id)
	}
	return json.RawMessage(body), nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
