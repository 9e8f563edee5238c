// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/helper/gc"
)

// DefaultTimeout is the request timeout used when none is configured.
const DefaultTimeout = 10 * time.Second

// StatusError reports a non-200 answer from a remote endpoint.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("transport: %s returned status %d", e.URL, e.StatusCode)
}

// HTTPConfig holds HTTP client configuration for timestamp and revocation requests
type HTTPConfig struct {
	Timeout   time.Duration // HTTP request timeout
	Version   string        // Application version for User-Agent
	UserAgent string        // Custom User-Agent string, if empty will be constructed from Version

	mu     sync.Mutex
	client *http.Client
}

// NewHTTPConfig creates a new HTTP configuration with default values.
//
// Parameters:
//   - version: Application version string
//
// Returns:
//   - *HTTPConfig: New HTTP configuration using [DefaultTimeout]
func NewHTTPConfig(version string) *HTTPConfig {
	return &HTTPConfig{
		Timeout: DefaultTimeout,
		Version: version,
	}
}

// GetUserAgent returns the User-Agent string, constructing it if not set.
func (c *HTTPConfig) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("AdES-Remote-Signer/%s (+https://github.com/H0llyW00dzZ/ades-remote-signer)", c.Version)
}

// Client returns an HTTP client configured with the current timeout.
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) Client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		c.client = &http.Client{Timeout: c.Timeout}
		return c.client
	}

	if c.client.Timeout != c.Timeout {
		c.client.Timeout = c.Timeout
	}

	return c.client
}

// SetClient replaces the underlying client, e.g. with one from [httptest.Server].
//
// Thread Safety: Safe for concurrent use.
//
// [httptest.Server]: https://pkg.go.dev/net/http/httptest#Server
func (c *HTTPConfig) SetClient(client *http.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.client = client
	if client != nil {
		c.Timeout = client.Timeout
	}
}

// Do sends a request and returns the response body.
//
// The User-Agent header is set, the body is read through a pooled buffer and
// any status other than 200 yields a [*StatusError].
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - method: HTTP method
//   - url: Target URL
//   - contentType: Request Content-Type, ignored when empty
//   - accept: Accept header, ignored when empty
//   - body: Request body, may be nil
//
// Returns:
//   - []byte: Response body owned by the caller
//   - error: Transport, status or read error
func (c *HTTPConfig) Do(ctx context.Context, method, url, contentType, accept string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.GetUserAgent())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.Client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := gc.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to read response from %s: %w", url, err)
	}

	return data, nil
}
