package validator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixarntz/screen-reader-check/internal/model"
)

// DefaultServiceURL is the public Nu HTML checker instance.
const DefaultServiceURL = "https://validator.w3.org/nu/"

// Client validates HTML documents against a Nu checker service.
//
// Design decision: We talk to an external service instead of bundling a
// validator because:
//  1. Full HTML validation is a moving target tracking the living standard
//  2. The Nu checker is the de facto reference implementation
//  3. Validation findings are advisory, so a network dependency is acceptable
type Client struct {
	// serviceURL is the base URL of the Nu checker.
	serviceURL string

	// client is the HTTP client used for requests.
	client *http.Client

	// timeout is the per-request timeout.
	timeout time.Duration

	// logger records degraded service responses.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithServiceURL points the client at a different checker instance,
// e.g. a self-hosted one.
func WithServiceURL(serviceURL string) Option {
	return func(c *Client) {
		c.serviceURL = serviceURL
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger for degraded responses.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client. A nil httpClient uses http.DefaultClient.
func New(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		serviceURL: DefaultServiceURL,
		client:     httpClient,
		timeout:    30 * time.Second,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// nuResponse is the JSON envelope the Nu checker returns for out=json.
type nuResponse struct {
	Messages []model.ValidationIssue `json:"messages"`
}

// Validate submits the document to the checker and returns its findings.
// An empty slice with a nil error means the service considers the
// document clean, which is distinct from a service failure.
func (c *Client) Validate(ctx context.Context, html string) ([]model.ValidationIssue, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL+"?out=json", bytes.NewReader([]byte(html)))
	if err != nil {
		return nil, fmt.Errorf("failed to create validator request: %w", err)
	}
	req.Header.Set("Content-Type", "text/html; charset=utf-8")
	req.Header.Set("User-Agent", "screen-reader-check/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("validator service unreachable", "url", c.serviceURL, "error", err)
		return nil, fmt.Errorf("failed to reach validator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("validator service returned error status", "url", c.serviceURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("validator returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read validator response: %w", err)
	}

	var decoded nuResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		c.logger.Warn("validator service returned malformed response", "url", c.serviceURL, "error", err)
		return nil, fmt.Errorf("failed to decode validator response: %w", err)
	}

	return decoded.Messages, nil
}
