// Package greeting fetches the message shown in the greeting modal.
package greeting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Veraticus/tasknest/internal/service"
)

// FailureMessage replaces the message whenever the server answers with a
// status other than 200.
const FailureMessage = "API call failed!"

// Errors for requests that never produced a usable response.
var (
	ErrTransport = errors.New("greeting request failed")
	ErrDecode    = errors.New("greeting response is not valid JSON")
)

// Client issues the greeting request.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// NewClient returns a client for endpoint. The default http.Client has no
// timeout; the request only ends early when its context is canceled.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL the client calls.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type response struct {
	Message string `json:"message"`
}

// Fetch issues one GET to the endpoint. A non-200 status is not an error:
// the result carries FailureMessage instead.
func (c *Client) Fetch(ctx context.Context) (service.GreetingResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return service.GreetingResult{}, fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return service.GreetingResult{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		slog.Debug("greeting endpoint returned non-200", "endpoint", c.endpoint, "status", resp.StatusCode)
		return service.GreetingResult{
			Message:    FailureMessage,
			StatusCode: resp.StatusCode,
		}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return service.GreetingResult{}, fmt.Errorf("%w: failed to read response: %w", ErrTransport, err)
	}

	var payload response
	if err := json.Unmarshal(body, &payload); err != nil {
		return service.GreetingResult{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return service.GreetingResult{
		Message:    payload.Message,
		StatusCode: resp.StatusCode,
		OK:         true,
	}, nil
}

// Static always returns the same message without any network traffic.
type Static struct {
	Message string
}

// Fetch returns the fixed message.
func (s Static) Fetch(context.Context) (service.GreetingResult, error) {
	return service.GreetingResult{Message: s.Message, StatusCode: http.StatusOK, OK: true}, nil
}

var (
	_ service.GreetingFetcher = (*Client)(nil)
	_ service.GreetingFetcher = Static{}
)
