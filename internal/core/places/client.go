package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the Google Maps web service root.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api"

const statusOK = "OK"

// Client talks to the geocoding and places web services. A zero Client uses
// DefaultBaseURL and an http.Client without a timeout.
type Client struct {
	APIKey  string
	Client  *http.Client
	BaseURL string

	// Observe is called after every upstream call with the operation name and
	// the upstream status ("" when the call failed before a status was read).
	Observe func(operation, status string)
}

// New returns a client for the given API key.
func New(apiKey string) *Client {
	return &Client{APIKey: apiKey}
}

// UpstreamError reports a response whose status field was not "OK".
type UpstreamError struct {
	Operation string
	Status    string
	Message   string
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "no error message"
	}
	return fmt.Sprintf("%s failed: status %s: %s", e.Operation, e.Status, msg)
}

// IsUpstream reports whether err carries an upstream status failure.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// envelope is the status wrapper shared by every web service response.
type envelope struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

func (c *Client) get(ctx context.Context, operation, path string, params url.Values, out any) error {
	if c == nil {
		return errors.New("places client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	params.Set("key", c.APIKey)
	endpoint := strings.TrimRight(c.baseURL(), "/") + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.observe(operation, "")
		// The URL carries the key, so report only the cause.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("%s: request failed: %w", operation, err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(operation, "")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: unexpected HTTP status %d: %s", operation, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(operation, "")
		return fmt.Errorf("%s: read response: %w", operation, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.observe(operation, "")
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	c.observe(operation, env.Status)

	if env.Status != statusOK {
		return &UpstreamError{Operation: operation, Status: env.Status, Message: env.ErrorMessage}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}

func (c *Client) baseURL() string {
	if c != nil && strings.TrimSpace(c.BaseURL) != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}

func (c *Client) httpClient() *http.Client {
	if c != nil && c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

func (c *Client) observe(operation, status string) {
	if c.Observe != nil {
		c.Observe(operation, status)
	}
}
