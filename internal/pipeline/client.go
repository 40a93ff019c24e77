package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Runner defines the interface for triggering a pipeline run.
// This interface is implemented by *Client and can be used for testing.
type Runner interface {
	Send(ctx context.Context, req Request) (*Response, error)
	Endpoint() string
}

// Ensure Client implements Runner at compile time.
var _ Runner = (*Client)(nil)

// Client talks to the LeadFlow pipeline HTTP API.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultEndpoint is where the pipeline service listens by default.
	DefaultEndpoint  = "http://127.0.0.1:8000/run-leadflow-pipeline"
	defaultUserAgent = "leadflow/0.1"
	maxBodyBytes     = 32 << 20
)

// NewClient builds a Client for the given endpoint. A zero timeout leaves the
// request bounded only by the caller's context.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	u, err := ParseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	if timeout < 0 {
		timeout = 0
	}
	return &Client{
		endpoint: u,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Endpoint returns the resolved pipeline URL.
func (c *Client) Endpoint() string {
	if c == nil || c.endpoint == nil {
		return ""
	}
	return c.endpoint.String()
}

// Send posts the request and returns the status and body. Only transport
// failures are returned as errors; non-2xx statuses are left to the caller.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("execute request: %w", ctxErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// IsUnreachable reports whether err is a transport-level connection failure.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// ParseEndpoint normalizes an endpoint value. Bare host:port values get the
// default pipeline path.
func ParseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", endpoint)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/run-leadflow-pipeline"
	}
	u.Fragment = ""
	return u, nil
}
