// Package api is the client of the listing REST API.
//
// Every call goes through Client.Do (or Client.Raw), which resolves the
// path against the configured base URL, attaches a bearer token for
// requests flagged with Auth, and normalizes responses:
//
//   - non-2xx statuses become *HTTPError, whose message is the server's
//     own when the body can be parsed, else "HTTP <status>";
//   - a blank 2xx body is an absent value, never a parse error;
//   - a non-blank body that is not JSON is ErrMalformedResponse.
//
// A missing base URL fails every call with ErrMissingBaseURL before any
// network I/O. The client never retries and has no timeout of its own;
// callers bound requests through their context.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// TokenSource yields the bearer token for authenticated calls.
// ok is false when no session exists.
type TokenSource interface {
	Token(ctx context.Context) (token string, ok bool)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token(context.Context) (string, bool) {
	return string(t), t != ""
}

// Request describes a single API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is encoded as JSON when non-nil.
	Body   any
	Header http.Header
	// Auth attaches the session token, when one exists.
	Auth bool
}

// Client issues requests against the listing API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTokenSource sets where authenticated calls read the token from.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) {
		c.tokens = src
	}
}

// WithLogger sets the logger that records outgoing requests.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a Client for the given base URL. An empty base URL is
// accepted here and reported by every call.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTokens returns a copy of c that reads tokens from src.
func (c *Client) WithTokens(src TokenSource) *Client {
	clone := *c
	clone.tokens = src
	return &clone
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs req and decodes a JSON response into out. A blank
// response body leaves out untouched. out may be nil.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	raw, err := c.Raw(ctx, req)
	if err != nil {
		return err
	}
	if raw == nil || out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// Raw performs req and returns the response body. It returns nil bytes
// for a blank body and ErrMalformedResponse when the body is not JSON.
func (c *Client) Raw(ctx context.Context, req Request) ([]byte, error) {
	if c.baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Del("Authorization")
	if req.Auth && c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok && token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.DebugContext(ctx, "calling api",
		slog.String("method", method),
		slog.String("url", target),
		slog.Bool("auth", req.Auth),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.Path, err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if readErr != nil {
			data = nil
		}
		return nil, newHTTPError(resp.StatusCode, data)
	}
	if readErr != nil {
		return nil, fmt.Errorf("read response body: %w", readErr)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if !json.Valid(trimmed) {
		return nil, ErrMalformedResponse
	}
	return trimmed, nil
}
