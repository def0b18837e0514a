package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rvalverde/wheelhouse/internal/logging"
)

// TokenSource supplies the current bearer token, or "" when no session
// exists. The session layer backs it with persistent storage so a token
// survives restarts.
type TokenSource func(ctx context.Context) string

// ForcedLogoutFunc is invoked when the server marks a response with
// logoutRequired. Implementations clear the persisted credential and guest
// flag and route the user to sign-in; the failed call still returns its error.
type ForcedLogoutFunc func(ctx context.Context, reason string)

// Client talks to the giveaway backend. Construct one per application and
// inject it; there are no package-level instances.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onForcedLogout ForcedLogoutFunc
	log            logging.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (tests, timeouts).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource sets the bearer-token provider.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithForcedLogout sets the handler for logoutRequired responses.
func WithForcedLogout(fn ForcedLogoutFunc) Option {
	return func(c *Client) { c.onForcedLogout = fn }
}

func New(baseURL string, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		tokens:  func(context.Context) string { return "" },
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one request against the backend. The request body (if any) is
// sent as JSON; the envelope is decoded and, on success, its data field is
// unmarshalled into out (out may be nil for endpoints without a payload).
//
// Failures are never retried here. A rejected response with the
// logoutRequired marker triggers the forced-logout handler before the error
// is returned to the caller.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "api request failed", "method", method, "path", path, "err", err.Error())
		return wrapTransport(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return wrapTransport(fmt.Errorf("decode response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		apiErr := newError(resp.StatusCode, &env)
		if apiErr.LogoutRequired && c.onForcedLogout != nil {
			c.log.Warn(ctx, "server requested logout", "path", path, "reason", apiErr.Message)
			c.onForcedLogout(ctx, apiErr.Message)
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode %s payload: %w", path, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}
