// Package api is a thin client for the formbot REST service.
//
// Every method performs a single bearer-authenticated HTTP call and returns
// either the decoded payload or an *Error tagged with a Kind. No retries are
// attempted.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single request when no http.Client is supplied.
	DefaultTimeout = 15 * time.Second

	maxResponseBytes = 1 << 20
)

// Service endpoints, relative to the base URL.
const (
	pathProfile      = "/user/dashboard"
	pathResolveEmail = "/user/return"
	pathFolders      = "/folder/all"
	pathFolderCreate = "/folder/create"
	pathFolderDelete = "/folder/delete/"
	pathFolderUpdate = "/folder/update"
	pathForms        = "/form/all"
	pathFormDelete   = "/form/delete/"
)

// Client calls the formbot service on behalf of one user.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of c that authenticates as the given token.
// The copy shares the underlying http.Client.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request and decodes the response into out when out is non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:    kindForStatus(resp.StatusCode),
			Op:      op,
			Status:  resp.StatusCode,
			Message: serviceMessage(raw, resp.Status),
		}
	}

	if out == nil {
		return nil
	}
	if err := decodeData(raw, out); err != nil {
		return &Error{Kind: KindDecode, Op: op, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// decodeData unmarshals raw into out, unwrapping a {"data": ...} envelope when present.
func decodeData(raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return errors.New("empty response body")
	}
	if trimmed[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
			trimmed = env.Data
		}
	}
	return json.Unmarshal(trimmed, out)
}

// serviceMessage extracts a human message from an error body.
func serviceMessage(raw []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fallback
}
