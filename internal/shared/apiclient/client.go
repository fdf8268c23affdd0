package apiclient

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

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/apperror"
)

const requestIDHeader = "X-Request-Id"

// TokenSource hands out the bearer credential for authenticated calls.
// The session implements it; it fails when nobody is logged in.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks JSON to the catalog REST API. It never retries and never caches.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func(ctx context.Context)
}

type Option func(*Client)

// WithHTTPClient swaps the underlying *http.Client (tests use the httptest one).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHook is called after an authenticated call came back 401.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request describes one round trip.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// Auth attaches "Authorization: Bearer <token>".
	Auth bool
	// Fallback is the message used when the server gives none, e.g. "Failed to fetch authors".
	Fallback string
}

// Do performs the request and decodes a success body into out (out may be nil).
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	req, err := c.build(ctx, r)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().
			Err(err).
			Str("request_id", req.Header.Get(requestIDHeader)).
			Str("method", r.Method).
			Str("path", r.Path).
			Msg("catalog api unreachable")
		return &apperror.RemoteFailure{Op: r.Fallback, Message: r.Fallback, Err: err}
	}
	defer resp.Body.Close()

	log.Debug().
		Str("request_id", req.Header.Get(requestIDHeader)).
		Str("method", r.Method).
		Str("path", r.Path).
		Int("status", resp.StatusCode).
		Dur("latency_ms", time.Since(start)).
		Msg("catalog api call")

	if resp.StatusCode >= 400 {
		failure := decodeFailure(resp, r.Fallback)
		log.Warn().
			Str("request_id", req.Header.Get(requestIDHeader)).
			Str("path", r.Path).
			Int("status", failure.Status).
			Str("message", failure.Message).
			Msg("catalog api call failed")
		if r.Auth && failure.IsUnauthorized() && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return failure
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &apperror.RemoteFailure{
			Op:      r.Fallback,
			Status:  resp.StatusCode,
			Message: r.Fallback,
			Err:     fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

func (c *Client) build(ctx context.Context, r Request) (*http.Request, error) {
	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	if r.Auth {
		if c.tokens == nil {
			return nil, apperror.Denied(r.Method, r.Path, apperror.ErrNotAuthenticated)
		}
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// decodeFailure pulls a human readable message out of an error body.
// Accepted shapes: {"message":...}, {"error":...}, {"error":{"message":...}},
// ASP.NET problem details {"title":...}, or a short plain-text body.
func decodeFailure(resp *http.Response, fallback string) *apperror.RemoteFailure {
	failure := &apperror.RemoteFailure{Op: fallback, Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	text := strings.TrimSpace(string(raw))

	var body struct {
		Message string          `json:"message"`
		Title   string          `json:"title"`
		Code    string          `json:"code"`
		Error   json.RawMessage `json:"error"`
	}
	if text != "" && json.Unmarshal(raw, &body) == nil {
		failure.Code = body.Code
		failure.Message = firstNonEmpty(body.Message, errorField(body.Error, &failure.Code), body.Title)
	} else if text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
		failure.Message = text
	}

	if failure.Message == "" {
		failure.Message = fallback
	}
	if failure.Message == "" {
		failure.Message = resp.Status
	}
	return failure
}

func errorField(raw json.RawMessage, code *string) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var nested struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &nested) == nil {
		if *code == "" {
			*code = nested.Code
		}
		return nested.Message
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
