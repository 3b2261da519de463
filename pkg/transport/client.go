// Package transport is the authenticated HTTPS client for the Elydora
// platform API. It owns URL composition, bearer auth, bounded retry with
// exponential backoff, and mapping of error responses onto the typed
// error taxonomy.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/contracts"
)

// DefaultBaseURL is used when the caller does not configure one.
const DefaultBaseURL = "https://api.elydora.com"

// DefaultMaxRetries bounds retry attempts: a request is issued at most
// 1+DefaultMaxRetries times.
const DefaultMaxRetries = 3

const defaultTimeout = 30 * time.Second

// Client is a typed client for the Elydora v1 API. It is safe for concurrent
// use; the underlying http.Client connection pool may be shared.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	maxRetries int
	logger     *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithMaxRetries bounds retries; n+1 attempts are issued at most.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithLogger sets the slog logger used for retry diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client. Trailing slashes on baseURL are stripped; an empty
// baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxRetries: DefaultMaxRetries,
		logger:     slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.maxRetries < 0 {
		c.maxRetries = 0
	}
	return c
}

// SetToken replaces the bearer token, e.g. after login.
func (c *Client) SetToken(token string) { c.token = token }

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// retryPolicy wraps the exponential schedule (1s, 2s, 4s, ... capped at 10s,
// no jitter) and lets an attempt override the next delay from a Retry-After
// header.
type retryPolicy struct {
	exp      *backoff.ExponentialBackOff
	override *time.Duration
}

func newRetryPolicy() *retryPolicy {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 1 * time.Second
	exp.RandomizationFactor = 0
	exp.Multiplier = 2
	exp.MaxInterval = 10 * time.Second
	return &retryPolicy{exp: exp}
}

func (p *retryPolicy) NextBackOff() time.Duration {
	// Advance the exponential schedule even when overridden, so a later
	// attempt without Retry-After continues where it would have been.
	next := p.exp.NextBackOff()
	if p.override != nil {
		next = *p.override
		p.override = nil
	}
	return next
}

func (p *retryPolicy) Reset() {
	p.exp.Reset()
	p.override = nil
}

// do issues one API call with retries. body may be nil, a json.RawMessage of
// pre-canonicalized bytes, or any value marshaled with encoding/json. out, if
// non-nil, receives the decoded 2xx response body; 204 leaves it untouched.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case json.RawMessage:
		payload = b
	default:
		var err error
		payload, err = json.Marshal(b)
		if err != nil {
			return contracts.NewValidationError("encode request body: %v", err)
		}
	}

	policy := newRetryPolicy()
	attempt := 0
	raw, err := backoff.Retry(ctx, func() (json.RawMessage, error) {
		attempt++
		res, aerr := c.attempt(ctx, method, path, payload, policy)
		if aerr != nil && attempt <= c.maxRetries {
			var perm *backoff.PermanentError
			if !errors.As(aerr, &perm) {
				c.logger.Debug("elydora request retrying",
					"method", method, "path", path, "attempt", attempt, "error", aerr)
			}
		}
		return res, aerr
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(c.maxRetries)+1),
	)
	if err != nil {
		if apiErr, ok := contracts.AsError(err); ok {
			return apiErr
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if out != nil && len(raw) > 0 {
		if derr := json.Unmarshal(raw, out); derr != nil {
			return &contracts.Error{
				Status:    http.StatusOK,
				Code:      contracts.CodeInternal,
				Message:   fmt.Sprintf("decode response body: %v", derr),
				RequestID: "unknown",
			}
		}
	}
	return nil
}

// attempt issues a single HTTP request and classifies the outcome: transport
// errors and 429/5xx are retryable, other non-2xx are permanent.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, policy *retryPolicy) (json.RawMessage, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, backoff.Permanent(contracts.NewValidationError("build request: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Connection, DNS, TLS and timeout errors are retryable unless the
		// caller's context is already gone.
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	}

	apiErr := parseAPIError(resp.StatusCode, raw)
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		if secs, ok := retryAfterSeconds(resp.Header); ok {
			d := time.Duration(secs) * time.Second
			policy.override = &d
		}
		return nil, apiErr
	}
	return nil, backoff.Permanent(apiErr)
}

// parseAPIError maps a non-2xx body onto the typed taxonomy. Bodies that are
// not the structured {"error":{...}} envelope yield INTERNAL_ERROR (or
// RATE_LIMITED for a bare 429) with request id "unknown".
func parseAPIError(status int, body []byte) *contracts.Error {
	var env struct {
		Error struct {
			Code      string         `json:"code"`
			Message   string         `json:"message"`
			RequestID string         `json:"request_id"`
			Details   map[string]any `json:"details,omitempty"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Code != "" {
		return &contracts.Error{
			Status:    status,
			Code:      contracts.ErrorCode(env.Error.Code),
			Message:   env.Error.Message,
			RequestID: env.Error.RequestID,
			Details:   env.Error.Details,
		}
	}
	code := contracts.CodeInternal
	if status == http.StatusTooManyRequests {
		code = contracts.CodeRateLimited
	}
	return &contracts.Error{
		Status:    status,
		Code:      code,
		Message:   fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status)),
		RequestID: "unknown",
	}
}

// retryAfterSeconds parses an integer-seconds Retry-After header. The
// HTTP-date form is ignored and the exponential schedule applies instead.
func retryAfterSeconds(h http.Header) (int, bool) {
	v := h.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0, false
	}
	return secs, true
}
