package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// Client talks to a single Airtable base. Safe for concurrent use.
type Client struct {
	apiKey     string
	baseID     string
	baseURL    string
	http       *http.Client
	maxRetries int
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Nil is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRetry sets how many times rate-limited or failed requests are retried
// and the base delay between attempts.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = max(maxRetries, 0)
		c.retryDelay = max(delay, 0)
	}
}

// New creates a client for cfg.BaseID.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseID == "" {
		return nil, ErrMissingBaseID
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		baseID:     cfg.BaseID,
		baseURL:    baseURL,
		http:       &http.Client{Timeout: timeout},
		maxRetries: max(cfg.MaxRetries, 0),
		retryDelay: max(cfg.RetryDelay, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) tableURL(table string, id string) string {
	u := c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

// do sends one logical request, retrying 429 answers and, except for POST,
// 5xx answers.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return errors.Join(ErrRequestFailed, err)
		}
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return errors.Join(ErrRequestFailed, ctx.Err())
			case <-time.After(c.retryDelay * time.Duration(attempt)):
			}
		}

		status, err := c.attempt(ctx, method, endpoint, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable(method, status) {
			break
		}
	}
	return lastErr
}

func (c *Client) attempt(ctx context.Context, method, endpoint string, payload []byte, out any) (int, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp)
		if resp.StatusCode == http.StatusNotFound {
			return resp.StatusCode, errors.Join(ErrNotFound, ErrRequestFailed, apiErr)
		}
		return resp.StatusCode, errors.Join(ErrRequestFailed, apiErr)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, errors.Join(ErrRequestFailed, err)
	}
	return resp.StatusCode, nil
}

// decodeAPIError understands both error shapes Airtable uses:
// {"error":{"type":..,"message":..}} and {"error":"NOT_FOUND"}.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Type: http.StatusText(resp.StatusCode)}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) != nil || len(envelope.Error) == 0 {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}

	var detail struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if json.Unmarshal(envelope.Error, &detail) == nil && detail.Type != "" {
		apiErr.Type = detail.Type
		apiErr.Message = detail.Message
		return apiErr
	}
	var code string
	if json.Unmarshal(envelope.Error, &code) == nil && code != "" {
		apiErr.Type = code
	}
	return apiErr
}

// retryable reports whether a failed attempt may be sent again. A 429 means
// the request was not processed. A 5xx may come after a POST was stored, so
// only idempotent-by-effect methods retry on it.
func retryable(method string, status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= http.StatusInternalServerError && method != http.MethodPost
}
