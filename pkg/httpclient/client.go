package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const userAgent = "movieflix/1.0"

// maxErrorBody caps how much of a failed response body is kept on StatusError
const maxErrorBody = 4 << 10

// StatusError is returned when the server answers with a non-2xx status
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, http.StatusText(e.Code))
}

// IsStatus reports whether err is a StatusError with the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// Options configures a Client
type Options struct {
	Timeout    time.Duration
	Retries    int // total attempts for GET requests, minimum 1
	RetryDelay time.Duration
}

// Client is an HTTP client with bounded retry for idempotent requests
type Client struct {
	httpClient *http.Client
	retries    int
	retryDelay time.Duration
}

// NewClient creates a new HTTP client
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Retries < 1 {
		opts.Retries = 1
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 1 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		retries:    opts.Retries,
		retryDelay: opts.RetryDelay,
	}
}

// Fetch makes an HTTP GET request, retrying rate limits and transport errors
// up to the configured number of attempts.
func (c *Client) Fetch(ctx context.Context, targetURL string, header http.Header) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range header {
			req.Header[k] = v
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		body, err := c.do(req)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) {
			break
		}

		log.Warn().
			Int("attempt", attempt).
			Err(err).
			Str("url", redact(req)).
			Msg("Request failed")

		if attempt < c.retries {
			waitTime := c.retryDelay * time.Duration(math.Pow(2, float64(attempt-1)))
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	if c.retries > 1 {
		return nil, fmt.Errorf("all retries failed: %w", lastErr)
	}
	return nil, lastErr
}

// FetchJSON fetches targetURL and decodes the JSON body into dest
func (c *Client) FetchJSON(ctx context.Context, targetURL string, header http.Header, dest interface{}) error {
	data, err := c.Fetch(ctx, targetURL, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// PostJSON posts payload as JSON and decodes the response into dest. POSTs are never retried.
// Non-2xx responses whose body still decodes into dest are returned as a StatusError
// with dest populated, so callers can read server-provided messages.
func (c *Client) PostJSON(ctx context.Context, targetURL string, payload, dest interface{}) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && len(se.Body) > 0 {
			_ = json.Unmarshal(se.Body, dest)
		}
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	// 读取并立即关闭 body
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Body: body}
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	return body, nil
}

// DecodeError wraps a malformed JSON body
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "malformed JSON response: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// retryable reports whether a failed attempt may be repeated
func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	return true
}

// redact drops the query string, which carries API keys
func redact(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""
	return u.String()
}
