package operations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/five82/opsview/internal/logging"
)

// Source retrieves the full operations list. Implementations must return a
// distinguishable error on failure; an empty slice is a valid result.
type Source interface {
	FetchAll(ctx context.Context) ([]Operation, error)
}

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// RetrievalError reports a failed /operations request.
type RetrievalError struct {
	Op  string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve operations: %s: %v", e.Op, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// IsRetrievalError reports whether err is (or wraps) a RetrievalError.
func IsRetrievalError(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}

// Client talks to the operations HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       zerolog.Logger
}

const (
	defaultBaseURL        = "http://127.0.0.1:8080"
	defaultUserAgent      = "opsview/0.1"
	defaultRequestTimeout = 10 * time.Second
	operationsPath        = "operations"
	maxBodyBytes          = 16 << 20
)

// NewClient builds a Client for the given base URL. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
		log:       logging.For("operations"),
	}, nil
}

// BaseURL returns the normalized API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return strings.TrimSuffix(c.baseURL.String(), "/")
}

// FetchAll retrieves the complete operations list.
func (c *Client) FetchAll(ctx context.Context) ([]Operation, error) {
	if c == nil {
		return nil, &RetrievalError{Op: "init", Err: fmt.Errorf("client is nil")}
	}
	requestID := uuid.NewString()
	start := time.Now()

	body, err := c.get(ctx, operationsPath, requestID)
	if err != nil {
		c.log.Warn().Err(err).Str("request_id", requestID).Msg("operations fetch failed")
		return nil, err
	}
	items, err := decodeList(body)
	if err != nil {
		err = &RetrievalError{Op: "decode response", Err: err}
		c.log.Warn().Err(err).Str("request_id", requestID).Msg("operations decode failed")
		return nil, err
	}

	c.log.Debug().
		Str("request_id", requestID).
		Int("count", len(items)).
		Dur("duration", time.Since(start)).
		Msg("operations fetched")
	return items, nil
}

func (c *Client) get(ctx context.Context, path, requestID string) ([]byte, error) {
	reqURL := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, &RetrievalError{Op: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RetrievalError{Op: "execute request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, &RetrievalError{
			Op:  "api " + reqURL.Path,
			Err: fmt.Errorf("returned status %d", resp.StatusCode),
		}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &RetrievalError{Op: "read response", Err: err}
	}
	if len(data) > maxBodyBytes {
		return nil, &RetrievalError{
			Op:  "read response",
			Err: fmt.Errorf("response exceeds %d MiB", maxBodyBytes>>20),
		}
	}
	return data, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
