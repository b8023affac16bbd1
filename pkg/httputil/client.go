package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jyotish/pkg/cache"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	"github.com/matzehuels/jyotish/pkg/observability"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the given timeout, or
// [DefaultTimeout] when timeout is zero.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Client performs JSON requests against one upstream service.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	headers map[string]string
	retry   Policy
	logger  *log.Logger
}

// NewClient creates a Client that retries with [DefaultPolicy]. A nil cache
// disables caching; headers are applied to every request.
func NewClient(hc *http.Client, c cache.Cache, headers map[string]string) *Client {
	if hc == nil {
		hc = NewHTTPClient(0)
	}
	if c == nil {
		c = cache.Disabled()
	}
	return &Client{http: hc, cache: c, headers: headers, retry: DefaultPolicy, logger: log.Default()}
}

// WithRetry replaces the retry policy.
func (c *Client) WithRetry(p Policy) *Client {
	c.retry = p
	return c
}

// WithLogger sets the logger for cache warnings. A nil logger is ignored.
func (c *Client) WithLogger(l *log.Logger) *Client {
	if l != nil {
		c.logger = l
	}
	return c
}

// Cached reads key from the cache into v, or runs fetch under the retry
// policy and stores v on success. refresh skips the read. A failed cache
// write is logged and does not fail the request.
func (c *Client) Cached(ctx context.Context, key string, ttl time.Duration, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if ok, _ := cache.GetJSON(ctx, c.cache, "http", key, v); ok {
			return nil
		}
	}
	if err := c.retry.Do(ctx, fetch); err != nil {
		return err
	}
	if err := cache.SetJSON(ctx, c.cache, "http", key, v, ttl); err != nil {
		c.logger.Warn("failed to cache response", "key", key, "error", err)
	}
	return nil
}

// Get performs a GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, rawURL string, v any) error {
	body, err := c.do(ctx, rawURL)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := hostPath(rawURL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		retry, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &RetryableError{Err: &jerrors.RateLimitedError{RetryAfter: retry}}
	case code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func hostPath(rawURL string) (string, string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL
	}
	return u.Host, u.Path
}
