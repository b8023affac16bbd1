package httputil

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jyotish/pkg/cache"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
)

func TestClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"ascendant": 95.5}`))
	}))
	defer server.Close()

	c := NewClient(server.Client(), nil, map[string]string{"Authorization": "Bearer secret"})
	var out struct {
		Ascendant float64 `json:"ascendant"`
	}
	if err := c.Get(context.Background(), server.URL+"/v1/positions", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Ascendant != 95.5 {
		t.Errorf("Ascendant = %v", out.Ascendant)
	}
}

func TestClientStatusMapping(t *testing.T) {
	tests := []struct {
		status    int
		header    string
		want      error
		retryable bool
	}{
		{http.StatusNotFound, "", ErrNotFound, false},
		{http.StatusBadGateway, "", ErrNetwork, true},
		{http.StatusBadRequest, "", ErrNetwork, false},
	}
	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		c := NewClient(server.Client(), nil, nil)
		err := c.Get(context.Background(), server.URL, new(any))
		server.Close()

		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: error = %v, want %v", tt.status, err, tt.want)
		}
		if isRetryable(err) != tt.retryable {
			t.Errorf("status %d: retryable = %v, want %v", tt.status, isRetryable(err), tt.retryable)
		}
	}
}

func TestClientRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	err := NewClient(server.Client(), nil, nil).Get(context.Background(), server.URL, new(any))
	var rl *jerrors.RateLimitedError
	if !errors.As(err, &rl) || rl.RetryAfter != 7 {
		t.Errorf("error = %v, want RateLimitedError{7}", err)
	}
	if !isRetryable(err) {
		t.Error("rate limit should be retryable")
	}
}

func TestClientCached(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(nil, fc, nil)

	var calls int
	fetch := func(v *int) func() error {
		return func() error {
			calls++
			*v = 42
			return nil
		}
	}

	ctx := context.Background()
	var a, b, d int
	if err := c.Cached(ctx, "k", time.Hour, false, &a, fetch(&a)); err != nil {
		t.Fatal(err)
	}
	if err := c.Cached(ctx, "k", time.Hour, false, &b, fetch(&b)); err != nil {
		t.Fatal(err)
	}
	if calls != 1 || b != 42 {
		t.Errorf("calls = %d, b = %d; want 1, 42", calls, b)
	}
	if err := c.Cached(ctx, "k", time.Hour, true, &d, fetch(&d)); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("refresh did not refetch: calls = %d", calls)
	}
}

func TestClientCachedRetries(t *testing.T) {
	var calls atomic.Int32
	c := NewClient(nil, nil, nil).WithRetry(fast)
	var v int
	err := c.Cached(context.Background(), "k", 0, false, &v, func() error {
		if calls.Add(1) < 2 {
			return &RetryableError{Err: ErrNetwork}
		}
		v = 1
		return nil
	})
	if err != nil || v != 1 || calls.Load() != 2 {
		t.Errorf("Cached = %v, v=%d, calls=%d", err, v, calls.Load())
	}
}

// readOnlyCache misses on every read and rejects every write.
type readOnlyCache struct{}

func (readOnlyCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (readOnlyCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("read-only file system")
}
func (readOnlyCache) Delete(context.Context, string) error { return nil }
func (readOnlyCache) Close() error { return nil }

func TestClientCachedWriteFailure(t *testing.T) {
	var logs bytes.Buffer
	c := NewClient(nil, readOnlyCache{}, nil).WithLogger(log.New(&logs))

	var v int
	err := c.Cached(context.Background(), "positions", time.Hour, false, &v, func() error {
		v = 7
		return nil
	})
	if err != nil || v != 7 {
		t.Fatalf("Cached = %v, v=%d; want the fetched value despite the cache", err, v)
	}
	if !strings.Contains(logs.String(), "failed to cache response") || !strings.Contains(logs.String(), "read-only file system") {
		t.Errorf("logs = %q, want a cache warning", logs.String())
	}
}
