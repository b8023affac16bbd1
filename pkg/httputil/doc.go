// Package httputil provides the HTTP plumbing behind remote ephemeris
// clients.
//
// # Overview
//
//   - [Client]: JSON GET requests with default headers, status mapping,
//     observability hooks and response caching through pkg/cache
//   - [Policy]: retry with exponential backoff that honours Retry-After
//
// # Status mapping
//
// Responses map onto sentinel errors so callers can branch with errors.Is:
//
//   - 200: success
//   - 404: [ErrNotFound]
//   - 429: *errors.RateLimitedError, retried
//   - 5xx and transport failures: [ErrNetwork], retried
//   - anything else: [ErrNetwork], not retried
//
// # Retry
//
// [Policy.Do] only retries errors wrapped in [RetryableError]; the delay
// doubles after each attempt. A 429 waits at least its Retry-After. When
// the attempts run out the error is coded UPSTREAM_RESOLUTION, or
// RATE_LIMITED when the service kept throttling:
//
//	err := httputil.DefaultPolicy.Do(ctx, func() error {
//	    return client.Get(ctx, url, &out)
//	})
package httputil
