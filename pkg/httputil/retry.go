package httputil

import (
	"context"
	"errors"
	"time"

	jerrors "github.com/matzehuels/jyotish/pkg/errors"
)

// RetryableError marks a transient upstream failure: a transport error, a
// 5xx or a 429.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Policy bounds how an ephemeris request is retried.
type Policy struct {
	// Attempts is the total number of tries, at least one.
	Attempts int

	// Delay is the first backoff. It doubles after every failure.
	Delay time.Duration

	// MaxWait caps the Retry-After a rate-limited response may ask for. A
	// longer wait fails at once with RATE_LIMITED.
	MaxWait time.Duration
}

// DefaultPolicy tries three times, starting at one second and honouring a
// Retry-After of up to thirty seconds.
var DefaultPolicy = Policy{Attempts: 3, Delay: time.Second, MaxWait: 30 * time.Second}

// Do runs fn until it succeeds or fails with an error that is not a
// [RetryableError]. Such errors return unchanged. When attempts run out the
// last error comes back coded RATE_LIMITED if the service was throttling,
// UPSTREAM_RESOLUTION otherwise. Cancelling ctx stops the wait.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}

		wait := delay
		if rl := rateLimit(err); rl != nil {
			after := time.Duration(rl.RetryAfter) * time.Second
			if p.MaxWait > 0 && after > p.MaxWait {
				return jerrors.Wrap(jerrors.ErrCodeRateLimited, err, "ephemeris service asked to wait %s", after)
			}
			wait = max(wait, after)
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			delay *= 2
		}
	}

	if rateLimit(err) != nil {
		return jerrors.Wrap(jerrors.ErrCodeRateLimited, err, "ephemeris service still throttling after %d attempts", attempts)
	}
	return jerrors.Wrap(jerrors.ErrCodeUpstreamResolution, err, "ephemeris service failed %d attempts", attempts)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

func rateLimit(err error) *jerrors.RateLimitedError {
	var rl *jerrors.RateLimitedError
	if errors.As(err, &rl) {
		return rl
	}
	return nil
}
