// Package static resolves positions from precomputed data. It backs tests
// and profiles that embed their own positions, so every surface works
// without an ephemeris service.
package static

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/matzehuels/jyotish/pkg/ephemeris"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
)

// Resolver returns positions registered for an instant and place, or a
// fallback when set. Unregistered requests go to the next resolver, if any.
type Resolver struct {
	mu       sync.RWMutex
	entries  map[string]ephemeris.Positions
	fallback *ephemeris.Positions
	next     ephemeris.Resolver
}

// New returns an empty resolver.
func New() *Resolver {
	return &Resolver{entries: make(map[string]ephemeris.Positions)}
}

// Fixed returns a resolver that answers every request with pos.
func Fixed(pos ephemeris.Positions) *Resolver {
	r := New()
	r.SetFallback(pos)
	return r
}

// Add registers pos for an instant and place. Instants match at minute
// precision in any zone.
func (r *Resolver) Add(instant time.Time, lat, lon float64, pos ephemeris.Positions) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key(instant, lat, lon)] = pos
}

// Over returns an empty resolver that delegates unregistered requests to
// next.
func Over(next ephemeris.Resolver) *Resolver {
	r := New()
	r.next = next
	return r
}

// Len returns the number of registered entries.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// SetFallback sets the answer for unregistered requests.
func (r *Resolver) SetFallback(pos ephemeris.Positions) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = &pos
}

// Embeds implements [ephemeris.Embedder]. It reports true for registered
// entries and for every request once a fallback is set.
func (r *Resolver) Embeds(instant time.Time, lat, lon float64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key(instant, lat, lon)]
	return ok || r.fallback != nil
}

// Ayanamsa implements [ephemeris.AyanamsaReporter]. A resolver over another
// one reports the ayanamsa of the one below.
func (r *Resolver) Ayanamsa() string {
	r.mu.RLock()
	next := r.next
	r.mu.RUnlock()
	if next != nil {
		return ephemeris.AyanamsaOf(next)
	}
	return ephemeris.Lahiri
}

// Resolve implements [ephemeris.Resolver].
func (r *Resolver) Resolve(ctx context.Context, instant time.Time, lat, lon float64) (ephemeris.Positions, error) {
	if err := ctx.Err(); err != nil {
		return ephemeris.Positions{}, err
	}
	r.mu.RLock()
	pos, ok := r.entries[key(instant, lat, lon)]
	fallback, next := r.fallback, r.next
	r.mu.RUnlock()

	if !ok && fallback == nil && next != nil {
		return next.Resolve(ctx, instant, lat, lon)
	}
	if !ok {
		if fallback == nil {
			return ephemeris.Positions{}, jerrors.New(jerrors.ErrCodeNotFound,
				"no precomputed positions for %s at %.4f,%.4f", instant.UTC().Format(time.RFC3339), lat, lon)
		}
		pos = *fallback
	}
	if pos.Ayanamsa == "" {
		pos.Ayanamsa = ephemeris.Lahiri
	}
	if pos.Instant.IsZero() {
		pos.Instant = instant
	}
	return pos, nil
}

func key(instant time.Time, lat, lon float64) string {
	return instant.UTC().Truncate(time.Minute).Format(time.RFC3339) + "|" +
		strconv.FormatFloat(lat, 'f', 4, 64) + "|" +
		strconv.FormatFloat(lon, 'f', 4, 64)
}

var (
	_ ephemeris.Resolver         = (*Resolver)(nil)
	_ ephemeris.Embedder         = (*Resolver)(nil)
	_ ephemeris.AyanamsaReporter = (*Resolver)(nil)
)
