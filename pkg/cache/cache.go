// Package cache stores ephemeris responses and resolved positions.
//
// Backends share the [Cache] interface:
//
//   - [FileCache]: one JSON file per key, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: documents with a TTL index
//   - [Disabled]: caching turned off
//
// Keys come from a [Keyer] so every backend agrees on naming. [Open] picks
// a backend by name.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/jyotish/pkg/observability"
)

// Default TTLs.
const (
	// TTLPositions is the lifetime of cached ephemeris responses. Positions
	// for a past instant never change, so this only bounds disk use.
	TTLPositions = 30 * 24 * time.Hour

	// TTLHTTP is the lifetime of other cached HTTP responses.
	TTLHTTP = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GetJSON reads key and unmarshals it into v. keyType labels the
// observability event. An undecodable entry counts as a miss.
func GetJSON(ctx context.Context, c Cache, keyType, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok || json.Unmarshal(data, v) != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false, nil
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true, nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, c Cache, keyType, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
	return nil
}
