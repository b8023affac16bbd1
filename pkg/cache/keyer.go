package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Keyer names cache entries.
type Keyer interface {
	// HTTPKey names a raw response from an upstream service.
	HTTPKey(service, requestURL string) string

	// PositionsKey names resolver output for one instant and place.
	PositionsKey(opts PositionsKeyOpts) string
}

// PositionsKeyOpts identifies one resolver request.
type PositionsKeyOpts struct {
	Instant   time.Time `json:"instant"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Ayanamsa  string    `json:"ayanamsa"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<service>:<sha256 of requestURL>".
func (DefaultKeyer) HTTPKey(service, requestURL string) string {
	return "http:" + service + ":" + digest(requestURL)
}

// PositionsKey returns "positions:<sha256>" over the request. Instants
// compare in UTC at minute precision, the resolution of birth data, and
// coordinates at six decimals.
func (DefaultKeyer) PositionsKey(opts PositionsKeyOpts) string {
	return "positions:" + digest(
		opts.Instant.UTC().Truncate(time.Minute).Format(time.RFC3339),
		strconv.FormatFloat(opts.Latitude, 'f', 6, 64),
		strconv.FormatFloat(opts.Longitude, 'f', 6, 64),
		strings.ToLower(opts.Ayanamsa),
	)
}

// digest hashes parts joined by a separator that cannot occur in them.
func digest(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

var _ Keyer = DefaultKeyer{}
