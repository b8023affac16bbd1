package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
	_ "time/tzdata"

	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// Lahiri is the ayanamsa convention every resolver in this module uses.
const Lahiri = "lahiri"

// Sentinel errors for position resolution.
var (
	// ErrMissingBody is returned when a resolver omits a required planet.
	ErrMissingBody = errors.New("missing body")

	// ErrInvalidLongitude is returned for NaN or infinite longitudes.
	ErrInvalidLongitude = errors.New("invalid longitude")
)

// BirthData is a civil date and time at a geographic location.
type BirthData struct {
	Year      int     `json:"year" toml:"year"`
	Month     int     `json:"month" toml:"month"`
	Day       int     `json:"day" toml:"day"`
	Hour      int     `json:"hour" toml:"hour"`
	Minute    int     `json:"minute" toml:"minute"`
	Latitude  float64 `json:"latitude" toml:"latitude"`
	Longitude float64 `json:"longitude" toml:"longitude"`

	// Timezone optionally pins the IANA zone instead of looking it up.
	Timezone string `json:"timezone,omitempty" toml:"timezone,omitempty"`
}

// Validate checks every field against its accepted range.
func (b BirthData) Validate() error {
	return jerrors.ValidateBirthData(b.Year, b.Month, b.Day, b.Hour, b.Minute, b.Latitude, b.Longitude)
}

// Instant converts the civil time to an absolute time. The zone comes from
// b.Timezone, then zf, then UTC.
func (b BirthData) Instant(zf ZoneFinder) time.Time {
	return time.Date(b.Year, time.Month(b.Month), b.Day, b.Hour, b.Minute, 0, 0, b.Location(zf))
}

// Location returns the timezone used by [BirthData.Instant].
func (b BirthData) Location(zf ZoneFinder) *time.Location {
	name := b.Timezone
	if name == "" && zf != nil {
		name = zf.Zone(b.Latitude, b.Longitude)
	}
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Body is the raw output for one planet.
type Body struct {
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"` // degrees per day, negative when retrograde
}

// Positions is the raw output of a [Resolver].
type Positions struct {
	Instant   time.Time              `json:"instant"`
	Ayanamsa  string                 `json:"ayanamsa"`
	Ascendant float64                `json:"ascendant"`
	Bodies    map[zodiac.Planet]Body `json:"bodies"`
}

// Check verifies that every longitude is finite and that Sun through Rahu
// are present. Ketu may be absent; consumers derive it from Rahu.
func (p Positions) Check() error {
	if !finite(p.Ascendant) {
		return fmt.Errorf("%w: ascendant %v", ErrInvalidLongitude, p.Ascendant)
	}
	for _, pl := range zodiac.Planets {
		b, ok := p.Bodies[pl]
		if !ok {
			if pl == zodiac.Ketu {
				continue
			}
			return fmt.Errorf("%w: %s", ErrMissingBody, pl)
		}
		if !finite(b.Longitude) || !finite(b.Speed) {
			return fmt.Errorf("%w: %s %v", ErrInvalidLongitude, pl, b.Longitude)
		}
	}
	return nil
}

// Resolver computes sidereal positions for an instant and location.
type Resolver interface {
	Resolve(ctx context.Context, instant time.Time, lat, lon float64) (Positions, error)
}

// ZoneFinder looks up the IANA timezone name for coordinates. It returns ""
// when no zone is known.
type ZoneFinder interface {
	Zone(lat, lon float64) string
}

// ZoneFunc adapts a function to [ZoneFinder].
type ZoneFunc func(lat, lon float64) string

// Zone calls f.
func (f ZoneFunc) Zone(lat, lon float64) string { return f(lat, lon) }

// Embedder is implemented by resolvers that hold precomputed positions.
// Embedded positions take precedence over anything cached for the same
// instant and place.
type Embedder interface {
	Embeds(instant time.Time, lat, lon float64) bool
}

// Embeds reports whether r holds precomputed positions for the request.
func Embeds(r Resolver, instant time.Time, lat, lon float64) bool {
	e, ok := r.(Embedder)
	return ok && e.Embeds(instant, lat, lon)
}

// AyanamsaReporter is implemented by resolvers that know the ayanamsa they
// compute under.
type AyanamsaReporter interface {
	Ayanamsa() string
}

// AyanamsaOf returns the ayanamsa of r, or [Lahiri] when r does not say.
func AyanamsaOf(r Resolver) string {
	if a, ok := r.(AyanamsaReporter); ok {
		if name := a.Ayanamsa(); name != "" {
			return name
		}
	}
	return Lahiri
}

// Resolve validates b, converts it to an instant and resolves positions.
func Resolve(ctx context.Context, r Resolver, zf ZoneFinder, b BirthData) (Positions, error) {
	if err := b.Validate(); err != nil {
		return Positions{}, err
	}
	return ResolveAt(ctx, r, b.Instant(zf), b.Latitude, b.Longitude)
}

// ResolveAt resolves positions for an absolute instant.
func ResolveAt(ctx context.Context, r Resolver, instant time.Time, lat, lon float64) (Positions, error) {
	pos, err := r.Resolve(ctx, instant, lat, lon)
	if err != nil {
		if errors.Is(err, context.Canceled) || jerrors.GetCode(err) != "" {
			return Positions{}, err
		}
		return Positions{}, jerrors.Wrap(jerrors.ErrCodeUpstreamResolution, err, "resolve positions at %s", instant.UTC().Format(time.RFC3339))
	}
	if err := pos.Check(); err != nil {
		return Positions{}, jerrors.Wrap(jerrors.ErrCodeUpstreamResolution, err, "resolver returned unusable positions")
	}
	if pos.Instant.IsZero() {
		pos.Instant = instant
	}
	return pos, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
