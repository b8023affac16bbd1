// Package tz finds the IANA timezone of a coordinate pair using the
// boundary dataset embedded in github.com/ringsaturn/tzf.
package tz

import (
	"sync"

	"github.com/ringsaturn/tzf"

	"github.com/matzehuels/jyotish/pkg/ephemeris"
)

// Finder implements [ephemeris.ZoneFinder].
type Finder struct {
	f tzf.F
}

// New loads the embedded dataset. Loading takes a noticeable amount of time
// and memory; prefer [Default] in long-running processes.
func New() (*Finder, error) {
	f, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, err
	}
	return &Finder{f: f}, nil
}

var (
	defaultOnce   sync.Once
	defaultFinder *Finder
	defaultErr    error
)

// Default returns a process-wide Finder, loading it on first use.
func Default() (*Finder, error) {
	defaultOnce.Do(func() {
		defaultFinder, defaultErr = New()
	})
	return defaultFinder, defaultErr
}

// Zone returns the zone name for lat/lon, or "" when none is found.
func (f *Finder) Zone(lat, lon float64) string {
	if f == nil || f.f == nil {
		return ""
	}
	return f.f.GetTimezoneName(lon, lat)
}

var _ ephemeris.ZoneFinder = (*Finder)(nil)
