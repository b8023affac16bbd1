// Package pipeline provides the chart pipeline shared by the CLI and the
// HTTP API.
//
// This package implements resolve → chart → analyze so that every entry
// point resolves positions, caches them and derives charts the same way.
//
// # Architecture
//
// A run consists of two stages:
//
//  1. Resolve: convert birth data to an instant and fetch sidereal positions
//     from an [ephemeris.Resolver], through the cache
//  2. Analyze: build the natal chart and fan out the divisional charts, the
//     dasha timeline and the panchang concurrently
//
// Synastry resolves every person concurrently and then compares the charts.
// Alignment resolves the natal chart and the sky at a second instant.
//
// # Usage
//
//	runner := pipeline.NewRunner(resolver, zones, cache, nil, logger)
//	result, err := runner.Analyze(ctx, birth, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Chart.Ascendant.Sign)
package pipeline

import (
	"time"

	"github.com/matzehuels/jyotish/pkg/cache"
	"github.com/matzehuels/jyotish/pkg/chart"
	"github.com/matzehuels/jyotish/pkg/dasha"
	"github.com/matzehuels/jyotish/pkg/ephemeris"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	"github.com/matzehuels/jyotish/pkg/panchang"
	"github.com/matzehuels/jyotish/pkg/synastry"
	"github.com/matzehuels/jyotish/pkg/varga"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultTTL is how long resolved positions stay cached.
	DefaultTTL = cache.TTLPositions
)

// Stage names reported to observability hooks.
const (
	StageChart    = "chart"
	StageVargas   = "vargas"
	StageDasha    = "dasha"
	StagePanchang = "panchang"
	StageSynastry = "synastry"
	StageTransits = "transits"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. The zero value computes every
// divisional chart as of the current time.
type Options struct {
	// Now is the instant used to find the running dasha. Zero means time.Now.
	Now time.Time `json:"now,omitzero"`

	// Codes limits the divisional charts computed. Empty means all sixteen.
	Codes []varga.Code `json:"vargas,omitempty"`

	// Refresh bypasses cached positions.
	Refresh bool `json:"refresh,omitempty"`

	// TTL overrides DefaultTTL for newly cached positions.
	TTL time.Duration `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the varga codes and applies defaults.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	for _, c := range o.Codes {
		if _, err := varga.Lookup(c); err != nil {
			return jerrors.Wrap(jerrors.ErrCodeUnknownKey, err, "vargas")
		}
	}
	if len(o.Codes) == 0 {
		o.Codes = varga.Codes()
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	o.validated = true
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of [Runner.Analyze].
type Result struct {
	// RunID correlates the log lines of one run.
	RunID string `json:"run_id"`

	Birth    ephemeris.BirthData `json:"birth_data"`
	Timezone string              `json:"timezone"`

	Chart      *chart.Chart               `json:"chart"`
	Vargas     map[varga.Code]varga.Varga `json:"divisional_charts"`
	Vargottama []zodiac.Planet            `json:"vargottama"`

	Dasha   dasha.Timeline `json:"dasha"`
	Current *dasha.Current `json:"current_dasha,omitempty"`

	Panchang panchang.Panchang `json:"panchang"`

	Stats     Stats     `json:"-"`
	CacheInfo CacheInfo `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ResolveTime time.Duration
	ComputeTime time.Duration
	VargaCount  int
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ResolveHit bool // Whether positions came from cache
}

// Person is one participant of a synastry run.
type Person struct {
	Label string              `json:"label"`
	Birth ephemeris.BirthData `json:"birth_data"`
}

// SynastryResult contains the outputs of [Runner.Synastry].
type SynastryResult struct {
	RunID    string            `json:"run_id"`
	Members  []synastry.Person `json:"-"`
	Analysis synastry.Result   `json:"synastry"`
}

// Transit is the current sky position of one planet relative to a natal
// chart.
type Transit struct {
	Planet zodiac.Planet `json:"planet"`
	zodiac.Position
	Retrograde bool `json:"retrograde"`
	NatalHouse int  `json:"natal_house"`
}

// Alignment is the sky at one instant read against a natal chart.
type Alignment struct {
	RunID    string            `json:"run_id"`
	Natal    *chart.Chart      `json:"natal_chart"`
	Panchang panchang.Panchang `json:"panchang"`
	Transits []Transit         `json:"transits"`
	SunSign  zodiac.Sign       `json:"sun_sign"`
	MoonSign zodiac.Sign       `json:"moon_sign"`
	Dasha    *dasha.Current    `json:"current_dasha,omitempty"`

	Date     string `json:"date"`
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
}
