package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/jyotish/pkg/cache"
	"github.com/matzehuels/jyotish/pkg/chart"
	"github.com/matzehuels/jyotish/pkg/dasha"
	"github.com/matzehuels/jyotish/pkg/ephemeris"
	"github.com/matzehuels/jyotish/pkg/observability"
	"github.com/matzehuels/jyotish/pkg/panchang"
	"github.com/matzehuels/jyotish/pkg/varga"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating resolution and caching logic.
//
// The Runner is stateless except for its collaborators. Multiple goroutines
// can safely use the same Runner.
type Runner struct {
	Resolver ephemeris.Resolver
	Zones    ephemeris.ZoneFinder
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner around a position resolver.
// If zones is nil, every birth without an explicit timezone is read as UTC.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, caching is disabled.
func NewRunner(resolver ephemeris.Resolver, zones ephemeris.ZoneFinder, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.Disabled()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Resolver: resolver,
		Zones:    zones,
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// =============================================================================
// Resolve
// =============================================================================

// Resolve validates b and returns its positions.
func (r *Runner) Resolve(ctx context.Context, b ephemeris.BirthData, refresh bool) (ephemeris.Positions, error) {
	pos, _, err := r.ResolveWithCacheInfo(ctx, b, refresh)
	return pos, err
}

// ResolveWithCacheInfo validates b, resolves positions through the cache and
// reports whether they came from it.
func (r *Runner) ResolveWithCacheInfo(ctx context.Context, b ephemeris.BirthData, refresh bool) (ephemeris.Positions, bool, error) {
	if err := b.Validate(); err != nil {
		return ephemeris.Positions{}, false, err
	}
	return r.resolveAt(ctx, b.Instant(r.Zones), b.Latitude, b.Longitude, refresh, DefaultTTL)
}

func (r *Runner) resolveAt(ctx context.Context, instant time.Time, lat, lon float64, refresh bool, ttl time.Duration) (ephemeris.Positions, bool, error) {
	// Embedded positions are authoritative and never touch the cache.
	if ephemeris.Embeds(r.Resolver, instant, lat, lon) {
		pos, err := r.resolve(ctx, instant, lat, lon)
		return pos, false, err
	}

	key := r.Keyer.PositionsKey(cache.PositionsKeyOpts{
		Instant:   instant,
		Latitude:  lat,
		Longitude: lon,
		Ayanamsa:  ephemeris.AyanamsaOf(r.Resolver),
	})

	// Try cache first (unless refresh requested)
	if !refresh {
		var pos ephemeris.Positions
		if hit, err := cache.GetJSON(ctx, r.Cache, "positions", key, &pos); err == nil && hit && pos.Check() == nil {
			return pos, true, nil
		}
	}

	pos, err := r.resolve(ctx, instant, lat, lon)
	if err != nil {
		return ephemeris.Positions{}, false, err
	}

	if err := cache.SetJSON(ctx, r.Cache, "positions", key, pos, ttl); err != nil {
		r.Logger.Warn("failed to cache positions", "error", err)
	}
	return pos, false, nil
}

// resolve asks the resolver directly, between resolve hooks.
func (r *Runner) resolve(ctx context.Context, instant time.Time, lat, lon float64) (ephemeris.Positions, error) {
	hooks := observability.Pipeline()
	hooks.OnResolveStart(ctx, instant)
	start := time.Now()
	pos, err := ephemeris.ResolveAt(ctx, r.Resolver, instant, lat, lon)
	hooks.OnResolveComplete(ctx, instant, time.Since(start), err)
	return pos, err
}

// Chart resolves b and builds its natal chart.
func (r *Runner) Chart(ctx context.Context, b ephemeris.BirthData, refresh bool) (*chart.Chart, error) {
	pos, err := r.Resolve(ctx, b, refresh)
	if err != nil {
		return nil, err
	}
	return chart.New(pos)
}

// =============================================================================
// Analyze
// =============================================================================

// Analyze runs the complete resolve → chart → vargas/dasha/panchang pipeline.
func (r *Runner) Analyze(ctx context.Context, b ephemeris.BirthData, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	runID := uuid.NewString()
	logger := r.Logger.With("run", runID)

	result := &Result{
		RunID:    runID,
		Birth:    b,
		Timezone: b.Location(r.Zones).String(),
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	local := b.Instant(r.Zones)

	// Stage 1: Resolve
	resolveStart := time.Now()
	pos, hit, err := r.resolveAt(ctx, local, b.Latitude, b.Longitude, opts.Refresh, opts.TTL)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.CacheInfo.ResolveHit = hit

	logger.Info("resolved positions",
		"instant", pos.Instant.UTC().Format(time.RFC3339),
		"cached", hit,
		"duration", result.Stats.ResolveTime)

	// Stage 2: Chart and its derivations
	computeStart := time.Now()
	err = stage(ctx, StageChart, func() error {
		var err error
		result.Chart, err = chart.New(pos)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	natal := result.Chart

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return stage(gctx, StageVargas, func() error {
			vargas := make(map[varga.Code]varga.Varga, len(opts.Codes))
			for _, c := range opts.Codes {
				v, err := varga.Compute(natal, c)
				if err != nil {
					return err
				}
				vargas[c] = v
			}
			result.Vargas = vargas
			for _, p := range zodiac.Planets {
				if varga.IsVargottama(natal, p) {
					result.Vargottama = append(result.Vargottama, p)
				}
			}
			return nil
		})
	})
	g.Go(func() error {
		return stage(gctx, StageDasha, func() error {
			result.Dasha = dasha.Generate(natal.Planets[zodiac.Moon].Longitude, local)
			if cur, ok := result.Dasha.Current(opts.Now); ok {
				result.Current = &cur
			}
			return nil
		})
	})
	g.Go(func() error {
		return stage(gctx, StagePanchang, func() error {
			sun, moon := natal.Planets[zodiac.Sun], natal.Planets[zodiac.Moon]
			result.Panchang = panchang.Compute(sun.Longitude, moon.Longitude, local)
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Stats.ComputeTime = time.Since(computeStart)
	result.Stats.VargaCount = len(result.Vargas)

	logger.Info("computed chart",
		"ascendant", natal.Ascendant.Sign,
		"planets", len(natal.Planets),
		"vargas", result.Stats.VargaCount,
		"duration", result.Stats.ComputeTime)

	return result, nil
}

// stage runs fn between compute hooks.
func stage(ctx context.Context, name string, fn func() error) error {
	hooks := observability.Pipeline()
	hooks.OnComputeStart(ctx, name)
	start := time.Now()
	err := ctx.Err()
	if err == nil {
		err = fn()
	}
	hooks.OnComputeComplete(ctx, name, time.Since(start), err)
	return err
}
