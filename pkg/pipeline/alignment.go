package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/jyotish/pkg/chart"
	"github.com/matzehuels/jyotish/pkg/dasha"
	"github.com/matzehuels/jyotish/pkg/ephemeris"
	"github.com/matzehuels/jyotish/pkg/panchang"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// transitTTL keeps sky snapshots short-lived; they are keyed to the minute.
const transitTTL = time.Hour

// Alignment reads the sky at now, seen from the birth place, against the
// natal chart of b. A zero now means time.Now.
func (r *Runner) Alignment(ctx context.Context, b ephemeris.BirthData, now time.Time, refresh bool) (*Alignment, error) {
	if now.IsZero() {
		now = time.Now()
	}
	natal, err := r.Chart(ctx, b, refresh)
	if err != nil {
		return nil, fmt.Errorf("natal: %w", err)
	}

	loc := b.Location(r.Zones)
	local := now.In(loc).Truncate(time.Minute)
	pos, _, err := r.resolveAt(ctx, local, b.Latitude, b.Longitude, refresh, transitTTL)
	if err != nil {
		return nil, fmt.Errorf("transits: %w", err)
	}

	a := &Alignment{
		RunID:    uuid.NewString(),
		Natal:    natal,
		Date:     local.Format(time.DateOnly),
		Time:     local.Format("15:04"),
		Timezone: loc.String(),
	}

	err = stage(ctx, StageTransits, func() error {
		sky, err := chart.New(pos)
		if err != nil {
			return err
		}
		for _, pl := range sky.Ordered() {
			a.Transits = append(a.Transits, Transit{
				Planet:     pl.Planet,
				Position:   pl.Position,
				Retrograde: pl.Retrograde,
				NatalHouse: natal.HouseOf(pl.Longitude),
			})
		}
		sun, moon := sky.Planets[zodiac.Sun], sky.Planets[zodiac.Moon]
		a.SunSign = sun.Sign
		a.MoonSign = moon.Sign
		a.Panchang = panchang.Compute(sun.Longitude, moon.Longitude, local)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("transits: %w", err)
	}

	timeline := dasha.Generate(natal.Planets[zodiac.Moon].Longitude, b.Instant(r.Zones))
	if cur, ok := timeline.Current(now); ok {
		a.Dasha = &cur
	}

	r.Logger.Info("computed alignment",
		"run", a.RunID,
		"date", a.Date,
		"tithi", a.Panchang.Tithi.Name,
		"moon", a.MoonSign)
	return a, nil
}
