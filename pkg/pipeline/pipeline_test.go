package pipeline

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jyotish/pkg/cache"
	"github.com/matzehuels/jyotish/pkg/ephemeris"
	"github.com/matzehuels/jyotish/pkg/ephemeris/static"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	"github.com/matzehuels/jyotish/pkg/observability"
	"github.com/matzehuels/jyotish/pkg/varga"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

func samplePositions() ephemeris.Positions {
	return ephemeris.Positions{
		Ascendant: 95.5,
		Bodies: map[zodiac.Planet]ephemeris.Body{
			zodiac.Sun:     {Longitude: 40.2, Speed: 0.96},
			zodiac.Moon:    {Longitude: 15.0, Speed: 13.2},
			zodiac.Mars:    {Longitude: 298.0, Speed: 0.7},
			zodiac.Mercury: {Longitude: 165.5, Speed: -0.3},
			zodiac.Jupiter: {Longitude: 95.0, Speed: 0.1},
			zodiac.Venus:   {Longitude: 357.0, Speed: 1.2},
			zodiac.Saturn:  {Longitude: 200.0, Speed: 0.03},
			zodiac.Rahu:    {Longitude: 80.0, Speed: -0.05},
		},
	}
}

// 2000-01-03 was a Monday.
var sampleBirth = ephemeris.BirthData{
	Year: 2000, Month: 1, Day: 3, Hour: 14, Minute: 30,
	Latitude: 28.6139, Longitude: 77.2090,
}

var kolkata = ephemeris.ZoneFunc(func(lat, lon float64) string { return "Asia/Kolkata" })

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestRunner(r ephemeris.Resolver, c cache.Cache) *Runner {
	return NewRunner(r, kolkata, c, nil, quietLogger())
}

// countingResolver counts calls to the wrapped resolver.
type countingResolver struct {
	ephemeris.Resolver
	calls atomic.Int32
}

func (c *countingResolver) Resolve(ctx context.Context, instant time.Time, lat, lon float64) (ephemeris.Positions, error) {
	c.calls.Add(1)
	return c.Resolver.Resolve(ctx, instant, lat, lon)
}

type failingResolver struct{ err error }

func (f failingResolver) Resolve(context.Context, time.Time, float64, float64) (ephemeris.Positions, error) {
	return ephemeris.Positions{}, f.err
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(static.New(), nil, nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner left nil collaborators: %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if len(o.Codes) != 16 {
		t.Errorf("Codes = %d, want 16", len(o.Codes))
	}
	if o.Now.IsZero() {
		t.Error("Now not defaulted")
	}
	if o.TTL != DefaultTTL {
		t.Errorf("TTL = %v, want %v", o.TTL, DefaultTTL)
	}

	bad := Options{Codes: []varga.Code{varga.D9, varga.Code(5)}}
	err := bad.ValidateAndSetDefaults()
	if !jerrors.Is(err, jerrors.ErrCodeUnknownKey) {
		t.Errorf("unknown code error = %v, want UNKNOWN_KEY", err)
	}
}

func TestAnalyze(t *testing.T) {
	r := newTestRunner(static.Fixed(samplePositions()), nil)
	birth := sampleBirth.Instant(kolkata)

	res, err := r.Analyze(context.Background(), sampleBirth, Options{Now: birth.AddDate(1, 0, 0)})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if res.RunID == "" {
		t.Error("RunID is empty")
	}
	if res.Timezone != "Asia/Kolkata" {
		t.Errorf("Timezone = %q, want Asia/Kolkata", res.Timezone)
	}
	if got := res.Chart.Ascendant.Sign; got != zodiac.Cancer {
		t.Errorf("ascendant = %v, want Cancer", got)
	}
	if len(res.Vargas) != 16 || res.Stats.VargaCount != 16 {
		t.Errorf("vargas = %d (stats %d), want 16", len(res.Vargas), res.Stats.VargaCount)
	}
	for _, p := range res.Vargottama {
		if !varga.IsVargottama(res.Chart, p) {
			t.Errorf("%v listed as vargottama but is not", p)
		}
	}

	// Moon at 15° lies in Bharani, ruled by Venus.
	if got := res.Dasha.Maha[0].Lord; got != zodiac.Venus {
		t.Errorf("first maha lord = %v, want Venus", got)
	}
	if !res.Dasha.Birth.Equal(birth) {
		t.Errorf("dasha birth = %v, want %v", res.Dasha.Birth, birth)
	}
	if res.Current == nil || res.Current.Maha.Lord != zodiac.Venus {
		t.Errorf("current dasha = %+v, want Venus maha", res.Current)
	}

	if got := res.Panchang.Vara.Sanskrit; got != "Somavara" {
		t.Errorf("vara = %q, want Somavara", got)
	}
	if res.CacheInfo.ResolveHit {
		t.Error("first run reported a cache hit")
	}
}

func TestAnalyzeSelectedCodes(t *testing.T) {
	r := newTestRunner(static.Fixed(samplePositions()), nil)
	res, err := r.Analyze(context.Background(), sampleBirth, Options{Codes: []varga.Code{varga.D1, varga.D9}})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if len(res.Vargas) != 2 {
		t.Fatalf("vargas = %d, want 2", len(res.Vargas))
	}
	if _, ok := res.Vargas[varga.D9]; !ok {
		t.Error("D9 missing")
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name     string
		resolver ephemeris.Resolver
		birth    ephemeris.BirthData
		opts     Options
		code     jerrors.Code
	}{
		{
			name:     "invalid month",
			resolver: static.Fixed(samplePositions()),
			birth:    ephemeris.BirthData{Year: 2000, Month: 13, Day: 1},
			code:     jerrors.ErrCodeInvalidInput,
		},
		{
			name:     "unknown varga",
			resolver: static.Fixed(samplePositions()),
			birth:    sampleBirth,
			opts:     Options{Codes: []varga.Code{varga.Code(11)}},
			code:     jerrors.ErrCodeUnknownKey,
		},
		{
			name:     "upstream failure",
			resolver: failingResolver{err: errors.New("connection reset")},
			birth:    sampleBirth,
			code:     jerrors.ErrCodeUpstreamResolution,
		},
		{
			name:     "no precomputed positions",
			resolver: static.New(),
			birth:    sampleBirth,
			code:     jerrors.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRunner(tt.resolver, nil)
			_, err := r.Analyze(context.Background(), tt.birth, tt.opts)
			if !jerrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestResolveCaches(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	res := &countingResolver{Resolver: static.Fixed(samplePositions())}
	r := newTestRunner(res, fc)
	ctx := context.Background()

	if _, hit, err := r.ResolveWithCacheInfo(ctx, sampleBirth, false); err != nil || hit {
		t.Fatalf("first resolve: hit=%v err=%v", hit, err)
	}
	pos, hit, err := r.ResolveWithCacheInfo(ctx, sampleBirth, false)
	if err != nil || !hit {
		t.Fatalf("second resolve: hit=%v err=%v", hit, err)
	}
	if pos.Bodies[zodiac.Moon].Longitude != 15.0 {
		t.Errorf("cached Moon = %v, want 15", pos.Bodies[zodiac.Moon].Longitude)
	}
	if got := res.calls.Load(); got != 1 {
		t.Errorf("resolver calls = %d, want 1", got)
	}

	if _, hit, _ := r.ResolveWithCacheInfo(ctx, sampleBirth, true); hit {
		t.Error("refresh reported a cache hit")
	}
	if got := res.calls.Load(); got != 2 {
		t.Errorf("resolver calls after refresh = %d, want 2", got)
	}
}

func withAscendant(asc float64) ephemeris.Positions {
	pos := samplePositions()
	pos.Ascendant = asc
	return pos
}

func TestEmbeddedPositionsBypassCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	ctx := context.Background()

	service := &countingResolver{Resolver: static.Fixed(withAscendant(10))}
	if _, err := newTestRunner(service, fc).Chart(ctx, sampleBirth, false); err != nil {
		t.Fatalf("service Chart() error: %v", err)
	}

	embedded := static.Over(service)
	embedded.Add(sampleBirth.Instant(kolkata), sampleBirth.Latitude, sampleBirth.Longitude, withAscendant(200))
	r := newTestRunner(embedded, fc)

	c, err := r.Chart(ctx, sampleBirth, false)
	if err != nil {
		t.Fatalf("embedded Chart() error: %v", err)
	}
	if c.Ascendant.Longitude != 200 || c.Ascendant.Sign != zodiac.Libra {
		t.Errorf("ascendant = %v %s, want embedded 200 Libra", c.Ascendant.Longitude, c.Ascendant.Sign)
	}

	// Edits to embedded positions show up on the next run.
	embedded.Add(sampleBirth.Instant(kolkata), sampleBirth.Latitude, sampleBirth.Longitude, withAscendant(300))
	if c, _ := r.Chart(ctx, sampleBirth, false); c == nil || c.Ascendant.Longitude != 300 {
		t.Errorf("edited embedded positions were not picked up: %+v", c)
	}
	if got := service.calls.Load(); got != 1 {
		t.Errorf("service calls = %d, want 1", got)
	}

	// Other births still go through the cache.
	other := sampleBirth
	other.Hour = 9
	if _, hit, err := r.ResolveWithCacheInfo(ctx, other, false); err != nil || hit {
		t.Fatalf("first resolve of other birth: hit=%v err=%v", hit, err)
	}
	if _, hit, _ := r.ResolveWithCacheInfo(ctx, other, false); !hit {
		t.Error("other birth was not cached")
	}
}

// ayanamsaResolver answers with a fixed ascendant under a named ayanamsa.
type ayanamsaResolver struct {
	name string
	asc  float64
}

func (a ayanamsaResolver) Resolve(context.Context, time.Time, float64, float64) (ephemeris.Positions, error) {
	pos := withAscendant(a.asc)
	pos.Ayanamsa = a.name
	return pos, nil
}

func (a ayanamsaResolver) Ayanamsa() string { return a.name }

func TestCacheSeparatesAyanamsas(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	ctx := context.Background()

	for _, tt := range []ayanamsaResolver{{"lahiri", 10}, {"raman", 20}, {"lahiri", 10}} {
		c, err := newTestRunner(tt, fc).Chart(ctx, sampleBirth, false)
		if err != nil {
			t.Fatalf("%s Chart() error: %v", tt.name, err)
		}
		if c.Ayanamsa != tt.name || c.Ascendant.Longitude != tt.asc {
			t.Errorf("%s chart = %s ascendant %v, want %s ascendant %v",
				tt.name, c.Ayanamsa, c.Ascendant.Longitude, tt.name, tt.asc)
		}
	}
}

func TestSynastry(t *testing.T) {
	r := newTestRunner(static.Fixed(samplePositions()), nil)
	people := []Person{
		{Label: "Asha", Birth: sampleBirth},
		{Label: "Ravi", Birth: sampleBirth},
		{Label: "Mira", Birth: sampleBirth},
	}

	res, err := r.Synastry(context.Background(), people, false)
	if err != nil {
		t.Fatalf("Synastry() error: %v", err)
	}
	if len(res.Members) != 3 {
		t.Fatalf("members = %d, want 3", len(res.Members))
	}
	for i, m := range res.Members {
		if m.Label != people[i].Label || m.Chart == nil {
			t.Errorf("member %d = %q (chart %v), want %q", i, m.Label, m.Chart != nil, people[i].Label)
		}
	}
	labels := make([]string, 0, len(res.Analysis.Pairs))
	for _, p := range res.Analysis.Pairs {
		labels = append(labels, p.Label)
	}
	want := []string{"Asha & Ravi", "Asha & Mira", "Ravi & Mira"}
	if !slices.Equal(labels, want) {
		t.Errorf("pairs = %v, want %v", labels, want)
	}
	if res.Analysis.Group.NumPeople != 3 || res.Analysis.Group.NumPairs != 3 {
		t.Errorf("group = %+v", res.Analysis.Group)
	}
}

func TestSynastryValidation(t *testing.T) {
	r := newTestRunner(static.Fixed(samplePositions()), nil)
	tests := []struct {
		name   string
		people []Person
	}{
		{"one person", []Person{{Label: "A", Birth: sampleBirth}}},
		{"five people", []Person{
			{Label: "A", Birth: sampleBirth}, {Label: "B", Birth: sampleBirth},
			{Label: "C", Birth: sampleBirth}, {Label: "D", Birth: sampleBirth},
			{Label: "E", Birth: sampleBirth},
		}},
		{"empty label", []Person{{Label: "", Birth: sampleBirth}, {Label: "B", Birth: sampleBirth}}},
		{"duplicate label", []Person{{Label: "A", Birth: sampleBirth}, {Label: "A", Birth: sampleBirth}}},
		{"bad birth", []Person{{Label: "A", Birth: sampleBirth}, {Label: "B", Birth: ephemeris.BirthData{Year: 1800, Month: 1, Day: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Synastry(context.Background(), tt.people, false)
			if !jerrors.Is(err, jerrors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestAlignment(t *testing.T) {
	r := newTestRunner(static.Fixed(samplePositions()), nil)
	now := time.Date(2024, 3, 15, 6, 0, 30, 0, time.UTC)

	a, err := r.Alignment(context.Background(), sampleBirth, now, false)
	if err != nil {
		t.Fatalf("Alignment() error: %v", err)
	}
	if a.Date != "2024-03-15" || a.Time != "11:30" || a.Timezone != "Asia/Kolkata" {
		t.Errorf("date/time/zone = %s %s %s, want 2024-03-15 11:30 Asia/Kolkata", a.Date, a.Time, a.Timezone)
	}
	if len(a.Transits) != 9 {
		t.Fatalf("transits = %d, want 9", len(a.Transits))
	}
	ketu := a.Transits[len(a.Transits)-1]
	if ketu.Planet != zodiac.Ketu || !ketu.Retrograde {
		t.Errorf("last transit = %+v, want retrograde Ketu", ketu)
	}
	// The sky equals the natal chart, so every transit sits in its natal house.
	for _, tr := range a.Transits {
		if want := a.Natal.Planets[tr.Planet].House; tr.NatalHouse != want {
			t.Errorf("%v natal house = %d, want %d", tr.Planet, tr.NatalHouse, want)
		}
	}
	if a.SunSign != zodiac.Taurus || a.MoonSign != zodiac.Aries {
		t.Errorf("sun/moon = %v/%v, want Taurus/Aries", a.SunSign, a.MoonSign)
	}
	if a.Panchang.Vara.Day != time.Friday {
		t.Errorf("vara = %v, want Friday", a.Panchang.Vara.Day)
	}
	if a.Dasha == nil {
		t.Error("current dasha missing")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	stages  []string
	resolve int
}

func (h *recordingHooks) OnResolveStart(context.Context, time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resolve++
}

func (h *recordingHooks) OnComputeComplete(_ context.Context, stage string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stages = append(h.stages, stage)
}

func TestAnalyzeFiresHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	t.Cleanup(observability.Reset)

	r := newTestRunner(static.Fixed(samplePositions()), nil)
	if _, err := r.Analyze(context.Background(), sampleBirth, Options{}); err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.resolve != 1 {
		t.Errorf("resolve starts = %d, want 1", h.resolve)
	}
	slices.Sort(h.stages)
	want := []string{StageChart, StageDasha, StagePanchang, StageVargas}
	if !slices.Equal(h.stages, want) {
		t.Errorf("stages = %v, want %v", h.stages, want)
	}
}
