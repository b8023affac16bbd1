// Package remote resolves positions from an HTTP ephemeris service.
//
// The service answers
//
//	GET {base}/v1/positions?datetime=<RFC3339 UTC>&lat=<deg>&lon=<deg>&ayanamsa=lahiri
//
// with
//
//	{
//	  "ayanamsa": "lahiri",
//	  "ascendant": 95.51,
//	  "bodies": {"Sun": {"longitude": 40.2, "speed": 0.98}, ...}
//	}
//
// Responses are cached under the request URL, which carries the instant,
// coordinates and ayanamsa. Transport failures, 5xx and 429 responses are
// retried with backoff.
package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jyotish/pkg/buildinfo"
	"github.com/matzehuels/jyotish/pkg/cache"
	"github.com/matzehuels/jyotish/pkg/ephemeris"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	"github.com/matzehuels/jyotish/pkg/httputil"
)

// Config configures a [Resolver].
type Config struct {
	BaseURL  string
	Token    string
	Ayanamsa string
	Timeout  time.Duration

	// Refresh bypasses cached responses.
	Refresh bool

	// HTTPClient overrides the default client.
	HTTPClient *http.Client

	// Logger receives cache warnings. Nil means the default logger.
	Logger *log.Logger
}

// Resolver implements [ephemeris.Resolver] over HTTP.
type Resolver struct {
	client   *httputil.Client
	endpoint string
	ayanamsa string
	keyer    cache.Keyer
	refresh  bool
}

// New creates a Resolver. A nil cache disables caching; a nil keyer uses
// the default.
func New(cfg Config, c cache.Cache, keyer cache.Keyer) (*Resolver, error) {
	if cfg.BaseURL == "" {
		return nil, jerrors.New(jerrors.ErrCodeInvalidInput, "ephemeris URL is not configured")
	}
	if err := jerrors.ValidateURL(cfg.BaseURL); err != nil {
		return nil, err
	}
	if cfg.Ayanamsa == "" {
		cfg.Ayanamsa = ephemeris.Lahiri
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = httputil.NewHTTPClient(cfg.Timeout)
	}
	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": buildinfo.UserAgent(),
	}
	if cfg.Token != "" {
		headers["Authorization"] = "Bearer " + cfg.Token
	}

	return &Resolver{
		client:   httputil.NewClient(hc, c, headers).WithLogger(cfg.Logger),
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/v1/positions",
		ayanamsa: cfg.Ayanamsa,
		keyer:    keyer,
		refresh:  cfg.Refresh,
	}, nil
}

// Resolve implements [ephemeris.Resolver].
func (r *Resolver) Resolve(ctx context.Context, instant time.Time, lat, lon float64) (ephemeris.Positions, error) {
	u := r.url(instant, lat, lon)
	key := r.keyer.HTTPKey("ephemeris", u)

	var pos ephemeris.Positions
	err := r.client.Cached(ctx, key, cache.TTLPositions, r.refresh, &pos, func() error {
		pos = ephemeris.Positions{}
		return r.client.Get(ctx, u, &pos)
	})
	if err != nil {
		return ephemeris.Positions{}, err
	}
	if pos.Instant.IsZero() {
		pos.Instant = instant.UTC()
	}
	if pos.Ayanamsa == "" {
		pos.Ayanamsa = r.ayanamsa
	}
	return pos, nil
}

// Ayanamsa implements [ephemeris.AyanamsaReporter].
func (r *Resolver) Ayanamsa() string { return r.ayanamsa }

func (r *Resolver) url(instant time.Time, lat, lon float64) string {
	q := url.Values{}
	q.Set("datetime", instant.UTC().Format(time.RFC3339))
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("ayanamsa", r.ayanamsa)
	return r.endpoint + "?" + q.Encode()
}

var (
	_ ephemeris.Resolver         = (*Resolver)(nil)
	_ ephemeris.AyanamsaReporter = (*Resolver)(nil)
)
