package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/jyotish/pkg/ephemeris"
	"github.com/matzehuels/jyotish/pkg/ephemeris/static"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	"github.com/matzehuels/jyotish/pkg/pipeline"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

const birthJSON = `"year": 2000, "month": 1, "day": 3, "hour": 14, "minute": 30, "latitude": 28.6139, "longitude": 77.2090`

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

type failingResolver struct{}

func (failingResolver) Resolve(context.Context, time.Time, float64, float64) (ephemeris.Positions, error) {
	return ephemeris.Positions{}, errors.New("connection reset")
}

func newTestServer(t *testing.T, r ephemeris.Resolver) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	zones := ephemeris.ZoneFunc(func(lat, lon float64) string { return "Asia/Kolkata" })
	s := New(pipeline.NewRunner(r, zones, nil, nil, logger), logger)
	s.now = func() time.Time { return time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC) }

	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s response: %v", path, err)
	}
	return resp, out
}

// field walks a decoded JSON object along dotted keys.
func field(v any, path string) any {
	for _, k := range strings.Split(path, ".") {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[k]
	}
	return v
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, static.Fixed(samplePositions()))

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if _, err := uuid.Parse(resp.Header.Get(HeaderRequestID)); err != nil {
		t.Errorf("request ID %q is not a UUID", resp.Header.Get(HeaderRequestID))
	}
}

func TestRequestIDPropagated(t *testing.T) {
	ts := newTestServer(t, static.Fixed(samplePositions()))
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}
}

func TestVargas(t *testing.T) {
	ts := newTestServer(t, static.Fixed(samplePositions()))

	resp, err := http.Get(ts.URL + "/api/vargas")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var defs []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&defs); err != nil {
		t.Fatal(err)
	}
	if len(defs) != 16 {
		t.Fatalf("definitions = %d, want 16", len(defs))
	}
	if defs[0]["code"] != "D1" || defs[15]["code"] != "D60" {
		t.Errorf("codes = %v..%v, want D1..D60", defs[0]["code"], defs[15]["code"])
	}
}

func TestChart(t *testing.T) {
	ts := newTestServer(t, static.Fixed(samplePositions()))

	resp, out := post(t, ts, "/api/chart", "{"+birthJSON+"}")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, out)
	}
	if got := field(out, "chart.ascendant.sign"); got != "Cancer" {
		t.Errorf("ascendant = %v, want Cancer", got)
	}
	if got := field(out, "timezone"); got != "Asia/Kolkata" {
		t.Errorf("timezone = %v, want Asia/Kolkata", got)
	}
	vargas, _ := field(out, "divisional_charts").(map[string]any)
	if len(vargas) != 16 {
		t.Errorf("divisional charts = %d, want 16", len(vargas))
	}
	if field(out, "current_dasha") == nil {
		t.Error("current dasha missing")
	}
	if got := field(out, "panchang.vara.name"); got != "Monday" {
		t.Errorf("vara = %v, want Monday", got)
	}
}

func TestChartSelectedVargas(t *testing.T) {
	ts := newTestServer(t, static.Fixed(samplePositions()))

	_, out := post(t, ts, "/api/chart", `{`+birthJSON+`, "vargas": ["D9", "d10"]}`)
	vargas, _ := field(out, "divisional_charts").(map[string]any)
	if len(vargas) != 2 || vargas["D9"] == nil || vargas["D10"] == nil {
		t.Errorf("divisional charts = %v, want D9 and D10", vargas)
	}
}

func TestBasicChart(t *testing.T) {
	ts := newTestServer(t, static.Fixed(samplePositions()))

	resp, out := post(t, ts, "/api/chart/basic", "{"+birthJSON+"}")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, out)
	}
	if got := field(out, "chart.planets.Moon.nakshatra.nakshatra"); got != "Bharani" {
		t.Errorf("moon nakshatra = %v, want Bharani", got)
	}
	if field(out, "divisional_charts") != nil {
		t.Error("basic chart includes divisional charts")
	}
}

func TestDasha(t *testing.T) {
	ts := newTestServer(t, static.Fixed(samplePositions()))

	resp, out := post(t, ts, "/api/dasha", "{"+birthJSON+"}")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, out)
	}
	maha, _ := field(out, "dasha.maha_dashas").([]any)
	if len(maha) != 9 {
		t.Errorf("maha dashas = %d, want 9", len(maha))
	}
	if got := field(maha[0], "lord"); got != "Venus" {
		t.Errorf("first lord = %v, want Venus", got)
	}
}

func TestSynastry(t *testing.T) {
	ts := newTestServer(t, static.Fixed(samplePositions()))
	body := fmt.Sprintf(`{"people": [
		{"label": "Asha", "birth_data": {%s}},
		{"label": "Ravi", "birth_data": {%s}}
	]}`, birthJSON, birthJSON)

	resp, out := post(t, ts, "/api/synastry?format=markdown", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, out)
	}
	pairs, _ := field(out, "synastry.pair_analyses").([]any)
	if len(pairs) != 1 {
		t.Fatalf("pairs = %d, want 1", len(pairs))
	}
	if got := field(pairs[0], "pair"); got != "Asha & Ravi" {
		t.Errorf("pair = %v, want Asha & Ravi", got)
	}
	if txt, _ := out["text"].(string); !strings.Contains(txt, "## Synastry Analysis Data") {
		t.Errorf("markdown text missing: %.80q", txt)
	}
}

func TestAlignment(t *testing.T) {
	ts := newTestServer(t, static.Fixed(samplePositions()))

	resp, out := post(t, ts, "/api/alignment", `{"birth_data": {`+birthJSON+`}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, out)
	}
	if out["date"] != "2024-03-15" || out["time"] != "11:30" {
		t.Errorf("date/time = %v %v, want 2024-03-15 11:30", out["date"], out["time"])
	}
	if transits, _ := out["transits"].([]any); len(transits) != 9 {
		t.Errorf("transits = %d, want 9", len(transits))
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name     string
		resolver ephemeris.Resolver
		path     string
		body     string
		status   int
		code     jerrors.Code
	}{
		{"malformed json", static.Fixed(samplePositions()), "/api/chart", `{"year":`, 400, jerrors.ErrCodeInvalidFormat},
		{"unknown field", static.Fixed(samplePositions()), "/api/chart", `{` + birthJSON + `, "zodiac": "tropical"}`, 400, jerrors.ErrCodeInvalidFormat},
		{"trailing data", static.Fixed(samplePositions()), "/api/chart/basic", `{` + birthJSON + `} {}`, 400, jerrors.ErrCodeInvalidFormat},
		{"month out of range", static.Fixed(samplePositions()), "/api/chart", `{"year": 2000, "month": 13, "day": 1}`, 400, jerrors.ErrCodeInvalidInput},
		{"unknown varga", static.Fixed(samplePositions()), "/api/chart", `{` + birthJSON + `, "vargas": ["D11"]}`, 400, jerrors.ErrCodeInvalidFormat},
		{"no positions", static.New(), "/api/chart/basic", `{` + birthJSON + `}`, 404, jerrors.ErrCodeNotFound},
		{"upstream down", failingResolver{}, "/api/dasha", `{` + birthJSON + `}`, 502, jerrors.ErrCodeUpstreamResolution},
		{"one person", static.Fixed(samplePositions()), "/api/synastry", `{"people": [{"label": "A", "birth_data": {` + birthJSON + `}}]}`, 400, jerrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.resolver)
			resp, out := post(t, ts, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if got := field(out, "error.code"); got != string(tt.code) {
				t.Errorf("code = %v, want %s", got, tt.code)
			}
			if got := field(out, "request_id"); got != resp.Header.Get(HeaderRequestID) {
				t.Errorf("request_id = %v, header %q", got, resp.Header.Get(HeaderRequestID))
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{jerrors.New(jerrors.ErrCodeInvalidInput, "x"), 400},
		{fmt.Errorf("parse: %w", zodiac.ErrUnknownKey), 400},
		{jerrors.New(jerrors.ErrCodeNotFound, "x"), 404},
		{jerrors.New(jerrors.ErrCodeNetwork, "x"), 502},
		{jerrors.New(jerrors.ErrCodeTimeout, "x"), 504},
		{context.DeadlineExceeded, 504},
		{jerrors.New(jerrors.ErrCodeNormalization, "x"), 500},
		{errors.New("boom"), 500},
	}
	for _, tt := range tests {
		if got, _ := statusFor(tt.err); got != tt.status {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.status)
		}
	}
}
