package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/jyotish/pkg/cache"
	"github.com/matzehuels/jyotish/pkg/ephemeris"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	jio "github.com/matzehuels/jyotish/pkg/io"
)

const positionsTOML = `
[positions]
ascendant = 95.5

[positions.bodies.Sun]
longitude = 40.2
speed = 0.96

[positions.bodies.Moon]
longitude = 15.0
speed = 13.2

[positions.bodies.Mars]
longitude = 298.0

[positions.bodies.Mercury]
longitude = 165.5
speed = -0.3

[positions.bodies.Jupiter]
longitude = 95.0

[positions.bodies.Venus]
longitude = 357.0

[positions.bodies.Saturn]
longitude = 200.0

[positions.bodies.Rahu]
longitude = 80.0
speed = -0.05
`

// writeProfile writes a profile with embedded positions to the working
// directory.
func writeProfile(t *testing.T, label string) string {
	t.Helper()
	body := `label = "` + label + `"

[birth]
year = 2000
month = 1
day = 3
hour = 14
minute = 30
latitude = 28.6139
longitude = 77.209
timezone = "Asia/Kolkata"
` + positionsTOML
	path := strings.ToLower(label) + ".toml"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// setup isolates config, cache and working directory from the developer's
// machine.
func setup(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JYOTISH_CACHE_BACKEND", "none")
	t.Setenv("JYOTISH_EPHEMERIS_URL", "")
	captureUI(t)
}

// execute runs the root command and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	c.Zones = ephemeris.ZoneFunc(func(lat, lon float64) string { return "Asia/Kolkata" })

	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("jyotish %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestChartTable(t *testing.T) {
	setup(t)
	path := writeProfile(t, "Asha")

	out := mustExecute(t, "chart", path, "--at", "2024-03-15")
	for _, want := range []string{"Asha", "Cancer", "Bharani", "Asia/Kolkata", "Mercury ℞"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart output missing %q:\n%s", want, out)
		}
	}
}

func TestChartJSON(t *testing.T) {
	setup(t)
	path := writeProfile(t, "Asha")

	out := mustExecute(t, "chart", path, "-f", "json", "--vargas", "D9,d10")
	var res map[string]any
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got := res["timezone"]; got != "Asia/Kolkata" {
		t.Errorf("timezone = %v, want Asia/Kolkata", got)
	}
	vargas, _ := res["divisional_charts"].(map[string]any)
	if len(vargas) != 2 {
		t.Errorf("divisional charts = %d, want 2", len(vargas))
	}
}

func TestChartPicksUpEditedPositions(t *testing.T) {
	setup(t)
	t.Setenv("JYOTISH_CACHE_BACKEND", "file")
	t.Setenv("JYOTISH_CACHE_DIR", filepath.Join(t.TempDir(), "cache"))
	path := writeProfile(t, "Asha")

	ascendant := func() float64 {
		t.Helper()
		var res struct {
			Chart struct {
				Ascendant struct {
					Longitude float64 `json:"longitude"`
				} `json:"ascendant"`
			} `json:"chart"`
		}
		out := mustExecute(t, "chart", path, "-f", "json")
		if err := json.Unmarshal([]byte(out), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return res.Chart.Ascendant.Longitude
	}

	if got := ascendant(); got != 95.5 {
		t.Fatalf("ascendant = %v, want 95.5", got)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	edited := strings.Replace(string(data), "ascendant = 95.5", "ascendant = 200.25", 1)
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := ascendant(); got != 200.25 {
		t.Errorf("ascendant after edit = %v, want 200.25", got)
	}
}

func TestChartMarkdownToFile(t *testing.T) {
	setup(t)
	path := writeProfile(t, "Asha")

	if out := mustExecute(t, "chart", path, "-f", "markdown", "-o", "asha.md"); out != "" {
		t.Errorf("stdout = %q, want empty when writing a file", out)
	}
	data, err := os.ReadFile("asha.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"## Birth Chart Data", "### Vimshottari Dasha"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestChartErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code jerrors.Code
	}{
		{"no birth data", []string{"chart"}, jerrors.ErrCodeInvalidInput},
		{"unknown format", []string{"chart", "asha.toml", "-f", "xml"}, jerrors.ErrCodeInvalidInput},
		{"unknown varga", []string{"chart", "asha.toml", "--vargas", "D5"}, jerrors.ErrCodeUnknownKey},
		{"bad --at", []string{"chart", "asha.toml", "--at", "tomorrow"}, jerrors.ErrCodeInvalidInput},
		{"missing file", []string{"chart", "nobody.toml"}, jerrors.ErrCodeFileNotFound},
		{"unknown label", []string{"chart", "asha.toml", "--label", "Ravi"}, jerrors.ErrCodeNotFound},
		{"no positions", []string{"chart", "--date", "1990-03-15", "--lat", "28.6", "--lon", "77.2"}, jerrors.ErrCodeNotFound},
		{"watch without file", []string{"chart", "--watch", "--date", "1990-03-15"}, jerrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			writeProfile(t, "Asha")

			_, err := execute(t, tt.args...)
			if !jerrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestVargas(t *testing.T) {
	setup(t)
	path := writeProfile(t, "Asha")

	out := mustExecute(t, "vargas", path, "--vargas", "D9")
	if !strings.Contains(out, "D9 Navamsa") || !strings.Contains(out, "Natal degree") {
		t.Errorf("single chart output:\n%s", out)
	}

	out = mustExecute(t, "vargas", path)
	for _, want := range []string{"D1", "D60", "Asc", "Can"} {
		if !strings.Contains(out, want) {
			t.Errorf("matrix missing %q:\n%s", want, out)
		}
	}
}

func TestVargasList(t *testing.T) {
	setup(t)

	out := mustExecute(t, "vargas", "list", "-f", "json")
	var defs []map[string]any
	if err := json.Unmarshal([]byte(out), &defs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(defs) != 16 {
		t.Errorf("definitions = %d, want 16", len(defs))
	}
}

func TestDasha(t *testing.T) {
	setup(t)
	path := writeProfile(t, "Asha")

	out := mustExecute(t, "dasha", path, "--at", "2001-01-01")
	for _, want := range []string{"Bharani", "Venus", "balance", iconCurrent} {
		if !strings.Contains(out, want) {
			t.Errorf("dasha output missing %q:\n%s", want, out)
		}
	}

	out = mustExecute(t, "dasha", path, "--antar", "--at", "2001-01-01")
	if !strings.Contains(out, "Maha dasha") || !strings.Contains(out, "Venus until") {
		t.Errorf("antar output:\n%s", out)
	}
}

func TestDashaOutsideTimeline(t *testing.T) {
	setup(t)
	path := writeProfile(t, "Asha")
	buf := captureUI(t)

	out := mustExecute(t, "dasha", path, "--antar", "--at", "1990-01-01")
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	if !strings.Contains(buf.String(), "outside the dasha timeline") {
		t.Errorf("warning missing: %q", buf.String())
	}
}

func TestAlignmentNeedsService(t *testing.T) {
	setup(t)
	path := writeProfile(t, "Asha")

	// Embedded positions cover the birth, not the sky at --at.
	_, err := execute(t, "alignment", path, "--at", "2024-03-15T11:30")
	if !jerrors.Is(err, jerrors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestSynastry(t *testing.T) {
	setup(t)
	asha := writeProfile(t, "Asha")
	ravi := writeProfile(t, "Ravi")

	out := mustExecute(t, "synastry", asha, ravi)
	if !strings.Contains(out, "Asha & Ravi") {
		t.Errorf("table missing pair:\n%s", out)
	}

	out = mustExecute(t, "synastry", asha, ravi, "-f", "dot", "--tags", "romantic")
	if !strings.HasPrefix(out, "graph G {") {
		t.Errorf("dot output = %.40q", out)
	}

	out = mustExecute(t, "synastry", asha, ravi, "-f", "json")
	var res map[string]any
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := res["synastry"]; !ok {
		t.Errorf("json keys = %v, want synastry", res)
	}
}

func TestSynastryErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code jerrors.Code
	}{
		{"one person", []string{"synastry", "asha.toml"}, jerrors.ErrCodeInvalidInput},
		{"unknown tag", []string{"synastry", "asha.toml", "ravi.toml", "--tags", "financial"}, jerrors.ErrCodeUnknownKey},
		{"unknown person", []string{"synastry", "asha.toml", "ravi.toml", "--people", "Asha,Mira"}, jerrors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			writeProfile(t, "Asha")
			writeProfile(t, "Ravi")

			_, err := execute(t, tt.args...)
			if !jerrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestInit(t *testing.T) {
	setup(t)

	args := []string{"init", "mira.toml", "--label", "Mira", "--date", "1992-11-08", "--time", "23:15",
		"--lat", "12.97", "--lon", "77.59", "--tz", "Asia/Kolkata"}
	mustExecute(t, args...)

	p, err := jio.LoadProfile("mira.toml")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	want := ephemeris.BirthData{Year: 1992, Month: 11, Day: 8, Hour: 23, Minute: 15, Latitude: 12.97, Longitude: 77.59, Timezone: "Asia/Kolkata"}
	if p.Label != "Mira" || p.Birth != want {
		t.Errorf("profile = %+v, want Mira %+v", p, want)
	}

	if _, err := execute(t, args...); !jerrors.Is(err, jerrors.ErrCodeInvalidInput) {
		t.Errorf("second init error = %v, want INVALID_INPUT", err)
	}
	mustExecute(t, append(args, "--force")...)
}

func TestCachePath(t *testing.T) {
	setup(t)
	dir := t.TempDir()
	t.Setenv("JYOTISH_CACHE_DIR", dir)

	if out := mustExecute(t, "cache", "path"); strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", out, dir)
	}
}

func TestCacheClear(t *testing.T) {
	setup(t)
	dir := filepath.Join(t.TempDir(), "cache")
	t.Setenv("JYOTISH_CACHE_BACKEND", "file")
	t.Setenv("JYOTISH_CACHE_DIR", dir)

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"a", "b"} {
		if err := fc.Set(ctx, key, []byte("{}"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	buf := captureUI(t)
	mustExecute(t, "cache", "clear")
	if !strings.Contains(buf.String(), "Cleared 2 cached entries") {
		t.Errorf("status = %q", buf.String())
	}
	if _, ok, _ := fc.Get(ctx, "a"); ok {
		t.Error("entry survived cache clear")
	}
}

func TestCacheClearOtherBackend(t *testing.T) {
	setup(t)
	t.Setenv("JYOTISH_CACHE_BACKEND", "redis")
	buf := captureUI(t)

	mustExecute(t, "cache", "clear")
	if !strings.Contains(buf.String(), "only manages the file backend") {
		t.Errorf("status = %q", buf.String())
	}
}

func TestCompletion(t *testing.T) {
	setup(t)
	if out := mustExecute(t, "completion", "bash"); !strings.Contains(out, "jyotish") {
		t.Errorf("bash completion does not mention jyotish")
	}
}

func TestInvalidConfig(t *testing.T) {
	setup(t)
	t.Setenv("JYOTISH_CACHE_BACKEND", "memcached")

	if _, err := execute(t, "vargas", "list"); !jerrors.Is(err, jerrors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
