package tz

import (
	"testing"
	"time"

	"github.com/matzehuels/jyotish/pkg/ephemeris"
)

func TestZone(t *testing.T) {
	f, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	tests := []struct {
		name     string
		lat, lon float64
		want     string
	}{
		{"delhi", 28.6139, 77.2090, "Asia/Kolkata"},
		{"london", 51.5074, -0.1278, "Europe/London"},
		{"new york", 40.7128, -74.0060, "America/New_York"},
		{"tokyo", 35.6762, 139.6503, "Asia/Tokyo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Zone(tt.lat, tt.lon); got != tt.want {
				t.Errorf("Zone(%v, %v) = %q, want %q", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestBirthInstant(t *testing.T) {
	f, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	b := ephemeris.BirthData{Year: 1990, Month: 3, Day: 15, Hour: 14, Minute: 30, Latitude: 28.6139, Longitude: 77.2090}
	want := time.Date(1990, time.March, 15, 9, 0, 0, 0, time.UTC)
	if got := b.Instant(f); !got.Equal(want) {
		t.Errorf("Instant = %v, want %v", got.UTC(), want)
	}
}

func TestNilFinder(t *testing.T) {
	var f *Finder
	if got := f.Zone(0, 0); got != "" {
		t.Errorf("nil Finder Zone = %q", got)
	}
}
