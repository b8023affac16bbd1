package zodiac

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned when a planet, sign or nakshatra name is not recognized.
var ErrUnknownKey = errors.New("unknown key")

// Planet identifies one of the nine grahas.
type Planet int

// The nine grahas in conventional order.
const (
	Sun Planet = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

var planetNames = [9]string{
	"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu",
}

// Planets lists every planet in conventional order.
var Planets = [9]Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// DashaSequence is the fixed Vimshottari lord order.
var DashaSequence = [9]Planet{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

// DashaCycleYears is the length of a full Vimshottari cycle.
const DashaCycleYears = 120.0

var dashaYears = [9]float64{
	Sun: 6, Moon: 10, Mars: 7, Mercury: 17, Jupiter: 16,
	Venus: 20, Saturn: 19, Rahu: 18, Ketu: 7,
}

// String returns the planet name, e.g. "Jupiter".
func (p Planet) String() string {
	if p < 0 || int(p) >= len(planetNames) {
		return fmt.Sprintf("Planet(%d)", int(p))
	}
	return planetNames[p]
}

// Valid reports whether p is one of the nine planets.
func (p Planet) Valid() bool { return p >= Sun && p <= Ketu }

// IsNode reports whether p is a lunar node (Rahu or Ketu).
func (p Planet) IsNode() bool { return p == Rahu || p == Ketu }

// DashaYears returns the length of the planet's Vimshottari mahadasha.
func (p Planet) DashaYears() float64 { return dashaYears[p] }

// DashaIndex returns p's position in [DashaSequence].
func (p Planet) DashaIndex() int {
	for i, q := range DashaSequence {
		if q == p {
			return i
		}
	}
	return -1
}

// MarshalText implements encoding.TextMarshaler.
func (p Planet) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: planet index %d", ErrUnknownKey, int(p))
	}
	return []byte(planetNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Planet) UnmarshalText(text []byte) error {
	v, err := ParsePlanet(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePlanet resolves a planet by name, case-insensitively.
func ParsePlanet(name string) (Planet, error) {
	for i, n := range planetNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Planet(i), nil
		}
	}
	return 0, fmt.Errorf("%w: planet %q", ErrUnknownKey, name)
}
