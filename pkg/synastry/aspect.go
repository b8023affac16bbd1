package synastry

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// Nature is the quality of an aspect.
type Nature int

const (
	Powerful Nature = iota
	Harmonious
	Challenging
)

var natureNames = [...]string{"powerful", "harmonious", "challenging"}

func (n Nature) String() string {
	if n < 0 || int(n) >= len(natureNames) {
		return fmt.Sprintf("Nature(%d)", int(n))
	}
	return natureNames[n]
}

// MarshalText implements encoding.TextMarshaler.
func (n Nature) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Nature) UnmarshalText(text []byte) error {
	for i, s := range natureNames {
		if strings.EqualFold(s, string(text)) {
			*n = Nature(i)
			return nil
		}
	}
	return fmt.Errorf("%w: nature %q", zodiac.ErrUnknownKey, text)
}

// Kind is one entry of the aspect table.
type Kind struct {
	Name        string  `json:"name"`
	Angle       float64 `json:"exact_angle"`
	Orb         float64 `json:"max_orb"`
	Nature      Nature  `json:"nature"`
	Description string  `json:"description"`
}

// kinds is ordered by ascending exact angle; the first match wins.
var kinds = [...]Kind{
	{"Conjunction", 0, 8, Powerful, "Fusion of energies"},
	{"Sextile", 60, 4, Harmonious, "Opportunity and flow"},
	{"Square", 90, 6, Challenging, "Tension and growth"},
	{"Trine", 120, 6, Harmonious, "Natural harmony"},
	{"Opposition", 180, 8, Challenging, "Polarity and balance"},
}

// Kinds returns the aspect table.
func Kinds() []Kind { return append([]Kind(nil), kinds[:]...) }

// Match is a classified angular separation.
type Match struct {
	Kind
	Measured  float64 `json:"angle"`
	Deviation float64 `json:"orb"`
}

// Separation returns the shortest arc between two longitudes, in [0,180].
func Separation(lon1, lon2 float64) float64 {
	d := math.Abs(zodiac.Normalize(lon1) - zodiac.Normalize(lon2))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Classify returns the aspect formed by two longitudes, if any.
func Classify(lon1, lon2 float64) (Match, bool) {
	d := Separation(lon1, lon2)
	for _, k := range kinds {
		if dev := math.Abs(d - k.Angle); dev <= k.Orb {
			return Match{Kind: k, Measured: d, Deviation: dev}, true
		}
	}
	return Match{}, false
}
