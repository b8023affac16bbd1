package panchang

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// Paksha is the lunar fortnight.
type Paksha int

const (
	Shukla Paksha = iota
	Krishna
)

func (p Paksha) String() string {
	if p == Krishna {
		return "Krishna"
	}
	return "Shukla"
}

// MarshalText implements encoding.TextMarshaler.
func (p Paksha) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Paksha) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "shukla":
		*p = Shukla
	case "krishna":
		*p = Krishna
	default:
		return fmt.Errorf("%w: paksha %q", zodiac.ErrUnknownKey, text)
	}
	return nil
}

// Tithi is the lunar day.
type Tithi struct {
	Number  int    `json:"number"`
	Display int    `json:"display"`
	Paksha  Paksha `json:"paksha"`
	Name    string `json:"name"`
	Special string `json:"special,omitempty"`
}

// Yoga is the Sun-Moon combination.
type Yoga struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Karana is the half-tithi.
type Karana struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Vara is the weekday and its lord.
type Vara struct {
	Day      time.Weekday  `json:"-"`
	Name     string        `json:"name"`
	Lord     zodiac.Planet `json:"lord"`
	Sanskrit string        `json:"sanskrit"`
}

// Panchang is the daily indicator set.
type Panchang struct {
	Date          time.Time                 `json:"date"`
	Tithi         Tithi                     `json:"tithi"`
	MoonNakshatra zodiac.NakshatraPlacement `json:"moon_nakshatra"`
	Yoga          Yoga                      `json:"yoga"`
	Karana        Karana                    `json:"karana"`
	Vara          Vara                      `json:"vara"`
}

// Compute returns the panchang for the given longitudes. The vara follows the
// weekday of date in its own location.
func Compute(sun, moon float64, date time.Time) Panchang {
	return Panchang{
		Date:          date,
		Tithi:         TithiOf(sun, moon),
		MoonNakshatra: zodiac.PlaceNakshatra(zodiac.Normalize(moon)),
		Yoga:          YogaOf(sun, moon),
		Karana:        KaranaOf(sun, moon),
		Vara:          VaraOf(date.Weekday()),
	}
}

// elongation returns (moon − sun) mod 360.
func elongation(sun, moon float64) float64 {
	return zodiac.Normalize(moon - sun)
}

// TithiOf returns the tithi for the given longitudes.
func TithiOf(sun, moon float64) Tithi {
	n := min(int(elongation(sun, moon)/12)+1, 30)

	t := Tithi{Number: n, Display: n, Paksha: Shukla}
	if n > 15 {
		t.Paksha = Krishna
		t.Display = n - 15
	}

	name := tithiNames[t.Display-1]
	if t.Display == 15 {
		name = "Purnima"
		if t.Paksha == Krishna {
			name = "Amavasya"
		}
	}
	t.Name = t.Paksha.String() + " " + name
	if name == "Ekadashi" {
		t.Special = name
	}
	return t
}

// YogaOf returns the yoga for the given longitudes.
func YogaOf(sun, moon float64) Yoga {
	idx := min(int(zodiac.Normalize(sun+moon)/zodiac.NakshatraSpan), len(yogaNames)-1)
	return Yoga{Number: idx + 1, Name: yogaNames[idx]}
}

// KaranaOf returns the karana for the given longitudes.
func KaranaOf(sun, moon float64) Karana {
	n := min(int(elongation(sun, moon)/6)+1, 60)
	var name string
	switch {
	case n == 1:
		name = "Kimstughna"
	case n >= 57:
		name = fixedKaranas[n-57]
	default:
		name = movableKaranas[(n-2)%len(movableKaranas)]
	}
	return Karana{Number: n, Name: name}
}

// VaraOf returns the weekday lord. time.Weekday already counts from Sunday.
func VaraOf(d time.Weekday) Vara {
	v := varas[d%7]
	v.Day = d % 7
	v.Name = v.Day.String()
	return v
}
