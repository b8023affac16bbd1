package zodiac

import (
	"fmt"
	"strings"
)

// Sign is a zodiac sign indexed from 0 (Aries) to 11 (Pisces).
type Sign int

// The twelve signs.
const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignSpan is the width of one sign in degrees.
const SignSpan = 30.0

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signRulers = [12]Planet{
	Mars, Venus, Mercury, Moon, Sun, Mercury,
	Venus, Mars, Jupiter, Saturn, Saturn, Jupiter,
}

// Signs lists every sign in zodiacal order.
var Signs = [12]Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// String returns the sign name, e.g. "Aries".
func (s Sign) String() string {
	if s < 0 || int(s) >= len(signNames) {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Number returns the traditional 1-based sign number.
func (s Sign) Number() int { return int(s) + 1 }

// Add returns the sign n places further along the zodiac. Negative n walks
// backwards.
func (s Sign) Add(n int) Sign {
	return Sign(((int(s)+n)%12 + 12) % 12)
}

// Ruler returns the planet that owns the sign.
func (s Sign) Ruler() Planet { return signRulers[s] }

// IsOdd reports whether the sign is odd in traditional 1-based numbering
// (Aries, Gemini, Leo, Libra, Sagittarius, Aquarius).
func (s Sign) IsOdd() bool { return s%2 == 0 }

// Modality returns the sign's movable/fixed/dual grouping.
func (s Sign) Modality() Modality { return Modality(s % 3) }

// Element returns the sign's fire/earth/air/water grouping.
func (s Sign) Element() Element { return Element(s % 4) }

// MarshalText implements encoding.TextMarshaler.
func (s Sign) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(signNames) {
		return nil, fmt.Errorf("%w: sign index %d", ErrUnknownKey, int(s))
	}
	return []byte(signNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sign) UnmarshalText(text []byte) error {
	v, err := ParseSign(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSign resolves a sign by name, case-insensitively.
func ParseSign(name string) (Sign, error) {
	for i, n := range signNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Sign(i), nil
		}
	}
	return 0, fmt.Errorf("%w: sign %q", ErrUnknownKey, name)
}

// Modality groups signs by sign index mod 3.
type Modality int

// Modalities.
const (
	Movable Modality = iota
	Fixed
	Dual
)

func (m Modality) String() string {
	switch m {
	case Movable:
		return "Movable"
	case Fixed:
		return "Fixed"
	case Dual:
		return "Dual"
	}
	return fmt.Sprintf("Modality(%d)", int(m))
}

// Element groups signs by sign index mod 4.
type Element int

// Elements.
const (
	Fire Element = iota
	Earth
	Air
	Water
)

func (e Element) String() string {
	switch e {
	case Fire:
		return "Fire"
	case Earth:
		return "Earth"
	case Air:
		return "Air"
	case Water:
		return "Water"
	}
	return fmt.Sprintf("Element(%d)", int(e))
}
