package zodiac

import (
	"fmt"
	"strings"
)

// NakshatraSpan is the width of one nakshatra in degrees (13°20').
const NakshatraSpan = 360.0 / 27

// Nakshatra is a lunar mansion indexed from 0 (Ashwini) to 26 (Revati).
type Nakshatra int

// NakshatraCount is the number of lunar mansions.
const NakshatraCount = 27

var nakshatraNames = [NakshatraCount]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// String returns the nakshatra name.
func (n Nakshatra) String() string {
	if n < 0 || int(n) >= NakshatraCount {
		return fmt.Sprintf("Nakshatra(%d)", int(n))
	}
	return nakshatraNames[n]
}

// Lord returns the Vimshottari lord of the nakshatra.
func (n Nakshatra) Lord() Planet { return DashaSequence[int(n)%len(DashaSequence)] }

// Start returns the longitude at which the nakshatra begins.
func (n Nakshatra) Start() float64 { return float64(n) * NakshatraSpan }

// MarshalText implements encoding.TextMarshaler.
func (n Nakshatra) MarshalText() ([]byte, error) {
	if n < 0 || int(n) >= NakshatraCount {
		return nil, fmt.Errorf("%w: nakshatra index %d", ErrUnknownKey, int(n))
	}
	return []byte(nakshatraNames[n]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Nakshatra) UnmarshalText(text []byte) error {
	v, err := ParseNakshatra(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// ParseNakshatra resolves a nakshatra by name, case-insensitively.
func ParseNakshatra(name string) (Nakshatra, error) {
	for i, n := range nakshatraNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Nakshatra(i), nil
		}
	}
	return 0, fmt.Errorf("%w: nakshatra %q", ErrUnknownKey, name)
}
