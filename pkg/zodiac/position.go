package zodiac

import (
	"errors"
	"fmt"
	"math"
)

// ErrNormalization is the panic value (wrapped) raised when a classifier
// receives a longitude outside [0,360).
var ErrNormalization = errors.New("longitude not normalized to [0,360)")

// Normalize reduces a longitude in degrees to [0,360).
func Normalize(lon float64) float64 {
	l := math.Mod(lon, 360)
	if l < 0 {
		l += 360
	}
	// math.Mod of a tiny negative value plus 360 rounds up to 360.
	if l >= 360 {
		l = 0
	}
	return l
}

// SignPlacement locates a longitude within the twelve signs.
type SignPlacement struct {
	Sign   Sign    `json:"sign"`
	Degree float64 `json:"degree"` // degree within the sign, [0,30)
}

// Longitude returns the absolute longitude of the placement.
func (p SignPlacement) Longitude() float64 {
	return float64(p.Sign)*SignSpan + p.Degree
}

// NakshatraPlacement locates a longitude within the 27 nakshatras.
type NakshatraPlacement struct {
	Nakshatra Nakshatra `json:"nakshatra"`
	Pada      int       `json:"pada"`
	Lord      Planet    `json:"lord"`

	// Fraction is the position inside the nakshatra's span, in [0,1).
	Fraction float64 `json:"fraction"`
}

// Position is the full classification of a longitude.
type Position struct {
	Longitude float64 `json:"longitude"`
	SignPlacement
	Nakshatra NakshatraPlacement `json:"nakshatra"`
}

// PlaceSign returns the sign and degree-in-sign of lon, which must be in [0,360).
func PlaceSign(lon float64) SignPlacement {
	mustNormalized(lon)
	idx := min(int(lon/SignSpan), 11)
	return SignPlacement{
		Sign:   Sign(idx),
		Degree: lon - float64(idx)*SignSpan,
	}
}

// PlaceNakshatra returns the nakshatra, pada and lord of lon, which must be in [0,360).
func PlaceNakshatra(lon float64) NakshatraPlacement {
	mustNormalized(lon)
	q := lon / NakshatraSpan
	idx := min(int(q), NakshatraCount-1)
	frac := q - float64(idx)
	if frac >= 1 {
		frac = math.Nextafter(1, 0)
	}
	pada := min(int(frac*4)+1, 4)
	n := Nakshatra(idx)
	return NakshatraPlacement{
		Nakshatra: n,
		Pada:      pada,
		Lord:      n.Lord(),
		Fraction:  frac,
	}
}

// Classify returns the sign and nakshatra placement of lon, which must be in [0,360).
func Classify(lon float64) Position {
	return Position{
		Longitude:     lon,
		SignPlacement: PlaceSign(lon),
		Nakshatra:     PlaceNakshatra(lon),
	}
}

// House returns the whole-sign house (1..12) of sign counted from the ascendant sign.
func House(sign, ascendant Sign) int {
	return ((int(sign)-int(ascendant))%12+12)%12 + 1
}

func mustNormalized(lon float64) {
	if !(lon >= 0 && lon < 360) {
		panic(fmt.Errorf("%w: %v", ErrNormalization, lon))
	}
}
