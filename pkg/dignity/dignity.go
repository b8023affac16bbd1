package dignity

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// Category is a dignity classification.
type Category int

// Categories in evaluation priority order.
const (
	Exalted Category = iota
	Mooltrikona
	OwnSign
	Debilitated
	FriendSign
	EnemySign
	Neutral
)

// ExaltationOrb is the maximum distance from the ideal exaltation degree
// (exclusive) that still counts as exalted.
const ExaltationOrb = 2.0

var categoryNames = [...]string{
	Exalted:     "Exalted",
	Mooltrikona: "Mooltrikona",
	OwnSign:     "Own Sign",
	Debilitated: "Debilitated",
	FriendSign:  "Friend's Sign",
	EnemySign:   "Enemy's Sign",
	Neutral:     "Neutral",
}

var categoryStrength = [...]int{
	Exalted:     5,
	Mooltrikona: 4,
	OwnSign:     3,
	Debilitated: -3,
	FriendSign:  2,
	EnemySign:   -1,
	Neutral:     1,
}

// String returns the display name, e.g. "Own Sign".
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Strength returns the fixed score of the category.
func (c Category) Strength() int { return categoryStrength[c] }

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	for i, n := range categoryNames {
		if n == string(text) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("%w: dignity %q", zodiac.ErrUnknownKey, text)
}

// Dignity is the result of evaluating a placement.
type Dignity struct {
	Category    Category `json:"dignity"`
	Strength    int      `json:"strength"`
	Description string   `json:"description"`
}

// Range is a half-open degree range [Start,End) within one sign.
type Range struct {
	Sign  zodiac.Sign
	Start float64
	End   float64
}

// Contains reports whether (sign, degree) falls inside the range.
func (r Range) Contains(sign zodiac.Sign, degree float64) bool {
	return sign == r.Sign && degree >= r.Start && degree < r.End
}

// Profile is the dignity table of one planet.
type Profile struct {
	Own           []zodiac.Sign
	Exaltation    zodiac.Sign
	ExaltationDeg float64
	Debilitation  zodiac.Sign
	Mooltrikona   *Range
	Friends       []zodiac.Planet
	Enemies       []zodiac.Planet
	Neutrals      []zodiac.Planet
}

// Relationship classifies other relative to the profile's planet.
func (p Profile) Relationship(other zodiac.Planet) Category {
	switch {
	case slices.Contains(p.Friends, other):
		return FriendSign
	case slices.Contains(p.Enemies, other):
		return EnemySign
	default:
		return Neutral
	}
}

// ProfileOf returns the dignity table of a planet.
func ProfileOf(p zodiac.Planet) Profile { return profiles[p] }

// Evaluate returns the dignity of planet placed at degree within sign.
func Evaluate(planet zodiac.Planet, sign zodiac.Sign, degree float64) Dignity {
	prof := profiles[planet]

	if sign == prof.Exaltation && math.Abs(degree-prof.ExaltationDeg) < ExaltationOrb {
		return newDignity(Exalted, fmt.Sprintf("Strongly exalted in %s at %s° (ideal: %s°)",
			sign, fmtDeg(degree), fmtDeg(prof.ExaltationDeg)))
	}
	if mt := prof.Mooltrikona; mt != nil && mt.Contains(sign, degree) {
		return newDignity(Mooltrikona, fmt.Sprintf("In mooltrikona sign %s (%s°-%s°)",
			sign, fmtDeg(mt.Start), fmtDeg(mt.End)))
	}
	if slices.Contains(prof.Own, sign) {
		return newDignity(OwnSign, fmt.Sprintf("In own sign %s", sign))
	}
	if sign == prof.Debilitation {
		return newDignity(Debilitated, fmt.Sprintf("Debilitated in %s", sign))
	}

	ruler := sign.Ruler()
	cat := prof.Relationship(ruler)
	var tone string
	switch cat {
	case FriendSign:
		tone = "friendly"
	case EnemySign:
		tone = "enemy"
	default:
		tone = "neutral"
	}
	return newDignity(cat, fmt.Sprintf("In %s's sign (%s) - %s placement", ruler, sign, tone))
}

func newDignity(c Category, desc string) Dignity {
	return Dignity{Category: c, Strength: c.Strength(), Description: desc}
}

func fmtDeg(d float64) string {
	return strconv.FormatFloat(math.Round(d*100)/100, 'f', -1, 64)
}
