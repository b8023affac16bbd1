package synastry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// Tag groups aspects by significator planets.
type Tag int

const (
	Romantic Tag = iota
	Emotional
	Mental
	Karmic
	Spiritual
)

var tagNames = [...]string{"romantic", "emotional", "mental", "karmic", "spiritual"}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return tagNames[t]
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// ParseTag parses a tag name, ignoring case.
func ParseTag(name string) (Tag, error) {
	for i, n := range tagNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Tag(i), nil
		}
	}
	return 0, fmt.Errorf("%w: tag %q", zodiac.ErrUnknownKey, name)
}

var significators = map[Tag][]zodiac.Planet{
	Romantic:  {zodiac.Venus, zodiac.Mars, zodiac.Moon, zodiac.Sun},
	Emotional: {zodiac.Moon, zodiac.Venus, zodiac.Jupiter},
	Mental:    {zodiac.Mercury, zodiac.Jupiter},
	Karmic:    {zodiac.Saturn, zodiac.Rahu, zodiac.Ketu},
	Spiritual: {zodiac.Jupiter, zodiac.Ketu, zodiac.Sun},
}

// Significators returns the planets of a tag.
func Significators(t Tag) []zodiac.Planet { return slices.Clone(significators[t]) }

// tagsOf returns the tags either planet carries, in tag order.
func tagsOf(p1, p2 zodiac.Planet) []Tag {
	var out []Tag
	for t := Romantic; t <= Spiritual; t++ {
		list := significators[t]
		if slices.Contains(list, p1) || slices.Contains(list, p2) {
			out = append(out, t)
		}
	}
	return out
}
