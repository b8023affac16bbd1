package dasha

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// DaysPerYear converts dasha years to elapsed time.
const DaysPerYear = 365.25

// Depth is the level of a period in the tree.
type Depth int

const (
	Maha Depth = iota
	Antar
)

var depthNames = [...]string{"maha", "antar"}

func (d Depth) String() string {
	if d < 0 || int(d) >= len(depthNames) {
		return fmt.Sprintf("Depth(%d)", int(d))
	}
	return depthNames[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d Depth) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Depth) UnmarshalText(text []byte) error {
	for i, n := range depthNames {
		if strings.EqualFold(n, string(text)) {
			*d = Depth(i)
			return nil
		}
	}
	return fmt.Errorf("%w: depth %q", zodiac.ErrUnknownKey, text)
}

// Period is one dasha period.
type Period struct {
	Lord    zodiac.Planet `json:"lord"`
	Start   time.Time     `json:"start"`
	End     time.Time     `json:"end"`
	Years   float64       `json:"years"`
	Balance bool          `json:"is_balance"`
	Depth   Depth         `json:"depth"`
}

// Contains reports whether t lies within [Start, End].
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Antar returns the nine sub-periods of a major period, starting with its own
// lord. Sub-periods are contiguous and the last one ends exactly at p.End.
func (p Period) Antar() []Period {
	start := max(p.Lord.DashaIndex(), 0)

	out := make([]Period, 0, len(zodiac.DashaSequence))
	from := p.Start
	var elapsed float64
	for i := range zodiac.DashaSequence {
		lord := zodiac.DashaSequence[(start+i)%len(zodiac.DashaSequence)]
		years := lord.DashaYears() / zodiac.DashaCycleYears * p.Years
		elapsed += years

		end := p.Start.Add(yearsToDuration(elapsed))
		if i == len(zodiac.DashaSequence)-1 {
			end = p.End
		}
		out = append(out, Period{Lord: lord, Start: from, End: end, Years: years, Depth: Antar})
		from = end
	}
	return out
}

// Timeline is the generated major-period sequence of one birth.
type Timeline struct {
	Birth         time.Time                 `json:"birth"`
	MoonLongitude float64                   `json:"moon_longitude"`
	MoonNakshatra zodiac.NakshatraPlacement `json:"moon_nakshatra"`
	Maha          []Period                  `json:"maha_dashas"`
}

// Balance returns the lord running at birth, the years of its period left
// after birth and the years already elapsed before it. remaining+elapsed is
// always the lord's full period.
func Balance(moonLongitude float64) (lord zodiac.Planet, remaining, elapsed float64) {
	n := zodiac.PlaceNakshatra(zodiac.Normalize(moonLongitude))
	total := n.Lord.DashaYears()
	remaining = total * (1 - n.Fraction)
	return n.Lord, remaining, total - remaining
}

// Generate builds the timeline for a Moon longitude and birth instant. The
// longitude is normalized first.
func Generate(moonLongitude float64, birth time.Time) Timeline {
	lon := zodiac.Normalize(moonLongitude)
	n := zodiac.PlaceNakshatra(lon)
	lord, balance, _ := Balance(lon)

	t := Timeline{
		Birth:         birth,
		MoonLongitude: lon,
		MoonNakshatra: n,
		Maha:          make([]Period, 0, len(zodiac.DashaSequence)),
	}

	start := birth
	idx := lord.DashaIndex()
	for i := range zodiac.DashaSequence {
		l := zodiac.DashaSequence[(idx+i)%len(zodiac.DashaSequence)]
		years := l.DashaYears()
		if i == 0 {
			years = balance
		}
		end := start.Add(yearsToDuration(years))
		t.Maha = append(t.Maha, Period{
			Lord:    l,
			Start:   start,
			End:     end,
			Years:   years,
			Balance: i == 0,
			Depth:   Maha,
		})
		start = end
	}
	return t
}

// End returns the end of the generated horizon.
func (t Timeline) End() time.Time {
	if len(t.Maha) == 0 {
		return t.Birth
	}
	return t.Maha[len(t.Maha)-1].End
}

// Current is the running major and sub-period at some instant.
type Current struct {
	Maha   Period   `json:"current_maha_dasha"`
	Antar  *Period  `json:"current_antar_dasha"`
	Antars []Period `json:"current_antar_dashas"`
}

// Current returns the periods containing now. ok is false when now lies
// outside the timeline.
func (t Timeline) Current(now time.Time) (cur Current, ok bool) {
	for _, m := range t.Maha {
		if !m.Contains(now) {
			continue
		}
		cur = Current{Maha: m, Antars: m.Antar()}
		for i := range cur.Antars {
			if cur.Antars[i].Contains(now) {
				a := cur.Antars[i]
				cur.Antar = &a
				break
			}
		}
		return cur, true
	}
	return Current{}, false
}

func yearsToDuration(years float64) time.Duration {
	return time.Duration(years * DaysPerYear * float64(24*time.Hour))
}
