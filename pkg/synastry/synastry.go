package synastry

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/jyotish/pkg/chart"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// Person is a labelled natal chart.
type Person struct {
	Label string
	Chart *chart.Chart
}

// Aspect is one inter-chart aspect.
type Aspect struct {
	Planet1 zodiac.Planet `json:"planet1"`
	Person1 string        `json:"person1"`
	Planet2 zodiac.Planet `json:"planet2"`
	Person2 string        `json:"person2"`
	Match
	Tags []Tag `json:"tags,omitempty"`
}

// Has reports whether the aspect carries tag t.
func (a Aspect) Has(t Tag) bool { return slices.Contains(a.Tags, t) }

// Swap returns the aspect with its endpoints exchanged.
func (a Aspect) Swap() Aspect {
	a.Planet1, a.Planet2 = a.Planet2, a.Planet1
	a.Person1, a.Person2 = a.Person2, a.Person1
	return a
}

// Overlay places one person's planet in the partner's houses.
type Overlay struct {
	Planet         zodiac.Planet `json:"planet"`
	Person         string        `json:"person"`
	HouseInPartner int           `json:"house_in_partner"`
	Sign           zodiac.Sign   `json:"sign"`
}

// Summary counts the aspects of a pair.
type Summary struct {
	Total       int `json:"total"`
	Harmonious  int `json:"harmonious"`
	Challenging int `json:"challenging"`
	Romantic    int `json:"romantic"`
	Karmic      int `json:"karmic"`
}

// Pair is the analysis of two charts.
type Pair struct {
	Label       string    `json:"pair"`
	Person1     string    `json:"person1"`
	Person2     string    `json:"person2"`
	Aspects     []Aspect  `json:"all_aspects"`
	Romantic    []Aspect  `json:"romantic_aspects"`
	Harmonious  []Aspect  `json:"harmonious_aspects"`
	Challenging []Aspect  `json:"challenging_aspects"`
	Karmic      []Aspect  `json:"karmic_aspects"`
	Emotional   []Aspect  `json:"emotional_aspects"`
	Mental      []Aspect  `json:"mental_aspects"`
	Spiritual   []Aspect  `json:"spiritual_aspects"`
	Overlays    []Overlay `json:"house_overlays"`
	Score       int       `json:"compatibility_score"`
	Summary     Summary   `json:"aspect_summary"`
}

// Tagged returns the aspects of the pair carrying tag t, in discovery order.
func (p Pair) Tagged(t Tag) []Aspect {
	switch t {
	case Romantic:
		return p.Romantic
	case Emotional:
		return p.Emotional
	case Mental:
		return p.Mental
	case Karmic:
		return p.Karmic
	case Spiritual:
		return p.Spiritual
	}
	return nil
}

// PersonSummary is the headline placement of one person.
type PersonSummary struct {
	Label         string           `json:"label"`
	Ascendant     zodiac.Sign      `json:"ascendant"`
	SunSign       zodiac.Sign      `json:"sun_sign"`
	MoonSign      zodiac.Sign      `json:"moon_sign"`
	MoonNakshatra zodiac.Nakshatra `json:"moon_nakshatra"`
}

// Group aggregates all pairs.
type Group struct {
	TotalHarmonious      int     `json:"total_harmonious_aspects"`
	TotalChallenging     int     `json:"total_challenging_aspects"`
	AverageCompatibility float64 `json:"average_compatibility"`
	NumPeople            int     `json:"num_people"`
	NumPairs             int     `json:"num_pairs"`
}

// Result is a full synastry comparison.
type Result struct {
	People []PersonSummary `json:"people"`
	Pairs  []Pair          `json:"pair_analyses"`
	Group  Group           `json:"group_summary"`
}

// Score returns clamp(0, 100, 50 + 10h − 5c + 5r).
func Score(harmonious, challenging, romantic int) int {
	return max(0, min(100, 50+10*harmonious-5*challenging+5*romantic))
}

// Analyze compares two people.
func Analyze(a, b Person) Pair {
	p := Pair{
		Label:   a.Label + " & " + b.Label,
		Person1: a.Label,
		Person2: b.Label,
	}

	for _, p1 := range zodiac.Planets {
		pl1, ok := a.Chart.Planets[p1]
		if !ok {
			continue
		}
		for _, p2 := range zodiac.Planets {
			pl2, ok := b.Chart.Planets[p2]
			if !ok {
				continue
			}
			m, ok := Classify(pl1.Longitude, pl2.Longitude)
			if !ok {
				continue
			}
			asp := Aspect{
				Planet1: p1,
				Person1: a.Label,
				Planet2: p2,
				Person2: b.Label,
				Match:   m,
				Tags:    tagsOf(p1, p2),
			}
			p.Aspects = append(p.Aspects, asp)
			p.categorize(asp)
		}
	}

	p.Overlays = append(overlays(a, b), overlays(b, a)...)

	p.Summary = Summary{
		Total:       len(p.Aspects),
		Harmonious:  len(p.Harmonious),
		Challenging: len(p.Challenging),
		Romantic:    len(p.Romantic),
		Karmic:      len(p.Karmic),
	}
	p.Score = Score(p.Summary.Harmonious, p.Summary.Challenging, p.Summary.Romantic)

	slices.SortStableFunc(p.Aspects, func(x, y Aspect) int {
		return cmp.Compare(x.Deviation, y.Deviation)
	})
	return p
}

func (p *Pair) categorize(a Aspect) {
	for _, t := range a.Tags {
		switch t {
		case Romantic:
			p.Romantic = append(p.Romantic, a)
		case Emotional:
			p.Emotional = append(p.Emotional, a)
		case Mental:
			p.Mental = append(p.Mental, a)
		case Karmic:
			p.Karmic = append(p.Karmic, a)
		case Spiritual:
			p.Spiritual = append(p.Spiritual, a)
		}
	}
	switch a.Nature {
	case Harmonious:
		p.Harmonious = append(p.Harmonious, a)
	case Challenging:
		p.Challenging = append(p.Challenging, a)
	}
}

// overlays places from's planets in to's houses.
func overlays(from, to Person) []Overlay {
	out := make([]Overlay, 0, len(from.Chart.Planets))
	for _, p := range zodiac.Planets {
		pl, ok := from.Chart.Planets[p]
		if !ok {
			continue
		}
		out = append(out, Overlay{
			Planet:         p,
			Person:         from.Label,
			HouseInPartner: zodiac.House(pl.Sign, to.Chart.Ascendant.Sign),
			Sign:           pl.Sign,
		})
	}
	return out
}

// Summarize returns the headline placements of a person.
func Summarize(p Person) PersonSummary {
	moon := p.Chart.Placement(zodiac.Moon)
	return PersonSummary{
		Label:         p.Label,
		Ascendant:     p.Chart.Ascendant.Sign,
		SunSign:       p.Chart.Placement(zodiac.Sun).Sign,
		MoonSign:      moon.Sign,
		MoonNakshatra: moon.Nakshatra.Nakshatra,
	}
}

// Compare analyzes every unordered pair of 2 to 4 people, in input order.
func Compare(people []Person) (Result, error) {
	if err := jerrors.ValidatePeopleCount(len(people)); err != nil {
		return Result{}, err
	}
	for i, p := range people {
		if p.Chart == nil {
			return Result{}, jerrors.New(jerrors.ErrCodeInvalidInput, "person %d (%q) has no chart", i+1, p.Label)
		}
	}

	r := Result{People: make([]PersonSummary, 0, len(people))}
	for _, p := range people {
		r.People = append(r.People, Summarize(p))
	}

	var total int
	for i := range people {
		for j := i + 1; j < len(people); j++ {
			pair := Analyze(people[i], people[j])
			r.Pairs = append(r.Pairs, pair)
			r.Group.TotalHarmonious += pair.Summary.Harmonious
			r.Group.TotalChallenging += pair.Summary.Challenging
			total += pair.Score
		}
	}

	r.Group.NumPeople = len(people)
	r.Group.NumPairs = len(r.Pairs)
	r.Group.AverageCompatibility = math.Round(float64(total)/float64(len(r.Pairs))*10) / 10
	return r, nil
}
