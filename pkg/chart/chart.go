// Package chart assembles a natal chart from raw resolver output.
//
// [New] normalizes every longitude, derives Ketu from Rahu when the resolver
// omits it, classifies each body with the zodiac package, evaluates its
// dignity and assigns whole-sign houses counted from the ascendant sign:
//
//	house = ((planet_sign - ascendant_sign) mod 12) + 1
//
// A house may hold any number of planets, including none. Charts are values:
// nothing mutates one after [New] returns.
package chart

import (
	"time"

	"github.com/matzehuels/jyotish/pkg/dignity"
	"github.com/matzehuels/jyotish/pkg/ephemeris"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// Placement is one planet in a chart.
type Placement struct {
	Planet zodiac.Planet `json:"planet"`
	zodiac.Position
	Dignity    dignity.Dignity `json:"dignity"`
	Retrograde bool            `json:"retrograde"`
	Speed      float64         `json:"speed"`
	House      int             `json:"house"`
}

// Chart is a natal chart.
type Chart struct {
	Instant   time.Time                   `json:"instant"`
	Ayanamsa  string                      `json:"ayanamsa"`
	Ascendant zodiac.Position             `json:"ascendant"`
	Planets   map[zodiac.Planet]Placement `json:"planets"`
}

// New builds a chart from resolver output.
func New(pos ephemeris.Positions) (*Chart, error) {
	if err := pos.Check(); err != nil {
		return nil, jerrors.Wrap(jerrors.ErrCodeInvalidInput, err, "build chart")
	}

	asc := zodiac.Classify(zodiac.Normalize(pos.Ascendant))
	c := &Chart{
		Instant:   pos.Instant,
		Ayanamsa:  pos.Ayanamsa,
		Ascendant: asc,
		Planets:   make(map[zodiac.Planet]Placement, len(zodiac.Planets)),
	}

	for _, p := range zodiac.Planets {
		body, ok := pos.Bodies[p]
		if !ok && p == zodiac.Ketu {
			rahu := pos.Bodies[zodiac.Rahu]
			body = ephemeris.Body{Longitude: rahu.Longitude + 180, Speed: rahu.Speed}
		}
		c.Planets[p] = place(p, body, asc.Sign)
	}
	return c, nil
}

func place(p zodiac.Planet, body ephemeris.Body, ascSign zodiac.Sign) Placement {
	position := zodiac.Classify(zodiac.Normalize(body.Longitude))
	return Placement{
		Planet:     p,
		Position:   position,
		Dignity:    dignity.Evaluate(p, position.Sign, position.Degree),
		Retrograde: body.Speed < 0 || p == zodiac.Ketu,
		Speed:      body.Speed,
		House:      zodiac.House(position.Sign, ascSign),
	}
}

// Placement returns the placement of p.
func (c *Chart) Placement(p zodiac.Planet) Placement { return c.Planets[p] }

// Ordered returns the placements in conventional planet order.
func (c *Chart) Ordered() []Placement {
	out := make([]Placement, 0, len(c.Planets))
	for _, p := range zodiac.Planets {
		if pl, ok := c.Planets[p]; ok {
			out = append(out, pl)
		}
	}
	return out
}

// Occupancy returns, for each house 1..12, the planets it holds in
// conventional order. Empty houses are present with a nil slice.
func (c *Chart) Occupancy() map[int][]zodiac.Planet {
	occ := make(map[int][]zodiac.Planet, 12)
	for h := 1; h <= 12; h++ {
		occ[h] = nil
	}
	for _, pl := range c.Ordered() {
		occ[pl.House] = append(occ[pl.House], pl.Planet)
	}
	return occ
}

// HouseOf returns the house a longitude falls in relative to this chart's
// ascendant. It is used for transits and synastry overlays.
func (c *Chart) HouseOf(lon float64) int {
	return zodiac.House(zodiac.PlaceSign(zodiac.Normalize(lon)).Sign, c.Ascendant.Sign)
}
