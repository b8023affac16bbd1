package varga

import (
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// Rule maps a natal (sign, degree) to a divisional sign for division factor d.
type Rule interface {
	Project(sign zodiac.Sign, degree float64, d int) zodiac.Sign
}

// Anchor picks the sign a sequence of parts starts from: either a fixed sign
// or an offset from the natal sign.
type Anchor struct {
	Relative bool
	Offset   int
	Sign     zodiac.Sign
}

// At anchors on a fixed sign.
func At(s zodiac.Sign) Anchor { return Anchor{Sign: s} }

// From anchors n signs after the natal sign; From(0) is the sign itself.
func From(n int) Anchor { return Anchor{Relative: true, Offset: n} }

// Resolve returns the start sign for a natal sign.
func (a Anchor) Resolve(natal zodiac.Sign) zodiac.Sign {
	if a.Relative {
		return natal.Add(a.Offset)
	}
	return a.Sign
}

// Part returns floor(degree / (30/d)) clamped to [0, d).
func Part(degree float64, d int) int {
	part := int(degree / (zodiac.SignSpan / float64(d)))
	return max(0, min(part, d-1))
}

// Self leaves the sign unchanged.
type Self struct{}

// Project implements [Rule].
func (Self) Project(sign zodiac.Sign, _ float64, _ int) zodiac.Sign { return sign }

// Hora maps the first half of odd signs and the second half of even signs
// to Leo, and the rest to Cancer.
type Hora struct{}

// Project implements [Rule].
func (Hora) Project(sign zodiac.Sign, degree float64, _ int) zodiac.Sign {
	if (degree < 15) == sign.IsOdd() {
		return zodiac.Leo
	}
	return zodiac.Cancer
}

// Triplicity starts from an anchor chosen by the sign's modality.
type Triplicity struct {
	Movable, Fixed, Dual Anchor
}

// Project implements [Rule].
func (t Triplicity) Project(sign zodiac.Sign, degree float64, d int) zodiac.Sign {
	var a Anchor
	switch sign.Modality() {
	case zodiac.Movable:
		a = t.Movable
	case zodiac.Fixed:
		a = t.Fixed
	default:
		a = t.Dual
	}
	return a.Resolve(sign).Add(Part(degree, d))
}

// Quadruplicity starts from an anchor chosen by the sign's element.
type Quadruplicity struct {
	Fire, Earth, Air, Water Anchor
}

// Project implements [Rule].
func (q Quadruplicity) Project(sign zodiac.Sign, degree float64, d int) zodiac.Sign {
	var a Anchor
	switch sign.Element() {
	case zodiac.Fire:
		a = q.Fire
	case zodiac.Earth:
		a = q.Earth
	case zodiac.Air:
		a = q.Air
	default:
		a = q.Water
	}
	return a.Resolve(sign).Add(Part(degree, d))
}

// OddEven starts from one anchor for odd signs and another for even signs.
// Consecutive parts advance Step signs; a zero Step means 1.
type OddEven struct {
	Odd, Even Anchor
	Step      int
}

// Project implements [Rule].
func (o OddEven) Project(sign zodiac.Sign, degree float64, d int) zodiac.Sign {
	a := o.Even
	if sign.IsOdd() {
		a = o.Odd
	}
	step := o.Step
	if step == 0 {
		step = 1
	}
	return a.Resolve(sign).Add(Part(degree, d) * step)
}

// Segment is one span of an unequal division.
type Segment struct {
	Span float64
	Sign zodiac.Sign
}

// Trimsamsa divides a sign into unequal spans. The first segment whose
// cumulative end exceeds the degree wins; degrees past the last boundary map
// to the last segment.
type Trimsamsa struct {
	Odd, Even []Segment
}

// Project implements [Rule].
func (t Trimsamsa) Project(sign zodiac.Sign, degree float64, _ int) zodiac.Sign {
	segs := t.Even
	if sign.IsOdd() {
		segs = t.Odd
	}
	var end float64
	for _, s := range segs {
		end += s.Span
		if degree < end {
			return s.Sign
		}
	}
	return segs[len(segs)-1].Sign
}
