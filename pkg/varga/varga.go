package varga

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/jyotish/pkg/chart"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// Code identifies a divisional chart by its division factor.
type Code int

// The sixteen divisional charts.
const (
	D1  Code = 1
	D2  Code = 2
	D3  Code = 3
	D4  Code = 4
	D7  Code = 7
	D9  Code = 9
	D10 Code = 10
	D12 Code = 12
	D16 Code = 16
	D20 Code = 20
	D24 Code = 24
	D27 Code = 27
	D30 Code = 30
	D40 Code = 40
	D45 Code = 45
	D60 Code = 60
)

// String returns the code as "D<n>".
func (c Code) String() string { return "D" + strconv.Itoa(int(c)) }

// Division returns the division factor.
func (c Code) Division() int { return int(c) }

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if _, ok := index[c]; !ok {
		return nil, fmt.Errorf("%w: varga %d", zodiac.ErrUnknownKey, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	v, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCode parses "D9", "d9" or "9".
func ParseCode(s string) (Code, error) {
	t := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "D")
	n, err := strconv.Atoi(t)
	if err == nil {
		if _, ok := index[Code(n)]; ok {
			return Code(n), nil
		}
	}
	return 0, fmt.Errorf("%w: varga %q", zodiac.ErrUnknownKey, s)
}

// Definition describes one divisional chart.
type Definition struct {
	Code        Code   `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rule        Rule   `json:"-"`
}

// Lookup returns the definition of a code.
func Lookup(c Code) (Definition, error) {
	i, ok := index[c]
	if !ok {
		return Definition{}, fmt.Errorf("%w: varga %s", zodiac.ErrUnknownKey, c)
	}
	return definitions[i], nil
}

// Codes returns the sixteen codes in ascending order.
func Codes() []Code {
	out := make([]Code, len(definitions))
	for i, d := range definitions {
		out[i] = d.Code
	}
	return out
}

// Definitions returns all definitions in ascending code order.
func Definitions() []Definition {
	return append([]Definition(nil), definitions...)
}

// Placement is a planet or ascendant in a divisional chart.
type Placement struct {
	Sign        zodiac.Sign `json:"sign"`
	House       int         `json:"house"`
	NatalDegree float64     `json:"natal_degree"`
}

// Varga is one computed divisional chart.
type Varga struct {
	Code        Code                        `json:"code"`
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	Division    int                         `json:"division"`
	Ascendant   Placement                   `json:"ascendant"`
	Planets     map[zodiac.Planet]Placement `json:"planets"`
}

// Project applies the rule of a code to one natal placement.
func Project(c Code, sign zodiac.Sign, degree float64) (zodiac.Sign, error) {
	def, err := Lookup(c)
	if err != nil {
		return 0, err
	}
	return def.Rule.Project(sign, degree, c.Division()), nil
}

// Compute builds the divisional chart c of a natal chart.
func Compute(natal *chart.Chart, c Code) (Varga, error) {
	def, err := Lookup(c)
	if err != nil {
		return Varga{}, err
	}
	return build(natal, def), nil
}

// ComputeAll builds all sixteen divisional charts.
func ComputeAll(natal *chart.Chart) map[Code]Varga {
	out := make(map[Code]Varga, len(definitions))
	for _, def := range definitions {
		out[def.Code] = build(natal, def)
	}
	return out
}

func build(natal *chart.Chart, def Definition) Varga {
	d := def.Code.Division()
	ascSign := def.Rule.Project(natal.Ascendant.Sign, natal.Ascendant.Degree, d)

	v := Varga{
		Code:        def.Code,
		Name:        def.Name,
		Description: def.Description,
		Division:    d,
		Ascendant:   Placement{Sign: ascSign, House: 1, NatalDegree: natal.Ascendant.Degree},
		Planets:     make(map[zodiac.Planet]Placement, len(natal.Planets)),
	}
	for p, pl := range natal.Planets {
		s := def.Rule.Project(pl.Sign, pl.Degree, d)
		v.Planets[p] = Placement{
			Sign:        s,
			House:       zodiac.House(s, ascSign),
			NatalDegree: pl.Degree,
		}
	}
	return v
}

// Vargottama returns, in conventional order, the planets that occupy the
// same sign in D1 and D9. It returns nil if either chart is missing.
func Vargottama(vargas map[Code]Varga) []zodiac.Planet {
	d1, ok1 := vargas[D1]
	d9, ok9 := vargas[D9]
	if !ok1 || !ok9 {
		return nil
	}
	var out []zodiac.Planet
	for _, p := range zodiac.Planets {
		a, okA := d1.Planets[p]
		b, okB := d9.Planets[p]
		if okA && okB && a.Sign == b.Sign {
			out = append(out, p)
		}
	}
	return out
}

// IsVargottama reports whether p occupies the same sign in the natal chart
// and its navamsa.
func IsVargottama(natal *chart.Chart, p zodiac.Planet) bool {
	pl, ok := natal.Planets[p]
	if !ok {
		return false
	}
	return navamsa.Project(pl.Sign, pl.Degree, D9.Division()) == pl.Sign
}
