// Package text renders charts and synastry results as markdown.
//
// The output is meant to be read by people and by language models alike:
// headings group the data, every planet sits on its own line and numbers
// carry units.
//
//	report := text.Report{Chart: c, Dasha: &timeline, Current: cur, Vargas: vargas}
//	fmt.Print(text.Chart(report))
package text

import (
	"fmt"
	"strings"

	"github.com/matzehuels/jyotish/pkg/chart"
	"github.com/matzehuels/jyotish/pkg/dasha"
	"github.com/matzehuels/jyotish/pkg/dignity"
	"github.com/matzehuels/jyotish/pkg/varga"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// DateLayout formats dasha boundaries.
const DateLayout = "2006-01-02"

// Report is everything [Chart] can render. Only Chart is required.
type Report struct {
	Chart   *chart.Chart
	Dasha   *dasha.Timeline
	Current *dasha.Current
	Vargas  map[varga.Code]varga.Varga
}

// Chart renders a birth chart report.
func Chart(r Report) string {
	var b strings.Builder
	c := r.Chart

	b.WriteString("## Birth Chart Data\n\n")
	fmt.Fprintf(&b, "**Ascendant (Lagna)**: %s at %.2f°\n", c.Ascendant.Sign, c.Ascendant.Degree)
	fmt.Fprintf(&b, "  - Nakshatra: %s (Pada %d)\n", c.Ascendant.Nakshatra.Nakshatra, c.Ascendant.Nakshatra.Pada)

	b.WriteString("\n### Planetary Positions\n\n")
	for _, pl := range c.Ordered() {
		fmt.Fprintf(&b, "**%s**: %s at %.2f°%s - House %d", pl.Planet, pl.Sign, pl.Degree, retro(pl.Retrograde), pl.House)
		if pl.Dignity.Category != dignity.Neutral {
			fmt.Fprintf(&b, " [%s]", pl.Dignity.Category)
		}
		b.WriteByte('\n')
		fmt.Fprintf(&b, "  - Nakshatra: %s (Lord: %s)\n", pl.Nakshatra.Nakshatra, pl.Nakshatra.Lord)
	}

	b.WriteString("\n### House Occupancy\n\n")
	occ := c.Occupancy()
	for h := 1; h <= 12; h++ {
		fmt.Fprintf(&b, "House %d: %s\n", h, planetList(occ[h]))
	}

	if r.Dasha != nil {
		writeDasha(&b, *r.Dasha, r.Current)
	}
	if len(r.Vargas) > 0 {
		writeVargas(&b, r.Vargas)
	}
	return b.String()
}

func writeDasha(b *strings.Builder, t dasha.Timeline, cur *dasha.Current) {
	b.WriteString("\n### Vimshottari Dasha\n\n")
	fmt.Fprintf(b, "Birth Nakshatra: %s (Lord: %s)\n", t.MoonNakshatra.Nakshatra, t.MoonNakshatra.Lord)

	if cur == nil {
		b.WriteString("\nMaha Dashas:\n")
		for _, m := range t.Maha {
			fmt.Fprintf(b, "  - %s: %s to %s\n", m.Lord, m.Start.Format(DateLayout), m.End.Format(DateLayout))
		}
		return
	}

	fmt.Fprintf(b, "\n**Current Maha Dasha**: %s\n", cur.Maha.Lord)
	fmt.Fprintf(b, "  - Period: %s to %s\n", cur.Maha.Start.Format(DateLayout), cur.Maha.End.Format(DateLayout))
	if cur.Antar != nil {
		fmt.Fprintf(b, "\n**Current Antar Dasha**: %s\n", cur.Antar.Lord)
		fmt.Fprintf(b, "  - Until: %s\n", cur.Antar.End.Format(DateLayout))
	}
}

func writeVargas(b *strings.Builder, vargas map[varga.Code]varga.Varga) {
	b.WriteString("\n### Divisional Charts (Shodasavargas)\n")
	for _, code := range varga.Codes() {
		v, ok := vargas[code]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "\n**%s - %s** (%s)\n", v.Code, v.Name, v.Description)
		fmt.Fprintf(b, "  Ascendant: %s\n", v.Ascendant.Sign)

		parts := make([]string, 0, len(v.Planets))
		for _, p := range zodiac.Planets {
			pl, ok := v.Planets[p]
			if !ok {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s: %s (H%d) [%.2f°]", p, pl.Sign, pl.House, pl.NatalDegree))
		}
		b.WriteString("  " + strings.Join(parts, ", ") + "\n")
	}

	vg := varga.Vargottama(vargas)
	if len(vg) == 0 {
		return
	}
	d1 := vargas[varga.D1]
	parts := make([]string, 0, len(vg))
	for _, p := range vg {
		parts = append(parts, fmt.Sprintf("%s (%s)", p, d1.Planets[p].Sign))
	}
	b.WriteString("\n**Vargottama Planets** (same sign in D1 and D9 - extra strength):\n")
	b.WriteString("  " + strings.Join(parts, ", ") + "\n")
}

func retro(r bool) string {
	if r {
		return " (R)"
	}
	return ""
}

func planetList(ps []zodiac.Planet) string {
	if len(ps) == 0 {
		return "Empty"
	}
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}
