package text

import (
	"fmt"
	"strings"

	"github.com/matzehuels/jyotish/pkg/synastry"
)

// KeyAspects is how many aspects each category lists.
const KeyAspects = 5

// Synastry renders a comparison. members supplies the detailed planet
// listing and may be nil.
func Synastry(members []synastry.Person, res synastry.Result) string {
	var b strings.Builder
	b.WriteString("## Synastry Analysis Data\n\n")

	b.WriteString("### Individual Charts\n\n")
	for _, p := range res.People {
		fmt.Fprintf(&b, "**%s**:\n", p.Label)
		fmt.Fprintf(&b, "  - Ascendant: %s\n", p.Ascendant)
		fmt.Fprintf(&b, "  - Sun: %s\n", p.SunSign)
		fmt.Fprintf(&b, "  - Moon: %s (%s)\n\n", p.MoonSign, p.MoonNakshatra)
	}

	if len(members) > 0 {
		b.WriteString("### Detailed Planetary Positions\n\n")
		for _, m := range members {
			fmt.Fprintf(&b, "**%s's Planets:**\n", m.Label)
			for _, pl := range m.Chart.Ordered() {
				fmt.Fprintf(&b, "  - %s: %s %.1f°%s (House %d)\n", pl.Planet, pl.Sign, pl.Degree, retro(pl.Retrograde), pl.House)
			}
			b.WriteByte('\n')
		}
	}

	for _, pair := range res.Pairs {
		writePair(&b, pair)
	}

	if g := res.Group; g.NumPeople > 2 {
		b.WriteString("\n### Group Dynamic Summary\n\n")
		fmt.Fprintf(&b, "**%d people, %d pair relationships**\n", g.NumPeople, g.NumPairs)
		fmt.Fprintf(&b, "Average Compatibility: %.1f%%\n", g.AverageCompatibility)
		fmt.Fprintf(&b, "Total Harmonious Aspects: %d\n", g.TotalHarmonious)
		fmt.Fprintf(&b, "Total Challenging Aspects: %d\n", g.TotalChallenging)
	}
	return b.String()
}

func writePair(b *strings.Builder, p synastry.Pair) {
	fmt.Fprintf(b, "\n### %s Compatibility\n\n", p.Label)
	fmt.Fprintf(b, "**Compatibility Score**: %d/100\n\n", p.Score)

	s := p.Summary
	fmt.Fprintf(b, "**Aspect Summary**: %d total aspects\n", s.Total)
	fmt.Fprintf(b, "  - Harmonious: %d\n", s.Harmonious)
	fmt.Fprintf(b, "  - Challenging: %d\n", s.Challenging)
	fmt.Fprintf(b, "  - Romantic: %d\n", s.Romantic)
	fmt.Fprintf(b, "  - Karmic: %d\n", s.Karmic)

	writeAspects(b, "Key Romantic Aspects", p.Romantic, true)
	writeAspects(b, "Harmonious Aspects", p.Harmonious, false)
	writeAspects(b, "Challenging Aspects", p.Challenging, false)
	writeAspects(b, "Karmic Connections", p.Karmic, false)

	b.WriteString("\n**House Overlays:**\n")
	var current string
	for _, o := range p.Overlays {
		if o.Person != current {
			current = o.Person
			partner := p.Person2
			if current == p.Person2 {
				partner = p.Person1
			}
			fmt.Fprintf(b, "  %s's planets in %s's houses:\n", current, partner)
		}
		fmt.Fprintf(b, "    - %s (%s) -> House %d\n", o.Planet, o.Sign, o.HouseInPartner)
	}
}

func writeAspects(b *strings.Builder, title string, aspects []synastry.Aspect, withOrb bool) {
	if len(aspects) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s:**\n", title)
	for _, a := range aspects[:min(len(aspects), KeyAspects)] {
		fmt.Fprintf(b, "  - %s's %s %s %s's %s", a.Person1, a.Planet1, a.Name, a.Person2, a.Planet2)
		if withOrb {
			fmt.Fprintf(b, " (orb: %.2f°)", a.Deviation)
		}
		b.WriteByte('\n')
	}
}
