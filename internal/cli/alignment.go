package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jyotish/pkg/pipeline"
)

// alignmentCommand creates the alignment command.
func (c *CLI) alignmentCommand() *cobra.Command {
	var (
		birth birthFlags
		run   runFlags
		out   outputFlags
		at    string
	)

	cmd := &cobra.Command{
		Use:   "alignment [profile]",
		Short: "Read today's sky against a natal chart",
		Long: `Compute the panchang and planet transits for an instant, seen from the
birth place, and place each transit in a natal house.`,
		Example: `  jyotish alignment asha.toml
  jyotish alignment asha.toml --at 2025-01-14T08:00 -f json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(dashaFormats); err != nil {
				return err
			}
			ctx := cmd.Context()
			p, all, err := loadOne(args, birth)
			if err != nil {
				return err
			}
			now, err := parseAt(at, time.Now())
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, run, all...)
			if err != nil {
				return err
			}
			defer runner.Close()

			a, err := spin(ctx, "Reading the sky", func() (*pipeline.Alignment, error) {
				return runner.Alignment(ctx, p.Birth, now, run.refresh)
			})
			if err != nil {
				return c.explain(err)
			}
			if out.format == formatJSON {
				return out.writeJSON(cmd, a)
			}
			return out.write(cmd, []byte(alignmentTable(p.Label, a)))
		},
	}

	birth.register(cmd)
	run.register(cmd)
	out.register(cmd, dashaFormats)
	cmd.Flags().StringVar(&at, "at", "", "instant to read (default now)")
	return cmd
}

func alignmentTable(label string, a *pipeline.Alignment) string {
	var b strings.Builder
	pc := a.Panchang

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s · %s %s", label, a.Date, a.Time)) + " " + StyleDim.Render(a.Timezone) + "\n")
	printKeyValue(&b, "Vara", fmt.Sprintf("%s (%s), lord %s", pc.Vara.Name, pc.Vara.Sanskrit, pc.Vara.Lord))
	tithi := fmt.Sprintf("%s %d (%s)", pc.Tithi.Paksha, pc.Tithi.Display, pc.Tithi.Name)
	if pc.Tithi.Special != "" {
		tithi += " " + StyleHighlight.Render(pc.Tithi.Special)
	}
	printKeyValue(&b, "Tithi", tithi)
	printKeyValue(&b, "Nakshatra", fmt.Sprintf("%s, pada %d", pc.MoonNakshatra.Nakshatra, pc.MoonNakshatra.Pada))
	printKeyValue(&b, "Yoga", pc.Yoga.Name)
	printKeyValue(&b, "Karana", pc.Karana.Name)
	printKeyValue(&b, "Sun / Moon", fmt.Sprintf("%s / %s", a.SunSign, a.MoonSign))
	if a.Dasha != nil {
		d := a.Dasha.Maha.Lord.String()
		if a.Dasha.Antar != nil {
			d += " / " + a.Dasha.Antar.Lord.String()
		}
		printKeyValue(&b, "Dasha", d)
	}
	b.WriteString("\n")

	t := newTable("Planet", "Sign", "Degree", "Nakshatra", "Natal house")
	for _, tr := range a.Transits {
		name := tr.Planet.String()
		if tr.Retrograde {
			name += " ℞"
		}
		t.Row(name, tr.Sign.String(), fmt.Sprintf("%5.2f°", tr.Degree),
			tr.Nakshatra.Nakshatra.String(), fmt.Sprint(tr.NatalHouse))
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}
