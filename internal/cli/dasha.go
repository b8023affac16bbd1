package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jyotish/pkg/dasha"
	"github.com/matzehuels/jyotish/pkg/pipeline"
	"github.com/matzehuels/jyotish/pkg/varga"
)

var dashaFormats = []string{formatTable, formatJSON}

// dashaCommand creates the dasha command.
func (c *CLI) dashaCommand() *cobra.Command {
	var (
		birth birthFlags
		run   runFlags
		out   outputFlags
		at    string
		antar bool
	)

	cmd := &cobra.Command{
		Use:   "dasha [profile]",
		Short: "Show the Vimshottari dasha timeline",
		Long: `Show the nine major periods from birth, starting with the balance of the
period running at birth. The running period is marked.

With --antar the sub-periods of the running major period are listed instead.`,
		Example: `  jyotish dasha asha.toml
  jyotish dasha asha.toml --antar --at 2030-01-01`,
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

			po := c.options(run)
			po.Codes = []varga.Code{varga.D1}
			po.Now = now
			res, err := spin(ctx, "Computing dasha for "+p.Label, func() (*pipeline.Result, error) {
				return runner.Analyze(ctx, p.Birth, po)
			})
			if err != nil {
				return c.explain(err)
			}

			if out.format == formatJSON {
				return out.writeJSON(cmd, struct {
					Dasha   dasha.Timeline `json:"dasha"`
					Current *dasha.Current `json:"current_dasha,omitempty"`
				}{res.Dasha, res.Current})
			}
			if antar {
				if res.Current == nil {
					printWarning("%s lies outside the dasha timeline", now.Format(time.DateOnly))
					return nil
				}
				return out.write(cmd, []byte(antarTable(*res.Current, now)))
			}
			return out.write(cmd, []byte(dashaTable(res.Dasha, now)))
		},
	}

	birth.register(cmd)
	run.register(cmd)
	out.register(cmd, dashaFormats)
	cmd.Flags().StringVar(&at, "at", "", "instant that marks the running period (default now)")
	cmd.Flags().BoolVar(&antar, "antar", false, "list the sub-periods of the running major period")
	return cmd
}

// dashaTable renders the major periods of a timeline.
func dashaTable(t dasha.Timeline, now time.Time) string {
	var b strings.Builder
	n := t.MoonNakshatra
	printKeyValue(&b, "Moon", fmt.Sprintf("%.2f° in %s, pada %d", t.MoonLongitude, n.Nakshatra, n.Pada))
	printKeyValue(&b, "Starts with", fmt.Sprintf("%s (%.0f%% elapsed)", n.Lord, n.Fraction*100))
	b.WriteString("\n")
	b.WriteString(periodTable(t.Maha, now).Render())
	b.WriteString("\n")
	return b.String()
}

// antarTable renders the sub-periods of the running major period.
func antarTable(cur dasha.Current, now time.Time) string {
	var b strings.Builder
	printKeyValue(&b, "Maha dasha", fmt.Sprintf("%s until %s", cur.Maha.Lord, cur.Maha.End.Format(time.DateOnly)))
	b.WriteString("\n")
	b.WriteString(periodTable(cur.Antars, now).Render())
	b.WriteString("\n")
	return b.String()
}

func periodTable(periods []dasha.Period, now time.Time) *table.Table {
	t := newTable("", "Lord", "Start", "End", "Years")
	for _, p := range periods {
		mark := ""
		lord := p.Lord.String()
		if p.Contains(now) {
			mark = StyleHighlight.Render(iconCurrent)
			lord = StyleHighlight.Render(lord)
		}
		years := fmt.Sprintf("%.2f", p.Years)
		if p.Balance {
			years += StyleDim.Render(" balance")
		}
		t.Row(mark, lord, p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly), years)
	}
	return t
}
