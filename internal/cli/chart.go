package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	"github.com/matzehuels/jyotish/pkg/pipeline"
	"github.com/matzehuels/jyotish/pkg/render/text"
	"github.com/matzehuels/jyotish/pkg/varga"
)

// chartOpts holds the command-line flags for the chart command.
type chartOpts struct {
	birth  birthFlags
	run    runFlags
	out    outputFlags
	vargas string // comma-separated divisional chart codes
	at     string // instant used for the running dasha
	watch  bool   // re-render when the profile file changes
}

// chartCommand creates the chart command.
func (c *CLI) chartCommand() *cobra.Command {
	var opts chartOpts

	cmd := &cobra.Command{
		Use:   "chart [profile]",
		Short: "Compute a natal chart with divisional charts, dasha and panchang",
		Long: `Compute a sidereal natal chart.

Birth data comes from a profile file (TOML or JSON, see "jyotish init") or
from the --date, --time, --lat and --lon flags. The table format prints the
planets; json and markdown include every divisional chart, the dasha
timeline and the birth panchang.`,
		Example: `  jyotish chart asha.toml
  jyotish chart --date 1990-03-15 --time 09:30 --lat 28.61 --lon 77.21 -f markdown
  jyotish chart family.toml --label Ravi --vargas D9,D10 -f json -o ravi.json
  jyotish chart asha.toml --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.out.validate(textFormats); err != nil {
				return err
			}
			if !opts.watch {
				return c.runChart(cmd, args, opts)
			}
			if len(args) == 0 {
				return jerrors.New(jerrors.ErrCodeInvalidInput, "--watch needs a profile file")
			}
			return watchFile(cmd.Context(), args[0], c.Logger, func() error {
				return c.runChart(cmd, args, opts)
			})
		},
	}

	opts.birth.register(cmd)
	opts.run.register(cmd)
	opts.out.register(cmd, textFormats)
	cmd.Flags().StringVar(&opts.vargas, "vargas", "", "divisional charts to compute, e.g. D9,D10 (default all)")
	cmd.Flags().StringVar(&opts.at, "at", "", "instant for the running dasha (default now)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the profile file changes")

	return cmd
}

func (c *CLI) runChart(cmd *cobra.Command, args []string, opts chartOpts) error {
	ctx := cmd.Context()

	p, all, err := loadOne(args, opts.birth)
	if err != nil {
		return err
	}
	codes, err := parseCodes(opts.vargas)
	if err != nil {
		return err
	}
	now, err := parseAt(opts.at, time.Now())
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.run, all...)
	if err != nil {
		return err
	}
	defer runner.Close()

	po := c.options(opts.run)
	po.Codes = codes
	po.Now = now

	prog := newProgress(loggerFromContext(ctx))
	res, err := spin(ctx, "Computing chart for "+p.Label, func() (*pipeline.Result, error) {
		return runner.Analyze(ctx, p.Birth, po)
	})
	if err != nil {
		return c.explain(err)
	}
	prog.done("computed chart", "label", p.Label, "vargas", len(res.Vargas))

	switch opts.out.format {
	case formatJSON:
		err = opts.out.writeJSON(cmd, res)
	case formatMarkdown:
		err = opts.out.write(cmd, []byte(text.Chart(text.Report{
			Chart:   res.Chart,
			Dasha:   &res.Dasha,
			Current: res.Current,
			Vargas:  res.Vargas,
		})))
	default:
		err = opts.out.write(cmd, []byte(chartTable(p.Label, res)))
	}
	if err != nil {
		return err
	}
	printStats(len(res.Chart.Planets), len(res.Vargas), res.CacheInfo.ResolveHit)
	return nil
}

// chartTable renders the natal chart as a summary and a planet table.
func chartTable(label string, res *pipeline.Result) string {
	var b strings.Builder
	c := res.Chart

	b.WriteString(StyleTitle.Render(label) + "\n")
	printKeyValue(&b, "Born", fmt.Sprintf("%04d-%02d-%02d %02d:%02d %s",
		res.Birth.Year, res.Birth.Month, res.Birth.Day, res.Birth.Hour, res.Birth.Minute, res.Timezone))
	printKeyValue(&b, "Ascendant", fmt.Sprintf("%s %.2f° (%s, pada %d)",
		c.Ascendant.Sign, c.Ascendant.Degree, c.Ascendant.Nakshatra.Nakshatra, c.Ascendant.Nakshatra.Pada))
	if res.Current != nil {
		dasha := res.Current.Maha.Lord.String()
		if res.Current.Antar != nil {
			dasha += " / " + res.Current.Antar.Lord.String()
		}
		printKeyValue(&b, "Dasha", dasha)
	}
	pc := res.Panchang
	printKeyValue(&b, "Tithi", fmt.Sprintf("%s %d (%s)", pc.Tithi.Paksha, pc.Tithi.Display, pc.Tithi.Name))
	printKeyValue(&b, "Vara", fmt.Sprintf("%s (%s)", pc.Vara.Name, pc.Vara.Sanskrit))
	if len(res.Vargottama) > 0 {
		names := make([]string, len(res.Vargottama))
		for i, p := range res.Vargottama {
			names[i] = p.String()
		}
		printKeyValue(&b, "Vargottama", strings.Join(names, ", "))
	}
	b.WriteString("\n")

	t := newTable("Planet", "Sign", "Degree", "Nakshatra", "Pada", "House", "Dignity")
	for _, pl := range c.Ordered() {
		name := pl.Planet.String()
		if pl.Retrograde {
			name += " ℞"
		}
		t.Row(
			name,
			pl.Sign.String(),
			fmt.Sprintf("%5.2f°", pl.Degree),
			pl.Nakshatra.Nakshatra.String(),
			fmt.Sprint(pl.Nakshatra.Pada),
			fmt.Sprint(pl.House),
			dignityStyle(pl.Dignity.Category).Render(pl.Dignity.Category.String()),
		)
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// parseCodes parses a comma-separated list of divisional chart codes.
func parseCodes(s string) ([]varga.Code, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var codes []varga.Code
	for _, part := range strings.Split(s, ",") {
		code, err := varga.ParseCode(part)
		if err != nil {
			return nil, jerrors.Wrap(jerrors.ErrCodeUnknownKey, err, "--vargas")
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// explain adds a hint for failures the user can fix by configuration.
func (c *CLI) explain(err error) error {
	if jerrors.Is(err, jerrors.ErrCodeNotFound) && c.cfg.Ephemeris.URL == "" {
		printNextStep("No ephemeris service is configured; set one with", "export JYOTISH_EPHEMERIS_URL=https://...")
		printDetail("or embed positions in the profile file")
	}
	return err
}
