package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	jio "github.com/matzehuels/jyotish/pkg/io"
	"github.com/matzehuels/jyotish/pkg/pipeline"
	"github.com/matzehuels/jyotish/pkg/render"
	"github.com/matzehuels/jyotish/pkg/render/dot"
	"github.com/matzehuels/jyotish/pkg/render/text"
	"github.com/matzehuels/jyotish/pkg/synastry"
)

var synastryFormats = []string{formatTable, formatJSON, formatMarkdown, formatDOT, formatSVG, formatPNG, formatPDF}

// synastryOpts holds the command-line flags for the synastry command.
type synastryOpts struct {
	run      runFlags
	out      outputFlags
	people   []string
	tags     string
	maxOrb   float64
	detailed bool
	scale    float64
}

// synastryCommand creates the synastry command.
func (c *CLI) synastryCommand() *cobra.Command {
	var opts synastryOpts

	cmd := &cobra.Command{
		Use:   "synastry <profile>...",
		Short: "Compare the charts of two to four people",
		Long: `Compare every pair among two to four people: inter-chart aspects tagged
by theme, house overlays and a compatibility score from 0 to 100.

People come from one or more profile files. Use --people to pick labels
when the files hold more than four profiles.

The dot, svg, png and pdf formats draw an aspect graph. png and pdf need
rsvg-convert on PATH.`,
		Example: `  jyotish synastry asha.toml ravi.toml
  jyotish synastry family.toml --people Asha,Ravi -f markdown
  jyotish synastry family.toml -f svg --tags romantic,karmic --max-orb 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.out.validate(synastryFormats); err != nil {
				return err
			}
			return c.runSynastry(cmd, args, opts)
		},
	}

	opts.run.register(cmd)
	opts.out.register(cmd, synastryFormats)
	cmd.Flags().StringSliceVar(&opts.people, "people", nil, "labels to compare (default every profile)")
	cmd.Flags().StringVar(&opts.tags, "tags", "", "graph only aspects with these tags: romantic, emotional, mental, karmic, spiritual")
	cmd.Flags().Float64Var(&opts.maxOrb, "max-orb", 0, "graph only aspects within this many degrees of exact")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label graph edges with their orb")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "png scale factor")
	return cmd
}

func (c *CLI) runSynastry(cmd *cobra.Command, args []string, opts synastryOpts) error {
	ctx := cmd.Context()

	profiles, err := loadProfiles(args, birthFlags{})
	if err != nil {
		return err
	}
	chosen, err := pickPeople(profiles, opts.people)
	if err != nil {
		return err
	}
	tags, err := parseTags(opts.tags)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.run, profiles...)
	if err != nil {
		return err
	}
	defer runner.Close()

	people := make([]pipeline.Person, len(chosen))
	for i, p := range chosen {
		people[i] = pipeline.Person{Label: p.Label, Birth: p.Birth}
	}

	prog := newProgress(loggerFromContext(ctx))
	res, err := spin(ctx, fmt.Sprintf("Comparing %d charts", len(people)), func() (*pipeline.SynastryResult, error) {
		return runner.Synastry(ctx, people, opts.run.refresh)
	})
	if err != nil {
		return c.explain(err)
	}
	prog.done("compared charts", "pairs", res.Analysis.Group.NumPairs)

	graph := func() string {
		return dot.Synastry(res.Analysis, dot.Options{Tags: tags, MaxOrb: opts.maxOrb, Detailed: opts.detailed})
	}

	out := opts.out
	switch out.format {
	case formatJSON:
		return out.writeJSON(cmd, res)
	case formatMarkdown:
		return out.write(cmd, []byte(text.Synastry(res.Members, res.Analysis)))
	case formatDOT:
		return out.write(cmd, []byte(graph()))
	case formatSVG, formatPNG, formatPDF:
		if out.output == "" {
			out.output = "synastry." + out.format
		}
		data, err := spin(ctx, "Rendering "+out.format, func() ([]byte, error) {
			svg, err := dot.RenderSVG(ctx, graph())
			if err != nil {
				return nil, err
			}
			switch out.format {
			case formatPNG:
				return render.ToPNG(ctx, svg, opts.scale)
			case formatPDF:
				return render.ToPDF(ctx, svg)
			}
			return svg, nil
		})
		if err != nil {
			return err
		}
		if err := out.write(cmd, data); err != nil {
			return err
		}
		printSuccess("Rendered aspect graph to %s", filepath.Base(out.output))
		return nil
	default:
		return out.write(cmd, []byte(synastryTable(res.Analysis)))
	}
}

// pickPeople selects the named profiles, in the order named.
func pickPeople(profiles []jio.Profile, labels []string) ([]jio.Profile, error) {
	if len(labels) == 0 {
		return profiles, nil
	}
	out := make([]jio.Profile, 0, len(labels))
	for _, l := range labels {
		p, err := selectProfile(profiles, strings.TrimSpace(l))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// parseTags parses a comma-separated list of aspect tags.
func parseTags(s string) ([]synastry.Tag, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var tags []synastry.Tag
	for _, part := range strings.Split(s, ",") {
		t, err := synastry.ParseTag(part)
		if err != nil {
			return nil, jerrors.Wrap(jerrors.ErrCodeUnknownKey, err, "--tags")
		}
		if !slices.Contains(tags, t) {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

// synastryTable renders the people, a score per pair and the group summary.
func synastryTable(res synastry.Result) string {
	var b strings.Builder

	people := newTable("Person", "Ascendant", "Sun", "Moon", "Nakshatra")
	for _, p := range res.People {
		people.Row(p.Label, p.Ascendant.String(), p.SunSign.String(), p.MoonSign.String(), p.MoonNakshatra.String())
	}
	b.WriteString(people.Render())
	b.WriteString("\n\n")

	pairs := newTable("Pair", "Score", "Aspects", "Harmonious", "Challenging", "Romantic", "Karmic")
	for _, p := range res.Pairs {
		s := p.Summary
		pairs.Row(p.Label, scoreStyle(p.Score).Render(fmt.Sprint(p.Score)),
			fmt.Sprint(s.Total), fmt.Sprint(s.Harmonious), fmt.Sprint(s.Challenging),
			fmt.Sprint(s.Romantic), fmt.Sprint(s.Karmic))
	}
	b.WriteString(pairs.Render())
	b.WriteString("\n")

	if res.Group.NumPairs > 1 {
		b.WriteString("\n")
		printKeyValue(&b, "Average", fmt.Sprintf("%.1f over %d pairs", res.Group.AverageCompatibility, res.Group.NumPairs))
	}
	return b.String()
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return StyleSuccess
	case score < 40:
		return StyleDanger
	default:
		return StyleValue
	}
}
