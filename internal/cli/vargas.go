package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jyotish/pkg/pipeline"
	"github.com/matzehuels/jyotish/pkg/varga"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

var vargaFormats = []string{formatTable, formatJSON}

// vargasCommand creates the vargas command and its list subcommand.
func (c *CLI) vargasCommand() *cobra.Command {
	var (
		birth birthFlags
		run   runFlags
		out   outputFlags
		codes string
	)

	cmd := &cobra.Command{
		Use:   "vargas [profile]",
		Short: "Show divisional chart placements",
		Long: `Show where every planet falls in the divisional charts (shodasavargas).

With one code the table lists sign, house and natal degree per planet. With
several codes, or none, it prints a sign matrix with one column per chart.`,
		Example: `  jyotish vargas asha.toml
  jyotish vargas asha.toml --vargas D9
  jyotish vargas list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(vargaFormats); err != nil {
				return err
			}
			ctx := cmd.Context()
			p, all, err := loadOne(args, birth)
			if err != nil {
				return err
			}
			selected, err := parseCodes(codes)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, run, all...)
			if err != nil {
				return err
			}
			defer runner.Close()

			po := c.options(run)
			po.Codes = selected
			po.Now = time.Now()
			res, err := spin(ctx, "Computing divisional charts", func() (*pipeline.Result, error) {
				return runner.Analyze(ctx, p.Birth, po)
			})
			if err != nil {
				return c.explain(err)
			}

			if out.format == formatJSON {
				return out.writeJSON(cmd, res.Vargas)
			}
			if len(po.Codes) == 1 {
				return out.write(cmd, []byte(vargaTable(res.Vargas[po.Codes[0]])))
			}
			return out.write(cmd, []byte(vargaMatrix(res.Vargas, po.Codes, res.Vargottama)))
		},
	}

	birth.register(cmd)
	run.register(cmd)
	out.register(cmd, vargaFormats)
	cmd.Flags().StringVar(&codes, "vargas", "", "divisional charts to show, e.g. D9 or D2,D3 (default all)")

	cmd.AddCommand(c.vargasListCommand())
	return cmd
}

// vargasListCommand creates the "vargas list" subcommand.
func (c *CLI) vargasListCommand() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the sixteen divisional charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(vargaFormats); err != nil {
				return err
			}
			defs := varga.Definitions()
			if out.format == formatJSON {
				return out.writeJSON(cmd, defs)
			}
			t := newTable("Code", "Name", "Signifies")
			for _, d := range defs {
				t.Row(d.Code.String(), d.Name, d.Description)
			}
			return out.write(cmd, []byte(t.Render()+"\n"))
		},
	}
	out.register(cmd, vargaFormats)
	return cmd
}

// vargaTable renders one divisional chart.
func vargaTable(v varga.Varga) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleTitle.Render(v.Code.String()+" "+v.Name), StyleDim.Render(v.Description))
	printKeyValue(&b, "Ascendant", v.Ascendant.Sign.String())
	b.WriteString("\n")

	t := newTable("Planet", "Sign", "House", "Natal degree")
	for _, p := range zodiac.Planets {
		pl, ok := v.Planets[p]
		if !ok {
			continue
		}
		t.Row(p.String(), pl.Sign.String(), fmt.Sprint(pl.House), fmt.Sprintf("%.2f°", pl.NatalDegree))
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// vargaMatrix renders the signs of every planet across several charts,
// abbreviated to three letters.
func vargaMatrix(vargas map[varga.Code]varga.Varga, codes []varga.Code, vargottama []zodiac.Planet) string {
	headers := []string{""}
	for _, code := range codes {
		headers = append(headers, code.String())
	}
	t := newTable(headers...)

	row := []string{"Asc"}
	for _, code := range codes {
		row = append(row, abbrev(vargas[code].Ascendant.Sign))
	}
	t.Row(row...)

	for _, p := range zodiac.Planets {
		row := []string{p.String()}
		for _, code := range codes {
			row = append(row, abbrev(vargas[code].Planets[p].Sign))
		}
		t.Row(row...)
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	if len(vargottama) > 0 {
		names := make([]string, len(vargottama))
		for i, p := range vargottama {
			names[i] = p.String()
		}
		printKeyValue(&b, "Vargottama", strings.Join(names, ", "))
	}
	return b.String()
}

func abbrev(s zodiac.Sign) string {
	name := s.String()
	if len(name) > 3 {
		return name[:3]
	}
	return name
}
