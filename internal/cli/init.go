package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	jio "github.com/matzehuels/jyotish/pkg/io"
)

// initCommand creates the init command, which writes a profile file.
func (c *CLI) initCommand() *cobra.Command {
	var (
		birth birthFlags
		run   runFlags
		force bool
		embed bool
	)

	cmd := &cobra.Command{
		Use:   "init <file>",
		Short: "Write a birth profile file",
		Long: `Write a TOML profile from birth data flags. Other commands accept the file
in place of the flags.

With --embed the planet positions are resolved once and stored in the
file, so later runs need no ephemeris service.`,
		Example: `  jyotish init asha.toml --label Asha --date 1990-03-15 --time 09:30 --lat 28.61 --lon 77.21
  jyotish init asha.toml --label Asha --date 1990-03-15 --lat 28.61 --lon 77.21 --tz Asia/Kolkata --embed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if birth.date == "" {
				return jerrors.New(jerrors.ErrCodeInvalidInput, "--date is required")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return jerrors.New(jerrors.ErrCodeInvalidInput, "%s exists, use --force to overwrite", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			p, err := birth.profile()
			if err != nil {
				return err
			}

			if embed {
				ctx := cmd.Context()
				runner, err := c.newRunner(ctx, run)
				if err != nil {
					return err
				}
				defer runner.Close()
				pos, err := runner.Resolve(ctx, p.Birth, run.refresh)
				if err != nil {
					return c.explain(err)
				}
				p.Positions = &pos
			}

			var buf bytes.Buffer
			if err := jio.WriteProfile(p, &buf); err != nil {
				return err
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			printSuccess("Wrote profile %s", p.Label)
			printFile(path)
			printNextStep("Compute the chart", "jyotish chart "+path)
			return nil
		},
	}

	birth.register(cmd)
	run.register(cmd)
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&embed, "embed", false, "resolve positions now and store them in the file")
	return cmd
}
