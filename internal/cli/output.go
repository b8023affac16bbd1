package cli

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	jio "github.com/matzehuels/jyotish/pkg/io"
)

// Output formats.
const (
	formatTable    = "table"
	formatJSON     = "json"
	formatMarkdown = "markdown"
	formatDOT      = "dot"
	formatSVG      = "svg"
	formatPNG      = "png"
	formatPDF      = "pdf"
)

var textFormats = []string{formatTable, formatJSON, formatMarkdown}

// outputFlags select the format and destination of a result.
type outputFlags struct {
	format string
	output string
}

func (f *outputFlags) register(cmd *cobra.Command, formats []string) {
	cmd.Flags().StringVarP(&f.format, "format", "f", formats[0], "output format: "+strings.Join(formats, ", "))
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
}

func (f *outputFlags) validate(formats []string) error {
	f.format = strings.ToLower(f.format)
	if !slices.Contains(formats, f.format) {
		return jerrors.New(jerrors.ErrCodeInvalidInput,
			"unknown format %q (want %s)", f.format, strings.Join(formats, ", "))
	}
	return nil
}

// write sends data to the output file, or to stdout when none is set.
func (f outputFlags) write(cmd *cobra.Command, data []byte) error {
	if f.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(f.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.output, err)
	}
	printFile(f.output)
	return nil
}

// writeJSON encodes v in the shared indented JSON style.
func (f outputFlags) writeJSON(cmd *cobra.Command, v any) error {
	var buf bytes.Buffer
	if err := jio.WriteJSON(v, &buf); err != nil {
		return err
	}
	return f.write(cmd, buf.Bytes())
}
