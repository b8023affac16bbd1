package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jyotish/pkg/pipeline"
	"github.com/matzehuels/jyotish/pkg/varga"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		birth birthFlags
		run   runFlags
	)

	cmd := &cobra.Command{
		Use:   "browse [profile]",
		Short: "Browse the divisional charts interactively",
		Example: `  jyotish browse asha.toml
  jyotish browse family.toml --label Ravi`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, all, err := loadOne(args, birth)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, run, all...)
			if err != nil {
				return err
			}
			defer runner.Close()

			po := c.options(run)
			po.Now = time.Now()
			res, err := spin(ctx, "Computing divisional charts", func() (*pipeline.Result, error) {
				return runner.Analyze(ctx, p.Birth, po)
			})
			if err != nil {
				return c.explain(err)
			}

			m := NewVargaBrowser(p.Label, res)
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	birth.register(cmd)
	run.register(cmd)
	return cmd
}

// =============================================================================
// VargaBrowser - Interactive divisional chart browser
// =============================================================================

// VargaBrowser is the bubbletea model for browsing the divisional charts of
// one result. Enter opens the chart under the cursor; esc returns to the
// list.
type VargaBrowser struct {
	Label      string
	Vargas     []varga.Varga
	Vargottama []zodiac.Planet
	Cursor     int
	Offset     int
	Height     int
	Open       bool
}

// NewVargaBrowser creates a browser over the divisional charts of res, in
// canonical code order.
func NewVargaBrowser(label string, res *pipeline.Result) VargaBrowser {
	m := VargaBrowser{Label: label, Vargottama: res.Vargottama, Height: 16}
	for _, code := range varga.Codes() {
		if v, ok := res.Vargas[code]; ok {
			m.Vargas = append(m.Vargas, v)
		}
	}
	return m
}

func (m VargaBrowser) Init() tea.Cmd {
	return nil
}

func (m VargaBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if !m.Open {
				return m, tea.Quit
			}
			m.Open = false
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Vargas)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Vargas) > 0 {
				m.Open = !m.Open
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m VargaBrowser) View() string {
	if m.Open && m.Cursor < len(m.Vargas) {
		return m.detailView(m.Vargas[m.Cursor])
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Divisional charts · " + m.Label))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Vargas))
	for i := m.Offset; i < end; i++ {
		v := m.Vargas[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = iconCurrent + " "
		}
		line := fmt.Sprintf("%s%-4s %-16s %s", cursor, v.Code, v.Name, listDimStyle.Render(v.Description))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Vargas))))
	return b.String()
}

func (m VargaBrowser) detailView(v varga.Varga) string {
	var b strings.Builder
	b.WriteString(vargaTable(v))
	if v.Code == varga.D9 && len(m.Vargottama) > 0 {
		names := make([]string, len(m.Vargottama))
		for i, p := range m.Vargottama {
			names[i] = p.String()
		}
		printKeyValue(&b, "Vargottama", strings.Join(names, ", "))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	return b.String()
}
