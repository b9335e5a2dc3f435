package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/screenflow/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command for interactive graph exploration.
func (c *CLI) browseCommand() *cobra.Command {
	var graphPath string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively browse screens and their transitions",
		Long: `Interactively browse screens and their transitions.

Arrow keys (or j/k) move through the screen list; the pane on the right
shows the outgoing transitions of the highlighted screen. Enter follows
the first outgoing transition, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(graphPath)
			if err != nil {
				return err
			}
			return runBrowse(g)
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "seed", "graph file (or \"seed\" for the demo graph)")
	return cmd
}

func runBrowse(g *graph.Graph) error {
	if len(g.Screens) == 0 {
		printInfo("Graph has no screens")
		return nil
	}
	model := newBrowseModel(g)
	_, err := tea.NewProgram(model).Run()
	return err
}

// =============================================================================
// browseModel - Interactive screen navigation
// =============================================================================

// browseModel is the bubbletea model for walking the screen graph.
type browseModel struct {
	g        *graph.Graph
	outgoing map[string][]graph.Transition

	cursor int
	offset int
	height int
}

func newBrowseModel(g *graph.Graph) browseModel {
	outgoing := make(map[string][]graph.Transition, len(g.Screens))
	for _, t := range g.Transitions {
		outgoing[t.From] = append(outgoing[t.From], t)
	}
	return browseModel{
		g:        g,
		outgoing: outgoing,
		height:   15,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.g.Screens)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			// Follow the first outgoing transition, if any.
			current := m.g.Screens[m.cursor].ID
			if ts := m.outgoing[current]; len(ts) > 0 {
				m.jumpTo(ts[0].To)
			}
		}
	}
	return m, nil
}

// jumpTo moves the cursor to the screen with the given id.
func (m *browseModel) jumpTo(id string) {
	for i, s := range m.g.Screens {
		if s.ID == id {
			m.cursor = i
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
			return
		}
	}
}

func (m browseModel) View() string {
	var list strings.Builder
	list.WriteString(StyleTitle.Render("Screens") + "\n")

	end := m.offset + m.height
	if end > len(m.g.Screens) {
		end = len(m.g.Screens)
	}
	for i := m.offset; i < end; i++ {
		s := m.g.Screens[i]
		line := fmt.Sprintf("%s (%d out)", s.ID, len(m.outgoing[s.ID]))
		if i == m.cursor {
			list.WriteString(listSelectedStyle.Render("> "+line) + "\n")
		} else {
			list.WriteString(listNormalStyle.Render("  "+line) + "\n")
		}
	}

	detail := m.detailView()
	body := lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "   ", detail)
	help := listDimStyle.Render("\nj/k move · enter follow · q quit\n")
	return body + help
}

// detailView renders the outgoing transitions of the highlighted screen.
func (m browseModel) detailView() string {
	current := m.g.Screens[m.cursor]
	var b strings.Builder
	b.WriteString(StyleTitle.Render(current.ID) + "\n")
	b.WriteString(listDimStyle.Render(current.ImagePath) + "\n\n")

	ts := m.outgoing[current.ID]
	if len(ts) == 0 {
		b.WriteString(listDimStyle.Render("no outgoing transitions"))
		return b.String()
	}
	for _, t := range ts {
		line := fmt.Sprintf("%s %s %s", t.Action.Type, iconArrow, t.To)
		if t.Weight > graph.DefaultWeight {
			line += listDimStyle.Render(fmt.Sprintf(" (w=%d)", t.Weight))
		}
		b.WriteString(listNormalStyle.Render(line) + "\n")
	}
	return b.String()
}
