package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorflow/pkg/layout"
	"github.com/matzehuels/anchorflow/pkg/pipeline"
	"github.com/matzehuels/anchorflow/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
)

// resizeStep is how far one key press grows or shrinks the container.
const resizeStep = 10

// =============================================================================
// explore command
// =============================================================================

// exploreCommand creates the explore command, an interactive view that
// re-solves the scene as the container is resized.
func (c *CLI) exploreCommand() *cobra.Command {
	var optimizeWrap bool

	cmd := &cobra.Command{
		Use:               "explore [scene]",
		Short:             "Resize a scene interactively and step through its solve",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.ReadFile(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer runner.Close()

			// The TUI owns the terminal; keep log lines out of it.
			quiet := c.Logger.With()
			quiet.SetLevel(LogError)

			solve := func(width, height int) (layout.Layout, error) {
				return runner.Solve(cmd.Context(), pipeline.Options{
					Scene:        s,
					OptimizeWrap: optimizeWrap || c.Config.OptimizeWrap,
					Trace:        true,
					Width:        width,
					Height:       height,
					Logger:       quiet,
				})
			}
			m, err := NewExploreModel(displayName(s, args[0]), s.Container.Width, s.Container.Height, solve)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&optimizeWrap, "optimize-wrap", false, "grow wrap_content containers to fit their content")

	return cmd
}

// =============================================================================
// ExploreModel - Interactive solve explorer
// =============================================================================

// SolveFunc solves the scene for the given container size.
type SolveFunc func(width, height int) (layout.Layout, error)

// ExploreModel is the bubbletea model for the explore command. It lists the
// placed boxes of the current solve and the trace of node resolutions.
type ExploreModel struct {
	Name   string
	Width  int
	Height int
	Layout layout.Layout
	Err    error

	Cursor int // selected box
	Offset int
	Rows   int
	Step   int // selected trace step, -1 when the trace is hidden

	solve SolveFunc
}

// NewExploreModel solves the scene once at its declared size.
func NewExploreModel(name string, width, height int, solve SolveFunc) (ExploreModel, error) {
	m := ExploreModel{Name: name, Width: width, Height: height, Rows: 15, Step: -1, solve: solve}
	l, err := solve(width, height)
	if err != nil {
		return m, err
	}
	m.Layout = l
	return m, nil
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Layout.Boxes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Rows {
					m.Offset = m.Cursor - m.Rows + 1
				}
			}
		case "left", "h":
			m = m.resize(m.Width-resizeStep, m.Height)
		case "right", "l":
			m = m.resize(m.Width+resizeStep, m.Height)
		case "[":
			m = m.resize(m.Width, m.Height-resizeStep)
		case "]":
			m = m.resize(m.Width, m.Height+resizeStep)
		case "t":
			if m.Step < 0 && len(m.Layout.Trace) > 0 {
				m.Step = 0
			} else {
				m.Step = -1
			}
		case "n":
			if m.Step >= 0 && m.Step < len(m.Layout.Trace)-1 {
				m.Step++
			}
		case "p":
			if m.Step > 0 {
				m.Step--
			}
		}
	case tea.WindowSizeMsg:
		m.Rows = msg.Height - 10
		if m.Rows < 5 {
			m.Rows = 5
		}
	}
	return m, nil
}

// resize re-solves at the new size. Sizes below one are ignored.
func (m ExploreModel) resize(width, height int) ExploreModel {
	if width < 1 || height < 1 {
		return m
	}
	m.Width, m.Height = width, height
	l, err := m.solve(width, height)
	m.Err = err
	if err == nil {
		m.Layout = l
		if m.Cursor >= len(l.Boxes) {
			m.Cursor = max(0, len(l.Boxes)-1)
		}
		if m.Step >= len(l.Trace) {
			m.Step = len(l.Trace) - 1
		}
	}
	return m
}

// currentStep returns the selected trace step, if the trace is shown.
func (m ExploreModel) currentStep() (layout.Step, bool) {
	if m.Step < 0 || m.Step >= len(m.Layout.Trace) {
		return layout.Step{}, false
	}
	return m.Layout.Trace[m.Step], true
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Name))
	b.WriteString("  ")
	b.WriteString(StyleValue.Render(fmt.Sprintf("%d×%d", m.Layout.Width, m.Layout.Height)))
	b.WriteString("  ")
	if m.Layout.Resolved {
		b.WriteString(StyleSuccess.Render("resolved"))
	} else {
		b.WriteString(StyleWarning.Render("unresolved"))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  ←/→ width  [/] height  t trace  n/p step  q quit"))
	b.WriteString("\n\n")

	step, tracing := m.currentStep()

	end := min(m.Offset+m.Rows, len(m.Layout.Boxes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		box := m.Layout.Boxes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		vis := box.Visibility
		if vis == "" {
			vis = "visible"
		}
		rows = append(rows, []string{
			cursor, box.ID,
			strconv.Itoa(box.X), strconv.Itoa(box.Y),
			strconv.Itoa(box.Width), strconv.Itoa(box.Height),
			vis,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("", "Box", "X", "Y", "Width", "Height", "Visibility").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Layout.Boxes) {
				return lipgloss.NewStyle()
			}
			box := m.Layout.Boxes[idx]
			switch {
			case tracing && box.ID == step.Box:
				return lipgloss.NewStyle().Foreground(colorOK).Bold(true)
			case idx == m.Cursor:
				return listSelectedStyle
			case box.Visibility == "gone":
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if tracing {
		b.WriteString("\n")
		b.WriteString(StyleTitle.Render(fmt.Sprintf("Step %d/%d", m.Step+1, len(m.Layout.Trace))))
		b.WriteString("  ")
		b.WriteString(StyleValue.Render(fmt.Sprintf("%s.%s %s = %d", step.Box, step.Axis, step.Edge, step.Value)))
		b.WriteString("\n")
	}
	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(levelError.line("%v", m.Err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d runs", m.Cursor+1, len(m.Layout.Boxes), m.Layout.Stats.Runs)))

	return b.String()
}

var _ tea.Model = ExploreModel{}
