package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/netlist"
	"github.com/matzehuels/wiregraph/pkg/script"
)

var (
	replayStepStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	replayDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	replayErrStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// ReplayModel - Interactive script stepping
// =============================================================================

// ReplayModel is the bubbletea model that executes a script one step per key
// press and shows every delta so far.
type ReplayModel struct {
	Script    script.Script
	NewEngine func() *engine.Engine

	eng    *engine.Engine
	deltas []engine.Delta
	err    error
	height int
}

// NewReplayModel creates a replay model over a fresh engine.
func NewReplayModel(s script.Script, newEngine func() *engine.Engine) ReplayModel {
	return ReplayModel{Script: s, NewEngine: newEngine, eng: newEngine(), height: 20}
}

func (m ReplayModel) Init() tea.Cmd {
	return nil
}

// Done reports whether every step has run or a step failed.
func (m ReplayModel) Done() bool {
	return m.err != nil || len(m.deltas) == len(m.Script.Steps)
}

func (m ReplayModel) next() ReplayModel {
	if m.Done() {
		return m
	}
	st := m.Script.Steps[len(m.deltas)]
	d, err := st.Run(m.eng)
	if err != nil {
		m.err = errors.Wrap(errors.ErrCodeInvalidScript, err, "step %d", len(m.deltas)+1)
		return m
	}
	m.deltas = append(slices.Clip(m.deltas), d)
	return m
}

func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n", " ", "enter":
			m = m.next()
		case "a":
			for !m.Done() {
				m = m.next()
			}
		case "r":
			m.eng = m.NewEngine()
			m.deltas = nil
			m.err = nil
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m ReplayModel) View() string {
	var b strings.Builder

	title := m.Script.Name
	if title == "" {
		title = "Replay"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(replayDimStyle.Render("→/space step  a run all  r restart  q quit"))
	b.WriteString("\n\n")

	done := len(m.deltas)
	switch {
	case done < len(m.Script.Steps):
		b.WriteString(replayStepStyle.Render(fmt.Sprintf("Next: step %d/%d %s", done+1, len(m.Script.Steps), m.Script.Steps[done].Op)))
	default:
		b.WriteString(replayStepStyle.Render(fmt.Sprintf("Finished %d steps", done)))
	}
	b.WriteString("\n")

	if done > 0 {
		// Keep the table within the terminal by showing the latest rows.
		from := max(done-m.height, 0)
		ops := make([]string, 0, done-from)
		for _, st := range m.Script.Steps[from:done] {
			ops = append(ops, st.Op)
		}
		b.WriteString(renderDeltaTable(ops, m.deltas[from:]))
		b.WriteString("\n")
		last := m.deltas[done-1]
		b.WriteString(replayDimStyle.Render("last: " + last.String() + "  rev " + last.Revision.String()[:8]))
		b.WriteString("\n")
	}

	g := m.eng.State()
	b.WriteString(replayDimStyle.Render(fmt.Sprintf("%d vertices · %d edges · %d nets",
		g.VertexCount(), g.EdgeCount(), len(netlist.Build(g)))))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(replayErrStyle.Render(iconError + " " + errors.UserMessage(m.err)))
		b.WriteString("\n")
	}
	return b.String()
}
