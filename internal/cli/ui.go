package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/netlist"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - additions
	colorYellow = lipgloss.Color("220") // Amber - updates
	colorRed    = lipgloss.Color("167") // Soft red - removals, errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleAdded, StyleUpdated and StyleRemoved colour delta counts.
	StyleAdded   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleUpdated = lipgloss.NewStyle().Foreground(colorYellow)
	StyleRemoved = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCell        = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Tables
// =============================================================================

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

// deltaRow is one table row: the step's op followed by its six counts.
func deltaRow(i int, op string, d engine.Delta) []string {
	return []string{
		strconv.Itoa(i + 1),
		op,
		count("+", len(d.AddedVertices)),
		count("~", len(d.UpdatedVertices)),
		count("-", len(d.RemovedVertices)),
		count("+", len(d.AddedEdges)),
		count("~", len(d.UpdatedEdges)),
		count("-", len(d.RemovedEdges)),
	}
}

func count(sign string, n int) string {
	if n == 0 {
		return "·"
	}
	return sign + strconv.Itoa(n)
}

// renderDeltaTable renders one row per executed step.
func renderDeltaTable(ops []string, deltas []engine.Delta) string {
	rows := make([][]string, len(deltas))
	for i, d := range deltas {
		rows[i] = deltaRow(i, ops[i], d)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "Op", "+V", "~V", "-V", "+E", "~E", "-E").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader.Padding(0, 1)
			}
			switch {
			case col < 2:
				return styleCell
			case rows[row][col] == "·":
				return styleCell.Foreground(colorDim)
			case col == 2 || col == 5:
				return styleCell.Inherit(StyleAdded)
			case col == 3 || col == 6:
				return styleCell.Inherit(StyleUpdated)
			default:
				return styleCell.Inherit(StyleRemoved)
			}
		})
	return t.Render()
}

// renderNetTable renders one row per net.
func renderNetTable(nets []netlist.Net) string {
	rows := make([][]string, len(nets))
	for i, n := range nets {
		pins := make([]string, len(n.Pins))
		for j, p := range n.Pins {
			pins[j] = p.String()
		}
		rows[i] = []string{
			n.Cluster.String(),
			strings.Join(n.Labels, ", "),
			strconv.Itoa(len(n.Vertices)),
			strconv.Itoa(len(n.Edges)),
			strings.Join(pins, " "),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Net", "Labels", "Vertices", "Edges", "Pins").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader.Padding(0, 1)
			}
			if col == 4 {
				return styleCell.Foreground(colorCyan)
			}
			return styleCell
		})
	return t.Render()
}

// printGraphStats prints the graph size on one line.
func printGraphStats(g wire.View, nets int) {
	parts := []string{
		fmt.Sprintf("%d vertices", g.VertexCount()),
		fmt.Sprintf("%d edges", g.EdgeCount()),
		fmt.Sprintf("%d nets", nets),
	}
	fmt.Println("  " + StyleDim.Render(strings.Join(parts, " · ")))
}
