// Package render formats search results for terminals: the path as text and
// the grid as coloured cells.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pdrpinto/gridsearch"
)

// Theme defines the cell styles used by Grid.
type Theme struct {
	Free    lipgloss.Style
	Blocked lipgloss.Style
	Path    lipgloss.Style
	Start   lipgloss.Style
	Goal    lipgloss.Style
	Summary lipgloss.Style
}

const cellWidth = 7

// DefaultTheme returns the light-blue board with red walls and a green path.
func DefaultTheme() *Theme {
	cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	dark := lipgloss.Color("#000000")
	return &Theme{
		Free:    cell.Background(lipgloss.Color("#ADD8E6")).Foreground(dark),
		Blocked: cell.Background(lipgloss.Color("#FF0000")).Foreground(lipgloss.Color("#FFFFFF")),
		Path:    cell.Background(lipgloss.Color("#008000")).Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		Start:   cell.Background(lipgloss.Color("#90EE90")).Foreground(dark).Bold(true),
		Goal:    cell.Background(lipgloss.Color("#FFFF00")).Foreground(dark).Bold(true),
		Summary: lipgloss.NewStyle().Bold(true),
	}
}

// Text renders the path one position per line followed by the explored and
// path costs, or a no-path notice.
func Text(result gridsearch.Result) string {
	if !result.Found {
		return fmt.Sprintf("No path found.\nTotal explored cost: %d\n", result.ExploredCount)
	}
	var b strings.Builder
	for _, p := range result.Path {
		b.WriteString(p.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Total explored cost: %d\n", result.ExploredCount)
	fmt.Fprintf(&b, "Optimized path cost: %d\n", result.Path.Cost())
	return b.String()
}

// Grid renders every cell of g. Free cells show their coordinates, path
// cells show them in brackets, blocked cells show X.
func (t *Theme) Grid(g *gridsearch.Grid, start, goal gridsearch.Position, path gridsearch.Path) string {
	onPath := make(map[gridsearch.Position]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	rows := make([]string, 0, g.Rows())
	for r := 0; r < g.Rows(); r++ {
		cells := make([]string, 0, g.Cols())
		for c := 0; c < g.Cols(); c++ {
			p := gridsearch.Position{Row: r, Col: c}
			cells = append(cells, t.cell(g, p, start, goal, onPath[p]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (t *Theme) cell(g *gridsearch.Grid, p, start, goal gridsearch.Position, onPath bool) string {
	switch {
	case p == start:
		return t.Start.Render("Start")
	case p == goal:
		return t.Goal.Render("End")
	case g.Blocked(p):
		return t.Blocked.Render("X")
	case onPath:
		return t.Path.Render(fmt.Sprintf("[%d,%d]", p.Row, p.Col))
	}
	return t.Free.Render(p.String())
}

// Report renders a strategy heading, the grid and the text summary.
func (t *Theme) Report(strategy gridsearch.Strategy, g *gridsearch.Grid, start, goal gridsearch.Position, result gridsearch.Result) string {
	heading := t.Summary.Render(fmt.Sprintf("Strategy: %s", strategy))
	return lipgloss.JoinVertical(lipgloss.Left,
		heading,
		t.Grid(g, start, goal, result.Path),
		"",
		Text(result),
	)
}
