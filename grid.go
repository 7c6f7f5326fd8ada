package gridsearch

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrBlockedStart      = errors.New("start position is blocked")
	ErrBlockedGoal       = errors.New("goal position is blocked")
)

// Position is a (row, column) cell coordinate.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Less orders positions by row, then column.
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Manhattan returns |dr| + |dc| between two positions.
func (p Position) Manhattan(other Position) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// directions lists the four axis-aligned moves in expansion order: up, down, left, right.
var directions = [4]Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grid is an immutable snapshot of a rectangular board and its blocked cells.
// A *Grid may be shared by any number of concurrent searches.
type Grid struct {
	rows, cols int
	blocked    map[Position]struct{}
}

// NewGrid builds a grid of rows x cols with the given cells blocked.
// Duplicate blocked cells are ignored.
func NewGrid(rows, cols int, blocked ...Position) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	g := &Grid{rows: rows, cols: cols, blocked: make(map[Position]struct{}, len(blocked))}
	for _, p := range blocked {
		if !g.InBounds(p) {
			return nil, fmt.Errorf("blocked cell %s: %w", p, ErrOutOfBounds)
		}
		g.blocked[p] = struct{}{}
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

func (g *Grid) Blocked(p Position) bool {
	_, ok := g.blocked[p]
	return ok
}

// Passable reports whether p is inside the grid and not blocked.
func (g *Grid) Passable(p Position) bool {
	return g.InBounds(p) && !g.Blocked(p)
}

// BlockedCells returns the blocked cells in row-major order.
func (g *Grid) BlockedCells() []Position {
	cells := make([]Position, 0, len(g.blocked))
	for p := range g.blocked {
		cells = append(cells, p)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
	return cells
}

// Neighbors returns the passable neighbours of p in the order up, down, left, right.
func (g *Grid) Neighbors(p Position) []Position {
	out := make([]Position, 0, len(directions))
	for _, d := range directions {
		next := Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if g.Passable(next) {
			out = append(out, next)
		}
	}
	return out
}

// Validate checks the preconditions both searches assume: start and goal
// inside the grid and not blocked. Callers run it before searching.
func (g *Grid) Validate(start, goal Position) error {
	if !g.InBounds(start) {
		return fmt.Errorf("start %s: %w", start, ErrOutOfBounds)
	}
	if !g.InBounds(goal) {
		return fmt.Errorf("goal %s: %w", goal, ErrOutOfBounds)
	}
	if g.Blocked(start) {
		return fmt.Errorf("%w: %s", ErrBlockedStart, start)
	}
	if g.Blocked(goal) {
		return fmt.Errorf("%w: %s", ErrBlockedGoal, goal)
	}
	return nil
}
