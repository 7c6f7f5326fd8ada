// Package scenario loads search requests (grid size, blocked cells, start
// and goal) from HCL or YAML files and checks them before they reach a search.
package scenario

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdrpinto/gridsearch"
)

var (
	ErrInvalidCoordinate = errors.New("coordinates must be two integers written as row,col")
	ErrUnsupportedFormat = errors.New("unsupported scenario file format")
	ErrNotFound          = errors.New("scenario not found")
)

// Scenario is one search request.
type Scenario struct {
	Name    string
	Rows    int
	Cols    int
	Blocked []gridsearch.Position
	Start   gridsearch.Position
	Goal    gridsearch.Position
}

// Grid builds the immutable grid described by the scenario.
func (s Scenario) Grid() (*gridsearch.Grid, error) {
	g, err := gridsearch.NewGrid(s.Rows, s.Cols, s.Blocked...)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return g, nil
}

// Validate builds the grid and rejects start or goal positions that lie
// outside it or on a blocked cell.
func (s Scenario) Validate() (*gridsearch.Grid, error) {
	g, err := s.Grid()
	if err != nil {
		return nil, err
	}
	if err := g.Validate(s.Start, s.Goal); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return g, nil
}

// ParsePosition parses user input such as "2,3", "2 3" or "(2, 3)".
func ParsePosition(input string) (gridsearch.Position, error) {
	trimmed := strings.Trim(strings.TrimSpace(input), "()[]")
	fields := strings.FieldsFunc(trimmed, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) != 2 {
		return gridsearch.Position{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, input)
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return gridsearch.Position{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, input)
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return gridsearch.Position{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, input)
	}
	return gridsearch.Position{Row: row, Col: col}, nil
}

// ParsePositions parses every entry with ParsePosition.
func ParsePositions(inputs []string) ([]gridsearch.Position, error) {
	out := make([]gridsearch.Position, 0, len(inputs))
	for _, in := range inputs {
		p, err := ParsePosition(in)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Find returns the scenario with the given name. An empty name selects the
// first scenario.
func Find(scenarios []Scenario, name string) (Scenario, error) {
	if len(scenarios) == 0 {
		return Scenario{}, fmt.Errorf("%w: no scenarios loaded", ErrNotFound)
	}
	if name == "" {
		return scenarios[0], nil
	}
	for _, s := range scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

func positionFromInts(field string, v []int) (gridsearch.Position, error) {
	if len(v) != 2 {
		return gridsearch.Position{}, fmt.Errorf("%s: %w, got %d values", field, ErrInvalidCoordinate, len(v))
	}
	return gridsearch.Position{Row: v[0], Col: v[1]}, nil
}
