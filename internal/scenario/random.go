package scenario

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/pdrpinto/gridsearch"
	"gopkg.in/yaml.v3"
)

// RandomOptions controls Random. Walls are grown as clusters: each cluster
// is a random walk of Steps moves that blocks the visited cell with
// probability Density.
type RandomOptions struct {
	Name     string
	Rows     int
	Cols     int
	Clusters int
	Steps    int
	Density  float64
	Seed     uint64
}

// DefaultRandomOptions matches a 24x40 board with a moderate amount of walls.
func DefaultRandomOptions() RandomOptions {
	return RandomOptions{
		Name:     "random",
		Rows:     24,
		Cols:     40,
		Clusters: 8,
		Steps:    200,
		Density:  0.25,
	}
}

// Random generates a scenario with clustered walls and distinct start and
// goal cells that are never blocked. The same options always give the same
// scenario. A path between start and goal is not guaranteed.
func Random(opts RandomOptions) (Scenario, error) {
	if opts.Rows < 1 || opts.Cols < 1 || opts.Rows*opts.Cols < 2 {
		return Scenario{}, fmt.Errorf("%w: random grid needs at least two cells, got %dx%d",
			gridsearch.ErrInvalidDimensions, opts.Rows, opts.Cols)
	}
	if opts.Density < 0 || opts.Density > 1 {
		return Scenario{}, errors.New("density must be between 0 and 1")
	}

	r := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	randomCell := func() gridsearch.Position {
		return gridsearch.Position{Row: r.IntN(opts.Rows), Col: r.IntN(opts.Cols)}
	}

	start := randomCell()
	goal := randomCell()
	for goal == start {
		goal = randomCell()
	}

	moves := []gridsearch.Position{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}
	walls := make(map[gridsearch.Position]bool)
	for range opts.Clusters {
		p := randomCell()
		for range opts.Steps {
			if r.Float64() < opts.Density && p != start && p != goal {
				walls[p] = true
			}
			d := moves[r.IntN(len(moves))]
			next := gridsearch.Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
			if next.Row >= 0 && next.Row < opts.Rows && next.Col >= 0 && next.Col < opts.Cols {
				p = next
			}
		}
	}

	g, err := gridsearch.NewGrid(opts.Rows, opts.Cols, keys(walls)...)
	if err != nil {
		return Scenario{}, err
	}
	return Scenario{
		Name:    opts.Name,
		Rows:    opts.Rows,
		Cols:    opts.Cols,
		Blocked: g.BlockedCells(),
		Start:   start,
		Goal:    goal,
	}, nil
}

func keys(m map[gridsearch.Position]bool) []gridsearch.Position {
	out := make([]gridsearch.Position, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	return out
}

// MarshalYAML writes scenarios in the layout ParseYAML reads.
func MarshalYAML(scenarios []Scenario) ([]byte, error) {
	file := yamlScenarioFile{Scenarios: make([]yamlScenario, 0, len(scenarios))}
	for _, s := range scenarios {
		y := yamlScenario{
			Name:    s.Name,
			Rows:    s.Rows,
			Cols:    s.Cols,
			Start:   []int{s.Start.Row, s.Start.Col},
			Goal:    []int{s.Goal.Row, s.Goal.Col},
			Blocked: make([][]int, 0, len(s.Blocked)),
		}
		for _, p := range s.Blocked {
			y.Blocked = append(y.Blocked, []int{p.Row, p.Col})
		}
		file.Scenarios = append(file.Scenarios, y)
	}
	out, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return out, nil
}
