package main

import (
	"errors"
	"fmt"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/internal/scenario"
	"github.com/spf13/cobra"
)

var errOverrideNeedsOne = errors.New("--start and --goal apply to a single scenario, pick one with --name")

// scenarioFlags describe a scenario either by file or inline.
type scenarioFlags struct {
	path    string
	name    string
	rows    int
	cols    int
	blocked []string
	start   string
	goal    string
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.path, "scenario", "s", "", "HCL or YAML scenario file, or a directory of them")
	flags.StringVar(&f.name, "name", "", "scenario name to pick from the file (default: first)")
	flags.IntVar(&f.rows, "rows", 0, "number of rows (inline grid)")
	flags.IntVar(&f.cols, "cols", 0, "number of columns (inline grid)")
	flags.StringArrayVarP(&f.blocked, "block", "b", nil, "blocked cell as row,col (repeatable)")
	flags.StringVar(&f.start, "start", "", "start cell as row,col")
	flags.StringVar(&f.goal, "goal", "", "goal cell as row,col")
	cmd.MarkFlagsMutuallyExclusive("scenario", "rows")
	cmd.MarkFlagsMutuallyExclusive("scenario", "block")
}

func (f *scenarioFlags) inline() bool { return f.path == "" }

// scenarios returns every scenario selected by the flags. With a file and
// no --name every scenario in it is returned. --start and --goal are not
// applied; see override.
func (f *scenarioFlags) scenarios(cmd *cobra.Command) ([]scenario.Scenario, error) {
	if f.inline() {
		s, err := f.inlineScenario()
		if err != nil {
			return nil, err
		}
		return []scenario.Scenario{s}, nil
	}

	all, err := scenario.LoadPath(cmd.Context(), f.path)
	if err != nil {
		return nil, err
	}
	if f.name == "" {
		if len(all) == 0 {
			return nil, fmt.Errorf("%w: no scenarios in %s", scenario.ErrNotFound, f.path)
		}
		return all, nil
	}
	s, err := scenario.Find(all, f.name)
	if err != nil {
		return nil, err
	}
	return []scenario.Scenario{s}, nil
}

// scenario returns exactly one scenario: the named one, the first in the
// file, or the inline one. --start and --goal override the file's values.
func (f *scenarioFlags) scenario(cmd *cobra.Command) (scenario.Scenario, error) {
	all, err := f.scenarios(cmd)
	if err != nil {
		return scenario.Scenario{}, err
	}
	s := all[0]
	if err := f.override(&s); err != nil {
		return scenario.Scenario{}, err
	}
	return s, nil
}

// override applies --start and --goal on top of a scenario read from a file.
func (f *scenarioFlags) override(s *scenario.Scenario) error {
	if f.inline() {
		return nil
	}
	var err error
	if f.start != "" {
		if s.Start, err = scenario.ParsePosition(f.start); err != nil {
			return fmt.Errorf("--start: %w", err)
		}
	}
	if f.goal != "" {
		if s.Goal, err = scenario.ParsePosition(f.goal); err != nil {
			return fmt.Errorf("--goal: %w", err)
		}
	}
	return nil
}

func (f *scenarioFlags) inlineScenario() (scenario.Scenario, error) {
	if f.rows == 0 || f.cols == 0 || f.start == "" || f.goal == "" {
		return scenario.Scenario{}, errors.New("either --scenario or all of --rows, --cols, --start and --goal are required")
	}
	blocked, err := scenario.ParsePositions(f.blocked)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("--block: %w", err)
	}
	start, err := scenario.ParsePosition(f.start)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("--start: %w", err)
	}
	goal, err := scenario.ParsePosition(f.goal)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("--goal: %w", err)
	}
	return scenario.Scenario{
		Name:    "inline",
		Rows:    f.rows,
		Cols:    f.cols,
		Blocked: blocked,
		Start:   start,
		Goal:    goal,
	}, nil
}

func parseStrategyFlag(value string) (gridsearch.Strategy, error) {
	if value == "" {
		return "", nil
	}
	return gridsearch.ParseStrategy(value)
}
