package scenario

import (
	"fmt"

	"github.com/pdrpinto/gridsearch"
	"gopkg.in/yaml.v3"
)

// yamlScenarioFile mirrors the HCL layout:
//
//	scenarios:
//	  - name: corner
//	    rows: 3
//	    cols: 3
//	    start: [0, 0]
//	    goal: [2, 2]
//	    blocked: [[1, 1]]
type yamlScenarioFile struct {
	Scenarios []yamlScenario `yaml:"scenarios"`
}

type yamlScenario struct {
	Name    string  `yaml:"name"`
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Start   []int   `yaml:"start"`
	Goal    []int   `yaml:"goal"`
	Blocked [][]int `yaml:"blocked"`
}

// ParseYAML parses every scenario listed in src.
func ParseYAML(src []byte) ([]Scenario, error) {
	var file yamlScenarioFile
	if err := yaml.Unmarshal(src, &file); err != nil {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}

	scenarios := make([]Scenario, 0, len(file.Scenarios))
	for i, raw := range file.Scenarios {
		s, err := raw.toScenario()
		if err != nil {
			return nil, fmt.Errorf("error in scenario %d (%q): %w", i, raw.Name, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func (y yamlScenario) toScenario() (Scenario, error) {
	s := Scenario{Name: y.Name, Rows: y.Rows, Cols: y.Cols}

	var err error
	if s.Start, err = positionFromInts("start", y.Start); err != nil {
		return Scenario{}, err
	}
	if s.Goal, err = positionFromInts("goal", y.Goal); err != nil {
		return Scenario{}, err
	}
	s.Blocked = make([]gridsearch.Position, 0, len(y.Blocked))
	for i, ints := range y.Blocked {
		p, err := positionFromInts(fmt.Sprintf("blocked[%d]", i), ints)
		if err != nil {
			return Scenario{}, err
		}
		s.Blocked = append(s.Blocked, p)
	}
	return s, nil
}
