package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gridsearch/grid"
)

var ErrBadEndpoint = errors.New("scenario endpoint is outside the grid or blocked")

// Scenario is a pathfinding task: a cost grid plus optional start and goal cells that
// override the S and G markers, so one layout can serve several tasks.
type Scenario struct {
	Name   string         `yaml:"name"`
	Layout string         `yaml:"layout"`
	Start  *grid.Position `yaml:"start,omitempty"`
	Goal   *grid.Position `yaml:"goal,omitempty"`
}

// LoadScenario reads a scenario file. A layout that is not inline text is read from a
// file next to the scenario.
func LoadScenario(path string) (Scenario, error) {
	var s Scenario
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read scenario: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	if s.Layout, err = resolveLayout(s.Layout, filepath.Dir(path)); err != nil {
		return s, err
	}
	return s, nil
}

// Grid parses the layout and applies the endpoint overrides.
func (s Scenario) Grid() (*grid.Grid, error) {
	g, err := grid.Parse(s.Layout)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	if s.Start != nil {
		if !g.Passable(*s.Start) {
			return nil, fmt.Errorf("%w: start %v", ErrBadEndpoint, *s.Start)
		}
		g.SetStart(*s.Start)
	}
	if s.Goal != nil {
		if !g.Passable(*s.Goal) {
			return nil, fmt.Errorf("%w: goal %v", ErrBadEndpoint, *s.Goal)
		}
		g.SetGoal(*s.Goal)
	}
	return g, nil
}
