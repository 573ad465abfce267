package pathfinder

import (
	"fmt"
	"strings"

	"gridsearch/grid"
)

// Heuristic returns the estimated remaining cost from a position to the goal.
type Heuristic func(from, to grid.Position) float64

// Step describes the search after one frontier removal.
type Step struct {
	Current     grid.Position
	FrontierLen int
	Expanded    int
}

type options struct {
	heuristic Heuristic
	unitScale bool // heuristic assumes every step costs at least 1
	onStep    func(Step)
}

// Option configures FindPath.
type Option func(o *options)

func defaultOptions() options {
	return options{
		heuristic: grid.Euclidean,
		unitScale: true,
	}
}

// WithHeuristic replaces the Euclidean default. The heuristic is assumed to count one unit per step.
func WithHeuristic(h Heuristic) Option {
	return func(o *options) {
		if h != nil {
			o.heuristic = h
			o.unitScale = true
		}
	}
}

// WithUniformCost drops the heuristic entirely, turning the search into Dijkstra's algorithm.
func WithUniformCost() Option {
	return func(o *options) {
		o.heuristic = func(grid.Position, grid.Position) float64 { return 0 }
		o.unitScale = false
	}
}

// WithStepHook calls fn after every frontier removal.
func WithStepHook(fn func(Step)) Option {
	return func(o *options) {
		o.onStep = fn
	}
}

func (o options) notify(current grid.Position, frontierLen, expanded int) {
	if o.onStep != nil {
		o.onStep(Step{Current: current, FrontierLen: frontierLen, Expanded: expanded})
	}
}

// HeuristicOption maps a heuristic name to its option: euclidean, manhattan or zero.
func HeuristicOption(name string) (Option, error) {
	switch strings.ToLower(name) {
	case "", "euclidean":
		return WithHeuristic(grid.Euclidean), nil
	case "manhattan":
		return WithHeuristic(grid.Manhattan), nil
	case "zero", "none", "uniform":
		return WithUniformCost(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
}
