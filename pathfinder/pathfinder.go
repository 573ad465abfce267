// Package pathfinder finds cheapest paths over grid maps with A*.
//
// The frontier is ordered by accumulated cost plus a heuristic estimate. With the
// default Euclidean heuristic the result is optimal only when every cell costs at
// least 1; maps with cheaper cells are reported through Result.Admissible.
package pathfinder

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"gridsearch/grid"
)

var (
	ErrUnreachable      = errors.New("goal is unreachable")
	ErrOutOfBounds      = errors.New("position is outside the map")
	ErrBlocked          = errors.New("position is blocked")
	ErrUnknownHeuristic = errors.New("unknown heuristic")
)

// Result holds the search bookkeeping. Predecessors has no entry for the start.
type Result struct {
	Start        grid.Position
	Goal         grid.Position
	Predecessors map[grid.Position]grid.Position
	Costs        map[grid.Position]float64
	Expanded     int  // frontier removals, stale entries included
	Found        bool // goal has a cost entry
	Admissible   bool // heuristic cannot overestimate on this map
}

// FindPath runs A* from start to goal over m.
// When the goal cannot be reached the returned error wraps ErrUnreachable and the
// partial cost and predecessor maps are still returned.
func FindPath(m grid.Map, start, goal grid.Position, opts ...Option) (Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := validate(m, start, goal); err != nil {
		return Result{Start: start, Goal: goal}, err
	}

	res := Result{
		Start:        start,
		Goal:         goal,
		Predecessors: make(map[grid.Position]grid.Position),
		Costs:        map[grid.Position]float64{start: 0},
		Admissible:   admissible(m, o),
	}
	if !res.Admissible {
		log.Warn().Msgf("map has cells cheaper than 1: heuristic may overestimate, path from %v to %v may not be optimal", start, goal)
	}

	frontier := NewFrontier()
	frontier.Insert(0, start)
	for !frontier.Empty() {
		current, _ := frontier.Remove()
		res.Expanded++

		// Neighbors of the goal are never relaxed
		if current == goal {
			o.notify(current, frontier.Len(), res.Expanded)
			break
		}

		for _, next := range m.Neighbors(current) {
			newCost := res.Costs[current] + m.CellCost(next)
			if old, seen := res.Costs[next]; !seen || newCost < old {
				res.Costs[next] = newCost
				res.Predecessors[next] = current
				frontier.Insert(newCost+o.heuristic(next, goal), next)
			}
		}

		o.notify(current, frontier.Len(), res.Expanded)
	}

	_, res.Found = res.Costs[goal]
	if !res.Found {
		return res, fmt.Errorf("%w: from %v to %v after %d expansions", ErrUnreachable, start, goal, res.Expanded)
	}
	return res, nil
}

// Path returns the cells entered on the way from start to goal, goal included and start excluded.
// It is empty when start and goal coincide.
func (r Result) Path() ([]grid.Position, error) {
	if !r.Found {
		return nil, fmt.Errorf("%w: from %v to %v", ErrUnreachable, r.Start, r.Goal)
	}

	path := []grid.Position{}
	for current := r.Goal; current != r.Start; {
		path = append(path, current)
		prev, ok := r.Predecessors[current]
		if !ok {
			panic(fmt.Sprintf("position %v has a cost but no predecessor", current))
		}
		current = prev
	}
	slices.Reverse(path)
	return path, nil
}

// Cost returns the accumulated cost of reaching the goal.
func (r Result) Cost() (float64, bool) {
	cost, ok := r.Costs[r.Goal]
	return cost, ok
}

func validate(m grid.Map, start, goal grid.Position) error {
	b, ok := m.(grid.Bounded)
	if !ok {
		return nil
	}
	for _, pos := range []grid.Position{start, goal} {
		if !b.InBounds(pos) {
			return fmt.Errorf("%w: %v", ErrOutOfBounds, pos)
		}
		if !b.Passable(pos) {
			return fmt.Errorf("%w: %v", ErrBlocked, pos)
		}
	}
	return nil
}

func admissible(m grid.Map, o options) bool {
	if !o.unitScale {
		return true
	}
	coster, ok := m.(interface{ MinCost() float64 })
	if !ok {
		return true
	}
	return coster.MinCost() >= 1
}
