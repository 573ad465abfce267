package chase

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"

	"gridsearch/game"
	"gridsearch/grid"
	"gridsearch/pathfinder"
)

// BetterName is the registry name of EvaluateBetter.
const BetterName = "better"

// Weights of EvaluateBetter
const (
	closeFoodWeight  = 10.0
	foodLeftPenalty  = 4.0
	ghostDangerRange = 1.0
	ghostPenalty     = 200.0
)

func init() {
	game.RegisterEvaluation(BetterName, EvaluateBetter)
}

// EvaluateBetter rewards being close to food, by maze distance, and eating it, and punishes
// standing next to a ghost. Finished games and non-chase states are worth their score.
func EvaluateBetter(gs game.State) float64 {
	s, ok := gs.(*State)
	if !ok || s.win || s.lose {
		return gs.Score()
	}

	value := s.score - foodLeftPenalty*float64(len(s.food))
	if d, ok := s.closestFood(); ok {
		value += closeFoodWeight / d
	}
	for _, g := range s.ghosts {
		if grid.Manhattan(s.eater, g) <= ghostDangerRange {
			value -= ghostPenalty
		}
	}
	return value
}

// closestFood returns the maze distance to the nearest food. Food is searched in Manhattan
// order, which never exceeds the maze distance, until no remaining piece can beat the best.
func (s *State) closestFood() (float64, bool) {
	food := s.Food()
	slices.SortStableFunc(food, func(a, b grid.Position) int {
		da, db := grid.Manhattan(s.eater, a), grid.Manhattan(s.eater, b)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})

	best, found := 0.0, false
	for _, f := range food {
		if found && grid.Manhattan(s.eater, f) >= best {
			break
		}
		res, err := pathfinder.FindPath(s.board, s.eater, f, pathfinder.WithHeuristic(grid.Manhattan))
		if err != nil {
			continue // walled off
		}
		if cost, _ := res.Cost(); !found || cost < best {
			best, found = cost, true
		}
	}
	return best, found
}

// Reflex picks the eater action whose successor evaluates best, breaking ties uniformly at random.
// It looks one move ahead and ignores the ghosts' replies.
func Reflex(s game.State, evaluate game.Evaluate, r *rand.Rand) game.Action {
	actions := s.LegalActions(game.MaxAgent)
	if len(actions) == 0 {
		return game.NoAction
	}

	var best []game.Action
	bestScore := 0.0
	for _, a := range actions {
		score := evaluate(s.Successor(game.MaxAgent, a))
		switch {
		case len(best) == 0 || score > bestScore:
			best, bestScore = []game.Action{a}, score
		case score == bestScore:
			best = append(best, a)
		}
	}

	choice := best[r.Intn(len(best))]
	log.Trace().Msgf("reflex: %d of %d actions score %.2f, chose %s", len(best), len(actions), bestScore, choice)
	return choice
}
