package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"gridsearch/chase"
	"gridsearch/experiments/metrics"
	"gridsearch/game"
	"gridsearch/searcher"
)

// ReflexName selects the one-move lookahead policy in NewPolicy.
const ReflexName = "reflex"

// Policy chooses an action for one agent.
type Policy interface {
	Act(ctx context.Context, state game.State, agent int) (game.Action, metrics.SearchMetric, error)
}

// SearchPolicy plays the maximizing agent with a game tree searcher. With a timeout the
// search deepens iteratively and plays the deepest answer found in time.
type SearchPolicy struct {
	Searcher *searcher.Searcher
	Timeout  time.Duration
}

func (p *SearchPolicy) Act(ctx context.Context, state game.State, agent int) (game.Action, metrics.SearchMetric, error) {
	if agent != game.MaxAgent {
		panic(fmt.Sprintf("search policy plays agent %d, not agent %d", game.MaxAgent, agent))
	}

	var (
		d   searcher.Decision
		err error
	)
	if p.Timeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, p.Timeout)
		defer cancel()
		d, err = p.Searcher.Deepen(ctx, state)
	} else {
		d, err = p.Searcher.SearchContext(ctx, state)
	}

	// Running out of time still leaves a usable answer
	if err != nil && d.Action != game.NoAction {
		log.Debug().Msgf("%s: %v, playing %s from depth %d", p.Searcher.Name(), err, d.Action, d.Depth)
		err = nil
	}
	return d.Action, d.Metrics, err
}

// RandomPolicy picks uniformly among the legal actions.
type RandomPolicy struct {
	r *rand.Rand
}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{r: rand.New(rand.NewSource(seed))}
}

func (p *RandomPolicy) Act(_ context.Context, state game.State, agent int) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return game.NoAction, metrics.SearchMetric{}, fmt.Errorf("agent %d has no legal actions", agent)
	}
	return actions[p.r.Intn(len(actions))], metrics.SearchMetric{Algorithm: "random"}, nil
}

// ReflexPolicy plays the action whose successor evaluates best.
type ReflexPolicy struct {
	Evaluate game.Evaluate
	r        *rand.Rand
}

func NewReflexPolicy(evaluate game.Evaluate, seed uint64) *ReflexPolicy {
	return &ReflexPolicy{Evaluate: evaluate, r: rand.New(rand.NewSource(seed))}
}

func (p *ReflexPolicy) Act(_ context.Context, state game.State, agent int) (game.Action, metrics.SearchMetric, error) {
	start := time.Now()
	action := chase.Reflex(state, p.Evaluate, p.r)
	return action, metrics.SearchMetric{Algorithm: ReflexName, Depth: 1, Duration: time.Since(start)}, nil
}

// NewPolicy builds the policy for agent 0 from its configuration. algorithm is one of
// searcher.Algorithms() or ReflexName.
func NewPolicy(cfg metrics.AgentConfig, seed uint64) (Policy, error) {
	evaluate, err := game.LookupEvaluation(cfg.Evaluation)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(cfg.Algorithm, ReflexName) {
		return NewReflexPolicy(evaluate, seed), nil
	}

	s, err := searcher.New(cfg.Algorithm, searcher.Config{Depth: cfg.Depth, Evaluate: evaluate}, searcher.WithMetrics())
	if err != nil {
		return nil, err
	}
	return &SearchPolicy{Searcher: s, Timeout: cfg.Timeout}, nil
}
