package searcher

import (
	"context"
	"fmt"
	"math"

	"gridsearch/experiments/metrics"
	"gridsearch/game"
)

// Decision is the outcome of a search from the maximizing agent's point of view.
type Decision struct {
	Value   float64
	Action  game.Action // NoAction when the root itself is a leaf
	Depth   int
	Metrics metrics.SearchMetric
}

// Searcher evaluates game trees where agent 0 maximizes and agents 1..N-1 reply in index order.
// A ply ends once the last agent has moved. Leaves are states at the depth bound, wins and losses.
type Searcher struct {
	name      string
	cfg       Config
	adversary Adversary
	prune     bool
	metrics   metrics.Collector
}

// NewMinimax returns a searcher whose adversaries minimize.
func NewMinimax(cfg Config, options ...Option) (*Searcher, error) {
	return newSearcher(MinimaxName, cfg, Minimizing{}, false, options)
}

// NewAlphaBeta returns a minimax searcher that skips branches outside the (alpha, beta) window.
// Root values always match NewMinimax; the chosen action may differ under ties.
func NewAlphaBeta(cfg Config, options ...Option) (*Searcher, error) {
	return newSearcher(AlphaBetaName, cfg, Minimizing{}, true, options)
}

// NewExpectimax returns a searcher whose adversaries act uniformly at random.
func NewExpectimax(cfg Config, options ...Option) (*Searcher, error) {
	return newSearcher(ExpectimaxName, cfg, Uniform{}, false, options)
}

func newSearcher(name string, cfg Config, adversary Adversary, prune bool, options []Option) (*Searcher, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	s := &Searcher{ // Default values
		name:      name,
		cfg:       cfg,
		adversary: adversary,
		prune:     prune,
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

func (s *Searcher) Name() string   { return s.name }
func (s *Searcher) Config() Config { return s.cfg }

// FindAction returns the maximizing agent's best action at state.
func (s *Searcher) FindAction(state game.State) game.Action {
	return s.Search(state).Action
}

// Search evaluates state to the configured depth.
//
// Every non-terminal state within the depth bound must offer the agent to move at
// least one legal action; Search panics otherwise.
func (s *Searcher) Search(state game.State) Decision {
	d, _ := s.search(context.Background(), state, s.cfg.Depth)
	return d
}

// SearchContext is Search with cancellation. Cancellation is checked between sibling
// actions; every level then stops and keeps the best value of the siblings it finished,
// and ctx.Err() is returned alongside that partial decision.
func (s *Searcher) SearchContext(ctx context.Context, state game.State) (Decision, error) {
	return s.search(ctx, state, s.cfg.Depth)
}

// walk carries the per-search values shared by every level of the recursion
type walk struct {
	ctx      context.Context
	maxDepth int
	agents   int
	cutoff   bool // a leaf was produced by the depth bound rather than a win or loss
}

func (s *Searcher) search(ctx context.Context, state game.State, depth int) (Decision, error) {
	w := &walk{ctx: ctx, maxDepth: depth, agents: state.NumAgents()}

	s.metrics.Start(s.name)
	value, action := s.value(w, state, game.MaxAgent, 0, math.Inf(-1), math.Inf(1))
	metric := s.metrics.Complete(depth)
	metric.Cutoff = w.cutoff
	metric.Value = value

	return Decision{
		Value:   value,
		Action:  action,
		Depth:   depth,
		Metrics: metric,
	}, ctx.Err()
}

func (s *Searcher) value(w *walk, state game.State, agent, depth int, alpha, beta float64) (float64, game.Action) {
	if state.IsWin() || state.IsLose() {
		s.metrics.AddLeaf()
		return s.cfg.Evaluate(state), game.NoAction
	}
	if depth == w.maxDepth {
		w.cutoff = true
		s.metrics.AddLeaf()
		return s.cfg.Evaluate(state), game.NoAction
	}

	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		panic(fmt.Sprintf("agent %d has no legal actions at depth %d of a non-terminal state", agent, depth))
	}
	s.metrics.AddNode()

	if agent == game.MaxAgent {
		return s.maxValue(w, state, actions, depth, alpha, beta)
	}
	return s.adversaryValue(w, state, agent, actions, depth, alpha, beta)
}

func (s *Searcher) maxValue(w *walk, state game.State, actions []game.Action, depth int, alpha, beta float64) (float64, game.Action) {
	nextAgent, nextDepth := w.next(game.MaxAgent, depth)

	v, move := math.Inf(-1), actions[0]
	for i, a := range actions {
		if i > 0 && w.interrupted() {
			break
		}
		v2, _ := s.value(w, state.Successor(game.MaxAgent, a), nextAgent, nextDepth, alpha, beta)
		if v2 > v {
			v, move = v2, a
		}
		if s.prune {
			// The minimizer above already has something better
			if v > beta {
				return v, move
			}
			alpha = max(alpha, v)
		}
	}
	return v, move
}

func (s *Searcher) adversaryValue(w *walk, state game.State, agent int, actions []game.Action, depth int, alpha, beta float64) (float64, game.Action) {
	nextAgent, nextDepth := w.next(agent, depth)

	v, move := s.adversary.Identity(), actions[0]
	n := 0
	for i, a := range actions {
		if i > 0 && w.interrupted() {
			break
		}
		v2, _ := s.value(w, state.Successor(agent, a), nextAgent, nextDepth, alpha, beta)
		n++

		var chosen bool
		if v, chosen = s.adversary.Fold(v, v2); chosen {
			move = a
		}
		if s.prune {
			// The maximizer above already has something better
			if v < alpha {
				return v, move
			}
			beta = min(beta, v)
		}
	}
	return s.adversary.Finish(v, n), move
}

// next returns who moves after agent, and at which depth
func (w *walk) next(agent, depth int) (int, int) {
	if agent >= w.agents-1 {
		return game.MaxAgent, depth + 1
	}
	return agent + 1, depth
}

func (w *walk) interrupted() bool {
	return w.ctx.Err() != nil
}
