package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gridsearch/chase"
	"gridsearch/experiments/metrics"
	"gridsearch/game"
	"gridsearch/searcher"
)

// scripted plays its actions in order and repeats the last one
type scripted struct {
	actions []game.Action
	agents  []int
}

func (p *scripted) Act(_ context.Context, _ game.State, agent int) (game.Action, metrics.SearchMetric, error) {
	p.agents = append(p.agents, agent)
	a := p.actions[0]
	if len(p.actions) > 1 {
		p.actions = p.actions[1:]
	}
	return a, metrics.SearchMetric{Algorithm: "scripted"}, nil
}

func mustParse(t *testing.T, layout string) *chase.State {
	t.Helper()
	s, err := chase.Parse(layout)
	require.NoError(t, err)
	return s
}

func TestLocalEngine(t *testing.T) {
	t.Run("playing to a win", func(t *testing.T) {
		state := mustParse(t, "%%%%%\n%P..%\n%%%%%")
		agent := &scripted{actions: []game.Action{chase.East}}

		outcome, gameMetric, moves := Local(state, agent, nil, WithScenario("corridor")).Run(context.Background())

		require.Equal(t, Win, outcome)
		require.Equal(t, "corridor", gameMetric.Scenario)
		require.Equal(t, string(Win), gameMetric.Outcome)
		require.Equal(t, 2.0*(chase.FoodReward-chase.TimePenalty)+chase.WinReward, gameMetric.Score)
		require.Equal(t, 2, gameMetric.Turns)
		require.Len(t, moves, 2)
		require.Equal(t, 1, moves[0].Step)
		require.Equal(t, chase.East, moves[1].Action)
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
	})

	t.Run("agents move in index order", func(t *testing.T) {
		state := mustParse(t, "%%%%%%%%\n%P....G%\n%%%%%%%%")
		agent := &scripted{actions: []game.Action{chase.Stop}}
		ghosts := &scripted{actions: []game.Action{chase.West}}

		outcome, gameMetric, moves := Local(state, agent, ghosts, WithMaxTurns(10)).Run(context.Background())

		// The ghost walks into the waiting eater on its fifth move
		require.Equal(t, Loss, outcome)
		require.Equal(t, 5, gameMetric.Turns)
		require.Len(t, moves, 10)
		require.Equal(t, []int{1, 1, 1, 1, 1}, ghosts.agents)
		for i, m := range moves {
			require.Equal(t, i%2, m.Agent, "move %d", i)
		}
	})

	t.Run("stopping at the turn limit", func(t *testing.T) {
		state := mustParse(t, "%%%%%%\n%P. .%\n%%%%%%")
		agent := &scripted{actions: []game.Action{chase.Stop}}

		outcome, gameMetric, moves := Local(state, agent, nil, WithMaxTurns(3)).Run(context.Background())

		require.Equal(t, Unfinished, outcome)
		require.Equal(t, 3, gameMetric.Turns)
		require.Len(t, moves, 3)
		require.Equal(t, -3.0, gameMetric.Score)
	})

	t.Run("illegal proposals fall back to the first legal action", func(t *testing.T) {
		state := mustParse(t, "%%%%%\n%P. %\n%%%%%")
		agent := &scripted{actions: []game.Action{chase.North}}

		_, _, moves := Local(state, agent, nil, WithMaxTurns(1)).Run(context.Background())

		require.Equal(t, chase.East, moves[0].Action)
	})

	t.Run("cancelled games do not start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		state := mustParse(t, "%%%%%\n%P. %\n%%%%%")

		outcome, gameMetric, moves := Local(state, &scripted{actions: []game.Action{chase.East}}, nil).Run(ctx)

		require.Equal(t, Unfinished, outcome)
		require.Equal(t, 0, gameMetric.Turns)
		require.Empty(t, moves)
	})

	t.Run("misconfiguration panics", func(t *testing.T) {
		state := mustParse(t, "%%%%%\n%P.G%\n%%%%%")
		agent := &scripted{actions: []game.Action{chase.Stop}}

		require.Panics(t, func() { Local(state, nil, agent) })
		require.Panics(t, func() { Local(state, agent, nil) }, "Ghosts need a policy")
		require.Panics(t, func() { Local(state, agent, agent, WithMaxTurns(0)) })
	})
}

func TestSearchPolicy(t *testing.T) {
	t.Run("searching to a win", func(t *testing.T) {
		s, err := searcher.NewAlphaBeta(searcher.Config{Depth: 2, Evaluate: game.EvaluateScore}, searcher.WithMetrics())
		require.NoError(t, err)
		state := mustParse(t, "%%%%%\n%P..%\n%%%%%")

		outcome, gameMetric, moves := Local(state, &SearchPolicy{Searcher: s}, nil).Run(context.Background())

		require.Equal(t, Win, outcome)
		require.Equal(t, 2, gameMetric.Turns)
		require.Equal(t, searcher.AlphaBetaName, moves[0].Algorithm)
		require.Positive(t, moves[0].Leaves)
		require.Equal(t, 0.0, moves[0].Score, "Score is taken before the move")
		require.Equal(t, gameMetric.Score, moves[0].Value, "Value is what the search expected to reach")
	})

	t.Run("answering within the timeout", func(t *testing.T) {
		s, err := searcher.NewExpectimax(searcher.Config{Depth: 8, Evaluate: game.EvaluateScore})
		require.NoError(t, err)
		state := mustParse(t, `
%%%%%%%%
%P.  . %
% %%%% %
%.   G.%
%%%%%%%%
`)
		p := &SearchPolicy{Searcher: s, Timeout: 20 * time.Millisecond}

		action, _, err := p.Act(context.Background(), state, 0)

		require.NoError(t, err)
		require.Contains(t, state.LegalActions(0), action)
	})

	t.Run("only plays the maximizing agent", func(t *testing.T) {
		s, err := searcher.NewMinimax(searcher.Config{Depth: 1, Evaluate: game.EvaluateScore})
		require.NoError(t, err)
		state := mustParse(t, "%%%%%\n%P.G%\n%%%%%")

		require.Panics(t, func() {
			(&SearchPolicy{Searcher: s}).Act(context.Background(), state, 1)
		})
	})
}

func TestRandomPolicy(t *testing.T) {
	state := mustParse(t, "%%%%%%%\n%P . G%\n%  .  %\n%%%%%%%")
	a, b := NewRandomPolicy(9), NewRandomPolicy(9)

	for i := 0; i < 20; i++ {
		x, _, err := a.Act(context.Background(), state, 1)
		require.NoError(t, err)
		y, _, err := b.Act(context.Background(), state, 1)
		require.NoError(t, err)

		require.Equal(t, x, y, "Equal seeds should give equal choices")
		require.Contains(t, state.LegalActions(1), x)
	}
}

func TestNewPolicy(t *testing.T) {
	t.Run("search algorithms", func(t *testing.T) {
		for _, name := range searcher.Algorithms() {
			p, err := NewPolicy(metrics.AgentConfig{Algorithm: name, Depth: 2, Evaluation: "score"}, 1)

			require.NoError(t, err)
			require.IsType(t, &SearchPolicy{}, p)
		}
	})

	t.Run("reflex", func(t *testing.T) {
		p, err := NewPolicy(metrics.AgentConfig{Algorithm: ReflexName, Evaluation: chase.BetterName}, 1)

		require.NoError(t, err)
		require.IsType(t, &ReflexPolicy{}, p)
	})

	t.Run("unknown names", func(t *testing.T) {
		_, err := NewPolicy(metrics.AgentConfig{Algorithm: "minimax", Depth: 2, Evaluation: "nope"}, 1)
		require.ErrorIs(t, err, game.ErrUnknownEvaluation)

		_, err = NewPolicy(metrics.AgentConfig{Algorithm: "nope", Depth: 2, Evaluation: "score"}, 1)
		require.ErrorIs(t, err, searcher.ErrUnknownAlgorithm)
	})
}
