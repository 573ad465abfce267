package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"gridsearch/experiments/metrics"
	"gridsearch/game"
)

// LocalEngine plays agent 0 with one policy and every other agent with another, in-process.
type LocalEngine struct {
	State    game.State
	Agent    Policy
	Ghosts   Policy
	maxTurns int
	scenario string
}

type Option func(e *LocalEngine)

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		e.maxTurns = turns
	}
}

// WithScenario names the game in its metrics.
func WithScenario(name string) Option {
	return func(e *LocalEngine) {
		e.scenario = name
	}
}

func Local(state game.State, agent, ghosts Policy, options ...Option) *LocalEngine {
	if state == nil || agent == nil {
		panic("Must specify a state and a policy for agent 0")
	}
	if ghosts == nil && state.NumAgents() > 1 {
		panic("Must specify a policy for the other agents")
	}

	e := &LocalEngine{ // Default values
		State:    state,
		Agent:    agent,
		Ghosts:   ghosts,
		maxTurns: MaxTurns,
	}
	for _, option := range options {
		option(e)
	}
	if e.maxTurns <= 0 {
		panic("Must specify a positive number of turns")
	}
	return e
}

// Run executes the game loop. A turn is one move of every agent in index order.
func (e *LocalEngine) Run(ctx context.Context) (Outcome, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{Scenario: e.scenario, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("starting %q with %d agents", e.scenario, e.State.NumAgents())

	step := 0
	turn := 0
	for ; turn < e.maxTurns && !e.over() && ctx.Err() == nil; turn++ {
		for agent := 0; agent < e.State.NumAgents() && !e.over(); agent++ {
			step++
			action, searchMetric := e.act(ctx, agent)
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:         step,
				Agent:        agent,
				Action:       action,
				Score:        e.State.Score(),
				SearchMetric: searchMetric,
			})

			e.State = e.State.Successor(agent, action)
			log.Debug().Msgf("turn %d: agent %d plays %s, score %.0f", turn+1, agent, action, e.State.Score())
		}
	}

	outcome := Unfinished
	switch {
	case e.State.IsWin():
		outcome = Win
	case e.State.IsLose():
		outcome = Loss
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Outcome = string(outcome)
	gameMetric.Score = e.State.Score()
	gameMetric.Turns = turn

	log.Info().Msgf("%q ended after %d turns: %s with score %.0f", e.scenario, turn, outcome, gameMetric.Score)
	return outcome, gameMetric, moveMetrics
}

func (e *LocalEngine) over() bool {
	return e.State.IsWin() || e.State.IsLose()
}

// act asks the agent's policy for a move and falls back to the first legal action when
// the policy fails or proposes something illegal.
func (e *LocalEngine) act(ctx context.Context, agent int) (game.Action, metrics.SearchMetric) {
	policy := e.Agent
	if agent != game.MaxAgent {
		policy = e.Ghosts
	}

	legal := e.State.LegalActions(agent)
	if len(legal) == 0 {
		panic("No legal moves at all!")
	}

	action, searchMetric, err := policy.Act(ctx, e.State, agent)
	if err != nil || !slices.Contains(legal, action) {
		log.Warn().Err(err).Msgf("agent %d proposed %q, forcing %s", agent, action, legal[0])
		action = legal[0]
	}
	return action, searchMetric
}
