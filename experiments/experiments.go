package experiments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"gridsearch/chase"
	"gridsearch/engine"
	"gridsearch/experiments/metrics"
	"gridsearch/searcher"
)

// NumGames per agent config and scenario when Options.Games is unset
const NumGames = 10

var ErrNoScenarios = errors.New("experiment needs at least one scenario")

// Scenario is a chase layout to play.
type Scenario struct {
	Name   string
	Layout string
}

// Options control how many games are played and where the results go.
type Options struct {
	Games    int
	Seed     uint64 // game i of a config is played with ghosts seeded Seed+i
	MaxTurns int
	OutDir   string // no files are written when empty
}

// Report is what an experiment measured, per agent config.
type Report struct {
	Summaries  []Summary
	Throughput []Throughput
}

// Summary aggregates the games of one agent config.
type Summary struct {
	Agent     metrics.AgentConfig
	Games     int
	Wins      int
	Losses    int
	MeanScore float64
}

// VariantConfigs compares every search algorithm at the same depth and evaluation,
// with the reflex agent as a baseline.
func VariantConfigs(depth int, evaluation string, timeout time.Duration) []metrics.AgentConfig {
	configs := []metrics.AgentConfig{{ID: 0, Algorithm: engine.ReflexName, Depth: 1, Evaluation: evaluation}}
	for _, algorithm := range searcher.Algorithms() {
		configs = append(configs, metrics.AgentConfig{
			ID:         len(configs),
			Algorithm:  algorithm,
			Depth:      depth,
			Evaluation: evaluation,
			Timeout:    timeout,
		})
	}
	return configs
}

// Run plays opts.Games games of every scenario with every config and writes
// agent_configs.csv, game_records.csv and move_records.csv to opts.OutDir/name.
func Run(ctx context.Context, name string, configs []metrics.AgentConfig, scenarios []Scenario, opts Options) (Report, error) {
	if len(scenarios) == 0 {
		return Report{}, ErrNoScenarios
	}
	if opts.Games <= 0 {
		opts.Games = NumGames
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = engine.MaxTurns
	}

	// Run a number of games for each config
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for ci, config := range configs {
		log.Info().Msgf("starting config %d of %d: %+v", ci+1, len(configs), config)

		for _, scenario := range scenarios {
			for i := 0; i < opts.Games; i++ {
				if err := ctx.Err(); err != nil {
					return Report{}, err
				}

				seed := opts.Seed + uint64(i)
				outcome, gameMetric, moveMetrics, err := runGame(ctx, config, scenario, seed, opts.MaxTurns)
				if err != nil {
					return Report{}, fmt.Errorf("config %d on %q: %w", config.ID, scenario.Name, err)
				}

				count++
				gameRecords = append(gameRecords, metrics.GameRecord{
					ID:         count,
					Agent:      config.ID,
					Seed:       seed,
					GameMetric: gameMetric,
				})
				for _, mm := range moveMetrics {
					moveRecords = append(moveRecords, metrics.MoveRecord{
						Game:       count,
						MoveMetric: mm,
					})
				}

				log.Debug().Msgf("config %d on %q game %d of %d: %s", config.ID, scenario.Name, i+1, opts.Games, outcome)
			}
		}
		log.Info().Msgf("completed config %d of %d", ci+1, len(configs))
	}

	log.Info().Msgf("completed %s experiment", name)

	report := Report{
		Summaries:  Summarize(configs, gameRecords),
		Throughput: MeasureThroughput(gameRecords, moveRecords),
	}
	for _, s := range report.Summaries {
		log.Info().Msgf("agent %d %s depth=%d: %d/%d won, %d lost, mean score %.1f", s.Agent.ID, s.Agent.Algorithm, s.Agent.Depth, s.Wins, s.Games, s.Losses, s.MeanScore)
	}
	for _, t := range report.Throughput {
		log.Info().Msgf("agent %d: %.1f leaves and %.1f nodes per decision, %.0f leaves/s", t.Agent, t.MeanLeaves, t.MeanNodes, t.LeavesPerSecond)
	}

	if opts.OutDir == "" {
		return report, nil
	}
	return report, store(opts.OutDir, name, configs, gameRecords, moveRecords)
}

// Summarize groups game records by agent config, in config order.
func Summarize(configs []metrics.AgentConfig, records []metrics.GameRecord) []Summary {
	summaries := make([]Summary, len(configs))
	index := make(map[int]int, len(configs))
	for i, c := range configs {
		summaries[i].Agent = c
		index[c.ID] = i
	}

	for _, r := range records {
		i, ok := index[r.Agent]
		if !ok {
			continue
		}
		s := &summaries[i]
		s.Games++
		switch engine.Outcome(r.Outcome) {
		case engine.Win:
			s.Wins++
		case engine.Loss:
			s.Losses++
		}
		s.MeanScore += (r.Score - s.MeanScore) / float64(s.Games)
	}
	return summaries
}

// runGame plays a single game of scenario with the agent config against random ghosts
func runGame(ctx context.Context, config metrics.AgentConfig, scenario Scenario, seed uint64, maxTurns int) (engine.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	state, err := chase.Parse(scenario.Layout)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	policy, err := engine.NewPolicy(config, seed)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	e := engine.Local(state, policy, engine.NewRandomPolicy(seed), engine.WithMaxTurns(maxTurns), engine.WithScenario(scenario.Name))
	outcome, gameMetric, moveMetrics := e.Run(ctx)
	return outcome, gameMetric, moveMetrics, nil
}

func store(root, name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	// Store experiment metadata
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}
