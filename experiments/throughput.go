package experiments

import (
	"time"

	"golang.org/x/exp/slices"

	"gridsearch/experiments/metrics"
)

// DepthConfigs sweeps one algorithm over depths 1..maxDepth, searching every depth to completion.
func DepthConfigs(algorithm, evaluation string, maxDepth int) []metrics.AgentConfig {
	configs := make([]metrics.AgentConfig, 0, maxDepth)
	for depth := 1; depth <= maxDepth; depth++ {
		configs = append(configs, metrics.AgentConfig{
			ID:         depth,
			Algorithm:  algorithm,
			Depth:      depth,
			Evaluation: evaluation,
		})
	}
	return configs
}

// Throughput is the search work one agent config did per decision.
type Throughput struct {
	Agent           int
	Decisions       int
	MeanLeaves      float64
	MeanNodes       float64
	MeanDuration    time.Duration
	LeavesPerSecond float64
}

// MeasureThroughput aggregates the agent 0 moves of each game by the config that played it.
// Rows come back ordered by agent config ID.
func MeasureThroughput(games []metrics.GameRecord, moves []metrics.MoveRecord) []Throughput {
	agentOf := make(map[int]int, len(games))
	for _, g := range games {
		agentOf[g.ID] = g.Agent
	}

	type totals struct {
		decisions int
		leaves    int
		nodes     int
		duration  time.Duration
	}
	byAgent := make(map[int]*totals)
	for _, m := range moves {
		agent, ok := agentOf[m.Game]
		if !ok || m.Agent != 0 {
			continue
		}
		t := byAgent[agent]
		if t == nil {
			t = &totals{}
			byAgent[agent] = t
		}
		t.decisions++
		t.leaves += m.Leaves
		t.nodes += m.Nodes
		t.duration += m.Duration
	}

	rows := make([]Throughput, 0, len(byAgent))
	for agent, t := range byAgent {
		row := Throughput{
			Agent:        agent,
			Decisions:    t.decisions,
			MeanLeaves:   float64(t.leaves) / float64(t.decisions),
			MeanNodes:    float64(t.nodes) / float64(t.decisions),
			MeanDuration: t.duration / time.Duration(t.decisions),
		}
		if t.duration > 0 {
			row.LeavesPerSecond = float64(t.leaves) / t.duration.Seconds()
		}
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b Throughput) int { return a.Agent - b.Agent })
	return rows
}
