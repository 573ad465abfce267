package engine

import (
	"context"

	"gridsearch/experiments/metrics"
)

// MaxTurns bounds a game when no limit is configured.
const MaxTurns = 300

type Outcome string

const (
	Win        Outcome = "win"
	Loss       Outcome = "loss"
	Unfinished Outcome = "unfinished" // turn limit reached or cancelled
)

type Engine interface {
	// Run plays a game until it is won, lost, out of turns or ctx is done
	Run(ctx context.Context) (Outcome, metrics.GameMetric, []metrics.MoveMetric)
}
