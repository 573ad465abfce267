package searcher

import (
	"context"

	"github.com/rs/zerolog/log"

	"gridsearch/game"
)

// Deepen runs the search at depths 1, 2, ... up to the configured depth and returns the
// deepest search that finished before ctx was done. A deeper pass is skipped once a pass
// reached no depth-bound leaves, since every line then ended in a win or loss.
//
// When ctx ends during the first pass the partial decision of that pass is returned with ctx.Err().
func (s *Searcher) Deepen(ctx context.Context, state game.State) (Decision, error) {
	if s.cfg.Depth == 0 {
		return s.search(ctx, state, 0)
	}

	var best Decision
	for depth := 1; depth <= s.cfg.Depth; depth++ {
		d, err := s.search(ctx, state, depth)
		if err != nil {
			if depth == 1 {
				return d, err
			}
			log.Debug().Msgf("%s: deadline during depth %d, keeping depth %d", s.name, depth, best.Depth)
			return best, err
		}

		best = d
		log.Debug().Msgf("%s: completed depth %d: action=%s value=%.2f leaves=%d", s.name, depth, d.Action, d.Value, d.Metrics.Leaves)

		if !d.Metrics.Cutoff {
			break
		}
	}
	return best, nil
}
