package searcher

import (
	"errors"
	"fmt"
	"strings"

	"gridsearch/experiments/metrics"
	"gridsearch/game"
)

// Algorithm names accepted by New
const (
	MinimaxName    = "minimax"
	AlphaBetaName  = "alphabeta"
	ExpectimaxName = "expectimax"
)

var (
	ErrNoEvaluation     = errors.New("search needs an evaluation function")
	ErrInvalidDepth     = errors.New("search depth must not be negative")
	ErrUnknownAlgorithm = errors.New("unknown search algorithm")
)

// Config bounds the search. Depth counts plies: one move of every agent.
type Config struct {
	Depth    int
	Evaluate game.Evaluate
}

func (c Config) validate() error {
	if c.Evaluate == nil {
		return ErrNoEvaluation
	}
	if c.Depth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, c.Depth)
	}
	return nil
}

type Option func(s *Searcher)

// WithMetrics counts expanded nodes and evaluated leaves for every search.
func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

// WithAdversary replaces the adversary model, e.g. with a weighted expectation.
func WithAdversary(adversary Adversary) Option {
	return func(s *Searcher) {
		if adversary != nil {
			s.adversary = adversary
			s.prune = s.prune && adversary.Prunable()
		}
	}
}

// Algorithms lists the names New accepts.
func Algorithms() []string {
	return []string{MinimaxName, AlphaBetaName, ExpectimaxName}
}

// New builds the searcher registered under algorithm.
func New(algorithm string, cfg Config, options ...Option) (*Searcher, error) {
	switch strings.ToLower(algorithm) {
	case MinimaxName:
		return NewMinimax(cfg, options...)
	case AlphaBetaName, "alpha-beta":
		return NewAlphaBeta(cfg, options...)
	case ExpectimaxName:
		return NewExpectimax(cfg, options...)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
}
