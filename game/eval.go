package game

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

var ErrUnknownEvaluation = errors.New("unknown evaluation function")

var (
	evaluationsMu sync.RWMutex
	evaluations   = map[string]Evaluate{
		"score": EvaluateScore,
	}
)

// EvaluateScore is the default evaluation: the game's current score.
func EvaluateScore(s State) float64 {
	return s.Score()
}

// RegisterEvaluation makes fn available to LookupEvaluation under name.
// Registering nil or reusing a name is a programming error.
func RegisterEvaluation(name string, fn Evaluate) {
	if name == "" || fn == nil {
		panic("evaluation needs a name and a function")
	}

	evaluationsMu.Lock()
	defer evaluationsMu.Unlock()

	if _, ok := evaluations[name]; ok {
		panic(fmt.Sprintf("evaluation %q registered twice", name))
	}
	evaluations[name] = fn
}

// LookupEvaluation returns the evaluation registered under name.
func LookupEvaluation(name string) (Evaluate, error) {
	evaluationsMu.RLock()
	defer evaluationsMu.RUnlock()

	fn, ok := evaluations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluation, name)
	}
	return fn, nil
}

// Evaluations lists the registered evaluation names in sorted order.
func Evaluations() []string {
	evaluationsMu.RLock()
	defer evaluationsMu.RUnlock()

	names := make([]string, 0, len(evaluations))
	for name := range evaluations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
