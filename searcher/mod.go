package searcher

import "math"

// Adversary decides how the replies of a non-maximizing agent combine into the value of its node.
//
// Fold is applied to each reply in action order, starting from Identity; chosen reports
// whether the reply is now the node's preferred action. Finish turns the folded value into
// the node value once all n replies are in.
type Adversary interface {
	Identity() float64
	Fold(running, reply float64) (value float64, chosen bool)
	Finish(running float64, n int) float64
	// Prunable adversaries keep a running value that bounds the node, so alpha-beta cutoffs apply.
	Prunable() bool
}

// Minimizing adversaries pick the reply worst for the maximizing agent.
type Minimizing struct{}

func (Minimizing) Identity() float64 { return math.Inf(1) }

func (Minimizing) Fold(running, reply float64) (float64, bool) {
	if reply < running {
		return reply, true
	}
	return running, false
}

func (Minimizing) Finish(running float64, n int) float64 { return running }
func (Minimizing) Prunable() bool                         { return true }

// Uniform adversaries pick each legal action with equal probability, so the node is worth the mean reply.
type Uniform struct{}

func (Uniform) Identity() float64 { return 0 }

func (Uniform) Fold(running, reply float64) (float64, bool) {
	return running + reply, false
}

func (Uniform) Finish(running float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return running / float64(n)
}

func (Uniform) Prunable() bool { return false }
