package searcher

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gridsearch/game"
)

// mockState is an explicit game tree. Interior nodes name the agent expected to move,
// so a search that visits agents out of order panics.
type mockState struct {
	agents   int
	mover    int
	score    float64
	win      bool
	lose     bool
	moves    []game.Action
	children []*mockState
}

func (m *mockState) LegalActions(agent int) []game.Action {
	if len(m.moves) > 0 && agent != m.mover {
		panic(fmt.Sprintf("agent %d asked to move, expected agent %d", agent, m.mover))
	}
	return m.moves
}

func (m *mockState) Successor(agent int, action game.Action) game.State {
	if agent != m.mover {
		panic(fmt.Sprintf("agent %d moved, expected agent %d", agent, m.mover))
	}
	for i, move := range m.moves {
		if move == action {
			return m.children[i]
		}
	}
	panic(fmt.Sprintf("illegal action %q", action))
}

func (m *mockState) NumAgents() int { return m.agents }
func (m *mockState) IsWin() bool    { return m.win }
func (m *mockState) IsLose() bool   { return m.lose }
func (m *mockState) Score() float64 { return m.score }

func leaf(score float64) *mockState {
	return &mockState{score: score}
}

func winLeaf(score float64) *mockState {
	return &mockState{score: score, win: true}
}

// branch names its actions a0, a1, ... in child order
func branch(mover int, children ...*mockState) *mockState {
	moves := make([]game.Action, len(children))
	for i := range children {
		moves[i] = game.Action(fmt.Sprintf("a%d", i))
	}
	return &mockState{mover: mover, moves: moves, children: children}
}

// tree sets the agent count on every node below root
func tree(agents int, root *mockState) *mockState {
	root.agents = agents
	for _, child := range root.children {
		tree(agents, child)
	}
	return root
}

// values builds a node for mover whose children are leaves with the given scores
func values(mover int, scores ...float64) *mockState {
	children := make([]*mockState, len(scores))
	for i, s := range scores {
		children[i] = leaf(s)
	}
	return branch(mover, children...)
}

// randomTree builds a complete tree of the given depth in plies. Interior nodes may
// randomly be wins or losses; adversaries get at most maxReplies actions.
func randomTree(r *rand.Rand, agents, depth, maxReplies int) *mockState {
	var build func(level int) *mockState
	build = func(level int) *mockState {
		if level == depth*agents {
			return leaf(float64(r.Intn(41) - 20))
		}
		if level > 0 && r.Intn(10) == 0 {
			s := leaf(float64(r.Intn(41) - 20))
			s.win = r.Intn(2) == 0
			s.lose = !s.win
			return s
		}
		mover := level % agents
		width := 1 + r.Intn(3)
		if mover != game.MaxAgent {
			width = 1 + r.Intn(maxReplies)
		}
		children := make([]*mockState, width)
		for i := range children {
			children[i] = build(level + 1)
		}
		return branch(mover, children...)
	}
	return tree(agents, build(0))
}
