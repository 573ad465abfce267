package game

// Action names a move. Each game defines its own action values.
type Action string

// NoAction is returned where no move applies, such as at leaf states.
const NoAction Action = ""

// Agent 0 is the maximizing agent, every other index is an adversary
const MaxAgent = 0

// State should be immutable - Successor always returns a new state and never changes the receiver.
//
// Games must offer at least one legal action to the agent to move whenever the
// state is neither won nor lost (a "stop" or "pass" action is enough).
type State interface {
	LegalActions(agent int) []Action
	Successor(agent int, action Action) State
	NumAgents() int
	IsWin() bool
	IsLose() bool
	Score() float64
}

// Evaluate scores a state from the maximizing agent's perspective, higher is better.
// It must be defined for every state a search can reach, terminal or not.
type Evaluate func(State) float64
