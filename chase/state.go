package chase

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"gridsearch/game"
	"gridsearch/grid"
)

const (
	North game.Action = "North"
	South game.Action = "South"
	East  game.Action = "East"
	West  game.Action = "West"
	Stop  game.Action = "Stop"
)

// Scoring
const (
	TimePenalty = 1
	FoodReward  = 10
	WinReward   = 500
	LosePenalty = 500
)

// moves is the order legal actions are reported in
var moves = []game.Action{North, South, East, West}

var offsets = map[game.Action]grid.Position{
	North: {Row: -1, Col: 0},
	South: {Row: 1, Col: 0},
	East:  {Row: 0, Col: 1},
	West:  {Row: 0, Col: -1},
	Stop:  {Row: 0, Col: 0},
}

// State is one position of a chase game. Agent 0 is the eater, agents 1..N the ghosts.
// States are never modified after creation; Successor returns a copy.
type State struct {
	board  *Board
	eater  grid.Position
	ghosts []grid.Position
	food   map[grid.Position]struct{}
	score  float64
	win    bool
	lose   bool
}

var _ game.State = (*State)(nil)

func (s *State) Board() *Board           { return s.board }
func (s *State) Eater() grid.Position    { return s.eater }
func (s *State) Ghosts() []grid.Position { return slices.Clone(s.ghosts) }
func (s *State) NumAgents() int          { return 1 + len(s.ghosts) }
func (s *State) NumFood() int            { return len(s.food) }
func (s *State) IsWin() bool             { return s.win }
func (s *State) IsLose() bool            { return s.lose }
func (s *State) Score() float64          { return s.score }

func (s *State) HasFood(pos grid.Position) bool {
	_, ok := s.food[pos]
	return ok
}

// Food returns the remaining food in reading order.
func (s *State) Food() []grid.Position {
	food := make([]grid.Position, 0, len(s.food))
	for pos := range s.food {
		food = append(food, pos)
	}
	slices.SortFunc(food, func(a, b grid.Position) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return food
}

// Position returns where agent stands.
func (s *State) Position(agent int) grid.Position {
	s.checkAgent(agent)
	if agent == 0 {
		return s.eater
	}
	return s.ghosts[agent-1]
}

// LegalActions lists the open directions for agent. The eater may always Stop; a ghost
// only stops when it is walled in. Terminal states have no legal actions.
func (s *State) LegalActions(agent int) []game.Action {
	s.checkAgent(agent)
	if s.win || s.lose {
		return nil
	}

	from := s.Position(agent)
	actions := make([]game.Action, 0, len(moves)+1)
	for _, a := range moves {
		if s.board.Passable(from.Add(offsets[a])) {
			actions = append(actions, a)
		}
	}
	if agent == 0 || len(actions) == 0 {
		actions = append(actions, Stop)
	}
	return actions
}

// Successor returns the state after agent takes action. Moving from a terminal state
// or taking an illegal action panics.
func (s *State) Successor(agent int, action game.Action) game.State {
	if s.win || s.lose {
		panic(fmt.Sprintf("agent %d cannot move in a finished game", agent))
	}
	if !slices.Contains(s.LegalActions(agent), action) {
		panic(fmt.Sprintf("illegal action %q for agent %d at %v", action, agent, s.Position(agent)))
	}

	next := s.copy()
	to := s.Position(agent).Add(offsets[action])
	if agent == 0 {
		next.eater = to
		next.score -= TimePenalty
		if _, ok := next.food[to]; ok {
			delete(next.food, to)
			next.score += FoodReward
			if len(next.food) == 0 {
				next.score += WinReward
				next.win = true
			}
		}
	} else {
		next.ghosts[agent-1] = to
	}
	next.checkCollision()
	return next
}

// A win reached on the same move as a collision stands.
func (s *State) checkCollision() {
	if s.win {
		return
	}
	if slices.Contains(s.ghosts, s.eater) {
		s.score -= LosePenalty
		s.lose = true
	}
}

func (s *State) copy() *State {
	return &State{
		board:  s.board,
		eater:  s.eater,
		ghosts: slices.Clone(s.ghosts),
		food:   maps.Clone(s.food),
		score:  s.score,
		win:    s.win,
		lose:   s.lose,
	}
}

func (s *State) checkAgent(agent int) {
	if agent < 0 || agent > len(s.ghosts) {
		panic(fmt.Sprintf("agent %d out of range, game has %d agents", agent, s.NumAgents()))
	}
}

// String draws the state in layout form.
func (s *State) String() string {
	var b strings.Builder
	for r := 0; r < s.board.rows; r++ {
		for c := 0; c < s.board.cols; c++ {
			b.WriteByte(s.symbol(grid.Position{Row: r, Col: c}))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *State) symbol(pos grid.Position) byte {
	switch {
	case slices.Contains(s.ghosts, pos):
		return GhostCell
	case pos == s.eater:
		return EaterCell
	case !s.board.Passable(pos):
		return WallCell
	case s.HasFood(pos):
		return FoodCell
	}
	return EmptyCell
}
