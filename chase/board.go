package chase

import (
	"errors"
	"fmt"

	"gridsearch/grid"
)

var (
	ErrEmptyLayout = errors.New("chase layout has no rows")
	ErrBadLayout   = errors.New("invalid chase layout")
)

// Layout symbols
const (
	WallCell  = '%'
	FoodCell  = '.'
	EaterCell = 'P'
	GhostCell = 'G'
	EmptyCell = ' '
)

// Board is the static part of a chase game: the walls. It is shared by every state of a game.
type Board struct {
	rows  int
	cols  int
	walls []bool
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

func (b *Board) InBounds(pos grid.Position) bool {
	return pos.Row >= 0 && pos.Row < b.rows && pos.Col >= 0 && pos.Col < b.cols
}

func (b *Board) Passable(pos grid.Position) bool {
	return b.InBounds(pos) && !b.walls[pos.Row*b.cols+pos.Col]
}

// CellCost makes the board a unit-cost grid.Map, so maze distances come from the pathfinder.
func (b *Board) CellCost(pos grid.Position) float64 {
	if !b.Passable(pos) {
		return grid.Wall
	}
	return 1
}

func (b *Board) Neighbors(pos grid.Position) []grid.Position {
	neighbors := make([]grid.Position, 0, len(moves))
	for _, a := range moves {
		if next := pos.Add(offsets[a]); b.Passable(next) {
			neighbors = append(neighbors, next)
		}
	}
	return neighbors
}

// Parse reads a chase layout: '%' walls, '.' food, 'P' the eater, 'G' ghosts and ' ' empty floor.
// Ghosts are numbered 1.. in reading order.
func Parse(layout string) (*State, error) {
	lines := grid.SplitRows(layout)
	if len(lines) == 0 {
		return nil, ErrEmptyLayout
	}

	cols := 0
	for _, line := range lines {
		cols = max(cols, len(line))
	}
	b := &Board{rows: len(lines), cols: cols, walls: make([]bool, len(lines)*cols)}
	s := &State{board: b, food: make(map[grid.Position]struct{})}

	eaters := 0
	for r, line := range lines {
		for c := 0; c < cols; c++ {
			pos := grid.Position{Row: r, Col: c}
			ch := byte(EmptyCell) // short rows are padded with floor
			if c < len(line) {
				ch = line[c]
			}
			switch ch {
			case WallCell:
				b.walls[r*cols+c] = true
			case FoodCell:
				s.food[pos] = struct{}{}
			case EaterCell:
				s.eater = pos
				eaters++
			case GhostCell:
				s.ghosts = append(s.ghosts, pos)
			case EmptyCell:
			default:
				return nil, fmt.Errorf("%w: unknown cell %q at %v", ErrBadLayout, ch, pos)
			}
		}
	}
	if eaters != 1 {
		return nil, fmt.Errorf("%w: found %d eaters, want 1", ErrBadLayout, eaters)
	}
	if len(s.food) == 0 {
		return nil, fmt.Errorf("%w: no food", ErrBadLayout)
	}
	return s, nil
}
