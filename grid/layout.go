package grid

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrEmptyLayout  = errors.New("layout has no rows")
	ErrRaggedLayout = errors.New("layout rows differ in width")
	ErrBadCell      = errors.New("unknown layout cell")
	ErrMissingEnds  = errors.New("layout needs exactly one start and one goal")
)

// Layout symbols
const (
	WallCell  = '#'
	OpenCell  = '.'
	StartCell = 'S'
	GoalCell  = 'G'
	PathCell  = '*'
)

// Parse builds a grid from a text layout, one row per line.
// '#' is a wall, '.' costs 1, digits 1-9 cost their value, 'S' and 'G' mark start and goal and cost 1.
func Parse(layout string) (*Grid, error) {
	lines := SplitRows(layout)
	if len(lines) == 0 {
		return nil, ErrEmptyLayout
	}

	cols := len(lines[0])
	g := New(len(lines), cols)
	starts, goals := 0, 0
	for r, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedLayout, r, len(line), cols)
		}
		for c, ch := range []byte(line) {
			pos := Position{Row: r, Col: c}
			switch {
			case ch == WallCell:
				g.Set(pos, Wall)
			case ch == OpenCell:
				g.Set(pos, 1)
			case ch >= '1' && ch <= '9':
				g.Set(pos, float64(ch-'0'))
			case ch == StartCell:
				g.SetStart(pos)
				starts++
			case ch == GoalCell:
				g.SetGoal(pos)
				goals++
			default:
				return nil, fmt.Errorf("%w %q at %v", ErrBadCell, ch, pos)
			}
		}
	}
	if starts != 1 || goals != 1 {
		return nil, fmt.Errorf("%w: found %d start(s) and %d goal(s)", ErrMissingEnds, starts, goals)
	}
	return g, nil
}

// Render writes the grid back in layout form with marked path cells drawn as '*'.
func (g *Grid) Render(w io.Writer) error {
	_, err := io.WriteString(w, g.String())
	return err
}

func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			b.WriteByte(g.symbol(Position{Row: r, Col: c}))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *Grid) symbol(pos Position) byte {
	switch {
	case pos == g.start:
		return StartCell
	case pos == g.goal:
		return GoalCell
	case g.marked[pos]:
		return PathCell
	}
	cost := g.CellCost(pos)
	switch {
	case cost < 0:
		return WallCell
	case cost == 1:
		return OpenCell
	case cost >= 1 && cost <= 9 && cost == float64(int(cost)):
		return byte('0' + int(cost))
	}
	return '?'
}

// SplitRows splits a text layout into rows, dropping blank leading and trailing lines and trailing whitespace.
func SplitRows(layout string) []string {
	raw := strings.Split(strings.ReplaceAll(layout, "\r\n", "\n"), "\n")
	rows := make([]string, 0, len(raw))
	for _, line := range raw {
		rows = append(rows, strings.TrimRight(line, " \t"))
	}
	for len(rows) > 0 && rows[0] == "" {
		rows = rows[1:]
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return rows
}
