package grid

import "fmt"

// Wall is the cell cost of an impassable cell.
const Wall = -1.0

// Map is what a pathfinder needs from a grid: adjacency and the cost to enter a cell.
type Map interface {
	Neighbors(pos Position) []Position
	CellCost(pos Position) float64
}

// Bounded maps can tell whether a position is inside them and can be entered.
type Bounded interface {
	InBounds(pos Position) bool
	Passable(pos Position) bool
}

// Grid is a rectangular cost map with a start and goal cell.
// Costs are stored row-major, Wall marks blocked cells.
type Grid struct {
	rows   int
	cols   int
	costs  []float64
	start  Position
	goal   Position
	marked map[Position]bool
}

// New returns a rows x cols grid where every cell costs 1.
func New(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("invalid grid dimensions %dx%d", rows, cols))
	}
	g := &Grid{
		rows:   rows,
		cols:   cols,
		costs:  make([]float64, rows*cols),
		marked: make(map[Position]bool),
	}
	for i := range g.costs {
		g.costs[i] = 1
	}
	return g
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) Start() Position { return g.start }
func (g *Grid) Goal() Position  { return g.goal }

func (g *Grid) SetStart(pos Position) { g.start = pos }
func (g *Grid) SetGoal(pos Position)  { g.goal = pos }

func (g *Grid) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Col >= 0 && pos.Col < g.cols
}

func (g *Grid) Passable(pos Position) bool {
	return g.InBounds(pos) && g.costs[g.index(pos)] >= 0
}

// Set changes the cost to enter pos. Use Wall to block it.
func (g *Grid) Set(pos Position, cost float64) {
	if !g.InBounds(pos) {
		panic(fmt.Sprintf("position %v outside %dx%d grid", pos, g.rows, g.cols))
	}
	g.costs[g.index(pos)] = cost
}

// CellCost returns the cost of entering pos, or Wall when it is blocked or outside the grid.
func (g *Grid) CellCost(pos Position) float64 {
	if !g.InBounds(pos) {
		return Wall
	}
	return g.costs[g.index(pos)]
}

// Neighbors returns the passable 4-connected neighbors of pos.
func (g *Grid) Neighbors(pos Position) []Position {
	neighbors := make([]Position, 0, len(Offsets))
	for _, d := range Offsets {
		next := pos.Add(d)
		if g.Passable(next) {
			neighbors = append(neighbors, next)
		}
	}
	return neighbors
}

// MinCost returns the cheapest cost of any passable cell, or 0 when nothing is passable.
func (g *Grid) MinCost() float64 {
	lowest := -1.0
	for _, c := range g.costs {
		if c >= 0 && (lowest < 0 || c < lowest) {
			lowest = c
		}
	}
	if lowest < 0 {
		return 0
	}
	return lowest
}

// MarkPath flags the cells of path for display. Start and goal keep their own symbols.
func (g *Grid) MarkPath(path []Position) {
	for _, pos := range path {
		if pos != g.start && pos != g.goal {
			g.marked[pos] = true
		}
	}
}

// ClearPath removes every path mark.
func (g *Grid) ClearPath() {
	g.marked = make(map[Position]bool)
}

func (g *Grid) Marked(pos Position) bool {
	return g.marked[pos]
}

func (g *Grid) index(pos Position) int {
	return pos.Row*g.cols + pos.Col
}
