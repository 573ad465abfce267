package grid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("parsing costs, walls and endpoints", func(t *testing.T) {
		g, err := Parse(`
S.3
#2G
`)

		require.NoError(t, err)
		require.Equal(t, 2, g.Rows())
		require.Equal(t, 3, g.Cols())
		require.Equal(t, Position{Row: 0, Col: 0}, g.Start())
		require.Equal(t, Position{Row: 1, Col: 2}, g.Goal())
		require.Equal(t, 3.0, g.CellCost(Position{Row: 0, Col: 2}), "Digits should be cell costs")
		require.Equal(t, 1.0, g.CellCost(Position{Row: 0, Col: 1}), "Open cells should cost 1")
		require.Equal(t, 1.0, g.CellCost(g.Start()), "Start should cost 1")
		require.False(t, g.Passable(Position{Row: 1, Col: 0}), "Walls should be impassable")
	})

	t.Run("rejecting ragged rows", func(t *testing.T) {
		_, err := Parse("S..\n.G")

		require.ErrorIs(t, err, ErrRaggedLayout)
	})

	t.Run("rejecting unknown cells", func(t *testing.T) {
		_, err := Parse("S?G")

		require.ErrorIs(t, err, ErrBadCell)
	})

	t.Run("rejecting missing goal", func(t *testing.T) {
		_, err := Parse("S..")

		require.ErrorIs(t, err, ErrMissingEnds)
	})

	t.Run("rejecting empty layout", func(t *testing.T) {
		_, err := Parse("\n\n")

		require.ErrorIs(t, err, ErrEmptyLayout)
	})
}

func TestNeighbors(t *testing.T) {
	g, err := Parse(`
S.#
...
..G
`)
	require.NoError(t, err)

	t.Run("corner cell", func(t *testing.T) {
		got := g.Neighbors(Position{Row: 0, Col: 0})

		require.Equal(t, []Position{{Row: 1, Col: 0}, {Row: 0, Col: 1}}, got,
			"Should list in-bounds neighbors in up, down, left, right order")
	})

	t.Run("skipping walls", func(t *testing.T) {
		got := g.Neighbors(Position{Row: 0, Col: 1})

		require.NotContains(t, got, Position{Row: 0, Col: 2}, "Walls should not be neighbors")
		require.Len(t, got, 2)
	})

	t.Run("center cell", func(t *testing.T) {
		got := g.Neighbors(Position{Row: 1, Col: 1})

		require.Len(t, got, 4)
	})
}

func TestMinCost(t *testing.T) {
	g := New(2, 2)
	g.Set(Position{Row: 0, Col: 1}, 0.5)
	g.Set(Position{Row: 1, Col: 1}, Wall)

	require.Equal(t, 0.5, g.MinCost(), "Walls should be ignored")
}

func TestRender(t *testing.T) {
	g, err := Parse(`
S..
#2.
..G
`)
	require.NoError(t, err)

	g.MarkPath([]Position{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}})

	var b strings.Builder
	require.NoError(t, g.Render(&b))
	require.Equal(t, "S**\n#2*\n..G\n", b.String(), "Path cells should render as '*' except the goal")

	g.ClearPath()
	require.Equal(t, "S..\n#2.\n..G\n", g.String())
}

func TestHeuristics(t *testing.T) {
	a := Position{Row: 0, Col: 0}
	b := Position{Row: 3, Col: 4}

	require.InDelta(t, 5.0, Euclidean(a, b), 1e-9)
	require.Equal(t, 7.0, Manhattan(a, b))
	require.LessOrEqual(t, Euclidean(a, b), Manhattan(a, b), "Euclidean should never exceed Manhattan")
}
