package searcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gridsearch/game"
)

// twoPlyTree scores 0 after one ply and is worth 9 (via a0) after two
func twoPlyTree() *mockState {
	return tree(2, branch(0,
		branch(1, branch(0, values(1, 1), values(1, 9))),
		branch(1, branch(0, values(1, 4), values(1, 5))),
	))
}

// cancelAfter returns an evaluation that cancels ctx on its n-th call
func cancelAfter(n int, cancel context.CancelFunc) game.Evaluate {
	calls := 0
	return func(s game.State) float64 {
		calls++
		if calls == n {
			cancel()
		}
		return s.Score()
	}
}

func TestDeepen(t *testing.T) {
	t.Run("reaching the configured depth", func(t *testing.T) {
		s := mustSearcher(t, NewMinimax, 2)

		got, err := s.Deepen(context.Background(), twoPlyTree())

		require.NoError(t, err)
		require.Equal(t, 2, got.Depth)
		require.Equal(t, 9.0, got.Value)
		require.Equal(t, game.Action("a0"), got.Action)
	})

	t.Run("stopping once every line ends the game", func(t *testing.T) {
		state := tree(2, branch(0,
			branch(1, winLeaf(10), winLeaf(20)),
			branch(1, winLeaf(30)),
		))
		s := mustSearcher(t, NewAlphaBeta, 5)

		got, err := s.Deepen(context.Background(), state)

		require.NoError(t, err)
		require.Equal(t, 1, got.Depth, "A deeper pass cannot change a tree without depth-bound leaves")
		require.False(t, got.Metrics.Cutoff)
		require.Equal(t, 30.0, got.Value)
		require.Equal(t, game.Action("a1"), got.Action)
	})

	t.Run("keeping the last completed depth on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		// The depth 1 pass evaluates two leaves; the third call belongs to depth 2
		s, err := NewMinimax(Config{Depth: 2, Evaluate: cancelAfter(3, cancel)})
		require.NoError(t, err)

		got, err := s.Deepen(ctx, twoPlyTree())

		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, 1, got.Depth)
		require.Equal(t, 0.0, got.Value)
		require.Equal(t, game.Action("a0"), got.Action)
	})

	t.Run("partial first pass", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		s, err := NewMinimax(Config{Depth: 3, Evaluate: cancelAfter(1, cancel)})
		require.NoError(t, err)

		got, err := s.Deepen(ctx, textbookTree())

		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, 1, got.Depth)
		require.Equal(t, game.Action("a0"), got.Action, "The partial pass still names an action")
	})

	t.Run("depth 0", func(t *testing.T) {
		state := twoPlyTree()
		state.score = 3
		s := mustSearcher(t, NewExpectimax, 0)

		got, err := s.Deepen(context.Background(), state)

		require.NoError(t, err)
		require.Equal(t, 0, got.Depth)
		require.Equal(t, 3.0, got.Value)
		require.Equal(t, game.NoAction, got.Action)
	})
}
