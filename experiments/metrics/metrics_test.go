package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gridsearch/game"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCollector(t *testing.T) {
	t.Run("counting a search", func(t *testing.T) {
		c := NewCollector()
		c.Start("alphabeta")
		c.AddNode()
		c.AddLeaf()
		c.AddLeaf()

		m := c.Complete(3)

		require.Equal(t, "alphabeta", m.Algorithm)
		require.Equal(t, 3, m.Depth)
		require.Equal(t, 1, m.Nodes)
		require.Equal(t, 2, m.Leaves)
	})

	t.Run("start resets the counts", func(t *testing.T) {
		c := NewCollector()
		c.Start("minimax")
		c.AddLeaf()
		c.Start("minimax")

		require.Equal(t, 0, c.Complete(1).Leaves)
	})

	t.Run("dummy collector counts nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("minimax")
		c.AddNode()

		require.Equal(t, SearchMetric{Depth: 2}, c.Complete(2))
	})
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "variants")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())
	require.Equal(t, filepath.Join(root, "variants"), filepath.Dir(w.Dir()))

	t.Run("agent configs", func(t *testing.T) {
		err := w.WriteAgentConfigs([]AgentConfig{{ID: 1, Algorithm: "alphabeta", Depth: 3, Evaluation: "score", Timeout: time.Second}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Equal(t, [][]string{
			{"id", "algorithm", "depth", "evaluation", "timeout"},
			{"1", "alphabeta", "3", "score", "1s"},
		}, rows)
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			ID: 1, Agent: 2, Seed: 7,
			GameMetric: GameMetric{Scenario: "small", Outcome: "win", Score: 518, StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, Turns: 9},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "2", "small", "7", "win", "518", "9", "2024-05-01T12:00:00Z", "2024-05-01T12:00:01Z", "1s"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{{
			Game: 1,
			MoveMetric: MoveMetric{Step: 4, Agent: 0, Action: game.Action("East"), Score: -2.5,
				SearchMetric: SearchMetric{Algorithm: "expectimax", Depth: 2, Duration: time.Millisecond, Nodes: 10, Leaves: 30, Cutoff: true, Value: 14.25}},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Equal(t, []string{"1", "4", "0", "East", "-2.5", "14.25", "expectimax", "2", "1ms", "10", "30", "true"}, rows[1])
	})
}
