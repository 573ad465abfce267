package metrics

import (
	"sync/atomic"
	"time"

	"gridsearch/game"
)

// SearchMetric describes the work done for one decision.
type SearchMetric struct {
	Algorithm string
	Depth     int // deepest completed depth
	Duration  time.Duration
	Nodes     int // interior nodes expanded
	Leaves    int // states handed to the evaluation function
	Cutoff    bool
	Value     float64 // root value the search settled on
}

type MoveMetric struct {
	Step   int
	Agent  int
	Action game.Action
	Score  float64 // game score before the move
	SearchMetric
}

type GameMetric struct {
	Scenario  string
	Outcome   string
	Score     float64
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Turns     int
}

type Collector interface {
	Start(algorithm string)
	AddNode()
	AddLeaf()
	Complete(depth int) SearchMetric
}

type collector struct {
	algorithm string
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(algorithm string) {
	m.algorithm = algorithm
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.leaves.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) Complete(depth int) SearchMetric {
	return SearchMetric{
		Algorithm: m.algorithm,
		Depth:     depth,
		Duration:  time.Since(m.startTime),
		Nodes:     int(m.nodes.Load()),
		Leaves:    int(m.leaves.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string)          {}
func (m *dummyCollector) AddNode()                        {}
func (m *dummyCollector) AddLeaf()                        {}
func (m *dummyCollector) Complete(depth int) SearchMetric { return SearchMetric{Depth: depth} }
