package pathfinder

import (
	"container/heap"

	"gridsearch/grid"
)

type entry struct {
	priority float64
	seq      uint64 // insertion order, breaks priority ties
	pos      grid.Position
}

type queue []entry

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) {
	*q = append(*q, x.(entry))
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Frontier is a min-priority queue of grid positions.
// Among equal priorities the earliest inserted entry is removed first, which is the
// entry a front-to-back scan for the minimum would find.
// Duplicate positions are allowed; stale entries are filtered by the caller's cost map.
type Frontier struct {
	q   queue
	seq uint64
}

func NewFrontier() *Frontier {
	return &Frontier{}
}

func (f *Frontier) Insert(priority float64, pos grid.Position) {
	heap.Push(&f.q, entry{priority: priority, seq: f.seq, pos: pos})
	f.seq++
}

// Remove pops the lowest priority position. ok is false when the frontier is empty.
func (f *Frontier) Remove() (pos grid.Position, ok bool) {
	if f.q.Len() == 0 {
		return grid.Position{}, false
	}
	e := heap.Pop(&f.q).(entry)
	return e.pos, true
}

func (f *Frontier) Len() int    { return f.q.Len() }
func (f *Frontier) Empty() bool { return f.q.Len() == 0 }
