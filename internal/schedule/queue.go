package schedule

import "sneaky/internal/ecs"

// Entry is one pending turn.
type Entry struct {
	Entity   ecs.EntityID `json:"entity"`
	Time     int          `json:"time"`
	Sequence int          `json:"sequence"`
}

func (e Entry) before(o Entry) bool {
	if e.Time != o.Time {
		return e.Time < o.Time
	}
	return e.Sequence < o.Sequence
}

// queue implements heap.Interface as a min-heap on (Time, Sequence).
type queue []Entry

func (q queue) Len() int           { return len(q) }
func (q queue) Less(i, j int) bool { return q[i].before(q[j]) }
func (q queue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(Entry)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}
