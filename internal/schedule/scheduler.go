package schedule

import (
	"container/heap"
	"slices"

	"sneaky/internal/ecs"
)

// Controllers tells the scheduler which entities may act.
type Controllers interface {
	Has(id ecs.EntityID) bool
}

// Scheduler decides whose turn it is. Entities are ordered by the time they
// next act; ties go to whoever was scheduled first.
type Scheduler struct {
	time     int
	sequence int
	current  ecs.EntityID
	pending  queue
}

// New creates an idle scheduler at time 0.
func New() *Scheduler {
	return &Scheduler{}
}

// Time is the global clock: the time of the most recently started turn.
func (s *Scheduler) Time() int { return s.time }

// Idle reports whether no entity currently holds the turn.
func (s *Scheduler) Idle() bool { return s.current == ecs.NilEntity }

// Current returns the entity whose turn it is. Calling it while idle is a
// programming error.
func (s *Scheduler) Current() ecs.EntityID {
	if s.current == ecs.NilEntity {
		panic("schedule: Current called while idle")
	}
	return s.current
}

// Schedule queues id to act delay time units from now, provided it has a
// controller. Scheduling the current actor ends its turn either way.
func (s *Scheduler) Schedule(id ecs.EntityID, delay int, ctrl Controllers) {
	if ctrl.Has(id) {
		heap.Push(&s.pending, Entry{Entity: id, Time: s.time + delay, Sequence: s.sequence})
		s.sequence++
	}
	if s.current == id {
		s.current = ecs.NilEntity
	}
}

// Advance starts the next turn if none is in progress. Entries whose entity
// lost its controller since being scheduled are discarded.
func (s *Scheduler) Advance(ctrl Controllers) {
	for s.current == ecs.NilEntity && s.pending.Len() > 0 {
		e := heap.Pop(&s.pending).(Entry)
		if !ctrl.Has(e.Entity) {
			continue
		}
		s.current = e.Entity
		s.time = max(s.time, e.Time)
	}
}

// Pending returns the queued entries in the order they will be popped.
func (s *Scheduler) Pending() []Entry {
	if len(s.pending) == 0 {
		return nil
	}
	out := slices.Clone([]Entry(s.pending))
	slices.SortFunc(out, func(a, b Entry) int {
		if a.before(b) {
			return -1
		}
		if b.before(a) {
			return 1
		}
		return 0
	})
	return out
}

// Snapshot is the persisted form of a Scheduler.
type Snapshot struct {
	Time     int          `json:"time"`
	Sequence int          `json:"sequence"`
	Current  ecs.EntityID `json:"current"`
	Pending  []Entry      `json:"pending"`
}

func (s *Scheduler) Snapshot() Snapshot {
	return Snapshot{Time: s.time, Sequence: s.sequence, Current: s.current, Pending: s.Pending()}
}

// Restore builds a scheduler from a snapshot.
func Restore(snap Snapshot) *Scheduler {
	s := &Scheduler{
		time:     snap.Time,
		sequence: snap.Sequence,
		current:  snap.Current,
		pending:  queue(slices.Clone(snap.Pending)),
	}
	heap.Init(&s.pending)
	return s
}
