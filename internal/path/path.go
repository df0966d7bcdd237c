package path

import (
	"container/heap"

	"sneaky/internal/geo"
)

// Occupancy reports cells blocked by entities.
type Occupancy interface {
	IsSolid(p geo.Point) bool
}

// Terrain reports cells a creature can stand on.
type Terrain interface {
	InBounds(p geo.Point) bool
	IsFloor(p geo.Point) bool
}

type node struct {
	priority int
	seq      int
	pos      geo.Point
}

type frontier []node

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(node)) }
func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	*f = old[:len(old)-1]
	return n
}

// Find searches for a route from start to goal, expanding the cell closest
// to goal (squared Euclidean) first. The goal may be occupied: reaching its
// neighbourhood is enough. The returned route runs goal first and excludes
// start, so callers pop the next step from the end. Find returns nil when
// there is no route, when start equals goal, or when either is geo.NoPosition.
// The squared distance overestimates the remaining cost, so it is not an
// admissible A* heuristic: routes are found quickly but may not be shortest.
func Find(start, goal geo.Point, occ Occupancy, terrain Terrain) []geo.Point {
	if start == geo.NoPosition || goal == geo.NoPosition || start == goal {
		return nil
	}
	canWalk := func(p geo.Point) bool {
		return terrain.InBounds(p) && terrain.IsFloor(p) && !occ.IsSolid(p)
	}

	open := &frontier{{priority: 0, pos: start}}
	seq := 1
	from := map[geo.Point]geo.Point{start: start}
	cost := map[geo.Point]int{start: 0}

	found := false
	for open.Len() > 0 && !found {
		cur := heap.Pop(open).(node).pos
		for _, n := range cur.Neighbours() {
			if n == goal {
				from[n] = cur
				found = true
				break
			}
			if !canWalk(n) {
				continue
			}
			c := cost[cur] + 1
			if old, seen := cost[n]; !seen || c < old {
				cost[n] = c
				from[n] = cur
				heap.Push(open, node{priority: geo.DistanceSquared(n, goal), seq: seq, pos: n})
				seq++
			}
		}
	}
	if !found {
		return nil
	}

	route := []geo.Point{goal}
	for cur := goal; ; {
		prev := from[cur]
		if prev == start {
			break
		}
		route = append(route, prev)
		cur = prev
	}
	return route
}
