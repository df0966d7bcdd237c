package system

import (
	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/geo"
	"sneaky/internal/world"
)

// octant transform matrices: a (col, row) sweep offset maps to the world via
//
//	x = ox + col*xx + row*xy
//	y = oy + col*yx + row*yy
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// shadowcaster lights the cells of one MapMemory around origin.
type shadowcaster struct {
	mem    *component.MapMemory
	origin geo.Point
	radius int
	opaque func(geo.Point) bool
	inside func(geo.Point) bool
}

// UpdateFOV recomputes what id sees from its position, using recursive
// shadowcasting over walls and opaque entities. Entities without a MapMemory
// or Position are left alone.
func UpdateFOV(s *world.State, id ecs.EntityID) {
	mem, ok := s.Registry.MapMemory.Get(id)
	if !ok {
		return
	}
	pos, ok := s.Registry.PositionOf(id)
	if !ok {
		return
	}
	radius := mem.Radius
	if radius <= 0 {
		radius = s.Settings.SightRadius
	}
	Shadowcast(mem, pos, radius, s.IsOpaque, s.Map.InBounds)
}

// Shadowcast clears mem's visible set and marks every cell visible from origin.
func Shadowcast(mem *component.MapMemory, origin geo.Point, radius int, opaque, inside func(geo.Point) bool) {
	mem.ClearVisible()
	if !inside(origin) {
		return
	}
	mem.See(origin)
	sc := shadowcaster{mem: mem, origin: origin, radius: radius, opaque: opaque, inside: inside}
	for _, m := range octants {
		sc.cast(1, 1.0, 0.0, m)
	}
}

func (sc *shadowcaster) cast(row int, start, end float64, m [4]int) {
	if start < end {
		return
	}
	radiusSq := float64(sc.radius * sc.radius)
	nextStart := start

	for j := row; j <= sc.radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			p := geo.Pt(sc.origin.X+dx*m[0]+dy*m[1], sc.origin.Y+dx*m[2]+dy*m[3])
			left := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			right := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < right {
				continue
			}
			if end > left {
				break
			}

			if float64(dx*dx+dy*dy) < radiusSq && sc.inside(p) {
				sc.mem.See(p)
			}

			wall := !sc.inside(p) || sc.opaque(p)
			switch {
			case blocked && wall:
				nextStart = right
			case blocked:
				blocked = false
				start = nextStart
			case wall && j < sc.radius:
				blocked = true
				sc.cast(j+1, start, left, m)
				nextStart = right
			}
		}
		if blocked {
			break
		}
	}
}
