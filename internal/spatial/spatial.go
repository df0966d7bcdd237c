package spatial

import (
	"slices"

	"sneaky/internal/action"
	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/geo"
)

// Cell is the occupancy of one grid tile. Solid and Opaque are kept equal to
// SolidCount > 0 and OpaqueCount > 0.
type Cell struct {
	Entities    []ecs.EntityID `json:"entities,omitempty"`
	Solid       bool           `json:"solid,omitempty"`
	SolidCount  int            `json:"solid_count,omitempty"`
	Opaque      bool           `json:"opaque,omitempty"`
	OpaqueCount int            `json:"opaque_count,omitempty"`
}

// Has reports whether id is in the cell.
func (c *Cell) Has(id ecs.EntityID) bool {
	_, ok := slices.BinarySearch(c.Entities, id)
	return ok
}

func (c *Cell) add(id ecs.EntityID, flags *component.Flags) {
	i, found := slices.BinarySearch(c.Entities, id)
	if found {
		return
	}
	c.Entities = slices.Insert(c.Entities, i, id)
	if flags == nil {
		return
	}
	if flags.Solid {
		c.SolidCount++
		c.Solid = true
	}
	if flags.BlockSight {
		c.OpaqueCount++
		c.Opaque = true
	}
}

func (c *Cell) remove(id ecs.EntityID, flags *component.Flags) {
	i, found := slices.BinarySearch(c.Entities, id)
	if !found {
		return
	}
	c.Entities = slices.Delete(c.Entities, i, i+1)
	if len(c.Entities) == 0 {
		c.Entities = nil
	}
	if flags == nil {
		return
	}
	if flags.Solid {
		c.reduceSolid()
	}
	if flags.BlockSight {
		c.reduceOpaque()
	}
}

func (c *Cell) reduceSolid() {
	c.SolidCount = max(0, c.SolidCount-1)
	c.Solid = c.SolidCount > 0
}

func (c *Cell) reduceOpaque() {
	c.OpaqueCount = max(0, c.OpaqueCount-1)
	c.Opaque = c.OpaqueCount > 0
}

// Hit is an entity found by a proximity query.
type Hit struct {
	Pos    geo.Point
	Entity ecs.EntityID
}

// Table is the spatial index: a dense grid of cells, row-major.
type Table struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []Cell `json:"cells"`
}

// New creates an empty index for a w×h level.
func New(w, h int) *Table {
	return &Table{Width: w, Height: h, Cells: make([]Cell, w*h)}
}

func (t *Table) index(p geo.Point) (int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= t.Width || p.Y >= t.Height {
		return 0, false
	}
	return p.Y*t.Width + p.X, true
}

// Get returns the cell at p, or nil when p is off the grid.
func (t *Table) Get(p geo.Point) *Cell {
	i, ok := t.index(p)
	if !ok {
		return nil
	}
	return &t.Cells[i]
}

// IsSolid reports whether something solid stands at p.
func (t *Table) IsSolid(p geo.Point) bool {
	c := t.Get(p)
	return c != nil && c.Solid
}

// IsOpaque reports whether something at p blocks sight.
func (t *Table) IsOpaque(p geo.Point) bool {
	c := t.Get(p)
	return c != nil && c.Opaque
}

// Reset rebuilds every cell from the registry's positioned, live entities.
func (t *Table) Reset(reg *component.Registry) {
	for i := range t.Cells {
		t.Cells[i] = Cell{}
	}
	for id, pos := range reg.Position.All() {
		if !reg.Alive(id) {
			continue
		}
		t.addAt(pos.Coord, id, reg)
	}
}

func (t *Table) addAt(p geo.Point, id ecs.EntityID, reg *component.Registry) {
	if c := t.Get(p); c != nil {
		flags, _ := reg.Flags.Get(id)
		c.add(id, flags)
	}
}

func (t *Table) removeAt(p geo.Point, id ecs.EntityID, reg *component.Registry) {
	if c := t.Get(p); c != nil {
		flags, _ := reg.Flags.Get(id)
		c.remove(id, flags)
	}
}

// Update applies the occupancy change of a committed action. It must run
// before the action's effect is applied so the registry still holds the
// pre-move state.
func (t *Table) Update(a action.Action, reg *component.Registry) {
	switch cmd := a.Command.(type) {
	case action.WalkDirection:
		from, ok := reg.PositionOf(a.Actor)
		if !ok {
			return
		}
		t.removeAt(from, a.Actor, reg)
		t.addAt(from.Add(cmd.Dir), a.Actor, reg)
	case action.KillEntity:
		if p, ok := reg.PositionOf(a.Actor); ok {
			t.removeAt(p, a.Actor, reg)
		}
	case action.OpenDoor:
		p, ok := reg.PositionOf(cmd.Door)
		c := t.Get(p)
		if !ok || c == nil {
			return
		}
		// only a door that still blocks holds counts to give back
		if f, ok := reg.Flags.Get(cmd.Door); ok {
			if f.Solid {
				c.reduceSolid()
			}
			if f.BlockSight {
				c.reduceOpaque()
			}
		}
	case action.DropItem:
		if p, ok := reg.PositionOf(a.Actor); ok {
			t.addAt(p, cmd.Item, reg)
		}
	case action.PickUpItem:
		if p, ok := reg.PositionOf(a.Actor); ok {
			t.removeAt(p, cmd.Item, reg)
		}
	}
}

// InCircle returns every entity whose cell lies within Euclidean distance
// radius of center, scanning columns left to right.
func (t *Table) InCircle(center geo.Point, radius int) []Hit {
	var hits []Hit
	r2 := radius * radius
	for x := max(0, center.X-radius); x < min(t.Width, center.X+radius+1); x++ {
		for y := max(0, center.Y-radius); y < min(t.Height, center.Y+radius+1); y++ {
			p := geo.Pt(x, y)
			if geo.DistanceSquared(center, p) > r2 {
				continue
			}
			for _, id := range t.Cells[y*t.Width+x].Entities {
				hits = append(hits, Hit{Pos: p, Entity: id})
			}
		}
	}
	return hits
}

// ByProximity returns InCircle sorted by tile distance from center. Equal
// distances keep scan order.
func (t *Table) ByProximity(center geo.Point, radius int) []Hit {
	hits := t.InCircle(center, radius)
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return geo.TileDistance(center, a.Pos) - geo.TileDistance(center, b.Pos)
	})
	return hits
}

// Closest returns the nearest entity to center. With excludeSelf the first
// hit is skipped, on the assumption that it is the entity standing at center.
func (t *Table) Closest(center geo.Point, radius int, excludeSelf bool) (Hit, bool) {
	hits := t.ByProximity(center, radius)
	idx := 0
	if excludeSelf {
		idx = 1
	}
	if len(hits) <= idx {
		return Hit{}, false
	}
	return hits[idx], true
}
