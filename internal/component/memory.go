package component

import (
	"slices"

	"sneaky/internal/geo"
)

// MapMemory is what an entity has seen of the current level.
type MapMemory struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Radius   int    `json:"radius"`
	Explored []bool `json:"explored"`
	Visible  []bool `json:"visible"`
}

// NewMapMemory creates an empty memory for a w×h level with the given sight radius.
func NewMapMemory(w, h, radius int) MapMemory {
	return MapMemory{
		Width:    w,
		Height:   h,
		Radius:   radius,
		Explored: make([]bool, w*h),
		Visible:  make([]bool, w*h),
	}
}

func (m *MapMemory) index(p geo.Point) (int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= m.Width || p.Y >= m.Height {
		return 0, false
	}
	return p.Y*m.Width + p.X, true
}

func (m *MapMemory) IsVisible(p geo.Point) bool {
	i, ok := m.index(p)
	return ok && m.Visible[i]
}

func (m *MapMemory) IsExplored(p geo.Point) bool {
	i, ok := m.index(p)
	return ok && m.Explored[i]
}

// See marks p visible and explored.
func (m *MapMemory) See(p geo.Point) {
	if i, ok := m.index(p); ok {
		m.Visible[i] = true
		m.Explored[i] = true
	}
}

// ClearVisible forgets the current view but keeps explored tiles.
func (m *MapMemory) ClearVisible() {
	clear(m.Visible)
}

func (m MapMemory) clone() MapMemory {
	m.Explored = slices.Clone(m.Explored)
	m.Visible = slices.Clone(m.Visible)
	return m
}
