package gamemap

import (
	"encoding/json"
	"fmt"

	"sneaky/internal/geo"
)

// Rect is an axis-aligned rectangle used for rooms.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() geo.Point {
	return geo.Pt((r.X1+r.X2)/2, (r.Y1+r.Y2)/2)
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Contains reports whether p lies inside r (inclusive edges).
func (r Rect) Contains(p geo.Point) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// GameMap holds the tile grid and room list for one dungeon level.
type GameMap struct {
	Width, Height int
	Tiles         [][]Tile
	Rooms         []Rect
}

// New creates a GameMap filled with walls.
func New(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &GameMap{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether p is within the map boundaries.
func (m *GameMap) InBounds(p geo.Point) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// At returns a pointer to the tile at p. Panics if out of bounds.
func (m *GameMap) At(p geo.Point) *Tile {
	return &m.Tiles[p.Y][p.X]
}

// Set replaces the tile at p.
func (m *GameMap) Set(p geo.Point, t Tile) {
	m.Tiles[p.Y][p.X] = t
}

// IsFloor returns true when p is in bounds and a floor tile.
func (m *GameMap) IsFloor(p geo.Point) bool {
	if !m.InBounds(p) {
		return false
	}
	return m.Tiles[p.Y][p.X].Walkable
}

// IsTransparent returns true when p is in bounds and transparent.
func (m *GameMap) IsTransparent(p geo.Point) bool {
	if !m.InBounds(p) {
		return false
	}
	return m.Tiles[p.Y][p.X].Transparent
}

type mapJSON struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
	Rooms  []Rect   `json:"rooms"`
}

// MarshalJSON writes the grid as one string per row.
func (m *GameMap) MarshalJSON() ([]byte, error) {
	rows := make([]string, m.Height)
	buf := make([]byte, m.Width)
	for y := range m.Height {
		for x := range m.Width {
			buf[x] = m.Tiles[y][x].glyph()
		}
		rows[y] = string(buf)
	}
	return json.Marshal(mapJSON{Width: m.Width, Height: m.Height, Rows: rows, Rooms: m.Rooms})
}

func (m *GameMap) UnmarshalJSON(data []byte) error {
	var raw mapJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Rows) != raw.Height {
		return fmt.Errorf("map has %d rows, want %d", len(raw.Rows), raw.Height)
	}
	*m = *New(raw.Width, raw.Height)
	m.Rooms = raw.Rooms
	for y, row := range raw.Rows {
		if len(row) != raw.Width {
			return fmt.Errorf("map row %d has width %d, want %d", y, len(row), raw.Width)
		}
		for x := range raw.Width {
			m.Tiles[y][x] = tileFromGlyph(row[x])
		}
	}
	return nil
}
