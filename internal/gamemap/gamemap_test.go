package gamemap

import (
	"encoding/json"
	"testing"

	"sneaky/internal/geo"
)

func TestInBounds(t *testing.T) {
	m := New(10, 8)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 7, true},
		{-1, 0, false},
		{10, 0, false},
		{0, 8, false},
	}
	for _, c := range cases {
		got := m.InBounds(geo.Pt(c.x, c.y))
		if got != c.want {
			t.Errorf("InBounds(%d,%d)=%v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestIsFloor(t *testing.T) {
	m := New(5, 5)
	// all walls initially
	if m.IsFloor(geo.Pt(2, 2)) {
		t.Error("wall tile should not be floor")
	}
	m.Set(geo.Pt(2, 2), MakeFloor())
	if !m.IsFloor(geo.Pt(2, 2)) {
		t.Error("floor tile should be floor")
	}
	if m.IsFloor(geo.NoPosition) {
		t.Error("out-of-bounds should not be floor")
	}
}

func TestRectCenter(t *testing.T) {
	r := Rect{X1: 0, Y1: 0, X2: 4, Y2: 4}
	if c := r.Center(); c != geo.Pt(2, 2) {
		t.Errorf("expected center (2,2), got %v", c)
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{0, 0, 4, 4}
	b := Rect{3, 3, 7, 7}
	c := Rect{5, 5, 9, 9}
	if !a.Intersects(b) {
		t.Error("a and b should intersect")
	}
	if a.Intersects(c) {
		t.Error("a and c should not intersect")
	}
	if !a.Contains(geo.Pt(4, 0)) || a.Contains(geo.Pt(5, 0)) {
		t.Error("Contains should be inclusive of edges only")
	}
}

func TestIsTransparent(t *testing.T) {
	cases := []struct {
		name string
		tile Tile
		x, y int
		want bool
	}{
		{"wall is opaque", MakeWall(), 2, 2, false},
		{"floor is transparent", MakeFloor(), 2, 2, true},
		{"out-of-bounds x=-1", MakeWall(), -1, 0, false},
		{"out-of-bounds y=-1", MakeWall(), 0, -1, false},
		{"out-of-bounds beyond width", MakeWall(), 10, 2, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(5, 5)
			p := geo.Pt(tc.x, tc.y)
			if m.InBounds(p) {
				m.Set(p, tc.tile)
			}
			if got := m.IsTransparent(p); got != tc.want {
				t.Errorf("IsTransparent(%d,%d) = %v; want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestJSONKeepsTilesAndRooms(t *testing.T) {
	m := New(4, 3)
	m.Set(geo.Pt(1, 1), MakeFloor())
	m.Set(geo.Pt(2, 1), MakeFloor())
	m.Rooms = []Rect{{1, 1, 2, 1}}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	var got GameMap
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Width != 4 || got.Height != 3 {
		t.Fatalf("expected 4x3, got %dx%d", got.Width, got.Height)
	}
	for y := range 3 {
		for x := range 4 {
			p := geo.Pt(x, y)
			if got.IsFloor(p) != m.IsFloor(p) {
				t.Errorf("tile %v: floor=%v, want %v", p, got.IsFloor(p), m.IsFloor(p))
			}
		}
	}
	if len(got.Rooms) != 1 || got.Rooms[0] != m.Rooms[0] {
		t.Errorf("rooms not restored: %+v", got.Rooms)
	}
}
