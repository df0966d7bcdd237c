package generate

import (
	"math/rand/v2"
	"testing"

	"sneaky/internal/geo"
)

func testConfig(seed uint64) *Config {
	return &Config{
		Width:          60,
		Height:         30,
		MinLeafSize:    8,
		MaxLeafSize:    20,
		MinRoomSize:    4,
		RoomPadding:    1,
		Corridor:       CorridorLShaped,
		Level:          1,
		CreatureBudget: 6,
		ItemCount:      3,
		Rand:           rand.New(rand.NewPCG(seed, 0)),
	}
}

// TestGenerateAllRoomsConnected verifies that every floor tile is reachable
// from the start via flood fill.
func TestGenerateAllRoomsConnected(t *testing.T) {
	for seed := range uint64(10) {
		l := Generate(testConfig(seed))
		m := l.Map
		if !m.IsFloor(l.Start) {
			t.Fatalf("seed=%d: start %v is not floor", seed, l.Start)
		}

		visited := map[geo.Point]bool{l.Start: true}
		queue := []geo.Point{l.Start}
		dirs := []geo.Point{geo.Pt(1, 0), geo.Pt(-1, 0), geo.Pt(0, 1), geo.Pt(0, -1)}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, d := range dirs {
				n := cur.Add(d)
				if visited[n] || !m.IsFloor(n) {
					continue
				}
				visited[n] = true
				queue = append(queue, n)
			}
		}

		for y := range m.Height {
			for x := range m.Width {
				if p := geo.Pt(x, y); m.IsFloor(p) && !visited[p] {
					t.Errorf("seed=%d: unreachable floor tile at %v", seed, p)
				}
			}
		}
	}
}

func TestGenerateRoomsDoNotOverlap(t *testing.T) {
	for seed := range uint64(10) {
		rooms := Generate(testConfig(seed)).Map.Rooms
		for i := 0; i < len(rooms); i++ {
			for j := i + 1; j < len(rooms); j++ {
				if rooms[i].Intersects(rooms[j]) {
					t.Errorf("seed=%d: room %d %v overlaps room %d %v", seed, i, rooms[i], j, rooms[j])
				}
			}
		}
	}
}

func TestGenerateKeepsWallBorder(t *testing.T) {
	for seed := range uint64(10) {
		m := Generate(testConfig(seed)).Map
		for x := range m.Width {
			if m.IsFloor(geo.Pt(x, 0)) || m.IsFloor(geo.Pt(x, m.Height-1)) {
				t.Errorf("seed=%d: floor on the top or bottom edge at x=%d", seed, x)
			}
		}
		for y := range m.Height {
			if m.IsFloor(geo.Pt(0, y)) || m.IsFloor(geo.Pt(m.Width-1, y)) {
				t.Errorf("seed=%d: floor on the left or right edge at y=%d", seed, y)
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(testConfig(5))
	b := Generate(testConfig(5))
	if len(a.Map.Rooms) != len(b.Map.Rooms) || a.Start != b.Start || a.Exit != b.Exit {
		t.Fatalf("same seed gave different layouts: %v/%v vs %v/%v", a.Start, a.Exit, b.Start, b.Exit)
	}
	for i := range a.Map.Rooms {
		if a.Map.Rooms[i] != b.Map.Rooms[i] {
			t.Errorf("room %d differs: %v vs %v", i, a.Map.Rooms[i], b.Map.Rooms[i])
		}
	}
}

func TestDoorsSitInPassages(t *testing.T) {
	for seed := range uint64(10) {
		l := Generate(testConfig(seed))
		for _, d := range l.Doors {
			if !l.Map.IsFloor(d) {
				t.Errorf("seed=%d: door %v on a wall", seed, d)
			}
			if inRoom(l.Map, d) {
				t.Errorf("seed=%d: door %v inside a room", seed, d)
			}
		}
	}
}
