package generate

import (
	"sneaky/internal/gamemap"
	"sneaky/internal/geo"
)

// carveCorridor digs a tunnel between a and b in the configured style.
func carveCorridor(m *gamemap.GameMap, a, b geo.Point, cfg *Config) {
	switch cfg.Corridor {
	case CorridorZShaped:
		carveZShaped(m, a, b)
	case CorridorStraight:
		carveH(m, a.X, b.X, a.Y)
		carveV(m, a.Y, b.Y, b.X)
	default:
		if cfg.Rand.IntN(2) == 0 {
			carveH(m, a.X, b.X, a.Y)
			carveV(m, a.Y, b.Y, b.X)
		} else {
			carveV(m, a.Y, b.Y, a.X)
			carveH(m, a.X, b.X, b.Y)
		}
	}
}

func carveH(m *gamemap.GameMap, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if p := geo.Pt(x, y); m.InBounds(p) {
			m.Set(p, gamemap.MakeFloor())
		}
	}
}

func carveV(m *gamemap.GameMap, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if p := geo.Pt(x, y); m.InBounds(p) {
			m.Set(p, gamemap.MakeFloor())
		}
	}
}

func carveZShaped(m *gamemap.GameMap, a, b geo.Point) {
	midY := (a.Y + b.Y) / 2
	carveV(m, a.Y, midY, a.X)
	carveH(m, a.X, b.X, midY)
	carveV(m, midY, b.Y, b.X)
}

// findDoors returns the corridor cells that enter a room: floor just outside
// a room edge with walls on both sides of the passage.
func findDoors(m *gamemap.GameMap) []geo.Point {
	seen := make(map[geo.Point]bool)
	var doors []geo.Point
	consider := func(p geo.Point) {
		if seen[p] || !m.IsFloor(p) || inRoom(m, p) {
			return
		}
		seen[p] = true
		horizontal := !m.IsFloor(p.Add(geo.Pt(-1, 0))) && !m.IsFloor(p.Add(geo.Pt(1, 0)))
		vertical := !m.IsFloor(p.Add(geo.Pt(0, -1))) && !m.IsFloor(p.Add(geo.Pt(0, 1)))
		if horizontal != vertical {
			doors = append(doors, p)
		}
	}
	for _, r := range m.Rooms {
		for x := r.X1; x <= r.X2; x++ {
			consider(geo.Pt(x, r.Y1-1))
			consider(geo.Pt(x, r.Y2+1))
		}
		for y := r.Y1; y <= r.Y2; y++ {
			consider(geo.Pt(r.X1-1, y))
			consider(geo.Pt(r.X2+1, y))
		}
	}
	return doors
}

func inRoom(m *gamemap.GameMap, p geo.Point) bool {
	for _, r := range m.Rooms {
		if r.Contains(p) {
			return true
		}
	}
	return false
}
