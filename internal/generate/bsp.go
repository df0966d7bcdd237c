// Package generate builds dungeon levels: a BSP rooms-and-corridors layout
// populated with doors, creatures, items and an exit.
package generate

import (
	"math/rand/v2"

	"sneaky/internal/gamemap"
	"sneaky/internal/geo"
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives procedural generation for one level.
type Config struct {
	Width, Height  int
	MinLeafSize    int
	MaxLeafSize    int
	MinRoomSize    int
	RoomPadding    int
	Corridor       CorridorStyle
	Level          int
	CreatureBudget int
	ItemCount      int
	Rand           *rand.Rand
}

// Layout is a generated level before anything is spawned on it.
type Layout struct {
	Map   *gamemap.GameMap
	Start geo.Point
	Exit  geo.Point
	Doors []geo.Point
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *gamemap.Rect
}

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false
	}
	// horizontal when taller, vertical when wider
	splitH := cfg.Rand.IntN(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	maxSize := l.H
	if !splitH {
		maxSize = l.W
	}
	if maxSize <= cfg.MinLeafSize*2 {
		return false
	}

	lo := cfg.MinLeafSize
	hi := maxSize - cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	split := lo + cfg.Rand.IntN(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: split}
		l.right = &bspLeaf{X: l.X, Y: l.Y + split, W: l.W, H: l.H - split}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: split, H: l.H}
		l.right = &bspLeaf{X: l.X + split, Y: l.Y, W: l.W - split, H: l.H}
	}
	return true
}

// createRooms recursively carves rooms inside terminal leaves.
func (l *bspLeaf) createRooms(m *gamemap.GameMap, cfg *Config) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRooms(m, cfg)
		}
		if l.right != nil {
			l.right.createRooms(m, cfg)
		}
		return
	}
	pad := cfg.RoomPadding
	minSize := cfg.MinRoomSize

	availW := max(l.W-2*pad, minSize)
	availH := max(l.H-2*pad, minSize)

	rw := minSize + cfg.Rand.IntN(max(1, availW-minSize+1))
	rh := minSize + cfg.Rand.IntN(max(1, availH-minSize+1))
	rw = max(min(rw, l.W-2*pad), 3)
	rh = max(min(rh, l.H-2*pad), 3)

	rx := l.X + pad + cfg.Rand.IntN(max(1, l.W-rw-2*pad+1))
	ry := l.Y + pad + cfg.Rand.IntN(max(1, l.H-rh-2*pad+1))

	// keep a one-tile wall border around the map
	rx = max(rx, 1)
	ry = max(ry, 1)
	if rx+rw >= m.Width {
		rw = m.Width - rx - 1
	}
	if ry+rh >= m.Height {
		rh = m.Height - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := gamemap.Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			m.Set(geo.Pt(x, y), gamemap.MakeFloor())
		}
	}
	m.Rooms = append(m.Rooms, room)
}

// getRoom returns a room from this leaf or its children.
func (l *bspLeaf) getRoom() *gamemap.Rect {
	if l.room != nil {
		return l.room
	}
	var lRoom, rRoom *gamemap.Rect
	if l.left != nil {
		lRoom = l.left.getRoom()
	}
	if l.right != nil {
		rRoom = l.right.getRoom()
	}
	if lRoom == nil {
		return rRoom
	}
	return lRoom
}

// connectChildren carves corridors between the two children of a split leaf.
func (l *bspLeaf) connectChildren(m *gamemap.GameMap, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(m, cfg)
	l.right.connectChildren(m, cfg)

	lRoom := l.left.getRoom()
	rRoom := l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	carveCorridor(m, lRoom.Center(), rRoom.Center(), cfg)
}

// Generate runs BSP generation. The player starts in the first room and the
// exit sits in the centre of the last one.
func Generate(cfg *Config) Layout {
	m := gamemap.New(cfg.Width, cfg.Height)
	root := &bspLeaf{W: cfg.Width, H: cfg.Height}

	leaves := []*bspLeaf{root}
	for splitAny := true; splitAny; {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize || cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	root.createRooms(m, cfg)
	root.connectChildren(m, cfg)

	out := Layout{Map: m, Start: geo.Pt(1, 1), Exit: geo.NoPosition}
	if len(m.Rooms) > 0 {
		out.Start = m.Rooms[0].Center()
	}
	if len(m.Rooms) > 1 {
		out.Exit = m.Rooms[len(m.Rooms)-1].Center()
	}
	out.Doors = findDoors(m)
	return out
}
