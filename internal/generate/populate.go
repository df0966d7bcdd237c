package generate

import (
	"math"
	"math/rand/v2"

	"sneaky/internal/data"
	"sneaky/internal/gamemap"
	"sneaky/internal/geo"
)

// CreatureSpawn is one creature to create.
type CreatureSpawn struct {
	Def data.CreatureDef
	Pos geo.Point
}

// ItemSpawn is one item to create on the floor.
type ItemSpawn struct {
	Def data.ItemDef
	Pos geo.Point
}

// Population is what Populate decided to place.
type Population struct {
	Creatures []CreatureSpawn
	Items     []ItemSpawn
}

// ForLevel scales a Config from level 1 up to maxLevel: deeper levels get
// smaller leaves and more creatures and items.
func ForLevel(level, maxLevel, width, height int, rng *rand.Rand) *Config {
	t := 0.0
	if maxLevel > 1 {
		t = min(1, float64(level-1)/float64(maxLevel-1))
	}
	return &Config{
		Width:          width,
		Height:         height,
		MinLeafSize:    8,
		MaxLeafSize:    lerpi(20, 12, t),
		MinRoomSize:    4,
		RoomPadding:    1,
		Corridor:       CorridorStyle(rng.IntN(3)),
		Level:          level,
		CreatureBudget: lerpi(4, 14, t),
		ItemCount:      lerpi(3, 6, t),
		Rand:           rng,
	}
}

func lerpi(a, b int, t float64) int {
	return int(math.Round(float64(a) + t*float64(b-a)))
}

// Populate places creatures and items in the rooms of l. The first room,
// where the player starts, gets no creatures. Every other room gets one
// before the rest of the budget is spread at random.
func Populate(l Layout, cfg *Config, content *data.Content) Population {
	var out Population
	rooms := l.Map.Rooms
	if len(rooms) == 0 {
		return out
	}
	placeable := rooms[1:]

	occupied := map[geo.Point]bool{l.Start: true, l.Exit: true}
	for _, d := range l.Doors {
		occupied[d] = true
	}
	place := func(room gamemap.Rect) (geo.Point, bool) {
		p, ok := pickFreeInRoom(room, cfg.Rand, occupied)
		if ok {
			occupied[p] = true
		}
		return p, ok
	}

	creatures := creaturesFor(content.Creatures, cfg.Level)
	budget := cfg.CreatureBudget
	if len(creatures) > 0 {
		for _, room := range placeable {
			if budget == 0 {
				break
			}
			if p, ok := place(room); ok {
				out.Creatures = append(out.Creatures, CreatureSpawn{Def: pickCreature(creatures, cfg.Rand), Pos: p})
				budget--
			}
		}
		for ; budget > 0 && len(placeable) > 0; budget-- {
			room := placeable[cfg.Rand.IntN(len(placeable))]
			if p, ok := place(room); ok {
				out.Creatures = append(out.Creatures, CreatureSpawn{Def: pickCreature(creatures, cfg.Rand), Pos: p})
			}
		}
	}

	items := itemsFor(content.Items, cfg.Level)
	for i := 0; i < cfg.ItemCount && len(items) > 0; i++ {
		room := rooms[cfg.Rand.IntN(len(rooms))]
		if p, ok := place(room); ok {
			out.Items = append(out.Items, ItemSpawn{Def: pickItem(items, cfg.Rand), Pos: p})
		}
	}
	return out
}

func creaturesFor(defs []data.CreatureDef, level int) []data.CreatureDef {
	var out []data.CreatureDef
	for _, d := range defs {
		if d.MinLevel <= level {
			out = append(out, d)
		}
	}
	return out
}

func itemsFor(defs []data.ItemDef, level int) []data.ItemDef {
	var out []data.ItemDef
	for _, d := range defs {
		if d.MinLevel <= level {
			out = append(out, d)
		}
	}
	return out
}

func pickCreature(defs []data.CreatureDef, rng *rand.Rand) data.CreatureDef {
	return defs[weighted(len(defs), func(i int) int { return defs[i].Weight }, rng)]
}

func pickItem(defs []data.ItemDef, rng *rand.Rand) data.ItemDef {
	return defs[weighted(len(defs), func(i int) int { return defs[i].Weight }, rng)]
}

// weighted picks an index with probability proportional to its weight.
// Non-positive weights count as 1.
func weighted(n int, weight func(int) int, rng *rand.Rand) int {
	total := 0
	for i := range n {
		total += max(1, weight(i))
	}
	roll := rng.IntN(total)
	for i := range n {
		roll -= max(1, weight(i))
		if roll < 0 {
			return i
		}
	}
	return n - 1
}

// pickFreeInRoom tries a few random cells inside room, avoiding its outer
// ring so nothing blocks a doorway.
func pickFreeInRoom(room gamemap.Rect, rng *rand.Rand, occupied map[geo.Point]bool) (geo.Point, bool) {
	const maxAttempts = 20
	for range maxAttempts {
		p := randomInRoom(room, rng)
		if !occupied[p] {
			return p, true
		}
	}
	return geo.NoPosition, false
}

func randomInRoom(room gamemap.Rect, rng *rand.Rand) geo.Point {
	x1, y1 := room.X1+1, room.Y1+1
	x2, y2 := room.X2-1, room.Y2-1
	if x1 > x2 || y1 > y2 {
		x1, y1 = room.X1, room.Y1
		x2, y2 = room.X2, room.Y2
	}
	return geo.Pt(x1+rng.IntN(x2-x1+1), y1+rng.IntN(y2-y1+1))
}
