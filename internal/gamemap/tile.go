package gamemap

// TileKind identifies the type of a map tile. Doors, stairs and everything
// else that can change live on entities, so the grid only knows floor and wall.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
)

// Tile is one static map cell.
type Tile struct {
	Kind        TileKind
	Walkable    bool
	Transparent bool
}

// MakeWall returns a blocking, opaque wall tile.
func MakeWall() Tile {
	return Tile{Kind: TileWall}
}

// MakeFloor returns a passable, transparent floor tile.
func MakeFloor() Tile {
	return Tile{Kind: TileFloor, Walkable: true, Transparent: true}
}

func (t Tile) glyph() byte {
	if t.Kind == TileFloor {
		return '.'
	}
	return '#'
}

func tileFromGlyph(b byte) Tile {
	if b == '.' {
		return MakeFloor()
	}
	return MakeWall()
}
