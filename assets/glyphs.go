package assets

// Glyphs for entities that are not described by a content table.
const (
	GlyphPlayer     = "@"
	GlyphDoorClosed = "+"
	GlyphDoorOpen   = "'"
	GlyphStairsDown = ">"
	GlyphPortal     = "O"
	GlyphFog        = "%"
	GlyphRune       = "^"
)

// Colors are tcell color names.
const (
	ColorPlayer = "yellow"
	ColorDoor   = "saddlebrown"
	ColorStairs = "white"
	ColorPortal = "fuchsia"
	ColorFog    = "gray"
	ColorRune   = "aqua"
)
